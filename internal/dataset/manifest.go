package dataset

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFunds is the budget used for datasets that do not declare one.
const DefaultFunds = 500

var (
	// ErrDuplicateDataset is returned when two manifest entries share a name.
	ErrDuplicateDataset = errors.New("duplicate dataset name")
	// ErrInvalidEntry is returned for manifest entries missing a name or path.
	ErrInvalidEntry = errors.New("invalid dataset entry")
)

// Manifest lists the datasets available to the optimizer.
type Manifest struct {
	Datasets []Entry `yaml:"datasets"`
}

// Entry declares one dataset file.
type Entry struct {
	Name        string `yaml:"name"`
	Path        string `yaml:"path"`
	Funds       int    `yaml:"funds"`
	Description string `yaml:"description"`
}

// ReadManifest reads the manifest at path. Relative dataset paths are resolved against
// the manifest's directory and missing funds default to DefaultFunds.
func ReadManifest(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}

	m := &Manifest{}
	if err := yaml.Unmarshal(data, m); err != nil {
		return nil, fmt.Errorf("parse manifest: %w", err)
	}

	base := filepath.Dir(path)
	seen := make(map[string]struct{}, len(m.Datasets))
	for i := range m.Datasets {
		e := &m.Datasets[i]
		if e.Name == "" || e.Path == "" {
			return nil, fmt.Errorf("%w: entry %d", ErrInvalidEntry, i)
		}
		if e.Funds < 0 {
			return nil, fmt.Errorf("%w: %s has negative funds", ErrInvalidEntry, e.Name)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateDataset, e.Name)
		}
		seen[e.Name] = struct{}{}

		if e.Funds == 0 {
			e.Funds = DefaultFunds
		}
		if !filepath.IsAbs(e.Path) {
			e.Path = filepath.Join(base, e.Path)
		}
	}

	return m, nil
}
