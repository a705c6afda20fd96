package dataset

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
)

// ErrNotFound is returned by Catalog.Get for unknown dataset names.
var ErrNotFound = errors.New("dataset not found")

// Dataset is a loaded manifest entry.
type Dataset struct {
	Name        string
	Description string
	Funds       int
	Path        string
	Assets      []model.Asset
}

// Catalog holds the datasets declared in a manifest. It is safe for concurrent use.
type Catalog struct {
	manifestPath string

	mu       sync.RWMutex
	datasets map[string]Dataset
}

// NewCatalog creates a catalog for the manifest at path and loads it.
func NewCatalog(manifestPath string) (*Catalog, error) {
	c := &Catalog{
		manifestPath: manifestPath,
		datasets:     make(map[string]Dataset),
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Reload re-reads the manifest and every dataset file. The new set replaces the
// current one only if everything loads; otherwise the previous datasets stay in place.
func (c *Catalog) Reload() error {
	m, err := ReadManifest(c.manifestPath)
	if err != nil {
		return err
	}

	loaded := make(map[string]Dataset, len(m.Datasets))
	for _, e := range m.Datasets {
		assets, err := LoadFile(e.Path)
		if err != nil {
			return fmt.Errorf("dataset %s: %w", e.Name, err)
		}
		loaded[e.Name] = Dataset{
			Name:        e.Name,
			Description: e.Description,
			Funds:       e.Funds,
			Path:        e.Path,
			Assets:      assets,
		}
	}

	c.mu.Lock()
	c.datasets = loaded
	c.mu.Unlock()
	return nil
}

// Get returns the dataset registered under name.
func (c *Catalog) Get(name string) (Dataset, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	d, ok := c.datasets[name]
	if !ok {
		return Dataset{}, fmt.Errorf("%w: %s", ErrNotFound, name)
	}
	return d, nil
}

// List returns every dataset sorted by name.
func (c *Catalog) List() []Dataset {
	c.mu.RLock()
	out := make([]Dataset, 0, len(c.datasets))
	for _, d := range c.datasets {
		out = append(out, d)
	}
	c.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}
