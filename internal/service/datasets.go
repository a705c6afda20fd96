package service

import (
	"errors"
	"fmt"

	"github.com/guttosm/bond-optimizer/internal/dataset"
)

// ErrDatasetNotFound is returned for names missing from the catalog.
var ErrDatasetNotFound = errors.New("dataset not found")

// DatasetProvider exposes the named datasets.
type DatasetProvider interface {
	List() []dataset.Dataset
	Get(name string) (dataset.Dataset, error)
}

// DatasetService serves datasets from a catalog.
type DatasetService struct {
	catalog DatasetProvider
}

// NewDatasetService creates a DatasetService. A nil catalog serves no datasets.
func NewDatasetService(catalog DatasetProvider) *DatasetService {
	return &DatasetService{catalog: catalog}
}

// List returns every dataset sorted by name.
func (s *DatasetService) List() []dataset.Dataset {
	if s.catalog == nil {
		return []dataset.Dataset{}
	}
	return s.catalog.List()
}

// Get returns the named dataset.
func (s *DatasetService) Get(name string) (dataset.Dataset, error) {
	if s.catalog == nil {
		return dataset.Dataset{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
	}
	d, err := s.catalog.Get(name)
	if errors.Is(err, dataset.ErrNotFound) {
		return dataset.Dataset{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, name)
	}
	return d, err
}
