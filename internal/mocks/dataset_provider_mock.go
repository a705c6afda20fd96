// Code generated manually. DO NOT EDIT.

package mocks

import (
	"github.com/guttosm/bond-optimizer/internal/dataset"
	"github.com/stretchr/testify/mock"
)

type MockDatasetProvider struct {
	mock.Mock
}

func NewMockDatasetProvider(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockDatasetProvider {
	m := &MockDatasetProvider{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockDatasetProvider) List() []dataset.Dataset {
	args := m.Called()
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]dataset.Dataset)
}

func (m *MockDatasetProvider) Get(name string) (dataset.Dataset, error) {
	args := m.Called(name)
	return args.Get(0).(dataset.Dataset), args.Error(1)
}
