// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

// MockLogStore is a testify mock of repository.LogStore.
type MockLogStore struct {
	mock.Mock
}

func NewMockLogStore(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockLogStore {
	m := &MockLogStore{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockLogStore) Create(ctx context.Context, entry *model.LogEntry) error {
	return m.Called(ctx, entry).Error(0)
}

func (m *MockLogStore) CreateMany(ctx context.Context, entries []*model.LogEntry) error {
	return m.Called(ctx, entries).Error(0)
}

func (m *MockLogStore) Query(ctx context.Context, q model.LogQueryOptions) ([]model.LogEntry, error) {
	args := m.Called(ctx, q)
	entries, _ := args.Get(0).([]model.LogEntry)
	return entries, args.Error(1)
}

func (m *MockLogStore) Count(ctx context.Context, q model.LogQueryOptions) (int64, error) {
	args := m.Called(ctx, q)
	return args.Get(0).(int64), args.Error(1)
}
