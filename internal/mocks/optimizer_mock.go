// Code generated manually. DO NOT EDIT.

package mocks

import (
	"context"

	"github.com/guttosm/bond-optimizer/internal/domain/model"
	"github.com/stretchr/testify/mock"
)

type MockOptimizer struct {
	mock.Mock
}

func NewMockOptimizer(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockOptimizer {
	m := &MockOptimizer{}
	m.Mock.Test(t)
	t.Cleanup(func() { m.AssertExpectations(t) })
	return m
}

func (m *MockOptimizer) Optimize(ctx context.Context, assets []model.Asset, funds int, algorithm string) (model.Selection, error) {
	args := m.Called(ctx, assets, funds, algorithm)
	return args.Get(0).(model.Selection), args.Error(1)
}

func (m *MockOptimizer) Compare(ctx context.Context, assets []model.Asset, funds int) (model.Comparison, error) {
	args := m.Called(ctx, assets, funds)
	return args.Get(0).(model.Comparison), args.Error(1)
}

func (m *MockOptimizer) InvalidateCache() {
	m.Called()
}
