package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmpty(t *testing.T) {
	s := Empty(AlgorithmDynamic, 500)

	assert.Equal(t, AlgorithmDynamic, s.Algorithm)
	assert.Equal(t, 500, s.Funds)
	assert.NotNil(t, s.Assets)
	assert.Empty(t, s.Assets)
	assert.Zero(t, s.Profit)
	assert.Zero(t, s.Cost)
}

func TestNewSelection(t *testing.T) {
	assets := []Asset{
		NewAsset("A", 20.49, 10),
		NewAsset("B", 19.5, 10),
		NewAsset("C", 100, 5),
	}

	s := NewSelection(AlgorithmBruteForceBitmask, 200, assets, 42)

	assert.Equal(t, 140, s.Cost)
	assert.Equal(t, 139.99, s.ExactCost)
	assert.Equal(t, 42.0, s.Profit)
	assert.Equal(t, []string{"A", "B", "C"}, s.Names())
}

func TestNewSelection_NilAssets(t *testing.T) {
	s := NewSelection(AlgorithmDynamic, 0, nil, 0)

	assert.NotNil(t, s.Assets)
	assert.Zero(t, s.ExactCost)
}

func TestTotalProfit(t *testing.T) {
	assets := []Asset{NewAsset("A", 100, 5), NewAsset("B", 200, 8)}

	assert.InDelta(t, 21.0, TotalProfit(assets), 1e-9)
	assert.Zero(t, TotalProfit(nil))
}

func TestSelection_Reversed(t *testing.T) {
	s := NewSelection(AlgorithmDynamic, 300, []Asset{NewAsset("B", 200, 8), NewAsset("A", 100, 5)}, 21)

	r := s.Reversed()

	assert.Equal(t, []string{"A", "B"}, r.Names())
	assert.Equal(t, []string{"B", "A"}, s.Names(), "original must not be mutated")
	assert.Equal(t, s.Profit, r.Profit)
	assert.Equal(t, s.Cost, r.Cost)
}
