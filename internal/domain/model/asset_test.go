package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundPrice(t *testing.T) {
	for price, want := range map[float64]int{
		0.3:   0,
		0.5:   0,
		1.5:   2,
		2.5:   2,
		50.5:  50,
		50.51: 51,
		-2.5:  -2,
	} {
		assert.Equal(t, want, RoundPrice(price), "price %v", price)
	}
}

func TestNewAsset(t *testing.T) {
	tests := []struct {
		name           string
		price          float64
		yield          float64
		expectedPrice  int
		expectedDiff   float64
		expectedProfit float64
	}{
		{
			name:           "integral price has no difference",
			price:          100,
			yield:          5,
			expectedPrice:  100,
			expectedDiff:   0,
			expectedProfit: 5,
		},
		{
			name:           "rounds down below half",
			price:          20.49,
			yield:          10,
			expectedPrice:  20,
			expectedDiff:   0.49,
			expectedProfit: 2.049,
		},
		{
			name:           "half rounds up to even",
			price:          19.5,
			yield:          10,
			expectedPrice:  20,
			expectedDiff:   -0.5,
			expectedProfit: 1.95,
		},
		{
			name:           "half rounds down to even",
			price:          2.5,
			yield:          10,
			expectedPrice:  2,
			expectedDiff:   0.5,
			expectedProfit: 0.25,
		},
		{
			name:           "larger half rounds down to even",
			price:          50.5,
			yield:          10,
			expectedPrice:  50,
			expectedDiff:   0.5,
			expectedProfit: 5.05,
		},
		{
			name:           "above half rounds up",
			price:          50.51,
			yield:          10,
			expectedPrice:  51,
			expectedDiff:   -0.49,
			expectedProfit: 5.051,
		},
		{
			name:           "profit uses exact price",
			price:          26.76,
			yield:          39.91,
			expectedPrice:  27,
			expectedDiff:   -0.24,
			expectedProfit: 26.76 * 39.91 / 100,
		},
		{
			name:           "negative yield is kept",
			price:          50,
			yield:          -2,
			expectedPrice:  50,
			expectedDiff:   0,
			expectedProfit: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := NewAsset("Action", tt.price, tt.yield)

			assert.Equal(t, "Action", a.Name)
			assert.Equal(t, tt.expectedPrice, a.Price)
			assert.InDelta(t, tt.expectedDiff, a.PriceDifference, 1e-9)
			assert.InDelta(t, tt.expectedProfit, a.Profit, 1e-9)
			assert.InDelta(t, tt.price, a.ExactPrice(), 1e-9)
		})
	}
}
