package costing

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTotalCost(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		labor float64
		parts []UsedPart
		want  float64
	}{
		{
			name:  "labor plus two parts",
			labor: 50,
			parts: []UsedPart{
				{SparePartID: "a", Quantity: 2, Price: 100},
				{SparePartID: "b", Quantity: 1, Price: 30},
			},
			// 50 labor + 2x100 + 1x30
			want: 280,
		},
		{
			name:  "no parts yields labor only",
			labor: 80,
			parts: nil,
			want:  80,
		},
		{
			name:  "zero labor",
			labor: 0,
			parts: []UsedPart{{SparePartID: "a", Quantity: 3, Price: 10}},
			want:  30,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.InDelta(t, tc.want, TotalCost(tc.labor, tc.parts), 1e-9)
		})
	}
}

func TestProfit(t *testing.T) {
	t.Parallel()

	purchase := map[string]float64{"a": 80, "b": 20}
	lookup := func(id string) (float64, bool) {
		p, ok := purchase[id]
		return p, ok
	}

	t.Run("revenue minus wholesale minus half labor", func(t *testing.T) {
		// partsCost = 200, purchaseCost = 160, profit = (200+50) - 160 - 25 = 65
		parts := []UsedPart{{SparePartID: "a", Quantity: 2, Price: 100}}
		assert.InDelta(t, 65, Profit(50, parts, lookup), 1e-9)
	})

	t.Run("unknown part counts zero wholesale cost", func(t *testing.T) {
		parts := []UsedPart{{SparePartID: "missing", Quantity: 1, Price: 40}}
		// (40+10) - 0 - 5 = 45
		assert.InDelta(t, 45, Profit(10, parts, lookup), 1e-9)
	})

	t.Run("empty parts leaves half the labor as profit", func(t *testing.T) {
		assert.InDelta(t, 30, Profit(60, nil, lookup), 1e-9)
	})
}
