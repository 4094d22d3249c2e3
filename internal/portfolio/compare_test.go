package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name      string
		current   float64
		previous  float64
		pct       float64
		defined   bool
		direction string
	}{
		{"growth", 150, 100, 50, true, DirectionIncrease},
		{"decline", 75, 100, -25, true, DirectionDecrease},
		{"flat", 100, 100, 0, true, DirectionNoChange},
		{"fresh baseline", 150, 0, 0, false, DirectionUndefined},
		{"both zero", 0, 0, 0, false, DirectionUndefined},
		{"dropped to zero", 0, 80, -100, true, DirectionDecrease},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Compare(tt.current, tt.previous)
			assert.Equal(t, tt.defined, c.Defined)
			assert.Equal(t, tt.direction, c.Direction)
			assert.InDelta(t, tt.pct, c.PctChange, 1e-9)
		})
	}
}

func TestCompareRollups(t *testing.T) {
	current := Rollup{Key: "Brand", Spend: 300, Sales: 600, Orders: 3, ROAS: 2, MeanUIS: 55}
	previous := Rollup{Key: "Brand", Spend: 200, Sales: 0, Orders: 0, ROAS: 0, MeanUIS: 50}

	diff := CompareRollups(current, previous)
	assert.Equal(t, "Brand", diff.Key)
	assert.InDelta(t, 50, diff.Spend.PctChange, 1e-9)
	assert.False(t, diff.Sales.Defined)
	assert.Equal(t, DirectionUndefined, diff.Sales.Direction)
	assert.InDelta(t, 10, diff.MeanUIS.PctChange, 1e-9)
}

func TestCompareSnapshots(t *testing.T) {
	current := []Rollup{
		{Key: "Brand", Spend: 300},
		{Key: "Launch", Spend: 40},
	}
	previous := []Rollup{
		{Key: "Brand", Spend: 200},
		{Key: "Retired", Spend: 90},
	}

	diffs := CompareSnapshots(current, previous)
	require.Len(t, diffs, 1, "unmatched groups must be skipped")
	assert.Equal(t, "Brand", diffs[0].Key)
	assert.Equal(t, DirectionIncrease, diffs[0].Spend.Direction)
}
