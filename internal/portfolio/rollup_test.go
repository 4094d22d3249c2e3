package portfolio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ppc-intelligence/internal/report"
)

func scoredRecords() []report.PerformanceRecord {
	return []report.PerformanceRecord{
		{Campaign: "Brand", SKU: "RING-01", Spend: 100, Sales: 500, Orders: 2, CPC: 10, CVR: 20, UIS: 100},
		{Campaign: "Brand", SKU: "RING-02", Spend: 200, Sales: 0, Orders: 0, CPC: 40, CVR: 0, UIS: 20, HardWaste: 200},
		{Campaign: "Generic", SKU: "RING-01", Spend: 50, Sales: 100, Orders: 1, CPC: 5, CVR: 10, UIS: 60},
	}
}

func TestBuildRollupsByCampaign(t *testing.T) {
	rollups := BuildRollups(scoredRecords(), GroupByCampaign)
	require.Len(t, rollups, 2)

	// Sorted by key.
	brand, generic := rollups[0], rollups[1]
	assert.Equal(t, "Brand", brand.Key)
	assert.Equal(t, "Generic", generic.Key)

	assert.Equal(t, 2, brand.Records)
	assert.Equal(t, 300.0, brand.Spend)
	assert.Equal(t, 500.0, brand.Sales)
	assert.Equal(t, 2.0, brand.Orders)
	assert.Equal(t, 200.0, brand.HardWaste)
	assert.Equal(t, 60.0, brand.MeanUIS)
	assert.Equal(t, 25.0, brand.MeanCPC)
	assert.InDelta(t, 500.0/300.0, brand.ROAS, 1e-9)

	assert.Equal(t, 1, generic.Records)
	assert.Equal(t, 2.0, generic.ROAS)
}

func TestBuildRollupsBySKU(t *testing.T) {
	rollups := BuildRollups(scoredRecords(), GroupBySKU)
	require.Len(t, rollups, 2)
	assert.Equal(t, "RING-01", rollups[0].Key)
	assert.Equal(t, 150.0, rollups[0].Spend)
	assert.Equal(t, 600.0, rollups[0].Sales)
}

// Rollup spend must always sum back to the record set's total spend.
func TestBuildRollupsSpendInvariant(t *testing.T) {
	records := scoredRecords()
	var total float64
	for _, r := range records {
		total += r.Spend
	}
	for _, key := range []GroupKey{GroupByCampaign, GroupBySKU} {
		var sum float64
		for _, r := range BuildRollups(records, key) {
			sum += r.Spend
		}
		assert.InDelta(t, total, sum, 1e-9, "group key %s", key)
	}
}

func TestBuildRollupsZeroSpendGroup(t *testing.T) {
	records := []report.PerformanceRecord{
		{Campaign: "Paused", Spend: 0, Sales: 0},
	}
	rollups := BuildRollups(records, GroupByCampaign)
	require.Len(t, rollups, 1)
	assert.Equal(t, 0.0, rollups[0].ROAS)
}

func TestBuildRollupsEmpty(t *testing.T) {
	assert.Empty(t, BuildRollups(nil, GroupByCampaign))
}
