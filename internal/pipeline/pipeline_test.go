package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ignite/ppc-intelligence/internal/report"
)

func twoKeywordReport() []report.PerformanceRecord {
	return []report.PerformanceRecord{
		{
			SearchTerm: "buy gold ring", Campaign: "Brand", SKU: "RING-01",
			Spend: 100, Clicks: 10, Orders: 2, Sales: 500, Impressions: 1000,
		},
		{
			SearchTerm: "pandora alternatives", Campaign: "Brand", SKU: "RING-01",
			Spend: 200, Clicks: 5, Orders: 0, Sales: 0, Impressions: 50,
		},
	}
}

func TestRunEndToEnd(t *testing.T) {
	analysis, err := Run(twoKeywordReport(), DefaultConfig())
	require.NoError(t, err)
	require.Len(t, analysis.Records, 2)

	a, b := analysis.Records[0], analysis.Records[1]

	assert.Equal(t, 10.0, a.CPC)
	assert.Equal(t, 5.0, a.ROAS)
	assert.Equal(t, 20.0, a.CVR)
	assert.Equal(t, 40.0, b.CPC)
	assert.Equal(t, 0.0, b.ROAS)

	assert.Equal(t, 2.5, analysis.Overview.BreakEvenROAS)
	assert.Equal(t, 25.0, analysis.Means.CPC)

	// Waste floor = 5 x 25 = 125: only the zero-order 200 row crosses it.
	assert.Equal(t, 0.0, a.HardWaste)
	assert.Equal(t, 200.0, b.HardWaste)
	assert.Equal(t, 200.0, analysis.Overview.TotalHardWaste)

	assert.False(t, a.ProfitRisk)
	assert.True(t, b.ProfitRisk)
	assert.Equal(t, 80.0, b.PressureScore)

	// The strong record saturates the score; the weak one lands in the
	// 20-40 band and gets the 0.90 reduction.
	assert.Equal(t, 100.0, a.UIS)
	assert.InDelta(t, 20.59, b.UIS, 0.05)
	assert.Equal(t, 12.5, a.SmartBid)
	assert.InDelta(t, 36.0, b.SmartBid, 1e-9)

	assert.Equal(t, "buy gold", a.Cluster)
	assert.Equal(t, IntentTransactional, a.Intent)
	assert.Equal(t, IntentCompetitor, b.Intent)

	assert.Equal(t, 300.0, analysis.Overview.TotalSpend)
	assert.Equal(t, 500.0, analysis.Overview.TotalSales)
}

func TestRunIsIdempotent(t *testing.T) {
	cfg := DefaultConfig()
	input := twoKeywordReport()

	first, err := Run(input, cfg)
	require.NoError(t, err)
	second, err := Run(input, cfg)
	require.NoError(t, err)

	assert.Equal(t, first.Records, second.Records)
	assert.Equal(t, first.Overview, second.Overview)

	// The caller's slice stays raw.
	assert.Equal(t, 0.0, input[0].UIS)
	assert.Equal(t, 0.0, input[0].CPC)
}

func TestRunEmptyInput(t *testing.T) {
	analysis, err := Run(nil, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, analysis.Records)
	assert.Equal(t, Overview{BreakEvenROAS: 2.5}, analysis.Overview)
}

func TestRunRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MarginPercent = 95
	_, err := Run(nil, cfg)
	assert.Error(t, err)
}

func TestRunTACOS(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalRevenue = 1500

	analysis, err := Run(twoKeywordReport(), cfg)
	require.NoError(t, err)
	assert.InDelta(t, 20.0, analysis.Overview.TACOS, 1e-9)
}

func TestAnalysisSelections(t *testing.T) {
	analysis, err := Run(twoKeywordReport(), DefaultConfig())
	require.NoError(t, err)

	high := analysis.HighScaleKeywords()
	require.Len(t, high, 1)
	assert.Equal(t, "buy gold ring", high[0].SearchTerm)

	negatives := analysis.NegativeCandidates()
	require.Len(t, negatives, 1)
	assert.Equal(t, "pandora alternatives", negatives[0].SearchTerm)

	isolation := analysis.IsolationCandidates()
	require.Len(t, isolation, 1)
	assert.Equal(t, "buy gold ring", isolation[0].SearchTerm)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		ok     bool
	}{
		{"default", func(c *Config) {}, true},
		{"margin floor", func(c *Config) { c.MarginPercent = 1 }, true},
		{"margin too low", func(c *Config) { c.MarginPercent = 0.5 }, false},
		{"margin too high", func(c *Config) { c.MarginPercent = 91 }, false},
		{"bad waste policy", func(c *Config) { c.WastePolicy = "percentile" }, false},
		{"bad penalty source", func(c *Config) { c.PenaltySource = "hybrid" }, false},
		{"zero epsilon", func(c *Config) { c.Epsilon = 0 }, false},
		{"no tiers", func(c *Config) { c.BidTiers = nil }, false},
		{"gapped tiers", func(c *Config) { c.BidTiers = []BidTier{{MinUIS: 80, Multiplier: 1.25}} }, false},
		{"unsorted tiers", func(c *Config) {
			c.BidTiers = []BidTier{{MinUIS: 20, Multiplier: 0.9}, {MinUIS: 80, Multiplier: 1.25}, {MinUIS: 0, Multiplier: 0.8}}
		}, false},
		{"three tier table", func(c *Config) { c.BidTiers = ThreeTierBidTable() }, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}

func TestBreakEvenROAS(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, 2.5, cfg.BreakEvenROAS())

	cfg.MarginPercent = 50
	assert.Equal(t, 2.0, cfg.BreakEvenROAS())
}
