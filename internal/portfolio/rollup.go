package portfolio

import (
	"sort"

	"github.com/ignite/ppc-intelligence/internal/report"
)

// GroupKey selects the identity field rollups aggregate over.
type GroupKey string

const (
	GroupByCampaign GroupKey = "campaign"
	GroupBySKU      GroupKey = "sku"
)

// Rollup is a read-only aggregation of scored records sharing one campaign
// or SKU: counter sums, metric means, and the rollup-level ROAS.
type Rollup struct {
	Key       string  `json:"key"`
	Records   int     `json:"records"`
	Spend     float64 `json:"spend"`
	Sales     float64 `json:"sales"`
	Orders    float64 `json:"orders"`
	HardWaste float64 `json:"hard_waste"`
	MeanUIS   float64 `json:"mean_uis"`
	MeanCPC   float64 `json:"mean_cpc"`
	MeanCVR   float64 `json:"mean_cvr"`
	ROAS      float64 `json:"roas"`
}

// BuildRollups groups scored records by the chosen key and aggregates each
// group. Rollups are recomputed fresh from the record set on every call and
// returned sorted by key so output order is stable across runs.
func BuildRollups(records []report.PerformanceRecord, key GroupKey) []Rollup {
	groups := make(map[string]*Rollup)

	for i := range records {
		r := &records[i]
		k := r.Campaign
		if key == GroupBySKU {
			k = r.SKU
		}

		g, ok := groups[k]
		if !ok {
			g = &Rollup{Key: k}
			groups[k] = g
		}
		g.Records++
		g.Spend += r.Spend
		g.Sales += r.Sales
		g.Orders += r.Orders
		g.HardWaste += r.HardWaste
		g.MeanUIS += r.UIS
		g.MeanCPC += r.CPC
		g.MeanCVR += r.CVR
	}

	rollups := make([]Rollup, 0, len(groups))
	for _, g := range groups {
		n := float64(g.Records)
		g.MeanUIS /= n
		g.MeanCPC /= n
		g.MeanCVR /= n
		g.ROAS = safeDiv(g.Sales, g.Spend)
		rollups = append(rollups, *g)
	}

	sort.Slice(rollups, func(i, j int) bool { return rollups[i].Key < rollups[j].Key })
	return rollups
}

// safeDiv mirrors the pipeline's division rule: zero denominator yields 0.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}
