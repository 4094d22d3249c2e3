package pipeline

import (
	"log"

	"github.com/ignite/ppc-intelligence/internal/report"
)

// Overview is the account-level summary computed from one analysis run.
type Overview struct {
	Records        int     `json:"records"`
	TotalSpend     float64 `json:"total_spend"`
	TotalSales     float64 `json:"total_sales"`
	TotalOrders    float64 `json:"total_orders"`
	TotalClicks    float64 `json:"total_clicks"`
	MeanROAS       float64 `json:"mean_roas"`
	MeanCVR        float64 `json:"mean_cvr"`
	MeanCTR        float64 `json:"mean_ctr"`
	MeanCPC        float64 `json:"mean_cpc"`
	MeanUIS        float64 `json:"mean_uis"`
	BreakEvenROAS  float64 `json:"break_even_roas"`
	TotalHardWaste float64 `json:"total_hard_waste"`
	// TACOS is spend over total (ad + organic) revenue, only populated when
	// the configuration carries a total revenue figure.
	TACOS float64 `json:"tacos,omitempty"`
}

// Analysis is the complete decision-ready output of one pipeline run over
// one record set. The record slice is owned by the analysis; the caller's
// input is never mutated.
type Analysis struct {
	Records  []report.PerformanceRecord `json:"records"`
	Means    Means                      `json:"means"`
	Overview Overview                   `json:"overview"`
	Config   Config                     `json:"config"`
}

// Run executes the full scoring pipeline: metric derivation, waste and
// risk classification, UIS scoring, bid recommendation, and cluster/intent
// tagging. It is a pure function of (records, cfg): no hidden state, so
// running it twice on the same input yields identical output.
func Run(records []report.PerformanceRecord, cfg Config) (*Analysis, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	owned := make([]report.PerformanceRecord, len(records))
	copy(owned, records)

	DeriveMetrics(owned)
	means := ComputeMeans(owned)
	totalHardWaste := Classify(owned, cfg, means)
	ScoreRecords(owned, cfg, means)
	ApplyBids(owned, cfg.BidTiers)
	TagRecords(owned, cfg.CompetitorBrands)

	a := &Analysis{
		Records:  owned,
		Means:    means,
		Config:   cfg,
		Overview: buildOverview(owned, cfg, means, totalHardWaste),
	}

	log.Printf("[pipeline] analyzed %d records: spend=%.2f sales=%.2f waste=%.2f mean_uis=%.1f",
		len(owned), a.Overview.TotalSpend, a.Overview.TotalSales, totalHardWaste, a.Overview.MeanUIS)

	return a, nil
}

func buildOverview(records []report.PerformanceRecord, cfg Config, means Means, totalHardWaste float64) Overview {
	o := Overview{
		Records:        len(records),
		MeanROAS:       means.ROAS,
		MeanCVR:        means.CVR,
		MeanCTR:        means.CTR,
		MeanCPC:        means.CPC,
		BreakEvenROAS:  cfg.BreakEvenROAS(),
		TotalHardWaste: totalHardWaste,
	}
	for i := range records {
		o.TotalSpend += records[i].Spend
		o.TotalSales += records[i].Sales
		o.TotalOrders += records[i].Orders
		o.TotalClicks += records[i].Clicks
		o.MeanUIS += records[i].UIS
	}
	if len(records) > 0 {
		o.MeanUIS /= float64(len(records))
	}
	if cfg.TotalRevenue > 0 {
		o.TACOS = o.TotalSpend / cfg.TotalRevenue * 100
	}
	return o
}

// HighScaleKeywords returns the records strong enough to scale
// (uis at or above the configured high-scale threshold).
func (a *Analysis) HighScaleKeywords() []report.PerformanceRecord {
	return a.filter(func(r *report.PerformanceRecord) bool {
		return r.UIS >= a.Config.HighScaleUIS
	})
}

// NegativeCandidates returns the records weak enough to negate
// (uis below the configured negative threshold).
func (a *Analysis) NegativeCandidates() []report.PerformanceRecord {
	return a.filter(func(r *report.PerformanceRecord) bool {
		return r.UIS < a.Config.NegativeUIS
	})
}

// IsolationCandidates returns the records that earn their own
// single-keyword campaign (uis at or above the isolation threshold).
func (a *Analysis) IsolationCandidates() []report.PerformanceRecord {
	return a.filter(func(r *report.PerformanceRecord) bool {
		return r.UIS >= a.Config.IsolationUIS
	})
}

func (a *Analysis) filter(keep func(*report.PerformanceRecord) bool) []report.PerformanceRecord {
	var out []report.PerformanceRecord
	for i := range a.Records {
		if keep(&a.Records[i]) {
			out = append(out, a.Records[i])
		}
	}
	return out
}
