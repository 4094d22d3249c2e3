package pipeline

import "github.com/ignite/ppc-intelligence/internal/report"

// safeDiv is the single division rule shared by every derived ratio:
// exact zero denominator yields 0, never NaN or Inf.
func safeDiv(numerator, denominator float64) float64 {
	if denominator == 0 {
		return 0
	}
	return numerator / denominator
}

// Means holds the set-wide metric means the scorer normalizes against.
type Means struct {
	CPC  float64 `json:"cpc"`
	CTR  float64 `json:"ctr"`
	CVR  float64 `json:"cvr"`
	ROAS float64 `json:"roas"`
}

// DeriveMetrics computes the per-record rate metrics in one columnar pass.
// Each metric depends only on the raw counters, so the pass is a single
// loop with no ordering hazards between columns.
func DeriveMetrics(records []report.PerformanceRecord) {
	for i := range records {
		r := &records[i]
		r.CPC = safeDiv(r.Spend, r.Clicks)
		r.CTR = safeDiv(r.Clicks, r.Impressions) * 100
		r.CVR = safeDiv(r.Orders, r.Clicks) * 100
		r.ROAS = safeDiv(r.Sales, r.Spend)
		r.ACOS = safeDiv(r.Spend, r.Sales) * 100
	}
}

// ComputeMeans averages the derived metrics across the record set.
// An empty set yields all-zero means, which the scorer's epsilon guards
// against downstream.
func ComputeMeans(records []report.PerformanceRecord) Means {
	if len(records) == 0 {
		return Means{}
	}
	var m Means
	for i := range records {
		m.CPC += records[i].CPC
		m.CTR += records[i].CTR
		m.CVR += records[i].CVR
		m.ROAS += records[i].ROAS
	}
	n := float64(len(records))
	m.CPC /= n
	m.CTR /= n
	m.CVR /= n
	m.ROAS /= n
	return m
}
