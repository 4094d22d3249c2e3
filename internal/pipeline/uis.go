package pipeline

import "github.com/ignite/ppc-intelligence/internal/report"

// ScoreRecords computes the Unified Intelligence Score for every record:
// a bounded composite of each metric's ratio to the set-wide mean (or to
// break-even, for ROAS), minus the configured penalty. The CPC factor is
// inverted: a lower CPC than the mean scores higher.
func ScoreRecords(records []report.PerformanceRecord, cfg Config, means Means) {
	breakEven := cfg.BreakEvenROAS()
	eps := cfg.Epsilon
	w := cfg.Weights

	for i := range records {
		r := &records[i]

		roasFactor := r.ROAS / (breakEven + eps) * w.ROAS
		cvrFactor := r.CVR / (means.CVR + eps) * w.CVR
		ctrFactor := r.CTR / (means.CTR + eps) * w.CTR
		cpcFactor := means.CPC / (r.CPC + eps) * w.CPC

		var penalty float64
		switch cfg.PenaltySource {
		case PenaltyRisk:
			if r.ProfitRisk {
				penalty = w.Penalty
			}
		default:
			penalty = r.PressureScore / 100 * w.Penalty
		}

		score := roasFactor + cvrFactor + ctrFactor + cpcFactor - penalty
		r.UIS = clamp(score, 0, 100)
	}
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
