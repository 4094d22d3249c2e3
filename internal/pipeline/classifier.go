package pipeline

import "github.com/ignite/ppc-intelligence/internal/report"

// Classify applies the waste and profitability gates to every record.
// The gates are independent: a record can carry hard waste and profit risk
// at the same time. Returns the aggregate hard waste consumed by the
// rollup engine.
func Classify(records []report.PerformanceRecord, cfg Config, means Means) float64 {
	breakEven := cfg.BreakEvenROAS()

	wasteFloor := cfg.WasteThreshold
	if cfg.WastePolicy == WastePolicyCPCMultiple {
		wasteFloor = cfg.WasteThreshold * means.CPC
	}

	var totalHardWaste float64
	for i := range records {
		r := &records[i]

		r.HardWaste = 0
		if r.Orders == 0 && r.Spend > wasteFloor {
			r.HardWaste = r.Spend
		}
		totalHardWaste += r.HardWaste

		r.SoftWaste = 0
		if cfg.SoftWaste && r.ACOS > cfg.ACOSCeiling {
			r.SoftWaste = r.Spend
		}

		r.ProfitRisk = r.ROAS < breakEven
		r.PressureScore = pressureScore(r, means)
	}

	return totalHardWaste
}

// pressureScore builds a continuous 0-100 competitive pressure signal from
// four independent conditions, each worth a fixed point value.
func pressureScore(r *report.PerformanceRecord, means Means) float64 {
	score := 0.0
	if r.CPC > means.CPC {
		score += 30
	}
	if r.ROAS < means.ROAS {
		score += 30
	}
	if r.CTR < means.CTR {
		score += 20
	}
	if r.Orders == 0 && r.Spend > means.CPC*5 {
		score += 20
	}
	if score > 100 {
		score = 100
	}
	return score
}
