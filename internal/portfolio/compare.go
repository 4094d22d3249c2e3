package portfolio

// Change directions reported by the snapshot comparator.
const (
	DirectionIncrease  = "increase"
	DirectionDecrease  = "decrease"
	DirectionNoChange  = "no change"
	DirectionUndefined = "undefined"
)

// MetricChange is the period-over-period delta for a single aggregate.
// A zero previous value makes the percentage change genuinely undefined,
// distinct from the pipeline's safe-division zero, which means neutral.
type MetricChange struct {
	Current   float64 `json:"current"`
	Previous  float64 `json:"previous"`
	PctChange float64 `json:"pct_change"`
	Defined   bool    `json:"defined"`
	Direction string  `json:"direction"`
}

// Compare computes the percentage change and directional indicator between
// two independently computed scalar aggregates.
func Compare(current, previous float64) MetricChange {
	c := MetricChange{Current: current, Previous: previous}

	if previous == 0 {
		c.Direction = DirectionUndefined
		return c
	}

	c.Defined = true
	c.PctChange = (current - previous) / previous * 100
	switch {
	case c.PctChange > 0:
		c.Direction = DirectionIncrease
	case c.PctChange < 0:
		c.Direction = DirectionDecrease
	default:
		c.Direction = DirectionNoChange
	}
	return c
}

// SnapshotComparison holds the per-metric deltas between a current and a
// previous period rollup of the same group.
type SnapshotComparison struct {
	Key     string       `json:"key"`
	Spend   MetricChange `json:"spend"`
	Sales   MetricChange `json:"sales"`
	Orders  MetricChange `json:"orders"`
	ROAS    MetricChange `json:"roas"`
	MeanUIS MetricChange `json:"mean_uis"`
}

// CompareRollups diffs two rollups of the same group key, metric by metric.
func CompareRollups(current, previous Rollup) SnapshotComparison {
	return SnapshotComparison{
		Key:     current.Key,
		Spend:   Compare(current.Spend, previous.Spend),
		Sales:   Compare(current.Sales, previous.Sales),
		Orders:  Compare(current.Orders, previous.Orders),
		ROAS:    Compare(current.ROAS, previous.ROAS),
		MeanUIS: Compare(current.MeanUIS, previous.MeanUIS),
	}
}

// CompareSnapshots matches current rollups against previous ones by key and
// diffs each matched pair. Groups present in only one period are skipped;
// there is no meaningful delta for them.
func CompareSnapshots(current, previous []Rollup) []SnapshotComparison {
	prevByKey := make(map[string]Rollup, len(previous))
	for _, r := range previous {
		prevByKey[r.Key] = r
	}

	var out []SnapshotComparison
	for _, cur := range current {
		prev, ok := prevByKey[cur.Key]
		if !ok {
			continue
		}
		out = append(out, CompareRollups(cur, prev))
	}
	return out
}
