package portfolio

import "fmt"

// Allocation is one rollup's share of a what-if incremental budget with the
// projected outcome at the group's current efficiency.
type Allocation struct {
	Rollup
	Weight          float64 `json:"weight"`
	AllocatedBudget float64 `json:"allocated_budget"`
	ProjectedSpend  float64 `json:"projected_spend"`
	ProjectedClicks float64 `json:"projected_clicks"`
	ProjectedOrders float64 `json:"projected_orders"`
}

// SimulateBudget distributes an incremental budget across rollups in
// proportion to mean UIS and projects the resulting clicks and orders.
// When every group's mean UIS is zero there is nothing to weight by and
// every allocation is zero; the simulation never divides by zero.
func SimulateBudget(rollups []Rollup, budget float64) ([]Allocation, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("budget must be positive, got %.2f", budget)
	}

	var uisSum float64
	for i := range rollups {
		uisSum += rollups[i].MeanUIS
	}

	allocations := make([]Allocation, len(rollups))
	for i, r := range rollups {
		a := Allocation{Rollup: r}
		if uisSum > 0 {
			a.Weight = r.MeanUIS / uisSum
		}
		a.AllocatedBudget = a.Weight * budget
		a.ProjectedSpend = r.Spend + a.AllocatedBudget
		a.ProjectedClicks = safeDiv(a.ProjectedSpend, r.MeanCPC)
		a.ProjectedOrders = a.ProjectedClicks * r.MeanCVR / 100
		allocations[i] = a
	}

	return allocations, nil
}
