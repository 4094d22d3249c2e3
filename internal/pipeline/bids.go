package pipeline

import "github.com/ignite/ppc-intelligence/internal/report"

// BidMultiplier resolves a UIS value against an ordered tier table.
// Tiers are scanned high-to-low and the first tier whose floor the score
// reaches wins, so the table is a total function over [0,100].
func BidMultiplier(uis float64, tiers []BidTier) float64 {
	for _, tier := range tiers {
		if uis >= tier.MinUIS {
			return tier.Multiplier
		}
	}
	// Unreachable when the table ends at MinUIS 0 (enforced by Validate);
	// hold the current bid if a caller hands in a gapped table anyway.
	return 1.0
}

// ApplyBids stamps the recommended bid on every record:
// smart_bid = cpc x tier multiplier, with no clamp beyond what the table
// implies.
func ApplyBids(records []report.PerformanceRecord, tiers []BidTier) {
	for i := range records {
		r := &records[i]
		r.SmartBid = r.CPC * BidMultiplier(r.UIS, tiers)
	}
}
