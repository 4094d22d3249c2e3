package pipeline

import (
	"testing"

	"github.com/ignite/ppc-intelligence/internal/report"
)

func TestBidMultiplier(t *testing.T) {
	tiers := DefaultConfig().BidTiers

	tests := []struct {
		uis  float64
		want float64
	}{
		{100, 1.25},
		{80, 1.25},
		{79.99, 1.15},
		{60, 1.15},
		{59.99, 1.00},
		{40, 1.00},
		{39.99, 0.90},
		{20, 0.90},
		{19.99, 0.80},
		{0, 0.80},
	}
	for _, tt := range tests {
		if got := BidMultiplier(tt.uis, tiers); got != tt.want {
			t.Errorf("BidMultiplier(%v) = %v, want %v", tt.uis, got, tt.want)
		}
	}
}

// Every score in [0,100] must land in exactly one tier of any table that
// passes validation.
func TestBidMultiplierTotal(t *testing.T) {
	for _, tiers := range [][]BidTier{DefaultConfig().BidTiers, ThreeTierBidTable()} {
		for uis := 0.0; uis <= 100.0; uis += 0.25 {
			got := BidMultiplier(uis, tiers)
			found := false
			for _, tier := range tiers {
				if got == tier.Multiplier {
					found = true
					break
				}
			}
			if !found {
				t.Fatalf("BidMultiplier(%v) = %v is not a tier multiplier", uis, got)
			}
		}
	}
}

func TestBidMultiplierGappedTableHolds(t *testing.T) {
	tiers := []BidTier{{MinUIS: 80, Multiplier: 1.25}}
	if got := BidMultiplier(30, tiers); got != 1.0 {
		t.Errorf("gapped table should hold the bid, got %v", got)
	}
}

func TestApplyBids(t *testing.T) {
	records := []report.PerformanceRecord{
		{CPC: 10, UIS: 100},
		{CPC: 40, UIS: 20.6},
		{CPC: 0, UIS: 50},
	}
	ApplyBids(records, DefaultConfig().BidTiers)

	if records[0].SmartBid != 12.5 {
		t.Errorf("SmartBid = %v, want 12.5", records[0].SmartBid)
	}
	if records[1].SmartBid != 36 {
		t.Errorf("SmartBid = %v, want 36", records[1].SmartBid)
	}
	if records[2].SmartBid != 0 {
		t.Errorf("zero CPC must yield zero bid, got %v", records[2].SmartBid)
	}
}
