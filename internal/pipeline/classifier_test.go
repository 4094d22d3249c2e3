package pipeline

import (
	"testing"

	"github.com/ignite/ppc-intelligence/internal/report"
)

func TestClassifyHardWaste(t *testing.T) {
	cfg := DefaultConfig()
	means := Means{CPC: 25, CTR: 5.5, CVR: 10, ROAS: 2.5}

	records := []report.PerformanceRecord{
		{Spend: 100, Orders: 2, ROAS: 5, CPC: 10, CTR: 1},
		{Spend: 200, Orders: 0, ROAS: 0, CPC: 40, CTR: 10},
		{Spend: 50, Orders: 0, ROAS: 0, CPC: 5, CTR: 2},
	}
	total := Classify(records, cfg, means)

	// Floor is 5 x mean CPC = 125. Only the 200 spend row crosses it.
	if records[0].HardWaste != 0 {
		t.Errorf("converting row flagged as waste: %v", records[0].HardWaste)
	}
	if records[1].HardWaste != 200 {
		t.Errorf("HardWaste = %v, want 200", records[1].HardWaste)
	}
	if records[2].HardWaste != 0 {
		t.Errorf("sub-floor row flagged as waste: %v", records[2].HardWaste)
	}
	if total != 200 {
		t.Errorf("total hard waste = %v, want 200", total)
	}
}

func TestClassifyFixedWastePolicy(t *testing.T) {
	cfg := DefaultConfig()
	cfg.WastePolicy = WastePolicyFixed
	cfg.WasteThreshold = 30

	records := []report.PerformanceRecord{
		{Spend: 31, Orders: 0},
		{Spend: 30, Orders: 0},
		{Spend: 500, Orders: 1},
	}
	Classify(records, cfg, Means{})

	if records[0].HardWaste != 31 {
		t.Errorf("HardWaste = %v, want 31", records[0].HardWaste)
	}
	if records[1].HardWaste != 0 {
		t.Errorf("spend exactly at threshold must not flag, got %v", records[1].HardWaste)
	}
	if records[2].HardWaste != 0 {
		t.Errorf("converting spend flagged as waste: %v", records[2].HardWaste)
	}
}

// Raising the waste threshold can never increase the waste total.
func TestClassifyWasteMonotonicity(t *testing.T) {
	records := []report.PerformanceRecord{
		{Spend: 10, Orders: 0},
		{Spend: 40, Orders: 0},
		{Spend: 90, Orders: 0},
		{Spend: 200, Orders: 3},
	}

	prev := -1.0
	first := true
	for _, threshold := range []float64{0, 5, 15, 50, 100, 1000} {
		cfg := DefaultConfig()
		cfg.WastePolicy = WastePolicyFixed
		cfg.WasteThreshold = threshold

		rows := make([]report.PerformanceRecord, len(records))
		copy(rows, records)
		total := Classify(rows, cfg, Means{})
		if !first && total > prev {
			t.Errorf("waste grew from %v to %v as threshold rose to %v", prev, total, threshold)
		}
		prev = total
		first = false
	}
}

func TestClassifySoftWaste(t *testing.T) {
	cfg := DefaultConfig()
	cfg.SoftWaste = true

	records := []report.PerformanceRecord{
		{Spend: 80, Orders: 1, ACOS: 75},
		{Spend: 80, Orders: 1, ACOS: 60},
	}
	Classify(records, cfg, Means{CPC: 100})

	if records[0].SoftWaste != 80 {
		t.Errorf("SoftWaste = %v, want 80", records[0].SoftWaste)
	}
	if records[1].SoftWaste != 0 {
		t.Errorf("ACOS at the ceiling must not flag, got %v", records[1].SoftWaste)
	}
}

func TestClassifyProfitRisk(t *testing.T) {
	cfg := DefaultConfig() // margin 40 -> break-even 2.5
	records := []report.PerformanceRecord{
		{ROAS: 2.49},
		{ROAS: 2.5},
		{ROAS: 5},
	}
	Classify(records, cfg, Means{})

	if !records[0].ProfitRisk {
		t.Error("ROAS below break-even must flag profit risk")
	}
	if records[1].ProfitRisk {
		t.Error("ROAS at break-even must not flag profit risk")
	}
	if records[2].ProfitRisk {
		t.Error("profitable ROAS flagged as risk")
	}
}

func TestPressureScore(t *testing.T) {
	means := Means{CPC: 25, CTR: 5.5, CVR: 10, ROAS: 2.5}

	tests := []struct {
		name string
		rec  report.PerformanceRecord
		want float64
	}{
		{"all calm", report.PerformanceRecord{CPC: 10, ROAS: 5, CTR: 8, Orders: 2, Spend: 100}, 0},
		{"expensive and unprofitable", report.PerformanceRecord{CPC: 40, ROAS: 0, CTR: 10, Orders: 0, Spend: 200}, 80},
		{"everything wrong", report.PerformanceRecord{CPC: 40, ROAS: 0, CTR: 1, Orders: 0, Spend: 200}, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := pressureScore(&tt.rec, means)
			if got != tt.want {
				t.Errorf("pressureScore = %v, want %v", got, tt.want)
			}
		})
	}
}
