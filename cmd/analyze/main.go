package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/ignite/ppc-intelligence/internal/export"
	"github.com/ignite/ppc-intelligence/internal/pipeline"
	"github.com/ignite/ppc-intelligence/internal/portfolio"
	"github.com/ignite/ppc-intelligence/internal/report"
)

func main() {
	var (
		filePath    = flag.String("file", "", "search term report CSV to analyze")
		margin      = flag.Float64("margin", 40, "profit margin percent [1,90]")
		budget      = flag.Float64("budget", 0, "incremental budget to simulate (0 skips simulation)")
		dailyBudget = flag.Float64("daily-budget", 10, "daily budget for isolation campaigns")
		outDir      = flag.String("out", "", "directory for bulk export files (empty skips exports)")
	)
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		os.Exit(2)
	}

	f, err := os.Open(*filePath)
	if err != nil {
		log.Fatalf("Failed to open report: %v", err)
	}
	defer f.Close()

	records, resolution, err := report.Parse(f, report.DefaultAliasTable())
	if err != nil {
		log.Fatalf("Failed to parse report: %v", err)
	}
	if len(resolution.Defaulted) > 0 {
		log.Printf("[resolver] fields defaulted (no matching column): %v", resolution.Defaulted)
	}

	cfg := pipeline.DefaultConfig()
	cfg.MarginPercent = *margin

	analysis, err := pipeline.Run(records, cfg)
	if err != nil {
		log.Fatalf("Pipeline failed: %v", err)
	}

	o := analysis.Overview
	fmt.Printf("Records:          %d\n", o.Records)
	fmt.Printf("Spend:            %.2f\n", o.TotalSpend)
	fmt.Printf("Sales:            %.2f\n", o.TotalSales)
	fmt.Printf("Mean ROAS:        %.2f\n", o.MeanROAS)
	fmt.Printf("Mean CVR%%:        %.2f\n", o.MeanCVR)
	fmt.Printf("Break-even ROAS:  %.2f\n", o.BreakEvenROAS)
	fmt.Printf("Mean UIS:         %.2f\n", o.MeanUIS)
	fmt.Printf("Hard waste:       %.2f\n", o.TotalHardWaste)

	rollups := portfolio.BuildRollups(analysis.Records, portfolio.GroupByCampaign)
	fmt.Printf("\nCampaigns (%d):\n", len(rollups))
	for _, r := range rollups {
		fmt.Printf("  %-40s spend=%10.2f sales=%10.2f roas=%6.2f uis=%5.1f\n",
			r.Key, r.Spend, r.Sales, r.ROAS, r.MeanUIS)
	}

	if *budget > 0 {
		allocations, err := portfolio.SimulateBudget(rollups, *budget)
		if err != nil {
			log.Fatalf("Simulation failed: %v", err)
		}
		fmt.Printf("\nBudget simulation (+%.2f):\n", *budget)
		for _, a := range allocations {
			fmt.Printf("  %-40s +%10.2f -> clicks=%.0f orders=%.1f\n",
				a.Key, a.AllocatedBudget, a.ProjectedClicks, a.ProjectedOrders)
		}
	}

	if *outDir != "" {
		if err := os.MkdirAll(*outDir, 0755); err != nil {
			log.Fatalf("Failed to create output dir: %v", err)
		}
		now := time.Now()
		writeExport(*outDir, "smart_bid_bulk.csv", export.FileSmartBid, export.SmartBidRows(analysis.Records))
		writeExport(*outDir, "negatives.csv", export.FileNegatives, export.NegativeRows(analysis.NegativeCandidates()))
		writeExport(*outDir, "isolation_campaigns.csv", export.FileIsolation,
			export.IsolationRows(analysis.IsolationCandidates(), *dailyBudget, now))
	}
}

func writeExport(dir, name string, kind export.FileKind, rows []export.BulkRow) {
	path := filepath.Join(dir, name)
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("Failed to create %s: %v", path, err)
	}
	defer f.Close()
	if err := export.WriteCSV(f, kind, rows); err != nil {
		log.Fatalf("Failed to write %s: %v", path, err)
	}
	log.Printf("[export] wrote %d rows to %s", len(rows), path)
}
