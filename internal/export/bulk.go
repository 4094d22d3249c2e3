package export

import (
	"math"
	"time"

	"github.com/ignite/ppc-intelligence/internal/report"
)

// Match types accepted by the bulk operations format.
const (
	MatchExact         = "Exact"
	MatchNegativeExact = "Negative Exact"
)

// maxNameLen is the platform limit on campaign and ad group names; keyword
// text used as a name is truncated to fit.
const maxNameLen = 40

// BulkRow is one flat key/value row of an advertising-platform bulk
// operations file.
type BulkRow struct {
	RecordType   string  `json:"record_type"`
	CampaignName string  `json:"campaign_name"`
	AdGroupName  string  `json:"ad_group_name"`
	Keyword      string  `json:"keyword"`
	MatchType    string  `json:"match_type"`
	Bid          float64 `json:"bid"`
	Status       string  `json:"status"`
	// Isolation campaigns only.
	DailyBudget float64 `json:"daily_budget,omitempty"`
	StartDate   string  `json:"start_date,omitempty"`
}

// SmartBidRows builds the bulk rows that push recommended bids back to the
// platform: one exact-match keyword row per record.
func SmartBidRows(records []report.PerformanceRecord) []BulkRow {
	rows := make([]BulkRow, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, BulkRow{
			RecordType:   "Keyword",
			CampaignName: r.Campaign,
			AdGroupName:  r.AdGroup,
			Keyword:      r.SearchTerm,
			MatchType:    MatchExact,
			Bid:          round2(r.SmartBid),
			Status:       "enabled",
		})
	}
	return rows
}

// NegativeRows builds negative-exact keyword rows for the records the
// pipeline marked as negation candidates.
func NegativeRows(records []report.PerformanceRecord) []BulkRow {
	rows := make([]BulkRow, 0, len(records))
	for i := range records {
		r := &records[i]
		rows = append(rows, BulkRow{
			RecordType:   "Keyword",
			CampaignName: r.Campaign,
			AdGroupName:  r.AdGroup,
			Keyword:      r.SearchTerm,
			MatchType:    MatchNegativeExact,
			Bid:          round2(r.SmartBid),
			Status:       "enabled",
		})
	}
	return rows
}

// IsolationRows builds single-keyword campaign rows for top performers:
// the derived campaign name is the truncated search term suffixed "_Exact",
// the daily budget is the configured constant, and the start date is
// stamped at export time.
func IsolationRows(records []report.PerformanceRecord, dailyBudget float64, now time.Time) []BulkRow {
	rows := make([]BulkRow, 0, len(records))
	startDate := now.Format("20060102")
	for i := range records {
		r := &records[i]
		name := truncate(r.SearchTerm, maxNameLen)
		rows = append(rows, BulkRow{
			RecordType:   "Keyword",
			CampaignName: name + "_Exact",
			AdGroupName:  name,
			Keyword:      r.SearchTerm,
			MatchType:    MatchExact,
			Bid:          round2(r.SmartBid),
			Status:       "enabled",
			DailyBudget:  dailyBudget,
			StartDate:    startDate,
		})
	}
	return rows
}

// truncate limits s to n characters. The platform counts name length in
// characters, so truncation works on runes rather than bytes.
func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
