package report

// PerformanceRecord is one row of a search term report: a single
// (search term x campaign x ad group) observation with its raw counters
// plus every column the pipeline derives from them.
type PerformanceRecord struct {
	// Identity
	SearchTerm string `json:"search_term"`
	Campaign   string `json:"campaign"`
	AdGroup    string `json:"ad_group"`
	SKU        string `json:"sku"`

	// Raw counters
	Spend       float64 `json:"spend"`
	Sales       float64 `json:"sales"`
	Orders      float64 `json:"orders"`
	Clicks      float64 `json:"clicks"`
	Impressions float64 `json:"impressions"`

	// Derived metrics (computed, never user supplied)
	CPC  float64 `json:"cpc"`
	CTR  float64 `json:"ctr"`
	CVR  float64 `json:"cvr"`
	ROAS float64 `json:"roas"`
	ACOS float64 `json:"acos"`

	// Classification
	HardWaste     float64 `json:"hard_waste"`
	SoftWaste     float64 `json:"soft_waste"`
	ProfitRisk    bool    `json:"profit_risk"`
	PressureScore float64 `json:"pressure_score"`
	UIS           float64 `json:"uis"`
	SmartBid      float64 `json:"smart_bid"`
	Cluster       string  `json:"cluster"`
	Intent        string  `json:"intent"`
}

// Table is a parsed tabular report: normalized headers plus raw string cells.
// Headers are lowercased and trimmed at parse time so the resolver only ever
// sees normalized names.
type Table struct {
	Headers []string
	Rows    [][]string
}

// ColumnCount returns the number of columns in the header row.
func (t *Table) ColumnCount() int {
	return len(t.Headers)
}

// RowCount returns the number of data rows.
func (t *Table) RowCount() int {
	return len(t.Rows)
}
