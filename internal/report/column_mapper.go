package report

import (
	"strconv"
	"strings"
)

// CanonicalField is a normalized field name used across all report sources.
type CanonicalField string

const (
	FieldSearchTerm  CanonicalField = "search_term"
	FieldCampaign    CanonicalField = "campaign"
	FieldAdGroup     CanonicalField = "ad_group"
	FieldSKU         CanonicalField = "sku"
	FieldSpend       CanonicalField = "spend"
	FieldSales       CanonicalField = "sales"
	FieldOrders      CanonicalField = "orders"
	FieldClicks      CanonicalField = "clicks"
	FieldImpressions CanonicalField = "impressions"
)

// UnknownSKU is the sentinel SKU assigned when no SKU column resolves.
const UnknownSKU = "unknown"

// AliasEntry pairs a canonical field with its ordered list of acceptable
// header substrings. Earlier aliases win over later ones.
type AliasEntry struct {
	Field   CanonicalField
	Aliases []string
}

// AliasTable is the ordered set of alias entries a resolver instance uses.
// Advertising platforms name the same counters differently between report
// types, so callers may swap in their own table per pipeline instantiation.
type AliasTable []AliasEntry

// DefaultAliasTable covers the search term report headers seen across
// Amazon bulk and console exports.
func DefaultAliasTable() AliasTable {
	return AliasTable{
		{FieldSearchTerm, []string{"search term", "customer search term", "query"}},
		{FieldCampaign, []string{"campaign"}},
		{FieldAdGroup, []string{"ad group", "adgroup"}},
		{FieldSKU, []string{"sku", "advertised sku"}},
		{FieldSpend, []string{"spend", "cost"}},
		{FieldSales, []string{"sales", "revenue"}},
		{FieldOrders, []string{"order", "orders", "conversions"}},
		{FieldClicks, []string{"clicks"}},
		{FieldImpressions, []string{"impressions"}},
	}
}

// Resolution is the outcome of mapping a report's headers onto canonical
// fields: which column index serves each field, and which fields fell back
// to their documented defaults.
type Resolution struct {
	Indexes   map[CanonicalField]int `json:"indexes"`
	Defaulted []CanonicalField       `json:"defaulted"`
}

// Resolved reports whether the field matched an actual column.
func (r *Resolution) Resolved(f CanonicalField) bool {
	_, ok := r.Indexes[f]
	return ok
}

// ResolveColumns maps the table's headers to canonical fields. For each
// field the headers are scanned in original column order and the first
// header containing any of the field's aliases wins. Fields with no match
// are recorded in Defaulted; completely unknown headers never cause an
// error.
func ResolveColumns(headers []string, aliases AliasTable) *Resolution {
	res := &Resolution{Indexes: make(map[CanonicalField]int, len(aliases))}

	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	for _, entry := range aliases {
		idx := -1
	scan:
		for i, h := range normalized {
			for _, alias := range entry.Aliases {
				if strings.Contains(h, strings.ToLower(alias)) {
					idx = i
					break scan
				}
			}
		}
		if idx >= 0 {
			res.Indexes[entry.Field] = idx
		} else {
			res.Defaulted = append(res.Defaulted, entry.Field)
		}
	}

	return res
}

// BuildRecords materializes performance records from a parsed table using a
// column resolution. Unresolved numeric fields default to 0, the SKU to the
// unknown sentinel, and identity text fields to an empty string. Cells that
// fail to parse as numbers also default to 0 rather than failing the run.
func BuildRecords(table *Table, res *Resolution) []PerformanceRecord {
	records := make([]PerformanceRecord, 0, len(table.Rows))

	for _, row := range table.Rows {
		rec := PerformanceRecord{SKU: UnknownSKU}
		rec.SearchTerm = textCell(row, res, FieldSearchTerm, "")
		rec.Campaign = textCell(row, res, FieldCampaign, "")
		rec.AdGroup = textCell(row, res, FieldAdGroup, "")
		rec.SKU = textCell(row, res, FieldSKU, UnknownSKU)
		rec.Spend = numericCell(row, res, FieldSpend)
		rec.Sales = numericCell(row, res, FieldSales)
		rec.Orders = numericCell(row, res, FieldOrders)
		rec.Clicks = numericCell(row, res, FieldClicks)
		rec.Impressions = numericCell(row, res, FieldImpressions)
		records = append(records, rec)
	}

	return records
}

func textCell(row []string, res *Resolution, f CanonicalField, def string) string {
	idx, ok := res.Indexes[f]
	if !ok || idx >= len(row) {
		return def
	}
	v := strings.TrimSpace(row[idx])
	if v == "" {
		return def
	}
	return v
}

func numericCell(row []string, res *Resolution, f CanonicalField) float64 {
	idx, ok := res.Indexes[f]
	if !ok || idx >= len(row) {
		return 0
	}
	raw := strings.TrimSpace(row[idx])
	// Strip currency symbols and thousands separators from console exports.
	raw = strings.TrimLeft(raw, "$₹£€")
	raw = strings.ReplaceAll(raw, ",", "")
	if raw == "" {
		return 0
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0
	}
	return v
}
