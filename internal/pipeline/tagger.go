package pipeline

import (
	"strings"

	"github.com/ignite/ppc-intelligence/internal/report"
)

// Search intent labels, first-match wins in the order below.
const (
	IntentTransactional = "Transactional"
	IntentCommercial    = "Commercial"
	IntentCompetitor    = "Competitor"
	IntentResearch      = "Research"
	IntentGeneric       = "Generic"
)

var (
	transactionalTokens = []string{"buy", "order", "price", "deal"}
	commercialTokens    = []string{"best", "top", "review"}
	researchTokens      = []string{"how", "guide", "meaning"}
)

// TagRecords assigns the coarse cluster key and the search intent label to
// every record. Both are deterministic functions of the search term text.
func TagRecords(records []report.PerformanceRecord, competitorBrands []string) {
	for i := range records {
		r := &records[i]
		r.Cluster = ClusterKey(r.SearchTerm)
		r.Intent = ClassifyIntent(r.SearchTerm, competitorBrands)
	}
}

// ClusterKey lowercases the search term, normalizes whitespace, and keeps
// the first two tokens. Terms with fewer tokens cluster under what they
// have.
func ClusterKey(searchTerm string) string {
	tokens := strings.Fields(strings.ToLower(searchTerm))
	if len(tokens) > 2 {
		tokens = tokens[:2]
	}
	return strings.Join(tokens, " ")
}

// ClassifyIntent labels the search term by case-insensitive substring
// containment against the ordered rule list. Unmatched terms are Generic.
func ClassifyIntent(searchTerm string, competitorBrands []string) string {
	t := strings.ToLower(searchTerm)
	switch {
	case containsAny(t, transactionalTokens):
		return IntentTransactional
	case containsAny(t, commercialTokens):
		return IntentCommercial
	case containsAny(t, competitorBrands):
		return IntentCompetitor
	case containsAny(t, researchTokens):
		return IntentResearch
	default:
		return IntentGeneric
	}
}

func containsAny(s string, tokens []string) bool {
	for _, tok := range tokens {
		if tok != "" && strings.Contains(s, strings.ToLower(tok)) {
			return true
		}
	}
	return false
}
