package pipeline

import "fmt"

// WastePolicy selects how hard waste is detected for zero-order spend.
type WastePolicy string

const (
	// WastePolicyFixed flags zero-order spend above a fixed currency amount.
	WastePolicyFixed WastePolicy = "fixed"
	// WastePolicyCPCMultiple flags zero-order spend above a multiple of the
	// set-wide mean CPC.
	WastePolicyCPCMultiple WastePolicy = "cpc_multiple"
)

// PenaltySource selects which signal feeds the UIS penalty term.
type PenaltySource string

const (
	// PenaltyPressure scales the continuous 0-100 pressure score.
	PenaltyPressure PenaltySource = "pressure"
	// PenaltyRisk applies the full penalty weight when profit_risk is set.
	PenaltyRisk PenaltySource = "risk"
)

// WeightSet holds the UIS factor weights. The weights need not sum to 100;
// the only hard contract is the final clip to [0,100].
type WeightSet struct {
	ROAS    float64 `yaml:"roas" json:"roas"`
	CVR     float64 `yaml:"cvr" json:"cvr"`
	CTR     float64 `yaml:"ctr" json:"ctr"`
	CPC     float64 `yaml:"cpc" json:"cpc"`
	Penalty float64 `yaml:"penalty" json:"penalty"`
}

// BidTier maps a minimum UIS to a bid multiplier. Tiers are evaluated
// high-to-low; the first tier whose MinUIS the score reaches wins.
type BidTier struct {
	MinUIS     float64 `yaml:"min_uis" json:"min_uis"`
	Multiplier float64 `yaml:"multiplier" json:"multiplier"`
}

// Config parameterizes one pipeline run. All the formula variants the
// platform has shipped over time are expressible here: weight set, waste
// policy, penalty source, and bid tier table are data, not code.
type Config struct {
	MarginPercent float64 `yaml:"margin_percent" json:"margin_percent"`

	WastePolicy    WastePolicy `yaml:"waste_policy" json:"waste_policy"`
	WasteThreshold float64     `yaml:"waste_threshold" json:"waste_threshold"`
	SoftWaste      bool        `yaml:"soft_waste" json:"soft_waste"`
	ACOSCeiling    float64     `yaml:"acos_ceiling" json:"acos_ceiling"`

	Weights       WeightSet     `yaml:"weights" json:"weights"`
	PenaltySource PenaltySource `yaml:"penalty_source" json:"penalty_source"`
	Epsilon       float64       `yaml:"epsilon" json:"epsilon"`

	BidTiers []BidTier `yaml:"bid_tiers" json:"bid_tiers"`

	CompetitorBrands []string `yaml:"competitor_brands" json:"competitor_brands"`

	// Selection thresholds for scaling / negation / isolation candidates.
	HighScaleUIS float64 `yaml:"high_scale_uis" json:"high_scale_uis"`
	NegativeUIS  float64 `yaml:"negative_uis" json:"negative_uis"`
	IsolationUIS float64 `yaml:"isolation_uis" json:"isolation_uis"`

	// TotalRevenue, when positive, enables the TACOS overview metric
	// (ad spend relative to total ad + organic revenue).
	TotalRevenue float64 `yaml:"total_revenue" json:"total_revenue"`
}

// DefaultConfig returns the canonical scoring configuration: 40% margin,
// 5x mean-CPC waste detection, 30/25/15/15 weights with a 20-point
// pressure penalty, and the five-tier bid table.
func DefaultConfig() Config {
	return Config{
		MarginPercent:  40,
		WastePolicy:    WastePolicyCPCMultiple,
		WasteThreshold: 5,
		ACOSCeiling:    60,
		Weights: WeightSet{
			ROAS:    30,
			CVR:     25,
			CTR:     15,
			CPC:     15,
			Penalty: 20,
		},
		PenaltySource: PenaltyPressure,
		Epsilon:       0.01,
		BidTiers: []BidTier{
			{MinUIS: 80, Multiplier: 1.25},
			{MinUIS: 60, Multiplier: 1.15},
			{MinUIS: 40, Multiplier: 1.00},
			{MinUIS: 20, Multiplier: 0.90},
			{MinUIS: 0, Multiplier: 0.80},
		},
		CompetitorBrands: []string{"pandora", "tanishq", "voylla"},
		HighScaleUIS:     70,
		NegativeUIS:      30,
		IsolationUIS:     80,
	}
}

// ThreeTierBidTable is the alternate bid table shipped by earlier pipeline
// generations: no reduction band between hold and the floor.
func ThreeTierBidTable() []BidTier {
	return []BidTier{
		{MinUIS: 80, Multiplier: 1.25},
		{MinUIS: 60, Multiplier: 1.15},
		{MinUIS: 40, Multiplier: 1.00},
		{MinUIS: 0, Multiplier: 0.85},
	}
}

// Validate checks the business bounds on the configuration.
func (c *Config) Validate() error {
	if c.MarginPercent < 1 || c.MarginPercent > 90 {
		return fmt.Errorf("margin_percent %.2f outside [1,90]", c.MarginPercent)
	}
	switch c.WastePolicy {
	case WastePolicyFixed, WastePolicyCPCMultiple:
	default:
		return fmt.Errorf("unknown waste_policy %q", c.WastePolicy)
	}
	switch c.PenaltySource {
	case PenaltyPressure, PenaltyRisk:
	default:
		return fmt.Errorf("unknown penalty_source %q", c.PenaltySource)
	}
	if c.WasteThreshold < 0 {
		return fmt.Errorf("waste_threshold must be non-negative")
	}
	if c.Epsilon <= 0 {
		return fmt.Errorf("epsilon must be positive")
	}
	if len(c.BidTiers) == 0 {
		return fmt.Errorf("bid_tiers must not be empty")
	}
	if c.BidTiers[len(c.BidTiers)-1].MinUIS != 0 {
		return fmt.Errorf("last bid tier must start at uis 0 so the table is total")
	}
	for i := 1; i < len(c.BidTiers); i++ {
		if c.BidTiers[i].MinUIS >= c.BidTiers[i-1].MinUIS {
			return fmt.Errorf("bid_tiers must be ordered high to low")
		}
	}
	return nil
}

// BreakEvenROAS derives the minimum ROAS at which spend is not
// margin-negative.
func (c *Config) BreakEvenROAS() float64 {
	return 100 / c.MarginPercent
}
