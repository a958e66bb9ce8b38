package pricing

const (
	// LaborCost is the fixed labor and overhead cost charged on every unit.
	LaborCost = 15.0

	BudgetMultiplier   = 1.2
	StandardMultiplier = 1.5
	PremiumMultiplier  = 2.0
)

// Configuration represents the inputs of a single pricing calculation.
type Configuration struct {
	MaterialUnitCost    float64
	SizeMultiplier      float64
	Features            FeatureSet
	Quantity            int
	ProfitMarginPercent float64
}

// CostBreakdown contains the per-unit costs and the bulk projections of a calculation.
type CostBreakdown struct {
	AdjustedMaterialCost float64
	FeaturesCost         float64
	LaborCost            float64
	TotalUnitCost        float64
	SuggestedUnitPrice   float64
	ProfitPerUnit        float64
	TotalRevenue         float64
	TotalProfit          float64
}

// PricingTiers contains the fixed-multiplier price suggestions derived from the unit cost.
type PricingTiers struct {
	BudgetPrice   float64
	StandardPrice float64
	PremiumPrice  float64
}

// Quote groups the full pricing output together with the normalized configuration it was computed from.
type Quote struct {
	Config    Configuration
	Breakdown CostBreakdown
	Tiers     PricingTiers
}

// Engine computes quotes against a feature price table.
type Engine struct {
	prices FeaturePrices
}

// NewEngine returns an Engine using prices. A nil table falls back to DefaultFeaturePrices.
func NewEngine(prices FeaturePrices) *Engine {
	if prices == nil {
		prices = DefaultFeaturePrices()
	}
	return &Engine{prices: prices.clone()}
}

// Compute returns the cost breakdown and tiers for cfg. Values are not rounded;
// malformed numbers propagate as NaN.
func (e *Engine) Compute(cfg Configuration) Quote {
	cfg = cfg.Normalize()

	featuresCost := e.prices.Sum(cfg.Features)
	adjustedMaterialCost := cfg.MaterialUnitCost * cfg.SizeMultiplier
	totalUnitCost := adjustedMaterialCost + featuresCost + LaborCost

	suggestedUnitPrice := totalUnitCost * (1 + cfg.ProfitMarginPercent/100)
	profitPerUnit := suggestedUnitPrice - totalUnitCost

	quantity := float64(cfg.Quantity)

	return Quote{
		Config: cfg,
		Breakdown: CostBreakdown{
			AdjustedMaterialCost: adjustedMaterialCost,
			FeaturesCost:         featuresCost,
			LaborCost:            LaborCost,
			TotalUnitCost:        totalUnitCost,
			SuggestedUnitPrice:   suggestedUnitPrice,
			ProfitPerUnit:        profitPerUnit,
			TotalRevenue:         suggestedUnitPrice * quantity,
			TotalProfit:          profitPerUnit * quantity,
		},
		Tiers: TiersFor(totalUnitCost),
	}
}

// TiersFor derives the budget, standard and premium prices from a unit cost.
func TiersFor(totalUnitCost float64) PricingTiers {
	return PricingTiers{
		BudgetPrice:   totalUnitCost * BudgetMultiplier,
		StandardPrice: totalUnitCost * StandardMultiplier,
		PremiumPrice:  totalUnitCost * PremiumMultiplier,
	}
}

// Normalize returns a copy of cfg with a zero quantity replaced by 1.
func (cfg Configuration) Normalize() Configuration {
	if cfg.Quantity == 0 {
		cfg.Quantity = 1
	}
	return cfg
}
