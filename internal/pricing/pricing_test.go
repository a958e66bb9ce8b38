package pricing

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

func nearlyEqual(t *testing.T, name string, got, want float64) {
	t.Helper()
	require.InDeltaf(t, want, got, 1e-9, "%s = %v, want %v", name, got, want)
}

func TestCompute_LeatherStandardWithRFIDAndCardSlots(t *testing.T) {
	engine := NewEngine(nil)

	quote := engine.Compute(Configuration{
		MaterialUnitCost:    25,
		SizeMultiplier:      1.2,
		Features:            NewFeatureSet(FeatureRFID, FeatureCardSlots),
		Quantity:            10,
		ProfitMarginPercent: 40,
	})

	b := quote.Breakdown
	nearlyEqual(t, "adjustedMaterialCost", b.AdjustedMaterialCost, 30)
	nearlyEqual(t, "featuresCost", b.FeaturesCost, 14)
	nearlyEqual(t, "laborCost", b.LaborCost, 15)
	nearlyEqual(t, "totalUnitCost", b.TotalUnitCost, 59)
	nearlyEqual(t, "suggestedUnitPrice", b.SuggestedUnitPrice, 82.6)
	nearlyEqual(t, "profitPerUnit", b.ProfitPerUnit, 23.6)
	nearlyEqual(t, "totalRevenue", b.TotalRevenue, 826)
	nearlyEqual(t, "totalProfit", b.TotalProfit, 236)

	nearlyEqual(t, "budgetPrice", quote.Tiers.BudgetPrice, 70.8)
	nearlyEqual(t, "standardPrice", quote.Tiers.StandardPrice, 88.5)
	nearlyEqual(t, "premiumPrice", quote.Tiers.PremiumPrice, 118)
}

func TestCompute_NoFeaturesZeroMarginDefaultsQuantity(t *testing.T) {
	engine := NewEngine(nil)

	quote := engine.Compute(Configuration{
		MaterialUnitCost: 10,
		SizeMultiplier:   1,
	})

	require.Equal(t, 1, quote.Config.Quantity)
	nearlyEqual(t, "totalUnitCost", quote.Breakdown.TotalUnitCost, 25)
	nearlyEqual(t, "suggestedUnitPrice", quote.Breakdown.SuggestedUnitPrice, 25)
	nearlyEqual(t, "profitPerUnit", quote.Breakdown.ProfitPerUnit, 0)
	nearlyEqual(t, "totalRevenue", quote.Breakdown.TotalRevenue, 25)
	nearlyEqual(t, "totalProfit", quote.Breakdown.TotalProfit, 0)
}

func TestCompute_Invariants(t *testing.T) {
	engine := NewEngine(nil)

	tests := []struct {
		name string
		cfg  Configuration
	}{
		{
			name: "all features large size",
			cfg: Configuration{
				MaterialUnitCost:    40,
				SizeMultiplier:      1.5,
				Features:            NewFeatureSet(AllFeatures...),
				Quantity:            7,
				ProfitMarginPercent: 33.3,
			},
		},
		{
			name: "fractional values",
			cfg: Configuration{
				MaterialUnitCost:    18.15,
				SizeMultiplier:      1.1,
				Features:            NewFeatureSet(FeatureMonogram),
				Quantity:            3,
				ProfitMarginPercent: 12.7,
			},
		},
		{
			name: "negative margin",
			cfg: Configuration{
				MaterialUnitCost:    10,
				SizeMultiplier:      1,
				Quantity:            2,
				ProfitMarginPercent: -20,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			quote := engine.Compute(tt.cfg)
			b := quote.Breakdown
			qty := float64(quote.Config.Quantity)

			require.Equal(t, b.SuggestedUnitPrice-b.TotalUnitCost, b.ProfitPerUnit)
			require.Equal(t, b.SuggestedUnitPrice*qty, b.TotalRevenue)
			require.Equal(t, b.ProfitPerUnit*qty, b.TotalProfit)
			require.GreaterOrEqual(t, b.TotalUnitCost, b.LaborCost)

			require.Less(t, quote.Tiers.BudgetPrice, quote.Tiers.StandardPrice)
			require.Less(t, quote.Tiers.StandardPrice, quote.Tiers.PremiumPrice)
		})
	}
}

func TestCompute_TiersIgnoreMargin(t *testing.T) {
	engine := NewEngine(nil)
	base := Configuration{MaterialUnitCost: 18, SizeMultiplier: 1, Quantity: 1}

	withoutMargin := engine.Compute(base)
	base.ProfitMarginPercent = 85
	withMargin := engine.Compute(base)

	require.Equal(t, withoutMargin.Tiers, withMargin.Tiers)
	require.NotEqual(t, withoutMargin.Breakdown.SuggestedUnitPrice, withMargin.Breakdown.SuggestedUnitPrice)
}

func TestCompute_IsIdempotent(t *testing.T) {
	engine := NewEngine(nil)
	cfg := Configuration{
		MaterialUnitCost:    25,
		SizeMultiplier:      1.2,
		Features:            NewFeatureSet(FeatureCoinPocket),
		Quantity:            4,
		ProfitMarginPercent: 37.5,
	}

	first := engine.Compute(cfg)
	second := engine.Compute(cfg)

	require.Equal(t, first, second)
	require.Equal(t, math.Float64bits(first.Breakdown.TotalProfit), math.Float64bits(second.Breakdown.TotalProfit))
}

func TestCompute_ZeroQuantityMatchesOne(t *testing.T) {
	engine := NewEngine(nil)
	cfg := Configuration{
		MaterialUnitCost:    25,
		SizeMultiplier:      1.2,
		Features:            NewFeatureSet(FeatureRFID),
		ProfitMarginPercent: 40,
	}

	zero := engine.Compute(cfg)
	cfg.Quantity = 1
	one := engine.Compute(cfg)

	require.Equal(t, one, zero)
}

func TestCompute_NaNPropagates(t *testing.T) {
	engine := NewEngine(nil)

	quote := engine.Compute(Configuration{
		MaterialUnitCost:    math.NaN(),
		SizeMultiplier:      1,
		ProfitMarginPercent: 10,
	})

	require.True(t, math.IsNaN(quote.Breakdown.TotalUnitCost))
	require.True(t, math.IsNaN(quote.Breakdown.TotalRevenue))
	require.True(t, math.IsNaN(quote.Tiers.PremiumPrice))
	nearlyEqual(t, "laborCost", quote.Breakdown.LaborCost, LaborCost)
}

func TestCompute_CustomFeaturePrices(t *testing.T) {
	engine := NewEngine(FeaturePrices{FeatureRFID: 9.5, FeatureMonogram: 20})

	quote := engine.Compute(Configuration{
		MaterialUnitCost: 10,
		SizeMultiplier:   1,
		Features:         NewFeatureSet(FeatureRFID, FeatureMonogram, FeatureCardSlots),
	})

	// cardSlots has no price in this table.
	nearlyEqual(t, "featuresCost", quote.Breakdown.FeaturesCost, 29.5)
}

func TestNewEngine_CopiesPriceTable(t *testing.T) {
	prices := DefaultFeaturePrices()
	engine := NewEngine(prices)
	prices[FeatureRFID] = 100

	quote := engine.Compute(Configuration{MaterialUnitCost: 10, SizeMultiplier: 1, Features: NewFeatureSet(FeatureRFID)})
	nearlyEqual(t, "featuresCost", quote.Breakdown.FeaturesCost, 8)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Configuration
		kind InvalidKind
	}{
		{name: "valid", cfg: Configuration{MaterialUnitCost: 10, SizeMultiplier: 1}},
		{name: "negative margin is allowed", cfg: Configuration{MaterialUnitCost: 10, SizeMultiplier: 1, ProfitMarginPercent: -5}},
		{name: "zero material", cfg: Configuration{SizeMultiplier: 1}, kind: NonPositiveMaterialCost},
		{name: "NaN material", cfg: Configuration{MaterialUnitCost: math.NaN(), SizeMultiplier: 1}, kind: NonPositiveMaterialCost},
		{name: "negative size", cfg: Configuration{MaterialUnitCost: 10, SizeMultiplier: -1}, kind: NonPositiveSizeMultiplier},
		{name: "NaN margin", cfg: Configuration{MaterialUnitCost: 10, SizeMultiplier: 1, ProfitMarginPercent: math.NaN()}, kind: NonNumericMargin},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.kind == "" {
				require.NoError(t, err)
				return
			}

			require.ErrorIs(t, err, ErrInvalidConfiguration)
			var invalid *InvalidConfigurationError
			require.True(t, errors.As(err, &invalid))
			require.Equal(t, tt.kind, invalid.Kind)
		})
	}
}

func TestFeatureSet_IDsAreSorted(t *testing.T) {
	set := NewFeatureSet(FeatureRFID, FeatureCardSlots, FeatureRFID)

	require.Equal(t, []FeatureID{FeatureCardSlots, FeatureRFID}, set.IDs())
	require.True(t, FeatureCoinPocket.IsKnown())
	require.False(t, FeatureID("zipper").IsKnown())
}
