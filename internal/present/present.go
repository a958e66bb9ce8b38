// Package present turns a computed quote into display strings and chart data.
package present

import (
	"math"
	"strconv"

	"github.com/Simplici0/walletcalc/internal/calcinput"
	"github.com/Simplici0/walletcalc/internal/chart"
	"github.com/Simplici0/walletcalc/internal/pricing"
)

// Chart labels and colors, in series order.
const (
	LabelMaterial = "Material Cost"
	LabelFeatures = "Features"
	LabelLabor    = "Labor & Overhead"
	LabelProfit   = "Profit"
)

var seriesColors = [...]string{"#3B82F6", "#10B981", "#F59E0B", "#EF4444"}

// Formatter renders numbers for display. Only the presentation layer rounds.
type Formatter struct {
	Symbol string
}

// NewFormatter returns a Formatter using symbol, "$" when empty.
func NewFormatter(symbol string) Formatter {
	if symbol == "" {
		symbol = "$"
	}
	return Formatter{Symbol: symbol}
}

// Money formats v with the currency symbol and exactly two decimals.
func (f Formatter) Money(v float64) string {
	return f.Symbol + chart.FixedString(v, 2)
}

// Headline formats v with the currency symbol rounded to whole units.
func (f Formatter) Headline(v float64) string {
	return f.Symbol + chart.FixedString(v, 0)
}

// Multiplier formats a size multiplier as "1.2×".
func (f Formatter) Multiplier(v float64) string {
	return shortest(v) + "×"
}

// Percent formats a margin readout as "40%".
func (f Formatter) Percent(v float64) string {
	return shortest(v) + "%"
}

func shortest(v float64) string {
	switch {
	case math.IsNaN(v):
		return "NaN"
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Line is one labeled row of a quote.
type Line struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// View holds every display string for one calculation.
type View struct {
	MaterialLabel  string   `json:"material"`
	SizeLabel      string   `json:"size"`
	FeatureLabels  []string `json:"features"`
	Quantity       int      `json:"quantity"`
	MarginDisplay  string   `json:"margin_display"`
	HeadlinePrice  string   `json:"headline_price"`
	MaterialCost   string   `json:"material_cost"`
	SizeAdjustment string   `json:"size_adjustment"`
	FeaturesCost   string   `json:"features_cost"`
	LaborCost      string   `json:"labor_cost"`
	TotalUnitCost  string   `json:"total_unit_cost"`
	SuggestedPrice string   `json:"suggested_price"`
	ProfitPerUnit  string   `json:"profit_per_unit"`
	TotalRevenue   string   `json:"total_revenue"`
	TotalProfit    string   `json:"total_profit"`
	BudgetPrice    string   `json:"budget_price"`
	StandardPrice  string   `json:"standard_price"`
	PremiumPrice   string   `json:"premium_price"`
}

// Build renders quote into a View. The margin readout echoes what the user typed.
func (f Formatter) Build(in calcinput.Input, quote pricing.Quote) View {
	b := quote.Breakdown
	labels := make([]string, 0, len(in.Features))
	for _, feature := range in.Features {
		labels = append(labels, feature.Label)
	}

	margin := in.MarginRaw + "%"
	if in.MarginRaw == "" {
		margin = f.Percent(quote.Config.ProfitMarginPercent)
	}

	return View{
		MaterialLabel:  in.Material.Label,
		SizeLabel:      in.Size.Label,
		FeatureLabels:  labels,
		Quantity:       quote.Config.Quantity,
		MarginDisplay:  margin,
		HeadlinePrice:  f.Headline(b.SuggestedUnitPrice),
		MaterialCost:   f.Money(b.AdjustedMaterialCost),
		SizeAdjustment: f.Multiplier(quote.Config.SizeMultiplier),
		FeaturesCost:   f.Money(b.FeaturesCost),
		LaborCost:      f.Money(b.LaborCost),
		TotalUnitCost:  f.Money(b.TotalUnitCost),
		SuggestedPrice: f.Money(b.SuggestedUnitPrice),
		ProfitPerUnit:  f.Money(b.ProfitPerUnit),
		TotalRevenue:   f.Money(b.TotalRevenue),
		TotalProfit:    f.Money(b.TotalProfit),
		BudgetPrice:    f.Money(quote.Tiers.BudgetPrice),
		StandardPrice:  f.Money(quote.Tiers.StandardPrice),
		PremiumPrice:   f.Money(quote.Tiers.PremiumPrice),
	}
}

// Lines returns the per-unit, bulk and tier rows of v in display order.
func (v View) Lines() []Line {
	return []Line{
		{Label: "Material cost", Value: v.MaterialCost},
		{Label: "Size adjustment", Value: v.SizeAdjustment},
		{Label: "Features", Value: v.FeaturesCost},
		{Label: "Labor & overhead", Value: v.LaborCost},
		{Label: "Total unit cost", Value: v.TotalUnitCost},
		{Label: "Suggested unit price", Value: v.SuggestedPrice},
		{Label: "Profit per unit", Value: v.ProfitPerUnit},
		{Label: "Total revenue", Value: v.TotalRevenue},
		{Label: "Total profit", Value: v.TotalProfit},
		{Label: "Budget price", Value: v.BudgetPrice},
		{Label: "Standard price", Value: v.StandardPrice},
		{Label: "Premium price", Value: v.PremiumPrice},
	}
}

// CostSeries returns the four-category chart series for quote.
func CostSeries(quote pricing.Quote) chart.Series {
	b := quote.Breakdown
	return chart.Series{
		{Label: LabelMaterial, Value: b.AdjustedMaterialCost, Color: seriesColors[0]},
		{Label: LabelFeatures, Value: b.FeaturesCost, Color: seriesColors[1]},
		{Label: LabelLabor, Value: b.LaborCost, Color: seriesColors[2]},
		{Label: LabelProfit, Value: b.ProfitPerUnit, Color: seriesColors[3]},
	}
}
