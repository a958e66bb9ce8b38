package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"go.uber.org/zap"

	"github.com/Simplici0/walletcalc/internal/calcinput"
	"github.com/Simplici0/walletcalc/internal/chart"
	"github.com/Simplici0/walletcalc/internal/observability"
	"github.com/Simplici0/walletcalc/internal/present"
	"github.com/Simplici0/walletcalc/internal/pricing"
)

const maxAPIBodyBytes = 1 << 16

type apiQuoteRequest struct {
	Material     string   `json:"material"`
	Size         string   `json:"size"`
	Features     []string `json:"features"`
	Quantity     *int     `json:"quantity"`
	ProfitMargin *float64 `json:"profit_margin"`
}

type apiConfiguration struct {
	Material            string   `json:"material"`
	Size                string   `json:"size"`
	MaterialUnitCost    float64  `json:"material_unit_cost"`
	SizeMultiplier      float64  `json:"size_multiplier"`
	Features            []string `json:"features"`
	Quantity            int      `json:"quantity"`
	ProfitMarginPercent float64  `json:"profit_margin_percent"`
}

type apiBreakdown struct {
	AdjustedMaterialCost float64 `json:"adjusted_material_cost"`
	FeaturesCost         float64 `json:"features_cost"`
	LaborCost            float64 `json:"labor_cost"`
	TotalUnitCost        float64 `json:"total_unit_cost"`
	SuggestedUnitPrice   float64 `json:"suggested_unit_price"`
	ProfitPerUnit        float64 `json:"profit_per_unit"`
	TotalRevenue         float64 `json:"total_revenue"`
	TotalProfit          float64 `json:"total_profit"`
}

type apiTiers struct {
	BudgetPrice   float64 `json:"budget_price"`
	StandardPrice float64 `json:"standard_price"`
	PremiumPrice  float64 `json:"premium_price"`
}

type apiChartSlice struct {
	chart.Slice
	Tooltip string `json:"tooltip"`
}

type apiQuoteResponse struct {
	Configuration apiConfiguration `json:"configuration"`
	Breakdown     apiBreakdown     `json:"breakdown"`
	Tiers         apiTiers         `json:"tiers"`
	Display       present.View     `json:"display"`
	Chart         []apiChartSlice  `json:"chart"`
}

type apiError struct {
	Error string `json:"error"`
}

// toValues maps the JSON request onto the form fields the input adapter reads.
func (req apiQuoteRequest) toValues() url.Values {
	values := url.Values{}
	if req.Material != "" {
		values.Set(calcinput.FieldMaterial, req.Material)
	}
	if req.Size != "" {
		values.Set(calcinput.FieldSize, req.Size)
	}
	if req.Quantity != nil {
		values.Set(calcinput.FieldQuantity, strconv.Itoa(*req.Quantity))
	}
	if req.ProfitMargin != nil {
		values.Set(calcinput.FieldProfitMargin, strconv.FormatFloat(*req.ProfitMargin, 'f', -1, 64))
	}
	for _, f := range req.Features {
		values.Set(f, "on")
	}
	return values
}

func (s *server) handleAPIQuote(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.FromContext(ctx)

	var req apiQuoteRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxAPIBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, apiError{Error: fmt.Sprintf("invalid request body: %v", err)})
		return
	}

	for _, f := range req.Features {
		if !pricing.FeatureID(f).IsKnown() {
			writeJSON(w, http.StatusBadRequest, apiError{Error: fmt.Sprintf("unknown feature %q", f)})
			return
		}
	}

	calc, err := s.calculate(ctx, req.toValues())
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			logger.Error("api calculation failed", zap.Error(err))
		}
		writeJSON(w, status, apiError{Error: publicMessage(err)})
		return
	}

	writeJSON(w, http.StatusOK, newAPIQuoteResponse(calc, s.formatter))
}

func newAPIQuoteResponse(calc calculation, f present.Formatter) apiQuoteResponse {
	cfg := calc.Quote.Config
	b := calc.Quote.Breakdown

	features := make([]string, 0, len(cfg.Features))
	for _, id := range cfg.Features.IDs() {
		features = append(features, string(id))
	}

	slices := make([]apiChartSlice, len(calc.Series))
	for i, slice := range calc.Series {
		slices[i] = apiChartSlice{Slice: slice, Tooltip: calc.Series.Tooltip(i, f.Money)}
	}

	return apiQuoteResponse{
		Configuration: apiConfiguration{
			Material:            calc.Input.Material.Key,
			Size:                calc.Input.Size.Key,
			MaterialUnitCost:    cfg.MaterialUnitCost,
			SizeMultiplier:      cfg.SizeMultiplier,
			Features:            features,
			Quantity:            cfg.Quantity,
			ProfitMarginPercent: cfg.ProfitMarginPercent,
		},
		Breakdown: apiBreakdown{
			AdjustedMaterialCost: b.AdjustedMaterialCost,
			FeaturesCost:         b.FeaturesCost,
			LaborCost:            b.LaborCost,
			TotalUnitCost:        b.TotalUnitCost,
			SuggestedUnitPrice:   b.SuggestedUnitPrice,
			ProfitPerUnit:        b.ProfitPerUnit,
			TotalRevenue:         b.TotalRevenue,
			TotalProfit:          b.TotalProfit,
		},
		Tiers: apiTiers{
			BudgetPrice:   calc.Quote.Tiers.BudgetPrice,
			StandardPrice: calc.Quote.Tiers.StandardPrice,
			PremiumPrice:  calc.Quote.Tiers.PremiumPrice,
		},
		Display: calc.View,
		Chart:   slices,
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
