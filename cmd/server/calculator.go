package main

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"time"

	"go.uber.org/zap"

	"github.com/Simplici0/walletcalc/internal/calcinput"
	"github.com/Simplici0/walletcalc/internal/catalog"
	"github.com/Simplici0/walletcalc/internal/chart"
	"github.com/Simplici0/walletcalc/internal/observability"
	"github.com/Simplici0/walletcalc/internal/present"
	"github.com/Simplici0/walletcalc/internal/pricing"
	"github.com/Simplici0/walletcalc/internal/quotesheet"
)

// calculation is one pass of the pipeline: form -> configuration -> quote -> view.
type calculation struct {
	Input  calcinput.Input
	Quote  pricing.Quote
	View   present.View
	Series chart.Series
}

type selection struct {
	Material string
	Size     string
	Quantity string
	Margin   string
	Features map[string]bool
}

func (s selection) HasFeature(key string) bool {
	return s.Features[key]
}

type resultsViewData struct {
	ErrorMessage string
	View         present.View
	Chart        template.HTML
	Legend       []chart.LegendEntry
}

type calculatorViewData struct {
	baseViewData
	Currency  string
	Materials []catalog.Option
	Sizes     []catalog.Option
	Features  []catalog.Option
	Selected  selection
	Results   resultsViewData
}

// calculate runs the full pipeline. Feature prices come from the same catalog read
// as the selection, so admin edits apply to the next recomputation.
func (s *server) calculate(ctx context.Context, values url.Values) (calculation, error) {
	in, err := s.input.Parse(ctx, values)
	if err != nil {
		return calculation{}, err
	}
	if err := in.Config.Validate(); err != nil {
		return calculation{Input: in}, err
	}

	quote := pricing.NewEngine(catalog.PriceTable(in.Features)).Compute(in.Config)
	return calculation{
		Input:  in,
		Quote:  quote,
		View:   s.formatter.Build(in, quote),
		Series: present.CostSeries(quote),
	}, nil
}

// drawResults renders the chart on a canvas scoped to this recomputation.
func (s *server) drawResults(calc calculation, canvas *chart.Canvas) resultsViewData {
	donut := canvas.Draw(calc.Series)
	return resultsViewData{
		View:   calc.View,
		Chart:  donut.HTML(),
		Legend: donut.Legend(),
	}
}

func (s *server) handleHome(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	cat := s.input.Catalog()

	materials, err := cat.Materials(ctx)
	if err != nil {
		s.internalError(w, r, "failed to load materials", err)
		return
	}
	sizes, err := cat.Sizes(ctx)
	if err != nil {
		s.internalError(w, r, "failed to load sizes", err)
		return
	}
	features, err := cat.Features(ctx)
	if err != nil {
		s.internalError(w, r, "failed to load features", err)
		return
	}

	values := r.URL.Query()
	data := calculatorViewData{
		baseViewData: baseViewData{AdminEnabled: s.admin != nil},
		Currency:     s.formatter.Symbol,
		Materials:    materials,
		Sizes:        sizes,
		Features:     features,
		Selected: selection{
			Quantity: "1",
			Margin:   fmt.Sprint(calcinput.DefaultMarginPercent),
			Features: make(map[string]bool),
		},
	}

	canvas := chart.NewCanvas(s.formatter.Money)
	defer canvas.Release()

	calc, err := s.calculate(ctx, values)
	status := http.StatusOK
	if err != nil {
		status = statusFor(err)
		data.Results.ErrorMessage = publicMessage(err)
		if status == http.StatusInternalServerError {
			observability.FromContext(ctx).Error("calculation failed", zap.Error(err))
		}
	} else {
		data.Results = s.drawResults(calc, canvas)
		data.Selected.Material = calc.Input.Material.Key
		data.Selected.Size = calc.Input.Size.Key
		data.Selected.Margin = calc.Input.MarginRaw
		if raw := values.Get(calcinput.FieldQuantity); raw != "" {
			data.Selected.Quantity = raw
		}
		for _, f := range calc.Input.Features {
			data.Selected.Features[f.Key] = true
		}
	}

	s.renderPage(w, r, status, "calculator.html", data)
}

func (s *server) handleCalculate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	ctx := r.Context()
	logger := observability.FromContext(ctx)

	canvas := chart.NewCanvas(s.formatter.Money)
	defer canvas.Release()

	var data resultsViewData
	status := http.StatusOK

	calc, err := s.calculate(ctx, r.Form)
	if err != nil {
		status = statusFor(err)
		data.ErrorMessage = publicMessage(err)
		if status == http.StatusInternalServerError {
			logger.Error("calculation failed", zap.Error(err))
		} else {
			logger.Info("calculation rejected", zap.Error(err))
		}
	} else {
		data = s.drawResults(calc, canvas)
		logger.Debug("quote computed",
			zap.String("material", calc.Input.Material.Key),
			zap.String("size", calc.Input.Size.Key),
			zap.Int("quantity", calc.Quote.Config.Quantity),
			zap.Float64("suggested_unit_price", calc.Quote.Breakdown.SuggestedUnitPrice),
		)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := s.results.ExecuteTemplate(w, "results", data); err != nil {
		logger.Error("render results failed", zap.Error(err))
	}
}

func (s *server) handleQuoteText(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.calculateForExport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	if err := quotesheet.WriteText(w, calc.View, time.Now()); err != nil {
		observability.FromContext(r.Context()).Error("write text quote failed", zap.Error(err))
	}
}

func (s *server) handleQuotePDF(w http.ResponseWriter, r *http.Request) {
	calc, ok := s.calculateForExport(w, r)
	if !ok {
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `inline; filename="wallet-quote.pdf"`)
	if err := quotesheet.WritePDF(w, calc.View, time.Now()); err != nil {
		observability.FromContext(r.Context()).Error("write pdf quote failed", zap.Error(err))
	}
}

func (s *server) calculateForExport(w http.ResponseWriter, r *http.Request) (calculation, bool) {
	calc, err := s.calculate(r.Context(), r.URL.Query())
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			observability.FromContext(r.Context()).Error("calculation failed", zap.Error(err))
		}
		http.Error(w, publicMessage(err), status)
		return calculation{}, false
	}
	return calc, true
}

func (s *server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"catalog": s.input.Catalog().Name(),
	})
}

func (s *server) internalError(w http.ResponseWriter, r *http.Request, msg string, err error) {
	observability.FromContext(r.Context()).Error(msg, zap.Error(err))
	http.Error(w, msg, http.StatusInternalServerError)
}
