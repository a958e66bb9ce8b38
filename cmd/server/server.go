package main

import (
	"errors"
	"fmt"
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/walletcalc/internal/calcinput"
	"github.com/Simplici0/walletcalc/internal/catalog"
	"github.com/Simplici0/walletcalc/internal/config"
	"github.com/Simplici0/walletcalc/internal/middleware"
	"github.com/Simplici0/walletcalc/internal/observability"
	"github.com/Simplici0/walletcalc/internal/present"
	"github.com/Simplici0/walletcalc/internal/pricing"
	"github.com/Simplici0/walletcalc/web"
)

type server struct {
	input     *calcinput.Adapter
	formatter present.Formatter
	admin     *catalog.SQLite
	cors      *config.CORSConfig
	pages     map[string]*template.Template
	results   *template.Template
}

type baseViewData struct {
	ErrorMessage   string
	SuccessMessage string
	AdminEnabled   bool
}

// newServer builds the handler set. admin may be nil when the catalog is not editable.
func newServer(cat catalog.Catalog, admin *catalog.SQLite, currency string, cors *config.CORSConfig) (*server, error) {
	pages := make(map[string]*template.Template)
	for _, page := range []string{"calculator.html", "admin_catalog.html"} {
		tmpl, err := template.ParseFS(web.Templates(),
			"templates/layout.html",
			"templates/"+page,
			"templates/results.html",
		)
		if err != nil {
			return nil, fmt.Errorf("parse template %s: %w", page, err)
		}
		pages[page] = tmpl
	}

	results, err := template.ParseFS(web.Templates(), "templates/results.html")
	if err != nil {
		return nil, fmt.Errorf("parse results template: %w", err)
	}

	return &server{
		input:     calcinput.NewAdapter(cat),
		formatter: present.NewFormatter(currency),
		admin:     admin,
		cors:      cors,
		pages:     pages,
		results:   results,
	}, nil
}

func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Chain(middleware.Trace(), s.catalogContext))

	r.Handle("/static/*", http.StripPrefix("/static/", http.FileServer(http.FS(web.Static()))))
	r.Get("/health", s.handleHealth)
	r.Get("/", s.handleHome)
	r.Post("/calculate", s.handleCalculate)
	r.Get("/quote.txt", s.handleQuoteText)
	r.Get("/quote.pdf", s.handleQuotePDF)

	r.Route("/api", func(api chi.Router) {
		api.Use(middleware.CORS(s.cors))
		api.Post("/quote", s.handleAPIQuote)
		api.Options("/quote", func(w http.ResponseWriter, r *http.Request) {})
	})

	if s.admin != nil {
		r.Get("/admin/catalog", s.handleAdminCatalogForm)
		r.Post("/admin/catalog", s.handleAdminCatalogCreate)
		r.Post("/admin/catalog/{id}", s.handleAdminCatalogUpdate)
	}

	return r
}

func (s *server) catalogContext(next http.Handler) http.Handler {
	name := s.input.Catalog().Name()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := observability.WithCatalogSource(r.Context(), name)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *server) renderPage(w http.ResponseWriter, r *http.Request, status int, page string, data any) {
	tmpl, ok := s.pages[page]
	if !ok {
		http.Error(w, "unknown page", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		observability.FromContext(r.Context()).Error("render page failed", zap.String("page", page), zap.Error(err))
	}
}

// statusFor maps pipeline errors to HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, pricing.ErrInvalidConfiguration),
		errors.Is(err, catalog.ErrUnknownOption),
		errors.Is(err, catalog.ErrInvalidOption):
		return http.StatusBadRequest
	case errors.Is(err, catalog.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

// publicMessage hides internal failures from the browser.
func publicMessage(err error) string {
	if statusFor(err) == http.StatusInternalServerError {
		return "calculation failed, please try again"
	}
	return err.Error()
}
