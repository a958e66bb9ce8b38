package main

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/Simplici0/walletcalc/internal/catalog"
	"github.com/Simplici0/walletcalc/internal/observability"
)

type catalogGroup struct {
	Kind       catalog.Kind
	Title      string
	ValueLabel string
	CanCreate  bool
	Options    []catalog.Option
}

type catalogViewData struct {
	baseViewData
	Groups []catalogGroup
}

var catalogGroups = []catalogGroup{
	{Kind: catalog.KindMaterial, Title: "Materials", ValueLabel: "Cost per unit", CanCreate: true},
	{Kind: catalog.KindSize, Title: "Sizes", ValueLabel: "Multiplier", CanCreate: true},
	{Kind: catalog.KindFeature, Title: "Features", ValueLabel: "Cost per unit"},
}

func (s *server) handleAdminCatalogForm(w http.ResponseWriter, r *http.Request) {
	groups := make([]catalogGroup, 0, len(catalogGroups))
	for _, g := range catalogGroups {
		options, err := s.admin.All(r.Context(), g.Kind)
		if err != nil {
			s.internalError(w, r, "failed to load catalog", err)
			return
		}
		g.Options = options
		groups = append(groups, g)
	}

	s.renderPage(w, r, http.StatusOK, "admin_catalog.html", catalogViewData{
		baseViewData: baseViewData{
			ErrorMessage:   r.URL.Query().Get("error"),
			SuccessMessage: r.URL.Query().Get("success"),
			AdminEnabled:   true,
		},
		Groups: groups,
	})
}

func (s *server) handleAdminCatalogCreate(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	kind, err := catalog.ParseKind(r.FormValue("kind"))
	if err != nil {
		redirectCatalog(w, r, "error", err.Error())
		return
	}

	key := strings.TrimSpace(r.FormValue("key"))
	if key == "" {
		redirectCatalog(w, r, "error", "key is required")
		return
	}

	value, err := parseOptionValue(r.FormValue("value"))
	if err != nil {
		redirectCatalog(w, r, "error", err.Error())
		return
	}

	id, err := s.admin.Create(r.Context(), catalog.Option{
		Kind:   kind,
		Key:    key,
		Label:  r.FormValue("label"),
		Value:  value,
		Active: r.FormValue("active") == "1",
	})
	if err != nil {
		if errors.Is(err, catalog.ErrInvalidOption) {
			redirectCatalog(w, r, "error", err.Error())
			return
		}
		s.internalError(w, r, "failed to create catalog option", err)
		return
	}

	observability.FromContext(r.Context()).Info("catalog option created",
		zap.Int64("id", id),
		zap.String("kind", string(kind)),
		zap.String("key", key),
	)
	redirectCatalog(w, r, "success", fmt.Sprintf("Added %s %q", kind, key))
}

func (s *server) handleAdminCatalogUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id <= 0 {
		http.Error(w, "invalid option id", http.StatusBadRequest)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	value, err := parseOptionValue(r.FormValue("value"))
	if err != nil {
		redirectCatalog(w, r, "error", err.Error())
		return
	}

	err = s.admin.Update(r.Context(), id, r.FormValue("label"), value, r.FormValue("active") == "1")
	switch {
	case errors.Is(err, catalog.ErrNotFound):
		http.NotFound(w, r)
		return
	case errors.Is(err, catalog.ErrInvalidOption):
		redirectCatalog(w, r, "error", err.Error())
		return
	case err != nil:
		s.internalError(w, r, "failed to update catalog option", err)
		return
	}

	observability.FromContext(r.Context()).Info("catalog option updated", zap.Int64("id", id))
	redirectCatalog(w, r, "success", "Option saved")
}

func parseOptionValue(raw string) (float64, error) {
	value, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("value must be numeric")
	}
	return value, nil
}

func redirectCatalog(w http.ResponseWriter, r *http.Request, key, msg string) {
	http.Redirect(w, r, "/admin/catalog?"+key+"="+url.QueryEscape(msg), http.StatusSeeOther)
}
