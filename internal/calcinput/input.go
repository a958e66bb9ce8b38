// Package calcinput turns submitted calculator form state into a pricing configuration.
package calcinput

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/Simplici0/walletcalc/internal/catalog"
	"github.com/Simplici0/walletcalc/internal/pricing"
)

// Form field names shared with the calculator page.
const (
	FieldMaterial     = "material"
	FieldSize         = "size"
	FieldQuantity     = "quantity"
	FieldProfitMargin = "profitMargin"
)

// DefaultMarginPercent is used when the margin field is absent altogether.
const DefaultMarginPercent = 40

// Input is one parsed form submission.
type Input struct {
	Material  catalog.Option
	Size      catalog.Option
	Features  []catalog.Option
	MarginRaw string
	Config    pricing.Configuration
}

// Adapter reads form values against a catalog.
type Adapter struct {
	catalog catalog.Catalog
}

// NewAdapter returns an Adapter resolving selections through cat.
func NewAdapter(cat catalog.Catalog) *Adapter {
	return &Adapter{catalog: cat}
}

// Catalog returns the catalog the adapter resolves against.
func (a *Adapter) Catalog() catalog.Catalog {
	return a.catalog
}

// Parse builds an Input from values. An empty material or size selects the first
// catalog entry, the same as a freshly loaded page. Quantity falls back to 1 when it
// is missing, zero or not a number; an unparseable margin becomes NaN.
func (a *Adapter) Parse(ctx context.Context, values url.Values) (Input, error) {
	materials, err := a.catalog.Materials(ctx)
	if err != nil {
		return Input{}, fmt.Errorf("load materials: %w", err)
	}
	sizes, err := a.catalog.Sizes(ctx)
	if err != nil {
		return Input{}, fmt.Errorf("load sizes: %w", err)
	}
	features, err := a.catalog.Features(ctx)
	if err != nil {
		return Input{}, fmt.Errorf("load features: %w", err)
	}

	material, err := selectOption(materials, values.Get(FieldMaterial), catalog.KindMaterial)
	if err != nil {
		return Input{}, err
	}
	size, err := selectOption(sizes, values.Get(FieldSize), catalog.KindSize)
	if err != nil {
		return Input{}, err
	}

	in := Input{
		Material: material,
		Size:     size,
	}

	selected := make([]pricing.FeatureID, 0, len(features))
	for _, f := range features {
		if !f.Active || strings.TrimSpace(values.Get(f.Key)) == "" {
			continue
		}
		selected = append(selected, pricing.FeatureID(f.Key))
		in.Features = append(in.Features, f)
	}

	quantity, ok := ParseLeadingInt(values.Get(FieldQuantity))
	if !ok || quantity == 0 {
		quantity = 1
	}

	in.MarginRaw = fmt.Sprint(DefaultMarginPercent)
	if _, present := values[FieldProfitMargin]; present {
		in.MarginRaw = strings.TrimSpace(values.Get(FieldProfitMargin))
	}

	in.Config = pricing.Configuration{
		MaterialUnitCost:    material.Value,
		SizeMultiplier:      size.Value,
		Features:            pricing.NewFeatureSet(selected...),
		Quantity:            quantity,
		ProfitMarginPercent: ParseLeadingFloat(in.MarginRaw),
	}
	return in, nil
}

func selectOption(options []catalog.Option, key string, kind catalog.Kind) (catalog.Option, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		for _, opt := range options {
			if opt.Active {
				return opt, nil
			}
		}
		return catalog.Option{}, fmt.Errorf("%w: no active %s", catalog.ErrUnknownOption, kind)
	}

	opt, err := catalog.Lookup(options, key)
	if err != nil {
		return catalog.Option{}, fmt.Errorf("%s: %w", kind, err)
	}
	return opt, nil
}
