package catalog

import (
	"context"

	"github.com/Simplici0/walletcalc/internal/pricing"
)

// Table is an in-memory catalog. It backs both the built-in defaults and YAML catalog files.
type Table struct {
	name      string
	materials []Option
	sizes     []Option
	features  []Option
}

// NewTable builds a read-only catalog from option lists, stamping kind and active on each entry.
func NewTable(name string, materials, sizes, features []Option) *Table {
	return &Table{
		name:      name,
		materials: stamp(materials, KindMaterial),
		sizes:     stamp(sizes, KindSize),
		features:  stamp(features, KindFeature),
	}
}

// Static returns the built-in wallet catalog.
func Static() *Table {
	return NewTable("static", DefaultMaterials(), DefaultSizes(), DefaultFeatures())
}

// DefaultMaterials lists the built-in materials with their unit cost.
func DefaultMaterials() []Option {
	return []Option{
		{Key: "leather", Label: "Genuine Leather", Value: 25},
		{Key: "vegan", Label: "Vegan Leather", Value: 18},
		{Key: "canvas", Label: "Canvas", Value: 10},
		{Key: "carbon", Label: "Carbon Fiber", Value: 40},
	}
}

// DefaultSizes lists the built-in sizes with their material multiplier.
func DefaultSizes() []Option {
	return []Option{
		{Key: "slim", Label: "Slim", Value: 1.0},
		{Key: "standard", Label: "Standard", Value: 1.2},
		{Key: "large", Label: "Large", Value: 1.5},
	}
}

// DefaultFeatures lists the feature catalog with its default costs.
func DefaultFeatures() []Option {
	labels := map[pricing.FeatureID]string{
		pricing.FeatureRFID:       "RFID Blocking",
		pricing.FeatureMonogram:   "Custom Monogram",
		pricing.FeatureCoinPocket: "Coin Pocket",
		pricing.FeatureCardSlots:  "Extra Card Slots",
	}

	prices := pricing.DefaultFeaturePrices()
	out := make([]Option, 0, len(pricing.AllFeatures))
	for _, id := range pricing.AllFeatures {
		out = append(out, Option{Key: string(id), Label: labels[id], Value: prices[id]})
	}
	return out
}

func (t *Table) Name() string { return t.name }

func (t *Table) Materials(context.Context) ([]Option, error) { return copyOptions(t.materials), nil }

func (t *Table) Sizes(context.Context) ([]Option, error) { return copyOptions(t.sizes), nil }

func (t *Table) Features(context.Context) ([]Option, error) { return copyOptions(t.features), nil }

func stamp(options []Option, kind Kind) []Option {
	out := make([]Option, len(options))
	for i, opt := range options {
		opt.Kind = kind
		opt.Active = true
		out[i] = opt
	}
	return out
}

func copyOptions(options []Option) []Option {
	return append([]Option(nil), options...)
}
