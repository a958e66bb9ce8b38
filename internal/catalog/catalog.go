package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/Simplici0/walletcalc/internal/pricing"
)

var (
	// ErrUnknownOption is returned when a selected key is not in the catalog.
	ErrUnknownOption = errors.New("unknown catalog option")
	// ErrNotFound is returned when an option id does not exist.
	ErrNotFound = errors.New("catalog option not found")
	// ErrInvalidOption is returned when an option fails validation.
	ErrInvalidOption = errors.New("invalid catalog option")
)

// Kind groups catalog options.
type Kind string

const (
	KindMaterial Kind = "material"
	KindSize     Kind = "size"
	KindFeature  Kind = "feature"
)

// ParseKind validates a kind coming from user input.
func ParseKind(raw string) (Kind, error) {
	switch Kind(raw) {
	case KindMaterial, KindSize, KindFeature:
		return Kind(raw), nil
	default:
		return "", fmt.Errorf("%w: kind %q", ErrInvalidOption, raw)
	}
}

// Option is one selectable entry. Value is the material unit cost, the size
// multiplier or the feature unit cost depending on the kind.
type Option struct {
	ID     int64   `json:"id,omitempty" yaml:"-"`
	Kind   Kind    `json:"kind" yaml:"-"`
	Key    string  `json:"key" yaml:"key"`
	Label  string  `json:"label" yaml:"label"`
	Value  float64 `json:"value" yaml:"value"`
	Active bool    `json:"active" yaml:"-"`
}

// Catalog supplies the options shown by the calculator.
type Catalog interface {
	Name() string
	Materials(ctx context.Context) ([]Option, error)
	Sizes(ctx context.Context) ([]Option, error)
	Features(ctx context.Context) ([]Option, error)
}

// Lookup returns the active option with key.
func Lookup(options []Option, key string) (Option, error) {
	for _, opt := range options {
		if opt.Key == key && opt.Active {
			return opt, nil
		}
	}
	return Option{}, fmt.Errorf("%w: %q", ErrUnknownOption, key)
}

// PriceTable builds the engine price table from feature options. Inactive entries are skipped.
func PriceTable(features []Option) pricing.FeaturePrices {
	prices := make(pricing.FeaturePrices, len(features))
	for _, f := range features {
		if !f.Active {
			continue
		}
		prices[pricing.FeatureID(f.Key)] = f.Value
	}
	return prices
}

// Validate checks an option's value against the rules of its kind.
func Validate(opt Option) error {
	if opt.Key == "" {
		return fmt.Errorf("%w: key is required", ErrInvalidOption)
	}
	if opt.Label == "" {
		return fmt.Errorf("%w: label is required", ErrInvalidOption)
	}

	switch opt.Kind {
	case KindMaterial:
		if !(opt.Value > 0) {
			return fmt.Errorf("%w: material cost must be greater than 0", ErrInvalidOption)
		}
	case KindSize:
		if !(opt.Value >= 1) {
			return fmt.Errorf("%w: size multiplier must be at least 1", ErrInvalidOption)
		}
	case KindFeature:
		if !pricing.FeatureID(opt.Key).IsKnown() {
			return fmt.Errorf("%w: unknown feature %q", ErrInvalidOption, opt.Key)
		}
		if !(opt.Value >= 0) {
			return fmt.Errorf("%w: feature cost must be 0 or more", ErrInvalidOption)
		}
	default:
		return fmt.Errorf("%w: kind %q", ErrInvalidOption, opt.Kind)
	}
	return nil
}
