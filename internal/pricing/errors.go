package pricing

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidConfiguration is matched by every *InvalidConfigurationError.
var ErrInvalidConfiguration = errors.New("invalid configuration")

// InvalidKind names the reason a configuration was rejected.
type InvalidKind string

const (
	NonPositiveMaterialCost   InvalidKind = "NonPositiveMaterialCost"
	NonPositiveSizeMultiplier InvalidKind = "NonPositiveSizeMultiplier"
	NonNumericMargin          InvalidKind = "NonNumericMargin"
)

// InvalidConfigurationError describes a configuration rejected at the input boundary.
type InvalidConfigurationError struct {
	Kind  InvalidKind
	Value float64
}

func (e *InvalidConfigurationError) Error() string {
	switch e.Kind {
	case NonPositiveMaterialCost:
		return fmt.Sprintf("material cost must be a positive number, got %v", e.Value)
	case NonPositiveSizeMultiplier:
		return fmt.Sprintf("size multiplier must be a positive number, got %v", e.Value)
	case NonNumericMargin:
		return "profit margin must be numeric"
	default:
		return fmt.Sprintf("invalid configuration (%s)", e.Kind)
	}
}

func (e *InvalidConfigurationError) Is(target error) bool {
	return target == ErrInvalidConfiguration
}

// Validate checks the numeric fields Compute would otherwise let degrade to NaN.
// Margin and quantity bounds are not enforced.
func (cfg Configuration) Validate() error {
	// Negated comparisons so NaN is rejected too.
	if !(cfg.MaterialUnitCost > 0) || math.IsInf(cfg.MaterialUnitCost, 0) {
		return &InvalidConfigurationError{Kind: NonPositiveMaterialCost, Value: cfg.MaterialUnitCost}
	}
	if !(cfg.SizeMultiplier > 0) || math.IsInf(cfg.SizeMultiplier, 0) {
		return &InvalidConfigurationError{Kind: NonPositiveSizeMultiplier, Value: cfg.SizeMultiplier}
	}
	if math.IsNaN(cfg.ProfitMarginPercent) || math.IsInf(cfg.ProfitMarginPercent, 0) {
		return &InvalidConfigurationError{Kind: NonNumericMargin, Value: cfg.ProfitMarginPercent}
	}
	return nil
}
