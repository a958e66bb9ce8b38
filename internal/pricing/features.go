package pricing

import "sort"

// FeatureID identifies an optional wallet feature.
type FeatureID string

const (
	FeatureRFID       FeatureID = "rfid"
	FeatureMonogram   FeatureID = "monogram"
	FeatureCoinPocket FeatureID = "coinPocket"
	FeatureCardSlots  FeatureID = "cardSlots"
)

// AllFeatures lists the feature catalog in display order.
var AllFeatures = []FeatureID{FeatureRFID, FeatureMonogram, FeatureCoinPocket, FeatureCardSlots}

// IsKnown reports whether id belongs to the feature catalog.
func (id FeatureID) IsKnown() bool {
	for _, known := range AllFeatures {
		if id == known {
			return true
		}
	}
	return false
}

// FeatureSet is a set of selected features.
type FeatureSet map[FeatureID]struct{}

// NewFeatureSet builds a set from ids; duplicates collapse.
func NewFeatureSet(ids ...FeatureID) FeatureSet {
	set := make(FeatureSet, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// Has reports whether id is selected.
func (s FeatureSet) Has(id FeatureID) bool {
	_, ok := s[id]
	return ok
}

// IDs returns the selected ids in a stable order.
func (s FeatureSet) IDs() []FeatureID {
	ids := make([]FeatureID, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// FeaturePrices maps each feature to its unit cost.
type FeaturePrices map[FeatureID]float64

// DefaultFeaturePrices returns the built-in feature costs.
func DefaultFeaturePrices() FeaturePrices {
	return FeaturePrices{
		FeatureRFID:       8,
		FeatureMonogram:   15,
		FeatureCoinPocket: 12,
		FeatureCardSlots:  6,
	}
}

// Sum adds the unit cost of every selected feature. Features missing from the table add nothing.
func (p FeaturePrices) Sum(selected FeatureSet) float64 {
	total := 0.0
	for _, id := range AllFeatures {
		if selected.Has(id) {
			total += p[id]
		}
	}
	return total
}

func (p FeaturePrices) clone() FeaturePrices {
	out := make(FeaturePrices, len(p))
	for id, cost := range p {
		out[id] = cost
	}
	return out
}
