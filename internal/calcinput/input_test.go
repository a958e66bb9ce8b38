package calcinput_test

import (
	"context"
	"math"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/walletcalc/internal/calcinput"
	"github.com/Simplici0/walletcalc/internal/catalog"
	"github.com/Simplici0/walletcalc/internal/pricing"
)

func TestParse_FullSelection(t *testing.T) {
	adapter := calcinput.NewAdapter(catalog.Static())

	in, err := adapter.Parse(context.Background(), url.Values{
		"material":     {"leather"},
		"size":         {"standard"},
		"quantity":     {"10"},
		"profitMargin": {"40"},
		"rfid":         {"on"},
		"cardSlots":    {"on"},
		"monogram":     {""},
	})
	require.NoError(t, err)

	require.Equal(t, "Genuine Leather", in.Material.Label)
	require.InDelta(t, 25, in.Config.MaterialUnitCost, 1e-9)
	require.InDelta(t, 1.2, in.Config.SizeMultiplier, 1e-9)
	require.Equal(t, 10, in.Config.Quantity)
	require.InDelta(t, 40, in.Config.ProfitMarginPercent, 1e-9)
	require.Equal(t, []pricing.FeatureID{pricing.FeatureCardSlots, pricing.FeatureRFID}, in.Config.Features.IDs())
	require.Len(t, in.Features, 2)
}

func TestParse_Defaults(t *testing.T) {
	adapter := calcinput.NewAdapter(catalog.Static())

	in, err := adapter.Parse(context.Background(), url.Values{})
	require.NoError(t, err)

	require.Equal(t, "leather", in.Material.Key)
	require.Equal(t, "slim", in.Size.Key)
	require.Equal(t, 1, in.Config.Quantity)
	require.InDelta(t, calcinput.DefaultMarginPercent, in.Config.ProfitMarginPercent, 1e-9)
	require.Empty(t, in.Config.Features)
}

func TestParse_Quantity(t *testing.T) {
	adapter := calcinput.NewAdapter(catalog.Static())

	tests := map[string]int{
		"":      1,
		"0":     1,
		"abc":   1,
		"12abc": 12,
		"3.7":   3,
		"-2":    -2,
	}

	for raw, want := range tests {
		t.Run(raw, func(t *testing.T) {
			in, err := adapter.Parse(context.Background(), url.Values{"quantity": {raw}})
			require.NoError(t, err)
			require.Equal(t, want, in.Config.Quantity)
		})
	}
}

func TestParse_MarginNotNumeric(t *testing.T) {
	adapter := calcinput.NewAdapter(catalog.Static())

	in, err := adapter.Parse(context.Background(), url.Values{"profitMargin": {"lots"}})
	require.NoError(t, err)
	require.True(t, math.IsNaN(in.Config.ProfitMarginPercent))

	err = in.Config.Validate()
	require.ErrorIs(t, err, pricing.ErrInvalidConfiguration)
}

func TestParse_UnknownSelection(t *testing.T) {
	adapter := calcinput.NewAdapter(catalog.Static())

	_, err := adapter.Parse(context.Background(), url.Values{"material": {"ostrich"}})
	require.ErrorIs(t, err, catalog.ErrUnknownOption)

	_, err = adapter.Parse(context.Background(), url.Values{"size": {"huge"}})
	require.ErrorIs(t, err, catalog.ErrUnknownOption)
}

func TestParse_UsesCatalogFeatureSet(t *testing.T) {
	table := catalog.NewTable("test",
		[]catalog.Option{{Key: "cork", Label: "Cork", Value: 12}},
		[]catalog.Option{{Key: "one", Label: "One", Value: 1}},
		[]catalog.Option{{Key: "rfid", Label: "RFID", Value: 3}},
	)
	adapter := calcinput.NewAdapter(table)

	in, err := adapter.Parse(context.Background(), url.Values{"rfid": {"on"}, "monogram": {"on"}})
	require.NoError(t, err)

	require.Equal(t, []pricing.FeatureID{pricing.FeatureRFID}, in.Config.Features.IDs())
}
