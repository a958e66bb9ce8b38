package quotesheet_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Simplici0/walletcalc/internal/present"
	"github.com/Simplici0/walletcalc/internal/quotesheet"
)

func sampleView() present.View {
	return present.View{
		MaterialLabel:  "Genuine Leather",
		SizeLabel:      "Standard",
		FeatureLabels:  []string{"RFID Blocking", "Extra Card Slots"},
		Quantity:       10,
		MarginDisplay:  "40%",
		MaterialCost:   "$30.00",
		SizeAdjustment: "1.2×",
		FeaturesCost:   "$14.00",
		LaborCost:      "$15.00",
		TotalUnitCost:  "$59.00",
		SuggestedPrice: "$82.60",
		ProfitPerUnit:  "$23.60",
		TotalRevenue:   "$826.00",
		TotalProfit:    "$236.00",
		BudgetPrice:    "$70.80",
		StandardPrice:  "$88.50",
		PremiumPrice:   "$118.00",
	}
}

func TestWriteText(t *testing.T) {
	var buf bytes.Buffer
	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)

	require.NoError(t, quotesheet.WriteText(&buf, sampleView(), at))

	body := buf.String()
	for _, expected := range []string{
		"Wallet Pricing Quote",
		"Generated: 2026-03-01 09:30",
		"- Material: Genuine Leather",
		"- Size: Standard (1.2×)",
		"- Features: RFID Blocking, Extra Card Slots",
		"- Quantity: 10",
		"Suggested unit price:  $82.60",
		"Premium price:         $118.00",
	} {
		require.Contains(t, body, expected)
	}
}

func TestWriteText_NoFeatures(t *testing.T) {
	view := sampleView()
	view.FeatureLabels = nil

	var buf bytes.Buffer
	require.NoError(t, quotesheet.WriteText(&buf, view, time.Now()))
	require.Contains(t, buf.String(), "- Features: none")
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer

	require.NoError(t, quotesheet.WritePDF(&buf, sampleView(), time.Now()))

	require.True(t, bytes.HasPrefix(buf.Bytes(), []byte("%PDF-")))
	require.Greater(t, buf.Len(), 500)
}
