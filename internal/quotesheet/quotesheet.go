// Package quotesheet exports a computed quote as plain text or a one-page PDF.
package quotesheet

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/Simplici0/walletcalc/internal/present"
)

// Title heads both export formats.
const Title = "Wallet Pricing Quote"

// WriteText writes a plain-text quote for view.
func WriteText(w io.Writer, view present.View, at time.Time) error {
	var b strings.Builder

	fmt.Fprintf(&b, "%s\n", Title)
	fmt.Fprintf(&b, "Generated: %s\n\n", at.Format("2006-01-02 15:04"))

	b.WriteString("Configuration:\n")
	fmt.Fprintf(&b, "- Material: %s\n", view.MaterialLabel)
	fmt.Fprintf(&b, "- Size: %s (%s)\n", view.SizeLabel, view.SizeAdjustment)
	fmt.Fprintf(&b, "- Features: %s\n", featureList(view))
	fmt.Fprintf(&b, "- Quantity: %d\n", view.Quantity)
	fmt.Fprintf(&b, "- Profit margin: %s\n\n", view.MarginDisplay)

	b.WriteString("Breakdown:\n")
	for _, line := range view.Lines() {
		fmt.Fprintf(&b, "%-22s %s\n", line.Label+":", line.Value)
	}

	if _, err := io.WriteString(w, b.String()); err != nil {
		return fmt.Errorf("write text quote: %w", err)
	}
	return nil
}

// WritePDF renders view as an A4 quote sheet.
func WritePDF(w io.Writer, view present.View, at time.Time) error {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.SetTitle(Title, true)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 18)
	pdf.CellFormat(0, 12, Title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(0, 6, "Generated "+at.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Configuration", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	rows := [][2]string{
		{"Material", view.MaterialLabel},
		{"Size", fmt.Sprintf("%s (%s)", view.SizeLabel, strings.ReplaceAll(view.SizeAdjustment, "×", "x"))},
		{"Features", featureList(view)},
		{"Quantity", fmt.Sprint(view.Quantity)},
		{"Profit margin", view.MarginDisplay},
	}
	for _, row := range rows {
		pdf.CellFormat(60, 7, tr(row[0]), "", 0, "L", false, 0, "")
		pdf.CellFormat(0, 7, tr(row[1]), "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "B", 12)
	pdf.CellFormat(0, 8, "Breakdown", "B", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 11)
	for i, line := range view.Lines() {
		value := strings.ReplaceAll(line.Value, "×", "x")
		fill := i%2 == 1
		pdf.SetFillColor(243, 244, 246)
		pdf.CellFormat(100, 7, tr(line.Label), "", 0, "L", fill, 0, "")
		pdf.CellFormat(0, 7, tr(value), "", 1, "R", fill, 0, "")
	}

	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, tr("Suggested price: "+view.SuggestedPrice+" per unit"), "", 1, "L", false, 0, "")

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("write pdf quote: %w", err)
	}
	return nil
}

func featureList(view present.View) string {
	if len(view.FeatureLabels) == 0 {
		return "none"
	}
	return strings.Join(view.FeatureLabels, ", ")
}
