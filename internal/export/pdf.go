// Package export renders already-computed analyses and batches as PDF,
// Excel and CSV documents. Nothing here recomputes costs; the stored derived
// fields are rendered as-is.
package export

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"milyem/internal/models"
)

// BatchPDF renders a batch cost report: header, batch details, one row per
// analysis, and a totals row.
func BatchPDF(batch *models.Batch, currency string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()
	pdf.SetMargins(10, 10, 10)

	// Header band
	pdf.SetFont("Arial", "B", 24)
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, 10, 190, 15, "F")
	pdf.SetXY(10, 12)
	pdf.Cell(190, 10, fmt.Sprintf("Batch #%d Cost Report", batch.Number))
	pdf.Ln(20)

	// Batch details box
	pdf.SetFont("Arial", "B", 14)
	pdf.SetFillColor(245, 245, 245)
	pdf.Rect(10, pdf.GetY(), 190, 10, "F")
	pdf.SetXY(10, pdf.GetY()+2)
	pdf.Cell(190, 8, "Batch Details")
	pdf.Ln(12)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 7, "Manufacturer:")
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(70, 7, batch.Manufacturer.Name)
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 7, "Generated on:")
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(70, 7, time.Now().Format("2006-01-02 15:04:05"))
	pdf.Ln(7)

	pdf.SetFont("Arial", "", 11)
	pdf.Cell(40, 7, "Currency:")
	pdf.SetFont("Arial", "B", 11)
	pdf.Cell(70, 7, currency)
	pdf.Ln(12)

	// Table header (shaded)
	pdf.SetFillColor(230, 230, 230)
	pdf.SetFont("Arial", "B", 9)
	pdf.Rect(10, pdf.GetY(), 190, 8, "F")
	pdf.Cell(28, 8, "Product")
	pdf.Cell(18, 8, "Grams")
	pdf.Cell(16, 8, "Karat")
	pdf.Cell(28, 8, "Raw Material")
	pdf.Cell(22, 8, "Labor")
	pdf.Cell(22, 8, "Stones")
	pdf.Cell(28, 8, "Total Cost")
	pdf.Cell(28, 8, "Profit/Loss")
	pdf.Ln(8)

	pdf.SetFont("Arial", "", 9)
	var totalCost, totalProfit float64
	for _, a := range batch.Analyses {
		if pdf.GetY() > 270 {
			pdf.AddPage()
		}
		pdf.Cell(28, 7, a.ProductCode)
		pdf.Cell(18, 7, fmt.Sprintf("%.2f", a.Grams))
		pdf.Cell(16, 7, a.KaratLabel)
		pdf.Cell(28, 7, fmt.Sprintf("%.2f", a.RawMaterialCost))
		pdf.Cell(22, 7, fmt.Sprintf("%.2f", a.LaborCost))
		pdf.Cell(22, 7, fmt.Sprintf("%.2f", a.StoneCost+a.SettingCost))
		pdf.Cell(28, 7, fmt.Sprintf("%.2f", a.TotalCost))
		pdf.Cell(28, 7, fmt.Sprintf("%.2f", a.ProfitLoss))
		pdf.Ln(7)

		totalCost += a.TotalCost
		totalProfit += a.ProfitLoss
	}

	// Totals row
	pdf.SetFont("Arial", "B", 10)
	pdf.SetFillColor(240, 240, 240)
	pdf.Rect(10, pdf.GetY(), 190, 8, "F")
	pdf.Cell(112, 8, fmt.Sprintf("Total (%d analyses)", len(batch.Analyses)))
	pdf.Cell(22, 8, "")
	pdf.Cell(28, 8, fmt.Sprintf("%.2f", totalCost))
	pdf.Cell(28, 8, fmt.Sprintf("%.2f", totalProfit))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("rendering batch pdf: %w", err)
	}
	return buf.Bytes(), nil
}
