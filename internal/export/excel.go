package export

import (
	"bytes"
	"fmt"

	"github.com/xuri/excelize/v2"

	"milyem/internal/models"
)

var analysisColumns = []string{
	"Product Code", "Product Type", "Grams", "Karat", "Fire %",
	"Gold/Gram Used", "Raw Material", "Labor", "Setting", "Stones",
	"Certificate", "Total Cost", "Quoted Price", "Profit/Loss", "Created At",
}

// AnalysesExcel writes one row per analysis plus a summary sheet.
func AnalysesExcel(analyses []models.Analysis, currency string) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Analyses"
	if _, err := f.NewSheet(sheet); err != nil {
		return nil, fmt.Errorf("creating analyses sheet: %w", err)
	}
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("removing default sheet: %w", err)
	}

	for i, col := range analysisColumns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, cell, col); err != nil {
			return nil, err
		}
	}

	var totalCost, totalQuoted, totalProfit float64
	for row, a := range analyses {
		values := []interface{}{
			a.ProductCode, a.ProductType, a.Grams, a.KaratLabel, a.FirePercent,
			a.GoldPerGramUsed, a.RawMaterialCost, a.LaborCost, a.SettingCost, a.StoneCost,
			a.CertificateAmount, a.TotalCost, a.QuotedPrice, a.ProfitLoss,
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheet, cell, v); err != nil {
				return nil, err
			}
		}
		totalCost += a.TotalCost
		totalQuoted += a.QuotedPrice
		totalProfit += a.ProfitLoss
	}

	summaryIdx, err := f.NewSheet("Summary")
	if err != nil {
		return nil, fmt.Errorf("creating summary sheet: %w", err)
	}
	summary := [][]interface{}{
		{"Analyses", len(analyses)},
		{"Currency", currency},
		{"Total Cost", totalCost},
		{"Total Quoted", totalQuoted},
		{"Total Profit/Loss", totalProfit},
	}
	for row, pair := range summary {
		for col, v := range pair {
			cell, err := excelize.CoordinatesToCellName(col+1, row+1)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue("Summary", cell, v); err != nil {
				return nil, err
			}
		}
	}
	f.SetActiveSheet(summaryIdx)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, fmt.Errorf("writing workbook: %w", err)
	}
	return buf.Bytes(), nil
}
