package export

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"milyem/internal/models"
)

// AnalysesCSV writes the same columns as the Excel export, without the
// summary sheet.
func AnalysesCSV(analyses []models.Analysis) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(analysisColumns); err != nil {
		return nil, err
	}
	for _, a := range analyses {
		record := []string{
			a.ProductCode,
			a.ProductType,
			formatFloat(a.Grams),
			a.KaratLabel,
			formatFloat(a.FirePercent),
			formatFloat(a.GoldPerGramUsed),
			formatFloat(a.RawMaterialCost),
			formatFloat(a.LaborCost),
			formatFloat(a.SettingCost),
			formatFloat(a.StoneCost),
			formatFloat(a.CertificateAmount),
			formatFloat(a.TotalCost),
			formatFloat(a.QuotedPrice),
			formatFloat(a.ProfitLoss),
			a.CreatedAt.Format("2006-01-02 15:04:05"),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
