package costing

import "strings"

// purityByKarat maps karat labels to the fraction of pure gold in the alloy.
var purityByKarat = map[string]float64{
	"24k": 1.0,
	"22k": 0.9167,
	"18k": 0.750,
	"14k": 0.5833,
	"10k": 0.4167,
	"9k":  0.375,
}

// PurityFactor returns the gold purity factor for a karat label such as
// "22k". Labels are case-insensitive. The second return value is false for
// unknown labels.
func PurityFactor(karat string) (float64, bool) {
	f, ok := purityByKarat[strings.ToLower(strings.TrimSpace(karat))]
	return f, ok
}

// KaratLabels returns the supported karat labels.
func KaratLabels() []string {
	return []string{"24k", "22k", "18k", "14k", "10k", "9k"}
}
