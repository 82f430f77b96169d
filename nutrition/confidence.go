package nutrition

import (
	"encoding/json"
	"strings"
)

// Numeric scores for the qualitative confidence labels the analysis
// clients send alongside nutrition estimates.
const (
	ConfidenceVeryHigh = 0.95
	ConfidenceHigh     = 0.90
	ConfidenceMedium   = 0.70
	ConfidenceLow      = 0.50
	ConfidenceVeryLow  = 0.30
)

var confidenceLabels = map[string]float64{
	"very_high": ConfidenceVeryHigh,
	"high":      ConfidenceHigh,
	"medium":    ConfidenceMedium,
	"low":       ConfidenceLow,
	"very_low":  ConfidenceVeryLow,
}

// MapConfidence converts a confidence value of unknown type into a numeric
// score. Numbers pass through unchanged (they are assumed to already be in
// [0,1]). String labels are matched case-insensitively; an unrecognized label
// falls back to medium rather than failing, so ambiguous client data is never
// rejected. A missing value returns nil, which is distinct from an unknown
// label.
func MapConfidence(v any) *float64 {
	switch c := v.(type) {
	case nil:
		return nil
	case float64:
		return &c
	case int:
		f := float64(c)
		return &f
	case json.Number:
		if f, err := c.Float64(); err == nil {
			return &f
		}
		return nil
	case string:
		if score, ok := confidenceLabels[strings.ToLower(strings.TrimSpace(c))]; ok {
			return &score
		}
		fallback := ConfidenceMedium
		return &fallback
	default:
		return nil
	}
}
