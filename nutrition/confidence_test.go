package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapConfidenceLabels(t *testing.T) {
	cases := []struct {
		label string
		want  float64
	}{
		{"very_high", 0.95},
		{"high", 0.90},
		{"medium", 0.70},
		{"low", 0.50},
		{"very_low", 0.30},
		{"HIGH", 0.90},
		{"  medium  ", 0.70},
	}
	for _, tc := range cases {
		t.Run(tc.label, func(t *testing.T) {
			got := MapConfidence(tc.label)
			require.NotNil(t, got)
			assert.Equal(t, tc.want, *got)
		})
	}
}

func TestMapConfidenceUnknownLabelFallsBackToMedium(t *testing.T) {
	got := MapConfidence("pretty sure")
	require.NotNil(t, got)
	assert.Equal(t, ConfidenceMedium, *got)
}

func TestMapConfidenceNumericPassThrough(t *testing.T) {
	got := MapConfidence(0.42)
	require.NotNil(t, got)
	assert.Equal(t, 0.42, *got)

	got = MapConfidence(json.Number("0.81"))
	require.NotNil(t, got)
	assert.Equal(t, 0.81, *got)
}

func TestMapConfidenceMissingIsNil(t *testing.T) {
	assert.Nil(t, MapConfidence(nil))
	assert.Nil(t, MapConfidence([]any{"high"}))
}
