package nutrition

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, s string) map[string]any {
	t.Helper()
	var p map[string]any
	require.NoError(t, json.Unmarshal([]byte(s), &p))
	return p
}

func TestClassify(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		want    Kind
	}{
		{
			"standard",
			`{"foods":[{"name":"rice","nutrition":{"calories":200}}],"total":{"calories":200}}`,
			KindStandard,
		},
		{
			"legacy manual",
			`{"nutrition":{"calories":350,"protein":12}}`,
			KindLegacyManual,
		},
		{
			"food list without total",
			`{"foods":[{"name":"toast","nutrition":{"calories":90}}]}`,
			KindLegacyFoodList,
		},
		{
			"empty foods is not a food list",
			`{"foods":[]}`,
			KindUnknown,
		},
		{
			"foods with null total is a food list",
			`{"foods":[{"name":"toast"}],"total":null}`,
			KindLegacyFoodList,
		},
		{
			"nutrition wins over empty foods",
			`{"foods":[],"nutrition":{"calories":100}}`,
			KindLegacyManual,
		},
		{
			"unrelated keys",
			`{"message":"hello"}`,
			KindUnknown,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Classify(decode(t, tc.payload)))
		})
	}
}

func TestClassifySource(t *testing.T) {
	assert.Equal(t, SourceBackground,
		ClassifySource("Samsung SM-G991B / Android Background Service v2", SourceManual))
	assert.Equal(t, SourceManual, ClassifySource("Pixel 8 / Chrome", SourceManual))
	assert.Equal(t, SourceBackground, ClassifySource("", SourceBackground))
	assert.Equal(t, SourceManual, ClassifySource("", SourceManual))
}

func TestKindString(t *testing.T) {
	assert.Equal(t, "standard", KindStandard.String())
	assert.Equal(t, "legacy_manual", KindLegacyManual.String())
	assert.Equal(t, "legacy_food_list", KindLegacyFoodList.String())
	assert.Equal(t, "unknown", KindUnknown.String())
}
