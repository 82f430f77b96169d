package nutrition

import "encoding/json"

// NutritionValues is the canonical nutrient record. Values default to 0 when
// absent and are clamped at 0; a nutrient is never negative.
type NutritionValues struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Carbs    float64 `json:"carbs"`
	Fat      float64 `json:"fat"`
	Fiber    float64 `json:"fiber"`
}

// FoodItem is one detected or declared food within an analysis.
type FoodItem struct {
	Name        string          `json:"name"`
	Portion     string          `json:"portion,omitempty"`
	WeightGrams float64         `json:"weight_g,omitempty"`
	Nutrition   NutritionValues `json:"nutrition"`
}

// AnalysisRecord is the canonical persisted shape every recognized payload
// converges to. Total is carried as declared by the producer, never
// recomputed from Foods: a whole-dish estimate may legitimately diverge from
// the sum of its enumerated sub-items.
type AnalysisRecord struct {
	Foods      []FoodItem      `json:"foods"`
	Total      NutritionValues `json:"total"`
	Confidence any             `json:"confidence,omitempty"`
}

// Nutrients holds the five extracted scalar columns. Nil means the producer
// did not supply the field, which is distinct from a measured zero;
// zero-coalescing happens only at aggregation/display time.
type Nutrients struct {
	Calories *float64
	Protein  *float64
	Carbs    *float64
	Fat      *float64
	Fiber    *float64
}

// Result is the output of Normalize: the structured columns plus the JSON
// blob to persist.
type Result struct {
	Kind       Kind
	Nutrients  Nutrients
	Confidence *float64
	Source     string
	Blob       []byte
}

// Normalize accepts a raw analysis payload of any accepted shape and
// produces the structured columns and the blob to store. Recognized legacy
// shapes are rewritten into the canonical {foods, total, confidence} form;
// an already-canonical payload passes through byte-identical, with no
// recomputation or rounding. An unrecognized payload degrades gracefully:
// the raw bytes are still kept as the blob so the evidence is never
// discarded, but every structured column stays nil.
func Normalize(raw []byte, deviceInfo string) Result {
	payload := unwrapString(raw)

	var p map[string]any
	if err := json.Unmarshal(payload, &p); err != nil {
		return Result{
			Kind:   KindUnknown,
			Source: ClassifySource(deviceInfo, SourceManual),
			Blob:   payload,
		}
	}

	switch Classify(p) {
	case KindStandard:
		total, _ := p["total"].(map[string]any)
		return Result{
			Kind:       KindStandard,
			Nutrients:  extractNutrients(total),
			Confidence: MapConfidence(p["confidence"]),
			Source:     ClassifySource(deviceInfo, SourceManual),
			Blob:       payload,
		}

	case KindLegacyManual:
		n, _ := p["nutrition"].(map[string]any)
		return Result{
			Kind:       KindLegacyManual,
			Nutrients:  extractNutrients(n),
			Confidence: MapConfidence(p["confidence"]),
			Source:     ClassifySource(deviceInfo, SourceManual),
			Blob:       synthesizeCanonical(p, n),
		}

	case KindLegacyFoodList:
		foods, _ := p["foods"].([]any)
		first, _ := foods[0].(map[string]any)
		src := first
		if n, ok := first["nutrition"].(map[string]any); ok {
			src = n
		}
		conf := first["confidence"]
		if conf == nil {
			conf = p["confidence"]
		}
		return Result{
			Kind:       KindLegacyFoodList,
			Nutrients:  extractNutrients(src),
			Confidence: MapConfidence(conf),
			Source:     ClassifySource(deviceInfo, SourceBackground),
			Blob:       payload,
		}

	default:
		return Result{
			Kind:   KindUnknown,
			Source: ClassifySource(deviceInfo, SourceManual),
			Blob:   payload,
		}
	}
}

// unwrapString handles payloads that arrive double-encoded: a JSON string
// whose content is the JSON document. The inner text is what gets stored.
func unwrapString(raw []byte) []byte {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return []byte(s)
	}
	return raw
}

// synthesizeCanonical rewrites a legacy manual payload into the canonical
// shape, mirroring what newer clients produce: the foods list comes from the
// itemized breakdown when one exists, otherwise a single wrapping item
// carries the whole-dish values. Total is the declared nutrition object.
func synthesizeCanonical(p, n map[string]any) []byte {
	rec := AnalysisRecord{
		Total:      coalesceValues(n),
		Confidence: p["confidence"],
	}
	if rec.Confidence == nil {
		rec.Confidence = "medium"
	}

	if items, ok := p["detailedItems"].([]any); ok && len(items) > 0 {
		for _, it := range items {
			m, ok := it.(map[string]any)
			if !ok {
				continue
			}
			rec.Foods = append(rec.Foods, FoodItem{
				Name:        strField(m, "name", "Unknown Food"),
				Portion:     strField(m, "portionDescription", "1 serving"),
				WeightGrams: numOrDefault(m, "estimatedWeight", 100),
				Nutrition:   coalesceValues(m),
			})
		}
	}
	if len(rec.Foods) == 0 {
		name := "Unknown Food"
		if cat, ok := p["category"].(map[string]any); ok {
			name = strField(cat, "name", name)
		}
		rec.Foods = []FoodItem{{
			Name:        name,
			Portion:     "1 serving",
			WeightGrams: 100,
			Nutrition:   coalesceValues(n),
		}}
	}

	blob, err := json.Marshal(rec)
	if err != nil {
		return nil
	}
	return blob
}

func extractNutrients(m map[string]any) Nutrients {
	return Nutrients{
		Calories: numField(m, "calories"),
		Protein:  numField(m, "protein"),
		Carbs:    numField(m, "carbs"),
		Fat:      numField(m, "fat"),
		Fiber:    numField(m, "fiber"),
	}
}

func coalesceValues(m map[string]any) NutritionValues {
	return NutritionValues{
		Calories: clampNonNeg(numField(m, "calories")),
		Protein:  clampNonNeg(numField(m, "protein")),
		Carbs:    clampNonNeg(numField(m, "carbs")),
		Fat:      clampNonNeg(numField(m, "fat")),
		Fiber:    clampNonNeg(numField(m, "fiber")),
	}
}

func numField(m map[string]any, key string) *float64 {
	if m == nil {
		return nil
	}
	if v, ok := m[key].(float64); ok {
		return &v
	}
	return nil
}

func numOrDefault(m map[string]any, key string, def float64) float64 {
	if v := numField(m, key); v != nil {
		return *v
	}
	return def
}

func strField(m map[string]any, key, def string) string {
	if v, ok := m[key].(string); ok && v != "" {
		return v
	}
	return def
}

func clampNonNeg(v *float64) float64 {
	if v == nil || *v < 0 {
		return 0
	}
	return *v
}
