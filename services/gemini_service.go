package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"wellnessbuddy/nutrition"
)

// ErrInvalidResponseFormat marks AI output that came back but could not be
// parsed as the expected JSON document. Callers surface it separately from
// transport failures.
var ErrInvalidResponseFormat = errors.New("invalid response format")

// GeminiHost is the only host the analysis client is allowed to reach.
const GeminiHost = "generativelanguage.googleapis.com"

type GeminiService struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// NewGeminiService builds the analysis client. Pass a host-restricted
// *http.Client (utils.NewAllowListClient) so no code path can call an
// unintended nutrition API.
func NewGeminiService(apiKey string, client *http.Client) *GeminiService {
	return &GeminiService{
		apiKey:  apiKey,
		baseURL: "https://" + GeminiHost + "/v1beta/models/gemini-2.0-flash:generateContent",
		client:  client,
	}
}

type geminiRequest struct {
	Contents []geminiContent `json:"contents"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiPart struct {
	Text       string            `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inline_data,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content geminiContent `json:"content"`
	} `json:"candidates"`
}

const imagePrompt = `Analyze this food image and return nutrition data in JSON format. Be quick but accurate.

RULES:
1. Estimate portions based on visual cues (plate size, typical servings)
2. Use standard nutrition values
3. Return concise JSON only

FORMAT:
{
  "foods": [
    {
      "name": "food name",
      "portion": "description like '2 idlis' or '1 cup rice'",
      "weight_g": number,
      "nutrition": {
        "calories": number,
        "protein": number,
        "carbs": number,
        "fat": number,
        "fiber": number
      }
    }
  ],
  "total": {
    "calories": number,
    "protein": number,
    "carbs": number,
    "fat": number,
    "fiber": number
  },
  "confidence": "high/medium/low"
}

Return valid JSON only, no markdown.`

// AnalyzeImage sends a base64-encoded food photo for nutrition estimation
// and returns the canonical analysis record.
func (gs *GeminiService) AnalyzeImage(ctx context.Context, imageBase64, mimeType string) (*nutrition.AnalysisRecord, error) {
	req := geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{
		{Text: imagePrompt},
		{InlineData: &geminiInlineData{MimeType: mimeType, Data: imageBase64}},
	}}}}

	text, err := gs.generate(ctx, req)
	if err != nil {
		return nil, err
	}

	var rec nutrition.AnalysisRecord
	if err := json.Unmarshal([]byte(stripJSONFences(text)), &rec); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponseFormat, err)
	}
	if len(rec.Foods) == 0 {
		return nil, fmt.Errorf("%w: no food items detected", ErrInvalidResponseFormat)
	}
	return &rec, nil
}

// AnalyzeText estimates nutrition for a food description in a standard
// serving size, wrapped as a single-item record.
func (gs *GeminiService) AnalyzeText(ctx context.Context, foodText string) (*nutrition.AnalysisRecord, error) {
	prompt := fmt.Sprintf(`Provide nutrition data for %q in standard serving size. Return JSON only.

FORMAT:
{
  "name": %q,
  "serving": "description like '1 cup cooked'",
  "weight_g": number,
  "nutrition": {
    "calories": number,
    "protein": number,
    "carbs": number,
    "fat": number,
    "fiber": number
  }
}

Use USDA values. Return valid JSON only, no markdown.`, foodText, foodText)

	text, err := gs.generate(ctx, geminiRequest{Contents: []geminiContent{{Parts: []geminiPart{{Text: prompt}}}}})
	if err != nil {
		return nil, err
	}

	var single struct {
		Name      string                    `json:"name"`
		Serving   string                    `json:"serving"`
		WeightG   float64                   `json:"weight_g"`
		Nutrition nutrition.NutritionValues `json:"nutrition"`
	}
	if err := json.Unmarshal([]byte(stripJSONFences(text)), &single); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponseFormat, err)
	}
	if single.Name == "" {
		single.Name = foodText
	}

	return &nutrition.AnalysisRecord{
		Foods: []nutrition.FoodItem{{
			Name:        single.Name,
			Portion:     single.Serving,
			WeightGrams: single.WeightG,
			Nutrition:   single.Nutrition,
		}},
		Total:      single.Nutrition,
		Confidence: "medium",
	}, nil
}

func (gs *GeminiService) generate(ctx context.Context, reqBody geminiRequest) (string, error) {
	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %v", err)
	}

	url := fmt.Sprintf("%s?key=%s", gs.baseURL, gs.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("error creating request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := gs.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error making request: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response geminiResponse
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResponseFormat, err)
	}
	if len(response.Candidates) == 0 || len(response.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: empty candidates", ErrInvalidResponseFormat)
	}
	return response.Candidates[0].Content.Parts[0].Text, nil
}

// stripJSONFences removes the ```json markdown fences models wrap output in
// despite being told not to.
func stripJSONFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		if i := strings.LastIndex(s, "```"); i >= 0 {
			s = s[:i]
		}
	}
	return strings.TrimSpace(s)
}
