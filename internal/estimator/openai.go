package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/khaldoun36/GritSeason/internal/model"
)

const (
	defaultOpenAIBaseURL = "https://api.openai.com/v1"
	DefaultModel         = "gpt-4o"
)

const systemPrompt = `You are a nutrition data API. Your function is to parse a food description and return a single, valid JSON object with the estimated – to the best of your knowledge – nutritional information.

**Rules:**
- Your entire response MUST be the raw JSON object and nothing else.
- Do NOT include markdown formatting like ` + "```json" + `.
- Do NOT include any explanations or conversational text.
- Aggregate the nutritional values for all food items mentioned.

**JSON Output Schema:**
- ` + "`names`" + `: An array of strings identifying each food item with their quantity.
- ` + "`calories`" + `: Total calories as a number.
- ` + "`protein`" + `: Total protein in grams as a number.
- ` + "`carbs`" + `: Total carbohydrates in grams as a number.
- ` + "`fats`" + `: Total fats in grams as a number.

You will receive the ` + "`id`" + ` and ` + "`timestamp`" + ` from another source, so you must NOT include them in your JSON output.`

var nutritionSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"names": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Names of all detected food items",
		},
		"calories": map[string]any{"type": "number", "description": "AGGREGATE total calories"},
		"protein":  map[string]any{"type": "number", "description": "AGGREGATE total protein in grams"},
		"carbs":    map[string]any{"type": "number", "description": "AGGREGATE total carbohydrates in grams"},
		"fats":     map[string]any{"type": "number", "description": "AGGREGATE total fats in grams"},
	},
	"required":             []string{"names", "calories", "protein", "carbs", "fats"},
	"additionalProperties": false,
}

// OpenAIClient estimates nutrition through the chat completions API with a
// strict JSON schema response format.
type OpenAIClient struct {
	APIKey     string
	BaseURL    string
	Model      string
	HTTPClient *http.Client
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model          string         `json:"model"`
	Messages       []chatMessage  `json:"messages"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type       string     `json:"type"`
	JSONSchema jsonSchema `json:"json_schema"`
}

type jsonSchema struct {
	Name   string         `json:"name"`
	Strict bool           `json:"strict"`
	Schema map[string]any `json:"schema"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content *string `json:"content"`
			Refusal *string `json:"refusal"`
		} `json:"message"`
	} `json:"choices"`
}

func (c *OpenAIClient) Estimate(ctx context.Context, text string) (model.Nutrition, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return model.Nutrition{}, ErrMissingInput
	}
	if strings.TrimSpace(c.APIKey) == "" {
		return model.Nutrition{}, fmt.Errorf("%w: missing OpenAI API key", ErrUpstream)
	}
	baseURL := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultOpenAIBaseURL
	}
	modelName := strings.TrimSpace(c.Model)
	if modelName == "" {
		modelName = DefaultModel
	}
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	payload, err := json.Marshal(chatRequest{
		Model: modelName,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: text},
		},
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: jsonSchema{Name: "nutrition", Strict: true, Schema: nutritionSchema},
		},
	})
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("marshal OpenAI request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/chat/completions", bytes.NewReader(payload))
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("create OpenAI request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("%w: execute OpenAI request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("%w: read OpenAI response: %v", ErrUpstream, err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return model.Nutrition{}, fmt.Errorf("%w: OpenAI request failed with status %d", ErrUpstream, resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return model.Nutrition{}, fmt.Errorf("%w: decode OpenAI response: %v", ErrUpstream, err)
	}
	if len(parsed.Choices) == 0 {
		return model.Nutrition{}, fmt.Errorf("%w: OpenAI returned no choices", ErrUpstream)
	}
	msg := parsed.Choices[0].Message
	if msg.Refusal != nil && *msg.Refusal != "" {
		return model.Nutrition{}, fmt.Errorf("%w: model refused: %s", ErrUpstream, *msg.Refusal)
	}
	if msg.Content == nil {
		return model.Nutrition{}, fmt.Errorf("%w: empty message content", ErrSchema)
	}
	return DecodeNutrition([]byte(*msg.Content))
}
