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

// Remote calls the /api/generate endpoint of a running grit server.
type Remote struct {
	BaseURL    string
	HTTPClient *http.Client
}

func (r *Remote) Estimate(ctx context.Context, text string) (model.Nutrition, error) {
	if strings.TrimSpace(text) == "" {
		return model.Nutrition{}, ErrMissingInput
	}
	baseURL := strings.TrimRight(strings.TrimSpace(r.BaseURL), "/")
	if baseURL == "" {
		return model.Nutrition{}, fmt.Errorf("%w: missing estimator URL", ErrUpstream)
	}
	httpClient := r.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 45 * time.Second}
	}

	payload, err := json.Marshal(map[string]string{"prompt": text})
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("marshal generate request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, baseURL+"/api/generate", bytes.NewReader(payload))
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("create generate request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := httpClient.Do(req)
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("%w: execute generate request: %v", ErrUpstream, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return model.Nutrition{}, fmt.Errorf("%w: read generate response: %v", ErrUpstream, err)
	}
	switch {
	case resp.StatusCode == http.StatusBadRequest:
		return model.Nutrition{}, ErrMissingInput
	case resp.StatusCode < 200 || resp.StatusCode >= 300:
		return model.Nutrition{}, fmt.Errorf("%w: generate request failed with status %d", ErrUpstream, resp.StatusCode)
	}
	return DecodeNutrition(body)
}
