// Package estimator turns a free-text food description into aggregate
// nutrition facts. Calls are single-shot: there is no retry, and a failed
// call never yields a partial result.
package estimator

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/khaldoun36/GritSeason/internal/model"
)

var (
	ErrMissingInput = errors.New("prompt is required")
	ErrUpstream     = errors.New("upstream estimation failed")
	ErrSchema       = errors.New("estimation does not match the nutrition schema")
)

type Estimator interface {
	Estimate(ctx context.Context, text string) (model.Nutrition, error)
}

// Func adapts a plain function to Estimator.
type Func func(ctx context.Context, text string) (model.Nutrition, error)

func (f Func) Estimate(ctx context.Context, text string) (model.Nutrition, error) {
	return f(ctx, text)
}

type nutritionPayload struct {
	Names    *[]string `json:"names"`
	Calories *float64  `json:"calories"`
	Protein  *float64  `json:"protein"`
	Carbs    *float64  `json:"carbs"`
	Fats     *float64  `json:"fats"`
}

// DecodeNutrition parses raw JSON strictly: every field is required, unknown
// fields are rejected and magnitudes must be non-negative.
func DecodeNutrition(raw []byte) (model.Nutrition, error) {
	dec := json.NewDecoder(bytes.NewReader(bytes.TrimSpace(raw)))
	dec.DisallowUnknownFields()
	var p nutritionPayload
	if err := dec.Decode(&p); err != nil {
		return model.Nutrition{}, fmt.Errorf("%w: %v", ErrSchema, err)
	}
	if dec.More() {
		return model.Nutrition{}, fmt.Errorf("%w: trailing data after object", ErrSchema)
	}

	missing := make([]string, 0)
	if p.Names == nil {
		missing = append(missing, "names")
	}
	fields := []struct {
		name  string
		value *float64
	}{
		{"calories", p.Calories},
		{"protein", p.Protein},
		{"carbs", p.Carbs},
		{"fats", p.Fats},
	}
	for _, f := range fields {
		if f.value == nil {
			missing = append(missing, f.name)
		}
	}
	if len(missing) > 0 {
		return model.Nutrition{}, fmt.Errorf("%w: missing %s", ErrSchema, strings.Join(missing, ", "))
	}
	for _, f := range fields {
		if *f.value < 0 {
			return model.Nutrition{}, fmt.Errorf("%w: %s must be >= 0", ErrSchema, f.name)
		}
	}

	return model.Nutrition{
		Names:    *p.Names,
		Calories: *p.Calories,
		Protein:  *p.Protein,
		Carbs:    *p.Carbs,
		Fats:     *p.Fats,
	}, nil
}
