package model

import (
	"encoding/json"
	"fmt"
	"strings"
)

type Gender int

const (
	GenderUnspecified Gender = iota
	GenderMale
	GenderFemale
	// GenderOther applies neither Mifflin-St Jeor sex adjustment.
	GenderOther
)

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	case GenderOther:
		return "Other"
	default:
		return ""
	}
}

// ParseGender maps a label to a Gender. Unknown non-empty labels become
// GenderOther rather than failing.
func ParseGender(label string) Gender {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "":
		return GenderUnspecified
	case "male", "m":
		return GenderMale
	case "female", "f":
		return GenderFemale
	default:
		return GenderOther
	}
}

func (g Gender) MarshalJSON() ([]byte, error) {
	if g == GenderUnspecified {
		return []byte("null"), nil
	}
	return json.Marshal(g.String())
}

func (g *Gender) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*g = GenderUnspecified
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("decode gender: %w", err)
	}
	*g = ParseGender(label)
	return nil
}

type ActivityLevel int

const (
	ActivityUnspecified ActivityLevel = iota
	ActivitySedentary
	ActivityLight
	ActivityModerate
	ActivityActive
	ActivityVeryActive
)

type activityTier struct {
	key        string
	label      string
	multiplier float64
}

var activityTiers = map[ActivityLevel]activityTier{
	ActivitySedentary:  {key: "sedentary", label: "Little or no exercise", multiplier: 1.2},
	ActivityLight:      {key: "light", label: "Light: 1–3 workouts per week", multiplier: 1.375},
	ActivityModerate:   {key: "moderate", label: "Moderate: 3–5 workouts per week", multiplier: 1.55},
	ActivityActive:     {key: "active", label: "Active: 6–7 workouts per week", multiplier: 1.725},
	ActivityVeryActive: {key: "very-active", label: "Very Active: Daily intense exercise or physical job", multiplier: 1.9},
}

// ActivityLevels lists the known tiers from least to most active.
func ActivityLevels() []ActivityLevel {
	return []ActivityLevel{ActivitySedentary, ActivityLight, ActivityModerate, ActivityActive, ActivityVeryActive}
}

func (a ActivityLevel) String() string {
	return activityTiers[a].label
}

func (a ActivityLevel) Key() string {
	return activityTiers[a].key
}

// Multiplier returns the TDEE multiplier and false for ActivityUnspecified.
func (a ActivityLevel) Multiplier() (float64, bool) {
	tier, ok := activityTiers[a]
	if !ok {
		return 0, false
	}
	return tier.multiplier, true
}

// ParseActivityLevel accepts the full display label or its short key.
func ParseActivityLevel(value string) (ActivityLevel, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return ActivityUnspecified, nil
	}
	for _, level := range ActivityLevels() {
		tier := activityTiers[level]
		if value == tier.label || strings.EqualFold(value, tier.key) {
			return level, nil
		}
	}
	return ActivityUnspecified, fmt.Errorf("unknown activity level %q", value)
}

// LookupActivityLevel is ParseActivityLevel for stored values: an unknown
// label yields ActivityUnspecified, whose TDEE is 0.
func LookupActivityLevel(value string) ActivityLevel {
	level, err := ParseActivityLevel(value)
	if err != nil {
		return ActivityUnspecified
	}
	return level
}

func (a ActivityLevel) MarshalJSON() ([]byte, error) {
	if a == ActivityUnspecified {
		return []byte("null"), nil
	}
	return json.Marshal(a.String())
}

func (a *ActivityLevel) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*a = ActivityUnspecified
		return nil
	}
	var label string
	if err := json.Unmarshal(data, &label); err != nil {
		return fmt.Errorf("decode activity level: %w", err)
	}
	level, err := ParseActivityLevel(label)
	if err != nil {
		return err
	}
	*a = level
	return nil
}
