package models

import (
	"bytes"
	"encoding/json"
	"strings"
)

// RecipeSummary is a recipe as listed in grids, favorites and history.
type RecipeSummary struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	ImageURL      string `json:"image_url,omitempty"`
	CookingTime   *int   `json:"cooking_time,omitempty"`
	Complexity    string `json:"complexity,omitempty"`
	Category      string `json:"category,omitempty"`
	AverageRating Rating `json:"average_rating"`
}

// RecipeDetail is the full recipe shown on the detail screen.
type RecipeDetail struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	ImageURL      string          `json:"image_url,omitempty"`
	VideoURL      string          `json:"video_url,omitempty"`
	Description   string          `json:"description"`
	Ingredients   IngredientList  `json:"ingredients"`
	Instructions  InstructionList `json:"instructions"`
	AverageRating Rating          `json:"average_rating"`
}

// Summary returns the listing form of d, used when saving to history.
func (d RecipeDetail) Summary() RecipeSummary {
	return RecipeSummary{ID: d.ID, Name: d.Name, ImageURL: d.ImageURL, AverageRating: d.AverageRating}
}

// EmbedVideoURL rewrites a watch link into its embeddable form.
func (d RecipeDetail) EmbedVideoURL() string {
	return strings.Replace(d.VideoURL, "watch?v=", "embed/", 1)
}

// IngredientList decodes from an array or from a "|"-separated string.
type IngredientList []string

func (l *IngredientList) UnmarshalJSON(b []byte) error {
	items, err := stringOrList(b, func(s string) []string {
		parts := strings.Split(s, "|")
		out := make([]string, 0, len(parts))
		for _, p := range parts {
			out = append(out, strings.TrimSpace(p))
		}
		return out
	})
	*l = items
	return err
}

// InstructionList decodes from an array or from a string of sentences;
// each non-empty sentence becomes a step.
type InstructionList []string

func (l *InstructionList) UnmarshalJSON(b []byte) error {
	items, err := stringOrList(b, func(s string) []string {
		var out []string
		for _, p := range strings.Split(s, ".") {
			if p = strings.TrimSpace(p); p != "" {
				out = append(out, p)
			}
		}
		return out
	})
	*l = items
	return err
}

func stringOrList(b []byte, split func(string) []string) ([]string, error) {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil, nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return nil, err
		}
		return split(s), nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// RecipeIDs returns the ids of recipes in order.
func RecipeIDs(recipes []RecipeSummary) []int64 {
	ids := make([]int64, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}
