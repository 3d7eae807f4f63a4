package ramadan

import (
	"errors"
	"fmt"
	"strings"
)

// MealType is suhoor or iftar.
type MealType string

const (
	MealSuhoor MealType = "suhoor"
	MealIftar  MealType = "iftar"
)

// ErrUnknownMealType is returned for meal types other than suhoor and iftar.
var ErrUnknownMealType = errors.New("unknown meal type")

// Meal is one curated suggestion.
type Meal struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Benefits    []string `json:"benefits"`
	PrepMinutes int      `json:"prepMinutes"`
}

var meals = map[MealType][]Meal{
	MealSuhoor: {
		{
			Name:        "Oats with dates and milk",
			Description: "Slow-release carbohydrates sweetened with dates.",
			Benefits:    []string{"Keeps you full for longer", "Steady energy through the morning"},
			PrepMinutes: 10,
		},
		{
			Name:        "Eggs, wholegrain bread and cucumber",
			Description: "Protein and fibre with a hydrating side.",
			Benefits:    []string{"High protein", "Cucumber adds water"},
			PrepMinutes: 15,
		},
		{
			Name:        "Greek yoghurt with honey and nuts",
			Description: "A light option when appetite is low before dawn.",
			Benefits:    []string{"Protein and healthy fats", "Easy to digest"},
			PrepMinutes: 5,
		},
		{
			Name:        "Ful medames with olive oil",
			Description: "Slow-cooked fava beans, a traditional suhoor staple.",
			Benefits:    []string{"Rich in fibre", "Plant protein"},
			PrepMinutes: 20,
		},
	},
	MealIftar: {
		{
			Name:        "Dates and water",
			Description: "Break the fast the way the Prophet did.",
			Benefits:    []string{"Quick natural sugars", "Rehydrates gently"},
			PrepMinutes: 0,
		},
		{
			Name:        "Lentil soup",
			Description: "A warm, light start before the main meal.",
			Benefits:    []string{"Restores fluids and salts", "Gentle on the stomach"},
			PrepMinutes: 30,
		},
		{
			Name:        "Grilled chicken with rice and salad",
			Description: "A balanced main course.",
			Benefits:    []string{"Lean protein", "Replenishes energy"},
			PrepMinutes: 40,
		},
		{
			Name:        "Fattoush",
			Description: "Fresh vegetable salad with toasted bread and sumac.",
			Benefits:    []string{"Vitamins and fibre", "Hydrating vegetables"},
			PrepMinutes: 15,
		},
	},
}

// ParseMealType parses "suhoor" or "iftar", case-insensitively.
func ParseMealType(s string) (MealType, error) {
	t := MealType(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := meals[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMealType, s)
	}
	return t, nil
}

// MealSuggestions returns the curated meals for a meal type. The preference
// is accepted but does not filter the result.
func MealSuggestions(t MealType, preference string) ([]Meal, error) {
	catalog, ok := meals[t]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMealType, t)
	}

	out := make([]Meal, len(catalog))
	for i, m := range catalog {
		m.Benefits = append([]string(nil), m.Benefits...)
		out[i] = m
	}
	return out, nil
}
