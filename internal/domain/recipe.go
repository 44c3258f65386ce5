// Package domain defines the core types and interfaces for the recipe explorer.
// All other packages depend on domain; domain depends on nothing.
package domain

import (
	"strconv"
	"strings"
)

// IngredientImageBase is the CDN prefix for ingredient suggestion thumbnails.
const IngredientImageBase = "https://spoonacular.com/cdn/ingredients_100x100/"

// IngredientSuggestion is one autocomplete hit. Ephemeral: replaced wholesale
// on every new query.
type IngredientSuggestion struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Image string `json:"image"`
}

// ImageURL returns the absolute thumbnail URL, or "" when there is no image.
func (s IngredientSuggestion) ImageURL() string {
	if s.Image == "" {
		return ""
	}
	if strings.HasPrefix(s.Image, "http://") || strings.HasPrefix(s.Image, "https://") {
		return s.Image
	}
	return IngredientImageBase + s.Image
}

// RecipeMatch is a row of the find-by-ingredients response. Only ID is
// relied on downstream; the rest is kept for logging.
type RecipeMatch struct {
	ID                    int    `json:"id"`
	Title                 string `json:"title"`
	Image                 string `json:"image"`
	UsedIngredientCount   int    `json:"usedIngredientCount"`
	MissedIngredientCount int    `json:"missedIngredientCount"`
}

// Recipe is a full recipe record as returned by the bulk information
// endpoint. The application never mutates recipe content.
type Recipe struct {
	ID                   int                `json:"id"`
	Title                string             `json:"title"`
	Image                string             `json:"image"`
	ReadyInMinutes       int                `json:"readyInMinutes"`
	Servings             int                `json:"servings"`
	DishTypes            []string           `json:"dishTypes"`
	Cuisines             []string           `json:"cuisines"`
	Summary              string             `json:"summary"`
	ExtendedIngredients  []RecipeIngredient `json:"extendedIngredients"`
	AnalyzedInstructions []InstructionGroup `json:"analyzedInstructions"`
}

// RecipeIngredient is a single line of a recipe's ingredient list.
type RecipeIngredient struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Amount float64 `json:"amount"`
	Unit   string  `json:"unit"`
}

// InstructionGroup is one named block of ordered steps.
type InstructionGroup struct {
	Name  string            `json:"name"`
	Steps []InstructionStep `json:"steps"`
}

// InstructionStep is a single numbered instruction.
type InstructionStep struct {
	Number int    `json:"number"`
	Step   string `json:"step"`
}

// Steps returns the steps of the first instruction group, or nil.
func (r *Recipe) Steps() []InstructionStep {
	if len(r.AnalyzedInstructions) == 0 {
		return nil
	}
	return r.AnalyzedInstructions[0].Steps
}

// TopDishTypes returns at most n dish types, in provider order.
func (r *Recipe) TopDishTypes(n int) []string {
	if len(r.DishTypes) <= n {
		return r.DishTypes
	}
	return r.DishTypes[:n]
}

// Line renders the ingredient as "<amount> <unit> <name>", skipping empty parts.
func (i RecipeIngredient) Line() string {
	parts := make([]string, 0, 3)
	if i.Amount != 0 {
		parts = append(parts, strconv.FormatFloat(i.Amount, 'f', -1, 64))
	}
	if i.Unit != "" {
		parts = append(parts, i.Unit)
	}
	if i.Name != "" {
		parts = append(parts, i.Name)
	}
	return strings.Join(parts, " ")
}

// RecipeIDs extracts the IDs of a recipe list, preserving order.
func RecipeIDs(recipes []Recipe) []int {
	ids := make([]int, len(recipes))
	for i, r := range recipes {
		ids[i] = r.ID
	}
	return ids
}
