package domain

import "testing"

func TestIngredientLine(t *testing.T) {
	tests := []struct {
		name string
		in   RecipeIngredient
		want string
	}{
		{"full", RecipeIngredient{Name: "basil", Amount: 2, Unit: "tbsp"}, "2 tbsp basil"},
		{"fraction", RecipeIngredient{Name: "milk", Amount: 0.5, Unit: "cup"}, "0.5 cup milk"},
		{"no unit", RecipeIngredient{Name: "eggs", Amount: 3}, "3 eggs"},
		{"name only", RecipeIngredient{Name: "salt"}, "salt"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.in.Line(); got != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSuggestionImageURL(t *testing.T) {
	s := IngredientSuggestion{Name: "tomato", Image: "tomato.png"}
	if got := s.ImageURL(); got != IngredientImageBase+"tomato.png" {
		t.Fatalf("unexpected url %q", got)
	}

	abs := IngredientSuggestion{Image: "https://example.com/x.png"}
	if got := abs.ImageURL(); got != "https://example.com/x.png" {
		t.Fatalf("absolute url rewritten: %q", got)
	}

	if got := (IngredientSuggestion{}).ImageURL(); got != "" {
		t.Fatalf("expected empty url, got %q", got)
	}
}

func TestRecipeSteps(t *testing.T) {
	r := &Recipe{}
	if r.Steps() != nil {
		t.Fatal("expected nil steps for recipe without instructions")
	}

	r.AnalyzedInstructions = []InstructionGroup{
		{Steps: []InstructionStep{{Number: 1, Step: "Chop."}, {Number: 2, Step: "Fry."}}},
		{Name: "Sauce", Steps: []InstructionStep{{Number: 1, Step: "Stir."}}},
	}
	steps := r.Steps()
	if len(steps) != 2 || steps[1].Step != "Fry." {
		t.Fatalf("expected first group steps, got %+v", steps)
	}
}

func TestTopDishTypes(t *testing.T) {
	r := &Recipe{DishTypes: []string{"lunch", "main course", "dinner"}}
	got := r.TopDishTypes(2)
	if len(got) != 2 || got[0] != "lunch" || got[1] != "main course" {
		t.Fatalf("unexpected dish types %v", got)
	}
	if len((&Recipe{}).TopDishTypes(2)) != 0 {
		t.Fatal("expected no dish types")
	}
}

func TestThemeParseAndToggle(t *testing.T) {
	tests := []struct {
		in     string
		want   Theme
		wantOK bool
	}{
		{"light", ThemeLight, true},
		{"dark", ThemeDark, true},
		{"", ThemeLight, false},
		{"Dark", ThemeLight, false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseTheme(tt.in)
			if got != tt.want || ok != tt.wantOK {
				t.Fatalf("ParseTheme(%q) = %s, %v", tt.in, got, ok)
			}
		})
	}

	if ThemeLight.Toggle() != ThemeDark || ThemeDark.Toggle() != ThemeLight {
		t.Fatal("toggle is not an involution")
	}
	if ThemeDark.String() != "dark" || ThemeLight.String() != "light" {
		t.Fatal("unexpected theme strings")
	}
}
