package recipe

import (
	"context"
	"testing"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

func newSource() *MemorySource {
	return NewMemorySource(logger.New(logger.LevelOff, nil))
}

func TestMemorySourceAutocomplete(t *testing.T) {
	src := newSource()
	ctx := context.Background()

	tests := []struct {
		query string
		limit int
		want  []string
	}{
		{"gar", 5, []string{"garlic"}},
		{"b", 5, []string{"basil", "bell pepper", "broccoli florets"}},
		{"b", 2, []string{"basil", "bell pepper"}},
		{"zz", 5, nil},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			got, err := src.Autocomplete(ctx, tt.query, tt.limit)
			if err != nil {
				t.Fatalf("autocomplete: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("got %+v, want %v", got, tt.want)
			}
			for i, s := range got {
				if s.Name != tt.want[i] {
					t.Fatalf("got %+v, want %v", got, tt.want)
				}
			}
		})
	}
}

func TestMemorySourceFindRanksByUsage(t *testing.T) {
	src := newSource()
	ctx := context.Background()

	matches, err := src.FindByIngredients(ctx, []string{"garlic", "olive oil"}, 12)
	if err != nil {
		t.Fatalf("find: %v", err)
	}
	if len(matches) != 3 {
		t.Fatalf("expected 3 matches, got %+v", matches)
	}
	if matches[0].ID != 900001 || matches[0].UsedIngredientCount != 2 {
		t.Fatalf("expected alfredo first, got %+v", matches[0])
	}

	none, err := src.FindByIngredients(ctx, []string{"chocolate"}, 12)
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no matches, got %+v, %v", none, err)
	}
}

func TestMemorySourceInformationBulk(t *testing.T) {
	src := newSource()
	ctx := context.Background()

	recipes, err := src.InformationBulk(ctx, []int{900003, 42, 900001})
	if err != nil {
		t.Fatalf("bulk: %v", err)
	}
	if len(recipes) != 2 || recipes[0].ID != 900003 || recipes[1].ID != 900001 {
		t.Fatalf("unexpected records %+v", recipes)
	}
	if len(recipes[0].Steps()) == 0 {
		t.Fatal("expected instructions")
	}
}

func TestMemorySourceCancelled(t *testing.T) {
	src := newSource()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := src.InformationBulk(ctx, []int{900001}); err == nil {
		t.Fatal("expected context error")
	}
}

func TestMemorySourceAdd(t *testing.T) {
	src := newSource()
	src.Add(domain.Recipe{ID: 1, Title: "Toast", ExtendedIngredients: []domain.RecipeIngredient{{Name: "bread"}}})

	got, _ := src.Autocomplete(context.Background(), "bre", 5)
	if len(got) != 1 || got[0].Name != "bread" {
		t.Fatalf("added recipe not searchable: %+v", got)
	}
}
