// Package recipe provides an in-memory recipe provider with a few built-in
// recipes. It backs the -offline mode, where no Spoonacular key is needed.
package recipe

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Compile-time interface check.
var _ domain.RecipeProvider = (*MemorySource)(nil)

// MemorySource answers provider calls from recipes held in memory. Safe for
// concurrent use.
type MemorySource struct {
	mu      sync.RWMutex
	recipes map[int]domain.Recipe
	order   []int
	log     *logger.Logger
}

// NewMemorySource creates a provider preloaded with built-in recipes.
func NewMemorySource(log *logger.Logger) *MemorySource {
	src := &MemorySource{
		recipes: make(map[int]domain.Recipe),
		log:     log,
	}
	src.seed()
	return src
}

// Add stores r, replacing any recipe with the same ID.
func (s *MemorySource) Add(r domain.Recipe) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.recipes[r.ID]; !ok {
		s.order = append(s.order, r.ID)
	}
	s.recipes[r.ID] = r
}

// Autocomplete returns known ingredient names starting with query, sorted.
func (s *MemorySource) Autocomplete(ctx context.Context, query string, number int) ([]domain.IngredientSuggestion, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	q := strings.ToLower(strings.TrimSpace(query))

	s.mu.RLock()
	seen := make(map[string]int)
	for _, id := range s.order {
		for _, ing := range s.recipes[id].ExtendedIngredients {
			name := strings.ToLower(ing.Name)
			if strings.HasPrefix(name, q) {
				seen[name] = ing.ID
			}
		}
	}
	s.mu.RUnlock()

	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	if number > 0 && len(names) > number {
		names = names[:number]
	}

	out := make([]domain.IngredientSuggestion, len(names))
	for i, n := range names {
		out[i] = domain.IngredientSuggestion{ID: seen[n], Name: n}
	}
	s.log.Debug("autocomplete %q: %d hits", q, len(out))
	return out, nil
}

// FindByIngredients ranks recipes by how many of ingredients they use,
// most first. Recipes using none are left out.
func (s *MemorySource) FindByIngredients(ctx context.Context, ingredients []string, number int) ([]domain.RecipeMatch, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	want := make([]string, len(ingredients))
	for i, n := range ingredients {
		want[i] = strings.ToLower(n)
	}

	s.mu.RLock()
	var out []domain.RecipeMatch
	for _, id := range s.order {
		r := s.recipes[id]
		used := 0
		for _, w := range want {
			if uses(r, w) {
				used++
			}
		}
		if used == 0 {
			continue
		}
		out = append(out, domain.RecipeMatch{
			ID:                    r.ID,
			Title:                 r.Title,
			UsedIngredientCount:   used,
			MissedIngredientCount: len(r.ExtendedIngredients) - used,
		})
	}
	s.mu.RUnlock()

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UsedIngredientCount > out[j].UsedIngredientCount
	})
	if number > 0 && len(out) > number {
		out = out[:number]
	}
	s.log.Debug("find by %v: %d matches", want, len(out))
	return out, nil
}

// InformationBulk returns the stored records for ids in request order.
// Unknown ids are skipped.
func (s *MemorySource) InformationBulk(ctx context.Context, ids []int) ([]domain.Recipe, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Recipe, 0, len(ids))
	for _, id := range ids {
		r, ok := s.recipes[id]
		if !ok {
			s.log.Debug("recipe not found: %d", id)
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func uses(r domain.Recipe, name string) bool {
	for _, ing := range r.ExtendedIngredients {
		if strings.Contains(strings.ToLower(ing.Name), name) {
			return true
		}
	}
	return false
}

// seed populates the source with built-in recipes.
func (s *MemorySource) seed() {
	for _, r := range []domain.Recipe{vegetableStirFry(), chickenAlfredo(), caprese()} {
		s.Add(r)
	}
	s.log.Debug("seeded %d recipes", len(s.order))
}

func steps(lines ...string) []domain.InstructionGroup {
	g := domain.InstructionGroup{Steps: make([]domain.InstructionStep, len(lines))}
	for i, l := range lines {
		g.Steps[i] = domain.InstructionStep{Number: i + 1, Step: l}
	}
	return []domain.InstructionGroup{g}
}

func chickenAlfredo() domain.Recipe {
	return domain.Recipe{
		ID:             900001,
		Title:          "Chicken Alfredo",
		ReadyInMinutes: 40,
		Servings:       2,
		DishTypes:      []string{"main course", "dinner"},
		Cuisines:       []string{"Italian"},
		Summary:        "Creamy <b>spaghetti alfredo</b> with pan-seared chicken.",
		ExtendedIngredients: []domain.RecipeIngredient{
			{ID: 11420420, Name: "spaghetti", Amount: 250, Unit: "g"},
			{ID: 5062, Name: "chicken breast", Amount: 2},
			{ID: 1001056, Name: "creme fraiche", Amount: 1, Unit: "cup"},
			{ID: 1023, Name: "gruyere cheese", Amount: 1, Unit: "cup"},
			{ID: 11215, Name: "garlic", Amount: 4, Unit: "cloves"},
			{ID: 4053, Name: "olive oil", Amount: 1, Unit: "tbsp"},
		},
		AnalyzedInstructions: steps(
			"Boil a large pot of well salted water.",
			"Season the chicken on both sides and sear in olive oil about 6 minutes per side. Rest it.",
			"Cook the spaghetti until al dente, keeping a cup of the water.",
			"Soften the garlic in the same pan, stir in the creme fraiche and simmer 3 minutes.",
			"Off the heat, melt in the gruyere, loosen with pasta water, then toss with the pasta and sliced chicken.",
		),
	}
}

func vegetableStirFry() domain.Recipe {
	return domain.Recipe{
		ID:             900002,
		Title:          "Vegetable Stir Fry",
		ReadyInMinutes: 25,
		Servings:       2,
		DishTypes:      []string{"main course", "side dish"},
		Cuisines:       []string{"Asian"},
		Summary:        "A fast, high-heat stir fry.<br>Serve over rice.",
		ExtendedIngredients: []domain.RecipeIngredient{
			{ID: 10211821, Name: "bell pepper", Amount: 1},
			{ID: 10011090, Name: "broccoli florets", Amount: 2, Unit: "cups"},
			{ID: 11124, Name: "carrot", Amount: 1},
			{ID: 11300, Name: "snap peas", Amount: 1, Unit: "cup"},
			{ID: 11215, Name: "garlic", Amount: 3, Unit: "cloves"},
			{ID: 16124, Name: "soy sauce", Amount: 2, Unit: "tbsp"},
			{ID: 20444, Name: "rice", Amount: 1, Unit: "cup"},
		},
		AnalyzedInstructions: steps(
			"Start the rice.",
			"Cut every vegetable before the pan goes on.",
			"Whisk the soy sauce with two tablespoons of water.",
			"Stir-fry broccoli and carrot two minutes on high heat, then the pepper and peas two more.",
			"Add the garlic, pour in the sauce, toss and serve over the rice.",
		),
	}
}

func caprese() domain.Recipe {
	return domain.Recipe{
		ID:             900003,
		Title:          "Caprese Salad",
		ReadyInMinutes: 10,
		Servings:       2,
		DishTypes:      []string{"salad", "side dish"},
		Cuisines:       []string{"Italian"},
		Summary:        "<p>Tomato, mozzarella and basil.</p>",
		ExtendedIngredients: []domain.RecipeIngredient{
			{ID: 11529, Name: "tomato", Amount: 2},
			{ID: 1026, Name: "mozzarella", Amount: 125, Unit: "g"},
			{ID: 2044, Name: "basil", Amount: 0.5, Unit: "cup"},
			{ID: 4053, Name: "olive oil", Amount: 2, Unit: "tbsp"},
		},
		AnalyzedInstructions: steps(
			"Slice the tomato and mozzarella.",
			"Layer with basil leaves, drizzle with olive oil and season.",
		),
	}
}
