// Package search runs the two-step recipe lookup (match by ingredients,
// then one bulk detail fetch) and tracks the single open detail record.
package search

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Defaults.
const (
	DefaultMatchLimit = 12 // find-by-ingredients result size
	DefaultTimeout    = 30 * time.Second
)

// Option configures the flow.
type Option func(*Flow)

// WithMatchLimit overrides how many candidate recipes are requested.
func WithMatchLimit(n int) Option {
	return func(f *Flow) { f.matchLimit = n }
}

// WithTimeout bounds each search pipeline end to end.
func WithTimeout(d time.Duration) Option {
	return func(f *Flow) { f.timeout = d }
}

// Flow owns the displayed recipe list, the searching flag, the last error
// and the open detail record. Searches are tagged with a generation: only
// the newest search may publish results or release the flag. Safe for
// concurrent use.
type Flow struct {
	provider   domain.RecipeProvider
	log        *logger.Logger
	matchLimit int
	timeout    time.Duration

	mu         sync.RWMutex
	recipes    []domain.Recipe
	generation uint64
	searching  bool
	lastErr    error
	selected   *domain.Recipe
}

// New creates a flow backed by provider.
func New(provider domain.RecipeProvider, log *logger.Logger, opts ...Option) *Flow {
	f := &Flow{
		provider:   provider,
		log:        log,
		matchLimit: DefaultMatchLimit,
		timeout:    DefaultTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Search finds recipes using every name in ingredients. On success the
// displayed list is replaced by the bulk response verbatim. On failure the
// previous list is untouched. Returns domain.ErrStale when a newer search
// started before this one finished; its result is discarded.
func (f *Flow) Search(ctx context.Context, ingredients []string) error {
	if len(ingredients) == 0 {
		return domain.ErrNoIngredients
	}
	return f.run(ctx, fmt.Sprintf("search %v", ingredients), func(ctx context.Context) ([]domain.Recipe, error) {
		matches, err := f.provider.FindByIngredients(ctx, ingredients, f.matchLimit)
		if err != nil {
			return nil, fmt.Errorf("search: find by ingredients: %w", err)
		}
		if len(matches) == 0 {
			return []domain.Recipe{}, nil
		}

		ids := make([]int, len(matches))
		for i, m := range matches {
			ids[i] = m.ID
		}
		recipes, err := f.provider.InformationBulk(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("search: information bulk: %w", err)
		}
		return recipes, nil
	})
}

// LoadSaved replaces the displayed list with the full records for ids, in
// one bulk request. Same publishing rules as Search.
func (f *Flow) LoadSaved(ctx context.Context, ids []int) error {
	return f.run(ctx, fmt.Sprintf("saved %d", len(ids)), func(ctx context.Context) ([]domain.Recipe, error) {
		if len(ids) == 0 {
			return []domain.Recipe{}, nil
		}
		recipes, err := f.provider.InformationBulk(ctx, ids)
		if err != nil {
			return nil, fmt.Errorf("search: saved information bulk: %w", err)
		}
		return recipes, nil
	})
}

// run executes fetch under a fresh generation. The searching flag is
// acquired here and released by the deferred cleanup on every exit path,
// unless a newer generation has taken it over.
func (f *Flow) run(ctx context.Context, label string, fetch func(context.Context) ([]domain.Recipe, error)) (err error) {
	gen := f.begin()
	defer f.finish(gen, &err)

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	f.log.Debug("%s: started (gen=%d)", label, gen)
	recipes, err := fetch(ctx)
	if err != nil {
		f.log.Error("%s: %v", label, err)
		return err
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		f.log.Debug("%s: discarding %d recipes from superseded gen=%d", label, len(recipes), gen)
		return domain.ErrStale
	}
	f.recipes = recipes
	f.log.Info("%s: %d recipes", label, len(recipes))
	return nil
}

func (f *Flow) begin() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.generation++
	f.searching = true
	f.lastErr = nil
	return f.generation
}

func (f *Flow) finish(gen uint64, errp *error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if gen != f.generation {
		if *errp == nil {
			*errp = domain.ErrStale
		}
		return
	}
	f.searching = false
	f.lastErr = *errp
}

// Recipes returns a copy of the displayed list.
func (f *Flow) Recipes() []domain.Recipe {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return slices.Clone(f.recipes)
}

// Recipe returns the displayed recipe at index i.
func (f *Flow) Recipe(i int) (domain.Recipe, bool) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if i < 0 || i >= len(f.recipes) {
		return domain.Recipe{}, false
	}
	return f.recipes[i], true
}

// Searching reports whether the newest search is still running.
func (f *Flow) Searching() bool {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.searching
}

// LastError returns the error of the newest finished search, or nil.
func (f *Flow) LastError() error {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.lastErr
}

// ClearError forgets the last error.
func (f *Flow) ClearError() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.lastErr = nil
}

// Generation returns the number of searches started so far.
func (f *Flow) Generation() uint64 {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.generation
}

// Open makes recipe the single open detail record, replacing any other.
func (f *Flow) Open(recipe domain.Recipe) {
	f.mu.Lock()
	defer f.mu.Unlock()
	r := recipe
	f.selected = &r
}

// Close clears the open detail record.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.selected = nil
}

// Selected returns the open detail record, or nil.
func (f *Flow) Selected() *domain.Recipe {
	f.mu.RLock()
	defer f.mu.RUnlock()
	if f.selected == nil {
		return nil
	}
	r := *f.selected
	return &r
}
