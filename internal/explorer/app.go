// Package explorer composes the preference store, the suggestion dropdown,
// the ingredient selection and the search flow into the single application
// state the terminal UI drives.
package explorer

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/hammamikhairi/recipex/internal/autocomplete"
	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/export"
	"github.com/hammamikhairi/recipex/internal/logger"
	"github.com/hammamikhairi/recipex/internal/prefs"
	"github.com/hammamikhairi/recipex/internal/search"
	"github.com/hammamikhairi/recipex/internal/selection"
)

// View is which recipe list the grid is showing.
type View int

const (
	// ViewResults shows the latest ingredient search.
	ViewResults View = iota
	// ViewSaved shows the saved recipes.
	ViewSaved
)

// String returns the view label.
func (v View) String() string {
	if v == ViewSaved {
		return "saved"
	}
	return "results"
}

// Option configures the App.
type Option func(*App)

// WithDebounce sets the suggestion debounce window.
func WithDebounce(d time.Duration) Option {
	return func(a *App) { a.debounce = d }
}

// WithSearchTimeout bounds each recipe search.
func WithSearchTimeout(d time.Duration) Option {
	return func(a *App) { a.searchTimeout = d }
}

// WithExportDir sets where exports are written.
func WithExportDir(dir string) Option {
	return func(a *App) { a.exportDir = dir }
}

// WithNarrator enables read-aloud.
func WithNarrator(n domain.Narrator) Option {
	return func(a *App) { a.narrator = n }
}

// WithOnChange registers fn, called whenever state changes off the UI
// goroutine (suggestions arriving).
func WithOnChange(fn func()) Option {
	return func(a *App) { a.onChange = fn }
}

// WithClock replaces time.Now for export file names.
func WithClock(now func() time.Time) Option {
	return func(a *App) { a.now = now }
}

// WithAfterFunc replaces the debounce timer factory.
func WithAfterFunc(f autocomplete.AfterFunc) Option {
	return func(a *App) { a.afterFunc = f }
}

// App is the application state. Every method is safe to call from the UI
// goroutine and from tea.Cmd goroutines.
type App struct {
	prefs     *prefs.Store
	suggest   *autocomplete.Controller
	selection *selection.Set
	flow      *search.Flow
	narrator  domain.Narrator
	log       *logger.Logger

	debounce      time.Duration
	searchTimeout time.Duration
	exportDir     string
	onChange      func()
	now           func() time.Time
	afterFunc     autocomplete.AfterFunc

	mu     sync.Mutex
	view   View
	notice string
	err    error
}

// New wires an App around provider and the loaded preferences.
func New(provider domain.RecipeProvider, store *prefs.Store, log *logger.Logger, opts ...Option) *App {
	a := &App{
		prefs:     store,
		selection: selection.New(),
		log:       log,
		debounce:  autocomplete.DefaultDebounce,
		exportDir: ".",
		now:       time.Now,
	}
	for _, opt := range opts {
		opt(a)
	}
	if a.narrator == nil {
		a.narrator = nopNarrator{}
	}

	acOpts := []autocomplete.Option{
		autocomplete.WithDebounce(a.debounce),
		autocomplete.WithOnChange(a.changed),
	}
	if a.afterFunc != nil {
		acOpts = append(acOpts, autocomplete.WithAfterFunc(a.afterFunc))
	}
	a.suggest = autocomplete.New(provider, log.Named("autocomplete"), acOpts...)

	var flowOpts []search.Option
	if a.searchTimeout > 0 {
		flowOpts = append(flowOpts, search.WithTimeout(a.searchTimeout))
	}
	a.flow = search.New(provider, log.Named("search"), flowOpts...)
	return a
}

// ── Ingredient input ─────────────────────────────────────────────

// Type forwards an input edit to the suggestion dropdown.
func (a *App) Type(text string) {
	a.clearNotice()
	a.suggest.Type(text)
}

// SelectSuggestion adds the i-th visible suggestion to the selection.
func (a *App) SelectSuggestion(i int) (string, bool) {
	name, ok := a.suggest.SelectIndex(i)
	if !ok {
		return "", false
	}
	if a.selection.Add(name) {
		a.log.Debug("ingredient added: %s", name)
	}
	return name, true
}

// DismissSuggestions hides the dropdown (click outside, esc).
func (a *App) DismissSuggestions() { a.suggest.Dismiss() }

// FocusSearch re-shows the dropdown with the last suggestions.
func (a *App) FocusSearch() { a.suggest.Focus() }

// RemoveIngredient removes name from the selection.
func (a *App) RemoveIngredient(name string) bool {
	return a.selection.Remove(name)
}

// RemoveIngredientAt removes the i-th selected ingredient.
func (a *App) RemoveIngredientAt(i int) (string, bool) {
	return a.selection.RemoveAt(i)
}

// ── Recipes ──────────────────────────────────────────────────────

// FindRecipes searches with the current selection. A superseded search
// returns domain.ErrStale and leaves the notice alone.
func (a *App) FindRecipes(ctx context.Context) error {
	a.clearNotice()
	names := a.selection.Names()
	if len(names) == 0 {
		a.fail(domain.ErrNoIngredients)
		return domain.ErrNoIngredients
	}

	err := a.flow.Search(ctx, names)
	if err == nil {
		a.setView(ViewResults)
	}
	return a.settle(err, func() string {
		return fmt.Sprintf("%d recipes for %d ingredients", len(a.flow.Recipes()), len(names))
	})
}

// ShowSaved replaces the grid with the saved recipes, fetched in one call.
func (a *App) ShowSaved(ctx context.Context) error {
	a.clearNotice()
	ids := a.prefs.Saved()
	err := a.flow.LoadSaved(ctx, ids)
	if err == nil {
		a.setView(ViewSaved)
	}
	return a.settle(err, func() string {
		if len(ids) == 0 {
			return "no saved recipes yet"
		}
		return fmt.Sprintf("%d saved recipes", len(ids))
	})
}

// settle records the outcome of a list-replacing call.
func (a *App) settle(err error, ok func() string) error {
	switch {
	case errors.Is(err, domain.ErrStale):
		return err
	case err != nil:
		a.fail(err)
		return err
	default:
		a.say(ok())
		return nil
	}
}

// Open makes the i-th grid recipe the open detail record.
func (a *App) Open(i int) bool {
	r, ok := a.flow.Recipe(i)
	if !ok {
		return false
	}
	a.narrator.Stop()
	a.flow.Open(r)
	a.log.Debug("opened recipe %d", r.ID)
	return true
}

// CloseDetail closes the detail record and stops any narration.
func (a *App) CloseDetail() {
	a.narrator.Stop()
	a.flow.Close()
}

// ToggleSaved flips id in the saved set and returns the new membership.
func (a *App) ToggleSaved(id int) bool {
	saved := a.prefs.ToggleSaved(id)
	if saved {
		a.say("saved")
	} else {
		a.say("removed from saved")
	}
	return saved
}

// ToggleTheme flips between light and dark.
func (a *App) ToggleTheme() domain.Theme {
	return a.prefs.ToggleTheme()
}

// Export writes the displayed recipes to a timestamped .xlsx file in the
// export directory and returns its path.
func (a *App) Export() (string, error) {
	recipes := a.flow.Recipes()
	path := filepath.Join(a.exportDir, export.DefaultName(a.now()))
	if err := export.Write(path, recipes, a.prefs.IsSaved); err != nil {
		a.fail(err)
		return "", err
	}
	a.log.Info("exported %d recipes to %s", len(recipes), path)
	a.say("exported to " + path)
	return path, nil
}

// ReadAloud narrates the open recipe. Blocks until narration ends.
func (a *App) ReadAloud(ctx context.Context) error {
	sel := a.flow.Selected()
	if sel == nil {
		return domain.ErrNotFound
	}
	if !a.narrator.Enabled() {
		a.fail(domain.ErrNotConfigured)
		return domain.ErrNotConfigured
	}
	if err := a.narrator.Read(ctx, sel); err != nil {
		a.fail(err)
		return err
	}
	return nil
}

// StopReading interrupts narration.
func (a *App) StopReading() { a.narrator.Stop() }

// Close releases timers and stops narration.
func (a *App) Close() {
	a.suggest.Close()
	a.narrator.Stop()
}

// ── Snapshot ─────────────────────────────────────────────────────

// Snapshot is every piece of UI state, copied for one render.
type Snapshot struct {
	Theme domain.Theme
	View  View

	Query              string
	Suggestions        []domain.IngredientSuggestion
	SuggestionsVisible bool
	SuggestionState    autocomplete.State

	Ingredients []string
	CanSearch   bool
	Searching   bool

	Recipes  []domain.Recipe
	Selected *domain.Recipe
	saved    map[int]bool

	Narration bool
	Notice    string
	Err       error
}

// IsSaved reports whether id was saved when the snapshot was taken.
func (s Snapshot) IsSaved(id int) bool { return s.saved[id] }

// Snapshot returns the current state.
func (a *App) Snapshot() Snapshot {
	ac := a.suggest.Snapshot()
	saved := make(map[int]bool)
	for _, id := range a.prefs.Saved() {
		saved[id] = true
	}

	a.mu.Lock()
	view, notice, err := a.view, a.notice, a.err
	a.mu.Unlock()

	return Snapshot{
		Theme:              a.prefs.Theme(),
		View:               view,
		Query:              ac.Query,
		Suggestions:        ac.Suggestions,
		SuggestionsVisible: ac.Visible(),
		SuggestionState:    ac.State,
		Ingredients:        a.selection.Names(),
		CanSearch:          a.selection.CanSearch(),
		Searching:          a.flow.Searching(),
		Recipes:            a.flow.Recipes(),
		Selected:           a.flow.Selected(),
		saved:              saved,
		Narration:          a.narrator.Enabled(),
		Notice:             notice,
		Err:                err,
	}
}

// ── internals ────────────────────────────────────────────────────

func (a *App) setView(v View) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.view = v
}

func (a *App) say(msg string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice, a.err = msg, nil
}

func (a *App) fail(err error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice, a.err = "", err
}

func (a *App) clearNotice() {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.notice, a.err = "", nil
}

func (a *App) changed() {
	if a.onChange != nil {
		a.onChange()
	}
}

// nopNarrator stands in when no narrator is configured.
type nopNarrator struct{}

func (nopNarrator) Read(context.Context, *domain.Recipe) error { return domain.ErrNotConfigured }
func (nopNarrator) Stop()                                      {}
func (nopNarrator) Enabled() bool                              { return false }
