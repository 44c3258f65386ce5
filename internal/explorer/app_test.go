package explorer

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"testing"
	"time"

	"github.com/hammamikhairi/recipex/internal/autocomplete"
	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
	"github.com/hammamikhairi/recipex/internal/prefs"
	"github.com/hammamikhairi/recipex/internal/storage"
)

// manualTimers collects debounce callbacks so tests can fire them.
type manualTimers struct {
	mu  sync.Mutex
	fns []func()
}

type stopper struct{ stopped *bool }

func (s stopper) Stop() bool { *s.stopped = true; return true }

func (m *manualTimers) AfterFunc(_ time.Duration, f func()) autocomplete.Timer {
	m.mu.Lock()
	defer m.mu.Unlock()
	stopped := new(bool)
	m.fns = append(m.fns, func() {
		if !*stopped {
			f()
		}
	})
	return stopper{stopped}
}

func (m *manualTimers) fire() {
	m.mu.Lock()
	fns := m.fns
	m.fns = nil
	m.mu.Unlock()
	for _, f := range fns {
		f()
	}
}

type stubProvider struct {
	mu        sync.Mutex
	findCalls [][]string
	bulkCalls [][]int
	failFind  error
}

func (p *stubProvider) Autocomplete(_ context.Context, query string, _ int) ([]domain.IngredientSuggestion, error) {
	return []domain.IngredientSuggestion{{ID: 1, Name: query + "o"}, {ID: 2, Name: query + "illo"}}, nil
}

func (p *stubProvider) FindByIngredients(_ context.Context, names []string, _ int) ([]domain.RecipeMatch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.findCalls = append(p.findCalls, slices.Clone(names))
	if p.failFind != nil {
		return nil, p.failFind
	}
	return []domain.RecipeMatch{{ID: 11}, {ID: 12}}, nil
}

func (p *stubProvider) InformationBulk(_ context.Context, ids []int) ([]domain.Recipe, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.bulkCalls = append(p.bulkCalls, slices.Clone(ids))
	out := make([]domain.Recipe, len(ids))
	for i, id := range ids {
		out[i] = domain.Recipe{ID: id, Title: "recipe"}
	}
	return out, nil
}

type recordingNarrator struct {
	mu    sync.Mutex
	read  []int
	stops int
}

func (n *recordingNarrator) Read(_ context.Context, r *domain.Recipe) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.read = append(n.read, r.ID)
	return nil
}

func (n *recordingNarrator) Stop() {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.stops++
}

func (n *recordingNarrator) Enabled() bool { return true }

func setupApp(t *testing.T, opts ...Option) (*App, *stubProvider, *manualTimers, domain.KVStore) {
	t.Helper()
	log := logger.New(logger.LevelOff, nil)
	kv := storage.NewMemoryStore(log)
	store := prefs.Load(kv, prefs.StaticDetector(false), log)
	p := &stubProvider{}
	timers := &manualTimers{}
	opts = append([]Option{WithAfterFunc(timers.AfterFunc)}, opts...)
	a := New(p, store, log, opts...)
	t.Cleanup(a.Close)
	return a, p, timers, kv
}

func TestTypeSelectSearch(t *testing.T) {
	a, p, timers, _ := setupApp(t)
	ctx := context.Background()

	a.Type("tomat")
	timers.fire()
	snap := a.Snapshot()
	if !snap.SuggestionsVisible || len(snap.Suggestions) != 2 {
		t.Fatalf("expected dropdown, got %+v", snap)
	}

	if name, ok := a.SelectSuggestion(0); !ok || name != "tomato" {
		t.Fatalf("select = %q, %v", name, ok)
	}
	a.Type("basi")
	timers.fire()
	a.SelectSuggestion(0)

	snap = a.Snapshot()
	if !slices.Equal(snap.Ingredients, []string{"tomato", "basio"}) {
		t.Fatalf("ingredients = %v", snap.Ingredients)
	}
	if snap.Query != "" || snap.SuggestionsVisible {
		t.Fatalf("input not reset after select: %+v", snap)
	}

	if err := a.FindRecipes(ctx); err != nil {
		t.Fatalf("find: %v", err)
	}
	if !slices.Equal(p.findCalls[0], []string{"tomato", "basio"}) {
		t.Fatalf("find called with %v", p.findCalls[0])
	}
	snap = a.Snapshot()
	if len(snap.Recipes) != 2 || snap.Searching || snap.View != ViewResults {
		t.Fatalf("unexpected snapshot after search %+v", snap)
	}
	if snap.Notice == "" {
		t.Fatal("expected success notice")
	}
}

func TestFindRecipesEmptySelection(t *testing.T) {
	a, p, _, _ := setupApp(t)
	if err := a.FindRecipes(context.Background()); !errors.Is(err, domain.ErrNoIngredients) {
		t.Fatalf("got %v", err)
	}
	if len(p.findCalls) != 0 {
		t.Fatal("provider called with empty selection")
	}
	if !errors.Is(a.Snapshot().Err, domain.ErrNoIngredients) {
		t.Fatal("expected error toast")
	}
}

func TestSearchFailureShowsToastKeepsList(t *testing.T) {
	a, p, timers, _ := setupApp(t)
	ctx := context.Background()

	a.Type("eg")
	timers.fire()
	a.SelectSuggestion(0)
	if err := a.FindRecipes(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}

	p.failFind = errors.New("network down")
	if err := a.FindRecipes(ctx); err == nil {
		t.Fatal("expected error")
	}
	snap := a.Snapshot()
	if len(snap.Recipes) != 2 {
		t.Fatalf("list lost on failure: %+v", snap.Recipes)
	}
	if snap.Err == nil {
		t.Fatal("expected error toast")
	}

	a.Type("x")
	if a.Snapshot().Err != nil {
		t.Fatal("toast should clear on next input")
	}
}

func TestToggleSavedPersistsAndShowSaved(t *testing.T) {
	a, p, _, kv := setupApp(t)
	ctx := context.Background()

	if !a.ToggleSaved(42) {
		t.Fatal("expected saved")
	}
	a.ToggleSaved(7)
	if a.ToggleSaved(42) {
		t.Fatal("expected unsaved on second toggle")
	}

	raw, ok, _ := kv.Get(prefs.KeySavedRecipes)
	if !ok || raw != "[7]" {
		t.Fatalf("persisted = %q", raw)
	}

	if err := a.ShowSaved(ctx); err != nil {
		t.Fatalf("show saved: %v", err)
	}
	snap := a.Snapshot()
	if snap.View != ViewSaved || len(snap.Recipes) != 1 || snap.Recipes[0].ID != 7 {
		t.Fatalf("unexpected saved view %+v", snap)
	}
	if !snap.IsSaved(7) || snap.IsSaved(42) {
		t.Fatal("snapshot saved flags wrong")
	}
	if !slices.Equal(p.bulkCalls[len(p.bulkCalls)-1], []int{7}) {
		t.Fatalf("bulk called with %v", p.bulkCalls)
	}
}

func TestFailedSearchKeepsSavedView(t *testing.T) {
	a, p, timers, _ := setupApp(t)
	ctx := context.Background()

	a.ToggleSaved(7)
	if err := a.ShowSaved(ctx); err != nil {
		t.Fatalf("show saved: %v", err)
	}

	a.Type("eg")
	timers.fire()
	a.SelectSuggestion(0)
	p.failFind = errors.New("network down")
	if err := a.FindRecipes(ctx); err == nil {
		t.Fatal("expected error")
	}

	snap := a.Snapshot()
	if snap.View != ViewSaved {
		t.Fatalf("view = %v, want saved", snap.View)
	}
	if len(snap.Recipes) != 1 || snap.Recipes[0].ID != 7 {
		t.Fatalf("recipes = %+v", snap.Recipes)
	}

	p.failFind = nil
	if err := a.FindRecipes(ctx); err != nil {
		t.Fatalf("search: %v", err)
	}
	if a.Snapshot().View != ViewResults {
		t.Fatal("successful search did not switch to results")
	}
}

func TestOpenCloseDetail(t *testing.T) {
	n := &recordingNarrator{}
	a, _, timers, _ := setupApp(t, WithNarrator(n))
	ctx := context.Background()

	a.Type("eg")
	timers.fire()
	a.SelectSuggestion(0)
	a.FindRecipes(ctx)

	if a.Open(5) {
		t.Fatal("out of range open should fail")
	}
	a.Open(0)
	a.Open(1)
	if sel := a.Snapshot().Selected; sel == nil || sel.ID != 12 {
		t.Fatalf("expected second recipe open, got %+v", sel)
	}

	if err := a.ReadAloud(ctx); err != nil {
		t.Fatalf("read aloud: %v", err)
	}
	if !slices.Equal(n.read, []int{12}) {
		t.Fatalf("narrated %v", n.read)
	}

	a.CloseDetail()
	if a.Snapshot().Selected != nil {
		t.Fatal("detail still open")
	}
	if n.stops == 0 {
		t.Fatal("closing detail should stop narration")
	}
	if err := a.ReadAloud(ctx); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound without open recipe, got %v", err)
	}
}

func TestReadAloudDisabled(t *testing.T) {
	a, _, timers, _ := setupApp(t)
	a.Type("eg")
	timers.fire()
	a.SelectSuggestion(0)
	a.FindRecipes(context.Background())
	a.Open(0)

	if err := a.ReadAloud(context.Background()); !errors.Is(err, domain.ErrNotConfigured) {
		t.Fatalf("got %v", err)
	}
	if a.Snapshot().Narration {
		t.Fatal("narration should report disabled")
	}
}

func TestToggleTheme(t *testing.T) {
	a, _, _, kv := setupApp(t)
	if a.Snapshot().Theme != domain.ThemeLight {
		t.Fatal("expected light default from detector")
	}
	if a.ToggleTheme() != domain.ThemeDark {
		t.Fatal("expected dark after toggle")
	}
	if raw, _, _ := kv.Get(prefs.KeyTheme); raw != "dark" {
		t.Fatalf("persisted theme = %q", raw)
	}
}

func TestExport(t *testing.T) {
	dir := t.TempDir()
	now := func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }
	a, _, timers, _ := setupApp(t, WithExportDir(dir), WithClock(now))

	if _, err := a.Export(); err == nil {
		t.Fatal("expected error exporting an empty grid")
	}

	a.Type("eg")
	timers.fire()
	a.SelectSuggestion(0)
	a.FindRecipes(context.Background())

	path, err := a.Export()
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if want := filepath.Join(dir, "recipes-20240102-030405.xlsx"); path != want {
		t.Fatalf("path = %q, want %q", path, want)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("export file missing: %v", err)
	}
}

func TestOnChangeFiresOnSuggestions(t *testing.T) {
	var mu sync.Mutex
	calls := 0
	a, _, timers, _ := setupApp(t, WithOnChange(func() {
		mu.Lock()
		calls++
		mu.Unlock()
	}))

	a.Type("on")
	timers.fire()

	mu.Lock()
	defer mu.Unlock()
	if calls != 1 {
		t.Fatalf("onChange called %d times", calls)
	}
}
