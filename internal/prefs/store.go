// Package prefs persists the user's theme and saved-recipe set.
package prefs

import (
	"encoding/json"
	"slices"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// Persisted keys.
const (
	KeyTheme        = "theme"
	KeySavedRecipes = "savedRecipes"
)

// Detector reports the system color-scheme preference.
type Detector interface {
	PrefersDark() bool
}

// TerminalDetector asks the terminal for its background color.
type TerminalDetector struct{}

// PrefersDark reports whether the terminal background is dark.
func (TerminalDetector) PrefersDark() bool { return lipgloss.HasDarkBackground() }

// StaticDetector always answers with its own value.
type StaticDetector bool

// PrefersDark returns the fixed answer.
func (d StaticDetector) PrefersDark() bool { return bool(d) }

// Store holds the theme and saved set in memory and writes every change
// through to the KVStore. Persistence failures are logged, never returned:
// preferences are not safety-critical. Safe for concurrent use.
type Store struct {
	mu            sync.RWMutex
	kv            domain.KVStore
	log           *logger.Logger
	theme         domain.Theme
	saved         []int
	onThemeChange func(domain.Theme)
}

// Load reads the persisted preferences. A missing or malformed saved set
// becomes empty. A missing or unknown theme falls back to detector.
func Load(kv domain.KVStore, detector Detector, log *logger.Logger) *Store {
	s := &Store{kv: kv, log: log}
	s.saved = s.loadSaved()
	s.theme = s.loadTheme(detector)
	log.Info("preferences loaded (theme=%s, saved=%d)", s.theme, len(s.saved))
	return s
}

func (s *Store) loadSaved() []int {
	raw, ok, err := s.kv.Get(KeySavedRecipes)
	if err != nil {
		s.log.Warn("reading %s: %v", KeySavedRecipes, err)
		return nil
	}
	if !ok || raw == "" {
		return nil
	}

	var ids []int
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		s.log.Warn("ignoring malformed %s: %v", KeySavedRecipes, err)
		return nil
	}
	return dedupe(ids)
}

func (s *Store) loadTheme(detector Detector) domain.Theme {
	raw, ok, err := s.kv.Get(KeyTheme)
	if err != nil {
		s.log.Warn("reading %s: %v", KeyTheme, err)
	}
	if ok {
		if t, valid := domain.ParseTheme(raw); valid {
			return t
		}
		s.log.Warn("ignoring unknown theme %q", raw)
	}
	if detector != nil && detector.PrefersDark() {
		return domain.ThemeDark
	}
	return domain.ThemeLight
}

// OnThemeChange registers fn to apply the visual mode after every toggle.
// fn runs without the store lock held.
func (s *Store) OnThemeChange(fn func(domain.Theme)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onThemeChange = fn
}

// Theme returns the current theme.
func (s *Store) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme flips the theme, applies it, and persists it.
func (s *Store) ToggleTheme() domain.Theme {
	s.mu.Lock()
	s.theme = s.theme.Toggle()
	theme := s.theme
	apply := s.onThemeChange
	s.persist(KeyTheme, theme.String())
	s.mu.Unlock()

	if apply != nil {
		apply(theme)
	}
	s.log.Debug("theme toggled to %s", theme)
	return theme
}

// IsSaved reports whether id is in the saved set.
func (s *Store) IsSaved(id int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.saved, id)
}

// Saved returns a copy of the saved set in the order ids were added.
func (s *Store) Saved() []int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.saved)
}

// ToggleSaved removes id if saved, otherwise appends it, then persists the
// whole set. Returns the new membership.
func (s *Store) ToggleSaved(id int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := true
	if i := slices.Index(s.saved, id); i >= 0 {
		s.saved = slices.Delete(slices.Clone(s.saved), i, i+1)
		saved = false
	} else {
		s.saved = append(slices.Clone(s.saved), id)
	}

	data, err := json.Marshal(s.savedOrEmpty())
	if err != nil {
		s.log.Error("encoding %s: %v", KeySavedRecipes, err)
		return saved
	}
	s.persist(KeySavedRecipes, string(data))
	s.log.Debug("recipe %d saved=%v (%d total)", id, saved, len(s.saved))
	return saved
}

// savedOrEmpty keeps the persisted form a JSON list, never null.
func (s *Store) savedOrEmpty() []int {
	if s.saved == nil {
		return []int{}
	}
	return s.saved
}

// persist writes key, logging instead of failing. Must be called with s.mu held.
func (s *Store) persist(key, value string) {
	if err := s.kv.Set(key, value); err != nil {
		s.log.Error("persisting %s: %v", key, err)
	}
}

func dedupe(ids []int) []int {
	seen := make(map[int]struct{}, len(ids))
	out := ids[:0]
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
