// Package autocomplete implements the debounced ingredient suggestion
// dropdown: keystrokes arm a timer, the settled query is sent to the
// provider once, and responses for superseded queries are dropped.
package autocomplete

import (
	"context"
	"slices"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// State is the dropdown lifecycle.
type State int

const (
	// StateIdle: no request pending and nothing to show.
	StateIdle State = iota
	// StatePending: a debounce timer is armed or a request is in flight.
	StatePending
	// StateDisplaying: a non-empty list is fetched and the dropdown is shown.
	StateDisplaying
)

// String returns a human-readable state.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StatePending:
		return "pending"
	case StateDisplaying:
		return "displaying"
	default:
		return "unknown"
	}
}

// Timer is a cancelable pending call. *time.Timer satisfies it.
type Timer interface {
	Stop() bool
}

// AfterFunc schedules f after d. The default is time.AfterFunc.
type AfterFunc func(d time.Duration, f func()) Timer

func realAfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Defaults.
const (
	DefaultDebounce       = 300 * time.Millisecond
	DefaultMinQueryLength = 2
	DefaultLimit          = 5
	defaultRequestTimeout = 10 * time.Second
)

// Option configures the controller.
type Option func(*Controller)

// WithDebounce sets the quiet interval before a query is sent.
func WithDebounce(d time.Duration) Option {
	return func(c *Controller) { c.debounce = d }
}

// WithMinQueryLength sets the shortest query (in runes) that is sent.
func WithMinQueryLength(n int) Option {
	return func(c *Controller) { c.minLen = n }
}

// WithLimit sets how many suggestions are requested.
func WithLimit(n int) Option {
	return func(c *Controller) { c.limit = n }
}

// WithRequestTimeout bounds each suggestion request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Controller) { c.requestTimeout = d }
}

// WithAfterFunc replaces the timer factory (tests drive time with it).
func WithAfterFunc(f AfterFunc) Option {
	return func(c *Controller) { c.after = f }
}

// WithOnChange registers fn, called after every asynchronous state change
// (a timer firing, a response arriving). fn runs on the timer goroutine
// without the controller lock held.
func WithOnChange(fn func()) Option {
	return func(c *Controller) { c.onChange = fn }
}

// Snapshot is a consistent copy of the controller state for rendering.
type Snapshot struct {
	Query       string
	Suggestions []domain.IngredientSuggestion
	Shown       bool
	State       State
}

// Visible reports whether the dropdown should be drawn.
func (s Snapshot) Visible() bool {
	return s.Shown && len(s.Suggestions) > 0
}

// Controller owns the query text, the suggestion list, the dropdown
// visibility, and the single debounce timer. Safe for concurrent use.
type Controller struct {
	provider       domain.RecipeProvider
	log            *logger.Logger
	debounce       time.Duration
	minLen         int
	limit          int
	requestTimeout time.Duration
	after          AfterFunc
	onChange       func()

	ctx    context.Context
	cancel context.CancelFunc

	mu          sync.Mutex
	query       string
	suggestions []domain.IngredientSuggestion
	shown       bool
	pending     bool
	timer       Timer
	seq         uint64 // bumped on every input change; tags requests
	closed      bool
}

// New creates a controller that queries provider.
func New(provider domain.RecipeProvider, log *logger.Logger, opts ...Option) *Controller {
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		provider:       provider,
		log:            log,
		debounce:       DefaultDebounce,
		minLen:         DefaultMinQueryLength,
		limit:          DefaultLimit,
		requestTimeout: defaultRequestTimeout,
		after:          realAfterFunc,
		ctx:            ctx,
		cancel:         cancel,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Type records new input text and restarts the debounce window. Text
// shorter than the minimum clears the list immediately and sends nothing.
func (c *Controller) Type(text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.stopTimerLocked()
	c.seq++
	c.query = text
	c.shown = true

	if c.tooShort(text) {
		c.suggestions = nil
		c.pending = false
		return
	}

	seq := c.seq
	c.pending = true
	c.timer = c.after(c.debounce, func() { c.fire(seq) })
}

// fire runs when the debounce timer for seq expires.
func (c *Controller) fire(seq uint64) {
	c.mu.Lock()
	if c.closed || seq != c.seq {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	query := c.query
	if c.tooShort(query) {
		c.suggestions = nil
		c.pending = false
		c.mu.Unlock()
		c.changed()
		return
	}
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(c.ctx, c.requestTimeout)
	defer cancel()

	c.log.Debug("fetching suggestions for %q (seq=%d)", query, seq)
	results, err := c.provider.Autocomplete(ctx, query, c.limit)

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	if seq != c.seq || query != c.query {
		c.mu.Unlock()
		c.log.Debug("dropping stale suggestions for %q (seq=%d, now %d)", query, seq, c.seq)
		return
	}
	c.pending = false
	if err != nil {
		c.log.Error("fetching suggestions for %q: %v", query, err)
		c.suggestions = nil
	} else {
		c.suggestions = results
	}
	c.mu.Unlock()
	c.changed()
}

// Select consumes a suggestion: clears the query and the list, hides the
// dropdown, and returns the name to add to the selection.
func (c *Controller) Select(s domain.IngredientSuggestion) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.resetLocked()
	return s.Name
}

// SelectIndex selects the i-th current suggestion.
func (c *Controller) SelectIndex(i int) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if i < 0 || i >= len(c.suggestions) {
		return "", false
	}
	name := c.suggestions[i].Name
	c.resetLocked()
	return name, true
}

// Dismiss hides the dropdown but keeps the fetched list for Focus.
func (c *Controller) Dismiss() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.shown = false
}

// Focus shows the dropdown again with the last fetched suggestions.
func (c *Controller) Focus() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.closed {
		c.shown = true
	}
}

// Close cancels the pending timer and any in-flight request. Further input
// is ignored.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	c.closed = true
	c.stopTimerLocked()
	c.pending = false
	c.cancel()
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	snap := Snapshot{
		Query:       c.query,
		Suggestions: slices.Clone(c.suggestions),
		Shown:       c.shown,
	}
	switch {
	case c.pending:
		snap.State = StatePending
	case c.shown && len(c.suggestions) > 0:
		snap.State = StateDisplaying
	default:
		snap.State = StateIdle
	}
	return snap
}

// resetLocked returns to Idle with an empty query. Must be called with c.mu held.
func (c *Controller) resetLocked() {
	c.stopTimerLocked()
	c.seq++
	c.query = ""
	c.suggestions = nil
	c.shown = false
	c.pending = false
}

// stopTimerLocked cancels the armed timer, if any. Must be called with c.mu held.
func (c *Controller) stopTimerLocked() {
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
}

func (c *Controller) tooShort(q string) bool {
	return utf8.RuneCountInString(q) < c.minLen
}

func (c *Controller) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
