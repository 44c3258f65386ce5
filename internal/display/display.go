// Package display provides the terminal UI using Bubble Tea.
//
// The [UI] type owns the Bubble Tea program. It renders the search input
// with its suggestion dropdown, the selected-ingredient chips, the recipe
// grid and the recipe detail modal, all from snapshots of an
// [explorer.App]. Background work in the app asks for a repaint through
// [UI.Notify], which is safe to call from any goroutine.
package display

import (
	"context"
	"errors"
	"sync/atomic"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/explorer"
	"github.com/hammamikhairi/recipex/internal/logger"
)

// ── UI ───────────────────────────────────────────────────────────

// Option configures the UI.
type Option func(*UI)

// WithProgramOptions appends Bubble Tea program options. Tests use it to
// swap the terminal for in-memory input and output.
func WithProgramOptions(opts ...tea.ProgramOption) Option {
	return func(u *UI) { u.progOpts = append(u.progOpts, opts...) }
}

// UI manages the terminal through Bubble Tea.
//
// Call [NewUI] then [UI.Run] (blocking).
type UI struct {
	app      *explorer.App
	log      *logger.Logger
	progOpts []tea.ProgramOption

	program atomic.Pointer[tea.Program]
	done    atomic.Bool
	quitCh  chan struct{}
}

// NewUI creates the display for app. Call Run to start.
func NewUI(app *explorer.App, log *logger.Logger, opts ...Option) *UI {
	u := &UI{
		app:    app,
		log:    log,
		quitCh: make(chan struct{}),
		progOpts: []tea.ProgramOption{
			tea.WithAltScreen(),
			tea.WithMouseCellMotion(),
		},
	}
	for _, o := range opts {
		o(u)
	}
	return u
}

// Notify asks for a repaint. Thread-safe; dropped when the program is
// not running.
func (u *UI) Notify() { u.send(refreshMsg{}) }

// ApplyTheme repaints with theme t. It may be called from inside the event
// loop, so the message is delivered from its own goroutine.
func (u *UI) ApplyTheme(t domain.Theme) {
	go u.send(themeMsg(t))
}

func (u *UI) send(msg tea.Msg) {
	if u.done.Load() {
		return
	}
	if p := u.program.Load(); p != nil {
		p.Send(msg)
	}
}

// Quit tells Bubble Tea to exit.
func (u *UI) Quit() {
	if p := u.program.Load(); p != nil {
		p.Quit()
	}
}

// QuitChan is closed when Run returns.
func (u *UI) QuitChan() <-chan struct{} { return u.quitCh }

// Run starts the Bubble Tea event loop. Blocks until the user quits or
// ctx is cancelled.
func (u *UI) Run(ctx context.Context) error {
	m := newModel(ctx, u.app)

	opts := append([]tea.ProgramOption{tea.WithContext(ctx)}, u.progOpts...)
	p := tea.NewProgram(m, opts...)
	u.program.Store(p)

	_, err := p.Run()
	u.done.Store(true)
	close(u.quitCh)

	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		u.log.Debug("ui stopped: %v", ctx.Err())
		return nil
	}
	return err
}
