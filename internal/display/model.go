package display

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/hammamikhairi/recipex/internal/autocomplete"
	"github.com/hammamikhairi/recipex/internal/domain"
	"github.com/hammamikhairi/recipex/internal/explorer"
	"github.com/hammamikhairi/recipex/internal/export"
	"github.com/hammamikhairi/recipex/internal/spoonacular"
)

// focusArea is which part of the main screen receives keys.
type focusArea int

const (
	focusInput focusArea = iota
	focusChips
	focusGrid
)

// Messages.
type (
	refreshMsg    struct{}
	themeMsg      domain.Theme
	searchDoneMsg struct{ err error }
	exportDoneMsg struct {
		path string
		err  error
	}
	readDoneMsg struct{ err error }
)

const (
	cardHeight    = 5 // three content lines plus the border
	dropdownWidth = 48
	appTitle      = "Recipe Explorer"
)

// layout is where the last render placed the clickable parts.
type layout struct {
	input    rect
	dropdown rect
	chips    []rect
	button   rect
	cards    []cardHit
}

type cardHit struct {
	index int
	body  rect
	heart rect
}

type model struct {
	app    *explorer.App
	ctx    context.Context
	keys   keyMap
	styles Styles
	theme  domain.Theme

	input   textinput.Model
	spinner spinner.Model
	detail  viewport.Model

	snap     explorer.Snapshot
	focus    focusArea
	cursor   int // highlighted suggestion
	chip     int
	card     int
	busy     bool // a list-replacing call is in flight
	reading  bool
	searched bool

	detailID    int
	detailSaved bool
	detailDirty bool

	width  int
	height int
}

func newModel(ctx context.Context, app *explorer.App) model {
	ti := textinput.New()
	// Plain-text prompt keeps the textinput width math correct.
	ti.Prompt = "ingredient> "
	ti.Placeholder = "start typing, e.g. tomato"
	ti.CharLimit = 100
	ti.Width = 60
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := model{
		app:     app,
		ctx:     ctx,
		keys:    defaultKeys(),
		input:   ti,
		spinner: sp,
		detail:  viewport.New(72, 16),
		width:   80,
		height:  24,
	}
	m.snap = app.Snapshot()
	m.applyTheme(m.snap.Theme)
	return m
}

func (m *model) applyTheme(t domain.Theme) {
	m.theme = t
	m.styles = NewStyles(t)
	m.input.PromptStyle = m.styles.Prompt
	m.input.TextStyle = m.styles.InputText
	m.input.PlaceholderStyle = m.styles.Help
	m.input.Cursor.Style = m.styles.Prompt
	m.spinner.Style = m.styles.Prompt
	m.detailDirty = true
}

func (m model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.SetWindowTitle(appTitle))
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		if w := msg.Width - len(m.input.Prompt) - 1; w > 10 {
			m.input.Width = w
		}
		m.resizeDetail()

	case refreshMsg:

	case themeMsg:
		// Messages from quick toggles can arrive out of order; the store
		// holds the current value.
		if t := m.app.Snapshot().Theme; t != m.theme {
			m.applyTheme(t)
		}

	case searchDoneMsg:
		if !errors.Is(msg.err, domain.ErrStale) {
			m.busy = false
			m.searched = true
			m.card = 0
		}

	case exportDoneMsg:

	case readDoneMsg:
		m.reading = false

	case spinner.TickMsg:
		if m.busy {
			var cmd tea.Cmd
			m.spinner, cmd = m.spinner.Update(msg)
			cmds = append(cmds, cmd)
		}

	case tea.MouseMsg:
		cmds = append(cmds, m.handleMouse(msg))

	case tea.KeyMsg:
		cmds = append(cmds, m.handleKey(msg))

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	m.refresh()
	return m, tea.Batch(cmds...)
}

// refresh pulls a fresh snapshot and clamps every cursor to it.
func (m *model) refresh() {
	m.snap = m.app.Snapshot()

	if m.input.Value() != m.snap.Query {
		m.input.SetValue(m.snap.Query)
		m.input.CursorEnd()
	}
	m.cursor = clamp(m.cursor, len(m.snap.Suggestions))
	m.chip = clamp(m.chip, len(m.snap.Ingredients))
	m.card = clamp(m.card, len(m.snap.Recipes))

	if m.focus == focusChips && len(m.snap.Ingredients) == 0 {
		m.setFocus(focusInput)
	}
	if m.focus == focusGrid && len(m.snap.Recipes) == 0 {
		m.setFocus(focusInput)
	}
	m.syncDetail()
}

func (m *model) syncDetail() {
	sel := m.snap.Selected
	if sel == nil {
		m.detailID = 0
		return
	}
	saved := m.snap.IsSaved(sel.ID)
	if sel.ID == m.detailID && saved == m.detailSaved && !m.detailDirty {
		return
	}
	if sel.ID != m.detailID {
		defer m.detail.GotoTop()
	}
	m.detailID, m.detailSaved, m.detailDirty = sel.ID, saved, false
	m.detail.SetContent(m.detailContent(sel, saved))
}

func (m *model) resizeDetail() {
	w := m.modalWidth()
	m.detail.Width = max(10, w-6)
	m.detail.Height = max(3, m.height-9)
	m.detailDirty = true
}

// ── Keys ─────────────────────────────────────────────────────────

func (m *model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Theme):
		m.applyTheme(m.app.ToggleTheme())
		return nil
	}

	if m.snap.Selected != nil {
		return m.handleDetailKey(msg)
	}

	switch {
	case key.Matches(msg, m.keys.Find):
		return m.findCmd()
	case key.Matches(msg, m.keys.Saved):
		return m.savedCmd()
	case key.Matches(msg, m.keys.Export):
		return m.exportCmd()
	case key.Matches(msg, m.keys.Next):
		m.cycleFocus(1)
		return nil
	case key.Matches(msg, m.keys.Prev):
		m.cycleFocus(-1)
		return nil
	}

	switch m.focus {
	case focusChips:
		return m.handleChipKey(msg)
	case focusGrid:
		return m.handleGridKey(msg)
	default:
		return m.handleInputKey(msg)
	}
}

func (m *model) handleInputKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.snap.Suggestions)

	switch {
	case key.Matches(msg, m.keys.Back):
		m.app.DismissSuggestions()
		return nil
	case key.Matches(msg, m.keys.Up), key.Matches(msg, m.keys.Down):
		if n == 0 {
			return nil
		}
		if !m.snap.SuggestionsVisible {
			m.app.FocusSearch()
			return nil
		}
		if key.Matches(msg, m.keys.Up) {
			m.cursor = (m.cursor - 1 + n) % n
		} else {
			m.cursor = (m.cursor + 1) % n
		}
		return nil
	case key.Matches(msg, m.keys.Select):
		if m.snap.SuggestionsVisible {
			m.app.SelectSuggestion(m.cursor)
			m.cursor = 0
			return nil
		}
		if strings.TrimSpace(m.input.Value()) == "" {
			return m.findCmd()
		}
		return nil
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if v := m.input.Value(); v != before {
		m.app.Type(v)
		m.cursor = 0
	}
	return cmd
}

func (m *model) handleChipKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.snap.Ingredients)
	switch {
	case key.Matches(msg, m.keys.Left):
		m.chip = max(0, m.chip-1)
	case key.Matches(msg, m.keys.Right):
		m.chip = min(n-1, m.chip+1)
	case key.Matches(msg, m.keys.Remove):
		m.app.RemoveIngredientAt(m.chip)
	case key.Matches(msg, m.keys.Select):
		return m.findCmd()
	case key.Matches(msg, m.keys.Back):
		m.setFocus(focusInput)
	}
	return nil
}

func (m *model) handleGridKey(msg tea.KeyMsg) tea.Cmd {
	n := len(m.snap.Recipes)
	cols := m.gridCols()
	switch {
	case key.Matches(msg, m.keys.Left):
		m.card = max(0, m.card-1)
	case key.Matches(msg, m.keys.Right):
		m.card = min(n-1, m.card+1)
	case key.Matches(msg, m.keys.Up):
		if m.card-cols >= 0 {
			m.card -= cols
		}
	case key.Matches(msg, m.keys.Down):
		if m.card+cols < n {
			m.card += cols
		}
	case key.Matches(msg, m.keys.Select):
		m.app.Open(m.card)
	case key.Matches(msg, m.keys.ToggleSaved):
		if m.card < n {
			m.app.ToggleSaved(m.snap.Recipes[m.card].ID)
		}
	case key.Matches(msg, m.keys.Back):
		m.setFocus(focusInput)
	}
	return nil
}

func (m *model) handleDetailKey(msg tea.KeyMsg) tea.Cmd {
	sel := m.snap.Selected
	switch {
	case key.Matches(msg, m.keys.Back):
		m.app.CloseDetail()
		m.reading = false
		return nil
	case key.Matches(msg, m.keys.ToggleSaved):
		m.app.ToggleSaved(sel.ID)
		return nil
	case key.Matches(msg, m.keys.Read):
		return m.readCmd()
	}
	var cmd tea.Cmd
	m.detail, cmd = m.detail.Update(msg)
	return cmd
}

func (m *model) setFocus(f focusArea) {
	m.focus = f
	if f == focusInput {
		m.input.Focus()
		m.app.FocusSearch()
		return
	}
	m.input.Blur()
	m.app.DismissSuggestions()
}

func (m *model) cycleFocus(dir int) {
	order := []focusArea{focusInput}
	if len(m.snap.Ingredients) > 0 {
		order = append(order, focusChips)
	}
	if len(m.snap.Recipes) > 0 {
		order = append(order, focusGrid)
	}
	cur := 0
	for i, f := range order {
		if f == m.focus {
			cur = i
		}
	}
	m.setFocus(order[(cur+dir+len(order))%len(order)])
}

// ── Mouse ────────────────────────────────────────────────────────

func (m *model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if m.snap.Selected != nil {
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return cmd
	}
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}

	_, lay := m.render()

	// Click outside: only the input and the dropdown keep it open.
	if m.snap.SuggestionsVisible {
		if row := lay.dropdown.row(msg.X, msg.Y); row >= 0 {
			m.app.SelectSuggestion(row)
			m.cursor = 0
			return nil
		}
		if !lay.input.contains(msg.X, msg.Y) {
			m.app.DismissSuggestions()
		}
	}

	if lay.input.contains(msg.X, msg.Y) {
		m.setFocus(focusInput)
		return nil
	}
	for i, r := range lay.chips {
		if r.contains(msg.X, msg.Y) {
			m.app.RemoveIngredientAt(i)
			return nil
		}
	}
	if lay.button.contains(msg.X, msg.Y) {
		return m.findCmd()
	}
	for _, c := range lay.cards {
		switch {
		case c.heart.contains(msg.X, msg.Y):
			m.app.ToggleSaved(m.snap.Recipes[c.index].ID)
			return nil
		case c.body.contains(msg.X, msg.Y):
			m.card = c.index
			m.focus = focusGrid
			m.input.Blur()
			m.app.Open(c.index)
			return nil
		}
	}
	return nil
}

// ── Commands ─────────────────────────────────────────────────────

func (m *model) findCmd() tea.Cmd {
	if !m.snap.CanSearch || m.busy {
		return nil
	}
	m.busy = true
	m.app.DismissSuggestions()
	app, ctx := m.app, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return searchDoneMsg{err: app.FindRecipes(ctx)}
	})
}

func (m *model) savedCmd() tea.Cmd {
	if m.busy {
		return nil
	}
	m.busy = true
	m.app.DismissSuggestions()
	app, ctx := m.app, m.ctx
	return tea.Batch(m.spinner.Tick, func() tea.Msg {
		return searchDoneMsg{err: app.ShowSaved(ctx)}
	})
}

func (m *model) exportCmd() tea.Cmd {
	app := m.app
	return func() tea.Msg {
		path, err := app.Export()
		return exportDoneMsg{path: path, err: err}
	}
}

func (m *model) readCmd() tea.Cmd {
	if m.reading {
		m.app.StopReading()
		m.reading = false
		return nil
	}
	m.reading = m.snap.Narration
	app, ctx := m.app, m.ctx
	return func() tea.Msg {
		return readDoneMsg{err: app.ReadAloud(ctx)}
	}
}

// ── View ─────────────────────────────────────────────────────────

func (m model) View() string {
	out, _ := m.render()
	return out
}

// render draws the screen and reports where the clickable parts landed.
func (m model) render() (string, layout) {
	var lay layout
	if m.snap.Selected != nil {
		return m.renderDetail(), lay
	}

	var b strings.Builder
	y := 0
	line := func(s string) {
		b.WriteString(s)
		b.WriteByte('\n')
		y += lipgloss.Height(s)
	}

	line(m.renderHeader())
	line("")

	lay.input = rect{x: 0, y: y, w: m.width, h: 1}
	line(m.input.View())

	switch {
	case m.snap.SuggestionsVisible:
		w := min(dropdownWidth, m.width)
		lay.dropdown = rect{x: 0, y: y, w: w, h: len(m.snap.Suggestions)}
		for i, s := range m.snap.Suggestions {
			st := m.styles.Suggestion
			if i == m.cursor {
				st = m.styles.Highlight
			}
			line(st.Width(w).Render(truncate(s.Name, w-3)))
		}
	case m.snap.SuggestionState == autocomplete.StatePending:
		line(m.styles.Help.Render("  ..."))
	}
	line("")

	if len(m.snap.Ingredients) > 0 {
		chips, rects := m.renderChips(y)
		lay.chips = rects
		line(chips)
		line("")

		btn := m.renderButton()
		lay.button = rect{x: 0, y: y, w: lipgloss.Width(btn), h: 1}
		line(btn)
		line("")
	}

	if status := m.renderStatus(); status != "" {
		line(status)
		line("")
	}

	avail := m.height - y - 1
	grid, cards := m.renderGrid(y, avail)
	lay.cards = cards
	b.WriteString(grid)

	// Pin the help line to the last row.
	if pad := m.height - y - lipgloss.Height(grid) - 1; pad > 0 {
		b.WriteString(strings.Repeat("\n", pad))
	}
	b.WriteString("\n" + m.renderHelp())
	return b.String(), lay
}

func (m model) renderHeader() string {
	left := m.styles.Header.Render(appTitle)
	if m.snap.View == explorer.ViewSaved {
		left += m.styles.Meta.Render("  saved recipes")
	}
	icon := "☀ light"
	if m.theme == domain.ThemeDark {
		icon = "☾ dark"
	}
	right := m.styles.ThemeBadge.Render(icon + "  ctrl+t")
	gap := max(1, m.width-lipgloss.Width(left)-lipgloss.Width(right))
	return left + strings.Repeat(" ", gap) + right
}

// renderChips lays the selected ingredients on one row. Chips that do not
// fit are summarised as "+N".
func (m model) renderChips(y int) (string, []rect) {
	var parts []string
	var rects []rect
	x := 0
	for i, name := range m.snap.Ingredients {
		st := m.styles.Chip
		if m.focus == focusChips && i == m.chip {
			st = m.styles.ChipActive
		}
		s := st.Render(name + " ×")
		w := lipgloss.Width(s)
		if i > 0 && x+w > m.width-6 {
			parts = append(parts, m.styles.Meta.Render(fmt.Sprintf("+%d", len(m.snap.Ingredients)-i)))
			break
		}
		rects = append(rects, rect{x: x, y: y, w: w, h: 1})
		parts = append(parts, s)
		x += w + 1
	}
	return strings.Join(parts, " "), rects
}

func (m model) renderButton() string {
	if m.busy || m.snap.Searching {
		return m.styles.ButtonOff.Render(m.spinner.View() + " Searching...")
	}
	return m.styles.Button.Render("Find Recipes")
}

func (m model) renderStatus() string {
	switch {
	case m.snap.Err != nil:
		return m.styles.Error.Render("✗ " + errorText(m.snap.Err))
	case m.reading:
		return m.styles.Notice.Render("reading aloud... press r to stop")
	case m.snap.Notice != "":
		return m.styles.Notice.Render(m.snap.Notice)
	}
	return ""
}

func (m model) gridCols() int {
	switch {
	case m.width >= 120:
		return 3
	case m.width >= 80:
		return 2
	default:
		return 1
	}
}

func (m model) renderGrid(top, avail int) (string, []cardHit) {
	recipes := m.snap.Recipes
	if len(recipes) == 0 {
		switch {
		case m.busy || m.snap.Searching:
			return "", nil
		case m.snap.View == explorer.ViewSaved:
			return m.styles.Meta.Render("No saved recipes yet. Press s on a recipe to save it."), nil
		case m.searched:
			return m.styles.Meta.Render("No recipes found for these ingredients."), nil
		default:
			return RenderBanner(m.width, m.styles.Banner), nil
		}
	}

	const gap = 1
	cols := m.gridCols()
	cw := (m.width - (cols-1)*gap) / cols
	fit := max(1, avail/cardHeight)

	first := 0
	if row := m.card / cols; row >= fit {
		first = row - fit + 1
	}

	var rows []string
	var hits []cardHit
	for r := first; r < first+fit && r*cols < len(recipes); r++ {
		var cells []string
		for c := 0; c < cols; c++ {
			i := r*cols + c
			if i >= len(recipes) {
				break
			}
			if c > 0 {
				cells = append(cells, strings.Repeat(" ", gap))
			}
			active := m.focus == focusGrid && i == m.card
			cells = append(cells, m.renderCard(recipes[i], cw, active))

			x, cy := c*(cw+gap), top+(r-first)*cardHeight
			hits = append(hits, cardHit{
				index: i,
				body:  rect{x: x, y: cy, w: cw, h: cardHeight},
				heart: rect{x: x + cw - 4, y: cy + 1, w: 2, h: 1},
			})
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(rows, "\n"), hits
}

func (m model) renderCard(r domain.Recipe, w int, active bool) string {
	inner := max(4, w-4)

	heart := "♡"
	if m.snap.IsSaved(r.ID) {
		heart = "♥"
	}
	title := truncate(r.Title, inner-2)
	pad := max(1, inner-1-lipgloss.Width(title))
	first := m.styles.CardTitle.Render(title) + strings.Repeat(" ", pad) + m.styles.Heart.Render(heart)

	meta := m.styles.Meta.Render(truncate(fmt.Sprintf("%d min · %d servings", r.ReadyInMinutes, r.Servings), inner))
	badges := m.styles.Badge.Render(truncate(strings.Join(r.TopDishTypes(2), " · "), inner))

	st := m.styles.Card
	if active {
		st = m.styles.CardActive
	}
	return st.Width(w - 2).Render(first + "\n" + meta + "\n" + badges)
}

func (m model) renderHelp() string {
	var bindings []key.Binding
	switch m.focus {
	case focusChips:
		bindings = []key.Binding{m.keys.Remove, m.keys.Select, m.keys.Next}
	case focusGrid:
		bindings = []key.Binding{m.keys.Select, m.keys.ToggleSaved, m.keys.Next}
	default:
		bindings = []key.Binding{m.keys.Select, m.keys.Next, m.keys.Back}
	}
	bindings = append(bindings, m.keys.Find, m.keys.Saved, m.keys.Export, m.keys.Quit)

	parts := make([]string, 0, len(bindings))
	for _, kb := range bindings {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return m.styles.Help.Render(truncate(strings.Join(parts, " · "), m.width))
}

// ── Detail modal ─────────────────────────────────────────────────

func (m model) modalWidth() int {
	return max(30, min(m.width-2, 96))
}

func (m model) renderDetail() string {
	sel := m.snap.Selected
	w := m.modalWidth()

	title := m.styles.Header.Render(truncate(sel.Title, w-6))

	hints := []key.Binding{m.keys.Back, m.keys.ToggleSaved}
	if m.snap.Narration {
		hints = append(hints, m.keys.Read)
	}
	parts := make([]string, 0, len(hints)+1)
	for _, kb := range hints {
		h := kb.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	parts = append(parts, "↑/↓ scroll")
	footer := m.styles.Help.Render(strings.Join(parts, " · "))

	body := title + "\n\n" + m.detail.View() + "\n\n"
	if status := m.renderStatus(); status != "" {
		body += status + "\n"
	}
	body += footer

	box := m.styles.Modal.Width(w - 2).Render(body)
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, box)
}

// detailContent renders the scrollable part of the modal.
func (m model) detailContent(r *domain.Recipe, saved bool) string {
	w := m.detail.Width
	body := m.styles.Body.Width(w)

	var b strings.Builder

	state := "♡ not saved"
	if saved {
		state = "♥ saved"
	}
	b.WriteString(m.styles.Meta.Render(fmt.Sprintf("Ready in %d minutes · %d servings · ", r.ReadyInMinutes, r.Servings)))
	b.WriteString(m.styles.Heart.Render(state))
	b.WriteByte('\n')
	if len(r.DishTypes) > 0 || len(r.Cuisines) > 0 {
		tags := append(append([]string{}, r.Cuisines...), r.DishTypes...)
		b.WriteString(m.styles.Badge.Render(truncate(strings.Join(tags, " · "), w)))
		b.WriteByte('\n')
	}

	if summary := PlainText(r.Summary); summary != "" {
		b.WriteString(m.styles.Section.Render("Summary"))
		b.WriteByte('\n')
		b.WriteString(body.Render(summary))
		b.WriteByte('\n')
	}

	b.WriteString(m.styles.Section.Render("Ingredients"))
	b.WriteByte('\n')
	if len(r.ExtendedIngredients) == 0 {
		b.WriteString(m.styles.Meta.Render("none listed"))
		b.WriteByte('\n')
	}
	for _, ing := range r.ExtendedIngredients {
		b.WriteString(body.Render("• " + ing.Line()))
		b.WriteByte('\n')
	}

	b.WriteString(m.styles.Section.Render("Instructions"))
	b.WriteByte('\n')
	steps := r.Steps()
	if len(steps) == 0 {
		b.WriteString(m.styles.Meta.Render("none listed"))
		b.WriteByte('\n')
	}
	for i, s := range steps {
		n := s.Number
		if n == 0 {
			n = i + 1
		}
		b.WriteString(body.Render(fmt.Sprintf("%d. %s", n, s.Step)))
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n")
}

// ── Helpers ──────────────────────────────────────────────────────

// errorText turns an error into the toast message.
func errorText(err error) string {
	var apiErr *spoonacular.APIError
	switch {
	case errors.Is(err, domain.ErrNoIngredients):
		return "Add at least one ingredient first."
	case errors.Is(err, domain.ErrNotConfigured):
		return "Read-aloud is not configured."
	case errors.Is(err, export.ErrNothingToExport):
		return "Nothing to export yet."
	case errors.Is(err, context.DeadlineExceeded):
		return "The recipe service timed out. Try again."
	case errors.As(err, &apiErr):
		return fmt.Sprintf("Recipe service error (HTTP %d). Try again.", apiErr.Status)
	default:
		return err.Error()
	}
}

func clamp(i, n int) int {
	if n == 0 || i < 0 {
		return 0
	}
	if i >= n {
		return n - 1
	}
	return i
}

// truncate shortens s to n runes, ending in an ellipsis when cut.
func truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 {
		return ""
	}
	if len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
