package display

import "github.com/charmbracelet/bubbles/key"

// keyMap is every binding the UI reacts to.
type keyMap struct {
	Quit        key.Binding
	Theme       key.Binding
	Find        key.Binding
	Saved       key.Binding
	Export      key.Binding
	Next        key.Binding
	Prev        key.Binding
	Up          key.Binding
	Down        key.Binding
	Left        key.Binding
	Right       key.Binding
	Select      key.Binding
	Back        key.Binding
	Remove      key.Binding
	ToggleSaved key.Binding
	Read        key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Quit:        key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit")),
		Theme:       key.NewBinding(key.WithKeys("ctrl+t"), key.WithHelp("ctrl+t", "theme")),
		Find:        key.NewBinding(key.WithKeys("ctrl+f"), key.WithHelp("ctrl+f", "find recipes")),
		Saved:       key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "saved")),
		Export:      key.NewBinding(key.WithKeys("ctrl+e"), key.WithHelp("ctrl+e", "export")),
		Next:        key.NewBinding(key.WithKeys("tab"), key.WithHelp("tab", "focus")),
		Prev:        key.NewBinding(key.WithKeys("shift+tab")),
		Up:          key.NewBinding(key.WithKeys("up")),
		Down:        key.NewBinding(key.WithKeys("down")),
		Left:        key.NewBinding(key.WithKeys("left")),
		Right:       key.NewBinding(key.WithKeys("right")),
		Select:      key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "select")),
		Back:        key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		Remove:      key.NewBinding(key.WithKeys("backspace", "delete", "x"), key.WithHelp("x", "remove")),
		ToggleSaved: key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "save")),
		Read:        key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "read aloud")),
	}
}
