package interactive

import "github.com/charmbracelet/bubbles/key"

// menuKeys are active while the action menu is shown.
type menuKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
}

var menuKeys = menuKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "k"),
		key.WithHelp("↑/k", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "j"),
		key.WithHelp("↓/j", "down"),
	),
	// ctrl+j is what a bare line feed decodes to.
	Select: key.NewBinding(
		key.WithKeys("enter", "ctrl+j"),
		key.WithHelp("enter", "select"),
	),
}

// inputKeys are active while a prompt is waiting for text.
type inputKeyMap struct {
	Submit key.Binding
	Back   key.Binding
}

var inputKeys = inputKeyMap{
	Submit: key.NewBinding(
		key.WithKeys("enter", "ctrl+j"),
		key.WithHelp("enter", "submit"),
	),
	Back: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back"),
	),
}

var quitKey = key.NewBinding(
	key.WithKeys("ctrl+c"),
	key.WithHelp("ctrl+c", "quit"),
)
