package ui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/Bearcry55/rtodo/internal/view"
)

// Command is a semantic input event. Key decoding stops here; the rest
// of the UI dispatches on commands, never on key literals.
type Command int

const (
	CmdNone Command = iota
	CmdMoveSelectionUp
	CmdMoveSelectionDown
	CmdToggleComplete
	CmdStartAdd
	CmdStartEdit
	CmdDelete
	CmdSortByCreated
	CmdSortByTarget
	CmdSortByCompletion
	CmdFocusNextField
	CmdFocusPrevField
	CmdSubmitForm
	CmdCancelForm
	CmdQuit
)

// listCommand decodes a key press while the task list has focus.
func listCommand(msg tea.KeyMsg) Command {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return CmdQuit
	case "up", "k":
		return CmdMoveSelectionUp
	case "down", "j":
		return CmdMoveSelectionDown
	case " ":
		return CmdToggleComplete
	case "n", "N":
		return CmdStartAdd
	case "e", "E":
		return CmdStartEdit
	case "d", "D":
		return CmdDelete
	case "s", "S":
		return CmdSortByCreated
	case "t", "T":
		return CmdSortByTarget
	case "c", "C":
		return CmdSortByCompletion
	}
	return CmdNone
}

// formCommand decodes a key press while a form is open. CmdNone means
// the key belongs to the focused text input.
func formCommand(msg tea.KeyMsg) Command {
	switch msg.String() {
	case "esc":
		return CmdCancelForm
	case "enter":
		return CmdSubmitForm
	case "tab":
		return CmdFocusNextField
	case "shift+tab":
		return CmdFocusPrevField
	case "ctrl+c":
		return CmdQuit
	}
	return CmdNone
}

// sortModeFor maps the three sort commands to their modes.
func sortModeFor(cmd Command) (view.SortMode, bool) {
	switch cmd {
	case CmdSortByCreated:
		return view.SortCreatedDate, true
	case CmdSortByTarget:
		return view.SortTargetDate, true
	case CmdSortByCompletion:
		return view.SortCompletion, true
	}
	return "", false
}
