package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/readloop/internal/models"
)

// MsgKind enumerates all message types in the application.
type MsgKind int

// Msg represents all possible messages in the TUI (Elm-style message union).
type Msg struct {
	kind MsgKind
	data any
}

var (
	_ tea.Msg = Msg{}
)

const (
	MsgPasted MsgKind = iota
	MsgCopied
)

// pastedMsg is the constructor for [MsgPasted]
func pastedMsg(text string, err error) Msg {
	return Msg{
		kind: MsgPasted,
		data: struct {
			text string
			err  error
		}{text, err},
	}
}

// copiedMsg is the constructor for [MsgCopied]
func copiedMsg(entry models.Entry, err error) Msg {
	return Msg{
		kind: MsgCopied,
		data: struct {
			entry models.Entry
			err   error
		}{entry, err},
	}
}
