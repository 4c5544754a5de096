package tui

import "errors"

// Message types for Bubble Tea update loop.

// runMsg carries a scheduler callback onto the update loop, which is the
// serialized queue every engine runs on.
type runMsg struct{ fn func() }

// startMsg starts the engines once the program is running.
type startMsg struct{}

// frameMsg advances the comment animations.
type frameMsg struct{}

// quitMsg indicates the program should quit.
type quitMsg struct{ Reason error }

// ErrQuit is a sentinel quit reason.
var ErrQuit = errors.New("quit")
