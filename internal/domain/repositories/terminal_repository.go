package repositories

import "context"

// TerminalRepository is the interactive surface the upgrade reports through.
type TerminalRepository interface {
	Intro(title string)
	Info(message string)
	Warn(message string)
	Error(message string)
	Success(message string)
	Note(message, title string)

	// Confirm asks a yes/no question. Aborting the prompt returns
	// entities.ErrUpgradeCancelled.
	Confirm(ctx context.Context, message string, initial bool) (bool, error)

	// IsInteractive reports whether prompts can be shown.
	IsInteractive() bool

	// Width is the number of terminal columns available for a line.
	Width() int

	// Link renders a hyperlink labelled text when the terminal supports it and
	// falls back to the bare URL otherwise. The second value is the visible length.
	Link(text, url string) (string, int)
}
