//go:build integration || unit || test

package repositorydoubles //nolint:revive,staticcheck // Test package naming follows established project structure

import (
	"context"
	"strings"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/repositories"
)

// Terminal line levels recorded by SpyTerminalRepository.
const (
	LevelIntro   = "intro"
	LevelInfo    = "info"
	LevelWarn    = "warn"
	LevelError   = "error"
	LevelSuccess = "success"
	LevelNote    = "note"
)

// TerminalLine is one message written to the terminal.
type TerminalLine struct {
	Level   string
	Message string
	Title   string
}

// ConfirmCall records a single prompt.
type ConfirmCall struct {
	Message string
	Initial bool
}

// SpyTerminalRepository records every line and answers prompts from its fields.
type SpyTerminalRepository struct {
	Lines []TerminalLine

	// --- Confirm ---
	Answer       bool
	ConfirmErr   error
	ConfirmCalls []ConfirmCall

	Interactive bool
	Columns     int
}

var _ repositories.TerminalRepository = (*SpyTerminalRepository)(nil)

// NewSpyTerminalRepository creates an interactive 120-column terminal that
// accepts every prompt.
func NewSpyTerminalRepository() *SpyTerminalRepository {
	return &SpyTerminalRepository{Answer: true, Interactive: true, Columns: 120}
}

func (s *SpyTerminalRepository) Intro(title string) { s.record(LevelIntro, title, "") }

func (s *SpyTerminalRepository) Info(message string) { s.record(LevelInfo, message, "") }

func (s *SpyTerminalRepository) Warn(message string) { s.record(LevelWarn, message, "") }

func (s *SpyTerminalRepository) Error(message string) { s.record(LevelError, message, "") }

func (s *SpyTerminalRepository) Success(message string) { s.record(LevelSuccess, message, "") }

func (s *SpyTerminalRepository) Note(message, title string) { s.record(LevelNote, message, title) }

func (s *SpyTerminalRepository) Confirm(_ context.Context, message string, initial bool) (bool, error) {
	s.ConfirmCalls = append(s.ConfirmCalls, ConfirmCall{Message: message, Initial: initial})
	return s.Answer, s.ConfirmErr
}

func (s *SpyTerminalRepository) IsInteractive() bool { return s.Interactive }

func (s *SpyTerminalRepository) Width() int { return s.Columns }

// Link renders links as bare URLs.
func (s *SpyTerminalRepository) Link(_, url string) (string, int) { return url, len(url) }

// Messages returns the messages of the given level, or of every level when none is given.
func (s *SpyTerminalRepository) Messages(levels ...string) []string {
	var messages []string
	for _, line := range s.Lines {
		if len(levels) == 0 || contains(levels, line.Level) {
			messages = append(messages, line.Message)
		}
	}
	return messages
}

// Output joins every recorded message with newlines.
func (s *SpyTerminalRepository) Output() string {
	return strings.Join(s.Messages(), "\n")
}

func (s *SpyTerminalRepository) record(level, message, title string) {
	s.Lines = append(s.Lines, TerminalLine{Level: level, Message: message, Title: title})
}

func contains(values []string, value string) bool {
	for _, candidate := range values {
		if candidate == value {
			return true
		}
	}
	return false
}
