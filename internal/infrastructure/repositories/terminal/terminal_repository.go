package terminal

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"golang.org/x/term"

	"github.com/rios0rios0/studiocms-upgrade/internal/domain/entities"
)

const (
	defaultWidth = 80
	bar          = "│"

	osc8Open  = "\x1b]8;;"
	osc8Close = "\x07"
)

//nolint:gochecknoglobals // shared styles
var (
	infoStyle    = color.New(color.FgBlue)
	warnStyle    = color.New(color.FgYellow)
	errorStyle   = color.New(color.FgRed)
	successStyle = color.New(color.FgGreen)
	barStyle     = color.New(color.Faint)

	bannerStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(lipgloss.Color("#a581f3")).
			Foreground(lipgloss.Color("#000000"))
)

// ConfirmFunc runs a yes/no prompt and stores the answer in value.
type ConfirmFunc func(ctx context.Context, title string, value *bool) error

// Repository renders upgrade progress on a terminal and asks for confirmation.
type Repository struct {
	out         io.Writer
	fd          int
	interactive bool
	confirm     ConfirmFunc
}

// NewRepository creates a Repository bound to stdout and stdin.
func NewRepository() *Repository {
	fd := int(os.Stdout.Fd()) //nolint:gosec // file descriptors fit in int
	interactive := term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(fd) //nolint:gosec // same
	return NewRepositoryWith(os.Stdout, fd, interactive, huhConfirm)
}

// NewRepositoryWith creates a Repository writing to out. A negative fd means
// the width cannot be queried.
func NewRepositoryWith(out io.Writer, fd int, interactive bool, confirm ConfirmFunc) *Repository {
	return &Repository{out: out, fd: fd, interactive: interactive, confirm: confirm}
}

// Intro prints the banner label followed by a blank gutter row.
func (it *Repository) Intro(title string) {
	label := title
	if !color.NoColor {
		label = bannerStyle.Render(title)
	}
	it.println(label)
	it.println(barStyle.Sprint(bar))
}

// Info prints a neutral line.
func (it *Repository) Info(message string) {
	it.log(infoStyle.Sprint("●"), message)
}

// Warn prints a warning line.
func (it *Repository) Warn(message string) {
	it.log(warnStyle.Sprint("▲"), message)
}

// Error prints an error line.
func (it *Repository) Error(message string) {
	it.log(errorStyle.Sprint("■"), message)
}

// Success prints the closing line of a run.
func (it *Repository) Success(message string) {
	it.log(successStyle.Sprint("◆"), message)
}

// Note prints a titled block. An empty title prints the message alone.
func (it *Repository) Note(message, title string) {
	if title != "" {
		it.println(fmt.Sprintf("%s  %s", successStyle.Sprint("◇"), title))
	}
	for _, line := range strings.Split(strings.Trim(message, "\n"), "\n") {
		it.println(fmt.Sprintf("%s  %s", barStyle.Sprint(bar), line))
	}
	it.println(barStyle.Sprint(bar))
}

// Confirm asks a yes/no question. Ctrl+C or Esc maps to entities.ErrUpgradeCancelled.
func (it *Repository) Confirm(ctx context.Context, message string, initial bool) (bool, error) {
	if !it.interactive {
		return false, errors.New("confirmation requires an interactive terminal")
	}

	value := initial
	err := it.confirm(ctx, message, &value)
	if errors.Is(err, huh.ErrUserAborted) || errors.Is(err, context.Canceled) {
		return false, entities.ErrUpgradeCancelled
	}
	if err != nil {
		return false, err
	}
	return value, nil
}

// IsInteractive reports whether both stdin and stdout are terminals.
func (it *Repository) IsInteractive() bool {
	return it.interactive
}

// Width returns the column count of stdout, or 80 when it is not a terminal.
func (it *Repository) Width() int {
	if it.fd < 0 {
		return defaultWidth
	}
	width, _, err := term.GetSize(it.fd)
	if err != nil || width <= 0 {
		return defaultWidth
	}
	return width
}

// Link wraps text in an OSC 8 hyperlink on interactive terminals and prints
// the bare URL everywhere else.
func (it *Repository) Link(text, url string) (string, int) {
	if !it.interactive || color.NoColor {
		return url, len(url)
	}
	return osc8Open + url + osc8Close + text + osc8Open + osc8Close, len(text)
}

func (it *Repository) log(symbol, message string) {
	lines := strings.Split(message, "\n")
	it.println(fmt.Sprintf("%s  %s", symbol, lines[0]))
	for _, line := range lines[1:] {
		it.println(fmt.Sprintf("%s  %s", barStyle.Sprint(bar), line))
	}
}

func (it *Repository) println(line string) {
	_, _ = fmt.Fprintln(it.out, line)
}

func huhConfirm(ctx context.Context, title string, value *bool) error {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewConfirm().
				Title(title).
				Affirmative("Yes").
				Negative("No").
				Value(value),
		),
	).WithProgramOptions(tea.WithOutput(os.Stderr)).RunWithContext(ctx)
}
