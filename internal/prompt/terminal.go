package prompt

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"

	"github.com/user/cardcourier/internal/types"
)

// Terminal prompts on the controlling terminal. Questions are written to
// stderr so stdout stays clean for command output.
type Terminal struct {
	in     *os.File
	out    io.Writer
	reader *bufio.Reader
}

// NewTerminal creates a Terminal reading from stdin.
func NewTerminal() *Terminal {
	return &Terminal{
		in:     os.Stdin,
		out:    os.Stderr,
		reader: bufio.NewReader(os.Stdin),
	}
}

func (t *Terminal) isTerminal() bool {
	return term.IsTerminal(int(t.in.Fd()))
}

// Password reads a secret with echo disabled.
func (t *Terminal) Password(message string) (string, error) {
	fd := int(t.in.Fd())
	if !term.IsTerminal(fd) {
		return "", errors.New("no terminal available for interactive token prompt (set TOKEN)")
	}

	fmt.Fprintf(t.out, "%s ", message)
	secret, err := term.ReadPassword(fd)
	fmt.Fprintln(t.out)
	if err != nil {
		return "", fmt.Errorf("reading password: %w", err)
	}
	return strings.TrimSpace(string(secret)), nil
}

// Input reads one line of text.
func (t *Terminal) Input(message string) (string, error) {
	fmt.Fprintf(t.out, "%s ", message)
	line, err := t.reader.ReadString('\n')
	switch {
	case err == nil:
	case errors.Is(err, io.EOF) && line != "":
	case errors.Is(err, io.EOF):
		return "", ErrCancelled
	default:
		return "", fmt.Errorf("reading input: %w", err)
	}
	return strings.TrimSpace(line), nil
}

// Select shows an arrow-key list and returns the chosen value.
func (t *Terminal) Select(message string, choices []types.Choice) (string, error) {
	if !Selectable(choices) {
		return "", ErrNoChoices
	}
	if !t.isTerminal() {
		return "", errors.New("no terminal available for interactive selection")
	}

	program := tea.NewProgram(newSelectModel(message, choices), tea.WithInput(t.in), tea.WithOutput(t.out))
	final, err := program.Run()
	if err != nil {
		return "", fmt.Errorf("run selection: %w", err)
	}
	model := final.(selectModel)
	if model.cancelled || !model.chosen {
		return "", ErrCancelled
	}
	return model.choices[model.cursor].Value, nil
}
