package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// ---------------------------------------------------------------------------
// Line input (pipes, -plain)
// ---------------------------------------------------------------------------

// lineInput reads one command per line. End of input ends the walk.
type lineInput struct {
	sc *bufio.Scanner
	w  io.Writer
}

func newLineInput(r io.Reader, w io.Writer) *lineInput {
	return &lineInput{sc: bufio.NewScanner(r), w: w}
}

func (l *lineInput) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	fmt.Fprint(l.w, prompt)
	if !l.sc.Scan() {
		if err := l.sc.Err(); err != nil {
			return "", err
		}
		return "", io.EOF
	}
	return strings.TrimRight(l.sc.Text(), "\r"), nil
}

func (l *lineInput) Next(ctx context.Context) (string, error) {
	return l.readLine(ctx, "> ")
}

func (l *lineInput) Accuse(ctx context.Context, suspects []string) (string, error) {
	name, err := l.readLine(ctx, "Who is guilty? ")
	if errors.Is(err, io.EOF) {
		return "", errors.New("no accusation given")
	}
	return name, err
}

// ---------------------------------------------------------------------------
// TUI prompt
// ---------------------------------------------------------------------------

// promptModel is a bubbletea model that reads a single line.
type promptModel struct {
	label     string
	input     textinput.Model
	done      bool
	cancelled bool
}

func newPromptModel(label, placeholder string) promptModel {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = 256
	ti.Focus()
	return promptModel{label: label, input: ti}
}

func (m promptModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m promptModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			m.cancelled = true
			return m, tea.Quit
		case tea.KeyEnter:
			m.done = true
			return m, tea.Quit
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m promptModel) View() string {
	if m.done || m.cancelled {
		return ""
	}
	return fmt.Sprintf("%s %s\n", m.label, m.input.View())
}

// promptLine runs the TUI once. ok is false when the player cancelled.
func promptLine(ctx context.Context, label, placeholder string) (string, bool, error) {
	p := tea.NewProgram(newPromptModel(label, placeholder), tea.WithContext(ctx))
	result, err := p.Run()
	if err != nil {
		return "", false, err
	}
	final, isModel := result.(promptModel)
	if !isModel || !final.done {
		return "", false, nil
	}
	return final.input.Value(), true, nil
}

// promptInput reads commands and the accusation through bubbletea.
// Esc or Ctrl-C on a command prompt ends the walk.
type promptInput struct{}

func (promptInput) Next(ctx context.Context) (string, error) {
	line, ok, err := promptLine(ctx, "Where to?", "left, right or stop")
	if err != nil {
		return "", err
	}
	if !ok {
		return "", io.EOF
	}
	return line, nil
}

func (promptInput) Accuse(ctx context.Context, suspects []string) (string, error) {
	line, ok, err := promptLine(ctx, "Who is guilty?", strings.Join(suspects, ", "))
	if err != nil {
		return "", err
	}
	if !ok {
		return "", errors.New("accusation cancelled")
	}
	return line, nil
}
