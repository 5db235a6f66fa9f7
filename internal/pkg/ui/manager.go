// Package ui provides the interactive terminal surface for Memo.
package ui

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Action is what the user chose to do with a generated message.
type Action int

const (
	ActionAccept Action = iota
	ActionRegenerate
	ActionEdit
	ActionDeny
)

// String returns the action name.
func (a Action) String() string {
	switch a {
	case ActionAccept:
		return "accept"
	case ActionRegenerate:
		return "regenerate"
	case ActionEdit:
		return "edit"
	case ActionDeny:
		return "deny"
	default:
		return "unknown"
	}
}

// Manager defines the UI operations the generate workflow needs.
type Manager interface {
	DisplayMessage(message string)
	PromptAction() (Action, error)
	PromptModel(models []string, current string) (string, error)
	ShowSpinner(text string) Spinner
	ShowError(err error)
	ShowSuccess(message string)
	ShowWarning(message string)
}

// Console implements Manager over plain reader/writer streams so tests
// can script the interaction.
type Console struct {
	in     *bufio.Reader
	out    io.Writer
	styles *styles
}

// styles holds the lipgloss styles for rendering.
type styles struct {
	title   lipgloss.Style
	message lipgloss.Style
	success lipgloss.Style
	errText lipgloss.Style
	warn    lipgloss.Style
	hint    lipgloss.Style
	border  lipgloss.Style
}

// NewConsole creates a Console reading from stdin and writing to stdout.
func NewConsole(colorEnabled bool) *Console {
	return NewConsoleWith(os.Stdin, os.Stdout, colorEnabled)
}

// NewConsoleWith creates a Console over explicit streams.
func NewConsoleWith(in io.Reader, out io.Writer, colorEnabled bool) *Console {
	return &Console{
		in:     bufio.NewReader(in),
		out:    out,
		styles: newStyles(colorEnabled),
	}
}

func newStyles(colorEnabled bool) *styles {
	if !colorEnabled {
		plain := lipgloss.NewStyle()
		return &styles{
			title: plain, message: plain, success: plain,
			errText: plain, warn: plain, hint: plain, border: plain,
		}
	}
	return &styles{
		title: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("39")),
		message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		success: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("42")),
		errText: lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("196")),
		warn: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")),
		hint: lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")),
		border: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("62")).
			Padding(0, 2),
	}
}

// DisplayMessage renders the proposed commit message in a panel.
func (c *Console) DisplayMessage(message string) {
	fmt.Fprintln(c.out)
	fmt.Fprintln(c.out, c.styles.title.Render("Proposed commit message"))
	fmt.Fprintln(c.out, c.styles.border.Render(c.styles.message.Render(message)))
	fmt.Fprintln(c.out)
}

// PromptAction asks what to do with the message. An empty answer defaults
// to Edit so pressing Enter always lands in the editor for review.
func (c *Console) PromptAction() (Action, error) {
	fmt.Fprintln(c.out, "What would you like to do?")
	fmt.Fprintln(c.out, "  1. Accept and commit")
	fmt.Fprintln(c.out, "  2. Regenerate")
	fmt.Fprintln(c.out, "  3. Edit before committing")
	fmt.Fprintln(c.out, "  4. Deny")

	for {
		fmt.Fprint(c.out, c.styles.hint.Render("Choice [3]: "))
		line, err := c.readLine()
		if err != nil {
			return ActionDeny, err
		}
		switch line {
		case "", "3":
			return ActionEdit, nil
		case "1":
			return ActionAccept, nil
		case "2":
			return ActionRegenerate, nil
		case "4":
			return ActionDeny, nil
		}
		fmt.Fprintln(c.out, c.styles.warn.Render("Please enter a number between 1 and 4."))
	}
}

// PromptModel offers a model menu before regenerating. An empty answer
// keeps the current model.
func (c *Console) PromptModel(models []string, current string) (string, error) {
	fmt.Fprintln(c.out, "Pick a model for the next attempt:")
	for i, model := range models {
		marker := " "
		if model == current {
			marker = "*"
		}
		fmt.Fprintf(c.out, "  %d. %s %s\n", i+1, model, marker)
	}

	for {
		fmt.Fprint(c.out, c.styles.hint.Render(fmt.Sprintf("Model [%s]: ", current)))
		line, err := c.readLine()
		if err != nil {
			return "", err
		}
		if line == "" {
			return current, nil
		}
		for i, model := range models {
			if line == fmt.Sprint(i+1) || line == model {
				return model, nil
			}
		}
		fmt.Fprintln(c.out, c.styles.warn.Render("Please pick one of the listed models."))
	}
}

// ShowSpinner starts a loading animation while the provider is working.
func (c *Console) ShowSpinner(text string) Spinner {
	return newBubbleSpinner(text)
}

func (c *Console) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(c.out, c.styles.errText.Render("Error: "+err.Error()))
}

func (c *Console) ShowSuccess(message string) {
	fmt.Fprintln(c.out, c.styles.success.Render(message))
}

func (c *Console) ShowWarning(message string) {
	fmt.Fprintln(c.out, c.styles.warn.Render(message))
}

func (c *Console) readLine() (string, error) {
	line, err := c.in.ReadString('\n')
	if err != nil && line == "" {
		return "", err
	}
	return strings.TrimSpace(line), nil
}

// NonInteractive implements Manager for scripted use. The message is
// printed bare so it can be piped into other tools.
type NonInteractive struct {
	out io.Writer
}

// NewNonInteractive creates a NonInteractive manager writing to stdout.
func NewNonInteractive() *NonInteractive {
	return &NonInteractive{out: os.Stdout}
}

// NewNonInteractiveWith creates a NonInteractive manager over an explicit
// writer.
func NewNonInteractiveWith(out io.Writer) *NonInteractive {
	return &NonInteractive{out: out}
}

func (m *NonInteractive) DisplayMessage(message string) {
	fmt.Fprintln(m.out, message)
}

func (m *NonInteractive) PromptAction() (Action, error) {
	return ActionDeny, nil
}

func (m *NonInteractive) PromptModel(models []string, current string) (string, error) {
	return current, nil
}

func (m *NonInteractive) ShowSpinner(text string) Spinner {
	return &noopSpinner{}
}

func (m *NonInteractive) ShowError(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "Error: %s\n", err.Error())
}

func (m *NonInteractive) ShowSuccess(message string) {}

func (m *NonInteractive) ShowWarning(message string) {
	fmt.Fprintln(os.Stderr, message)
}
