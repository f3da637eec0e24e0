// internal/platform/ui/prompter.go
package ui

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/pterm/pterm"

	"sqlihunt/internal/platform/errors"
)

// ErrNoInput is returned when the input stream ends before an answer.
var ErrNoInput = errors.New("no input")

// Prompter asks the operator questions.
type Prompter interface {
	// Input reads one free-text answer, trimmed.
	Input(ctx context.Context, question string) (string, error)

	// Confirm asks a yes/no question. An empty answer yields def.
	Confirm(ctx context.Context, question string, def bool) (bool, error)

	// Select returns the index of the chosen option. Answers outside the
	// option list fail with ErrInvalidSelection.
	Select(ctx context.Context, question string, options []string) (int, error)
}

// LinePrompter reads answers line by line from any reader. It backs the
// non-interactive path (pipes, tests) and terminals without raw mode.
type LinePrompter struct {
	mu sync.Mutex
	r  *bufio.Reader
	w  io.Writer
}

func NewLinePrompter(r io.Reader, w io.Writer) *LinePrompter {
	return &LinePrompter{r: bufio.NewReader(r), w: w}
}

func (p *LinePrompter) readLine(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	fmt.Fprint(p.w, prompt)
	line, err := p.r.ReadString('\n')
	if err != nil {
		if err == io.EOF && line != "" {
			return strings.TrimSpace(line), nil
		}
		if err == io.EOF {
			return "", errors.Wrap(ErrNoInput, prompt)
		}
		return "", err
	}
	return strings.TrimSpace(line), nil
}

func (p *LinePrompter) Input(ctx context.Context, question string) (string, error) {
	return p.readLine(ctx, question+": ")
}

func (p *LinePrompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	hint := "(yes/no)"
	if def {
		hint = "(YES/no)"
	}
	answer, err := p.readLine(ctx, fmt.Sprintf("%s %s: ", question, hint))
	if err != nil {
		return false, err
	}
	return parseYesNo(answer, def), nil
}

func (p *LinePrompter) Select(ctx context.Context, question string, options []string) (int, error) {
	var b strings.Builder
	b.WriteString(question + "\n")
	for i, opt := range options {
		fmt.Fprintf(&b, "%d) %s\n", i+1, opt)
	}
	fmt.Fprintf(&b, "Enter 1-%d: ", len(options))

	answer, err := p.readLine(ctx, b.String())
	if err != nil {
		return -1, err
	}
	return matchOption(answer, options)
}

// PTermPrompter uses pterm's interactive widgets. It needs a TTY.
type PTermPrompter struct{}

func NewPTermPrompter() *PTermPrompter {
	return &PTermPrompter{}
}

func (PTermPrompter) Input(ctx context.Context, question string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	answer, err := pterm.DefaultInteractiveTextInput.Show(question)
	return strings.TrimSpace(answer), err
}

func (PTermPrompter) Confirm(ctx context.Context, question string, def bool) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	return pterm.DefaultInteractiveConfirm.WithDefaultValue(def).Show(question)
}

func (PTermPrompter) Select(ctx context.Context, question string, options []string) (int, error) {
	if err := ctx.Err(); err != nil {
		return -1, err
	}
	choice, err := pterm.DefaultInteractiveSelect.
		WithOptions(options).
		WithDefaultText(question).
		Show()
	if err != nil {
		return -1, err
	}
	return matchOption(choice, options)
}

// parseYesNo accepts y/yes and n/no in any case.
func parseYesNo(answer string, def bool) bool {
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "":
		return def
	case "y", "yes":
		return true
	default:
		return false
	}
}

// matchOption resolves a 1-based number or an option's text.
func matchOption(answer string, options []string) (int, error) {
	answer = strings.TrimSpace(answer)
	if n, err := strconv.Atoi(answer); err == nil && n >= 1 && n <= len(options) {
		return n - 1, nil
	}
	for i, opt := range options {
		if strings.EqualFold(answer, opt) {
			return i, nil
		}
	}
	return -1, errors.Wrapf(errors.ErrInvalidSelection, "%q", answer)
}

// NewPrompter returns the pterm prompter on a TTY and a line prompter
// otherwise.
func NewPrompter(in io.Reader, out io.Writer, interactive bool) Prompter {
	if interactive {
		return NewPTermPrompter()
	}
	return NewLinePrompter(in, out)
}
