package tui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"

	"github.com/xvierd/git-onboard/internal/domain"
	"github.com/xvierd/git-onboard/internal/ports"
)

// PlainPrompter reads numbered answers line by line. It is used when
// stdin is not a terminal or when --plain is set, and in tests.
type PlainPrompter struct {
	in        *bufio.Reader
	out       io.Writer
	interrupt <-chan os.Signal

	once  sync.Once
	lines chan lineResult
}

type lineResult struct {
	line string
	err  error
}

var _ ports.Prompter = (*PlainPrompter)(nil)

// NewPlainPrompter creates a line-based prompter.
func NewPlainPrompter(in io.Reader, out io.Writer) *PlainPrompter {
	return &PlainPrompter{in: bufio.NewReader(in), out: out}
}

// WithInterrupt makes a signal on ch abort the pending prompt.
func (p *PlainPrompter) WithInterrupt(ch <-chan os.Signal) *PlainPrompter {
	p.interrupt = ch
	return p
}

// readLoop feeds lines from the input until it fails.
func (p *PlainPrompter) readLoop() {
	for {
		line, err := p.in.ReadString('\n')
		p.lines <- lineResult{line: line, err: err}
		if err != nil {
			close(p.lines)
			return
		}
	}
}

// readLine returns the next trimmed line. End of input and interrupts
// count as backing out.
func (p *PlainPrompter) readLine() (string, error) {
	p.once.Do(func() {
		p.lines = make(chan lineResult)
		go p.readLoop()
	})

	var r lineResult
	var ok bool
	select {
	case r, ok = <-p.lines:
		if !ok {
			return "", domain.ErrAborted
		}
	case <-p.interrupt:
		_, _ = fmt.Fprintln(p.out, "\nInterrupted.")
		return "", domain.ErrAborted
	}

	if r.err != nil {
		if errors.Is(r.err, io.EOF) && r.line != "" {
			return strings.TrimSpace(r.line), nil
		}
		if errors.Is(r.err, io.EOF) {
			return "", domain.ErrAborted
		}
		return "", fmt.Errorf("failed to read input: %w", r.err)
	}
	return strings.TrimSpace(r.line), nil
}

// Choose prints a numbered list and loops until a valid number is entered.
// q backs out.
func (p *PlainPrompter) Choose(title string, choices []ports.Choice) (int, error) {
	_, _ = fmt.Fprintf(p.out, "\n%s\n\n", title)
	width := 0
	for _, c := range choices {
		if len(c.Label) > width {
			width = len(c.Label)
		}
	}
	for i, c := range choices {
		if c.Desc == "" {
			_, _ = fmt.Fprintf(p.out, "  %d. %s\n", i+1, c.Label)
			continue
		}
		_, _ = fmt.Fprintf(p.out, "  %d. %-*s  %s\n", i+1, width, c.Label, c.Desc)
	}

	for {
		_, _ = fmt.Fprintf(p.out, "\nChoose an option (1-%d): ", len(choices))
		line, err := p.readLine()
		if err != nil {
			return 0, err
		}
		if strings.EqualFold(line, "q") {
			return 0, domain.ErrAborted
		}
		n, err := strconv.Atoi(line)
		if err == nil && n >= 1 && n <= len(choices) {
			return n - 1, nil
		}
		_, _ = fmt.Fprintf(p.out, "Please enter a number between 1 and %d.\n", len(choices))
	}
}

// Ask prints prompt and reads one line.
func (p *PlainPrompter) Ask(prompt string) (string, error) {
	_, _ = fmt.Fprintf(p.out, "%s ", prompt)
	return p.readLine()
}

// Confirm loops until y or n is entered.
func (p *PlainPrompter) Confirm(question string) (bool, error) {
	for {
		_, _ = fmt.Fprintf(p.out, "%s (y/n): ", question)
		line, err := p.readLine()
		if err != nil {
			return false, err
		}
		switch strings.ToLower(line) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		}
		_, _ = fmt.Fprintln(p.out, "Please answer y or n.")
	}
}

// Pause waits for Enter.
func (p *PlainPrompter) Pause(message string) error {
	_, _ = fmt.Fprintf(p.out, "\n%s", message)
	_, err := p.readLine()
	return err
}

// Clear prints a blank line; a plain terminal keeps its scrollback.
func (p *PlainPrompter) Clear() {
	_, _ = fmt.Fprintln(p.out)
}
