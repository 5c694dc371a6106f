package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/peterh/liner"
)

// Prompter reads operator commands and releases the terminal on Close.
type Prompter interface {
	Prompt(prompt string) (string, error)
	Close() error
}

// LinePrompter reads commands with line editing and history.
type LinePrompter struct {
	line *liner.State
}

func NewLinePrompter() *LinePrompter {
	line := liner.NewLiner()
	line.SetCtrlCAborts(true)
	return &LinePrompter{line: line}
}

// Prompt returns the next command. Ctrl-C and Ctrl-D both end the input.
func (p *LinePrompter) Prompt(prompt string) (string, error) {
	input, err := p.line.Prompt(prompt)
	if err != nil {
		if errors.Is(err, liner.ErrPromptAborted) {
			return "", fmt.Errorf("prompt aborted: %w", io.EOF)
		}
		return "", err
	}
	if s := strings.TrimSpace(input); s != "" {
		p.line.AppendHistory(s)
	}
	return input, nil
}

func (p *LinePrompter) Close() error {
	return p.line.Close()
}

// PlainPrompter reads commands line by line from a non-terminal input.
type PlainPrompter struct {
	r *bufio.Reader
	w io.Writer
}

func NewPlainPrompter(r io.Reader, w io.Writer) *PlainPrompter {
	return &PlainPrompter{r: bufio.NewReader(r), w: w}
}

func (p *PlainPrompter) Prompt(prompt string) (string, error) {
	fmt.Fprint(p.w, prompt)
	input, err := p.r.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && input != "") {
		return "", err
	}
	return strings.TrimRight(input, "\r\n"), nil
}

func (p *PlainPrompter) Close() error { return nil }

// NewPrompter picks line editing when both in and out are terminals.
func NewPrompter(in, out *os.File) Prompter {
	if IsTerminal(in) && IsTerminal(out) {
		return NewLinePrompter()
	}
	return NewPlainPrompter(in, out)
}
