package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Engine drives a merge: it reads hunks from the diff stream, has the
// Resolver settle each one, and finishes with the rest of the first source.
type Engine struct {
	Resolver *Resolver
	Display  Display
	Logger   *zap.Logger
}

// Options configures an Engine. Runner and Display are shared by the
// prompt loop and the manual-edit bridge.
type Options struct {
	Prompter Prompter
	Runner   Runner
	Display  Display
	Pager    Pager
	Strategy Strategy
	Editor   []string
	Shell    string
	TempDir  string
	Logger   *zap.Logger
}

func New(opts Options) *Engine {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	strategy := opts.Strategy
	if strategy == "" {
		strategy = Mirrored
	}
	bridge := &Bridge{
		Editor:  opts.Editor,
		Runner:  opts.Runner,
		Display: opts.Display,
		TempDir: opts.TempDir,
		Logger:  logger,
	}
	return &Engine{
		Resolver: &Resolver{
			Prompter: opts.Prompter,
			Runner:   opts.Runner,
			Display:  opts.Display,
			Pager:    opts.Pager,
			Bridge:   bridge,
			Strategy: strategy,
			Shell:    opts.Shell,
			Logger:   logger,
		},
		Display: opts.Display,
		Logger:  logger,
	}
}

// Summary describes a finished merge.
type Summary struct {
	Outcomes  []Outcome
	TailLines int
	Lines     int
}

// Count returns how many hunks were resolved with c.
func (s Summary) Count(c Choice) int {
	n := 0
	for _, o := range s.Outcomes {
		if o.Choice == c {
			n++
		}
	}
	return n
}

// Merge writes the merge of first and second to out. diff holds the
// differences between them in the normal diff format.
func (e *Engine) Merge(ctx context.Context, diff, first, second io.Reader, out io.Writer) (Summary, error) {
	stream := NewLineReader(diff)
	src := Sources{First: NewLineReader(first), Second: NewLineReader(second)}
	merged := NewOutput(out)
	ledger := &Ledger{}

	summary, err := e.resolveAll(ctx, stream, src, ledger, merged)
	if err != nil {
		if flushErr := merged.Flush(); flushErr != nil {
			e.Logger.Warn("flushing partial output", zap.Error(flushErr))
		}
		return summary, err
	}

	if summary.TailLines, err = TailCopy(src.First, ledger, merged); err != nil {
		return summary, fmt.Errorf("copying remaining lines: %w", err)
	}
	summary.Lines = merged.Lines()
	return summary, merged.Flush()
}

func (e *Engine) resolveAll(ctx context.Context, stream *LineReader, src Sources, ledger *Ledger, out *Output) (Summary, error) {
	var summary Summary
	for {
		line, err := stream.ReadLine()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, fmt.Errorf("reading diff output: %w", err)
		}
		header := strings.TrimRight(line, "\r\n")
		lineNo := stream.Line()

		h, err := ParseHunk(header)
		if err == nil {
			err = ledger.Check(h)
		}
		if err != nil {
			return summary, &HunkError{Line: lineNo, Text: header, Err: err}
		}
		e.Logger.Debug("hunk parsed", zap.Stringer("hunk", h), zap.Int("line", lineNo))

		body, err := Frame(stream, h)
		if err != nil {
			return summary, &HunkError{Line: lineNo, Text: header, Err: err}
		}
		e.Display.ShowHunk(header, body)

		outcome, err := e.Resolver.Resolve(ctx, h, body, src, ledger, out)
		if err != nil {
			return summary, err
		}
		summary.Outcomes = append(summary.Outcomes, outcome)
	}
}

// TailCopy writes every line of the first source past the ledger's position
// to out. With no hunks at all this copies the whole file.
func TailCopy(first *LineReader, ledger *Ledger, out *Output) (int, error) {
	consumed1, _ := ledger.Consumed()
	if behind := consumed1 - first.Line(); behind > 0 {
		if _, err := first.Skip(behind); err != nil {
			return 0, err
		}
	}
	return first.CopyAll(out)
}
