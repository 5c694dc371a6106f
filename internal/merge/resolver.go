package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"
)

// Prompter reads one line of operator input. It returns io.EOF, possibly
// wrapped, once no more input can arrive.
type Prompter interface {
	Prompt(prompt string) (string, error)
}

// Runner runs an external command to completion. Only its exit status is reported.
type Runner interface {
	Run(ctx context.Context, argv []string) error
}

// Display shows hunks and feedback to the operator.
type Display interface {
	ShowHunk(header string, body []string)
	Notice(msg string)
	Warn(msg string)
}

// Pager shows a hunk one screen at a time.
type Pager interface {
	Page(title string, lines []string) error
}

const (
	prompt    = "? "
	usageHint = "expected one of: use-first, use-second, manual, shell-escape"
	keyHint   = "  < use-first   > use-second   e manual   !cmd shell-escape   v view"
)

// Outcome records how one hunk was resolved and the ledger afterwards.
type Outcome struct {
	Hunk      Hunk
	Choice    Choice
	Lines     int
	Consumed1 int
	Consumed2 int
}

// Resolver runs the prompt loop for a single hunk until the operator picks
// a side or edits it.
type Resolver struct {
	Prompter Prompter
	Runner   Runner
	Display  Display
	Pager    Pager
	Bridge   *Bridge
	Strategy Strategy
	Shell    string
	Logger   *zap.Logger
}

type action int

const (
	actUnknown action = iota
	actFirst
	actSecond
	actManual
	actShell
	actView
)

var actionWords = map[string]action{
	"use-first":  actFirst,
	"use-second": actSecond,
	"manual":     actManual,
	"view":       actView,
}

func parseAction(input string) (action, string) {
	s := strings.TrimSpace(input)
	if s == "" {
		return actUnknown, ""
	}
	if act, ok := actionWords[s]; ok {
		return act, ""
	}
	if rest, ok := strings.CutPrefix(s, "shell-escape"); ok {
		return actShell, strings.TrimSpace(rest)
	}
	switch s[0] {
	case '<':
		return actFirst, ""
	case '>':
		return actSecond, ""
	case 'e':
		return actManual, ""
	case '!':
		return actShell, strings.TrimSpace(s[1:])
	case 'v':
		return actView, ""
	}
	return actUnknown, ""
}

// Resolve prompts until h is resolved, writes the result to out and advances
// the ledger to the end of both of h's ranges.
func (r *Resolver) Resolve(ctx context.Context, h Hunk, body []string, src Sources, ledger *Ledger, out *Output) (Outcome, error) {
	for {
		input, err := r.Prompter.Prompt(prompt)
		if err != nil {
			if errors.Is(err, io.EOF) {
				return Outcome{}, fmt.Errorf("resolving %s: %w", h, ErrInputExhausted)
			}
			return Outcome{}, fmt.Errorf("reading command for %s: %w", h, err)
		}

		var choice Choice
		act, command := parseAction(input)
		switch act {
		case actFirst:
			choice = UseFirst
		case actSecond:
			choice = UseSecond
		case actManual:
			choice = Manual
		case actShell:
			r.shellEscape(ctx, command)
			continue
		case actView:
			r.view(h, body)
			continue
		default:
			r.Display.Notice(usageHint)
			r.Display.Notice(keyHint)
			continue
		}

		before := out.Lines()
		if err := r.apply(ctx, choice, h, src, ledger, out); err != nil {
			return Outcome{}, fmt.Errorf("resolving %s with %s: %w", h, choice, err)
		}
		if err := ledger.Advance(h.To1, h.To2); err != nil {
			return Outcome{}, err
		}

		consumed1, consumed2 := ledger.Consumed()
		outcome := Outcome{
			Hunk:      h,
			Choice:    choice,
			Lines:     out.Lines() - before,
			Consumed1: consumed1,
			Consumed2: consumed2,
		}
		r.Logger.Debug("hunk resolved",
			zap.Stringer("hunk", h),
			zap.Stringer("choice", choice),
			zap.Int("lines", outcome.Lines),
			zap.Int("consumed1", consumed1),
			zap.Int("consumed2", consumed2))
		return outcome, nil
	}
}

func (r *Resolver) apply(ctx context.Context, choice Choice, h Hunk, src Sources, ledger *Ledger, out *Output) error {
	if choice == Manual {
		return r.Bridge.Edit(ctx, h, src, ledger, out)
	}
	return r.Strategy.selection(choice, h, ledger, src).apply(out)
}

// shellEscape hands command to the shell; an empty command starts an
// interactive shell. Failures are reported and the hunk stays open.
func (r *Resolver) shellEscape(ctx context.Context, command string) {
	argv := []string{r.Shell}
	if command != "" {
		argv = append(argv, "-c", command)
	}
	if err := r.Runner.Run(ctx, argv); err != nil {
		r.Logger.Debug("shell escape failed", zap.String("command", command), zap.Error(err))
		r.Display.Warn(fmt.Sprintf("shell escape: %v", err))
	}
	r.Display.Notice("!")
}

func (r *Resolver) view(h Hunk, body []string) {
	if r.Pager == nil {
		r.Display.ShowHunk(h.String(), body)
		return
	}
	if err := r.Pager.Page(h.String(), body); err != nil {
		r.Display.Warn(fmt.Sprintf("pager: %v", err))
		r.Display.ShowHunk(h.String(), body)
	}
}
