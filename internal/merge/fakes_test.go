package merge

import (
	"context"
	"io"
	"strings"
	"testing"
)

type scriptedPrompter struct {
	inputs  []string
	prompts int
}

func (p *scriptedPrompter) Prompt(string) (string, error) {
	p.prompts++
	if len(p.inputs) == 0 {
		return "", io.EOF
	}
	in := p.inputs[0]
	p.inputs = p.inputs[1:]
	return in, nil
}

type fakeRunner struct {
	calls [][]string
	run   func(argv []string) error
}

func (r *fakeRunner) Run(_ context.Context, argv []string) error {
	r.calls = append(r.calls, argv)
	if r.run == nil {
		return nil
	}
	return r.run(argv)
}

type recordingDisplay struct {
	headers  []string
	bodies   [][]string
	notices  []string
	warnings []string
}

func (d *recordingDisplay) ShowHunk(header string, body []string) {
	d.headers = append(d.headers, header)
	d.bodies = append(d.bodies, body)
}

func (d *recordingDisplay) Notice(msg string) { d.notices = append(d.notices, msg) }

func (d *recordingDisplay) Warn(msg string) { d.warnings = append(d.warnings, msg) }

type fakePager struct {
	titles []string
	pages  [][]string
}

func (p *fakePager) Page(title string, lines []string) error {
	p.titles = append(p.titles, title)
	p.pages = append(p.pages, lines)
	return nil
}

type harness struct {
	prompter *scriptedPrompter
	runner   *fakeRunner
	display  *recordingDisplay
	pager    *fakePager
	strategy Strategy
	tempDir  string
}

func newHarness(t *testing.T, inputs ...string) *harness {
	t.Helper()
	return &harness{
		prompter: &scriptedPrompter{inputs: inputs},
		runner:   &fakeRunner{},
		display:  &recordingDisplay{},
		pager:    &fakePager{},
		strategy: Mirrored,
		tempDir:  t.TempDir(),
	}
}

func (h *harness) engine() *Engine {
	return New(Options{
		Prompter: h.prompter,
		Runner:   h.runner,
		Display:  h.display,
		Pager:    h.pager,
		Strategy: h.strategy,
		Editor:   []string{"ed", "-s"},
		Shell:    "/bin/sh",
		TempDir:  h.tempDir,
	})
}

func (h *harness) merge(diff, first, second string) (string, Summary, error) {
	var out strings.Builder
	summary, err := h.engine().Merge(context.Background(),
		strings.NewReader(diff), strings.NewReader(first), strings.NewReader(second), &out)
	return out.String(), summary, err
}
