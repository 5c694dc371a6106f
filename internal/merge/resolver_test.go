package merge

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAction(t *testing.T) {
	tests := []struct {
		input   string
		act     action
		command string
	}{
		{"<", actFirst, ""},
		{"  >  ", actSecond, ""},
		{"<<", actFirst, ""},
		{"e", actManual, ""},
		{"edit", actManual, ""},
		{"!ls -l", actShell, "ls -l"},
		{"!", actShell, ""},
		{"v", actView, ""},
		{"use-first", actFirst, ""},
		{"use-second", actSecond, ""},
		{"manual", actManual, ""},
		{"view", actView, ""},
		{"shell-escape make test", actShell, "make test"},
		{"", actUnknown, ""},
		{"q", actUnknown, ""},
		{"use-third", actUnknown, ""},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			act, command := parseAction(tt.input)
			assert.Equal(t, tt.act, act)
			assert.Equal(t, tt.command, command)
		})
	}
}

const (
	changeDiff   = "2c2\n< b\n---\n> x\n"
	changeFirst  = "a\nb\nc\n"
	changeSecond = "a\nx\nc\n"
)

func TestResolver_UnknownInputReprompts(t *testing.T) {
	h := newHarness(t, "x", "", "<")

	got, _, err := h.merge(changeDiff, changeFirst, changeSecond)
	require.NoError(t, err)
	assert.Equal(t, changeFirst, got)
	assert.Equal(t, 3, h.prompter.prompts)
	assert.Equal(t, 2, countOf(h.display.notices, usageHint))
	assert.Empty(t, h.runner.calls)
}

func TestResolver_ShellEscape(t *testing.T) {
	h := newHarness(t, "!echo hi", "!", "shell-escape ls -l", ">")

	got, summary, err := h.merge(changeDiff, changeFirst, changeSecond)
	require.NoError(t, err)
	assert.Equal(t, changeSecond, got, "shell output never reaches the merged file")
	assert.Equal(t, [][]string{
		{"/bin/sh", "-c", "echo hi"},
		{"/bin/sh"},
		{"/bin/sh", "-c", "ls -l"},
	}, h.runner.calls)
	assert.Equal(t, 3, countOf(h.display.notices, "!"))
	require.Len(t, summary.Outcomes, 1)
	assert.Equal(t, UseSecond, summary.Outcomes[0].Choice)
}

func TestResolver_ShellEscapeFailureKeepsHunkOpen(t *testing.T) {
	h := newHarness(t, "!false", "<")
	h.runner.run = func([]string) error { return errors.New("exit status 1") }

	got, _, err := h.merge(changeDiff, changeFirst, changeSecond)
	require.NoError(t, err)
	assert.Equal(t, changeFirst, got)
	require.Len(t, h.display.warnings, 1)
	assert.Contains(t, h.display.warnings[0], "exit status 1")
}

func TestResolver_View(t *testing.T) {
	h := newHarness(t, "v", "<")

	_, _, err := h.merge(changeDiff, changeFirst, changeSecond)
	require.NoError(t, err)
	assert.Equal(t, []string{"2c2"}, h.pager.titles)
	assert.Equal(t, [][]string{{"< b\n", "---\n", "> x\n"}}, h.pager.pages)
}

func TestResolver_ViewWithoutPager(t *testing.T) {
	display := &recordingDisplay{}
	engine := New(Options{
		Prompter: &scriptedPrompter{inputs: []string{"view", ">"}},
		Runner:   &fakeRunner{},
		Display:  display,
		Shell:    "/bin/sh",
	})

	var out strings.Builder
	_, err := engine.Merge(context.Background(), strings.NewReader(changeDiff),
		strings.NewReader(changeFirst), strings.NewReader(changeSecond), &out)
	require.NoError(t, err)
	assert.Equal(t, []string{"2c2", "2c2"}, display.headers, "view falls back to showing the hunk again")
}

func TestResolver_OutcomeLines(t *testing.T) {
	h := newHarness(t, ">")

	_, summary, err := h.merge("3c3\n< c\n---\n> z\n", "a\nb\nc\nd\n", "a\nb\nz\nd\n")
	require.NoError(t, err)
	require.Len(t, summary.Outcomes, 1)
	o := summary.Outcomes[0]
	assert.Equal(t, 3, o.Lines, "the unchanged lines before the hunk are written with it")
	assert.Equal(t, 1, summary.TailLines)
}

func countOf(items []string, want string) int {
	n := 0
	for _, item := range items {
		if item == want {
			n++
		}
	}
	return n
}
