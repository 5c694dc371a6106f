package diff

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, first, second string) (string, string) {
	t.Helper()
	dir := t.TempDir()
	path1 := filepath.Join(dir, "first")
	path2 := filepath.Join(dir, "second")
	require.NoError(t, os.WriteFile(path1, []byte(first), 0o644))
	require.NoError(t, os.WriteFile(path2, []byte(second), 0o644))
	return path1, path2
}

func TestWriteNormal(t *testing.T) {
	tests := []struct {
		name   string
		first  string
		second string
		want   string
	}{
		{"identical", "a\nb\n", "a\nb\n", ""},
		{"both empty", "", "", ""},
		{"change", "a\nb\nc\n", "a\nx\nc\n", "2c2\n< b\n---\n> x\n"},
		{"change range", "a\nb\nc\nd\n", "a\nx\nd\n", "2,3c2\n< b\n< c\n---\n> x\n"},
		{"delete", "a\nb\n", "a\n", "2d1\n< b\n"},
		{"delete at start", "a\nb\n", "b\n", "1d0\n< a\n"},
		{"add", "a\n", "a\nb\n", "1a2\n> b\n"},
		{"add at start", "b\n", "a\nb\n", "0a1\n> a\n"},
		{"add to empty", "", "a\nb\n", "0a1,2\n> a\n> b\n"},
		{
			"missing final newline",
			"a\nb", "a\nc",
			"2c2\n< b\n\\ No newline at end of file\n---\n> c\n\\ No newline at end of file\n",
		},
		{
			"several hunks",
			"1\n2\n3\n4\n5\n6\n", "1\ntwo\n3\n5\n5.5\n6\n",
			"2c2\n< 2\n---\n> two\n4d3\n< 4\n5a5\n> 5.5\n",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out strings.Builder
			require.NoError(t, WriteNormal(&out, splitLines(tt.first), splitLines(tt.second)))
			assert.Equal(t, tt.want, out.String())
		})
	}
}

func TestSplitLines(t *testing.T) {
	assert.Nil(t, splitLines(""))
	assert.Equal(t, []string{"a\n", "b\n"}, splitLines("a\nb\n"))
	assert.Equal(t, []string{"a\n", "b"}, splitLines("a\nb"))
	assert.Equal(t, []string{"\n"}, splitLines("\n"))
}

func TestBuiltin_Diff(t *testing.T) {
	path1, path2 := writeFiles(t, "a\nb\nc\n", "a\nx\nc\n")

	var out strings.Builder
	require.NoError(t, Builtin{}.Diff(context.Background(), path1, path2, &out))
	assert.Equal(t, "2c2\n< b\n---\n> x\n", out.String())

	err := Builtin{}.Diff(context.Background(), filepath.Join(t.TempDir(), "missing"), path2, &out)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestToTempFile(t *testing.T) {
	path1, path2 := writeFiles(t, "a\n", "a\nb\n")
	dir := t.TempDir()

	f, err := ToTempFile(context.Background(), Builtin{}, dir, path1, path2)
	require.NoError(t, err)
	defer os.Remove(f.Name())
	defer f.Close()

	assert.Equal(t, dir, filepath.Dir(f.Name()))
	content, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "1a2\n> b\n", string(content))
}

func TestToTempFile_RemovesOnFailure(t *testing.T) {
	dir := t.TempDir()

	_, err := ToTempFile(context.Background(), Builtin{}, dir, filepath.Join(dir, "nope1"), filepath.Join(dir, "nope2"))
	require.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestCommand_Diff(t *testing.T) {
	program, err := exec.LookPath("diff")
	if err != nil {
		t.Skip("diff not installed")
	}
	cmd := NewCommand(program, nil)

	path1, path2 := writeFiles(t, "a\nb\nc\n", "a\nx\nc\n")
	var out strings.Builder
	require.NoError(t, cmd.Diff(context.Background(), path1, path2, &out), "differences are not an error")
	assert.NotEmpty(t, out.String())

	out.Reset()
	require.NoError(t, cmd.Diff(context.Background(), path1, path1, &out))
	assert.Empty(t, out.String())

	err = cmd.Diff(context.Background(), path1, filepath.Join(t.TempDir(), "missing"), &out)
	require.Error(t, err)
	assert.Contains(t, err.Error(), program+" failed")
}

func TestCommand_MissingProgram(t *testing.T) {
	path1, path2 := writeFiles(t, "a\n", "b\n")

	err := NewCommand("idiff-no-such-diff", nil).Diff(context.Background(), path1, path2, io.Discard)
	assert.ErrorContains(t, err, "idiff-no-such-diff failed")
}
