package diff

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/hashicorp/go-multierror"
	"go.uber.org/zap"
)

// Differ writes the differences between two files in the normal diff
// format ("2c2", "< old", "---", "> new").
type Differ interface {
	Diff(ctx context.Context, path1, path2 string, w io.Writer) error
}

// Command runs an external diff program. Exit status 1 means the files
// differ and is not an error.
type Command struct {
	Program string
	Logger  *zap.Logger
}

func NewCommand(program string, logger *zap.Logger) *Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Command{Program: program, Logger: logger}
}

func (c *Command) Diff(ctx context.Context, path1, path2 string, w io.Writer) error {
	cmd := exec.CommandContext(ctx, c.Program, path1, path2)

	var stderr bytes.Buffer
	cmd.Stdout = w
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		err = nil
	}
	c.Logger.Debug("diff finished",
		zap.String("program", c.Program),
		zap.String("path1", path1),
		zap.String("path2", path2),
		zap.Error(err))
	return formatCommandError(c.Program, err, stderr)
}

func formatCommandError(operation string, err error, stderr bytes.Buffer) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s failed: %w\nStderr: %s", operation, err, stderr.String())
}

// ToTempFile runs d into a new temporary file in dir and returns it rewound
// to the start. The caller closes and removes it.
func ToTempFile(ctx context.Context, d Differ, dir, path1, path2 string) (*os.File, error) {
	f, err := os.CreateTemp(dir, "idiff-diff-*")
	if err != nil {
		return nil, fmt.Errorf("creating diff file: %w", err)
	}

	err = d.Diff(ctx, path1, path2, f)
	if err == nil {
		_, err = f.Seek(0, io.SeekStart)
	}
	if err != nil {
		var result error = err
		if closeErr := f.Close(); closeErr != nil {
			result = multierror.Append(result, closeErr)
		}
		if removeErr := os.Remove(f.Name()); removeErr != nil {
			result = multierror.Append(result, removeErr)
		}
		return nil, result
	}
	return f, nil
}
