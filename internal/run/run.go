package run

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"time"

	"go.uber.org/zap"
)

// Exec runs commands attached to the given streams, by default the
// process's own terminal.
type Exec struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	Logger *zap.Logger
}

func New(logger *zap.Logger) *Exec {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Exec{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		Logger: logger,
	}
}

// Run starts argv and waits for it. A non-zero exit is returned as an error
// wrapping *exec.ExitError.
func (e *Exec) Run(ctx context.Context, argv []string) error {
	if len(argv) == 0 {
		return errors.New("empty command")
	}

	cmd := exec.CommandContext(ctx, argv[0], argv[1:]...)
	cmd.Stdin = e.Stdin
	cmd.Stdout = e.Stdout
	cmd.Stderr = e.Stderr

	start := time.Now()
	err := cmd.Run()
	e.Logger.Debug("command finished",
		zap.Strings("argv", argv),
		zap.Duration("elapsed", time.Since(start)),
		zap.Error(err))
	if err != nil {
		return fmt.Errorf("%s: %w", argv[0], err)
	}
	return nil
}
