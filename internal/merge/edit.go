package merge

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"

	"go.uber.org/zap"
)

// Bridge resolves a hunk through an external editor. The scratch file it
// stages holds the unchanged lines since the last hunk, the first file's
// block, a "---" line, and the second file's block.
type Bridge struct {
	Editor  []string
	Runner  Runner
	Display Display
	TempDir string
	Logger  *zap.Logger
}

// Edit stages h, runs the editor on the scratch file and copies the edited
// file into out. The scratch file is removed before Edit returns.
func (b *Bridge) Edit(ctx context.Context, h Hunk, src Sources, ledger *Ledger, out *Output) error {
	scratch, err := os.CreateTemp(b.TempDir, "idiff-edit-*")
	if err != nil {
		return fmt.Errorf("creating scratch file: %w", err)
	}
	path := scratch.Name()
	defer func() {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			b.Logger.Warn("removing scratch file", zap.String("path", path), zap.Error(err))
		}
	}()

	prefix, err := b.stage(scratch, h, ledger, src)
	if closeErr := scratch.Close(); err == nil && closeErr != nil {
		err = fmt.Errorf("closing scratch file %s: %w", path, closeErr)
	}
	if err != nil {
		return err
	}

	argv := append(append([]string{}, b.Editor...), path)
	if err := b.Runner.Run(ctx, argv); err != nil {
		b.Logger.Debug("editor failed", zap.Strings("argv", argv), zap.Error(err))
		b.Display.Warn(fmt.Sprintf("editor: %v; keeping only the unchanged lines before %s", err, h))
		for _, line := range prefix {
			if err := out.WriteLine(line); err != nil {
				return err
			}
		}
		return nil
	}

	edited, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("reopening scratch file: %w", err)
	}
	defer edited.Close()

	n, err := NewLineReader(edited).CopyAll(out)
	if err != nil {
		return fmt.Errorf("copying edited lines from %s: %w", path, err)
	}
	b.Logger.Debug("manual edit copied", zap.Stringer("hunk", h), zap.Int("lines", n))
	return nil
}

// stage writes the scratch file and returns the unchanged prefix it holds.
func (b *Bridge) stage(w io.Writer, h Hunk, ledger *Ledger, src Sources) ([]string, error) {
	consumed1, consumed2 := ledger.Consumed()
	staged := NewOutput(w)

	prefix, err := src.First.Collect(h.Start1() - 1 - consumed1)
	if err != nil {
		return nil, fmt.Errorf("reading lines before %s: %w", h, err)
	}
	for _, line := range prefix {
		if err := staged.WriteLine(line); err != nil {
			return nil, err
		}
	}
	if _, err := src.Second.Skip(h.Start2() - 1 - consumed2); err != nil {
		return nil, fmt.Errorf("skipping lines before %s: %w", h, err)
	}

	if _, err := src.First.Copy(staged, h.To1+1-h.Start1()); err != nil {
		return nil, fmt.Errorf("staging first block of %s: %w", h, err)
	}
	if err := staged.WriteLine(separator); err != nil {
		return nil, err
	}
	if _, err := src.Second.Copy(staged, h.To2+1-h.Start2()); err != nil {
		return nil, fmt.Errorf("staging second block of %s: %w", h, err)
	}
	return prefix, staged.Flush()
}
