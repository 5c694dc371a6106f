package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/corpeningc/idiff/internal/config"
	"github.com/corpeningc/idiff/internal/diff"
	"github.com/corpeningc/idiff/internal/logging"
	"github.com/corpeningc/idiff/internal/merge"
	"github.com/corpeningc/idiff/internal/run"
	"github.com/corpeningc/idiff/internal/ui"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// session holds everything a merge talks to outside the two files.
type session struct {
	cfg      *config.Config
	logger   *zap.Logger
	prompter ui.Prompter
	runner   merge.Runner
	display  merge.Display
	pager    merge.Pager
	differ   diff.Differ
	// confirm is asked before replacing an existing output file; nil overwrites.
	confirm func(path string) (bool, error)
}

type sessionBuilder func(cfg *config.Config, logger *zap.Logger) *session

var rootCmd = newRootCmd(terminalSession)

func Execute() error {
	return rootCmd.Execute()
}

func newRootCmd(build sessionBuilder) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "idiff file1 file2",
		Short: "Interactively merge two files hunk by hunk",
		Long: `idiff runs diff on file1 and file2 and shows each hunk in turn.
For every hunk choose "<" to keep file1's lines, ">" to keep file2's lines,
"e" to edit both versions, "!cmd" to run a shell command or "v" to page the hunk.
The merged result is written to idiff.out unless -o says otherwise.`,
		Args:          cobra.ExactArgs(2),
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true

			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			logger, err := logging.New(cfg.Debug)
			if err != nil {
				return fmt.Errorf("creating logger: %w", err)
			}
			defer logger.Sync() //nolint:errcheck

			s := build(cfg, logger)
			defer func() {
				if err := s.prompter.Close(); err != nil {
					logger.Warn("closing prompt", zap.Error(err))
				}
			}()
			return s.merge(cmd.Context(), args[0], args[1])
		},
	}
	config.RegisterFlags(cmd.Flags())
	return cmd
}

func terminalSession(cfg *config.Config, logger *zap.Logger) *session {
	styled := cfg.Color && ui.IsTerminal(os.Stdout)
	ui.SetColor(styled)
	view := ui.NewHunkView(os.Stdout, styled)

	s := &session{
		cfg:      cfg,
		logger:   logger,
		prompter: ui.NewPrompter(os.Stdin, os.Stdout),
		runner:   run.New(logger),
		display:  view,
		differ:   newDiffer(cfg, logger),
	}
	if ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout) {
		s.pager = &ui.TeaPager{View: view}
		s.confirm = ui.ConfirmOverwrite
	}
	return s
}

func newDiffer(cfg *config.Config, logger *zap.Logger) diff.Differ {
	if cfg.UseBuiltinDiff() {
		return diff.Builtin{}
	}
	return diff.NewCommand(cfg.Diff, logger)
}

func (s *session) merge(ctx context.Context, path1, path2 string) (err error) {
	output := s.cfg.Output
	if err := checkDistinct(output, path1, path2); err != nil {
		return err
	}

	var cleanup *multierror.Error
	defer func() {
		if cleanup.ErrorOrNil() != nil {
			s.logger.Warn("cleaning up", zap.Error(cleanup))
		}
	}()
	closeFile := func(f *os.File) {
		if err := f.Close(); err != nil {
			cleanup = multierror.Append(cleanup, err)
		}
	}

	first, err := os.Open(path1)
	if err != nil {
		return fmt.Errorf("can't open %s: %w", path1, err)
	}
	defer closeFile(first)

	second, err := os.Open(path2)
	if err != nil {
		return fmt.Errorf("can't open %s: %w", path2, err)
	}
	defer closeFile(second)

	if ok, err := s.mayWrite(output); err != nil || !ok {
		if err == nil {
			ui.Info("idiff: %s left unchanged", output)
		}
		return err
	}

	diffs, err := diff.ToTempFile(ctx, s.differ, "", path1, path2)
	if err != nil {
		return fmt.Errorf("running diff: %w", err)
	}
	defer func() {
		closeFile(diffs)
		if err := os.Remove(diffs.Name()); err != nil {
			cleanup = multierror.Append(cleanup, err)
		}
	}()

	out, err := os.Create(output)
	if err != nil {
		return fmt.Errorf("can't open %s: %w", output, err)
	}
	defer func() {
		if closeErr := out.Close(); closeErr != nil && err == nil {
			err = fmt.Errorf("closing %s: %w", output, closeErr)
		}
	}()

	engine := merge.New(merge.Options{
		Prompter: s.prompter,
		Runner:   s.runner,
		Display:  s.display,
		Pager:    s.pager,
		Strategy: s.cfg.Strategy,
		Editor:   s.cfg.Editor,
		Shell:    s.cfg.Shell,
		Logger:   s.logger,
	})
	summary, err := engine.Merge(ctx, diffs, first, second, out)
	if err != nil {
		return err
	}

	report(output, summary)
	return nil
}

// mayWrite reports whether output can be created or replaced.
func (s *session) mayWrite(output string) (bool, error) {
	if s.cfg.Force || s.confirm == nil {
		return true, nil
	}
	if _, err := os.Stat(output); errors.Is(err, os.ErrNotExist) {
		return true, nil
	}
	return s.confirm(output)
}

func checkDistinct(output string, inputs ...string) error {
	outAbs, err := filepath.Abs(output)
	if err != nil {
		return err
	}
	outInfo, statErr := os.Stat(output)
	for _, in := range inputs {
		inAbs, err := filepath.Abs(in)
		if err != nil {
			return err
		}
		same := inAbs == outAbs
		if !same && statErr == nil {
			if inInfo, err := os.Stat(in); err == nil {
				same = os.SameFile(inInfo, outInfo)
			}
		}
		if same {
			return fmt.Errorf("output file %s is also an input; choose another with -o", output)
		}
	}
	return nil
}

func report(output string, summary merge.Summary) {
	ui.Info("idiff: output in file %s", output)
	if len(summary.Outcomes) == 0 {
		return
	}
	ui.CountColor.Fprintf(ui.Out, "%d hunks: %d use-first, %d use-second, %d manual\n",
		len(summary.Outcomes),
		summary.Count(merge.UseFirst),
		summary.Count(merge.UseSecond),
		summary.Count(merge.Manual))
}

