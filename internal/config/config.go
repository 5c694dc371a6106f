package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/corpeningc/idiff/internal/merge"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	keyOutput   = "output"
	keyEditor   = "editor"
	keyShell    = "shell"
	keyDiff     = "diff"
	keyStrategy = "strategy"
	keyForce    = "force"
	keyColor    = "color"
	keyDebug    = "debug"

	envPrefix = "IDIFF"
	fileName  = ".idiff"

	// BuiltinDiff selects the in-process diff renderer instead of a command.
	BuiltinDiff = "builtin"
)

type Config struct {
	Output   string
	Editor   []string
	Shell    string
	Diff     string
	Strategy merge.Strategy
	Force    bool
	Color    bool
	Debug    bool
}

// RegisterFlags adds the idiff flags to fs.
func RegisterFlags(fs *pflag.FlagSet) {
	fs.StringP(keyOutput, "o", "idiff.out", "file to write the merged result to")
	fs.String(keyEditor, "ed", "editor used for manual edits")
	fs.String(keyShell, "/bin/sh", "shell used for ! escapes")
	fs.String(keyDiff, "diff", `diff program, or "builtin"`)
	fs.String(keyStrategy, string(merge.Mirrored), "how < and > select lines (mirrored, legacy)")
	fs.BoolP(keyForce, "f", false, "overwrite the output file without asking")
	fs.Bool(keyColor, true, "color hunks and messages")
	fs.Bool(keyDebug, false, "write debug logs to stderr")
}

// Load merges flags, IDIFF_* environment variables and an optional .idiff.yaml.
// The config file is looked up in searchPaths, or the home directory when
// none are given.
func Load(flags *pflag.FlagSet, searchPaths ...string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if err := v.BindPFlags(flags); err != nil {
		return nil, fmt.Errorf("binding flags: %w", err)
	}

	if len(searchPaths) == 0 {
		if home, err := os.UserHomeDir(); err == nil {
			searchPaths = append(searchPaths, home)
		}
	}
	v.SetConfigName(fileName)
	v.SetConfigType("yaml")
	for _, p := range searchPaths {
		v.AddConfigPath(p)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
	}

	strategy, err := merge.ParseStrategy(v.GetString(keyStrategy))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Output:   v.GetString(keyOutput),
		Editor:   strings.Fields(v.GetString(keyEditor)),
		Shell:    strings.TrimSpace(v.GetString(keyShell)),
		Diff:     strings.TrimSpace(v.GetString(keyDiff)),
		Strategy: strategy,
		Force:    v.GetBool(keyForce),
		Color:    v.GetBool(keyColor),
		Debug:    v.GetBool(keyDebug),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch {
	case c.Output == "":
		return errors.New("output file name is empty")
	case len(c.Editor) == 0:
		return errors.New("editor is empty")
	case c.Shell == "":
		return errors.New("shell is empty")
	case c.Diff == "":
		return errors.New("diff program is empty")
	}
	if _, err := merge.ParseStrategy(string(c.Strategy)); err != nil {
		return err
	}
	return nil
}

// UseBuiltinDiff reports whether the in-process renderer should produce the diff.
func (c *Config) UseBuiltinDiff() bool {
	return c.Diff == BuiltinDiff
}
