package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/dshills/sentencenav/internal/app"
	"github.com/dshills/sentencenav/internal/config"
)

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	logLevel   string
	logFile    string
	noEnv      bool
}

func newRootCmd() *cobra.Command {
	g := &globalFlags{}
	edit := &editFlags{}

	root := &cobra.Command{
		Use:   "sentencenav [file]",
		Short: "Sentence navigation for markdown files",
		Long: `sentencenav edits markdown files a sentence at a time.

Sentences are found per line by a configurable regular expression. Commands
delete, select and move by sentence; the pattern can be changed at run time
and is saved to the data file.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			if g.logLevel == "" {
				return nil
			}
			switch g.logLevel {
			case "debug", "info", "warn", "error":
				return nil
			}
			return fmt.Errorf("invalid log level %q (must be debug, info, warn, or error)", g.logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, edit, args)
		},
	}

	pf := root.PersistentFlags()
	pf.StringVarP(&g.configPath, "config", "c", "", "config file (default "+config.DefaultPath()+")")
	pf.StringVar(&g.logLevel, "log-level", "", "log level: debug, info, warn, error")
	pf.StringVar(&g.logFile, "log-file", "", "write logs to this file")
	pf.BoolVar(&g.noEnv, "no-env", false, "ignore SENTENCENAV_* environment variables")
	edit.register(root)

	root.AddCommand(
		newEditCmd(g),
		newRunCmd(g),
		newSpansCmd(g),
		newPatternCmd(g),
		newKeysCmd(g),
	)
	return root
}

// appOptions builds application options from the global flags. The
// returned closer releases the log file.
func (g *globalFlags) appOptions(stderr io.Writer) (app.Options, func(), error) {
	opts := app.Options{
		ConfigPath: g.configPath,
		LogLevel:   g.logLevel,
		LogOutput:  stderr,
		DisableEnv: g.noEnv,
	}
	if g.logFile == "" {
		return opts, func() {}, nil
	}
	f, err := os.OpenFile(g.logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return opts, nil, fmt.Errorf("opening log file: %w", err)
	}
	opts.LogOutput = f
	return opts, func() { f.Close() }, nil
}

// loadConfig loads settings the way the editor does, for commands that
// only need configuration.
func (g *globalFlags) loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := g.configPath
	if path == "" {
		path = config.DefaultPath()
	}
	cfg := config.New(config.WithPath(path), config.WithEnv(!g.noEnv))
	if err := cfg.Load(cmd.Context()); err != nil {
		return nil, err
	}
	return cfg, nil
}
