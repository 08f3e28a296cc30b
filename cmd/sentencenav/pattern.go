package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/sentencenav/internal/config"
	"github.com/dshills/sentencenav/internal/sentence"
)

func newPatternCmd(g *globalFlags) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "pattern",
		Short: "Show, change or reset the sentence pattern",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "show",
			Short: "Print the effective pattern and where it comes from",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := g.loadConfig(cmd)
				if err != nil {
					return err
				}
				defer cfg.Close()

				origin, err := patternOrigin(cfg)
				if err != nil {
					return err
				}
				st := newStyles(cmd.OutOrStdout())
				fmt.Fprintln(cmd.OutOrStdout(), cfg.Sentence().Pattern)
				fmt.Fprintln(cmd.OutOrStdout(), st.dim.Render("from "+origin))
				return nil
			},
		},
		&cobra.Command{
			Use:   "set PATTERN",
			Short: "Validate PATTERN and save it to the data file",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := sentence.Validate(args[0]); err != nil {
					return err
				}
				cfg, err := g.loadConfig(cmd)
				if err != nil {
					return err
				}
				defer cfg.Close()

				ds := cfg.DataStore()
				if args[0] == sentence.DefaultPatternSource {
					err = ds.ResetPatternSource()
				} else {
					err = ds.SetPatternSource(args[0])
				}
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "saved to %s\n", ds.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "reset",
			Short: "Remove the saved pattern so the default applies",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				cfg, err := g.loadConfig(cmd)
				if err != nil {
					return err
				}
				defer cfg.Close()

				ds := cfg.DataStore()
				if err := ds.ResetPatternSource(); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "reset in %s\n", ds.Path())
				return nil
			},
		},
		&cobra.Command{
			Use:   "test TEXT...",
			Short: "Print the sentences the effective pattern finds in TEXT",
			Args:  cobra.MinimumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				cfg, err := g.loadConfig(cmd)
				if err != nil {
					return err
				}
				defer cfg.Close()

				p, err := sentence.Compile(cfg.Sentence().Pattern)
				if err != nil {
					return err
				}
				return printSpans(cmd.OutOrStdout(), strings.NewReader(strings.Join(args, " ")), p)
			},
		},
	)
	return cmd
}

// patternOrigin names the source that set the effective pattern.
func patternOrigin(cfg *config.Config) (string, error) {
	effective := cfg.Sentence().Pattern
	saved, ok, err := cfg.DataStore().PatternSource()
	if err != nil {
		return "", err
	}
	switch {
	case ok && saved == effective:
		return "data file " + cfg.DataStore().Path(), nil
	case effective == sentence.DefaultPatternSource:
		return "default", nil
	default:
		return "config " + cfg.Path() + " or environment", nil
	}
}
