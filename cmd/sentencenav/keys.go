package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/sentencenav/internal/app"
	"github.com/dshills/sentencenav/internal/input/fuzzy"
	"github.com/dshills/sentencenav/internal/input/keymap"
)

func newKeysCmd(g *globalFlags) *cobra.Command {
	var keymapFile string
	cmd := &cobra.Command{
		Use:   "keys [QUERY]",
		Short: "List key bindings, including overrides and plugin keys",
		Long: `Keys lists the active key bindings grouped by category. With QUERY only
bindings whose action fuzzy-matches it are shown, best match first.`,
		Example: `  sentencenav keys
  sentencenav keys selnext`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, closeLog, err := g.appOptions(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer closeLog()
			opts.KeymapFile = keymapFile
			if opts.LogLevel == "" {
				opts.LogLevel = "warn"
			}

			a, err := app.New(cmd.Context(), opts)
			if err != nil {
				return err
			}
			defer a.Close()

			bindings := a.Keymap().Bindings()
			if len(args) == 1 {
				bindings = filterBindings(bindings, args[0])
				if len(bindings) == 0 {
					return fmt.Errorf("no bindings match %q", args[0])
				}
			}

			out := cmd.OutOrStdout()
			st := newStyles(out)
			for i, cat := range keymap.GroupByCategory(bindings) {
				if i > 0 {
					fmt.Fprintln(out)
				}
				name := cat.Name
				if name == "" {
					name = "Other"
				}
				fmt.Fprintln(out, st.heading.Render(name))
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				for _, b := range cat.Bindings {
					fmt.Fprintf(tw, "  %s\t%s\t%s\n", b.Keys, b.Action, st.dim.Render(b.Description))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&keymapFile, "keymap", "", "JSON keymap replacing the built-in bindings")
	return cmd
}

// filterBindings keeps the bindings whose action matches query, ordered by
// match score.
func filterBindings(bindings []keymap.Binding, query string) []keymap.Binding {
	actions := make([]string, len(bindings))
	for i, b := range bindings {
		actions[i] = b.Action
	}
	var out []keymap.Binding
	for _, r := range fuzzy.NewMatcher(fuzzy.DefaultOptions()).Match(query, actions, 0) {
		out = append(out, bindings[r.Index])
	}
	return out
}
