package main

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/sentencenav/internal/app"
	"github.com/dshills/sentencenav/internal/dispatcher"
	"github.com/dshills/sentencenav/internal/dispatcher/handler"
	"github.com/dshills/sentencenav/internal/engine"
	"github.com/dshills/sentencenav/internal/input"
	"github.com/dshills/sentencenav/internal/input/fuzzy"
	"github.com/dshills/sentencenav/internal/input/keymap"
)

type runFlags struct {
	at     string
	to     string
	write  bool
	dryRun bool
	stats  bool
}

func newRunCmd(g *globalFlags) *cobra.Command {
	f := &runFlags{}
	cmd := &cobra.Command{
		Use:   "run FILE ACTION[=TEXT]...",
		Short: "Apply actions to a file without the editor",
		Long: `Run opens FILE, places the cursor, runs each action in order and prints
the cursor line and selection afterwards. TEXT after "=" is passed as the
action's text argument, for instance sentence.setPattern=[^;]+ .

Positions are LINE:COLUMN, both starting at 1.`,
		Example: `  sentencenav run notes.md --at 1:21 sentence.deleteToEnd --write
  sentencenav run notes.md --at 3:5 sentence.select editor.copySelection`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runActions(cmd, g, f, args[0], args[1:])
		},
	}
	fl := cmd.Flags()
	fl.StringVar(&f.at, "at", "1:1", "cursor position")
	fl.StringVar(&f.to, "to", "", "selection head; --at becomes the anchor")
	fl.BoolVarP(&f.write, "write", "w", false, "save the file afterwards")
	fl.BoolVarP(&f.dryRun, "dry-run", "n", false, "report what each action would do")
	fl.BoolVar(&f.stats, "stats", false, "print dispatch timings per action")
	return cmd
}

func runActions(cmd *cobra.Command, g *globalFlags, f *runFlags, path string, actions []string) error {
	if f.write && f.dryRun {
		return errors.New("--write and --dry-run are exclusive")
	}
	anchor, err := parsePosition(f.at)
	if err != nil {
		return fmt.Errorf("--at: %w", err)
	}
	head := anchor
	if f.to != "" {
		if head, err = parsePosition(f.to); err != nil {
			return fmt.Errorf("--to: %w", err)
		}
	}

	opts, closeLog, err := g.appOptions(cmd.ErrOrStderr())
	if err != nil {
		return err
	}
	defer closeLog()
	opts.File = path
	opts.Metrics = f.stats
	if opts.LogLevel == "" {
		opts.LogLevel = "warn"
	}

	a, err := app.New(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	eng := a.Document().Engine
	eng.SetSelection(eng.ClampPoint(anchor), eng.ClampPoint(head))

	out := cmd.OutOrStdout()
	st := newStyles(out)
	failed := 0
	for _, spec := range actions {
		name, text, _ := strings.Cut(spec, "=")
		action := input.NewAction(name, input.SourceCLI).WithText(text)

		var result handler.Result
		if f.dryRun {
			result = a.DryRun(action)
		} else {
			result = a.Dispatch(action)
		}

		status := st.ok.Render(result.Status.String())
		if result.IsError() {
			status = st.fail.Render(result.Status.String())
			failed++
		}
		line := fmt.Sprintf("%s: %s", name, status)
		if msg := result.Text(); msg != "" {
			line += " " + st.dim.Render(msg)
		}
		if errors.Is(result.Error, dispatcher.ErrNoHandler) {
			if s := fuzzy.Suggest(name, knownActions(a), 1); len(s) > 0 {
				line += " " + st.dim.Render(fmt.Sprintf("(did you mean %s?)", s[0]))
			}
		}
		fmt.Fprintln(out, line)
	}

	sel := eng.Selection()
	fmt.Fprintf(out, "%s %s\n", st.heading.Render(fmt.Sprintf("line %d:", sel.Head.Line+1)), eng.Line(sel.Head.Line))
	if sel.IsEmpty() {
		fmt.Fprintf(out, "%s %s\n", st.heading.Render("cursor"), formatPosition(sel.Head))
	} else {
		fmt.Fprintf(out, "%s %s-%s %q\n", st.heading.Render("selection"),
			formatPosition(sel.Anchor), formatPosition(sel.Head), eng.SelectedText())
	}

	if m := a.Dispatcher().Metrics(); m != nil {
		printStats(out, st, m)
	}

	if f.write && eng.Modified() {
		if err := a.Document().Save(); err != nil {
			return err
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d actions failed", failed, len(actions))
	}
	return nil
}

func printStats(out io.Writer, st styles, m *dispatcher.Metrics) {
	fmt.Fprintf(out, "%s %d dispatched, %d failed\n", st.heading.Render("stats"),
		m.TotalDispatches(), m.TotalErrors())
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	for _, am := range m.TopActions(0) {
		fmt.Fprintf(tw, "  %s\t%d\t%s\n", am.Name, am.DispatchCount, am.AverageDuration())
	}
	tw.Flush()
}

// parsePosition parses a 1-based LINE:COLUMN. A missing column is 1.
func parsePosition(s string) (engine.Point, error) {
	ls, cs, hasCol := strings.Cut(s, ":")
	line, err := strconv.Atoi(ls)
	if err != nil || line < 1 {
		return engine.Point{}, fmt.Errorf("invalid line in %q", s)
	}
	col := 1
	if hasCol {
		if col, err = strconv.Atoi(cs); err != nil || col < 1 {
			return engine.Point{}, fmt.Errorf("invalid column in %q", s)
		}
	}
	return engine.Point{Line: line - 1, Column: col - 1}, nil
}

func formatPosition(p engine.Point) string {
	return fmt.Sprintf("%d:%d", p.Line+1, p.Column+1)
}

// knownActions lists the bound and default actions the application can
// dispatch, without duplicates.
func knownActions(a *app.Application) []string {
	var names []string
	seen := make(map[string]bool)
	for _, b := range append(a.Keymap().Bindings(), keymap.DefaultBindings()...) {
		if seen[b.Action] || !a.Dispatcher().CanDispatch(b.Action) {
			continue
		}
		seen[b.Action] = true
		names = append(names, b.Action)
	}
	return names
}
