package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/sentencenav/internal/sentence"
)

func newSpansCmd(g *globalFlags) *cobra.Command {
	var source string
	cmd := &cobra.Command{
		Use:   "spans [FILE|-]",
		Short: "Print the sentences found on each line",
		Long: `Spans prints every sentence the pattern finds, one per row, as
LINE START-END TEXT. Columns count characters from 0 and END is exclusive.
With no file, or "-", standard input is read.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if source == "" {
				cfg, err := g.loadConfig(cmd)
				if err != nil {
					return err
				}
				defer cfg.Close()
				source = cfg.Sentence().Pattern
			}
			p, err := sentence.Compile(source)
			if err != nil {
				return err
			}

			var r io.Reader = cmd.InOrStdin()
			if len(args) > 0 && args[0] != "-" {
				f, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer f.Close()
				r = f
			}
			return printSpans(cmd.OutOrStdout(), r, p)
		},
	}
	cmd.Flags().StringVarP(&source, "pattern", "p", "", "pattern to use instead of the configured one")
	return cmd
}

func printSpans(w io.Writer, r io.Reader, p *sentence.Pattern) error {
	st := newStyles(w)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 4*1024*1024)

	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSuffix(sc.Text(), "\r")
		runes := []rune(line)
		i := 0
		for span := range p.Spans(line) {
			where := st.dim.Render(fmt.Sprintf("%d %d-%d", n, span.Start, span.End))
			text := st.spans[i%2].Render(string(runes[span.Start:span.End]))
			if _, err := fmt.Fprintf(w, "%s %s\n", where, text); err != nil {
				return err
			}
			i++
		}
	}
	return sc.Err()
}
