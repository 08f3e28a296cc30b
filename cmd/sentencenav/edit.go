package main

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/dshills/sentencenav/internal/app"
)

type editFlags struct {
	readOnly  bool
	keymap    string
	noPlugins bool
}

func (f *editFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.BoolVarP(&f.readOnly, "readonly", "R", false, "open the file read-only")
	fl.StringVar(&f.keymap, "keymap", "", "JSON keymap replacing the built-in bindings")
	fl.BoolVar(&f.noPlugins, "no-plugins", false, "do not load Lua plugins")
}

func newEditCmd(g *globalFlags) *cobra.Command {
	f := &editFlags{}
	cmd := &cobra.Command{
		Use:   "edit [file]",
		Short: "Open a file in the terminal editor",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runEdit(cmd, g, f, args)
		},
	}
	f.register(cmd)
	return cmd
}

func runEdit(cmd *cobra.Command, g *globalFlags, f *editFlags, args []string) error {
	// The terminal belongs to the editor; logs go to --log-file or nowhere.
	opts, closeLog, err := g.appOptions(io.Discard)
	if err != nil {
		return err
	}
	defer closeLog()

	if len(args) > 0 {
		opts.File = args[0]
	}
	opts.ReadOnly = f.readOnly
	opts.KeymapFile = f.keymap
	opts.DisablePlugins = f.noPlugins

	a, err := app.New(cmd.Context(), opts)
	if err != nil {
		return err
	}
	defer a.Close()

	return a.Run(cmd.Context())
}
