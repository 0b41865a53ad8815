package main

import (
	"errors"

	"github.com/spf13/cobra"
)

func newRunCmd(g *globals) *cobra.Command {
	var (
		script string
		from   string
		to     string
		write  bool
	)

	cmd := &cobra.Command{
		Use:   "run FILE --script SCRIPT",
		Short: "Run a Lua script against FILE",
		Long: `Run a Lua script against FILE and print the resulting text.

The script sees the sbp table: sbp.registers, sbp.rect, sbp.run and the
selection helpers. --from and --to set the selection before the script
starts. Script print output goes to stderr.`,
		Example: `  sbp run notes.txt --script upcase-rect.lua --from 1:1 --to 4:10
  sbp run notes.txt --script fill.lua -w`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if script == "" {
				return errors.New("--script is required")
			}

			a, err := g.openBatch(cmd, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			if from != "" {
				if err := selectRange(a, from, to); err != nil {
					return err
				}
			}
			if err := a.RunScript(cmd.Context(), script); err != nil {
				return err
			}
			return finish(cmd, a, write)
		},
	}
	cmd.Flags().StringVarP(&script, "script", "s", "", "Lua script to run")
	cmd.Flags().StringVar(&from, "from", "", "selection anchor as LINE:COL (1-based)")
	cmd.Flags().StringVar(&to, "to", "", "selection head as LINE:COL (1-based)")
	cmd.Flags().BoolVarP(&write, "write", "w", false, "save the result to FILE instead of printing it")
	return cmd
}
