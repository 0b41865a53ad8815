package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/sbp/internal/command"
)

// rectFlags are shared by the rect subcommands.
type rectFlags struct {
	from  string
	to    string
	write bool
}

func (f *rectFlags) register(cmd *cobra.Command, withWrite bool) {
	cmd.Flags().StringVar(&f.from, "from", "", "first corner as LINE:COL (1-based)")
	cmd.Flags().StringVar(&f.to, "to", "", "opposite corner as LINE:COL (1-based)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")
	if withWrite {
		cmd.Flags().BoolVarP(&f.write, "write", "w", false, "save the result to FILE instead of printing it")
	}
}

func newRectCmd(g *globals) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rect",
		Short: "Apply rectangle commands to a file",
		Long: `Apply rectangle commands to a file.

A rectangle spans the rows between --from and --to and the columns between
their column numbers. Rows shorter than the rectangle are clipped.`,
	}
	cmd.AddCommand(newRectDeleteCmd(g), newRectInsertCmd(g), newRectShowCmd(g))
	return cmd
}

func newRectDeleteCmd(g *globals) *cobra.Command {
	var f rectFlags
	cmd := &cobra.Command{
		Use:   "delete FILE",
		Short: "Delete the rectangle",
		Example: `  sbp rect delete notes.txt --from 1:2 --to 3:5
  sbp rect delete notes.txt --from 1:2 --to 3:5 -w`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRect(g, cmd, args[0], &f, command.RectangleDelete, nil)
		},
	}
	f.register(cmd, true)
	return cmd
}

func newRectInsertCmd(g *globals) *cobra.Command {
	var (
		f       rectFlags
		content string
	)
	cmd := &cobra.Command{
		Use:   "insert FILE",
		Short: "Replace the rectangle with text on every row",
		Example: `  sbp rect insert table.txt --from 2:1 --to 9:1 --content "| "
  sbp rect insert table.txt --from 2:5 --to 9:8 --content "" -w`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRect(g, cmd, args[0], &f, command.RectangleInsert, command.Args{"content": content})
		},
	}
	f.register(cmd, true)
	cmd.Flags().StringVar(&content, "content", "", "text inserted on every row")
	return cmd
}

func newRectShowCmd(g *globals) *cobra.Command {
	var f rectFlags
	cmd := &cobra.Command{
		Use:   "show FILE",
		Short: "Print the text inside the rectangle, one row per line",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := g.openBatch(cmd, args[0])
			if err != nil {
				return err
			}
			defer a.Close()

			if err := selectRange(a, f.from, f.to); err != nil {
				return err
			}
			rows := a.Rectangles().Extract()
			if len(rows) == 0 {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(rows, "\n"))
			return err
		},
	}
	f.register(cmd, false)
	return cmd
}

func runRect(g *globals, cmd *cobra.Command, path string, f *rectFlags, id string, args command.Args) error {
	a, err := g.openBatch(cmd, path)
	if err != nil {
		return err
	}
	defer a.Close()

	if err := selectRange(a, f.from, f.to); err != nil {
		return err
	}
	if err := a.RunCommand(id, args); err != nil {
		return err
	}
	return finish(cmd, a, f.write)
}
