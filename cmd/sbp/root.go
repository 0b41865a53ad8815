package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dshills/sbp/internal/app"
	"github.com/dshills/sbp/internal/config"
	"github.com/dshills/sbp/internal/host"
)

// globals holds state shared by every subcommand.
type globals struct {
	configPath string
	logLevel   string

	loader *config.Loader
	cfg    *config.Config
}

func newRootCmd() *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:   "sbp",
		Short: "Emacs-style registers and rectangles for plain text files",
		Long: `sbp edits text files with Emacs-style registers and rectangle commands.

Run "sbp edit FILE" for the interactive editor, or use the rect and run
commands to apply the same operations from scripts.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return g.loadConfig(cmd)
		},
	}
	root.SetVersionTemplate(fmt.Sprintf("sbp %s (commit %s, built %s)\n", version, commit, date))

	root.PersistentFlags().StringVarP(&g.configPath, "config", "c", "",
		"config file (default: .sbp/config.* or the user config directory)")
	root.PersistentFlags().StringVar(&g.logLevel, "log-level", "",
		"log level (debug, info, warn, error)")

	root.AddCommand(
		newEditCmd(g),
		newRectCmd(g),
		newRunCmd(g),
		newRegistersCmd(g),
		newConfigCmd(g),
		newVersionCmd(),
	)
	return root
}

func (g *globals) loadConfig(cmd *cobra.Command) error {
	g.loader = config.NewLoader(g.configPath)
	if f := cmd.Flags().Lookup("log-level"); f != nil {
		if err := g.loader.Viper().BindPFlag("log.level", f); err != nil {
			return err
		}
	}

	cfg, err := g.loader.Load()
	if err != nil {
		return err
	}
	g.cfg = cfg
	return nil
}

// openBatch opens path for a non-interactive command. Logs go to stderr.
func (g *globals) openBatch(cmd *cobra.Command, path string) (*app.Application, error) {
	return app.New(app.Options{
		Config:       g.cfg,
		Path:         path,
		LogOutput:    cmd.ErrOrStderr(),
		ScriptOutput: cmd.ErrOrStderr(),
	})
}

// position is a 1-based line and column as typed on the command line.
type position struct {
	line, col int
}

func parsePosition(s string) (position, error) {
	lineStr, colStr, ok := strings.Cut(s, ":")
	if !ok {
		colStr = "1"
	}
	line, err := strconv.Atoi(lineStr)
	if err != nil || line < 1 {
		return position{}, fmt.Errorf("invalid position %q: line must be a positive number", s)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil || col < 1 {
		return position{}, fmt.Errorf("invalid position %q: column must be a positive number", s)
	}
	return position{line: line, col: col}, nil
}

// offset converts p to a byte offset on s, clipping like the host does.
func (p position) offset(s host.LineIndex) int64 {
	return s.TextPoint(p.line-1, p.col-1)
}

// selectRange parses from and to and selects the span between them. An
// empty to selects from the start position only.
func selectRange(a *app.Application, from, to string) error {
	start, err := parsePosition(from)
	if err != nil {
		return err
	}
	end := start
	if to != "" {
		if end, err = parsePosition(to); err != nil {
			return err
		}
	}
	e := a.Engine()
	e.SetSelections(host.NewRegion(start.offset(e), end.offset(e)))
	return nil
}

// finish saves the document when write is set and prints it otherwise.
func finish(cmd *cobra.Command, a *app.Application, write bool) error {
	if write {
		return a.Save()
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), a.Engine().Text())
	return err
}
