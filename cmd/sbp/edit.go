package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/dshills/sbp/internal/app"
	"github.com/dshills/sbp/internal/config"
	"github.com/dshills/sbp/internal/term"
)

func newEditCmd(g *globals) *cobra.Command {
	var (
		readOnly bool
		noWatch  bool
	)

	cmd := &cobra.Command{
		Use:   "edit [FILE]",
		Short: "Open FILE in the terminal editor",
		Long: `Open FILE in the terminal editor. A missing FILE is created on save.

Keys:
  C-space      set mark           C-x r s   copy to register
  C-g          cancel             C-x r i   insert register
  C-o          open line          C-x r d   delete rectangle
  C-l          recenter           C-x r t   string rectangle
  C-/  M-/     undo, redo         M-x       run a command by name
  C-x C-s      save               C-x C-c   quit`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var path string
			if len(args) == 1 {
				path = args[0]
			}
			return runEdit(g, path, readOnly, !noWatch)
		},
	}
	cmd.Flags().BoolVarP(&readOnly, "read-only", "R", false, "open the file read-only")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "do not reload the config file when it changes")
	return cmd
}

func runEdit(g *globals, path string, readOnly, watch bool) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(app.Options{
		Config:       g.cfg,
		Path:         path,
		ReadOnly:     readOnly,
		ScriptOutput: io.Discard,
	})
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.RunStartupScripts(ctx); err != nil {
		a.Logger().Warn("startup scripts: %v", err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("creating terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("initializing terminal: %w", err)
	}
	defer screen.Fini()
	screen.EnablePaste()

	t := term.New(screen, a)

	if watch && g.loader.Path() != "" {
		w := config.NewWatcher(g.loader)
		logger := a.Logger().WithComponent("config")
		go func() {
			err := w.Run(ctx, func(cfg *config.Config, err error) {
				if err != nil {
					logger.Warn("config reload failed: %v", err)
					return
				}
				t.PostConfig(cfg)
			})
			if err != nil {
				logger.Warn("config watcher stopped: %v", err)
			}
		}()
	}

	return t.Run(ctx)
}
