// Package app wires the register and rectangle engines to one document and
// its configuration.
package app

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"
	"sync/atomic"

	"github.com/dshills/sbp/internal/command"
	"github.com/dshills/sbp/internal/config"
	"github.com/dshills/sbp/internal/engine"
	"github.com/dshills/sbp/internal/interact"
	plua "github.com/dshills/sbp/internal/plugin/lua"
	"github.com/dshills/sbp/internal/rectangle"
	"github.com/dshills/sbp/internal/register"
	"github.com/dshills/sbp/internal/view"
)

// Application owns one document and the components acting on it.
type Application struct {
	mu sync.RWMutex

	config  *config.Config
	logger  *Logger
	logFile io.Closer

	doc       *Document
	panel     *view.Panel
	store     *register.Store
	registers *interact.Controller
	rects     *rectangle.Editor
	commands  *command.Registry
	lua       *plua.State

	closed atomic.Bool
	opts   Options
}

// Options configures the application.
type Options struct {
	// Config is the loaded configuration. Nil means defaults.
	Config *config.Config

	// Path is the file to edit. Empty opens a scratch document.
	Path string

	// ReadOnly opens the document in read-only mode.
	ReadOnly bool

	// LogOutput receives log lines when the config names no log file.
	// Nil discards them.
	LogOutput io.Writer

	// ScriptOutput receives print output from Lua scripts. Defaults to
	// os.Stdout.
	ScriptOutput io.Writer
}

// New creates an Application and opens its document.
func New(opts Options) (*Application, error) {
	cfg := opts.Config
	if cfg == nil {
		d := config.Defaults()
		cfg = &d
	}

	app := &Application{
		config: cfg,
		opts:   opts,
	}
	if err := app.bootstrap(); err != nil {
		app.closeLog()
		return nil, err
	}
	return app, nil
}

// bootstrap initializes components in dependency order.
func (app *Application) bootstrap() error {
	cfg := app.config

	// 1. Logging
	if err := app.initLogger(cfg.Log); err != nil {
		return NewComponentError("log", "open", err)
	}

	// 2. Document
	engineOpts := []engine.Option{
		engine.WithMaxUndoEntries(cfg.Editor.MaxUndoEntries),
		engine.WithViewportHeight(cfg.Editor.ViewportHeight),
		engine.WithLogger(app.logger.WithComponent("engine")),
	}
	if app.opts.Path == "" {
		app.doc = NewScratchDocument(engineOpts...)
	} else {
		doc, err := OpenDocument(app.opts.Path, app.opts.ReadOnly, engineOpts...)
		if err != nil {
			return err
		}
		app.doc = doc
	}
	surface := app.doc.Engine

	// 3. Registers
	app.store = register.NewStore()
	if path := cfg.Registers.PersistFile; path != "" {
		if err := register.LoadFile(app.store, path); err != nil {
			app.logger.Warn("registers not restored: %v", err)
		}
	}

	// 4. Prompt panel and engines
	app.panel = view.NewPanel()
	app.registers = interact.NewController(app.store, surface, app.panel,
		interact.WithLogger(app.logger.WithComponent("registers")),
		interact.WithLabels(cfg.Prompts.Capture, cfg.Prompts.Insert),
		interact.WithCaptureOnConfirm(cfg.Registers.CaptureOnConfirm),
	)
	app.rects = rectangle.NewEditor(surface, app.panel,
		rectangle.WithLogger(app.logger.WithComponent("rectangle")),
		rectangle.WithContentLabel(cfg.Rectangle.ContentLabel),
	)

	// 5. Commands
	app.commands = command.NewRegistry(&command.Env{
		Surface:    surface,
		Viewport:   surface,
		Registers:  app.registers,
		Rectangles: app.rects,
		Logger:     app.logger.WithComponent("command"),
	})
	if err := command.RegisterBuiltins(app.commands); err != nil {
		return NewComponentError("command", "register builtins", err)
	}

	// 6. Scripting
	if cfg.Plugins.Enabled {
		out := app.opts.ScriptOutput
		if out == nil {
			out = os.Stdout
		}
		app.lua = plua.NewState(plua.WithOutput(out))
		plua.Install(app.lua, &plua.API{
			Surface:    surface,
			Store:      app.store,
			Registers:  app.registers,
			Rectangles: app.rects,
			Commands:   app.commands,
			Logger:     app.logger.WithComponent("lua"),
		})
	}

	app.logger.Debug("application ready: document=%s", app.doc.Name)
	return nil
}

func (app *Application) initLogger(cfg config.LogConfig) error {
	var out io.Writer = io.Discard
	if app.opts.LogOutput != nil {
		out = app.opts.LogOutput
	}
	if cfg.File != "" {
		f, err := OpenLogFile(cfg.File)
		if err != nil {
			return err
		}
		app.logFile = f
		out = f
	}

	lc := DefaultLoggerConfig()
	lc.Level = ParseLogLevel(cfg.Level)
	lc.Output = out
	app.logger = NewLogger(lc)
	return nil
}

// Config returns the active configuration.
func (app *Application) Config() *config.Config {
	app.mu.RLock()
	defer app.mu.RUnlock()
	return app.config
}

// Logger returns the application's logger.
func (app *Application) Logger() *Logger {
	return app.logger
}

// Document returns the open document.
func (app *Application) Document() *Document {
	return app.doc
}

// Engine returns the document's engine.
func (app *Application) Engine() *engine.Engine {
	return app.doc.Engine
}

// Panel returns the prompt panel.
func (app *Application) Panel() *view.Panel {
	return app.panel
}

// Store returns the register store.
func (app *Application) Store() *register.Store {
	return app.store
}

// Registers returns the register prompt controller.
func (app *Application) Registers() *interact.Controller {
	return app.registers
}

// Rectangles returns the rectangle editor.
func (app *Application) Rectangles() *rectangle.Editor {
	return app.rects
}

// Commands returns the command registry.
func (app *Application) Commands() *command.Registry {
	return app.commands
}

// ApplyConfig switches to cfg. Settings that only matter at startup, such
// as the register file and plugin scripts, take effect on the next run.
func (app *Application) ApplyConfig(cfg *config.Config) {
	if cfg == nil {
		return
	}

	app.mu.Lock()
	app.config = cfg
	app.mu.Unlock()

	app.logger.SetLevel(ParseLogLevel(cfg.Log.Level))
	app.registers.SetLabels(cfg.Prompts.Capture, cfg.Prompts.Insert)
	app.registers.SetCaptureOnConfirm(cfg.Registers.CaptureOnConfirm)
	app.rects.SetContentLabel(cfg.Rectangle.ContentLabel)
	app.doc.Engine.SetViewportHeight(cfg.Editor.ViewportHeight)

	app.logger.Info("configuration applied from %q", cfg.Source)
}

// RunCommand runs a registered command against the document.
func (app *Application) RunCommand(id string, args command.Args) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if err := app.commands.Run(id, args); err != nil {
		app.logger.WithField("command", id).Warn("command failed: %v", err)
		return NewOperationError("run", id, err)
	}
	return nil
}

// RunScript executes a Lua file against the document.
func (app *Application) RunScript(ctx context.Context, path string) error {
	if app.closed.Load() {
		return ErrClosed
	}
	if app.lua == nil {
		return NewOperationError("script", path, ErrPluginsDisabled)
	}
	if err := app.lua.DoFile(ctx, path); err != nil {
		return NewOperationError("script", path, err)
	}
	return nil
}

// RunStartupScripts runs the scripts named in the config, in order. A
// failing script is logged and does not stop the others.
func (app *Application) RunStartupScripts(ctx context.Context) error {
	cfg := app.Config()
	if !cfg.Plugins.Enabled {
		return nil
	}

	var errs []error
	for _, path := range cfg.Plugins.Scripts {
		if err := app.RunScript(ctx, path); err != nil {
			app.logger.Error("startup script failed: %v", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Save writes the document and, when configured, the registers.
func (app *Application) Save() error {
	if err := app.doc.Save(); err != nil {
		return err
	}
	app.logger.Info("saved %s", app.doc.Path)
	return app.saveRegisters()
}

func (app *Application) saveRegisters() error {
	path := app.Config().Registers.PersistFile
	if path == "" {
		return nil
	}
	if err := register.SaveFile(app.store, path); err != nil {
		return NewComponentError("registers", "save", err)
	}
	return nil
}

// Close persists the registers and releases the script state and log
// file. Close is idempotent.
func (app *Application) Close() error {
	if !app.closed.CompareAndSwap(false, true) {
		return nil
	}

	var errs []error
	if err := app.saveRegisters(); err != nil {
		errs = append(errs, err)
	}
	if app.lua != nil {
		if err := app.lua.Close(); err != nil {
			errs = append(errs, NewComponentError("lua", "close", err))
		}
	}
	if err := app.closeLog(); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

func (app *Application) closeLog() error {
	if app.logFile == nil {
		return nil
	}
	err := app.logFile.Close()
	app.logFile = nil
	if err != nil {
		return NewComponentError("log", "close", err)
	}
	return nil
}
