package term

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sbp/internal/app"
	"github.com/dshills/sbp/internal/config"
	"github.com/dshills/sbp/internal/engine"
	"github.com/dshills/sbp/internal/host"
)

// Terminal drives an Application from a tcell screen. All of its methods
// except PostConfig must be called from the goroutine running Run.
type Terminal struct {
	screen tcell.Screen
	app    *app.Application
	keymap *Keymap

	pending   []string
	message   string
	quitArmed bool

	styles styles
}

type styles struct {
	text      tcell.Style
	selection tcell.Style
	status    tcell.Style
	prompt    tcell.Style
}

// Option configures a Terminal.
type Option func(*Terminal)

// WithKeymap replaces the default keymap.
func WithKeymap(k *Keymap) Option {
	return func(t *Terminal) {
		if k != nil {
			t.keymap = k
		}
	}
}

// New creates a terminal for a on screen. The screen must already be
// initialized.
func New(screen tcell.Screen, a *app.Application, opts ...Option) *Terminal {
	t := &Terminal{
		screen: screen,
		app:    a,
		keymap: DefaultKeymap(),
		styles: styles{
			text:      tcell.StyleDefault,
			selection: tcell.StyleDefault.Reverse(true),
			status:    tcell.StyleDefault.Reverse(true).Bold(true),
			prompt:    tcell.StyleDefault.Bold(true),
		},
	}
	for _, opt := range opts {
		opt(t)
	}
	t.resize()
	return t
}

// Message returns the text shown in the message line.
func (t *Terminal) Message() string {
	return t.message
}

// Pending returns the keys of an unfinished sequence.
func (t *Terminal) Pending() string {
	return strings.Join(t.pending, " ")
}

// configEvent carries a reloaded configuration into the event loop.
type configEvent struct {
	tcell.EventTime
	cfg *config.Config
}

// PostConfig hands a reloaded configuration to the event loop. It is safe
// to call from any goroutine.
func (t *Terminal) PostConfig(cfg *config.Config) {
	ev := &configEvent{cfg: cfg}
	ev.SetEventNow()
	_ = t.screen.PostEvent(ev)
}

// Run processes events until the user quits or ctx is done.
func (t *Terminal) Run(ctx context.Context) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = app.NewRecoveredPanicError(r, string(debug.Stack()))
		}
	}()

	go func() {
		<-ctx.Done()
		_ = t.screen.PostEvent(tcell.NewEventInterrupt(ctx.Err()))
	}()

	t.Draw()
	for {
		ev := t.screen.PollEvent()
		if ev == nil {
			return nil
		}
		if err := t.HandleEvent(ev); err != nil {
			if errors.Is(err, app.ErrQuit) {
				return nil
			}
			return err
		}
		t.Draw()
	}
}

// HandleEvent applies one screen event.
func (t *Terminal) HandleEvent(ev tcell.Event) error {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return t.HandleKey(ev)
	case *tcell.EventResize:
		t.resize()
		t.screen.Sync()
	case *configEvent:
		t.app.ApplyConfig(ev.cfg)
		t.resize()
		t.message = "Configuration reloaded"
	case *tcell.EventInterrupt:
		if err, ok := ev.Data().(error); ok && err != nil {
			return app.ErrQuit
		}
	}
	return nil
}

// HandleKey applies one key press.
func (t *Terminal) HandleKey(ev *tcell.EventKey) error {
	name := KeyName(ev)

	if t.app.Panel().Active() {
		t.promptKey(ev, name)
		return nil
	}

	t.message = ""
	seq := append(t.pending, name)
	action, prefix := t.keymap.Lookup(seq)
	switch {
	case prefix:
		t.pending = seq
		return nil
	case action != "":
		t.pending = nil
		err := t.dispatch(action)
		if action != ActionQuit {
			t.quitArmed = false
		}
		return err
	case len(t.pending) > 0:
		t.message = strings.Join(seq, " ") + " is undefined"
		t.pending = nil
		return nil
	}

	if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
		t.quitArmed = false
		t.engine().TypeText(string(ev.Rune()))
		t.engine().EnsureCursorVisible()
	}
	return nil
}

func (t *Terminal) promptKey(ev *tcell.EventKey, name string) {
	panel := t.app.Panel()
	switch name {
	case "Enter":
		panel.Confirm()
	case "Escape", "C-g":
		panel.Cancel()
	case "Backspace":
		panel.Backspace()
	default:
		if ev.Key() == tcell.KeyRune && ev.Modifiers()&(tcell.ModCtrl|tcell.ModAlt) == 0 {
			panel.TypeRune(ev.Rune())
		}
	}
	t.engine().EnsureCursorVisible()
}

func (t *Terminal) engine() *engine.Engine {
	return t.app.Engine()
}

func (t *Terminal) dispatch(action string) error {
	e := t.engine()

	switch action {
	case ActionSave:
		if err := t.app.Save(); err != nil {
			t.message = err.Error()
			return nil
		}
		t.message = "Wrote " + t.app.Document().Path
	case ActionQuit:
		if t.app.Document().IsModified() && !t.quitArmed {
			t.quitArmed = true
			t.message = fmt.Sprintf("%v; C-x C-c again to quit", app.ErrUnsavedChanges)
			return nil
		}
		return app.ErrQuit
	case ActionUndo:
		if err := e.Undo(); err != nil {
			t.message = err.Error()
		}
	case ActionRedo:
		if err := e.Redo(); err != nil {
			t.message = err.Error()
		}
	case ActionSetMark:
		e.SetMark()
		t.message = "Mark set"
	case ActionPalette:
		t.openPalette()
		return nil
	case ActionMoveLeft:
		e.MoveCursor(engine.MoveLeft)
	case ActionMoveRight:
		e.MoveCursor(engine.MoveRight)
	case ActionMoveUp:
		e.MoveCursor(engine.MoveUp)
	case ActionMoveDown:
		e.MoveCursor(engine.MoveDown)
	case ActionLineStart:
		e.MoveCursor(engine.MoveLineStart)
	case ActionLineEnd:
		e.MoveCursor(engine.MoveLineEnd)
	case ActionBufferStart:
		e.MoveCursor(engine.MoveBufferStart)
	case ActionBufferEnd:
		e.MoveCursor(engine.MoveBufferEnd)
	case ActionNewline:
		e.TypeText("\n")
	case ActionBackspace:
		e.DeleteBackward()
	default:
		if err := t.app.RunCommand(action, nil); err != nil {
			t.message = err.Error()
			return nil
		}
	}
	e.EnsureCursorVisible()
	return nil
}

// openPalette prompts for a command. The confirmed text runs the command
// with that ID, or else the best fuzzy match.
func (t *Terminal) openPalette() {
	panel := t.app.Panel()
	var id host.PromptID
	id = panel.OpenPrompt("M-x", "", host.PromptHandlers{
		OnConfirm: func(query string) {
			panel.ClosePrompt(id)
			t.runPaletteQuery(query)
		},
	})
}

func (t *Terminal) runPaletteQuery(query string) {
	query = strings.TrimSpace(query)
	if query == "" {
		return
	}
	reg := t.app.Commands()
	target := query
	if !reg.Has(query) {
		results := reg.Search(query, 1)
		if len(results) == 0 {
			t.message = fmt.Sprintf("No command matches %q", query)
			return
		}
		target = results[0].Command.ID
	}
	if err := t.app.RunCommand(target, nil); err != nil {
		t.message = err.Error()
	}
}

// resize fits the engine's viewport to the text area.
func (t *Terminal) resize() {
	_, h := t.screen.Size()
	t.engine().SetViewportHeight(max(h-2, 1))
	t.engine().EnsureCursorVisible()
}
