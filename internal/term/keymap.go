package term

import (
	"fmt"
	"sort"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/dshills/sbp/internal/command"
)

// Terminal actions that are not registry commands.
const (
	ActionSave        = "editor.save"
	ActionQuit        = "editor.quit"
	ActionUndo        = "editor.undo"
	ActionRedo        = "editor.redo"
	ActionSetMark     = "editor.set_mark"
	ActionPalette     = "editor.palette"
	ActionMoveLeft    = "cursor.left"
	ActionMoveRight   = "cursor.right"
	ActionMoveUp      = "cursor.up"
	ActionMoveDown    = "cursor.down"
	ActionLineStart   = "cursor.line_start"
	ActionLineEnd     = "cursor.line_end"
	ActionBufferStart = "cursor.buffer_start"
	ActionBufferEnd   = "cursor.buffer_end"
	ActionNewline     = "edit.newline"
	ActionBackspace   = "edit.backspace"
)

// Binding maps a space-separated key sequence to an action.
type Binding struct {
	Keys   string
	Action string
}

// Keymap resolves key sequences to actions.
type Keymap struct {
	bindings map[string]string
	prefixes map[string]bool
}

// NewKeymap creates an empty keymap.
func NewKeymap() *Keymap {
	return &Keymap{
		bindings: make(map[string]string),
		prefixes: make(map[string]bool),
	}
}

// Add binds keys to action. A sequence cannot be both bound and a prefix
// of another binding.
func (k *Keymap) Add(keys, action string) error {
	seq := strings.Fields(keys)
	if len(seq) == 0 {
		return fmt.Errorf("empty key sequence for %q", action)
	}
	norm := strings.Join(seq, " ")
	if k.prefixes[norm] {
		return fmt.Errorf("key sequence %q is a prefix of another binding", norm)
	}
	for i := 1; i < len(seq); i++ {
		p := strings.Join(seq[:i], " ")
		if _, bound := k.bindings[p]; bound {
			return fmt.Errorf("key sequence %q shadows binding %q", norm, p)
		}
	}

	k.bindings[norm] = action
	for i := 1; i < len(seq); i++ {
		k.prefixes[strings.Join(seq[:i], " ")] = true
	}
	return nil
}

// Lookup returns the action bound to seq and whether seq is the prefix of
// a longer binding.
func (k *Keymap) Lookup(seq []string) (action string, prefix bool) {
	norm := strings.Join(seq, " ")
	return k.bindings[norm], k.prefixes[norm]
}

// Bindings returns every binding sorted by key sequence.
func (k *Keymap) Bindings() []Binding {
	out := make([]Binding, 0, len(k.bindings))
	for keys, action := range k.bindings {
		out = append(out, Binding{Keys: keys, Action: action})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Keys < out[j].Keys })
	return out
}

// DefaultBindings returns the Emacs-style default bindings.
func DefaultBindings() []Binding {
	return []Binding{
		{"C-space", ActionSetMark},
		{"C-g", command.CancelMark},
		{"C-x r s", command.RegisterStore},
		{"C-x r i", command.RegisterInsert},
		{"C-x r d", command.RectangleDelete},
		{"C-x r t", command.RectangleInsert},
		{"C-o", command.OpenLine},
		{"C-l", command.RecenterInView},
		{"C-x C-s", ActionSave},
		{"C-x C-c", ActionQuit},
		{"C-/", ActionUndo},
		{"C-x u", ActionUndo},
		{"M-/", ActionRedo},
		{"M-x", ActionPalette},
		{"C-b", ActionMoveLeft},
		{"C-f", ActionMoveRight},
		{"C-p", ActionMoveUp},
		{"C-n", ActionMoveDown},
		{"C-a", ActionLineStart},
		{"C-e", ActionLineEnd},
		{"M-<", ActionBufferStart},
		{"M->", ActionBufferEnd},
		{"Left", ActionMoveLeft},
		{"Right", ActionMoveRight},
		{"Up", ActionMoveUp},
		{"Down", ActionMoveDown},
		{"Home", ActionLineStart},
		{"End", ActionLineEnd},
		{"Enter", ActionNewline},
		{"Backspace", ActionBackspace},
	}
}

// DefaultKeymap returns a keymap holding DefaultBindings.
func DefaultKeymap() *Keymap {
	k := NewKeymap()
	for _, b := range DefaultBindings() {
		if err := k.Add(b.Keys, b.Action); err != nil {
			panic(err)
		}
	}
	return k
}

// KeyName describes ev in keymap notation, such as "C-x", "M-<" or "r".
// Plain printable runes have no modifier prefix.
func KeyName(ev *tcell.EventKey) string {
	var name string
	ctrl := ev.Modifiers()&tcell.ModCtrl != 0

	switch ev.Key() {
	case tcell.KeyRune:
		name = string(ev.Rune())
		if ctrl {
			name = "C-" + name
		}
		if ev.Modifiers()&tcell.ModAlt != 0 {
			name = "M-" + name
		}
		return name
	case tcell.KeyCtrlSpace:
		return "C-space"
	case tcell.KeyCtrlUnderscore:
		return "C-/"
	case tcell.KeyEnter:
		name = "Enter"
	case tcell.KeyTab:
		name = "Tab"
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		name = "Backspace"
	case tcell.KeyEscape:
		name = "Escape"
	case tcell.KeyLeft:
		name = "Left"
	case tcell.KeyRight:
		name = "Right"
	case tcell.KeyUp:
		name = "Up"
	case tcell.KeyDown:
		name = "Down"
	case tcell.KeyHome:
		name = "Home"
	case tcell.KeyEnd:
		name = "End"
	case tcell.KeyDelete:
		name = "Delete"
	default:
		if k := ev.Key(); k >= tcell.KeyCtrlA && k <= tcell.KeyCtrlZ {
			name = "C-" + string(rune('a'+k-tcell.KeyCtrlA))
		} else {
			name = ev.Name()
		}
	}
	if ev.Modifiers()&tcell.ModAlt != 0 {
		name = "M-" + name
	}
	return name
}
