package term

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/sbp/internal/command"
)

func TestKeymapLookup(t *testing.T) {
	k := DefaultKeymap()

	action, prefix := k.Lookup([]string{"C-x"})
	assert.Empty(t, action)
	assert.True(t, prefix)

	action, prefix = k.Lookup([]string{"C-x", "r"})
	assert.Empty(t, action)
	assert.True(t, prefix)

	action, prefix = k.Lookup([]string{"C-x", "r", "s"})
	assert.Equal(t, command.RegisterStore, action)
	assert.False(t, prefix)

	action, prefix = k.Lookup([]string{"q"})
	assert.Empty(t, action)
	assert.False(t, prefix)
}

func TestKeymapAddConflicts(t *testing.T) {
	k := NewKeymap()
	require.NoError(t, k.Add("C-c a", "one"))

	assert.Error(t, k.Add("C-c", "two"), "bound prefix")
	assert.Error(t, k.Add("C-c a b", "three"), "shadowed by binding")
	assert.Error(t, k.Add("  ", "empty"))

	require.NoError(t, k.Add("C-c  a", "replaced"))
	action, _ := k.Lookup([]string{"C-c", "a"})
	assert.Equal(t, "replaced", action)
}

func TestDefaultBindingsCoverBuiltins(t *testing.T) {
	bound := map[string]bool{}
	for _, b := range DefaultKeymap().Bindings() {
		bound[b.Action] = true
	}
	for _, cmd := range command.Builtins() {
		assert.True(t, bound[cmd.ID], "no key for %s", cmd.ID)
	}
}

func TestKeyName(t *testing.T) {
	tests := []struct {
		ev   *tcell.EventKey
		want string
	}{
		{tcell.NewEventKey(tcell.KeyRune, 'r', tcell.ModNone), "r"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModAlt), "M-x"},
		{tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModCtrl), "C-x"},
		{tcell.NewEventKey(tcell.KeyCtrlX, 0, tcell.ModCtrl), "C-x"},
		{tcell.NewEventKey(tcell.KeyCtrlSpace, 0, tcell.ModCtrl), "C-space"},
		{tcell.NewEventKey(tcell.KeyCtrlUnderscore, 0, tcell.ModCtrl), "C-/"},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), "Enter"},
		{tcell.NewEventKey(tcell.KeyBackspace2, 0, tcell.ModNone), "Backspace"},
		{tcell.NewEventKey(tcell.KeyLeft, 0, tcell.ModNone), "Left"},
		{tcell.NewEventKey(tcell.KeyEscape, 0, tcell.ModNone), "Escape"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyName(tt.ev))
	}
}
