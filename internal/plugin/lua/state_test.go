package lua

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	lua "github.com/yuin/gopher-lua"
)

func TestDoString(t *testing.T) {
	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoString(context.Background(), `x = 1 + 2`))
	assert.Equal(t, lua.LNumber(3), s.GetGlobal("x"))
}

func TestDoStringSyntaxError(t *testing.T) {
	s := NewState()
	defer s.Close()

	err := s.DoString(context.Background(), `x = `)
	assert.Error(t, err)
}

func TestDoFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "init.lua")
	require.NoError(t, os.WriteFile(path, []byte(`greeting = "hi " .. string.upper("there")`), 0o600))

	s := NewState()
	defer s.Close()

	require.NoError(t, s.DoFile(context.Background(), path))
	assert.Equal(t, lua.LString("hi THERE"), s.GetGlobal("greeting"))
}

func TestSandboxRemovesLoaders(t *testing.T) {
	s := NewState()
	defer s.Close()

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require", "io", "os", "debug"} {
		assert.Equal(t, lua.LNil, s.GetGlobal(name), "%s should not be available", name)
	}
	assert.NotEqual(t, lua.LNil, s.GetGlobal("string"))
	assert.NotEqual(t, lua.LNil, s.GetGlobal("table"))
	assert.NotEqual(t, lua.LNil, s.GetGlobal("math"))

	assert.Error(t, s.DoString(context.Background(), `require("os")`))
}

func TestPrintRedirect(t *testing.T) {
	var out bytes.Buffer
	s := NewState(WithOutput(&out))
	defer s.Close()

	require.NoError(t, s.DoString(context.Background(), `print("a", 1, true)`))
	assert.Equal(t, "a\t1\ttrue\n", out.String())
}

func TestExecutionTimeout(t *testing.T) {
	s := NewState(WithExecutionTimeout(50 * time.Millisecond))
	defer s.Close()

	err := s.DoString(context.Background(), `while true do end`)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrExecutionTimeout)

	// The state stays usable after a timeout.
	require.NoError(t, s.DoString(context.Background(), `y = 2`))
	assert.Equal(t, lua.LNumber(2), s.GetGlobal("y"))
}

func TestCancelledContext(t *testing.T) {
	s := NewState(WithExecutionTimeout(0))
	defer s.Close()

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := s.DoString(ctx, `while true do end`)
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrExecutionTimeout)
}

func TestClose(t *testing.T) {
	s := NewState()
	require.NoError(t, s.Close())
	require.NoError(t, s.Close())

	assert.True(t, s.IsClosed())
	assert.ErrorIs(t, s.DoString(context.Background(), `x = 1`), ErrStateClosed)
	assert.Equal(t, lua.LNil, s.GetGlobal("x"))
}
