package register

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"pgregory.net/rapid"
)

func TestGetUnsetIsEmpty(t *testing.T) {
	s := NewStore()

	if got := s.Get("a"); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
	if s.Contains("a") {
		t.Error("unset register should not be contained")
	}
}

func TestStoreEmptyValueIsContained(t *testing.T) {
	s := NewStore()
	s.Store("a", "")

	if !s.Contains("a") {
		t.Error("a register stored with an empty value should exist")
	}
	if s.Get("a") != "" {
		t.Errorf("expected empty value, got %q", s.Get("a"))
	}
}

func TestStoreOverwrites(t *testing.T) {
	s := NewStore()
	s.Store("a", "first")
	s.Store("a", "second")

	if got := s.Get("a"); got != "second" {
		t.Errorf("expected last write to win, got %q", got)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 register, got %d", s.Len())
	}
}

func TestKeysSorted(t *testing.T) {
	s := NewStore()
	for _, k := range []string{"z", "a", "m"} {
		s.Store(k, k)
	}
	keys := s.Keys()
	if fmt.Sprint(keys) != "[a m z]" {
		t.Errorf("expected sorted keys, got %v", keys)
	}
}

func TestSnapshotIsCopy(t *testing.T) {
	s := NewStore()
	s.Store("a", "1")

	snap := s.Snapshot()
	snap["a"] = "changed"
	snap["b"] = "new"

	if s.Get("a") != "1" || s.Contains("b") {
		t.Error("mutating a snapshot must not affect the store")
	}
}

func TestConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i)
			for j := 0; j < 100; j++ {
				s.Store(key, fmt.Sprint(j))
				_ = s.Get(key)
				_ = s.Contains(key)
			}
		}(i)
	}
	wg.Wait()

	if s.Len() != 8 {
		t.Errorf("expected 8 registers, got %d", s.Len())
	}
}

func TestNeverStoredProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewStore()
		stored := rapid.MapOf(rapid.StringN(1, 3, -1), rapid.String()).Draw(rt, "stored")
		s.Restore(stored)

		probe := rapid.StringN(1, 3, -1).Draw(rt, "probe")
		if _, ok := stored[probe]; ok {
			return
		}
		if s.Get(probe) != "" || s.Contains(probe) {
			rt.Fatalf("register %q was never stored", probe)
		}
	})
}

func TestStoreGetProperty(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		s := NewStore()
		key := rapid.String().Draw(rt, "key")
		v1 := rapid.String().Draw(rt, "v1")
		v2 := rapid.String().Draw(rt, "v2")

		s.Store(key, v1)
		if s.Get(key) != v1 || !s.Contains(key) {
			rt.Fatalf("after Store(%q, %q): Get=%q Contains=%v", key, v1, s.Get(key), s.Contains(key))
		}
		s.Store(key, v2)
		if s.Get(key) != v2 {
			rt.Fatalf("expected later store to win: got %q want %q", s.Get(key), v2)
		}
	})
}

func TestSaveLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "registers.yaml")

	s := NewStore()
	s.Store("a", "hello\nworld")
	s.Store("b", "")
	if err := SaveFile(s, path); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded := NewStore()
	loaded.Store("c", "kept")
	if err := LoadFile(loaded, path); err != nil {
		t.Fatalf("load: %v", err)
	}

	if loaded.Get("a") != "hello\nworld" {
		t.Errorf("multi-line value not preserved: %q", loaded.Get("a"))
	}
	if !loaded.Contains("b") {
		t.Error("empty register should survive a round trip")
	}
	if loaded.Get("c") != "kept" {
		t.Error("load should merge into existing registers")
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := NewStore()
	if err := LoadFile(s, filepath.Join(t.TempDir(), "absent.yaml")); err != nil {
		t.Errorf("missing file should not be an error, got %v", err)
	}
}

func TestLoadRejectsNewerVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "registers.yaml")
	if err := os.WriteFile(path, []byte("version: 9\nregisters: {}\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := LoadFile(NewStore(), path); err == nil {
		t.Error("expected an error for an unsupported version")
	}
}
