package app

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/dshills/sbp/internal/engine"
	"github.com/dshills/sbp/internal/host"
)

func TestOpenDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.txt")
	if err := os.WriteFile(path, []byte("one\ntwo"), 0o640); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path, false)
	if err != nil {
		t.Fatalf("OpenDocument() error: %v", err)
	}
	if doc.Name != "notes.txt" {
		t.Errorf("expected name notes.txt, got %q", doc.Name)
	}
	if doc.Content() != "one\ntwo" {
		t.Errorf("unexpected content %q", doc.Content())
	}
	if doc.IsModified() || doc.IsScratch() {
		t.Error("fresh file document should be clean and not scratch")
	}
}

func TestOpenDocumentMissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.txt")

	doc, err := OpenDocument(path, false)
	if err != nil {
		t.Fatalf("OpenDocument() error: %v", err)
	}
	if doc.Content() != "" {
		t.Errorf("expected empty content, got %q", doc.Content())
	}

	doc.Engine.Insert(0, "hello")
	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "hello" {
		t.Errorf("expected saved content, got %q", data)
	}
	if doc.IsModified() {
		t.Error("document should be clean after save")
	}
}

func TestSaveKeepsMode(t *testing.T) {
	path := filepath.Join(t.TempDir(), "script.sh")
	if err := os.WriteFile(path, []byte("echo"), 0o750); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path, false)
	if err != nil {
		t.Fatal(err)
	}
	doc.Engine.Insert(4, " hi")
	if err := doc.Save(); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if info.Mode().Perm() != 0o750 {
		t.Errorf("expected mode 0750, got %v", info.Mode().Perm())
	}
}

func TestOpenDocumentReadOnly(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ro.txt")
	if err := os.WriteFile(path, []byte("abc"), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := OpenDocument(path, true)
	if err != nil {
		t.Fatal(err)
	}
	doc.Engine.Replace(host.NewRegion(0, 1), "X")

	if doc.Content() != "abc" {
		t.Errorf("read-only document changed: %q", doc.Content())
	}
	if !errors.Is(doc.Engine.LastError(), engine.ErrReadOnly) {
		t.Errorf("expected ErrReadOnly, got %v", doc.Engine.LastError())
	}
}

func TestScratchDocumentSave(t *testing.T) {
	doc := NewScratchDocument()
	if !doc.IsScratch() || doc.Name != "Untitled" {
		t.Fatalf("unexpected scratch document %+v", doc)
	}

	err := doc.Save()
	if !errors.Is(err, ErrNoPath) {
		t.Errorf("expected ErrNoPath, got %v", err)
	}

	path := filepath.Join(t.TempDir(), "out.txt")
	doc.Engine.Insert(0, "x")
	if err := doc.SaveAs(path); err != nil {
		t.Fatalf("SaveAs() error: %v", err)
	}
	if doc.IsScratch() || doc.Name != "out.txt" {
		t.Errorf("SaveAs should attach the path, got %+v", doc)
	}
}

func TestOperationErrorFormat(t *testing.T) {
	err := NewOperationError("save", "/tmp/x", ErrNoPath)
	if err.Error() != "save /tmp/x: document has no path" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if !errors.Is(err, ErrNoPath) {
		t.Error("expected errors.Is to see the wrapped error")
	}

	ce := NewComponentError("lua", "close", nil)
	if ce.Error() != "lua: close" {
		t.Errorf("unexpected message %q", ce.Error())
	}
}
