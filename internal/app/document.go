package app

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/dshills/sbp/internal/engine"
)

// Document is a file and the engine editing it.
type Document struct {
	// Path is the absolute file path (empty for scratch buffers).
	Path string

	// Name is the display name (filename or "Untitled").
	Name string

	// Engine is the text buffer and editing engine.
	Engine *engine.Engine

	// ReadOnly indicates the document cannot be edited.
	ReadOnly bool

	mode fs.FileMode
}

// OpenDocument loads path into a new engine. A missing file opens as an
// empty document that is created on the first save.
func OpenDocument(path string, readOnly bool, opts ...engine.Option) (*Document, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, NewOperationError("open", path, err)
	}

	mode := fs.FileMode(0o644)
	data, err := os.ReadFile(absPath)
	switch {
	case err == nil:
		if info, statErr := os.Stat(absPath); statErr == nil {
			mode = info.Mode().Perm()
		}
	case errors.Is(err, fs.ErrNotExist):
		data = nil
	default:
		return nil, NewOperationError("open", absPath, err)
	}

	if readOnly {
		opts = append(opts, engine.WithReadOnly())
	}
	opts = append(opts, engine.WithContent(string(data)))

	return &Document{
		Path:     absPath,
		Name:     filepath.Base(absPath),
		Engine:   engine.New(opts...),
		ReadOnly: readOnly,
		mode:     mode,
	}, nil
}

// NewScratchDocument creates a document with no file.
func NewScratchDocument(opts ...engine.Option) *Document {
	return &Document{
		Name:   "Untitled",
		Engine: engine.New(opts...),
		mode:   0o644,
	}
}

// IsModified returns true if the document has unsaved changes.
func (d *Document) IsModified() bool {
	return d.Engine.Modified()
}

// IsScratch returns true if this is a scratch buffer (no file path).
func (d *Document) IsScratch() bool {
	return d.Path == ""
}

// Content returns the full document content.
func (d *Document) Content() string {
	return d.Engine.Text()
}

// Save writes the document to its path.
func (d *Document) Save() error {
	if d.IsScratch() {
		return NewOperationError("save", d.Name, ErrNoPath)
	}
	return d.SaveAs(d.Path)
}

// SaveAs writes the document to path and makes path its file. The content
// goes to a temporary sibling first and is renamed into place.
func (d *Document) SaveAs(path string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return NewOperationError("save", path, err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), "."+filepath.Base(absPath)+".*")
	if err != nil {
		return NewOperationError("save", absPath, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.WriteString(d.Engine.Text()); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return NewOperationError("save", absPath, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return NewOperationError("save", absPath, err)
	}
	if err := os.Chmod(tmpName, d.mode); err != nil {
		os.Remove(tmpName)
		return NewOperationError("save", absPath, err)
	}
	if err := os.Rename(tmpName, absPath); err != nil {
		os.Remove(tmpName)
		return NewOperationError("save", absPath, fmt.Errorf("replacing file: %w", err))
	}

	d.Path = absPath
	d.Name = filepath.Base(absPath)
	d.Engine.MarkSaved()
	return nil
}
