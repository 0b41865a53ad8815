package register

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// fileVersion is written into every register file.
const fileVersion = 1

type registerFile struct {
	Version   int               `yaml:"version"`
	Registers map[string]string `yaml:"registers"`
}

// SaveFile writes every register to path as YAML. The file is written to a
// temporary sibling first and renamed into place.
func SaveFile(s *Store, path string) error {
	data, err := yaml.Marshal(registerFile{
		Version:   fileVersion,
		Registers: s.Snapshot(),
	})
	if err != nil {
		return fmt.Errorf("encoding registers: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("creating register directory: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("writing registers: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("writing registers: %w", err)
	}
	return nil
}

// LoadFile restores registers saved by SaveFile. A missing file is not an
// error.
func LoadFile(s *Store, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("reading registers %s: %w", path, err)
	}

	var f registerFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("parsing registers %s: %w", path, err)
	}
	if f.Version > fileVersion {
		return fmt.Errorf("register file %s has unsupported version %d", path, f.Version)
	}

	s.Restore(f.Registers)
	return nil
}
