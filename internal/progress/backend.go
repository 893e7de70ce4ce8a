package progress

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Backend stores the encoded progress blob. A Load that finds nothing
// returns nil data and a nil error.
type Backend interface {
	Load() ([]byte, error)
	Save(data []byte) error
}

// MemoryBackend keeps the blob in memory. It is used when no database is
// available and in tests.
type MemoryBackend struct {
	data []byte
}

// NewMemoryBackend returns a backend preloaded with data (may be nil).
func NewMemoryBackend(data []byte) *MemoryBackend {
	return &MemoryBackend{data: append([]byte(nil), data...)}
}

// Load returns a copy of the stored blob.
func (m *MemoryBackend) Load() ([]byte, error) {
	if m.data == nil {
		return nil, nil
	}
	return append([]byte(nil), m.data...), nil
}

// Save replaces the stored blob.
func (m *MemoryBackend) Save(data []byte) error {
	m.data = append([]byte(nil), data...)
	return nil
}

// Bytes returns the raw stored blob.
func (m *MemoryBackend) Bytes() []byte {
	return m.data
}

// FileBackend stores the blob as a JSON file.
type FileBackend struct {
	Path string
}

// Load reads the file. A missing file is not an error.
func (f FileBackend) Load() ([]byte, error) {
	data, err := os.ReadFile(f.Path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("progress: cannot read %s: %w", f.Path, err)
	}
	return data, nil
}

// Save writes the file through a temporary file and a rename so a crash
// never leaves a truncated blob.
func (f FileBackend) Save(data []byte) error {
	dir := filepath.Dir(f.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("progress: cannot create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".progress-*")
	if err != nil {
		return fmt.Errorf("progress: cannot create temp file: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck // Best-effort cleanup, gone after rename

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("progress: cannot write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("progress: cannot close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), f.Path); err != nil {
		return fmt.Errorf("progress: cannot replace %s: %w", f.Path, err)
	}
	return nil
}
