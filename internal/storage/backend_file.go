package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// FileBackend stores each key as a small file under dir. Writes go to a
// temporary file that is renamed over the target.
type FileBackend struct {
	fs  afero.Fs
	dir string
}

// NewFileBackend creates a FileBackend rooted at dir on fs.
func NewFileBackend(fs afero.Fs, dir string) *FileBackend {
	return &FileBackend{fs: fs, dir: dir}
}

func (backend *FileBackend) Get(key string) ([]byte, bool, error) {
	data, err := afero.ReadFile(backend.fs, backend.path(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("read %s: %w", key, err)
	}
	return data, true, nil
}

func (backend *FileBackend) Put(key string, value []byte) error {
	if err := backend.fs.MkdirAll(backend.dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}
	target := backend.path(key)
	temp := target + ".tmp"
	if err := afero.WriteFile(backend.fs, temp, value, 0o600); err != nil {
		return fmt.Errorf("write %s: %w", key, err)
	}
	if err := backend.fs.Rename(temp, target); err != nil {
		_ = backend.fs.Remove(temp)
		return fmt.Errorf("replace %s: %w", key, err)
	}
	return nil
}

func (backend *FileBackend) Delete(key string) error {
	if err := backend.fs.Remove(backend.path(key)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", key, err)
	}
	return nil
}

func (backend *FileBackend) path(key string) string {
	name := strings.NewReplacer("/", "_", "\\", "_", "..", "_").Replace(key)
	return filepath.Join(backend.dir, name+".yaml")
}
