package settings

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
)

const (
	dirMode  = 0o755
	fileMode = 0o644
)

// Store is the key-value storage the settings are persisted in.
type Store interface {
	// LoadData returns the persisted data, or nil when nothing was saved.
	LoadData(ctx context.Context) ([]byte, error)
	SaveData(ctx context.Context, data []byte) error
}

// WritableFS is a file system that can also be written to.
// *memoryfs.FS satisfies it.
type WritableFS interface {
	fs.FS
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(name string, perm fs.FileMode) error
}

// FileStore persists settings as a single file of a WritableFS.
type FileStore struct {
	FS   WritableFS
	Name string
}

var _ Store = (*FileStore)(nil)

func (s *FileStore) LoadData(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := fs.ReadFile(s.FS, s.Name)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}

	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", s.Name, err)
	}

	return data, nil
}

func (s *FileStore) SaveData(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if dir := path.Dir(s.Name); dir != "." {
		if err := s.FS.MkdirAll(dir, dirMode); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if err := s.FS.WriteFile(s.Name, data, fileMode); err != nil {
		return fmt.Errorf("writing %s: %w", s.Name, err)
	}

	return nil
}

type dirFS struct {
	fs.FS
	root string
}

// DirFS returns a WritableFS rooted at the OS directory root. The directory
// is created on the first write.
func DirFS(root string) WritableFS {
	return &dirFS{FS: os.DirFS(root), root: root}
}

func (d *dirFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	full := d.join(name)

	if err := os.MkdirAll(filepath.Dir(full), dirMode); err != nil {
		return err
	}

	return os.WriteFile(full, data, perm)
}

func (d *dirFS) MkdirAll(name string, perm fs.FileMode) error {
	return os.MkdirAll(d.join(name), perm)
}

func (d *dirFS) join(name string) string {
	return filepath.Join(d.root, filepath.FromSlash(name))
}
