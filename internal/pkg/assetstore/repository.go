package assetstore

import (
	"errors"
	"os"
	"path/filepath"
	"sort"
	"sync"
)

// Repository is the narrow storage surface the asset store and the thumbnail
// resolver operate on. Keeping it small lets the resolution cascade be tested
// against an in-memory fake without touching real disk.
type Repository interface {
	Exists(name string) bool
	Read(name string) ([]byte, error)
	Write(name string, data []byte) error
	Delete(name string) error
	// List returns every stored asset name in sorted order. The sorted
	// listing is the canonical order the modulo fallback indexes into.
	List() ([]string, error)
	// Path returns the absolute path a stored asset is served from.
	Path(name string) string
}

// fsRepository stores assets as flat files under a single directory.
type fsRepository struct {
	dir string
}

func NewFSRepository(dir string) (Repository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, err
	}
	return &fsRepository{dir: abs}, nil
}

func (r *fsRepository) Exists(name string) bool {
	info, err := os.Stat(r.Path(name))
	return err == nil && !info.IsDir()
}

func (r *fsRepository) Read(name string) ([]byte, error) {
	return os.ReadFile(r.Path(name))
}

func (r *fsRepository) Write(name string, data []byte) error {
	return os.WriteFile(r.Path(name), data, 0o644)
}

func (r *fsRepository) Delete(name string) error {
	err := os.Remove(r.Path(name))
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func (r *fsRepository) List() ([]string, error) {
	entries, err := os.ReadDir(r.dir)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

func (r *fsRepository) Path(name string) string {
	// Asset names are flat; strip any directory components a caller-supplied
	// identifier might carry.
	return filepath.Join(r.dir, filepath.Base(name))
}

// memRepository is an in-memory Repository for tests.
type memRepository struct {
	mu    sync.RWMutex
	files map[string][]byte
}

func NewMemRepository() Repository {
	return &memRepository{files: make(map[string][]byte)}
}

func (r *memRepository) Exists(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.files[name]
	return ok
}

func (r *memRepository) Read(name string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.files[name]
	if !ok {
		return nil, os.ErrNotExist
	}
	return data, nil
}

func (r *memRepository) Write(name string, data []byte) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.files[name] = data
	return nil
}

func (r *memRepository) Delete(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.files, name)
	return nil
}

func (r *memRepository) List() ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.files))
	for name := range r.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func (r *memRepository) Path(name string) string {
	return filepath.Join("/mem", name)
}
