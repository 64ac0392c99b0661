package gamepkg

import (
	"archive/zip"
	"bytes"
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/arcadehq/arcade/internal/pkg/utils/mime"
)

var (
	ErrInvalidArchive    = errors.New("uploaded file is not a valid zip archive")
	ErrNoPlayableContent = errors.New("archive contains no playable HTML content")
)

// Package describes one extracted game archive on disk.
type Package struct {
	// DirectoryToken is the opaque name of the package directory under the
	// games root. Together with EntryFile it is everything the static file
	// layer needs to serve the game.
	DirectoryToken string `json:"directory_token"`
	// EntryFile is the HTML file to load to start the game, relative to the
	// package root. Never absolute, never contains ".." segments.
	EntryFile string `json:"entry_file"`
}

// Extractor turns uploaded zip buffers into extracted package directories
// under a single games root.
type Extractor struct {
	root string
	log  *zap.Logger
}

func NewExtractor(root string, log *zap.Logger) *Extractor {
	return &Extractor{root: root, log: log}
}

// Root returns the games root directory packages are extracted under.
func (e *Extractor) Root() string { return e.root }

// Extract validates the archive, allocates a fresh token-named directory and
// unpacks the archive into it, then locates the playable entry file.
//
// Validation happens before anything is written so a doomed upload never
// leaves an orphaned directory behind. If extraction fails midway the partial
// directory is removed best-effort; a cleanup failure is logged and the
// original error is what the caller sees.
func (e *Extractor) Extract(ctx context.Context, archive []byte) (*Package, error) {
	if len(archive) == 0 {
		return nil, ErrInvalidArchive
	}
	if !mime.IsZip(archive) {
		return nil, ErrInvalidArchive
	}

	zr, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArchive, err)
	}

	entries, err := listEntries(zr)
	if err != nil {
		return nil, err
	}
	if !hasHTML(entries) {
		return nil, ErrNoPlayableContent
	}

	token, err := newToken()
	if err != nil {
		return nil, fmt.Errorf("generate directory token: %w", err)
	}
	dir := filepath.Join(e.root, token)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create package directory: %w", err)
	}

	if err := e.unpack(ctx, zr, dir); err != nil {
		e.cleanup(dir)
		return nil, err
	}

	entry, ok := findEntryFile(entries)
	if !ok {
		// Should not occur: hasHTML passed above.
		e.cleanup(dir)
		return nil, ErrNoPlayableContent
	}

	return &Package{DirectoryToken: token, EntryFile: entry}, nil
}

// listEntries returns the archive's file entries in listing order, rejecting
// any entry whose name could escape the package root. Directory entries are
// not listed but still get created at unpack time, so their names are held to
// the same rule.
func listEntries(zr *zip.Reader) ([]string, error) {
	entries := make([]string, 0, len(zr.File))
	for _, f := range zr.File {
		name := filepath.ToSlash(f.Name)
		if f.FileInfo().IsDir() {
			if !safeEntryName(strings.TrimSuffix(name, "/")) {
				return nil, fmt.Errorf("%w: unsafe entry path %q", ErrInvalidArchive, f.Name)
			}
			continue
		}
		if !safeEntryName(name) {
			return nil, fmt.Errorf("%w: unsafe entry path %q", ErrInvalidArchive, f.Name)
		}
		entries = append(entries, name)
	}
	return entries, nil
}

// safeEntryName reports whether a zip entry name is a local relative path
// that stays inside the package directory once joined with it.
func safeEntryName(name string) bool {
	if name == "" || strings.Contains(name, "\x00") {
		return false
	}
	if path.IsAbs(name) || strings.HasPrefix(name, "/") {
		return false
	}
	for _, part := range strings.Split(name, "/") {
		if part == ".." {
			return false
		}
	}
	return filepath.IsLocal(filepath.FromSlash(name))
}

func hasHTML(entries []string) bool {
	for _, name := range entries {
		if isHTML(name) {
			return true
		}
	}
	return false
}

func isHTML(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	return ext == ".html" || ext == ".htm"
}

// findEntryFile searches the entry listing in priority order: index.html at
// the root, any root-level HTML file, index.html inside an immediate
// subdirectory, then any HTML file inside an immediate subdirectory. The
// first match in listing order wins within each tier, which keeps the result
// stable for repeated uploads of the same archive.
func findEntryFile(entries []string) (string, bool) {
	for _, name := range entries {
		if name == "index.html" {
			return name, true
		}
	}
	for _, name := range entries {
		if !strings.Contains(name, "/") && isHTML(name) {
			return name, true
		}
	}
	for _, name := range entries {
		parts := strings.Split(name, "/")
		if len(parts) == 2 && parts[1] == "index.html" {
			return name, true
		}
	}
	for _, name := range entries {
		parts := strings.Split(name, "/")
		if len(parts) == 2 && isHTML(parts[1]) {
			return name, true
		}
	}
	return "", false
}

func (e *Extractor) unpack(ctx context.Context, zr *zip.Reader, dir string) error {
	for _, f := range zr.File {
		if err := ctx.Err(); err != nil {
			return err
		}
		name := filepath.FromSlash(filepath.ToSlash(f.Name))
		target := filepath.Join(dir, name)
		if f.FileInfo().IsDir() {
			if err := os.MkdirAll(target, 0o755); err != nil {
				return fmt.Errorf("create directory %s: %w", f.Name, err)
			}
			continue
		}
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return fmt.Errorf("create directory for %s: %w", f.Name, err)
		}
		if err := writeEntry(f, target); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(f *zip.File, target string) error {
	rc, err := f.Open()
	if err != nil {
		return fmt.Errorf("open archive entry %s: %w", f.Name, err)
	}
	defer rc.Close()

	out, err := os.OpenFile(target, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
	if err != nil {
		return fmt.Errorf("create %s: %w", f.Name, err)
	}
	defer out.Close()

	if _, err := io.Copy(out, rc); err != nil {
		return fmt.Errorf("extract %s: %w", f.Name, err)
	}
	return nil
}

func (e *Extractor) cleanup(dir string) {
	if err := os.RemoveAll(dir); err != nil {
		e.log.Warn("failed to remove partial package directory",
			zap.String("dir", dir), zap.Error(err))
	}
}

func newToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
