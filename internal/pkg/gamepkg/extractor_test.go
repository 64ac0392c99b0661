package gamepkg

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type zipEntry struct {
	name string
	body string
}

func buildZip(t *testing.T, entries []zipEntry) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, e := range entries {
		w, err := zw.Create(e.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(e.body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func countDirs(t *testing.T, root string) int {
	t.Helper()
	entries, err := os.ReadDir(root)
	require.NoError(t, err)
	n := 0
	for _, e := range entries {
		if e.IsDir() {
			n++
		}
	}
	return n
}

func TestExtractor_Extract(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		entries   []zipEntry
		wantEntry string
	}{
		{
			name: "index.html at root wins",
			entries: []zipEntry{
				{"style.css", "body{}"},
				{"game.html", "<html>alt</html>"},
				{"index.html", "<html>main</html>"},
			},
			wantEntry: "index.html",
		},
		{
			name: "any root html when no index",
			entries: []zipEntry{
				{"assets/sprite.png", "png"},
				{"game.html", "<html></html>"},
			},
			wantEntry: "game.html",
		},
		{
			name: "index.html in wrapping folder",
			entries: []zipEntry{
				{"mygame/other.html", "<html>a</html>"},
				{"mygame/index.html", "<html>b</html>"},
			},
			wantEntry: "mygame/index.html",
		},
		{
			name: "any html in immediate subdirectory",
			entries: []zipEntry{
				{"sub/page.html", "<html></html>"},
				{"sub/style.css", "body{}"},
			},
			wantEntry: "sub/page.html",
		},
		{
			name: "htm extension accepted",
			entries: []zipEntry{
				{"play.HTM", "<html></html>"},
			},
			wantEntry: "play.HTM",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			e := NewExtractor(root, zap.NewNop())

			pkg, err := e.Extract(ctx, buildZip(t, tt.entries))
			require.NoError(t, err)
			assert.Equal(t, tt.wantEntry, pkg.EntryFile)
			assert.NotEmpty(t, pkg.DirectoryToken)

			// every archive entry is on disk, verbatim
			for _, entry := range tt.entries {
				got, err := os.ReadFile(filepath.Join(root, pkg.DirectoryToken, filepath.FromSlash(entry.name)))
				require.NoError(t, err)
				assert.Equal(t, entry.body, string(got))
			}
		})
	}
}

func TestExtractor_Extract_NoPlayableContent(t *testing.T) {
	root := t.TempDir()
	e := NewExtractor(root, zap.NewNop())

	archive := buildZip(t, []zipEntry{
		{"readme.txt", "not a game"},
		{"assets/logo.png", "png"},
	})

	_, err := e.Extract(context.Background(), archive)
	assert.ErrorIs(t, err, ErrNoPlayableContent)

	// pre-extraction validation means nothing was written
	assert.Equal(t, 0, countDirs(t, root))
}

func TestExtractor_Extract_InvalidArchive(t *testing.T) {
	root := t.TempDir()
	e := NewExtractor(root, zap.NewNop())

	tests := []struct {
		name    string
		archive []byte
	}{
		{"empty buffer", nil},
		{"not a zip", []byte("<html>this is not an archive</html>")},
		{"truncated zip header", []byte("PK\x03\x04garbage")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := e.Extract(context.Background(), tt.archive)
			assert.ErrorIs(t, err, ErrInvalidArchive)
		})
	}

	assert.Equal(t, 0, countDirs(t, root))
}

func TestExtractor_Extract_RejectsTraversal(t *testing.T) {
	tests := []struct {
		name    string
		entries []zipEntry
	}{
		{
			name: "file entry climbs out",
			entries: []zipEntry{
				{"index.html", "<html></html>"},
				{"../escape.html", "<html>outside</html>"},
			},
		},
		{
			name: "directory entry climbs out",
			entries: []zipEntry{
				{"index.html", "<html></html>"},
				{"../../escape-dir/", ""},
			},
		},
		{
			name: "absolute directory entry",
			entries: []zipEntry{
				{"index.html", "<html></html>"},
				{"/tmp/abs-dir/", ""},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			parent := t.TempDir()
			root := filepath.Join(parent, "games")
			require.NoError(t, os.MkdirAll(root, 0o755))
			e := NewExtractor(root, zap.NewNop())

			_, err := e.Extract(context.Background(), buildZip(t, tt.entries))
			assert.ErrorIs(t, err, ErrInvalidArchive)
			assert.Equal(t, 0, countDirs(t, root))

			// nothing climbed above the games root either
			outside, err := os.ReadDir(parent)
			require.NoError(t, err)
			assert.Len(t, outside, 1)
		})
	}
}

func TestExtractor_Extract_UniqueTokens(t *testing.T) {
	root := t.TempDir()
	e := NewExtractor(root, zap.NewNop())
	archive := buildZip(t, []zipEntry{{"index.html", "<html></html>"}})

	first, err := e.Extract(context.Background(), archive)
	require.NoError(t, err)
	second, err := e.Extract(context.Background(), archive)
	require.NoError(t, err)

	assert.NotEqual(t, first.DirectoryToken, second.DirectoryToken)
}

func TestSafeEntryName(t *testing.T) {
	tests := []struct {
		name string
		ok   bool
	}{
		{"index.html", true},
		{"sub/index.html", true},
		{"a/b/c.css", true},
		{"", false},
		{"/abs.html", false},
		{"../up.html", false},
		{"sub/../../up.html", false},
		{"nul\x00.html", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.ok, safeEntryName(tt.name), "entry %q", tt.name)
	}
}
