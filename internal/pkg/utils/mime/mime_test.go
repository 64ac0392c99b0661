package mime

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDetectMimeType(t *testing.T) {
	tests := []struct {
		name     string
		content  []byte
		filename string
		expected string
	}{
		{
			name:     "html detected from content",
			content:  []byte("<html><body>game</body></html>"),
			filename: "index.html",
			expected: "text/html; charset=utf-8",
		},
		{
			name:     "javascript refined from extension",
			content:  []byte("var score = 0;"),
			filename: "game.js",
			expected: "text/javascript; charset=utf-8",
		},
		{
			name:     "css refined from extension",
			content:  []byte("body { margin: 0 }"),
			filename: "style.css",
			expected: "text/css; charset=utf-8",
		},
		{
			name:     "unknown extension stays plain text",
			content:  []byte("just some text"),
			filename: "notes.dat",
			expected: "text/plain; charset=utf-8",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, DetectMimeType(tt.content, tt.filename))
		})
	}
}

func TestIsZip(t *testing.T) {
	assert.False(t, IsZip([]byte("not a zip")))
	assert.False(t, IsZip(nil))
	// minimal empty zip: end-of-central-directory record only
	eocd := append([]byte("PK\x05\x06"), bytes.Repeat([]byte{0}, 18)...)
	assert.True(t, IsZip(eocd))
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage([]byte("\x89PNG\r\n\x1a\n")))
	assert.False(t, IsImage([]byte("<html></html>")))
}
