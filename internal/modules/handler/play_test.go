package handler

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlayHandler_ServeGameFile(t *testing.T) {
	gamesRoot := t.TempDir()
	token := "a1b2c3d4e5f60718293a4b5c6d7e8f90"
	require.NoError(t, os.MkdirAll(filepath.Join(gamesRoot, token, "assets"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(gamesRoot, token, "index.html"), []byte("<html>game</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(gamesRoot, token, "assets", "sprite.png"), []byte("png"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(gamesRoot, token, "game.js"), []byte("var score = 0;"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(gamesRoot, "outside.txt"), []byte("secret"), 0o644))

	h := NewPlayHandler(gamesRoot)
	r := setupRouter()
	r.GET("/play/:token/*filepath", h.ServeGameFile)

	tests := []struct {
		name           string
		path           string
		expectedStatus int
		expectedBody   string
		expectedType   string
	}{
		{
			// index.html must serve directly, not 301 to the directory the
			// way http.ServeFile redirects index pages.
			name:           "entry file",
			path:           "/play/" + token + "/index.html",
			expectedStatus: http.StatusOK,
			expectedBody:   "<html>game</html>",
			expectedType:   "text/html",
		},
		{
			name:           "nested asset",
			path:           "/play/" + token + "/assets/sprite.png",
			expectedStatus: http.StatusOK,
			expectedBody:   "png",
		},
		{
			name:           "script gets a javascript content type",
			path:           "/play/" + token + "/game.js",
			expectedStatus: http.StatusOK,
			expectedBody:   "var score = 0;",
			expectedType:   "text/javascript",
		},
		{
			name:           "missing file",
			path:           "/play/" + token + "/missing.js",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "unknown token",
			path:           "/play/ffffffffffffffff/index.html",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "traversal out of the package",
			path:           "/play/" + token + "/..%2Foutside.txt",
			expectedStatus: http.StatusNotFound,
		},
		{
			name:           "directory request",
			path:           "/play/" + token + "/assets",
			expectedStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			if tt.expectedBody != "" {
				assert.Equal(t, tt.expectedBody, w.Body.String())
			}
			if tt.expectedType != "" {
				assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), tt.expectedType),
					"content type %q", w.Header().Get("Content-Type"))
			}
		})
	}
}
