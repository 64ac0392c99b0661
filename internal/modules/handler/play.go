package handler

import (
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/pkg/utils/mime"
)

type PlayHandler struct {
	gamesRoot string
}

func NewPlayHandler(gamesRoot string) *PlayHandler {
	abs, err := filepath.Abs(gamesRoot)
	if err != nil {
		abs = gamesRoot
	}
	return &PlayHandler{gamesRoot: abs}
}

// ServeGameFile serves one file out of an extracted package directory. The
// token and the requested path are both confined to the games root; anything
// that escapes it is a 404, same as a missing file.
func (h *PlayHandler) ServeGameFile(c *gin.Context) {
	token := c.Param("token")
	rel := strings.TrimPrefix(c.Param("filepath"), "/")

	target, ok := h.resolve(token, rel)
	if !ok {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
		return
	}

	f, err := os.Open(target)
	if err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
		return
	}

	// Sniff the content type from the leading bytes; extension refinement
	// matters for .js/.css files that detect as plain text.
	head := make([]byte, 512)
	n, _ := io.ReadFull(f, head)
	if _, err := f.Seek(0, io.SeekStart); err != nil {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
		return
	}
	c.Header("Content-Type", mime.DetectMimeType(head[:n], info.Name()))

	// ServeContent rather than ServeFile: the latter 301-redirects any path
	// ending in index.html, which would break the canonical entry file.
	http.ServeContent(c.Writer, c.Request, info.Name(), info.ModTime(), f)
}

func (h *PlayHandler) resolve(token, rel string) (string, bool) {
	if token == "" || strings.ContainsAny(token, "/\\") || token == "." || token == ".." {
		return "", false
	}
	if rel == "" {
		return "", false
	}
	if !filepath.IsLocal(rel) {
		return "", false
	}

	target := filepath.Join(h.gamesRoot, token, filepath.FromSlash(rel))
	// Join cleans the path; a result outside the token directory means the
	// request tried to climb out.
	prefix := filepath.Join(h.gamesRoot, token) + string(os.PathSeparator)
	if !strings.HasPrefix(target, prefix) {
		return "", false
	}
	return target, true
}
