package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/pkg/thumbresolver"
)

type ThumbnailHandler struct {
	resolver *thumbresolver.Resolver
}

func NewThumbnailHandler(resolver *thumbresolver.Resolver) *ThumbnailHandler {
	return &ThumbnailHandler{resolver: resolver}
}

// GetThumbnail serves a thumbnail for whatever identifier the client sends.
// The resolver cascade guarantees some image always comes back, so this
// endpoint never 404s.
func (h *ThumbnailHandler) GetThumbnail(c *gin.Context) {
	req := thumbresolver.Request{
		RequestedID: c.Param("id"),
		GameName:    c.Query("game_name"),
	}
	if raw := c.Query("game_id"); raw != "" {
		if id, err := strconv.ParseInt(raw, 10, 64); err == nil {
			req.GameID = &id
		}
	}

	// Resolution depends on mutable state (mappings, what files exist), so
	// clients must revalidate instead of caching a stale fallback forever.
	c.Header("Cache-Control", "no-cache")
	c.File(h.resolver.Resolve(req))
}
