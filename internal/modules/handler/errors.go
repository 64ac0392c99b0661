package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
	"github.com/arcadehq/arcade/internal/pkg/assetstore"
	"github.com/arcadehq/arcade/internal/pkg/gamepkg"
)

// respondServiceErr maps service errors onto the response envelope so every
// handler reports the same status for the same failure.
func respondServiceErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
	case errors.Is(err, service.ErrSlugTaken):
		c.JSON(http.StatusConflict, serializer.ConflictErr("slug is already in use", err))
	case errors.Is(err, service.ErrChallengeClosed):
		c.JSON(http.StatusConflict, serializer.ConflictErr("challenge is not accepting scores", err))
	case errors.Is(err, service.ErrUnauthorized), errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
	case errors.Is(err, gamepkg.ErrInvalidArchive),
		errors.Is(err, gamepkg.ErrNoPlayableContent),
		errors.Is(err, assetstore.ErrInvalidImage):
		c.JSON(http.StatusBadRequest, serializer.ParamErr(err.Error(), err))
	default:
		c.JSON(http.StatusInternalServerError, serializer.DBErr("", err))
	}
}
