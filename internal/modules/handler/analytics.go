package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
)

type AnalyticsHandler struct {
	svc service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{svc: s}
}

// RecordPlay acknowledges a game start. 202 because persistence happens on
// the queue consumer, not in this request.
func (h *AnalyticsHandler) RecordPlay(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("game"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	reqCtx := map[string]any{}
	if ua := c.Request.UserAgent(); ua != "" {
		reqCtx["user_agent"] = ua
	}
	if ref := c.Request.Referer(); ref != "" {
		reqCtx["referrer"] = ref
	}

	if err := h.svc.RecordPlay(c.Request.Context(), service.RecordPlayInput{GameID: id, Context: reqCtx}); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusAccepted, serializer.Response{})
}

type ToggleFavoriteReq struct {
	ClientKey string `form:"client_key" json:"client_key" binding:"required,max=128"`
}

func (h *AnalyticsHandler) ToggleFavorite(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("game"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := ToggleFavoriteReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.ToggleFavorite(c.Request.Context(), service.ToggleFavoriteInput{
		GameID:    id,
		ClientKey: req.ClientKey,
	})
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *AnalyticsHandler) GameStats(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("game"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	stats, err := h.svc.GameStats(c.Request.Context(), id)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: stats})
}
