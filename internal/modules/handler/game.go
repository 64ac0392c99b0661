package handler

import (
	"io"
	"mime/multipart"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/config"
	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
)

type GameHandler struct {
	svc service.GameService
	cfg *config.Config
}

func NewGameHandler(s service.GameService, cfg *config.Config) *GameHandler {
	return &GameHandler{svc: s, cfg: cfg}
}

func (h *GameHandler) maxUploadBytes() int64 {
	return h.cfg.Storage.MaxUploadMB << 20
}

// readUpload pulls one multipart file into memory, enforcing the upload cap.
func (h *GameHandler) readUpload(fh *multipart.FileHeader) ([]byte, bool) {
	if fh.Size > h.maxUploadBytes() {
		return nil, false
	}
	f, err := fh.Open()
	if err != nil {
		return nil, false
	}
	defer f.Close()
	data, err := io.ReadAll(io.LimitReader(f, h.maxUploadBytes()+1))
	if err != nil || int64(len(data)) > h.maxUploadBytes() {
		return nil, false
	}
	return data, true
}

type ListGamesReq struct {
	Category string `form:"category" json:"category"`
	Featured bool   `form:"featured" json:"featured"`
	Limit    int    `form:"limit,default=20" json:"limit" binding:"required,min=1,max=100"`
	Cursor   string `form:"cursor" json:"cursor"`
	TimeDesc bool   `form:"time_desc,default=true" json:"time_desc"`
}

// ListGames returns the published catalog, newest first by default.
func (h *GameHandler) ListGames(c *gin.Context) {
	req := ListGamesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.ListGamesInput{
		Status:       model.GameStatusPublished,
		FeaturedOnly: req.Featured,
		Limit:        req.Limit,
		Cursor:       req.Cursor,
		TimeDesc:     req.TimeDesc,
	}
	if req.Category != "" {
		id, err := strconv.ParseInt(req.Category, 10, 64)
		if err != nil {
			c.JSON(http.StatusBadRequest, serializer.ParamErr("category must be a numeric id", err))
			return
		}
		in.CategoryID = &id
	}

	out, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// ListAllGames is the admin view: drafts included, filterable by status.
func (h *GameHandler) ListAllGames(c *gin.Context) {
	req := ListGamesReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListGamesInput{
		Status:   c.Query("status"),
		Limit:    req.Limit,
		Cursor:   req.Cursor,
		TimeDesc: req.TimeDesc,
	})
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

// GetGame resolves a published game by slug.
func (h *GameHandler) GetGame(c *gin.Context) {
	game, err := h.svc.GetBySlug(c.Request.Context(), c.Param("game"))
	if err != nil {
		respondServiceErr(c, err)
		return
	}
	if !game.Published() {
		c.JSON(http.StatusNotFound, serializer.NotFoundErr(""))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: game})
}

func (h *GameHandler) TopPlayed(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))
	games, err := h.svc.TopPlayed(c.Request.Context(), limit)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: games})
}

type CreateGameReq struct {
	Title        string `form:"title" binding:"required,max=200"`
	Slug         string `form:"slug" binding:"required,max=200,slug"`
	Description  string `form:"description"`
	Instructions string `form:"instructions"`
	CategoryID   *int64 `form:"category_id"`
}

// CreateGame ingests a new game package. The request is multipart: form
// fields plus a required "gameFile" zip and an optional "thumbnail" image.
func (h *GameHandler) CreateGame(c *gin.Context) {
	req := CreateGameReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	pkgFile, err := c.FormFile("gameFile")
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("package file is required", err))
		return
	}
	archive, ok := h.readUpload(pkgFile)
	if !ok {
		c.JSON(http.StatusRequestEntityTooLarge, serializer.Err(http.StatusRequestEntityTooLarge, "package exceeds the upload limit", nil))
		return
	}

	var thumbnail []byte
	if thumbFile, err := c.FormFile("thumbnail"); err == nil {
		thumbnail, ok = h.readUpload(thumbFile)
		if !ok {
			c.JSON(http.StatusRequestEntityTooLarge, serializer.Err(http.StatusRequestEntityTooLarge, "thumbnail exceeds the upload limit", nil))
			return
		}
	}

	game, err := h.svc.Create(c.Request.Context(), service.CreateGameInput{
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Instructions: req.Instructions,
		CategoryID:   req.CategoryID,
		Archive:      archive,
		Thumbnail:    thumbnail,
	})
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: game})
}

type UpdateGameReq struct {
	Title        *string `form:"title" binding:"omitempty,max=200"`
	Slug         *string `form:"slug" binding:"omitempty,max=200,slug"`
	Description  *string `form:"description"`
	Instructions *string `form:"instructions"`
	CategoryID   *int64  `form:"category_id"`
}

// UpdateGame patches metadata and optionally replaces the package or the
// thumbnail. Sending only a thumbnail leaves the extracted package alone.
func (h *GameHandler) UpdateGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateGameReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	in := service.UpdateGameInput{
		ID:           id,
		Title:        req.Title,
		Slug:         req.Slug,
		Description:  req.Description,
		Instructions: req.Instructions,
		CategoryID:   req.CategoryID,
	}

	if pkgFile, ferr := c.FormFile("gameFile"); ferr == nil {
		archive, ok := h.readUpload(pkgFile)
		if !ok {
			c.JSON(http.StatusRequestEntityTooLarge, serializer.Err(http.StatusRequestEntityTooLarge, "package exceeds the upload limit", nil))
			return
		}
		in.Archive = archive
	}
	if thumbFile, ferr := c.FormFile("thumbnail"); ferr == nil {
		thumbnail, ok := h.readUpload(thumbFile)
		if !ok {
			c.JSON(http.StatusRequestEntityTooLarge, serializer.Err(http.StatusRequestEntityTooLarge, "thumbnail exceeds the upload limit", nil))
			return
		}
		in.Thumbnail = thumbnail
	}

	game, err := h.svc.Update(c.Request.Context(), in)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: game})
}

func (h *GameHandler) DeleteGame(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Delete(c.Request.Context(), id); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type SetGameStatusReq struct {
	Status string `form:"status" json:"status" binding:"required,oneof=draft published"`
}

func (h *GameHandler) SetStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := SetGameStatusReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.SetStatus(c.Request.Context(), id, req.Status); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

type SetGameFeaturedReq struct {
	Featured *bool `form:"featured" json:"featured" binding:"required"`
}

func (h *GameHandler) SetFeatured(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := SetGameFeaturedReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.SetFeatured(c.Request.Context(), id, *req.Featured); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}
