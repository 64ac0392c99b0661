package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
)

type PostHandler struct {
	svc service.PostService
}

func NewPostHandler(s service.PostService) *PostHandler {
	return &PostHandler{svc: s}
}

type ListPostsReq struct {
	Limit    int    `form:"limit,default=20" json:"limit" binding:"required,min=1,max=100"`
	Cursor   string `form:"cursor" json:"cursor"`
	TimeDesc bool   `form:"time_desc,default=true" json:"time_desc"`
}

// ListPosts returns published posts only; drafts stay in the admin listing.
func (h *PostHandler) ListPosts(c *gin.Context) {
	req := ListPostsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListPostsInput{
		PublishedOnly: true,
		Limit:         req.Limit,
		Cursor:        req.Cursor,
		TimeDesc:      req.TimeDesc,
	})
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *PostHandler) ListAllPosts(c *gin.Context) {
	req := ListPostsReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.List(c.Request.Context(), service.ListPostsInput{
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

func (h *PostHandler) GetPost(c *gin.Context) {
	post, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"), true)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: post})
}

type CreatePostReq struct {
	Title     string `form:"title" json:"title" binding:"required,max=200"`
	Slug      string `form:"slug" json:"slug" binding:"required,max=200,slug"`
	Excerpt   string `form:"excerpt" json:"excerpt"`
	Body      string `form:"body" json:"body" binding:"required"`
	Published bool   `form:"published" json:"published"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	req := CreatePostReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	user, ok := c.MustGet("user").(*model.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	post, err := h.svc.Create(c.Request.Context(), service.CreatePostInput{
		AuthorID:  user.ID,
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: post})
}

type UpdatePostReq struct {
	Title     *string `form:"title" json:"title" binding:"omitempty,max=200"`
	Slug      *string `form:"slug" json:"slug" binding:"omitempty,max=200,slug"`
	Excerpt   *string `form:"excerpt" json:"excerpt"`
	Body      *string `form:"body" json:"body"`
	Published *bool   `form:"published" json:"published"`
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdatePostReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	post, err := h.svc.Update(c.Request.Context(), service.UpdatePostInput{
		ID:        id,
		Title:     req.Title,
		Slug:      req.Slug,
		Excerpt:   req.Excerpt,
		Body:      req.Body,
		Published: req.Published,
	})
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: post})
}

func (h *PostHandler) DeletePost(c *gin.Context) {
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
