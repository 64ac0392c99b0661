package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
)

type CategoryHandler struct {
	svc service.CategoryService
}

func NewCategoryHandler(s service.CategoryService) *CategoryHandler {
	return &CategoryHandler{svc: s}
}

func (h *CategoryHandler) ListCategories(c *gin.Context) {
	categories, err := h.svc.List(c.Request.Context())
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: categories})
}

func (h *CategoryHandler) GetCategory(c *gin.Context) {
	category, err := h.svc.GetBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: category})
}

type CreateCategoryReq struct {
	Name string `form:"name" json:"name" binding:"required,max=100"`
	Slug string `form:"slug" json:"slug" binding:"required,max=100,slug"`
}

func (h *CategoryHandler) CreateCategory(c *gin.Context) {
	req := CreateCategoryReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	category := model.Category{Name: req.Name, Slug: req.Slug}
	if err := h.svc.Create(c.Request.Context(), &category); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusCreated, serializer.Response{Data: category})
}

type UpdateCategoryReq struct {
	Name string `form:"name" json:"name" binding:"omitempty,max=100"`
	Slug string `form:"slug" json:"slug" binding:"omitempty,max=100,slug"`
}

func (h *CategoryHandler) UpdateCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	req := UpdateCategoryReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	if err := h.svc.Update(c.Request.Context(), &model.Category{ID: id, Name: req.Name, Slug: req.Slug}); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

func (h *CategoryHandler) DeleteCategory(c *gin.Context) {
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
