package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/arcadehq/arcade/internal/modules/model"
	"github.com/arcadehq/arcade/internal/modules/serializer"
	"github.com/arcadehq/arcade/internal/modules/service"
)

type AuthHandler struct {
	svc service.AuthService
}

func NewAuthHandler(s service.AuthService) *AuthHandler {
	return &AuthHandler{svc: s}
}

// bearerToken pulls the raw session token out of the Authorization header.
func bearerToken(c *gin.Context) string {
	auth := c.GetHeader("Authorization")
	if auth == "" {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
}

type LoginReq struct {
	Username string `form:"username" json:"username" binding:"required"`
	Password string `form:"password" json:"password" binding:"required"`
}

func (h *AuthHandler) Login(c *gin.Context) {
	req := LoginReq{}
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, serializer.ParamErr("", err))
		return
	}

	out, err := h.svc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: out})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	token := bearerToken(c)
	if token == "" {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	if err := h.svc.Logout(c.Request.Context(), token); err != nil {
		respondServiceErr(c, err)
		return
	}

	c.JSON(http.StatusOK, serializer.Response{})
}

// Me returns the authenticated admin; the auth middleware put it in context.
func (h *AuthHandler) Me(c *gin.Context) {
	user, ok := c.MustGet("user").(*model.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, serializer.AuthErr(""))
		return
	}

	c.JSON(http.StatusOK, serializer.Response{Data: user})
}
