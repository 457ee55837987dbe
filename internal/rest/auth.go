package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/rest/request"
)

// AuthHandler represent the httphandler for the admin session
type AuthHandler struct {
	App *app.App
}

func NewAuthHandler(a *app.App) *AuthHandler {
	return &AuthHandler{App: a}
}

// Login reports only success or "not authenticated"
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.Login
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	if !h.App.Login(c.Request.Context(), req.ToDomain()) {
		c.JSON(http.StatusUnauthorized, ResponseError{Message: domain.ErrUnauthorized.Error()})
		return
	}
	h.Session(c)
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.App.Logout(c.Request.Context())
	c.Status(http.StatusNoContent)
}

func (h *AuthHandler) Session(c *gin.Context) {
	s := h.App.Session.Current(c.Request.Context())
	c.JSON(http.StatusOK, gin.H{"logged_in": s.LoggedIn, "username": s.Username})
}

// RequireSession rejects admin calls while logged out
func (h *AuthHandler) RequireSession(c *gin.Context) {
	if !h.App.Session.LoggedIn() {
		c.AbortWithStatusJSON(http.StatusUnauthorized, ResponseError{Message: domain.ErrUnauthorized.Error()})
		return
	}
	c.Next()
}
