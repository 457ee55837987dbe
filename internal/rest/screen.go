package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/rest/request"
	"github.com/Guyuepp/blog-client/internal/rest/response"
	"github.com/Guyuepp/blog-client/internal/usecase/navigation"
)

// ScreenHandler represent the httphandler for rendering and navigation
type ScreenHandler struct {
	App *app.App
}

func NewScreenHandler(a *app.App) *ScreenHandler {
	return &ScreenHandler{App: a}
}

// Screen renders the current frame
func (h *ScreenHandler) Screen(c *gin.Context) {
	f := h.App.Render(c.Request.Context())
	c.JSON(http.StatusOK, response.NewScreen(&f))
}

// Navigate moves to the requested view and renders it
func (h *ScreenHandler) Navigate(c *gin.Context) {
	var req request.Navigate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	if err := h.App.Router.Navigate(domain.View(req.View)); err != nil {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	h.Screen(c)
}

func (h *ScreenHandler) Back(c *gin.Context) {
	h.App.Router.Back()
	h.Screen(c)
}

// OpenPost opens a post of the bulk collection in the detail view
func (h *ScreenHandler) OpenPost(c *gin.Context) {
	var req request.OpenPost
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	post, ok := h.App.Catalog.FindPost(c.Param("id"))
	if !ok {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	h.App.Router.OpenPost(post, domain.View(req.From), navigation.OpenOptions{})
	h.Screen(c)
}

// BrowseCategory opens the public search scoped to a category
func (h *ScreenHandler) BrowseCategory(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id < 0 {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	h.App.Router.BrowseCategory(id)
	h.Screen(c)
}

// Notices drains the pending notices
func (h *ScreenHandler) Notices(c *gin.Context) {
	c.JSON(http.StatusOK, response.NewNotices(h.App.Notices.Drain()))
}
