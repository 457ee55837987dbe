package rest

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/rest/request"
	"github.com/Guyuepp/blog-client/internal/rest/response"
	"github.com/Guyuepp/blog-client/internal/usecase/catalog"
	"github.com/Guyuepp/blog-client/internal/usecase/metrics"
)

// PostHandler represent the httphandler for post counters and post editing
type PostHandler struct {
	App *app.App
}

func NewPostHandler(a *app.App) *PostHandler {
	return &PostHandler{App: a}
}

// ToggleLike likes or unlikes the post depending on the local like mark
func (h *PostHandler) ToggleLike(c *gin.Context) {
	h.like(c, h.App.Metrics.ToggleLike)
}

func (h *PostHandler) Like(c *gin.Context) {
	h.like(c, h.App.Metrics.Like)
}

func (h *PostHandler) Unlike(c *gin.Context) {
	h.like(c, h.App.Metrics.Unlike)
}

func (h *PostHandler) like(c *gin.Context, action func(ctx context.Context, id string) (metrics.LikeResult, error)) {
	res, err := action(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.JSON(http.StatusOK, response.Like{
		Metric:  response.NewMetric(res.Metric),
		Liked:   res.Liked,
		Changed: res.Changed,
	})
}

// OpenEditor opens the editor for a post of the bulk collection, or for a new post
func (h *PostHandler) OpenEditor(c *gin.Context) {
	var req request.OpenEditor
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	if req.PostID == "" {
		h.App.Router.OpenEditor(nil)
		c.Status(http.StatusNoContent)
		return
	}
	post, ok := h.App.Catalog.FindPost(req.PostID)
	if !ok {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	h.App.Router.OpenEditor(&post)
	c.Status(http.StatusNoContent)
}

// Store saves the editor content
func (h *PostHandler) Store(c *gin.Context) {
	var req request.Post
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	saved, err := h.App.SavePost(c.Request.Context(), req.ToDomain())
	if err != nil && saved.ID == "" {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewPostFromDomain(&saved))
}

func (h *PostHandler) Delete(c *gin.Context) {
	if err := h.App.DeletePost(c.Request.Context(), c.Param("id")); !catalog.Committed(err) {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
