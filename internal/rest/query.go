package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/blog-client/internal/rest/request"
	"github.com/Guyuepp/blog-client/internal/usecase/query"
)

// QueryHandler exposes one query surface. F and T are the domain filter and record
// types; bind reads a draft from the request body and render shapes a snapshot.
type QueryHandler[F comparable, T any] struct {
	Controller *query.Controller[F, T]
	bind       func(c *gin.Context) (F, error)
	render     func(s *query.Snapshot[F, T]) any
}

func NewQueryHandler[F comparable, T any](
	ctrl *query.Controller[F, T],
	bind func(c *gin.Context) (F, error),
	render func(s *query.Snapshot[F, T]) any,
) *QueryHandler[F, T] {
	return &QueryHandler[F, T]{Controller: ctrl, bind: bind, render: render}
}

func (h *QueryHandler[F, T]) Register(g *gin.RouterGroup) {
	g.GET("", h.Get)
	g.PUT("/draft", h.SetDraft)
	g.POST("/apply", h.Apply)
	g.POST("/reset", h.Reset)
	g.POST("/reload", h.Reload)
	g.PUT("/page", h.SetPage)
	g.PUT("/page-size", h.SetPageSize)
}

// Get returns the surface state, loading it on first use
func (h *QueryHandler[F, T]) Get(c *gin.Context) {
	if h.Controller.Snapshot().Generation == 0 {
		if err := h.Controller.Load(c.Request.Context()); err != nil {
			c.JSON(getStatusCode(err), newResponseError(err))
			return
		}
	}
	h.respond(c, nil)
}

// SetDraft replaces the draft filters without fetching
func (h *QueryHandler[F, T]) SetDraft(c *gin.Context) {
	f, err := h.bind(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	h.Controller.SetDraft(f)
	h.respond(c, nil)
}

func (h *QueryHandler[F, T]) Apply(c *gin.Context) {
	h.respond(c, h.Controller.Apply(c.Request.Context()))
}

func (h *QueryHandler[F, T]) Reset(c *gin.Context) {
	h.respond(c, h.Controller.Reset(c.Request.Context()))
}

func (h *QueryHandler[F, T]) Reload(c *gin.Context) {
	h.respond(c, h.Controller.Reload(c.Request.Context()))
}

func (h *QueryHandler[F, T]) SetPage(c *gin.Context) {
	var req request.Page
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	h.respond(c, h.Controller.SetPage(c.Request.Context(), req.Page))
}

func (h *QueryHandler[F, T]) SetPageSize(c *gin.Context) {
	var req request.PageSize
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	h.respond(c, h.Controller.SetPageSize(c.Request.Context(), req.PageSize))
}

// respond writes the snapshot. A failed fetch keeps the previous page, so the body is
// the snapshot with the status of the error.
func (h *QueryHandler[F, T]) respond(c *gin.Context, err error) {
	snap := h.Controller.Snapshot()
	if err != nil {
		c.JSON(getStatusCode(err), gin.H{"message": newResponseError(err).Message, "query": h.render(&snap)})
		return
	}
	c.JSON(http.StatusOK, h.render(&snap))
}
