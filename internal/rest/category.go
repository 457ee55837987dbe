package rest

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/rest/request"
	"github.com/Guyuepp/blog-client/internal/rest/response"
	"github.com/Guyuepp/blog-client/internal/usecase/catalog"
)

// CategoryHandler represent the httphandler for category administration
type CategoryHandler struct {
	App *app.App
}

func NewCategoryHandler(a *app.App) *CategoryHandler {
	return &CategoryHandler{App: a}
}

func (h *CategoryHandler) Store(c *gin.Context) {
	var req request.Category
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	saved, err := h.App.SaveCategory(c.Request.Context(), req.ToDomain())
	if err != nil && saved.ID == 0 {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewCategoryFromDomain(&saved))
}

func (h *CategoryHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusNotFound, ResponseError{Message: domain.ErrNotFound.Error()})
		return
	}
	if err := h.App.DeleteCategory(c.Request.Context(), id); !catalog.Committed(err) {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.Status(http.StatusNoContent)
}
