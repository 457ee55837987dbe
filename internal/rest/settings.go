package rest

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/rest/request"
	"github.com/Guyuepp/blog-client/internal/rest/response"
)

// SettingsHandler represent the httphandler for site settings, uploads and local
// preferences
type SettingsHandler struct {
	App *app.App
}

func NewSettingsHandler(a *app.App) *SettingsHandler {
	return &SettingsHandler{App: a}
}

// UpdateConfig writes one site setting
func (h *SettingsHandler) UpdateConfig(c *gin.Context) {
	var req request.ConfigUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	saved, err := h.App.UpdateConfig(c.Request.Context(), c.Param("key"), req.Value)
	if err != nil && saved.Key == "" {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewConfigs([]domain.Config{saved})[0])
}

// UploadAssets forwards the multipart files to the remote asset store
func (h *SettingsHandler) UploadAssets(c *gin.Context) {
	form, err := c.MultipartForm()
	if err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	headers := form.File["files"]
	files := make([]domain.AssetFile, 0, len(headers))
	for _, fh := range headers {
		fh := fh
		f, err := fh.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
			return
		}
		defer func() {
			if err := f.Close(); err != nil {
				logrus.Warnf("failed to close upload %s: %v", fh.Filename, err)
			}
		}()
		files = append(files, domain.AssetFile{Name: fh.Filename, Reader: f})
	}

	res, err := h.App.Catalog.UploadAssets(c.Request.Context(), files, c.PostForm("folder"))
	if err != nil {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.JSON(http.StatusOK, response.NewAssets(res))
}

func (h *SettingsHandler) ToggleTheme(c *gin.Context) {
	t, err := h.App.Preferences.ToggleTheme(c.Request.Context())
	if err != nil {
		logrus.Warn(err)
	}
	c.JSON(http.StatusOK, gin.H{"theme": t})
}

func (h *SettingsHandler) SetTheme(c *gin.Context) {
	var req request.Theme
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	if err := h.App.Preferences.SetTheme(c.Request.Context(), domain.Theme(req.Theme)); err != nil {
		c.JSON(getStatusCode(err), newResponseError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"theme": req.Theme})
}

func (h *SettingsHandler) SetLanguage(c *gin.Context) {
	var req request.Language
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
		return
	}
	lang, err := h.App.Preferences.SetLanguage(c.Request.Context(), req.Language)
	if err != nil {
		logrus.Warn(err)
	}
	c.JSON(http.StatusOK, gin.H{"language": lang})
}
