package rest

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/rest/middleware"
	"github.com/Guyuepp/blog-client/internal/rest/request"
	"github.com/Guyuepp/blog-client/internal/rest/response"
	"github.com/Guyuepp/blog-client/internal/usecase/query"
)

// NewRouter builds the local control API the renderer drives.
func NewRouter(a *app.App, timeout time.Duration) *gin.Engine {
	route := gin.New()
	route.Use(gin.Recovery())
	route.Use(middleware.Logger())
	route.Use(middleware.CORS())
	route.Use(middleware.SetRequestContextWithTimeout(timeout))

	screenHandler := NewScreenHandler(a)
	postHandler := NewPostHandler(a)
	categoryHandler := NewCategoryHandler(a)
	settingsHandler := NewSettingsHandler(a)
	authHandler := NewAuthHandler(a)

	route.GET("/metrics", gin.WrapH(promhttp.Handler()))

	route.GET("/screen", screenHandler.Screen)
	route.POST("/navigate", screenHandler.Navigate)
	route.POST("/back", screenHandler.Back)
	route.POST("/posts/:id/open", screenHandler.OpenPost)
	route.POST("/categories/:id/browse", screenHandler.BrowseCategory)
	route.GET("/notices", screenHandler.Notices)

	route.POST("/posts/:id/like", postHandler.Like)
	route.DELETE("/posts/:id/like", postHandler.Unlike)
	route.POST("/posts/:id/like/toggle", postHandler.ToggleLike)

	route.POST("/auth/login", authHandler.Login)
	route.POST("/auth/logout", authHandler.Logout)
	route.GET("/auth/session", authHandler.Session)

	route.POST("/preferences/theme/toggle", settingsHandler.ToggleTheme)
	route.PUT("/preferences/theme", settingsHandler.SetTheme)
	route.PUT("/preferences/language", settingsHandler.SetLanguage)

	NewQueryHandler(a.PublicSearch, bindPostFilters, renderPosts).Register(route.Group("/search"))

	admin := route.Group("/admin")
	admin.Use(authHandler.RequireSession)
	{
		NewQueryHandler(a.AdminPosts, bindPostFilters, renderPosts).Register(admin.Group("/posts/query"))
		NewQueryHandler(a.AdminCategories, bindCategoryFilters, renderCategories).Register(admin.Group("/categories/query"))

		admin.POST("/editor", postHandler.OpenEditor)
		admin.POST("/posts", postHandler.Store)
		admin.DELETE("/posts/:id", postHandler.Delete)
		admin.POST("/categories", categoryHandler.Store)
		admin.DELETE("/categories/:id", categoryHandler.Delete)
		admin.POST("/configs/:key", settingsHandler.UpdateConfig)
		admin.POST("/assets", settingsHandler.UploadAssets)
	}
	return route
}

func bindPostFilters(c *gin.Context) (domain.PostFilters, error) {
	var req request.PostFilters
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.PostFilters{}, err
	}
	return req.ToDomain(), nil
}

func bindCategoryFilters(c *gin.Context) (domain.CategoryFilters, error) {
	var req request.CategoryFilters
	if err := c.ShouldBindJSON(&req); err != nil {
		return domain.CategoryFilters{}, err
	}
	return req.ToDomain(), nil
}

func renderPosts(s *query.Snapshot[domain.PostFilters, domain.Post]) any {
	return response.NewPostQuery(s)
}

func renderCategories(s *query.Snapshot[domain.CategoryFilters, domain.Category]) any {
	return response.NewCategoryQuery(s)
}
