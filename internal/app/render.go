package app

import (
	"context"
	"time"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/usecase/catalog"
	"github.com/Guyuepp/blog-client/internal/usecase/navigation"
	"github.com/Guyuepp/blog-client/internal/usecase/query"
)

// Frame is one render: the screen plus the data its view depends on. Fields the view
// does not need are left empty.
type Frame struct {
	navigation.Screen
	Theme    domain.Theme
	Language domain.Language
	Liked    bool
	ShareURL string

	Posts           []domain.Post
	Categories      []domain.Category
	Configs         []domain.Config
	PostCounts      map[int64]int
	PublishedCount  int
	Dashboard       *catalog.Dashboard
	PublicSearch    *query.Snapshot[domain.PostFilters, domain.Post]
	AdminPosts      *query.Snapshot[domain.PostFilters, domain.Post]
	AdminCategories *query.Snapshot[domain.CategoryFilters, domain.Category]

	Notices []domain.Notice
}

// Render resolves the current screen and gathers its dependencies. Query surfaces the
// screen shows are loaded on first use; the open post records its view once per
// activation however often it is rendered.
func (a *App) Render(ctx context.Context) Frame {
	s := a.Router.Screen()
	f := Frame{
		Screen:   s,
		Theme:    a.Preferences.Theme(),
		Language: a.Preferences.Language(),
	}

	for _, need := range s.Needs {
		switch need {
		case navigation.NeedPosts:
			f.Posts = a.Catalog.Posts()
		case navigation.NeedPublishedPosts:
			f.Posts = a.Catalog.PublishedPosts()
		case navigation.NeedCategories:
			f.Categories = a.Catalog.Categories()
		case navigation.NeedConfigs:
			f.Configs = a.Catalog.Configs()
		case navigation.NeedPostCounts:
			f.PostCounts = a.Catalog.PostCountByCategory()
			f.PublishedCount = len(a.Catalog.PublishedPosts())
		case navigation.NeedDashboard:
			d := a.Catalog.Dashboard(time.Now())
			f.Dashboard = &d
		case navigation.NeedPublicSearch:
			_ = a.PublicSearch.Seed(ctx, query.PublicSearchDefaults(s.Search.CategoryID), s.Search.Token)
			snap := a.PublicSearch.Snapshot()
			f.PublicSearch = &snap
		case navigation.NeedAdminPosts:
			if a.AdminPosts.Snapshot().Generation == 0 {
				_ = a.AdminPosts.Load(ctx)
			}
			snap := a.AdminPosts.Snapshot()
			f.AdminPosts = &snap
		case navigation.NeedAdminCategories:
			if a.AdminCategories.Snapshot().Generation == 0 {
				_ = a.AdminCategories.Load(ctx)
			}
			snap := a.AdminCategories.Snapshot()
			f.AdminCategories = &snap
		case navigation.NeedActivePost:
			if s.ActivePost == nil {
				continue
			}
			_ = a.Metrics.TrackView(ctx, s.Activation, s.ActivePost.ID)
			// The view result may have updated the open post.
			if cur := a.Router.Screen(); cur.ActivePost != nil && cur.ActivePost.ID == s.ActivePost.ID {
				f.ActivePost = cur.ActivePost
			}
			f.Liked = a.Metrics.Liked(ctx, s.ActivePost.ID)
			f.ShareURL = a.Router.ShareURL(s.ActivePost.ID)
		case navigation.NeedEditor:
			// Editing is already part of the screen.
		}
	}
	f.Notices = a.Notices.Drain()
	return f
}
