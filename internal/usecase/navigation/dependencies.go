package navigation

import "github.com/Guyuepp/blog-client/domain"

// Dependency names a piece of data a screen needs to render.
type Dependency string

const (
	NeedPosts           Dependency = "posts"
	NeedPublishedPosts  Dependency = "published-posts"
	NeedCategories      Dependency = "categories"
	NeedConfigs         Dependency = "configs"
	NeedPostCounts      Dependency = "post-counts"
	NeedPublicSearch    Dependency = "public-search"
	NeedAdminPosts      Dependency = "admin-posts"
	NeedAdminCategories Dependency = "admin-categories"
	NeedActivePost      Dependency = "active-post"
	NeedDashboard       Dependency = "dashboard"
	NeedEditor          Dependency = "editor"
)

var dependencies = map[domain.View][]Dependency{
	domain.ViewHome:            {NeedPublishedPosts, NeedCategories, NeedConfigs},
	domain.ViewCategories:      {NeedCategories, NeedPostCounts, NeedConfigs},
	domain.ViewPostSearch:      {NeedPublicSearch, NeedCategories, NeedConfigs},
	domain.ViewPostDetail:      {NeedActivePost, NeedConfigs},
	domain.ViewAbout:           {NeedConfigs, NeedPostCounts},
	domain.ViewLogin:           {},
	domain.ViewAdminDashboard:  {NeedDashboard},
	domain.ViewAdminPosts:      {NeedAdminPosts, NeedCategories},
	domain.ViewAdminCategories: {NeedAdminCategories, NeedPostCounts},
	domain.ViewAdminSettings:   {NeedConfigs},
	domain.ViewPostEditor:      {NeedEditor, NeedCategories},
	domain.ViewLoading:         {},
}

// DependenciesOf lists what v needs, in a stable order.
func DependenciesOf(v domain.View) []Dependency {
	return append([]Dependency{}, dependencies[v]...)
}
