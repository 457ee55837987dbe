package response

import (
	"time"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/app"
	"github.com/Guyuepp/blog-client/internal/usecase/navigation"
	"github.com/Guyuepp/blog-client/internal/usecase/query"
)

type PostFilters struct {
	Keyword     string `json:"keyword"`
	Status      string `json:"status"`
	CategoryID  int64  `json:"category_id"`
	CreatedFrom string `json:"created_from"`
	CreatedTo   string `json:"created_to"`
	UpdatedFrom string `json:"updated_from"`
	UpdatedTo   string `json:"updated_to"`
}

func NewPostFilters(f domain.PostFilters) PostFilters {
	return PostFilters{
		Keyword:     f.Keyword,
		Status:      string(f.Status),
		CategoryID:  f.CategoryID,
		CreatedFrom: f.CreatedFrom,
		CreatedTo:   f.CreatedTo,
		UpdatedFrom: f.UpdatedFrom,
		UpdatedTo:   f.UpdatedTo,
	}
}

type CategoryFilters struct {
	Keyword string `json:"keyword"`
	Slug    string `json:"slug"`
}

// Query is the state of one query surface.
type Query[F any, T any] struct {
	Draft      F     `json:"draft"`
	Applied    F     `json:"applied"`
	Page       int   `json:"page"`
	PageSize   int   `json:"page_size"`
	PageSizes  []int `json:"page_sizes"`
	Records    []T   `json:"records"`
	Total      int64 `json:"total"`
	TotalPages int   `json:"total_pages"`
	Loading    bool  `json:"loading"`
}

func NewPostQuery(s *query.Snapshot[domain.PostFilters, domain.Post]) *Query[PostFilters, Post] {
	if s == nil {
		return nil
	}
	return &Query[PostFilters, Post]{
		Draft:      NewPostFilters(s.Draft),
		Applied:    NewPostFilters(s.Applied),
		Page:       s.Page,
		PageSize:   s.PageSize,
		PageSizes:  s.PageSizes,
		Records:    NewPosts(s.Records),
		Total:      s.Total,
		TotalPages: s.TotalPages,
		Loading:    s.Loading,
	}
}

func NewCategoryQuery(s *query.Snapshot[domain.CategoryFilters, domain.Category]) *Query[CategoryFilters, Category] {
	if s == nil {
		return nil
	}
	return &Query[CategoryFilters, Category]{
		Draft:      CategoryFilters(s.Draft),
		Applied:    CategoryFilters(s.Applied),
		Page:       s.Page,
		PageSize:   s.PageSize,
		PageSizes:  s.PageSizes,
		Records:    NewCategories(s.Records),
		Total:      s.Total,
		TotalPages: s.TotalPages,
		Loading:    s.Loading,
	}
}

type Notice struct {
	Level   string    `json:"level"`
	Source  string    `json:"source"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

func NewNotices(ns []domain.Notice) []Notice {
	res := make([]Notice, len(ns))
	for i, n := range ns {
		res[i] = Notice{Level: string(n.Level), Source: n.Source, Message: n.Message, At: n.At}
	}
	return res
}

type SearchSeed struct {
	CategoryID int64 `json:"category_id"`
	Token      int64 `json:"token"`
}

// Screen is one rendered frame.
type Screen struct {
	View        string   `json:"view"`
	Requested   string   `json:"requested"`
	Needs       []string `json:"needs"`
	BackView    string   `json:"back_view"`
	ScrollEpoch uint64   `json:"scroll_epoch"`
	LoggedIn    bool     `json:"logged_in"`
	Location    string   `json:"location"`
	Theme       string   `json:"theme"`
	Language    string   `json:"language"`

	ActivePost *Post      `json:"active_post,omitempty"`
	Liked      bool       `json:"liked"`
	ShareURL   string     `json:"share_url,omitempty"`
	Editing    *Post      `json:"editing,omitempty"`
	Search     SearchSeed `json:"search"`

	Posts           []Post                            `json:"posts,omitempty"`
	Categories      []Category                        `json:"categories,omitempty"`
	Configs         []Config                          `json:"configs,omitempty"`
	PostCounts      map[int64]int                     `json:"post_counts,omitempty"`
	PublishedCount  int                               `json:"published_count"`
	Dashboard       *Dashboard                        `json:"dashboard,omitempty"`
	PublicSearch    *Query[PostFilters, Post]         `json:"public_search,omitempty"`
	AdminPosts      *Query[PostFilters, Post]         `json:"admin_posts,omitempty"`
	AdminCategories *Query[CategoryFilters, Category] `json:"admin_categories,omitempty"`

	Notices []Notice `json:"notices"`
}

func NewScreen(f *app.Frame) Screen {
	s := Screen{
		View:        f.View.String(),
		Requested:   f.Requested.String(),
		Needs:       needs(f.Needs),
		BackView:    f.BackView.String(),
		ScrollEpoch: f.ScrollEpoch,
		LoggedIn:    f.LoggedIn,
		Location:    f.Location,
		Theme:       string(f.Theme),
		Language:    string(f.Language),
		Liked:       f.Liked,
		ShareURL:    f.ShareURL,
		Search:      SearchSeed(f.Search),

		PostCounts:      f.PostCounts,
		PublishedCount:  f.PublishedCount,
		Dashboard:       NewDashboard(f.Dashboard),
		PublicSearch:    NewPostQuery(f.PublicSearch),
		AdminPosts:      NewPostQuery(f.AdminPosts),
		AdminCategories: NewCategoryQuery(f.AdminCategories),
		Notices:         NewNotices(f.Notices),
	}
	if f.ActivePost != nil {
		p := NewPostFromDomain(f.ActivePost)
		s.ActivePost = &p
	}
	if f.Editing != nil {
		p := NewPostFromDomain(f.Editing)
		s.Editing = &p
	}
	if f.Posts != nil {
		s.Posts = NewPosts(f.Posts)
	}
	if f.Categories != nil {
		s.Categories = NewCategories(f.Categories)
	}
	if f.Configs != nil {
		s.Configs = NewConfigs(f.Configs)
	}
	return s
}

func needs(deps []navigation.Dependency) []string {
	res := make([]string, len(deps))
	for i, d := range deps {
		res[i] = string(d)
	}
	return res
}
