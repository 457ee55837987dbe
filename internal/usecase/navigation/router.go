// Package navigation is the view state machine of the client. It owns the active view,
// keeps admin views behind the session and resolves a deep-linked post once the bulk
// data has loaded.
package navigation

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Guyuepp/blog-client/domain"
)

// Catalog is the bulk entity cache the router reads from.
type Catalog interface {
	Refresh(ctx context.Context) error
	FindPost(id string) (domain.Post, bool)
	SavePost(ctx context.Context, in domain.PostInput) (domain.Post, error)
}

// Activator is told about every detail activation.
type Activator interface {
	Activate(postID string) uint64
}

type OpenOptions struct {
	// SuppressURL keeps the location untouched, used when it already names the post.
	SuppressURL bool
}

// SearchSeed is what the public search surface is re-entered with.
type SearchSeed struct {
	CategoryID int64
	Token      int64
}

// Screen is what the renderer shows right now.
type Screen struct {
	View        domain.View
	Requested   domain.View
	Needs       []Dependency
	ActivePost  *domain.Post
	BackView    domain.View
	Editing     *domain.Post
	Search      SearchSeed
	ScrollEpoch uint64
	// Activation identifies the detail activation of ActivePost.
	Activation uint64
	LoggedIn   bool
	Location   string
}

type Options struct {
	StartURL  string
	Activator Activator
	Notifier  domain.Notifier
	// Now is the clock used for seed tokens.
	Now func() time.Time
}

type Router struct {
	session   domain.SessionUsecase
	catalog   Catalog
	activator Activator
	notifier  domain.Notifier
	now       func() time.Time

	mu          sync.RWMutex
	view        domain.View
	active      *domain.Post
	backView    domain.View
	editing     *domain.Post
	search      SearchSeed
	scrollEpoch uint64
	activation  uint64
	location    Location
	loading     bool

	pendingShared string
	resolved      bool
}

var _ domain.PostProjection = (*Router)(nil)

// NewRouter will create a router on home, loading until Bootstrap finishes. A post id
// in the start URL is kept for ResolveDeepLink.
func NewRouter(s domain.SessionUsecase, c Catalog, opts Options) *Router {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	loc := ParseLocation(opts.StartURL)
	return &Router{
		session:       s,
		catalog:       c,
		activator:     opts.Activator,
		notifier:      opts.Notifier,
		now:           now,
		view:          domain.ViewHome,
		backView:      domain.ViewHome,
		location:      loc,
		loading:       true,
		pendingShared: loc.Post(),
	}
}

// Bootstrap validates the session and loads the bulk collections concurrently, then
// leaves the loading state and resolves the deep link.
func (r *Router) Bootstrap(ctx context.Context) error {
	var g errgroup.Group
	g.Go(func() error {
		r.session.Bootstrap(ctx)
		return nil
	})
	g.Go(func() error {
		return r.catalog.Refresh(ctx)
	})
	err := g.Wait()
	if err != nil {
		r.notify(err, "Failed to load data, make sure the server is running")
	}

	r.mu.Lock()
	r.loading = false
	r.mu.Unlock()

	r.ResolveDeepLink()
	return err
}

// ResolveDeepLink opens the post named by the start URL once loading is over. It runs
// at most once per router; an unknown id is stripped from the location.
func (r *Router) ResolveDeepLink() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.loading || r.resolved {
		return
	}
	r.resolved = true
	id := r.pendingShared
	r.pendingShared = ""
	if id == "" {
		return
	}
	post, ok := r.catalog.FindPost(id)
	if !ok {
		logrus.Infof("shared post %s not found, clearing it from the location", id)
		r.location = r.location.WithoutPost()
		return
	}
	r.openLocked(post, domain.ViewHome, OpenOptions{SuppressURL: true})
}

// Navigate moves to a public or admin view. post-detail needs OpenPost.
func (r *Router) Navigate(v domain.View) error {
	if v == domain.ViewPostDetail || v == domain.ViewLoading {
		return domain.ErrBadParamInput
	}
	if _, err := domain.ParseView(v.String()); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = r.location.WithoutPost()
	if v == domain.ViewPostEditor {
		r.editing = nil
	}
	r.view = v
	return nil
}

// OpenPost shows post in the detail view; Back returns to from.
func (r *Router) OpenPost(post domain.Post, from domain.View, opts OpenOptions) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.openLocked(post, from, opts)
}

func (r *Router) openLocked(post domain.Post, from domain.View, opts OpenOptions) {
	if from == "" || from == domain.ViewPostDetail || from == domain.ViewLoading {
		from = domain.ViewHome
	}
	p := post
	r.active = &p
	r.backView = from
	r.view = domain.ViewPostDetail
	r.scrollEpoch++
	if !opts.SuppressURL {
		r.location = r.location.WithPost(post.ID)
	}
	if r.activator != nil {
		r.activation = r.activator.Activate(post.ID)
	}
}

// Back leaves the detail view or the editor.
func (r *Router) Back() {
	r.mu.Lock()
	defer r.mu.Unlock()
	switch r.view {
	case domain.ViewPostDetail:
		r.location = r.location.WithoutPost()
		r.view = r.backView
	case domain.ViewPostEditor:
		r.editing = nil
		r.view = domain.ViewAdminPosts
	default:
		r.location = r.location.WithoutPost()
		r.view = domain.ViewHome
	}
}

// BrowseCategory opens the public search scoped to categoryID with a fresh seed token,
// forcing the search surface to reset.
func (r *Router) BrowseCategory(categoryID int64) SearchSeed {
	r.mu.Lock()
	defer r.mu.Unlock()
	token := r.now().UnixNano()
	if token <= r.search.Token {
		token = r.search.Token + 1
	}
	r.search = SearchSeed{CategoryID: categoryID, Token: token}
	r.location = r.location.WithoutPost()
	r.view = domain.ViewPostSearch
	r.scrollEpoch++
	return r.search
}

// Login signs in and, on success, moves to the dashboard and reloads the bulk data. A
// failed attempt leaves the view unchanged.
func (r *Router) Login(ctx context.Context, cred domain.Credentials) bool {
	if !r.session.Login(ctx, cred) {
		return false
	}
	r.mu.Lock()
	r.view = domain.ViewAdminDashboard
	r.mu.Unlock()

	if err := r.catalog.Refresh(ctx); err != nil {
		r.notify(err, "Failed to reload data")
	}
	return true
}

// Logout ends the session and returns home.
func (r *Router) Logout(ctx context.Context) {
	r.session.Logout(ctx)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.location = r.location.WithoutPost()
	r.editing = nil
	r.view = domain.ViewHome
}

// OpenEditor opens the post editor for post, or for a new post when post is nil.
func (r *Router) OpenEditor(post *domain.Post) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if post != nil {
		p := *post
		r.editing = &p
	} else {
		r.editing = nil
	}
	r.view = domain.ViewPostEditor
}

// SavePost saves the editor content and returns to the post list. On failure the
// editor stays open.
func (r *Router) SavePost(ctx context.Context, in domain.PostInput) (domain.Post, error) {
	saved, err := r.catalog.SavePost(ctx, in)
	if err != nil && saved.ID == "" {
		return domain.Post{}, err
	}
	r.mu.Lock()
	r.editing = nil
	r.view = domain.ViewAdminPosts
	r.mu.Unlock()
	return saved, err
}

// ApplyMetric keeps the counts of the open post current.
func (r *Router) ApplyMetric(m domain.PostMetric) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.active == nil || r.active.ID != m.PostID {
		return
	}
	p := r.active.WithMetric(m)
	r.active = &p
}

// Screen resolves what to render. The session is checked on every call, so an admin
// view whose session expired renders the login screen.
func (r *Router) Screen() Screen {
	loggedIn := r.session.LoggedIn()

	r.mu.RLock()
	defer r.mu.RUnlock()
	s := Screen{
		Requested:   r.view,
		BackView:    r.backView,
		Search:      r.search,
		ScrollEpoch: r.scrollEpoch,
		LoggedIn:    loggedIn,
		Location:    r.location.String(),
	}
	switch {
	case r.loading:
		s.View = domain.ViewLoading
	case r.view == domain.ViewLogin || (r.view.IsAdmin() && !loggedIn):
		s.View = domain.ViewLogin
	default:
		s.View = r.view
	}
	s.Needs = DependenciesOf(s.View)
	if s.View == domain.ViewPostDetail && r.active != nil {
		p := *r.active
		s.ActivePost = &p
		s.Activation = r.activation
	}
	if s.View == domain.ViewPostEditor && r.editing != nil {
		p := *r.editing
		s.Editing = &p
	}
	return s
}

func (r *Router) Location() Location {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.location
}

// ShareURL is the address that reopens post id.
func (r *Router) ShareURL(id string) string {
	return r.Location().ShareURL(id)
}

func (r *Router) notify(err error, fallback string) {
	if r.notifier == nil {
		logrus.Errorf("%s: %v", fallback, err)
		return
	}
	r.notifier.Notify(domain.Notice{
		Level:   domain.NoticeError,
		Source:  "navigation",
		Message: domain.Message(err, fallback),
		At:      r.now(),
	})
}
