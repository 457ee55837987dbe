package domain

// View identifies the screen the client shows. Exactly one is active at a time.
type View string

const (
	ViewHome            View = "home"
	ViewCategories      View = "categories"
	ViewPostSearch      View = "post-search"
	ViewPostDetail      View = "post-detail"
	ViewAbout           View = "about"
	ViewLogin           View = "login"
	ViewAdminDashboard  View = "admin-dashboard"
	ViewAdminPosts      View = "admin-posts"
	ViewAdminCategories View = "admin-categories"
	ViewAdminSettings   View = "admin-settings"
	ViewPostEditor      View = "post-editor"

	// ViewLoading is rendered while the initial data load runs. It is never stored as
	// the active view.
	ViewLoading View = "loading"
)

var views = map[View]bool{
	ViewHome:            false,
	ViewCategories:      false,
	ViewPostSearch:      false,
	ViewPostDetail:      false,
	ViewAbout:           false,
	ViewLogin:           false,
	ViewAdminDashboard:  true,
	ViewAdminPosts:      true,
	ViewAdminCategories: true,
	ViewAdminSettings:   true,
	ViewPostEditor:      true,
}

// ParseView validates s as a navigable view.
func ParseView(s string) (View, error) {
	v := View(s)
	if _, ok := views[v]; !ok {
		return "", ErrBadParamInput
	}
	return v, nil
}

// IsAdmin reports whether v requires an authenticated session.
func (v View) IsAdmin() bool {
	return views[v]
}

func (v View) String() string {
	return string(v)
}
