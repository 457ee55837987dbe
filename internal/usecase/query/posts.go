package query

import "github.com/Guyuepp/blog-client/domain"

// Page size choices of the built-in surfaces.
var (
	PublicSearchPageSizes = []int{6, 9, 12, 20}
	AdminPostPageSizes    = []int{5, 10, 20, 50}
	AdminCatPageSizes     = []int{6, 12, 24, 48}
)

const (
	PublicSearchPageSize = 9
	AdminPostPageSize    = 10
	AdminCatPageSize     = 6
)

type PostController = Controller[domain.PostFilters, domain.Post]
type CategoryController = Controller[domain.CategoryFilters, domain.Category]

// PublicSearchDefaults is the reset target of the public search surface: published
// posts, scoped to categoryID when it is set.
func PublicSearchDefaults(categoryID int64) domain.PostFilters {
	return domain.PostFilters{Status: domain.PostStatusPublished, CategoryID: categoryID}
}

type postProjection struct {
	c *PostController
}

// AsPostProjection lets a post surface follow counter updates of the posts it holds.
func AsPostProjection(c *PostController) domain.PostProjection {
	return postProjection{c: c}
}

func (p postProjection) ApplyMetric(m domain.PostMetric) {
	p.c.Patch(func(post *domain.Post) bool {
		if post.ID != m.PostID {
			return false
		}
		*post = post.WithMetric(m)
		return true
	})
}
