package response

import (
	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/usecase/catalog"
)

type Category struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Color       string `json:"color"`
}

func NewCategoryFromDomain(c *domain.Category) Category {
	return Category{
		ID:          c.ID,
		Name:        c.Name,
		Slug:        c.Slug,
		Description: c.Description,
		Icon:        c.Icon,
		Color:       c.Color,
	}
}

func NewCategories(cats []domain.Category) []Category {
	res := make([]Category, len(cats))
	for i := range cats {
		res[i] = NewCategoryFromDomain(&cats[i])
	}
	return res
}

type Config struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Type  string `json:"type"`
}

func NewConfigs(configs []domain.Config) []Config {
	res := make([]Config, len(configs))
	for i, c := range configs {
		res[i] = Config{Key: c.Key, Value: c.Value, Type: string(c.Type)}
	}
	return res
}

type Asset struct {
	OriginalName string `json:"original_name"`
	URL          string `json:"url"`
	RelativePath string `json:"relative_path"`
	Size         int64  `json:"size"`
}

func NewAssets(assets []domain.UploadedAsset) []Asset {
	res := make([]Asset, len(assets))
	for i, a := range assets {
		res[i] = Asset{OriginalName: a.OriginalName, URL: a.URL, RelativePath: a.RelativePath, Size: a.Size}
	}
	return res
}

type ActivityPoint struct {
	Date    string `json:"date"`
	Label   string `json:"label"`
	Count   int    `json:"count"`
	Percent int    `json:"percent"`
}

type Dashboard struct {
	Total      int             `json:"total"`
	Published  int             `json:"published"`
	Drafts     int             `json:"drafts"`
	TotalViews int64           `json:"total_views"`
	TotalLikes int64           `json:"total_likes"`
	TopPosts   []Post          `json:"top_posts"`
	Activity   []ActivityPoint `json:"activity"`
}

func NewDashboard(d *catalog.Dashboard) *Dashboard {
	if d == nil {
		return nil
	}
	res := &Dashboard{
		Total:      d.Total,
		Published:  d.Published,
		Drafts:     d.Drafts,
		TotalViews: d.TotalViews,
		TotalLikes: d.TotalLikes,
		TopPosts:   NewPosts(d.TopPosts),
		Activity:   make([]ActivityPoint, len(d.Activity)),
	}
	for i, p := range d.Activity {
		res.Activity[i] = ActivityPoint(p)
	}
	return res
}
