package memory

import (
	"time"

	"github.com/Guyuepp/blog-client/domain"
)

// Seed fills g with a small demo data set and registers admin/admin.
func Seed(g *Gateway) {
	now := g.now().UTC()

	g.mu.Lock()
	g.users["admin"] = "admin"
	g.mu.Unlock()

	for _, c := range []domain.Config{
		{Key: "site_title", Value: "Liquid Thoughts", Type: domain.ConfigWebsiteSettings},
		{Key: "footer_text", Value: "Crafted with fluid dreams.", Type: domain.ConfigWebsiteSettings},
		{Key: domain.ConfigKeyLanguage, Value: string(domain.LanguageZH), Type: domain.ConfigWebsiteSettings},
		{Key: domain.ConfigKeyAuthorName, Value: "Douzhan", Type: domain.ConfigPersonalInfo},
		{Key: domain.ConfigKeyAuthorTitle, Value: "Personal Blogger", Type: domain.ConfigPersonalInfo},
	} {
		g.PutConfig(c)
	}

	for _, c := range []domain.Category{
		{ID: 1, Name: "Analytics", Slug: "analytics", Description: "Data insights and metric visualization", Icon: "analytics", Color: "#3b82f6"},
		{ID: 2, Name: "UX Design", Slug: "ux-design", Description: "User experience and interface principles", Icon: "architecture", Color: "#a855f7"},
		{ID: 3, Name: "Creative", Slug: "creative", Description: "Artistic inspiration and creative direction", Icon: "brush", Color: "#22c55e"},
		{ID: 4, Name: "Technology", Slug: "technology", Description: "Emerging tech and future trends", Icon: "rocket_launch", Color: "#f97316"},
		{ID: 5, Name: "Liquid Glass", Slug: "liquid-glass", Description: "Design systems and aesthetics", Icon: "bubble_chart", Color: "#06b6d4"},
	} {
		g.PutCategory(c)
	}

	day := 24 * time.Hour
	for _, p := range []domain.Post{
		{ID: "1", Title: "The art of frosted glass", Summary: "Balancing blur, transparency and depth in modern UI.", Content: "Glassmorphism introduces hierarchy through depth.", Status: domain.PostStatusPublished, CategoryID: 5, CreatedAt: now.Add(-2 * day), UpdatedAt: now},
		{ID: "2", Title: "A fluid look at frameworks", Summary: "Why the ecosystem decided the stack for this project.", Content: "Code is like water, it takes the shape of its container.", Status: domain.PostStatusPublished, CategoryID: 4, CreatedAt: now.Add(-5 * day), UpdatedAt: now.Add(-5 * day)},
		{ID: "3", Title: "Measuring what matters", Summary: "Metrics that survive contact with real users.", Content: "Start from the question, not the dashboard.", Status: domain.PostStatusPublished, CategoryID: 1, CreatedAt: now.Add(-8 * day), UpdatedAt: now.Add(-7 * day)},
		{ID: "4", Title: "Notes on motion", Summary: "Unfinished thoughts about animation curves.", Content: "Draft.", Status: domain.PostStatusDraft, CategoryID: 2, CreatedAt: now.Add(-1 * day), UpdatedAt: now.Add(-1 * day)},
	} {
		g.PutPost(p)
	}
}
