package catalog

import (
	"math"
	"sort"
	"time"

	"github.com/Guyuepp/blog-client/domain"
)

const (
	activityDays = 12
	topPostLimit = 5
)

// ActivityPoint is one day of the dashboard activity chart.
type ActivityPoint struct {
	Date    string // yyyy-mm-dd, UTC
	Label   string // mm/dd
	Count   int
	Percent int // bar height, never below 8
}

// Dashboard is the admin overview derived from the bulk post collection.
type Dashboard struct {
	Total      int
	Published  int
	Drafts     int
	TotalViews int64
	TotalLikes int64
	TopPosts   []domain.Post
	Activity   []ActivityPoint
}

// PublishedPosts returns the published posts in bulk collection order.
func (s *Service) PublishedPosts() []domain.Post {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make([]domain.Post, 0, len(s.posts))
	for _, p := range s.posts {
		if p.Status == domain.PostStatusPublished {
			res = append(res, p)
		}
	}
	return res
}

// PostCountByCategory counts published posts per category id.
func (s *Service) PostCountByCategory() map[int64]int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	res := make(map[int64]int, len(s.categories))
	for _, c := range s.categories {
		res[c.ID] = 0
	}
	for _, p := range s.posts {
		if p.Status == domain.PostStatusPublished {
			res[p.CategoryID]++
		}
	}
	return res
}

// Dashboard computes the admin stats as of now.
func (s *Service) Dashboard(now time.Time) Dashboard {
	posts := s.Posts()

	d := Dashboard{Total: len(posts)}
	for _, p := range posts {
		switch p.Status {
		case domain.PostStatusPublished:
			d.Published++
		case domain.PostStatusDraft:
			d.Drafts++
		}
		d.TotalViews += p.ViewCount
		d.TotalLikes += p.LikeCount
	}

	top := make([]domain.Post, len(posts))
	copy(top, posts)
	sort.SliceStable(top, func(i, j int) bool {
		return top[i].ViewCount+top[i].LikeCount > top[j].ViewCount+top[j].LikeCount
	})
	if len(top) > topPostLimit {
		top = top[:topPostLimit]
	}
	d.TopPosts = top
	d.Activity = activitySeries(posts, now)
	return d
}

func activitySeries(posts []domain.Post, now time.Time) []ActivityPoint {
	now = now.UTC()
	points := make([]ActivityPoint, activityDays)
	index := make(map[string]int, activityDays)
	for i := 0; i < activityDays; i++ {
		day := now.AddDate(0, 0, i-activityDays+1)
		key := day.Format(time.DateOnly)
		points[i] = ActivityPoint{Date: key, Label: day.Format("01/02")}
		index[key] = i
	}

	for _, p := range posts {
		at := p.UpdatedAt
		if at.IsZero() {
			at = p.CreatedAt
		}
		if at.IsZero() {
			continue
		}
		if i, ok := index[at.UTC().Format(time.DateOnly)]; ok {
			points[i].Count++
		}
	}

	maxCount := 1
	for _, p := range points {
		maxCount = max(maxCount, p.Count)
	}
	for i := range points {
		pct := int(math.Round(float64(points[i].Count) / float64(maxCount) * 100))
		points[i].Percent = max(8, pct)
	}
	return points
}
