// Package notice collects user-visible notices for the renderer to display.
package notice

import (
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
)

const DefaultCapacity = 50

// Feed keeps the most recent notices in arrival order. The oldest is dropped once
// capacity is reached.
type Feed struct {
	mu       sync.Mutex
	capacity int
	items    []domain.Notice
}

var _ domain.Notifier = (*Feed)(nil)

func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Feed{capacity: capacity}
}

func (f *Feed) Notify(n domain.Notice) {
	if n.At.IsZero() {
		n.At = time.Now()
	}
	entry := logrus.WithField("source", n.Source)
	if n.Level == domain.NoticeError {
		entry.Warn(n.Message)
	} else {
		entry.Info(n.Message)
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.items) == f.capacity {
		f.items = f.items[1:]
	}
	f.items = append(f.items, n)
}

// Drain returns every pending notice and empties the feed.
func (f *Feed) Drain() []domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	items := f.items
	f.items = nil
	if items == nil {
		return []domain.Notice{}
	}
	return items
}

// Pending returns a copy of the pending notices without consuming them.
func (f *Feed) Pending() []domain.Notice {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Notice{}, f.items...)
}
