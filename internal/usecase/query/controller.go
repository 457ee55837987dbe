// Package query drives one paginated, filtered query surface against a remote
// collection.
//
// A surface keeps two filter sets: the draft bound to form inputs and the applied set
// actually used by the last fetch. Every fetch takes a generation number when it is
// issued; a result is committed only if no newer fetch has been issued since, so a
// reordered network never shows an older page over a newer one.
package query

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/observability"
)

// Fetcher loads one page of the collection.
type Fetcher[F any, T any] func(ctx context.Context, req domain.PageRequest[F]) (domain.Page[T], error)

type Options[F comparable] struct {
	// Surface names the query surface in notices, logs and metrics.
	Surface  string
	Defaults F
	// PageSize is the initial and fallback page size.
	PageSize int
	// PageSizes lists the accepted page sizes; empty accepts any positive size.
	PageSizes []int
	Notifier  domain.Notifier
}

// Snapshot is a consistent copy of a surface's state.
type Snapshot[F any, T any] struct {
	Draft      F
	Applied    F
	Page       int
	PageSize   int
	PageSizes  []int
	Records    []T
	Total      int64
	TotalPages int
	Loading    bool
	Generation uint64
}

type Controller[F comparable, T any] struct {
	mu       sync.Mutex
	surface  string
	fetch    Fetcher[F, T]
	notifier domain.Notifier

	defaults        F
	defaultPageSize int
	pageSizes       []int

	draft    F
	applied  F
	page     int
	pageSize int

	records []T
	total   int64
	loading bool

	// issued is the generation of the most recently issued fetch.
	issued uint64

	seeded    bool
	seedToken int64
}

// NewController will create a surface on page 1 with both filter sets at the defaults.
// Nothing is fetched until Load or a mutator is called.
func NewController[F comparable, T any](fetch Fetcher[F, T], opts Options[F]) *Controller[F, T] {
	size := opts.PageSize
	if size <= 0 {
		size = 10
	}
	return &Controller[F, T]{
		surface:         opts.Surface,
		fetch:           fetch,
		notifier:        opts.Notifier,
		defaults:        opts.Defaults,
		defaultPageSize: size,
		pageSizes:       slices.Clone(opts.PageSizes),
		draft:           opts.Defaults,
		applied:         opts.Defaults,
		page:            1,
		pageSize:        size,
		records:         []T{},
	}
}

// Load fetches the current page with the applied filters.
func (c *Controller[F, T]) Load(ctx context.Context) error {
	c.mu.Lock()
	gen, req := c.issueLocked()
	c.mu.Unlock()
	return c.run(ctx, gen, req)
}

// Reload re-fetches the current window, e.g. after a create or delete on the
// collection.
func (c *Controller[F, T]) Reload(ctx context.Context) error {
	return c.Load(ctx)
}

// SetPage moves to page, keeping the filters. Pages below 1 are clamped to 1.
func (c *Controller[F, T]) SetPage(ctx context.Context, page int) error {
	c.mu.Lock()
	page = max(page, 1)
	if page == c.page {
		c.mu.Unlock()
		return nil
	}
	c.page = page
	gen, req := c.issueLocked()
	c.mu.Unlock()
	return c.run(ctx, gen, req)
}

// SetPageSize changes the window size and goes back to page 1. Unsupported sizes fall
// back to the default size.
func (c *Controller[F, T]) SetPageSize(ctx context.Context, size int) error {
	c.mu.Lock()
	if !c.validSizeLocked(size) {
		size = c.defaultPageSize
	}
	if size == c.pageSize && c.page == 1 {
		c.mu.Unlock()
		return nil
	}
	c.pageSize = size
	c.page = 1
	gen, req := c.issueLocked()
	c.mu.Unlock()
	return c.run(ctx, gen, req)
}

// SetDraft replaces the draft filters. Nothing is fetched.
func (c *Controller[F, T]) SetDraft(f F) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.draft = f
}

// EditDraft mutates the draft filters in place. Nothing is fetched.
func (c *Controller[F, T]) EditDraft(edit func(*F)) {
	c.mu.Lock()
	defer c.mu.Unlock()
	edit(&c.draft)
}

// Apply commits the draft as the applied filters and fetches page 1.
func (c *Controller[F, T]) Apply(ctx context.Context) error {
	c.mu.Lock()
	c.applied = c.draft
	c.page = 1
	gen, req := c.issueLocked()
	c.mu.Unlock()
	return c.run(ctx, gen, req)
}

// Reset puts both filter sets back to the defaults and fetches page 1.
func (c *Controller[F, T]) Reset(ctx context.Context) error {
	c.mu.Lock()
	c.draft = c.defaults
	c.applied = c.defaults
	c.page = 1
	gen, req := c.issueLocked()
	c.mu.Unlock()
	return c.run(ctx, gen, req)
}

// Seed re-enters the surface with new defaults. A token different from the last seed
// forces a full reset even when the defaults are unchanged; the same token with the same
// defaults is a no-op.
func (c *Controller[F, T]) Seed(ctx context.Context, defaults F, token int64) error {
	c.mu.Lock()
	if c.seeded && token == c.seedToken && defaults == c.defaults {
		c.mu.Unlock()
		return nil
	}
	c.seeded = true
	c.seedToken = token
	c.defaults = defaults
	c.draft = defaults
	c.applied = defaults
	c.page = 1
	gen, req := c.issueLocked()
	c.mu.Unlock()
	return c.run(ctx, gen, req)
}

// Patch rewrites the loaded records in place; edit reports whether it changed a record.
func (c *Controller[F, T]) Patch(edit func(*T) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	var next []T
	for i := range c.records {
		rec := c.records[i]
		if edit(&rec) {
			if next == nil {
				next = slices.Clone(c.records)
			}
			next[i] = rec
		}
	}
	if next == nil {
		return false
	}
	c.records = next
	return true
}

func (c *Controller[F, T]) Snapshot() Snapshot[F, T] {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot[F, T]{
		Draft:      c.draft,
		Applied:    c.applied,
		Page:       c.page,
		PageSize:   c.pageSize,
		PageSizes:  slices.Clone(c.pageSizes),
		Records:    slices.Clone(c.records),
		Total:      c.total,
		TotalPages: TotalPages(c.total, c.pageSize),
		Loading:    c.loading,
		Generation: c.issued,
	}
}

// TotalPages is the number of pages needed for total records, never less than 1.
func TotalPages(total int64, pageSize int) int {
	if pageSize <= 0 || total <= 0 {
		return 1
	}
	return int((total + int64(pageSize) - 1) / int64(pageSize))
}

func (c *Controller[F, T]) validSizeLocked(size int) bool {
	if size <= 0 {
		return false
	}
	return len(c.pageSizes) == 0 || slices.Contains(c.pageSizes, size)
}

func (c *Controller[F, T]) issueLocked() (uint64, domain.PageRequest[F]) {
	c.issued++
	c.loading = true
	return c.issued, domain.PageRequest[F]{Page: c.page, PageSize: c.pageSize, Filters: c.applied}
}

// run performs the fetch without holding the lock and commits the result only if gen is
// still the latest issued generation.
func (c *Controller[F, T]) run(ctx context.Context, gen uint64, req domain.PageRequest[F]) error {
	page, err := c.fetch(ctx, req)

	c.mu.Lock()
	if gen != c.issued {
		c.mu.Unlock()
		observability.StaleQueryResults.WithLabelValues(c.surface).Inc()
		logrus.Debugf("%s: dropping result of generation %d, latest is %d", c.surface, gen, c.issued)
		return nil
	}
	c.loading = false
	if err != nil {
		c.mu.Unlock()
		logrus.Warnf("%s: query page %d failed: %v", c.surface, req.Page, err)
		if c.notifier != nil {
			c.notifier.Notify(domain.Notice{
				Level:   domain.NoticeError,
				Source:  c.surface,
				Message: domain.Message(err, "query failed"),
				At:      time.Now(),
			})
		}
		return err
	}
	c.records = page.Records
	if c.records == nil {
		c.records = []T{}
	}
	c.total = page.Total
	c.mu.Unlock()
	return nil
}
