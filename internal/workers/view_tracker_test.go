package workers_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/workers"
)

type recorder struct {
	mu      sync.Mutex
	ids     []string
	failing map[string]bool
}

func (r *recorder) RecordView(ctx context.Context, postID string) (domain.PostMetric, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failing[postID] {
		return domain.PostMetric{}, errors.New("unavailable")
	}
	r.ids = append(r.ids, postID)
	return domain.PostMetric{PostID: postID, ViewCount: int64(len(r.ids))}, nil
}

func (r *recorder) recorded() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.ids...)
}

func TestViewTrackWorkerFlushesOnTick(t *testing.T) {
	rec := &recorder{}
	w := workers.NewViewTrackWorker(rec, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Start(ctx)

	w.Send("a")
	w.Send("b")
	assert.Eventually(t, func() bool {
		return len(rec.recorded()) == 2
	}, 3*time.Second, 20*time.Millisecond)
	assert.Equal(t, []string{"a", "b"}, rec.recorded())
}

func TestViewTrackWorkerFlushesRemainingOnShutdown(t *testing.T) {
	rec := &recorder{}
	w := workers.NewViewTrackWorker(rec, nil)

	w.Send("a")
	w.Send("a")
	w.Send("b")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	done := make(chan struct{})
	go func() {
		w.Start(ctx)
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("worker did not stop")
	}
	// Repeated views are separate counts.
	assert.Equal(t, []string{"a", "a", "b"}, rec.recorded())
}

func TestViewTrackWorkerDropsWhenFull(t *testing.T) {
	rec := &recorder{}
	w := workers.NewViewTrackWorker(rec, nil)

	for i := 0; i < 1100; i++ {
		w.Send("p")
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)
	assert.Len(t, rec.recorded(), 1024)
}

func TestViewTrackWorkerReportsFailures(t *testing.T) {
	rec := &recorder{failing: map[string]bool{"bad": true}}
	var mu sync.Mutex
	var failed []string
	w := workers.NewViewTrackWorker(rec, func(postID string, err error) {
		mu.Lock()
		defer mu.Unlock()
		require.Error(t, err)
		failed = append(failed, postID)
	})

	w.Send("ok")
	w.Send("bad")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	w.Start(ctx)

	assert.Equal(t, []string{"ok"}, rec.recorded())
	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, []string{"bad"}, failed)
}
