package workers

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/observability"
)

const (
	queueSize     = 1024
	batchSize     = 100
	flushInterval = time.Second
)

type ViewTask struct {
	PostID string
	At     time.Time
}

// ErrorHandler receives the failures of queued views.
type ErrorHandler func(postID string, err error)

type viewTrackWorker struct {
	recorder domain.ViewRecorder
	onError  ErrorHandler
	ch       chan ViewTask
}

var _ domain.ViewTrackWorker = (*viewTrackWorker)(nil)

func NewViewTrackWorker(r domain.ViewRecorder, onError ErrorHandler) *viewTrackWorker {
	return &viewTrackWorker{
		recorder: r,
		onError:  onError,
		ch:       make(chan ViewTask, queueSize),
	}
}

// Send queues a view of postID, dropping it when the queue is full.
func (w *viewTrackWorker) Send(postID string) {
	select {
	case w.ch <- ViewTask{PostID: postID, At: time.Now()}:
	default:
		observability.ViewTasksDropped.Inc()
		logrus.Info("ViewTrackWorker's channel is full, task dropped")
	}
}

// Start records queued views in batches until ctx is done, then flushes what is left
// with a fresh deadline.
func (w *viewTrackWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(flushInterval)
	defer ticker.Stop()

	batch := make([]ViewTask, 0, batchSize)
	for {
		select {
		case task := <-w.ch:
			batch = append(batch, task)
			if len(batch) == batchSize {
				w.flush(ctx, batch)
				batch = make([]ViewTask, 0, batchSize)
			}
		case <-ticker.C:
			if len(batch) > 0 {
				w.flush(ctx, batch)
				batch = make([]ViewTask, 0, batchSize)
			}
		case <-ctx.Done():
			logrus.Info("shutting down ViewTrackWorker, flushing remaining tasks...")
			batch = w.drain(batch)
			flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			w.flush(flushCtx, batch)
			cancel()
			return
		}
	}
}

func (w *viewTrackWorker) drain(batch []ViewTask) []ViewTask {
	for {
		select {
		case task := <-w.ch:
			batch = append(batch, task)
		default:
			return batch
		}
	}
}

// flush records every view of the batch in order. Views are not merged: each one is a
// separate count on the server.
func (w *viewTrackWorker) flush(ctx context.Context, batch []ViewTask) {
	for _, task := range batch {
		if _, err := w.recorder.RecordView(ctx, task.PostID); err != nil {
			if w.onError != nil {
				w.onError(task.PostID, err)
				continue
			}
			logrus.Warnf("failed to record view of post %s: %v", task.PostID, err)
		}
	}
}
