package domain

import "context"

type MetricAction int8

const (
	MetricView   MetricAction = 0
	MetricLike   MetricAction = 1
	MetricUnlike MetricAction = -1
)

func (m MetricAction) String() string {
	switch m {
	case MetricView:
		return "VIEW"
	case MetricLike:
		return "LIKE"
	case MetricUnlike:
		return "UNLIKE"
	default:
		return "UNKNOWN"
	}
}

// ViewRecorder records one view of a post and fans the result out.
type ViewRecorder interface {
	RecordView(ctx context.Context, postID string) (PostMetric, error)
}

type ViewTrackWorker interface {
	Start(ctx context.Context)

	// Send queues a view of postID. It never blocks; tasks are dropped when the queue is full.
	Send(postID string)
}
