// Package metrics records post views and toggles likes, applying every authoritative
// counter result to all local projections of the post.
//
// Counters are never incremented locally: a projection only ever receives the counts
// the gateway returned. The local like mark is written after the gateway confirmed the
// change, so a failed call leaves both the mark and the displayed counts untouched.
package metrics

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/observability"
)

// Gateway is the counter part of the remote API.
type Gateway interface {
	RecordView(ctx context.Context, id string) (domain.PostMetric, error)
	Like(ctx context.Context, id string) (domain.PostMetric, error)
	Unlike(ctx context.Context, id string) (domain.PostMetric, error)
}

// PostSource answers the current counts of a post for calls that skip the gateway.
type PostSource interface {
	FindPost(id string) (domain.Post, bool)
}

type Options struct {
	// SwallowViewErrors drops view tracking failures instead of surfacing them.
	SwallowViewErrors bool
	Notifier          domain.Notifier
	Source            PostSource
}

// LikeResult is the outcome of a like or unlike.
type LikeResult struct {
	Metric domain.PostMetric
	Liked  bool
	// Changed is false when the call was a no-op decided from the local mark.
	Changed bool
}

type Synchronizer struct {
	gateway Gateway
	state   domain.ClientStateRepository
	opts    Options

	mu          sync.Mutex
	projections map[int]domain.PostProjection
	nextID      int
	worker      domain.ViewTrackWorker

	// tracked is the post whose view was recorded in the current detail activation.
	tracked    string
	activation uint64
	inflight   map[string]bool
}

var _ domain.ViewRecorder = (*Synchronizer)(nil)

func NewSynchronizer(g Gateway, s domain.ClientStateRepository, opts Options) *Synchronizer {
	return &Synchronizer{
		gateway:     g,
		state:       s,
		opts:        opts,
		projections: make(map[int]domain.PostProjection),
		inflight:    make(map[string]bool),
	}
}

// Register adds a projection to the fan-out set. The returned func removes it.
func (s *Synchronizer) Register(p domain.PostProjection) (unregister func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.nextID
	s.nextID++
	s.projections[id] = p
	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.projections, id)
	}
}

// UseWorker hands view tracking to w instead of calling the gateway inline.
func (s *Synchronizer) UseWorker(w domain.ViewTrackWorker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.worker = w
}

// Activate starts a new detail activation. The next TrackView of any post, including
// the one tracked last, records a view again.
func (s *Synchronizer) Activate(postID string) uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.activation++
	s.tracked = ""
	logrus.Debugf("detail activation %d for post %s", s.activation, postID)
	return s.activation
}

// TrackView records a view of postID at most once per activation. Repeated calls for
// the same post in one activation are no-ops, and so are calls carrying an activation
// that is no longer the current one.
func (s *Synchronizer) TrackView(ctx context.Context, activation uint64, postID string) error {
	s.mu.Lock()
	if postID == "" || s.tracked == postID {
		s.mu.Unlock()
		return nil
	}
	if activation != s.activation {
		s.mu.Unlock()
		logrus.Debugf("skip view of post %s: activation %d is not current", postID, activation)
		return nil
	}
	s.tracked = postID
	w := s.worker
	s.mu.Unlock()

	if w != nil {
		w.Send(postID)
		return nil
	}
	_, err := s.RecordView(ctx, postID)
	if err != nil {
		return s.viewFailed(postID, err)
	}
	return nil
}

// RecordView records one view and fans the returned counts out.
func (s *Synchronizer) RecordView(ctx context.Context, postID string) (domain.PostMetric, error) {
	m, err := s.gateway.RecordView(ctx, postID)
	if err != nil {
		return domain.PostMetric{}, err
	}
	s.fanOut(domain.MetricView, m)
	return m, nil
}

// ViewFailed applies the view error policy to a failure reported by an async worker.
func (s *Synchronizer) ViewFailed(postID string, err error) {
	_ = s.viewFailed(postID, err)
}

func (s *Synchronizer) viewFailed(postID string, err error) error {
	if s.opts.SwallowViewErrors {
		logrus.Debugf("view tracking of post %s failed: %v", postID, err)
		return nil
	}
	s.notify("posts.view", err, "Failed to record view")
	return err
}

// Liked reports the local like mark of postID.
func (s *Synchronizer) Liked(ctx context.Context, postID string) bool {
	ok, err := s.state.IsLiked(ctx, postID)
	if err != nil {
		logrus.Warnf("failed to read like mark of post %s: %v", postID, err)
		return false
	}
	return ok
}

// Like likes postID unless the local mark says it already is.
func (s *Synchronizer) Like(ctx context.Context, postID string) (LikeResult, error) {
	if s.Liked(ctx, postID) {
		return s.unchanged(postID, true), nil
	}
	return s.mutate(ctx, postID, domain.MetricLike)
}

// Unlike removes the like of postID unless the local mark says there is none.
func (s *Synchronizer) Unlike(ctx context.Context, postID string) (LikeResult, error) {
	if !s.Liked(ctx, postID) {
		return s.unchanged(postID, false), nil
	}
	return s.mutate(ctx, postID, domain.MetricUnlike)
}

// ToggleLike derives the next action from the local mark. A toggle of the same post
// still in flight is rejected with ErrBusy.
func (s *Synchronizer) ToggleLike(ctx context.Context, postID string) (LikeResult, error) {
	if s.Liked(ctx, postID) {
		return s.mutate(ctx, postID, domain.MetricUnlike)
	}
	return s.mutate(ctx, postID, domain.MetricLike)
}

func (s *Synchronizer) mutate(ctx context.Context, postID string, action domain.MetricAction) (LikeResult, error) {
	if postID == "" {
		return LikeResult{}, domain.ErrBadParamInput
	}
	s.mu.Lock()
	if s.inflight[postID] {
		s.mu.Unlock()
		return LikeResult{}, domain.ErrBusy
	}
	s.inflight[postID] = true
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		delete(s.inflight, postID)
		s.mu.Unlock()
	}()

	call := s.gateway.Like
	if action == domain.MetricUnlike {
		call = s.gateway.Unlike
	}
	m, err := call(ctx, postID)
	if err != nil {
		s.notify("posts."+strings.ToLower(action.String()), err, "Like failed, please try again later")
		return LikeResult{}, err
	}

	s.fanOut(action, m)

	liked := action == domain.MetricLike
	var markErr error
	if liked {
		markErr = s.state.MarkLiked(ctx, postID)
	} else {
		markErr = s.state.UnmarkLiked(ctx, postID)
	}
	if markErr != nil {
		logrus.Errorf("failed to persist like mark of post %s: %v", postID, markErr)
	}
	return LikeResult{Metric: m, Liked: liked, Changed: true}, nil
}

func (s *Synchronizer) unchanged(postID string, liked bool) LikeResult {
	res := LikeResult{Metric: domain.PostMetric{PostID: postID}, Liked: liked}
	if s.opts.Source != nil {
		if p, ok := s.opts.Source.FindPost(postID); ok {
			res.Metric.ViewCount = p.ViewCount
			res.Metric.LikeCount = p.LikeCount
		}
	}
	return res
}

func (s *Synchronizer) fanOut(action domain.MetricAction, m domain.PostMetric) {
	s.mu.Lock()
	targets := make([]domain.PostProjection, 0, len(s.projections))
	for _, p := range s.projections {
		targets = append(targets, p)
	}
	s.mu.Unlock()

	for _, p := range targets {
		p.ApplyMetric(m)
	}
	observability.MetricFanouts.WithLabelValues(action.String()).Inc()
}

func (s *Synchronizer) notify(source string, err error, fallback string) {
	logrus.Warnf("%s failed: %v", source, err)
	if s.opts.Notifier == nil {
		return
	}
	s.opts.Notifier.Notify(domain.Notice{
		Level:   domain.NoticeError,
		Source:  source,
		Message: domain.Message(err, fallback),
		At:      time.Now(),
	})
}
