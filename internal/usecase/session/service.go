// Package session owns the process-wide logged-in flag of the admin console.
package session

import (
	"context"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
)

type Service struct {
	auth     domain.AuthGateway
	state    domain.ClientStateRepository
	validate *validator.Validate

	mu       sync.RWMutex
	loggedIn bool
	username string
}

var _ domain.SessionUsecase = (*Service)(nil)

// NewService will create a logged-out session. Bootstrap validates a stored token.
func NewService(a domain.AuthGateway, s domain.ClientStateRepository, v *validator.Validate) *Service {
	if v == nil {
		v = validator.New()
	}
	return &Service{
		auth:     a,
		state:    s,
		validate: v,
	}
}

// Bootstrap re-validates the stored token against the gateway. A failed check degrades
// to logged out and drops the token; a token the server rejects stays stored.
func (s *Service) Bootstrap(ctx context.Context) bool {
	if s.state.Token(ctx) == "" {
		s.set(false, "")
		return false
	}
	ok, err := s.auth.CheckSession(ctx)
	if err != nil {
		logrus.Warnf("session check failed, continuing logged out: %v", err)
		s.clearToken(ctx)
		s.set(false, "")
		return false
	}
	s.set(ok, "")
	return ok
}

// Login exchanges the credentials for a token. Bad credentials and transport errors are
// not told apart; both clear the stored token and report false.
func (s *Service) Login(ctx context.Context, cred domain.Credentials) bool {
	if err := s.validate.StructCtx(ctx, cred); err != nil {
		s.clearToken(ctx)
		s.set(false, "")
		return false
	}
	token, err := s.auth.Login(ctx, cred)
	if err != nil {
		logrus.Infof("login of %q rejected: %v", cred.Username, err)
		s.clearToken(ctx)
		s.set(false, "")
		return false
	}
	if err := s.state.SetToken(ctx, token); err != nil {
		logrus.Errorf("failed to persist auth token: %v", err)
		s.set(false, "")
		return false
	}
	s.set(true, cred.Username)
	return true
}

// Logout ends the session. The token is cleared even when the gateway call fails.
func (s *Service) Logout(ctx context.Context) {
	if err := s.auth.Logout(ctx); err != nil {
		logrus.Warnf("logout call failed: %v", err)
	}
	s.clearToken(ctx)
	s.set(false, "")
}

func (s *Service) LoggedIn() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loggedIn
}

// Current returns the session as seen by this client.
func (s *Service) Current(ctx context.Context) domain.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	sess := domain.Session{LoggedIn: s.loggedIn, Username: s.username}
	if s.loggedIn {
		sess.Token = s.state.Token(ctx)
	}
	return sess
}

func (s *Service) set(loggedIn bool, username string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loggedIn = loggedIn
	s.username = username
}

func (s *Service) clearToken(ctx context.Context) {
	if err := s.state.ClearToken(ctx); err != nil {
		logrus.Warnf("failed to clear auth token: %v", err)
	}
}
