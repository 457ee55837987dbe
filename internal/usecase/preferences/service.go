// Package preferences holds the theme and language of the client. Both are read from
// the persisted state once at startup and change only through the methods below.
package preferences

import (
	"context"
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/Guyuepp/blog-client/domain"
)

// Policy decides the theme used when nothing is stored.
type Policy struct {
	// FollowSystem uses SystemTheme when no theme is stored.
	FollowSystem bool
	// SystemTheme is what the host reports, light or dark.
	SystemTheme domain.Theme
}

type Service struct {
	state  domain.ClientStateRepository
	policy Policy

	mu       sync.RWMutex
	theme    domain.Theme
	language domain.Language
}

func NewService(s domain.ClientStateRepository, p Policy) *Service {
	return &Service{
		state:    s,
		policy:   p,
		theme:    domain.ThemeLight,
		language: domain.LanguageZH,
	}
}

// Init loads the stored preferences. The fallback theme is not persisted.
func (s *Service) Init(ctx context.Context) {
	theme := domain.ThemeLight
	if t, ok := s.state.Theme(ctx); ok {
		theme = t
	} else if s.policy.FollowSystem && s.policy.SystemTheme == domain.ThemeDark {
		theme = domain.ThemeDark
	}

	lang := domain.LanguageZH
	if l, ok := s.state.Language(ctx); ok {
		lang = l
	}

	s.mu.Lock()
	s.theme = theme
	s.language = lang
	s.mu.Unlock()
}

func (s *Service) Theme() domain.Theme {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.theme
}

// ToggleTheme moves to the next theme of the cycle and persists it.
func (s *Service) ToggleTheme(ctx context.Context) (domain.Theme, error) {
	s.mu.Lock()
	next := s.theme.Next()
	s.theme = next
	s.mu.Unlock()

	if err := s.state.SetTheme(ctx, next); err != nil {
		return next, fmt.Errorf("persist theme: %w", err)
	}
	return next, nil
}

func (s *Service) SetTheme(ctx context.Context, t domain.Theme) error {
	if !t.Valid() {
		return domain.ErrBadParamInput
	}
	s.mu.Lock()
	s.theme = t
	s.mu.Unlock()
	return s.state.SetTheme(ctx, t)
}

func (s *Service) Language() domain.Language {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.language
}

// SetLanguage resolves raw to a supported language and persists it.
func (s *Service) SetLanguage(ctx context.Context, raw string) (domain.Language, error) {
	lang := domain.ResolveLanguage(raw)
	s.mu.Lock()
	s.language = lang
	s.mu.Unlock()
	if err := s.state.SetLanguage(ctx, lang); err != nil {
		return lang, fmt.Errorf("persist language: %w", err)
	}
	return lang, nil
}

// ApplySiteConfig lets the site language setting override the stored choice.
func (s *Service) ApplySiteConfig(ctx context.Context, configs []domain.Config) {
	raw, ok := domain.LookupConfig(configs, domain.ConfigKeyLanguage)
	if !ok || raw == "" {
		return
	}
	if _, err := s.SetLanguage(ctx, raw); err != nil {
		logrus.Warnf("failed to apply site language: %v", err)
	}
}
