package session_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Guyuepp/blog-client/domain"
	"github.com/Guyuepp/blog-client/internal/repository"
	memstore "github.com/Guyuepp/blog-client/internal/repository/memory"
	"github.com/Guyuepp/blog-client/internal/usecase/session"
)

type mockAuth struct {
	mock.Mock
}

func (m *mockAuth) Login(ctx context.Context, cred domain.Credentials) (string, error) {
	args := m.Called(ctx, cred)
	return args.String(0), args.Error(1)
}

func (m *mockAuth) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *mockAuth) CheckSession(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

var admin = domain.Credentials{Username: "admin", Password: "secret"}

func newState() domain.ClientStateRepository {
	return repository.NewClientStateRepository(memstore.NewStore())
}

func TestBootstrap(t *testing.T) {
	ctx := context.Background()

	t.Run("no token", func(t *testing.T) {
		auth := new(mockAuth)
		svc := session.NewService(auth, newState(), nil)
		assert.False(t, svc.Bootstrap(ctx))
		auth.AssertNotCalled(t, "CheckSession", mock.Anything)
	})

	t.Run("valid token", func(t *testing.T) {
		auth := new(mockAuth)
		auth.On("CheckSession", mock.Anything).Return(true, nil).Once()
		state := newState()
		require.NoError(t, state.SetToken(ctx, "tok"))

		svc := session.NewService(auth, state, nil)
		assert.True(t, svc.Bootstrap(ctx))
		assert.True(t, svc.LoggedIn())
		assert.Equal(t, "tok", svc.Current(ctx).Token)
		auth.AssertExpectations(t)
	})

	t.Run("rejected token", func(t *testing.T) {
		auth := new(mockAuth)
		auth.On("CheckSession", mock.Anything).Return(false, nil).Once()
		state := newState()
		require.NoError(t, state.SetToken(ctx, "tok"))

		svc := session.NewService(auth, state, nil)
		assert.False(t, svc.Bootstrap(ctx))
		assert.Empty(t, svc.Current(ctx).Token)
	})

	t.Run("check fails", func(t *testing.T) {
		auth := new(mockAuth)
		auth.On("CheckSession", mock.Anything).Return(false, errors.New("connection refused")).Once()
		state := newState()
		require.NoError(t, state.SetToken(ctx, "tok"))

		svc := session.NewService(auth, state, nil)
		assert.False(t, svc.Bootstrap(ctx))
		assert.Empty(t, state.Token(ctx))
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		auth := new(mockAuth)
		auth.On("Login", mock.Anything, admin).Return("tok-1", nil).Once()
		state := newState()
		svc := session.NewService(auth, state, nil)

		assert.True(t, svc.Login(ctx, admin))
		assert.Equal(t, "tok-1", state.Token(ctx))
		cur := svc.Current(ctx)
		assert.True(t, cur.LoggedIn)
		assert.Equal(t, "admin", cur.Username)
		auth.AssertExpectations(t)
	})

	t.Run("rejected clears previous token", func(t *testing.T) {
		auth := new(mockAuth)
		auth.On("Login", mock.Anything, admin).
			Return("", &domain.GatewayError{Status: 401, Code: 401, Message: "bad credentials"}).Once()
		state := newState()
		require.NoError(t, state.SetToken(ctx, "old"))
		svc := session.NewService(auth, state, nil)

		assert.False(t, svc.Login(ctx, admin))
		assert.False(t, svc.LoggedIn())
		assert.Empty(t, state.Token(ctx))
	})

	t.Run("invalid credentials never reach the gateway", func(t *testing.T) {
		auth := new(mockAuth)
		svc := session.NewService(auth, newState(), nil)

		assert.False(t, svc.Login(ctx, domain.Credentials{Username: "admin"}))
		auth.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	})
}

func TestLogoutClearsTokenEvenOnFailure(t *testing.T) {
	ctx := context.Background()
	auth := new(mockAuth)
	auth.On("Login", mock.Anything, admin).Return("tok", nil).Once()
	auth.On("Logout", mock.Anything).Return(errors.New("timeout")).Once()
	state := newState()
	svc := session.NewService(auth, state, nil)

	require.True(t, svc.Login(ctx, admin))
	svc.Logout(ctx)
	assert.False(t, svc.LoggedIn())
	assert.Empty(t, state.Token(ctx))
	auth.AssertExpectations(t)
}
