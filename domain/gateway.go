package domain

import "context"

// Gateway is the remote API boundary for all persisted data and mutations.
type Gateway interface {
	PostGateway
	CategoryGateway
	ConfigGateway
	AssetGateway
	AuthGateway
}

// TokenSource supplies the bearer token attached to authenticated gateway calls.
type TokenSource interface {
	Token(ctx context.Context) string
}
