package auth

import (
	"context"
	"errors"
)

// ErrInvalidToken covers every token validation failure. Handlers map it to
// a bare 401.
var ErrInvalidToken = errors.New("invalid token")

type Authenticator interface {
	Authenticate(ctx context.Context, bearerToken string) (Principal, error)
}

// Config comes from the environment in the app package. With Enabled false
// the API runs open, which is the mode the CLI and local development use.
type Config struct {
	Enabled  bool
	Issuer   string
	Audience string
	JWKSURL  string
}

type Principal struct {
	Issuer   string
	Subject  string
	Username string
	Audience any
	Claims   map[string]any
}

type principalContextKey struct{}

func WithPrincipal(ctx context.Context, principal Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, principal)
}

func PrincipalFromContext(ctx context.Context) (Principal, bool) {
	principal, ok := ctx.Value(principalContextKey{}).(Principal)
	return principal, ok
}
