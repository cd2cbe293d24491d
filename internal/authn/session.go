package authn

import (
	"context"

	"github.com/linkshrink/linkshrink/internal/shortlink"
)

type sessionKey struct{}

// Session is the resolved request identity and plan, carried in the
// request context by the identity middleware.
type Session struct {
	Identity shortlink.Identity
	Plan     shortlink.Plan
}

// ContextWithSession attaches a session to the context.
func ContextWithSession(ctx context.Context, s Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext extracts the session from the context. The zero
// session means the identity middleware did not run.
func SessionFromContext(ctx context.Context) Session {
	if s, ok := ctx.Value(sessionKey{}).(Session); ok {
		return s
	}

	return Session{}
}
