// Package authn resolves the request identity used for quota accounting.
// Registration, login, and billing live outside this service; only the
// session-token lookup surface is consumed here.
package authn

import (
	"context"
	"errors"

	"github.com/linkshrink/linkshrink/internal/shortlink"
)

// ErrUnknownSession is returned when a session token matches no user.
var ErrUnknownSession = errors.New("unknown session token")

// User is the slice of an account the shortener cares about.
type User struct {
	ID   string
	Plan shortlink.Plan
}

// Directory looks up users by session credential.
type Directory interface {
	UserBySessionToken(ctx context.Context, token string) (*User, error)
}
