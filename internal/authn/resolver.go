package authn

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/linkshrink/linkshrink/internal/shortlink"
	"go.uber.org/zap"
)

const (
	// SessionCookie carries the authenticated session token.
	SessionCookie = "session_token"
	// AnonCookie carries the long-lived anonymous correlation token.
	AnonCookie = "anon_id"

	// anonCookieTTL keeps anonymous quota accounting stable across visits.
	anonCookieTTL = 2 * 365 * 24 * time.Hour
)

// Resolver turns request cookies into a Session. An authenticated identity
// always wins over an anonymous one; with neither present a fresh anonymous
// token is minted and handed back as a cookie to set.
type Resolver struct {
	directory Directory
	logger    *zap.Logger
}

// NewResolver creates a cookie-based identity resolver.
func NewResolver(directory Directory, logger *zap.Logger) *Resolver {
	return &Resolver{
		directory: directory,
		logger:    logger,
	}
}

// Resolve resolves the session for a request. The returned cookie is
// non-nil only when a fresh anonymous token was minted and must be set on
// the response.
func (r *Resolver) Resolve(ctx context.Context, cookies []*http.Cookie) (Session, *http.Cookie) {
	var anonToken string

	for _, c := range cookies {
		switch c.Name {
		case SessionCookie:
			if c.Value == "" {
				continue
			}

			user, err := r.directory.UserBySessionToken(ctx, c.Value)
			if err == nil {
				return Session{
					Identity: shortlink.UserIdentity(user.ID),
					Plan:     user.Plan,
				}, nil
			}

			// A stale token degrades to anonymous handling; a directory
			// outage does too, but is worth a log line.
			if !errors.Is(err, ErrUnknownSession) {
				r.logger.Warn("session lookup failed, treating request as anonymous",
					zap.Error(err),
				)
			}
		case AnonCookie:
			anonToken = c.Value
		}
	}

	if anonToken != "" {
		return Session{
			Identity: shortlink.AnonymousIdentity(anonToken),
			Plan:     shortlink.PlanFree,
		}, nil
	}

	minted := uuid.NewString()

	return Session{
			Identity: shortlink.AnonymousIdentity(minted),
			Plan:     shortlink.PlanFree,
		}, &http.Cookie{
			Name:     AnonCookie,
			Value:    minted,
			Path:     "/",
			MaxAge:   int(anonCookieTTL.Seconds()),
			SameSite: http.SameSiteLaxMode,
		}
}
