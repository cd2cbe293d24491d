package authn_test

import (
	"context"
	"net/http"
	"testing"

	"github.com/linkshrink/linkshrink/internal/authn"
	"github.com/linkshrink/linkshrink/internal/shortlink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeDirectory maps session tokens to users.
type fakeDirectory struct {
	users map[string]*authn.User
	err   error
}

func (d *fakeDirectory) UserBySessionToken(_ context.Context, token string) (*authn.User, error) {
	if d.err != nil {
		return nil, d.err
	}

	user, ok := d.users[token]
	if !ok {
		return nil, authn.ErrUnknownSession
	}

	return user, nil
}

func newResolver(dir authn.Directory) *authn.Resolver {
	return authn.NewResolver(dir, zap.NewNop())
}

func TestResolver_Resolve(t *testing.T) {
	dir := &fakeDirectory{users: map[string]*authn.User{
		"tok-valid": {ID: "42", Plan: shortlink.Plan("PRO")},
	}}

	t.Run("session token resolves to user identity with plan", func(t *testing.T) {
		session, setCookie := newResolver(dir).Resolve(context.Background(), []*http.Cookie{
			{Name: authn.SessionCookie, Value: "tok-valid"},
		})

		assert.Nil(t, setCookie)
		assert.Equal(t, shortlink.UserIdentity("42"), session.Identity)
		assert.Equal(t, shortlink.Plan("PRO"), session.Plan)
	})

	t.Run("session token wins over anonymous cookie", func(t *testing.T) {
		session, setCookie := newResolver(dir).Resolve(context.Background(), []*http.Cookie{
			{Name: authn.AnonCookie, Value: "anon-token"},
			{Name: authn.SessionCookie, Value: "tok-valid"},
		})

		assert.Nil(t, setCookie)
		assert.Equal(t, shortlink.UserIdentity("42"), session.Identity)
	})

	t.Run("stale session falls back to anonymous cookie", func(t *testing.T) {
		session, setCookie := newResolver(dir).Resolve(context.Background(), []*http.Cookie{
			{Name: authn.SessionCookie, Value: "tok-gone"},
			{Name: authn.AnonCookie, Value: "anon-token"},
		})

		assert.Nil(t, setCookie)
		assert.Equal(t, shortlink.AnonymousIdentity("anon-token"), session.Identity)
		assert.True(t, session.Plan.Free())
	})

	t.Run("mints anonymous identity when no cookies are present", func(t *testing.T) {
		session, setCookie := newResolver(dir).Resolve(context.Background(), nil)

		require.NotNil(t, setCookie)
		assert.Equal(t, authn.AnonCookie, setCookie.Name)
		assert.NotEmpty(t, setCookie.Value)
		assert.Positive(t, setCookie.MaxAge)

		assert.Equal(t, shortlink.AnonymousIdentity(setCookie.Value), session.Identity)
		assert.True(t, session.Plan.Free())
	})

	t.Run("minted tokens are unique per request", func(t *testing.T) {
		r := newResolver(dir)

		_, first := r.Resolve(context.Background(), nil)
		_, second := r.Resolve(context.Background(), nil)

		require.NotNil(t, first)
		require.NotNil(t, second)
		assert.NotEqual(t, first.Value, second.Value)
	})

	t.Run("directory outage degrades to anonymous", func(t *testing.T) {
		broken := &fakeDirectory{err: assert.AnError}

		session, setCookie := newResolver(broken).Resolve(context.Background(), []*http.Cookie{
			{Name: authn.SessionCookie, Value: "tok-valid"},
		})

		require.NotNil(t, setCookie)
		assert.Equal(t, shortlink.KindAnonymous, session.Identity.Kind())
	})
}

func TestSessionContext(t *testing.T) {
	session := authn.Session{
		Identity: shortlink.UserIdentity("7"),
		Plan:     shortlink.Plan("PRO"),
	}

	ctx := authn.ContextWithSession(context.Background(), session)

	assert.Equal(t, session, authn.SessionFromContext(ctx))
	assert.True(t, authn.SessionFromContext(context.Background()).Identity.IsZero())
}
