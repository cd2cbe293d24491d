package shortlink

import (
	"fmt"
	"strings"
)

// IdentityKind discriminates the two identity variants.
type IdentityKind int

const (
	// KindUser is an authenticated user identity.
	KindUser IdentityKind = iota + 1
	// KindAnonymous is an unauthenticated browser correlated via a
	// long-lived client token.
	KindAnonymous
)

// Identity is the creator of a short link, used only for quota accounting.
// It is either an authenticated user or an anonymous token; the zero value
// means "no identity".
type Identity struct {
	kind IdentityKind
	id   string
}

// UserIdentity returns an authenticated identity for the given user id.
func UserIdentity(userID string) Identity {
	return Identity{kind: KindUser, id: userID}
}

// AnonymousIdentity returns an anonymous identity for the given client token.
func AnonymousIdentity(token string) Identity {
	return Identity{kind: KindAnonymous, id: token}
}

// Kind returns the identity variant.
func (i Identity) Kind() IdentityKind {
	return i.kind
}

// IsZero reports whether no identity is set.
func (i Identity) IsZero() bool {
	return i.kind == 0
}

// Key returns the persisted form: "user:<id>" or "anon:<token>".
func (i Identity) Key() string {
	switch i.kind {
	case KindUser:
		return "user:" + i.id
	case KindAnonymous:
		return "anon:" + i.id
	default:
		return ""
	}
}

// ParseIdentityKey parses the persisted "user:<id>" / "anon:<token>" form.
func ParseIdentityKey(key string) (Identity, error) {
	tag, id, ok := strings.Cut(key, ":")
	if !ok || id == "" {
		return Identity{}, fmt.Errorf("malformed identity key %q", key)
	}

	switch tag {
	case "user":
		return UserIdentity(id), nil
	case "anon":
		return AnonymousIdentity(id), nil
	default:
		return Identity{}, fmt.Errorf("unknown identity tag %q", tag)
	}
}

// Plan is a billing plan tag. Only the FREE / non-FREE distinction matters
// to the quota ledger.
type Plan string

// PlanFree is the free tier. An empty plan is treated as free.
const PlanFree Plan = "FREE"

// Free reports whether the plan is subject to the free-tier quota.
func (p Plan) Free() bool {
	return p == "" || p == PlanFree
}
