package shortlink

import (
	"context"
	"time"
)

// Repository is the persisted short link store. Implementations must
// enforce a uniqueness constraint on the code column: Create returns
// ErrCodeExists when an insert loses the race, which is the authoritative
// uniqueness guarantee behind the allocator's existence check.
type Repository interface {
	// Create persists a new link under the given code.
	Create(ctx context.Context, code Code, originalURL string, createdBy Identity) (*ShortLink, error)

	// GetByCode returns the link for a code, or ErrNotFound.
	GetByCode(ctx context.Context, code Code) (*ShortLink, error)

	// Exists reports whether a code is already taken.
	Exists(ctx context.Context, code Code) (bool, error)

	// IncrementVisit atomically bumps the visit counter for a code.
	IncrementVisit(ctx context.Context, code Code) error

	// CountCreatedSince counts links created by an identity at or after
	// the given instant. Backs the quota ledger.
	CountCreatedSince(ctx context.Context, createdBy Identity, since time.Time) (int64, error)
}
