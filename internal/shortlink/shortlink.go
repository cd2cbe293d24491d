package shortlink

import (
	"errors"
	"time"
)

// Code represents a short link code.
type Code string

// ShortLink represents a shortened URL entity.
type ShortLink struct {
	ID          int64
	Code        Code
	OriginalURL string
	CreatedBy   Identity
	VisitCount  int64
	CreatedAt   time.Time
}

var (
	// ErrNotFound is returned when no link exists for a code.
	ErrNotFound = errors.New("short link not found")

	// ErrCodeExists is returned by a repository when an insert loses the
	// race on the code's unique index. The allocator treats it as a
	// collision and retries.
	ErrCodeExists = errors.New("short code already exists")

	// ErrInvalidURL is returned when the original URL is not an absolute
	// http or https URL.
	ErrInvalidURL = errors.New("invalid original url")

	// ErrAllocationExhausted is returned when the allocator gives up after
	// its total attempt ceiling. It indicates a store problem rather than
	// an exhausted code space.
	ErrAllocationExhausted = errors.New("short code allocation exhausted")
)
