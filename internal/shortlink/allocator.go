package shortlink

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"
)

const (
	// StartLength is the code length tried first. 49^5 candidates make
	// early collisions rare while keeping links short.
	StartLength = 5

	// MaxLength caps length escalation.
	MaxLength = 20

	// AttemptsPerLength is the number of consecutive collisions tolerated
	// at a length before escalating to the next one.
	AttemptsPerLength = 8

	// MaxTotalAttempts bounds the whole allocation. Escalation makes the
	// loop converge against a healthy store, so hitting this ceiling means
	// the store is misbehaving; the caller sees ErrAllocationExhausted.
	MaxTotalAttempts = 128
)

// InsertFunc persists a link under a candidate code. It returns
// ErrCodeExists when a concurrent creation won the code first.
type InsertFunc func(ctx context.Context, code Code) (*ShortLink, error)

// Allocator assigns a unique code to a new link: generate a candidate,
// check existence, insert. Collisions retry at the same length; after
// AttemptsPerLength consecutive collisions the length grows by one, capped
// at MaxLength. An insert that loses the unique-index race counts as a
// collision at the current length.
type Allocator struct {
	gen    Generator
	repo   Repository
	logger *zap.Logger
}

// NewAllocator creates an allocator over the given generator and store.
func NewAllocator(gen Generator, repo Repository, logger *zap.Logger) *Allocator {
	return &Allocator{
		gen:    gen,
		repo:   repo,
		logger: logger,
	}
}

// Allocate runs the allocation loop and persists through insert.
func (a *Allocator) Allocate(ctx context.Context, insert InsertFunc) (*ShortLink, error) {
	length := StartLength
	attempts := 0

	for total := 0; total < MaxTotalAttempts; total++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		candidate, err := a.gen.Generate(length)
		if err != nil {
			return nil, fmt.Errorf("generate candidate: %w", err)
		}

		taken, err := a.repo.Exists(ctx, Code(candidate))
		if err != nil {
			return nil, fmt.Errorf("check code existence: %w", err)
		}

		if !taken {
			link, err := insert(ctx, Code(candidate))
			if err == nil {
				return link, nil
			}

			if !errors.Is(err, ErrCodeExists) {
				return nil, err
			}

			// Lost the insert race; retry at the same length.
			a.logger.Debug("insert race lost",
				zap.String("code", candidate),
				zap.Int("length", length),
			)
		}

		attempts++
		if attempts >= AttemptsPerLength {
			attempts = 0
			if length < MaxLength {
				length++
			}

			a.logger.Warn("code collisions forced length escalation",
				zap.Int("length", length),
				zap.Int("total_attempts", total+1),
			)
		}
	}

	return nil, ErrAllocationExhausted
}
