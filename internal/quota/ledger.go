// Package quota enforces the free-tier monthly creation limit.
package quota

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/linkshrink/linkshrink/internal/shortlink"
)

// DefaultMonthlyLimit is the free-plan creation allowance per calendar month.
const DefaultMonthlyLimit = 5

// ErrQuotaExceeded is returned when a free-plan identity has used up its
// monthly allowance.
var ErrQuotaExceeded = errors.New("monthly link quota exceeded")

// Counter is the slice of the repository the ledger needs.
type Counter interface {
	CountCreatedSince(ctx context.Context, createdBy shortlink.Identity, since time.Time) (int64, error)
}

// Status reports quota usage for display, independent of enforcement.
type Status struct {
	Limit     int64
	Used      int64
	Remaining int64
}

// Ledger derives per-identity monthly creation counts from the link store.
type Ledger struct {
	counter Counter
	limit   int64
	now     func() time.Time
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithLimit overrides the monthly limit.
func WithLimit(limit int64) Option {
	return func(l *Ledger) { l.limit = limit }
}

// WithClock overrides the time source. Used by tests to pin the window.
func WithClock(now func() time.Time) Option {
	return func(l *Ledger) { l.now = now }
}

// NewLedger creates a quota ledger over the given counter.
func NewLedger(counter Counter, opts ...Option) *Ledger {
	l := &Ledger{
		counter: counter,
		limit:   DefaultMonthlyLimit,
		now:     time.Now,
	}

	for _, opt := range opts {
		opt(l)
	}

	return l
}

// WindowStart returns the first instant of t's calendar month, in t's
// location. The quota window is anchored to server-local time.
func WindowStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
}

// Status returns {limit, used, remaining} for the current window.
func (l *Ledger) Status(ctx context.Context, identity shortlink.Identity) (Status, error) {
	used, err := l.counter.CountCreatedSince(ctx, identity, WindowStart(l.now()))
	if err != nil {
		return Status{}, fmt.Errorf("count monthly creations: %w", err)
	}

	remaining := l.limit - used
	if remaining < 0 {
		remaining = 0
	}

	return Status{Limit: l.limit, Used: used, Remaining: remaining}, nil
}

// Check returns ErrQuotaExceeded when a free-plan identity is at or over
// the limit. Paid plans pass unconditionally, without touching the store.
func (l *Ledger) Check(ctx context.Context, identity shortlink.Identity, plan shortlink.Plan) error {
	if !plan.Free() {
		return nil
	}

	status, err := l.Status(ctx, identity)
	if err != nil {
		return err
	}

	if status.Used >= status.Limit {
		return fmt.Errorf("%w: %d/%d this month", ErrQuotaExceeded, status.Used, status.Limit)
	}

	return nil
}
