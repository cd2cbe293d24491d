package quota_test

import (
	"context"
	"testing"
	"time"

	"github.com/linkshrink/linkshrink/internal/quota"
	"github.com/linkshrink/linkshrink/internal/shortlink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCounter is an in-memory creation log.
type fakeCounter struct {
	entries map[string][]time.Time
	err     error
}

func newFakeCounter() *fakeCounter {
	return &fakeCounter{entries: make(map[string][]time.Time)}
}

func (c *fakeCounter) add(id shortlink.Identity, at time.Time) {
	c.entries[id.Key()] = append(c.entries[id.Key()], at)
}

func (c *fakeCounter) CountCreatedSince(_ context.Context, createdBy shortlink.Identity, since time.Time) (int64, error) {
	if c.err != nil {
		return 0, c.err
	}

	var n int64

	for _, at := range c.entries[createdBy.Key()] {
		if !at.Before(since) {
			n++
		}
	}

	return n, nil
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestWindowStart(t *testing.T) {
	now := time.Date(2025, time.March, 17, 15, 4, 5, 0, time.Local)

	start := quota.WindowStart(now)

	assert.Equal(t, time.Date(2025, time.March, 1, 0, 0, 0, 0, time.Local), start)
}

func TestLedger_Status(t *testing.T) {
	now := time.Date(2025, time.March, 17, 12, 0, 0, 0, time.Local)
	id := shortlink.UserIdentity("7")

	t.Run("counts only the current month", func(t *testing.T) {
		counter := newFakeCounter()
		counter.add(id, now.AddDate(0, -1, 0)) // previous month, excluded
		counter.add(id, quota.WindowStart(now)) // exactly at window start, included
		counter.add(id, now)

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		status, err := ledger.Status(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, int64(quota.DefaultMonthlyLimit), status.Limit)
		assert.Equal(t, int64(2), status.Used)
		assert.Equal(t, int64(3), status.Remaining)
	})

	t.Run("remaining never goes negative", func(t *testing.T) {
		counter := newFakeCounter()
		for i := 0; i < 9; i++ {
			counter.add(id, now)
		}

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		status, err := ledger.Status(context.Background(), id)

		require.NoError(t, err)
		assert.Equal(t, int64(9), status.Used)
		assert.Zero(t, status.Remaining)
	})

	t.Run("identities are accounted separately", func(t *testing.T) {
		counter := newFakeCounter()
		counter.add(shortlink.AnonymousIdentity("tok"), now)

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		status, err := ledger.Status(context.Background(), id)

		require.NoError(t, err)
		assert.Zero(t, status.Used)
	})
}

func TestLedger_Check(t *testing.T) {
	now := time.Date(2025, time.March, 17, 12, 0, 0, 0, time.Local)
	id := shortlink.AnonymousIdentity("tok")

	fill := func(counter *fakeCounter, n int) {
		for i := 0; i < n; i++ {
			counter.add(id, now)
		}
	}

	t.Run("allows free identity under the limit", func(t *testing.T) {
		counter := newFakeCounter()
		fill(counter, quota.DefaultMonthlyLimit-1)

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		assert.NoError(t, ledger.Check(context.Background(), id, shortlink.PlanFree))
	})

	t.Run("rejects free identity at the limit", func(t *testing.T) {
		counter := newFakeCounter()
		fill(counter, quota.DefaultMonthlyLimit)

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		err := ledger.Check(context.Background(), id, shortlink.PlanFree)

		assert.ErrorIs(t, err, quota.ErrQuotaExceeded)
	})

	t.Run("paid plans are exempt regardless of count", func(t *testing.T) {
		counter := newFakeCounter()
		fill(counter, 100)

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		assert.NoError(t, ledger.Check(context.Background(), id, shortlink.Plan("PRO")))
	})

	t.Run("paid plans never touch the store", func(t *testing.T) {
		counter := newFakeCounter()
		counter.err = assert.AnError

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		assert.NoError(t, ledger.Check(context.Background(), id, shortlink.Plan("PRO")))
	})

	t.Run("prior month creations reset the window", func(t *testing.T) {
		counter := newFakeCounter()

		lastMonth := now.AddDate(0, -1, 0)
		for i := 0; i < quota.DefaultMonthlyLimit; i++ {
			counter.add(id, lastMonth)
		}

		ledger := quota.NewLedger(counter, quota.WithClock(fixedClock(now)))

		assert.NoError(t, ledger.Check(context.Background(), id, shortlink.PlanFree))
	})

	t.Run("custom limit", func(t *testing.T) {
		counter := newFakeCounter()
		fill(counter, 2)

		ledger := quota.NewLedger(counter,
			quota.WithClock(fixedClock(now)),
			quota.WithLimit(2),
		)

		assert.ErrorIs(t, ledger.Check(context.Background(), id, shortlink.PlanFree), quota.ErrQuotaExceeded)
	})
}
