package shortlink_test

import (
	"context"
	"errors"
	"testing"

	"github.com/linkshrink/linkshrink/internal/shortlink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAllocator(gen shortlink.Generator, repo shortlink.Repository) *shortlink.Allocator {
	return shortlink.NewAllocator(gen, repo, zap.NewNop())
}

func insertInto(repo *fakeRepo, originalURL string) shortlink.InsertFunc {
	return func(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
		return repo.Create(ctx, code, originalURL, shortlink.AnonymousIdentity("t"))
	}
}

func TestAllocator_Allocate(t *testing.T) {
	t.Run("accepts first non-colliding candidate", func(t *testing.T) {
		repo := newFakeRepo()
		gen := newScriptedGenerator("abcde")
		alloc := newAllocator(gen, repo)

		link, err := alloc.Allocate(context.Background(), insertInto(repo, "https://example.com"))

		require.NoError(t, err)
		assert.Equal(t, shortlink.Code("abcde"), link.Code)
		assert.Equal(t, []int{shortlink.StartLength}, gen.lengths)
	})

	t.Run("retries at same length on collision", func(t *testing.T) {
		repo := newFakeRepo()
		repo.seed("taken", "https://example.com/old")

		gen := newScriptedGenerator("taken", "fresh")
		alloc := newAllocator(gen, repo)

		link, err := alloc.Allocate(context.Background(), insertInto(repo, "https://example.com"))

		require.NoError(t, err)
		assert.Equal(t, shortlink.Code("fresh"), link.Code)
		assert.Equal(t, []int{5, 5}, gen.lengths)
	})

	t.Run("escalates to length 6 after 8 collisions at length 5", func(t *testing.T) {
		repo := newFakeRepo()
		repo.seed("stuck", "https://example.com/old")

		// Same colliding candidate for the first 8 attempts.
		script := make([]string, 8)
		for i := range script {
			script[i] = "stuck"
		}

		gen := newScriptedGenerator(script...)
		alloc := newAllocator(gen, repo)

		link, err := alloc.Allocate(context.Background(), insertInto(repo, "https://example.com"))

		require.NoError(t, err)
		require.Len(t, gen.lengths, 9)

		for i := 0; i < 8; i++ {
			assert.Equal(t, 5, gen.lengths[i])
		}

		assert.Equal(t, 6, gen.lengths[8])
		assert.Len(t, string(link.Code), 6)
	})

	t.Run("insert race loser retries at same length", func(t *testing.T) {
		repo := newFakeRepo()
		gen := newScriptedGenerator("winsA", "winsA", "other")
		alloc := newAllocator(gen, repo)

		raced := false
		insert := func(ctx context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
			if code == "winsA" && !raced {
				// A concurrent creation grabbed this code between the
				// existence check and our insert.
				raced = true
				repo.seed(code, "https://example.com/racer")

				return nil, shortlink.ErrCodeExists
			}

			return repo.Create(ctx, code, "https://example.com", shortlink.AnonymousIdentity("t"))
		}

		link, err := alloc.Allocate(context.Background(), insert)

		require.NoError(t, err)
		assert.Equal(t, shortlink.Code("other"), link.Code)
		assert.Equal(t, []int{5, 5, 5}, gen.lengths)
	})

	t.Run("gives up after the total attempt ceiling", func(t *testing.T) {
		repo := newFakeRepo()
		repo.seed("loop", "https://example.com/old")

		script := make([]string, shortlink.MaxTotalAttempts)
		for i := range script {
			script[i] = "loop"
		}

		gen := newScriptedGenerator(script...)
		alloc := newAllocator(gen, repo)

		link, err := alloc.Allocate(context.Background(), insertInto(repo, "https://example.com"))

		assert.Nil(t, link)
		assert.ErrorIs(t, err, shortlink.ErrAllocationExhausted)
	})

	t.Run("length never exceeds the cap", func(t *testing.T) {
		repo := newFakeRepo()
		repo.seed("cap", "https://example.com/old")

		script := make([]string, shortlink.MaxTotalAttempts)
		for i := range script {
			script[i] = "cap"
		}

		gen := newScriptedGenerator(script...)
		alloc := newAllocator(gen, repo)

		_, err := alloc.Allocate(context.Background(), insertInto(repo, "https://example.com"))
		require.ErrorIs(t, err, shortlink.ErrAllocationExhausted)

		for _, l := range gen.lengths {
			assert.LessOrEqual(t, l, shortlink.MaxLength)
		}
	})

	t.Run("stops on context cancellation", func(t *testing.T) {
		repo := newFakeRepo()
		gen := newScriptedGenerator()
		alloc := newAllocator(gen, repo)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		link, err := alloc.Allocate(ctx, insertInto(repo, "https://example.com"))

		assert.Nil(t, link)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("surfaces store errors from the existence check", func(t *testing.T) {
		repo := newFakeRepo()
		repo.existsErr = errors.New("store down")

		gen := newScriptedGenerator("abcde")
		alloc := newAllocator(gen, repo)

		link, err := alloc.Allocate(context.Background(), insertInto(repo, "https://example.com"))

		assert.Nil(t, link)
		assert.Error(t, err)
		assert.NotErrorIs(t, err, shortlink.ErrCodeExists)
	})
}
