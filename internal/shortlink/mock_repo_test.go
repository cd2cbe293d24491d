package shortlink_test

import (
	"context"
	"sync"
	"time"

	"github.com/linkshrink/linkshrink/internal/shortlink"
)

// fakeRepo is a mutex-guarded in-memory repository that enforces code
// uniqueness the way a unique index would, and can be configured to fail.
type fakeRepo struct {
	mu    sync.Mutex
	links map[shortlink.Code]*shortlink.ShortLink
	creates int64

	existsErr    error
	createErr    error
	incrementErr error
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{links: make(map[shortlink.Code]*shortlink.ShortLink)}
}

func (r *fakeRepo) Create(_ context.Context, code shortlink.Code, originalURL string, createdBy shortlink.Identity) (*shortlink.ShortLink, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.links[code]; ok {
		return nil, shortlink.ErrCodeExists
	}

	r.creates++
	link := &shortlink.ShortLink{
		ID:          r.creates,
		Code:        code,
		OriginalURL: originalURL,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
	r.links[code] = link

	return link, nil
}

func (r *fakeRepo) GetByCode(_ context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[code]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	cp := *link

	return &cp, nil
}

func (r *fakeRepo) Exists(_ context.Context, code shortlink.Code) (bool, error) {
	if r.existsErr != nil {
		return false, r.existsErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	_, ok := r.links[code]

	return ok, nil
}

func (r *fakeRepo) IncrementVisit(_ context.Context, code shortlink.Code) error {
	if r.incrementErr != nil {
		return r.incrementErr
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	link, ok := r.links[code]
	if !ok {
		return shortlink.ErrNotFound
	}

	link.VisitCount++

	return nil
}

func (r *fakeRepo) CountCreatedSince(_ context.Context, createdBy shortlink.Identity, since time.Time) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var n int64

	for _, link := range r.links {
		if link.CreatedBy == createdBy && !link.CreatedAt.Before(since) {
			n++
		}
	}

	return n, nil
}

// seed inserts a link directly, bypassing the allocator.
func (r *fakeRepo) seed(code shortlink.Code, originalURL string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.links[code] = &shortlink.ShortLink{
		Code:        code,
		OriginalURL: originalURL,
		CreatedAt:   time.Now(),
	}
}

// scriptedGenerator replays a fixed sequence of codes, then falls back to
// the real generator. It records the length of every request.
type scriptedGenerator struct {
	mu      sync.Mutex
	script  []string
	lengths []int
	real    *shortlink.NanoidGenerator
}

func newScriptedGenerator(script ...string) *scriptedGenerator {
	return &scriptedGenerator{
		script: script,
		real:   shortlink.NewNanoidGenerator(),
	}
}

func (g *scriptedGenerator) Generate(length int) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.lengths = append(g.lengths, length)

	if len(g.script) > 0 {
		next := g.script[0]
		g.script = g.script[1:]

		return next, nil
	}

	return g.real.Generate(length)
}
