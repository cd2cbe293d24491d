package store

import (
	"context"
	"sync"
	"time"

	"github.com/linkshrink/linkshrink/internal/shortlink"
)

// MemoryStore is an in-memory implementation of shortlink.Repository. It
// enforces code uniqueness the way the Postgres unique index does, so the
// allocator behaves identically against it. Used by unit tests and local
// runs without a database.
type MemoryStore struct {
	mu     sync.RWMutex
	links  map[shortlink.Code]*shortlink.ShortLink
	nextID int64
}

// NewMemoryStore creates an empty in-memory link store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{links: make(map[shortlink.Code]*shortlink.ShortLink)}
}

func (m *MemoryStore) Create(_ context.Context, code shortlink.Code, originalURL string, createdBy shortlink.Identity) (*shortlink.ShortLink, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.links[code]; ok {
		return nil, shortlink.ErrCodeExists
	}

	m.nextID++
	link := &shortlink.ShortLink{
		ID:          m.nextID,
		Code:        code,
		OriginalURL: originalURL,
		CreatedBy:   createdBy,
		CreatedAt:   time.Now(),
	}
	m.links[code] = link

	cp := *link

	return &cp, nil
}

func (m *MemoryStore) GetByCode(_ context.Context, code shortlink.Code) (*shortlink.ShortLink, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	link, ok := m.links[code]
	if !ok {
		return nil, shortlink.ErrNotFound
	}

	cp := *link

	return &cp, nil
}

func (m *MemoryStore) Exists(_ context.Context, code shortlink.Code) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, ok := m.links[code]

	return ok, nil
}

func (m *MemoryStore) IncrementVisit(_ context.Context, code shortlink.Code) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	link, ok := m.links[code]
	if !ok {
		return shortlink.ErrNotFound
	}

	link.VisitCount++

	return nil
}

func (m *MemoryStore) CountCreatedSince(_ context.Context, createdBy shortlink.Identity, since time.Time) (int64, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var count int64

	for _, link := range m.links {
		if link.CreatedBy == createdBy && !link.CreatedAt.Before(since) {
			count++
		}
	}

	return count, nil
}

// Compile-time check.
var _ shortlink.Repository = (*MemoryStore)(nil)
