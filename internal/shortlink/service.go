package shortlink

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"go.uber.org/zap"
)

// Service implements link creation and resolution on top of a repository.
type Service struct {
	repo         Repository
	alloc        *Allocator
	logger       *zap.Logger
	visitTimeout time.Duration
}

// NewService creates a link service.
func NewService(repo Repository, alloc *Allocator, logger *zap.Logger) *Service {
	return &Service{
		repo:         repo,
		alloc:        alloc,
		logger:       logger,
		visitTimeout: 5 * time.Second,
	}
}

// ValidateURL checks that raw parses as an absolute http or https URL.
func ValidateURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidURL, err)
	}

	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("%w: must be an absolute http(s) url", ErrInvalidURL)
	}

	return nil
}

// Create validates the URL, allocates a unique code, and persists the link.
// No code is allocated for invalid input.
func (s *Service) Create(ctx context.Context, originalURL string, createdBy Identity) (*ShortLink, error) {
	if err := ValidateURL(originalURL); err != nil {
		return nil, err
	}

	link, err := s.alloc.Allocate(ctx, func(ctx context.Context, code Code) (*ShortLink, error) {
		return s.repo.Create(ctx, code, originalURL, createdBy)
	})
	if err != nil {
		return nil, fmt.Errorf("create short link: %w", err)
	}

	return link, nil
}

// Resolve returns the link for a code, or ErrNotFound.
func (s *Service) Resolve(ctx context.Context, code Code) (*ShortLink, error) {
	return s.repo.GetByCode(ctx, code)
}

// RecordVisit bumps the visit counter without blocking the caller. Counting
// is best effort: failures are logged, never surfaced, so a redirect can
// never break because counting broke.
func (s *Service) RecordVisit(code Code) {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), s.visitTimeout)
		defer cancel()

		if err := s.repo.IncrementVisit(ctx, code); err != nil {
			s.logger.Error("failed to record visit",
				zap.String("code", string(code)),
				zap.Error(err),
			)
		}
	}()
}
