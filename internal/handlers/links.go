package handlers

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/danielgtaylor/huma/v2"
	"github.com/linkshrink/linkshrink/internal/analytics"
	"github.com/linkshrink/linkshrink/internal/authn"
	"github.com/linkshrink/linkshrink/internal/messaging"
	"github.com/linkshrink/linkshrink/internal/quota"
	"github.com/linkshrink/linkshrink/internal/shortlink"
	"go.uber.org/zap"
)

// LinkHandler handles short link creation, stats, quota, and redirects.
type LinkHandler struct {
	svc            *shortlink.Service
	ledger         *quota.Ledger
	baseURL        string
	publishCreated messaging.Publish[analytics.LinkCreatedEvent]
	publishVisited messaging.Publish[analytics.LinkVisitedEvent]
	logger         *zap.Logger
}

// NewLinkHandler creates a link handler.
func NewLinkHandler(
	svc *shortlink.Service,
	ledger *quota.Ledger,
	baseURL string,
	publishCreated messaging.Publish[analytics.LinkCreatedEvent],
	publishVisited messaging.Publish[analytics.LinkVisitedEvent],
	logger *zap.Logger,
) *LinkHandler {
	return &LinkHandler{
		svc:            svc,
		ledger:         ledger,
		baseURL:        baseURL,
		publishCreated: publishCreated,
		publishVisited: publishVisited,
		logger:         logger,
	}
}

// Shorten creates a short link for the caller's identity, enforcing the
// free-tier monthly quota.
func (h *LinkHandler) Shorten(ctx context.Context, req *ShortenRequest) (*ShortenResponse, error) {
	if err := shortlink.ValidateURL(req.Body.OriginalURL); err != nil {
		return nil, huma.Error400BadRequest("invalid url", &huma.ErrorDetail{
			Message:  "must be an absolute http(s) URL",
			Location: "body.originalUrl",
			Value:    req.Body.OriginalURL,
		})
	}

	session := authn.SessionFromContext(ctx)
	if session.Identity.IsZero() {
		return nil, huma.Error500InternalServerError("identity not resolved")
	}

	if err := h.ledger.Check(ctx, session.Identity, session.Plan); err != nil {
		if errors.Is(err, quota.ErrQuotaExceeded) {
			return nil, huma.NewError(http.StatusPaymentRequired,
				fmt.Sprintf("free plan limit reached (%d links/month), please upgrade", quota.DefaultMonthlyLimit))
		}

		h.logger.Error("quota check failed", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to check quota")
	}

	link, err := h.svc.Create(ctx, req.Body.OriginalURL, session.Identity)
	if err != nil {
		h.logger.Error("failed to create short link", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to create short link")
	}

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkCreatedEvent{
		Code:        string(link.Code),
		OriginalURL: link.OriginalURL,
		CreatedBy:   link.CreatedBy.Key(),
		CreatedAt:   link.CreatedAt,
		ClientIP:    meta.ClientIP,
		UserAgent:   meta.UserAgent,
	}

	if err := h.publishCreated(event); err != nil {
		h.logger.Error("failed to publish link created event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &ShortenResponse{}
	resp.Body.ShortCode = string(link.Code)
	resp.Body.ShortURL = fmt.Sprintf("%s/%s", h.baseURL, link.Code)

	return resp, nil
}

// Stats returns the destination and visit count for a code.
func (h *LinkHandler) Stats(ctx context.Context, req *LinkStatsRequest) (*LinkStatsResponse, error) {
	link, err := h.svc.Resolve(ctx, shortlink.Code(req.ShortCode))
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound("URL not found")
		}

		h.logger.Error("failed to load link stats",
			zap.String("code", req.ShortCode),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to load link")
	}

	resp := &LinkStatsResponse{}
	resp.Body.OriginalURL = link.OriginalURL
	resp.Body.VisitCount = link.VisitCount

	return resp, nil
}

// Quota reports the caller's monthly allowance.
func (h *LinkHandler) Quota(ctx context.Context, _ *struct{}) (*QuotaResponse, error) {
	session := authn.SessionFromContext(ctx)
	if session.Identity.IsZero() {
		return nil, huma.Error500InternalServerError("identity not resolved")
	}

	status, err := h.ledger.Status(ctx, session.Identity)
	if err != nil {
		h.logger.Error("failed to compute quota", zap.Error(err))

		return nil, huma.Error500InternalServerError("failed to compute quota")
	}

	resp := &QuotaResponse{}
	resp.Body.Limit = status.Limit
	resp.Body.Used = status.Used
	resp.Body.Remaining = status.Remaining

	return resp, nil
}
