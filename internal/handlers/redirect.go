package handlers

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/linkshrink/linkshrink/internal/analytics"
	"github.com/linkshrink/linkshrink/internal/shortlink"
	"go.uber.org/zap"
)

// reservedPrefixes are path segments the shortener must never capture.
var reservedPrefixes = []string{"api", "docs", "schemas", "health"}

// reservedCode reports whether a path segment belongs to the application
// rather than the code space: anything with a dot looks like a static
// asset, and reserved prefixes cover the API and documentation routes.
// Codes from the restricted alphabet can never collide with these.
func reservedCode(code string) bool {
	if strings.Contains(code, ".") {
		return true
	}

	for _, prefix := range reservedPrefixes {
		if strings.HasPrefix(code, prefix) {
			return true
		}
	}

	return false
}

// Redirect resolves a short code and issues a 302 to its destination. The
// visit count increment and the analytics event are both fired without
// waiting: storage latency on the counting path never delays the redirect.
func (h *LinkHandler) Redirect(ctx context.Context, req *RedirectRequest) (*RedirectResponse, error) {
	if reservedCode(req.ShortCode) {
		return nil, huma.Error404NotFound("not found")
	}

	link, err := h.svc.Resolve(ctx, shortlink.Code(req.ShortCode))
	if err != nil {
		if errors.Is(err, shortlink.ErrNotFound) {
			return nil, huma.Error404NotFound("not found")
		}

		h.logger.Error("failed to resolve short code",
			zap.String("code", req.ShortCode),
			zap.Error(err),
		)

		return nil, huma.Error500InternalServerError("failed to resolve short code")
	}

	h.svc.RecordVisit(link.Code)

	meta := RequestMetaFromContext(ctx)
	event := &analytics.LinkVisitedEvent{
		Code:      string(link.Code),
		VisitedAt: time.Now(),
		ClientIP:  meta.ClientIP,
		UserAgent: meta.UserAgent,
		Referrer:  meta.Referrer,
	}

	if err := h.publishVisited(event); err != nil {
		h.logger.Error("failed to publish link visited event",
			zap.String("code", event.Code),
			zap.Error(err),
		)
	}

	resp := &RedirectResponse{Status: http.StatusFound}
	resp.Headers.Location = link.OriginalURL

	return resp, nil
}
