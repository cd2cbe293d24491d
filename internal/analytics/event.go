// Package analytics records link lifecycle events. The events are the
// analytics record only; the authoritative visit counter lives on the
// short_links row and is incremented by the redirect path itself.
package analytics

import "time"

const (
	// TopicLinkCreated carries LinkCreatedEvent.
	TopicLinkCreated = "link.created"
	// TopicLinkVisited carries LinkVisitedEvent.
	TopicLinkVisited = "link.visited"
)

// LinkCreatedEvent is emitted when a short link is minted.
type LinkCreatedEvent struct {
	Code        string    `json:"code"`
	OriginalURL string    `json:"originalUrl"`
	CreatedBy   string    `json:"createdBy"`
	CreatedAt   time.Time `json:"createdAt"`
	ClientIP    string    `json:"clientIp"`
	UserAgent   string    `json:"userAgent"`
}

// LinkVisitedEvent is emitted on every successful redirect.
type LinkVisitedEvent struct {
	Code      string    `json:"code"`
	VisitedAt time.Time `json:"visitedAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
	Referrer  string    `json:"referrer"`
}
