package handlers

// ShortenRequest is the request body for creating a short link.
type ShortenRequest struct {
	Body struct {
		OriginalURL string `doc:"The URL to shorten" example:"https://example.com/very/long/path" json:"originalUrl"`
	}
}

// ShortenResponse is the response for a successfully created short link.
type ShortenResponse struct {
	Body struct {
		ShortCode string `doc:"The allocated short code" example:"x7Gk2"                        json:"shortCode"`
		ShortURL  string `doc:"The full short URL"       example:"https://lnk.example/x7Gk2"    json:"shortUrl"`
	}
}

// LinkStatsRequest asks for a link's stats by code.
type LinkStatsRequest struct {
	ShortCode string `doc:"The short code" example:"x7Gk2" path:"shortCode"`
}

// LinkStatsResponse reports a link's destination and visit count.
type LinkStatsResponse struct {
	Body struct {
		OriginalURL string `doc:"The original URL"              example:"https://example.com/very/long/path" json:"originalUrl"`
		VisitCount  int64  `doc:"Number of recorded redirects"  example:"42"                                 json:"visitCount"`
	}
}

// QuotaResponse reports the monthly creation allowance for the caller.
type QuotaResponse struct {
	Body struct {
		Limit     int64 `doc:"Monthly creation limit"     example:"5" json:"limit"`
		Used      int64 `doc:"Links created this month"   example:"2" json:"used"`
		Remaining int64 `doc:"Creations left this month"  example:"3" json:"remaining"`
	}
}

// RedirectRequest is the request for resolving a short code.
type RedirectRequest struct {
	ShortCode string `doc:"The short code" example:"x7Gk2" path:"shortCode"`
}

// RedirectResponse issues the redirect to the original URL.
type RedirectResponse struct {
	Status  int
	Headers struct {
		Location string `doc:"The original URL" header:"Location"`
	}
}
