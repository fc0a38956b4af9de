package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/plxdev/plx/internal/models"
	"github.com/plxdev/plx/internal/shared"
	"golang.org/x/time/rate"
)

const defaultCatalogBaseURL = "http://localhost:3001"

var _ Catalog = (*CatalogService)(nil)

// CatalogService implements [Catalog] against the remote song catalog.
//
// Requests pass through a [rate.Limiter]; public catalog endpoints throttle
// burst traffic and a misbehaving client gets served errors for everything.
type CatalogService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewCatalogService creates a catalog client. A zero or negative rps disables
// throttling; a nil client falls back to [http.DefaultClient].
func NewCatalogService(baseURL string, client *http.Client, rps float64, burst int) *CatalogService {
	if baseURL == "" {
		baseURL = defaultCatalogBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	limit := rate.Inf
	if rps > 0 {
		limit = rate.Limit(rps)
	}
	if burst <= 0 {
		burst = 1
	}

	return &CatalogService{
		baseURL:    baseURL,
		httpClient: client,
		limiter:    rate.NewLimiter(limit, burst),
	}
}

// SearchSongs queries the catalog and normalizes the response.
//
// The service has answered both with a bare song array and with a {data:[..]}
// envelope; both decode to the same canonical sequence. Any other shape
// yields an empty sequence without an error. Transport failures and
// non-success statuses yield an empty sequence plus [shared.ErrSearchFailed].
func (c *CatalogService) SearchSongs(ctx context.Context, query string) ([]models.Song, error) {
	songs := []models.Song{}

	if err := c.limiter.Wait(ctx); err != nil {
		return songs, fmt.Errorf("%w: %v", shared.ErrSearchFailed, err)
	}

	// The empty query is forwarded as-is; what the catalog does with it is
	// the catalog's business.
	endpoint := fmt.Sprintf("%s/songs/search?q=%s", c.baseURL, url.QueryEscape(query))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return songs, fmt.Errorf("%w: failed to create request: %v", shared.ErrSearchFailed, err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return songs, fmt.Errorf("%w: request failed: %v", shared.ErrSearchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return songs, fmt.Errorf("%w: catalog error: status %d", shared.ErrSearchFailed, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return songs, fmt.Errorf("%w: failed to read response: %v", shared.ErrSearchFailed, err)
	}

	return normalizeSearchResponse(body), nil
}

// normalizeSearchResponse accepts either response envelope and always returns
// a non-nil slice.
func normalizeSearchResponse(body []byte) []models.Song {
	var bare []wireSong
	if err := json.Unmarshal(body, &bare); err == nil {
		return canonicalSongs(bare)
	}

	var envelope struct {
		Data []wireSong `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && envelope.Data != nil {
		return canonicalSongs(envelope.Data)
	}

	return []models.Song{}
}

func canonicalSongs(wire []wireSong) []models.Song {
	songs := make([]models.Song, len(wire))
	for i, ws := range wire {
		songs[i] = ws.canonical()
	}
	return songs
}
