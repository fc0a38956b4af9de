package services

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/plxdev/plx/internal/models"
	"github.com/plxdev/plx/internal/shared"
)

const defaultServerBaseURL = "http://localhost:3001"

var _ PlaylistAPI = (*PlaylistService)(nil)

// PlaylistService implements [PlaylistAPI] over the persistence service's
// REST interface.
type PlaylistService struct {
	baseURL    string
	httpClient *http.Client
}

// NewPlaylistService creates a persistence client. A nil http client falls
// back to [http.DefaultClient]; a zero timeout leaves the client's own
// timeout in place.
func NewPlaylistService(baseURL string, client *http.Client, timeout time.Duration) *PlaylistService {
	if baseURL == "" {
		baseURL = defaultServerBaseURL
	}
	if client == nil {
		client = &http.Client{}
	}
	if timeout > 0 {
		client.Timeout = timeout
	}

	return &PlaylistService{
		baseURL:    baseURL,
		httpClient: client,
	}
}

// doRequest performs an HTTP request against the persistence service,
// JSON-encoding body when present and decoding into result when non-nil.
func (p *PlaylistService) doRequest(ctx context.Context, method, endpoint string, body, result any) (int, error) {
	apiURL := p.baseURL + endpoint

	var reader *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, apiURL, reader)
	if err != nil {
		return 0, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return resp.StatusCode, fmt.Errorf("playlist service error: status %d", resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return resp.StatusCode, fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return resp.StatusCode, nil
}

// ListPlaylists retrieves all playlists via GET /playlists.
func (p *PlaylistService) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	var wire []wirePlaylist
	if _, err := p.doRequest(ctx, http.MethodGet, "/playlists", nil, &wire); err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	playlists := make([]models.Playlist, len(wire))
	for i, wp := range wire {
		playlists[i] = wp.canonical()
	}

	return playlists, nil
}

// GetPlaylist retrieves one playlist via GET /playlists/{id}.
func (p *PlaylistService) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))

	var wire wirePlaylist
	status, err := p.doRequest(ctx, http.MethodGet, endpoint, nil, &wire)
	if err != nil {
		if status == http.StatusNotFound {
			return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
		}
		return nil, fmt.Errorf("%w: %v", shared.ErrFetchFailed, err)
	}

	playlist := wire.canonical()
	if playlist.ID == "" {
		// Some service versions answer 200 with an empty document for a
		// missing id.
		return nil, fmt.Errorf("%w: %s", shared.ErrPlaylistNotFound, playlistID)
	}

	return &playlist, nil
}

// CreatePlaylist creates an empty playlist via POST /playlists.
func (p *PlaylistService) CreatePlaylist(ctx context.Context, name string) error {
	body := struct {
		Name  string        `json:"name"`
		Songs []models.Song `json:"songs"`
	}{Name: name, Songs: []models.Song{}}

	if _, err := p.doRequest(ctx, http.MethodPost, "/playlists", body, nil); err != nil {
		return fmt.Errorf("%w: create playlist: %v", shared.ErrMutationFailed, err)
	}

	return nil
}

// DeletePlaylist removes a playlist via DELETE /playlists/{id}.
func (p *PlaylistService) DeletePlaylist(ctx context.Context, playlistID string) error {
	endpoint := fmt.Sprintf("/playlists/%s", url.PathEscape(playlistID))

	if _, err := p.doRequest(ctx, http.MethodDelete, endpoint, nil, nil); err != nil {
		return fmt.Errorf("%w: delete playlist: %v", shared.ErrMutationFailed, err)
	}

	return nil
}

// AddSong appends a song via PATCH /playlists/{id}/add-song.
//
// The request is sent even when the song already appears locally; the
// persistence service is the de-duplication authority and the caller's
// follow-up refetch is what views trust.
func (p *PlaylistService) AddSong(ctx context.Context, playlistID string, song models.Song) error {
	endpoint := fmt.Sprintf("/playlists/%s/add-song", url.PathEscape(playlistID))

	if _, err := p.doRequest(ctx, http.MethodPatch, endpoint, encodeAddSong(song), nil); err != nil {
		return fmt.Errorf("%w: add song: %v", shared.ErrMutationFailed, err)
	}

	return nil
}

// RemoveSong removes a song via PATCH /playlists/{id}/remove-song.
func (p *PlaylistService) RemoveSong(ctx context.Context, playlistID, songID string) error {
	endpoint := fmt.Sprintf("/playlists/%s/remove-song", url.PathEscape(playlistID))
	body := struct {
		SongID string `json:"songId"`
	}{SongID: songID}

	if _, err := p.doRequest(ctx, http.MethodPatch, endpoint, body, nil); err != nil {
		return fmt.Errorf("%w: remove song: %v", shared.ErrMutationFailed, err)
	}

	return nil
}
