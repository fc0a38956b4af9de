// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"net/http"

	"github.com/plxdev/plx/internal/models"
)

// MockPlaylistAPI is a test double for services.PlaylistAPI with per-method
// hooks and call counters.
//
// A nil hook means the call succeeds with a zero result, so tests only wire
// the behavior they care about.
type MockPlaylistAPI struct {
	ListFunc   func(ctx context.Context) ([]models.Playlist, error)
	GetFunc    func(ctx context.Context, id string) (*models.Playlist, error)
	CreateFunc func(ctx context.Context, name string) error
	DeleteFunc func(ctx context.Context, id string) error
	AddFunc    func(ctx context.Context, id string, song models.Song) error
	RemoveFunc func(ctx context.Context, id, songID string) error

	ListCalls   int
	GetCalls    int
	CreateCalls int
	DeleteCalls int
	AddCalls    int
	RemoveCalls int
}

func (m *MockPlaylistAPI) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	m.ListCalls++
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return []models.Playlist{}, nil
}

func (m *MockPlaylistAPI) GetPlaylist(ctx context.Context, id string) (*models.Playlist, error) {
	m.GetCalls++
	if m.GetFunc != nil {
		return m.GetFunc(ctx, id)
	}
	return &models.Playlist{ID: id}, nil
}

func (m *MockPlaylistAPI) CreatePlaylist(ctx context.Context, name string) error {
	m.CreateCalls++
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, name)
	}
	return nil
}

func (m *MockPlaylistAPI) DeletePlaylist(ctx context.Context, id string) error {
	m.DeleteCalls++
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockPlaylistAPI) AddSong(ctx context.Context, id string, song models.Song) error {
	m.AddCalls++
	if m.AddFunc != nil {
		return m.AddFunc(ctx, id, song)
	}
	return nil
}

func (m *MockPlaylistAPI) RemoveSong(ctx context.Context, id, songID string) error {
	m.RemoveCalls++
	if m.RemoveFunc != nil {
		return m.RemoveFunc(ctx, id, songID)
	}
	return nil
}

// MockCatalog is a test double for services.Catalog.
type MockCatalog struct {
	SearchFunc  func(ctx context.Context, query string) ([]models.Song, error)
	SearchCalls int
}

func (m *MockCatalog) SearchSongs(ctx context.Context, query string) ([]models.Song, error) {
	m.SearchCalls++
	if m.SearchFunc != nil {
		return m.SearchFunc(ctx, query)
	}
	return []models.Song{}, nil
}

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading a response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}
