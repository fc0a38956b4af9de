package services

import (
	"context"

	"github.com/plxdev/plx/internal/models"
)

// Catalog defines the search contract against the remote song catalog.
type Catalog interface {
	// SearchSongs issues a free-text query and returns canonical songs.
	//
	// The query is forwarded as-is, including the empty query. On transport
	// failure or a non-success response the result is an empty slice together
	// with an error wrapping [shared.ErrSearchFailed]; the slice is never nil.
	SearchSongs(ctx context.Context, query string) ([]models.Song, error)
}

// PlaylistAPI defines the persistence service contract for playlists.
//
// Every mutating call is a standalone request; the service holds no client
// state and callers (the playlist store) re-read authoritative state after
// each write.
type PlaylistAPI interface {
	// ListPlaylists retrieves all playlists in server order.
	ListPlaylists(ctx context.Context) ([]models.Playlist, error)

	// GetPlaylist retrieves a single playlist. A missing id yields an error
	// wrapping [shared.ErrPlaylistNotFound].
	GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error)

	// CreatePlaylist creates an empty playlist with the given name. The
	// created id is not returned; callers observe it via a subsequent list.
	CreatePlaylist(ctx context.Context, name string) error

	// DeletePlaylist removes a playlist by id.
	DeletePlaylist(ctx context.Context, playlistID string) error

	// AddSong appends a song to a playlist. The service decides whether a
	// duplicate id creates a new entry or is merged.
	AddSong(ctx context.Context, playlistID string, song models.Song) error

	// RemoveSong removes the song with the given id from a playlist.
	RemoveSong(ctx context.Context, playlistID, songID string) error
}
