package store

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/plxdev/plx/internal/models"
	"github.com/plxdev/plx/internal/services"
	"github.com/plxdev/plx/internal/shared"
)

// Store mirrors server-held playlists for the UI layers.
//
// The aggregate snapshot returned by [Store.Playlists] is replaced wholesale
// on every list fetch; a failed fetch empties it rather than leaving stale
// entries mixed with new ones.
type Store struct {
	api     services.PlaylistAPI
	confirm Confirmer
	notify  Notifier
	logger  *log.Logger

	mu        sync.Mutex
	playlists []models.Playlist
	phase     Phase
}

// Opts contains the dependencies for creating a [Store].
type Opts struct {
	API     services.PlaylistAPI
	Confirm Confirmer
	Notify  Notifier
	Logger  *log.Logger
}

// New creates a Store. Confirm defaults to [AlwaysConfirm] and the logger to
// the shared default.
func New(opts Opts) *Store {
	if opts.Confirm == nil {
		opts.Confirm = AlwaysConfirm
	}
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}

	return &Store{
		api:       opts.API,
		confirm:   opts.Confirm,
		notify:    opts.Notify,
		logger:    opts.Logger,
		playlists: []models.Playlist{},
	}
}

// Playlists returns the current aggregate snapshot.
func (s *Store) Playlists() []models.Playlist {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := make([]models.Playlist, len(s.playlists))
	copy(snapshot, s.playlists)
	return snapshot
}

// Phase returns the current state-machine phase.
func (s *Store) Phase() Phase {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.phase
}

// ListPlaylists fetches the full ordered playlist sequence and replaces the
// snapshot with it. On error the snapshot becomes empty and the returned
// sequence is empty, never a stale mix.
func (s *Store) ListPlaylists(ctx context.Context) ([]models.Playlist, error) {
	playlists, err := s.api.ListPlaylists(ctx)
	if err != nil {
		s.logger.Warn("playlist list fetch failed", "error", err)
		s.setSnapshot([]models.Playlist{})
		return []models.Playlist{}, err
	}

	if playlists == nil {
		playlists = []models.Playlist{}
	}
	s.setSnapshot(playlists)
	return s.Playlists(), nil
}

// GetPlaylist fetches one playlist by id. A missing id surfaces as an error
// wrapping [shared.ErrPlaylistNotFound], which views render as a distinct
// not-found state rather than an empty list.
func (s *Store) GetPlaylist(ctx context.Context, playlistID string) (*models.Playlist, error) {
	return s.api.GetPlaylist(ctx, playlistID)
}

// CreatePlaylist creates an empty playlist with the given name, then
// refreshes the aggregate snapshot. An empty name is rejected before any
// network call.
func (s *Store) CreatePlaylist(ctx context.Context, name string) error {
	if name == "" {
		return shared.ErrInvalidInput
	}

	return s.mutateThenList(ctx, "create_playlist", func() error {
		return s.api.CreatePlaylist(ctx, name)
	})
}

// DeletePlaylist removes a playlist after the confirmation gate passes.
//
// A declined confirmation performs no network call and no refresh. Once the
// delete request is issued, the refresh runs whether it succeeded or failed;
// there is no undo.
func (s *Store) DeletePlaylist(ctx context.Context, playlistID string) error {
	if !s.confirm.Confirm("Are you sure you want to delete this playlist?") {
		return shared.ErrNotConfirmed
	}

	return s.mutateThenList(ctx, "delete_playlist", func() error {
		return s.api.DeletePlaylist(ctx, playlistID)
	})
}

// AddSong sends an add-song mutation and refetches the playlist.
//
// No client-side duplicate pre-check happens here; the persistence service is
// the de-duplication authority and the refetched playlist is what callers
// trust, not an optimistic append. A missing add timestamp is stamped with
// the insertion time.
func (s *Store) AddSong(ctx context.Context, playlistID string, song models.Song) (*models.Playlist, error) {
	if song.AddedAt == nil {
		now := time.Now().UTC()
		song.AddedAt = &now
	}

	return s.mutateThenGet(ctx, "add_song", playlistID, func() error {
		return s.api.AddSong(ctx, playlistID, song)
	})
}

// RemoveSong sends a remove-song mutation and refetches the playlist.
func (s *Store) RemoveSong(ctx context.Context, playlistID, songID string) (*models.Playlist, error) {
	return s.mutateThenGet(ctx, "remove_song", playlistID, func() error {
		return s.api.RemoveSong(ctx, playlistID, songID)
	})
}

// mutateThenList runs a mutation scoped to the aggregate list, then
// unconditionally refreshes the list snapshot.
func (s *Store) mutateThenList(ctx context.Context, op string, mutate func() error) error {
	opID := shared.GenerateID()
	logger := shared.WithLogger(s.logger, "op", op, "op_id", opID)

	s.transition(op, InFlight)
	mutErr := mutate()
	if mutErr != nil {
		logger.Warn("mutation rejected", "error", mutErr)
	}

	s.transition(op, Refreshing)
	if _, err := s.ListPlaylists(ctx); err != nil {
		logger.Warn("post-mutation refresh failed", "error", err)
		if mutErr == nil {
			mutErr = err
		}
	}

	s.transition(op, Idle)
	return mutErr
}

// mutateThenGet runs a mutation scoped to a single playlist, then
// unconditionally refetches that playlist.
//
// The mutation error, when present, wins over the refetch result so callers
// can report it; the refetched playlist is still returned when available so
// views settle on server truth.
func (s *Store) mutateThenGet(ctx context.Context, op, playlistID string, mutate func() error) (*models.Playlist, error) {
	opID := shared.GenerateID()
	logger := shared.WithLogger(s.logger, "op", op, "op_id", opID, "playlist_id", playlistID)

	s.transition(op, InFlight)
	mutErr := mutate()
	if mutErr != nil {
		logger.Warn("mutation rejected", "error", mutErr)
	}

	s.transition(op, Refreshing)
	playlist, getErr := s.api.GetPlaylist(ctx, playlistID)
	if getErr != nil {
		logger.Warn("post-mutation refetch failed", "error", getErr)
	}

	s.transition(op, Idle)

	if mutErr != nil {
		return playlist, mutErr
	}
	return playlist, getErr
}

func (s *Store) setSnapshot(playlists []models.Playlist) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.playlists = playlists
}

func (s *Store) transition(op string, phase Phase) {
	s.mu.Lock()
	s.phase = phase
	s.mu.Unlock()

	s.logger.Debug("state transition", "op", op, "phase", phase.String())
	if s.notify != nil {
		s.notify(op, phase)
	}
}
