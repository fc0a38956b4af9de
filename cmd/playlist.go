package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/plxdev/plx/internal/formatter"
	"github.com/plxdev/plx/internal/models"
	"github.com/plxdev/plx/internal/shared"
	"github.com/urfave/cli/v3"
)

// PlaylistList fetches and prints the full playlist sequence.
func (r *Runner) PlaylistList(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("listing playlists")

	playlists, err := r.store.ListPlaylists(ctx)
	if err != nil {
		return fmt.Errorf("failed to list playlists: %w", err)
	}

	if useJSON {
		return r.writeJSON(playlists, pretty)
	}

	if len(playlists) == 0 {
		r.writePlain("No playlists found.\n")
		return nil
	}

	r.writePlain("Playlists (%d):\n", len(playlists))
	for _, playlist := range playlists {
		r.writePlain("  %-28s %3d songs  [%s]\n", playlist.Name, len(playlist.Songs), playlist.ID)
	}

	return nil
}

// PlaylistShow fetches one playlist and prints its songs.
//
// A missing playlist is reported as its own message, not an empty listing.
func (r *Runner) PlaylistShow(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	useJSON := cmd.Bool("json")

	if playlistID == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	r.logger.Info("fetching playlist", "id", playlistID)

	playlist, err := r.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		if errors.Is(err, shared.ErrPlaylistNotFound) {
			r.writePlain("Playlist not found: %s\n", playlistID)
			return nil
		}
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	if useJSON {
		return r.writeJSON(playlist, true)
	}

	r.writePlaylistDetail(playlist)
	return nil
}

// PlaylistCreate creates a new empty playlist.
func (r *Runner) PlaylistCreate(ctx context.Context, cmd *cli.Command) error {
	name := cmd.StringArg("name")
	if name == "" {
		return fmt.Errorf("%w: playlist name is required", shared.ErrMissingArgument)
	}

	r.logger.Info("creating playlist", "name", name)

	if err := r.store.CreatePlaylist(ctx, name); err != nil {
		return fmt.Errorf("failed to create playlist: %w", err)
	}

	r.writePlain("✓ Created playlist '%s'\n", name)
	return nil
}

// PlaylistDelete removes a playlist after confirmation.
func (r *Runner) PlaylistDelete(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	if playlistID == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	r.assumeYes = cmd.Bool("yes")

	r.logger.Info("deleting playlist", "id", playlistID)

	if err := r.store.DeletePlaylist(ctx, playlistID); err != nil {
		if errors.Is(err, shared.ErrNotConfirmed) {
			r.writePlain("Aborted.\n")
			return nil
		}
		return fmt.Errorf("failed to delete playlist: %w", err)
	}

	r.writePlain("✓ Deleted playlist %s\n", playlistID)
	return nil
}

// PlaylistAdd searches the catalog and adds the picked result to a playlist.
//
// The server decides whether the song is a duplicate; the printed listing is
// the refetched playlist, so an already-present song simply shows up once.
func (r *Runner) PlaylistAdd(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	query := cmd.String("query")
	pick := cmd.Int("pick")

	if playlistID == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	r.logger.Info("searching catalog", "query", query)

	songs, err := r.catalog.SearchSongs(ctx, query)
	if err != nil {
		return fmt.Errorf("catalog search failed: %w", err)
	}
	r.recordSearch(query, len(songs))

	if len(songs) == 0 {
		r.writePlain("No results for %q\n", query)
		return nil
	}

	if pick < 1 || int(pick) > len(songs) {
		return fmt.Errorf("%w: pick %d out of range, search returned %d results", shared.ErrInvalidInput, pick, len(songs))
	}

	song := songs[pick-1]
	r.logger.Info("adding song", "playlist_id", playlistID, "song_id", song.ID, "title", song.Title)

	playlist, err := r.store.AddSong(ctx, playlistID, song)
	if err != nil {
		return fmt.Errorf("failed to add song: %w", err)
	}

	r.writePlain("✓ Added '%s' by %s\n", song.Title, song.ArtistName())
	if playlist != nil {
		r.writePlaylistDetail(playlist)
	}
	return nil
}

// PlaylistRemove removes a song from a playlist and prints the refetched state.
func (r *Runner) PlaylistRemove(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	songID := cmd.StringArg("song-id")

	if playlistID == "" || songID == "" {
		return fmt.Errorf("%w: playlist id and song id are required", shared.ErrMissingArgument)
	}

	r.logger.Info("removing song", "playlist_id", playlistID, "song_id", songID)

	playlist, err := r.store.RemoveSong(ctx, playlistID, songID)
	if err != nil {
		return fmt.Errorf("failed to remove song: %w", err)
	}

	r.writePlain("✓ Removed song %s\n", songID)
	if playlist != nil {
		r.writePlaylistDetail(playlist)
	}
	return nil
}

// PlaylistStream opens a song's streaming link in the default browser.
func (r *Runner) PlaylistStream(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	songID := cmd.StringArg("song-id")

	if playlistID == "" || songID == "" {
		return fmt.Errorf("%w: playlist id and song id are required", shared.ErrMissingArgument)
	}

	playlist, err := r.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	var target *models.Song
	for i := range playlist.Songs {
		if playlist.Songs[i].ID == songID {
			target = &playlist.Songs[i]
			break
		}
	}

	if target == nil {
		return fmt.Errorf("%w: song %s not in playlist %s", shared.ErrSongNotFound, songID, playlistID)
	}
	if target.StreamURL == "" {
		return fmt.Errorf("%w: no stream link for '%s'", shared.ErrSongNotFound, target.Title)
	}

	r.logger.Info("opening stream", "url", target.StreamURL)
	if err := shared.OpenBrowser(target.StreamURL); err != nil {
		return fmt.Errorf("failed to open browser: %w", err)
	}

	r.writePlain("✓ Opened %s\n", target.StreamURL)
	return nil
}

// PlaylistExport writes a playlist in the requested format to a file or stdout.
func (r *Runner) PlaylistExport(ctx context.Context, cmd *cli.Command) error {
	playlistID := cmd.StringArg("id")
	format := strings.ToLower(cmd.String("format"))
	outputPath := cmd.String("output")

	if playlistID == "" {
		return fmt.Errorf("%w: playlist id is required", shared.ErrMissingArgument)
	}

	playlist, err := r.store.GetPlaylist(ctx, playlistID)
	if err != nil {
		return fmt.Errorf("failed to fetch playlist: %w", err)
	}

	var data []byte
	switch format {
	case "csv":
		data, err = formatter.ExportToCSV(playlist)
	case "markdown", "md":
		data, err = formatter.ExportToMarkdown(playlist)
	case "text", "txt":
		data = formatter.ExportToText(playlist)
	default:
		return fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
	}
	if err != nil {
		return fmt.Errorf("failed to export playlist: %w", err)
	}

	if outputPath == "" {
		if _, err := r.output.Write(data); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
		return nil
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}

	r.writePlain("✓ Exported '%s' to %s\n", playlist.Name, outputPath)
	return nil
}

func (r *Runner) writePlaylistDetail(playlist *models.Playlist) {
	r.writePlain("%s (%d songs)\n", playlist.Name, len(playlist.Songs))
	for i, song := range playlist.Songs {
		line := fmt.Sprintf("%3d. %s - %s [%s]", i+1, song.ArtistName(), song.Title, song.AlbumTitle())
		if added := song.AddedDate(); added != "" {
			line += fmt.Sprintf(" added %s", added)
		}
		r.writePlain("%s  (%s)\n", line, song.ID)
	}
}
