package ui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/list"
	"github.com/plxdev/plx/internal/models"
)

var (
	_ list.Item = playlistItem{}
	_ list.Item = songItem{}
	_ list.Item = resultItem{}
)

// playlistItem wraps [models.Playlist] to implement [list.Item].
type playlistItem struct {
	playlist models.Playlist
}

func (i playlistItem) FilterValue() string { return i.playlist.Name }
func (i playlistItem) Title() string       { return i.playlist.Name }
func (i playlistItem) Description() string {
	return fmt.Sprintf("%d songs", len(i.playlist.Songs))
}

// songItem wraps a [models.Song] stored in a playlist to implement [list.Item].
type songItem struct {
	song models.Song
}

func (i songItem) FilterValue() string { return i.song.Title }
func (i songItem) Title() string       { return i.song.Title }
func (i songItem) Description() string {
	desc := fmt.Sprintf("%s • %s", i.song.ArtistName(), i.song.AlbumTitle())
	if added := i.song.AddedDate(); added != "" {
		desc = fmt.Sprintf("%s • added %s", desc, added)
	}
	return desc
}

// resultItem wraps a catalog search result to implement [list.Item].
type resultItem struct {
	song models.Song
}

func (i resultItem) FilterValue() string { return i.song.Title }
func (i resultItem) Title() string       { return i.song.Title }
func (i resultItem) Description() string {
	return fmt.Sprintf("%s • %s", i.song.ArtistName(), i.song.AlbumTitle())
}
