package ui

import "github.com/plxdev/plx/internal/models"

// Messages delivered back to [Model.Update] by async commands. Messages that
// target a specific playlist or query carry that identity so stale deliveries
// can be dropped.

type playlistsLoadedMsg struct {
	playlists []models.Playlist
	err       error
}

type playlistLoadedMsg struct {
	playlistID string
	playlist   *models.Playlist
	err        error
}

type searchDoneMsg struct {
	targetID string
	query    string
	songs    []models.Song
	err      error
}

type songMutatedMsg struct {
	playlistID string
	playlist   *models.Playlist
	err        error
}

type streamOpenedMsg struct {
	err error
}
