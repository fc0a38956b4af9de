package ui

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/plxdev/plx/internal/models"
	"github.com/plxdev/plx/internal/repositories"
	"github.com/plxdev/plx/internal/services"
	"github.com/plxdev/plx/internal/session"
	"github.com/plxdev/plx/internal/shared"
	"github.com/plxdev/plx/internal/store"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	PlaylistListView ViewState = iota
	DetailView
	NewPlaylistView
	ConfirmDeleteView
	SearchView
)

// Model represents the TUI application state.
//
// The aggregate list flow and the detail flow keep separate fields here and
// only share the playlist store; the add-song dialog state lives in a
// [session.Search] so it can be replaced or discarded as one unit.
type Model struct {
	ctx     context.Context
	store   *store.Store
	catalog services.Catalog
	history *repositories.HistoryRepository
	search  *session.Search
	logger  *log.Logger

	view    ViewState
	width   int
	height  int
	loading bool
	err     error

	playlistList list.Model
	playlists    []models.Playlist

	detailID string
	detail   *models.Playlist
	notFound bool
	songList list.Model

	nameInput  textinput.Model
	queryInput textinput.Model
	resultList list.Model
	spin       spinner.Model

	deleteID   string
	deleteName string

	help help.Model
	keys keyMap
}

// NewModel creates a new TUI model with the provided dependencies.
//
// The store must be constructed with [store.AlwaysConfirm]: the delete
// confirmation gate is the ConfirmDeleteView here, not a terminal prompt.
// history may be nil when no local database is configured.
func NewModel(ctx context.Context, st *store.Store, catalog services.Catalog, history *repositories.HistoryRepository, logger *log.Logger) *Model {
	nameInput := textinput.New()
	nameInput.Placeholder = "Enter playlist name"
	nameInput.CharLimit = 120

	queryInput := textinput.New()
	queryInput.Placeholder = "Enter song or artist name"
	queryInput.CharLimit = 200

	spin := spinner.New()
	spin.Spinner = spinner.Dot

	if logger == nil {
		logger = shared.NewLogger(nil)
	}

	return &Model{
		ctx:        ctx,
		store:      st,
		catalog:    catalog,
		history:    history,
		search:     session.NewSearch(),
		logger:     logger,
		view:       PlaylistListView,
		loading:    true,
		nameInput:  nameInput,
		queryInput: queryInput,
		spin:       spin,
		help:       help.New(),
		keys:       newKeyMap(),
	}
}

// Init kicks off the initial playlist fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchPlaylists())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if m.playlistList.Width() > 0 {
			m.playlistList.SetSize(msg.Width-4, msg.Height-8)
		}
		if m.songList.Width() > 0 {
			m.songList.SetSize(msg.Width-4, msg.Height-8)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		switch m.view {
		case PlaylistListView:
			return m.handlePlaylistListKeys(msg)
		case DetailView:
			return m.handleDetailKeys(msg)
		case NewPlaylistView:
			return m.handleNewPlaylistKeys(msg)
		case ConfirmDeleteView:
			return m.handleConfirmDeleteKeys(msg)
		case SearchView:
			return m.handleSearchKeys(msg)
		}

	case playlistsLoadedMsg:
		m.loading = false
		m.err = msg.err
		m.playlists = msg.playlists
		items := make([]list.Item, len(msg.playlists))
		for i, pl := range msg.playlists {
			items[i] = playlistItem{playlist: pl}
		}
		m.playlistList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.playlistList.Title = "Playlists"
		m.playlistList.SetSize(m.width-4, m.height-8)
		return m, nil

	case playlistLoadedMsg:
		// A fetch that finished after the user moved on is stale; apply it
		// only when the detail view still targets the same playlist.
		if msg.playlistID != m.detailID {
			return m, nil
		}
		m.loading = false
		m.notFound = false
		if msg.err != nil {
			if errors.Is(msg.err, shared.ErrPlaylistNotFound) {
				m.notFound = true
				m.view = DetailView
				return m, nil
			}
			m.err = msg.err
			m.view = PlaylistListView
			return m, nil
		}
		m.setDetail(msg.playlist)
		m.view = DetailView
		return m, nil

	case searchDoneMsg:
		// Results for a replaced target or an abandoned dialog are discarded.
		if !m.search.Active() || msg.targetID != m.search.TargetID() || msg.query != m.search.Query() {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		m.search.SetResults(msg.songs)
		items := make([]list.Item, len(msg.songs))
		for i, song := range msg.songs {
			items[i] = resultItem{song: song}
		}
		m.resultList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.resultList.Title = fmt.Sprintf("Results for %q", msg.query)
		m.resultList.SetSize(m.width-4, m.height-12)
		return m, nil

	case songMutatedMsg:
		if msg.playlistID != m.detailID {
			return m, nil
		}
		m.loading = false
		m.err = msg.err
		if msg.playlist != nil {
			m.setDetail(msg.playlist)
		} else if msg.err != nil && errors.Is(msg.err, shared.ErrPlaylistNotFound) {
			m.notFound = true
		}
		if msg.err == nil && m.view == SearchView {
			// Successful add closes the dialog and discards the result set.
			m.search.Close()
			m.view = DetailView
		}
		return m, nil

	case streamOpenedMsg:
		if msg.err != nil {
			m.err = msg.err
		}
		return m, nil
	}

	return m.updateLists(msg)
}

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.loading {
		return fmt.Sprintf("%s Loading...", m.spin.View())
	}

	switch m.view {
	case PlaylistListView:
		return m.renderPlaylistList()
	case DetailView:
		return m.renderDetail()
	case NewPlaylistView:
		return m.renderNewPlaylist()
	case ConfirmDeleteView:
		return m.renderConfirmDelete()
	case SearchView:
		return m.renderSearch()
	default:
		return ""
	}
}

func (m *Model) handlePlaylistListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.enter):
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.detailID = item.playlist.ID
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.fetchPlaylist(item.playlist.ID))
		}
	case key.Matches(msg, m.keys.create):
		m.nameInput.SetValue("")
		m.nameInput.Focus()
		m.view = NewPlaylistView
		return m, textinput.Blink
	case key.Matches(msg, m.keys.delete):
		if item, ok := m.playlistList.SelectedItem().(playlistItem); ok {
			m.deleteID = item.playlist.ID
			m.deleteName = item.playlist.Name
			m.view = ConfirmDeleteView
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.playlistList, cmd = m.playlistList.Update(msg)
	return m, cmd
}

func (m *Model) handleDetailKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.back):
		m.detailID = ""
		m.detail = nil
		m.notFound = false
		m.err = nil
		m.view = PlaylistListView
		m.loading = true
		return m, tea.Batch(m.spin.Tick, m.fetchPlaylists())
	case key.Matches(msg, m.keys.search):
		if m.detail == nil {
			return m, nil
		}
		m.search.Open(m.detail.ID)
		m.queryInput.SetValue("")
		m.queryInput.Focus()
		m.resultList = list.New([]list.Item{}, list.NewDefaultDelegate(), m.width-4, m.height-12)
		m.resultList.Title = "Results"
		m.view = SearchView
		return m, textinput.Blink
	case key.Matches(msg, m.keys.remove):
		if item, ok := m.songList.SelectedItem().(songItem); ok && m.detail != nil {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.removeSong(m.detail.ID, item.song.ID))
		}
		return m, nil
	case key.Matches(msg, m.keys.stream):
		if item, ok := m.songList.SelectedItem().(songItem); ok {
			return m, m.openStream(item.song)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.songList, cmd = m.songList.Update(msg)
	return m, cmd
}

func (m *Model) handleNewPlaylistKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.view = PlaylistListView
		return m, nil
	case "enter":
		name := m.nameInput.Value()
		if name == "" {
			// Empty name never reaches the network.
			return m, nil
		}
		m.loading = true
		m.view = PlaylistListView
		return m, tea.Batch(m.spin.Tick, m.createPlaylist(name))
	case "ctrl+c":
		return m, tea.Quit
	}

	var cmd tea.Cmd
	m.nameInput, cmd = m.nameInput.Update(msg)
	return m, cmd
}

func (m *Model) handleConfirmDeleteKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y":
		id := m.deleteID
		m.deleteID = ""
		m.deleteName = ""
		m.loading = true
		m.view = PlaylistListView
		return m, tea.Batch(m.spin.Tick, m.deletePlaylist(id))
	case "n", "esc", "q":
		m.deleteID = ""
		m.deleteName = ""
		m.view = PlaylistListView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleSearchKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		// Closing discards the query and result set; nothing survives to the
		// next opening.
		m.search.Close()
		m.view = DetailView
		return m, nil
	case "ctrl+c":
		return m, tea.Quit
	case "enter":
		if m.queryInput.Focused() {
			query := m.queryInput.Value()
			m.search.SetQuery(query)
			m.queryInput.Blur()
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.searchSongs(m.search.TargetID(), query))
		}
		if item, ok := m.resultList.SelectedItem().(resultItem); ok {
			m.loading = true
			return m, tea.Batch(m.spin.Tick, m.addSong(m.search.TargetID(), item.song))
		}
		return m, nil
	case "/":
		if !m.queryInput.Focused() {
			m.queryInput.Focus()
			return m, textinput.Blink
		}
	}

	if m.queryInput.Focused() {
		var cmd tea.Cmd
		m.queryInput, cmd = m.queryInput.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.resultList, cmd = m.resultList.Update(msg)
	return m, cmd
}

func (m *Model) updateLists(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.view {
	case PlaylistListView:
		m.playlistList, cmd = m.playlistList.Update(msg)
	case DetailView:
		m.songList, cmd = m.songList.Update(msg)
	case SearchView:
		m.resultList, cmd = m.resultList.Update(msg)
	}
	return m, cmd
}

func (m *Model) setDetail(playlist *models.Playlist) {
	m.detail = playlist
	m.notFound = false
	items := make([]list.Item, len(playlist.Songs))
	for i, song := range playlist.Songs {
		items[i] = songItem{song: song}
	}
	m.songList = list.New(items, list.NewDefaultDelegate(), 0, 0)
	m.songList.Title = playlist.Name
	m.songList.SetSize(m.width-4, m.height-8)
}

func (m *Model) fetchPlaylists() tea.Cmd {
	return func() tea.Msg {
		playlists, err := m.store.ListPlaylists(m.ctx)
		return playlistsLoadedMsg{playlists: playlists, err: err}
	}
}

func (m *Model) fetchPlaylist(playlistID string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.store.GetPlaylist(m.ctx, playlistID)
		return playlistLoadedMsg{playlistID: playlistID, playlist: playlist, err: err}
	}
}

func (m *Model) createPlaylist(name string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.CreatePlaylist(m.ctx, name)
		return playlistsLoadedMsg{playlists: m.store.Playlists(), err: err}
	}
}

func (m *Model) deletePlaylist(playlistID string) tea.Cmd {
	return func() tea.Msg {
		err := m.store.DeletePlaylist(m.ctx, playlistID)
		return playlistsLoadedMsg{playlists: m.store.Playlists(), err: err}
	}
}

func (m *Model) searchSongs(targetID, query string) tea.Cmd {
	return func() tea.Msg {
		songs, err := m.catalog.SearchSongs(m.ctx, query)
		if m.history != nil {
			if herr := m.history.Record(query, len(songs)); herr != nil {
				m.logger.Warn("failed to record search", "error", herr)
			}
		}
		return searchDoneMsg{targetID: targetID, query: query, songs: songs, err: err}
	}
}

func (m *Model) addSong(playlistID string, song models.Song) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.store.AddSong(m.ctx, playlistID, song)
		return songMutatedMsg{playlistID: playlistID, playlist: playlist, err: err}
	}
}

func (m *Model) removeSong(playlistID, songID string) tea.Cmd {
	return func() tea.Msg {
		playlist, err := m.store.RemoveSong(m.ctx, playlistID, songID)
		return songMutatedMsg{playlistID: playlistID, playlist: playlist, err: err}
	}
}

func (m *Model) openStream(song models.Song) tea.Cmd {
	return func() tea.Msg {
		if song.StreamURL == "" {
			return streamOpenedMsg{err: fmt.Errorf("no stream link for %q", song.Title)}
		}
		return streamOpenedMsg{err: shared.OpenBrowser(song.StreamURL)}
	}
}

func (m *Model) renderPlaylistList() string {
	var notice string
	if m.err != nil {
		notice = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}
	if len(m.playlists) == 0 {
		body := "No playlists found."
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.create, m.keys.quit})
		return fmt.Sprintf("%s\n%s%s\n\n%s", styles.title.Render("Playlists"), notice, body, helpView)
	}

	helpKeys := []key.Binding{m.keys.enter, m.keys.create, m.keys.delete, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", notice, m.playlistList.View(), helpView)
}

func (m *Model) renderDetail() string {
	if m.notFound {
		// Distinct from an empty playlist: the id no longer resolves.
		body := styles.warn.Render("Playlist not found.")
		helpView := m.help.ShortHelpView([]key.Binding{m.keys.back, m.keys.quit})
		return fmt.Sprintf("%s\n\n%s", body, helpView)
	}
	if m.detail == nil {
		return ""
	}

	var notice string
	if m.err != nil {
		notice = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	helpKeys := []key.Binding{m.keys.search, m.keys.remove, m.keys.stream, m.keys.back, m.keys.quit}
	helpView := m.help.ShortHelpView(helpKeys)
	return fmt.Sprintf("%s%s\n\n%s", notice, m.songList.View(), helpView)
}

func (m *Model) renderNewPlaylist() string {
	title := styles.title.Render("Add Playlist")
	hint := styles.help.Render("enter to create, esc to cancel")
	return fmt.Sprintf("%s\n%s\n\n%s", title, m.nameInput.View(), hint)
}

func (m *Model) renderConfirmDelete() string {
	title := styles.title.Render(fmt.Sprintf("Delete playlist '%s'?", m.deleteName))
	warn := styles.warn.Render("This cannot be undone.")
	helpView := m.help.ShortHelpView([]key.Binding{m.keys.yes, m.keys.no})
	return fmt.Sprintf("%s\n%s\n\n%s", title, warn, helpView)
}

func (m *Model) renderSearch() string {
	title := styles.title.Render("Search for Songs")

	var notice string
	if m.err != nil {
		notice = styles.err.Render(fmt.Sprintf("Error: %v", m.err)) + "\n"
	}

	hint := styles.help.Render("enter to search/add, / to edit query, esc to close")
	return fmt.Sprintf("%s\n%s\n%s%s\n\n%s", title, m.queryInput.View(), notice, m.resultList.View(), hint)
}
