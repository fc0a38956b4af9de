package ui

import (
	"context"
	"fmt"
	"testing"

	"github.com/plxdev/plx/internal/models"
	"github.com/plxdev/plx/internal/shared"
	"github.com/plxdev/plx/internal/store"
	mocks "github.com/plxdev/plx/internal/testing"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	st := store.New(store.Opts{API: &mocks.MockPlaylistAPI{}, Confirm: store.AlwaysConfirm})
	m := NewModel(context.Background(), st, &mocks.MockCatalog{}, nil, nil)
	m.width = 80
	m.height = 24
	return m
}

func TestModelUpdate(t *testing.T) {
	t.Run("playlistLoadedMsg", func(t *testing.T) {
		t.Run("applies a fetch for the current target", func(t *testing.T) {
			m := newTestModel(t)
			m.detailID = "pl1"
			m.loading = true

			m.Update(playlistLoadedMsg{
				playlistID: "pl1",
				playlist:   &models.Playlist{ID: "pl1", Name: "Morning"},
			})

			if m.view != DetailView {
				t.Errorf("expected detail view, got %v", m.view)
			}
			if m.detail == nil || m.detail.ID != "pl1" {
				t.Errorf("expected detail set to pl1, got %v", m.detail)
			}
			if m.loading {
				t.Error("expected loading cleared")
			}
		})

		t.Run("drops a fetch whose target was replaced", func(t *testing.T) {
			m := newTestModel(t)
			m.detailID = "pl2"
			m.loading = true

			m.Update(playlistLoadedMsg{
				playlistID: "pl1",
				playlist:   &models.Playlist{ID: "pl1", Name: "Morning"},
			})

			if m.detail != nil {
				t.Errorf("expected stale fetch discarded, got detail %v", m.detail)
			}
			if m.view != PlaylistListView {
				t.Errorf("expected view unchanged, got %v", m.view)
			}
			if !m.loading {
				t.Error("expected loading untouched by a stale delivery")
			}
		})

		t.Run("renders not-found as its own state", func(t *testing.T) {
			m := newTestModel(t)
			m.detailID = "ghost"
			m.loading = true

			m.Update(playlistLoadedMsg{
				playlistID: "ghost",
				err:        fmt.Errorf("%w: ghost", shared.ErrPlaylistNotFound),
			})

			if !m.notFound {
				t.Error("expected notFound set")
			}
			if m.view != DetailView {
				t.Errorf("expected detail view, got %v", m.view)
			}
			if m.detail != nil {
				t.Errorf("expected no detail, got %v", m.detail)
			}
		})
	})

	t.Run("searchDoneMsg", func(t *testing.T) {
		t.Run("applies results for the active target and query", func(t *testing.T) {
			m := newTestModel(t)
			m.view = SearchView
			m.search.Open("pl1")
			m.search.SetQuery("daft punk")

			m.Update(searchDoneMsg{
				targetID: "pl1",
				query:    "daft punk",
				songs:    []models.Song{{ID: "s1", Title: "One More Time"}},
			})

			if len(m.search.Results()) != 1 {
				t.Errorf("expected 1 result, got %d", len(m.search.Results()))
			}
		})

		t.Run("discards results for a replaced target", func(t *testing.T) {
			m := newTestModel(t)
			m.view = SearchView
			m.search.Open("pl2")
			m.search.SetQuery("daft punk")

			m.Update(searchDoneMsg{
				targetID: "pl1",
				query:    "daft punk",
				songs:    []models.Song{{ID: "s1"}},
			})

			if m.search.Results() != nil {
				t.Errorf("expected results discarded, got %v", m.search.Results())
			}
		})

		t.Run("discards results for an abandoned dialog", func(t *testing.T) {
			m := newTestModel(t)
			m.view = DetailView
			m.search.Close()

			m.Update(searchDoneMsg{
				targetID: "pl1",
				query:    "daft punk",
				songs:    []models.Song{{ID: "s1"}},
			})

			if m.search.Results() != nil {
				t.Errorf("expected results discarded, got %v", m.search.Results())
			}
		})

		t.Run("discards results for a superseded query", func(t *testing.T) {
			m := newTestModel(t)
			m.view = SearchView
			m.search.Open("pl1")
			m.search.SetQuery("new query")

			m.Update(searchDoneMsg{
				targetID: "pl1",
				query:    "old query",
				songs:    []models.Song{{ID: "s1"}},
			})

			if m.search.Results() != nil {
				t.Errorf("expected results for the old query discarded, got %v", m.search.Results())
			}
		})

		t.Run("a successful search clears a prior error banner", func(t *testing.T) {
			m := newTestModel(t)
			m.view = SearchView
			m.search.Open("pl1")
			m.search.SetQuery("daft punk")

			m.Update(searchDoneMsg{
				targetID: "pl1",
				query:    "daft punk",
				songs:    []models.Song{},
				err:      shared.ErrSearchFailed,
			})
			if m.err == nil {
				t.Fatal("expected error recorded from failed search")
			}

			m.Update(searchDoneMsg{
				targetID: "pl1",
				query:    "daft punk",
				songs:    []models.Song{{ID: "s1"}},
			})
			if m.err != nil {
				t.Errorf("expected error cleared by successful search, got %v", m.err)
			}
		})
	})

	t.Run("songMutatedMsg", func(t *testing.T) {
		t.Run("successful add closes the dialog and discards the result set", func(t *testing.T) {
			m := newTestModel(t)
			m.detailID = "pl1"
			m.view = SearchView
			m.search.Open("pl1")
			m.search.SetResults([]models.Song{{ID: "s1"}})

			m.Update(songMutatedMsg{
				playlistID: "pl1",
				playlist: &models.Playlist{
					ID:    "pl1",
					Name:  "Morning",
					Songs: []models.Song{{ID: "s1", Title: "One More Time"}},
				},
			})

			if m.view != DetailView {
				t.Errorf("expected dialog closed into detail view, got %v", m.view)
			}
			if m.search.Active() {
				t.Error("expected search session closed")
			}
			if m.search.Results() != nil {
				t.Errorf("expected result set discarded, got %v", m.search.Results())
			}
			if m.detail == nil || len(m.detail.Songs) != 1 {
				t.Errorf("expected refetched playlist applied, got %v", m.detail)
			}
		})

		t.Run("failed add keeps the dialog open", func(t *testing.T) {
			m := newTestModel(t)
			m.detailID = "pl1"
			m.view = SearchView
			m.search.Open("pl1")

			m.Update(songMutatedMsg{
				playlistID: "pl1",
				err:        shared.ErrMutationFailed,
			})

			if m.view != SearchView {
				t.Errorf("expected dialog to stay open, got %v", m.view)
			}
			if !m.search.Active() {
				t.Error("expected search session still active")
			}
			if m.err == nil {
				t.Error("expected error recorded")
			}
		})

		t.Run("ignores a mutation result for another playlist", func(t *testing.T) {
			m := newTestModel(t)
			m.detailID = "pl2"
			m.loading = true

			m.Update(songMutatedMsg{
				playlistID: "pl1",
				playlist:   &models.Playlist{ID: "pl1", Name: "Morning"},
			})

			if m.detail != nil {
				t.Errorf("expected stale mutation result discarded, got %v", m.detail)
			}
			if !m.loading {
				t.Error("expected loading untouched by a stale delivery")
			}
		})
	})
}
