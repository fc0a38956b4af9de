package main

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/plxdev/plx/internal/models"
	"github.com/plxdev/plx/internal/shared"
	mocks "github.com/plxdev/plx/internal/testing"
	"github.com/urfave/cli/v3"
)

func runCommand(t *testing.T, runner *Runner, args ...string) error {
	t.Helper()

	app := &cli.Command{
		Name:     "plx",
		Commands: runner.register(),
	}

	return app.Run(context.Background(), append([]string{"plx"}, args...))
}

func TestRunner(t *testing.T) {
	t.Run("NewRunner", func(t *testing.T) {
		t.Run("with all dependencies provided", func(t *testing.T) {
			config := shared.DefaultConfig()
			logger := shared.NewLogger(nil)
			output := &bytes.Buffer{}
			httpClient := &http.Client{}
			catalog := &mocks.MockCatalog{}
			playlists := &mocks.MockPlaylistAPI{}

			runner := NewRunner(RunnerOpts{
				Config:     config,
				Logger:     logger,
				Output:     output,
				HTTPClient: httpClient,
				Catalog:    catalog,
				Playlists:  playlists,
			})

			if runner.config != config {
				t.Error("expected config to be set")
			}
			if runner.logger != logger {
				t.Error("expected logger to be set")
			}
			if runner.output != output {
				t.Error("expected output to be set")
			}
			if runner.catalog != catalog {
				t.Error("expected catalog to be set")
			}
			if runner.playlists != playlists {
				t.Error("expected playlists to be set")
			}
			if runner.store == nil {
				t.Error("expected store to be constructed")
			}
		})

		t.Run("with nil dependencies uses defaults", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{})

			if runner.config == nil {
				t.Error("expected default config")
			}
			if runner.logger == nil {
				t.Error("expected default logger")
			}
			if runner.output != os.Stdout {
				t.Error("expected output to default to os.Stdout")
			}
			if runner.httpClient != http.DefaultClient {
				t.Error("expected httpClient to default to http.DefaultClient")
			}
			if runner.catalog == nil || runner.playlists == nil {
				t.Error("expected services constructed from config")
			}
		})
	})

	t.Run("writeJSON", func(t *testing.T) {
		t.Run("writes compact JSON", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output})

			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if output.String() != `{"key":"value"}`+"\n" {
				t.Errorf("unexpected output: %q", output.String())
			}
		})

		t.Run("handles write failure", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &mocks.FWriter{}})
			if err := runner.writeJSON(map[string]string{"key": "value"}, false); err == nil {
				t.Fatal("expected error from failing writer")
			}
		})
	})

	t.Run("confirm", func(t *testing.T) {
		t.Run("accepts y", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: &bytes.Buffer{},
				Input:  strings.NewReader("y\n"),
			})
			if !runner.confirm("Delete?") {
				t.Error("expected y to confirm")
			}
		})

		t.Run("rejects anything else", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: &bytes.Buffer{},
				Input:  strings.NewReader("nope\n"),
			})
			if runner.confirm("Delete?") {
				t.Error("expected non-yes answer to decline")
			}
		})

		t.Run("assumeYes short-circuits the prompt", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{
				Output: &bytes.Buffer{},
				Input:  strings.NewReader(""),
			})
			runner.assumeYes = true
			if !runner.confirm("Delete?") {
				t.Error("expected assumeYes to confirm without input")
			}
		})
	})

	t.Run("register", func(t *testing.T) {
		runner := NewRunner(RunnerOpts{})
		commands := runner.register()

		if len(commands) == 0 {
			t.Error("expected at least one command to be registered")
		}
		for i, cmd := range commands {
			if cmd == nil {
				t.Errorf("command at index %d is nil", i)
			}
		}
	})

	t.Run("PlaylistList", func(t *testing.T) {
		t.Run("prints playlists", func(t *testing.T) {
			output := &bytes.Buffer{}
			playlists := &mocks.MockPlaylistAPI{
				ListFunc: func(ctx context.Context) ([]models.Playlist, error) {
					return []models.Playlist{
						{ID: "pl1", Name: "Morning", Songs: []models.Song{{ID: "s1"}}},
					}, nil
				},
			}
			runner := NewRunner(RunnerOpts{Output: output, Playlists: playlists})

			if err := runCommand(t, runner, "playlist", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Morning") {
				t.Errorf("expected playlist name in output, got %q", output.String())
			}
		})

		t.Run("reports empty list", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Playlists: &mocks.MockPlaylistAPI{}})

			if err := runCommand(t, runner, "playlist", "list"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "No playlists found") {
				t.Errorf("expected empty message, got %q", output.String())
			}
		})
	})

	t.Run("PlaylistShow", func(t *testing.T) {
		t.Run("renders not-found distinctly", func(t *testing.T) {
			output := &bytes.Buffer{}
			playlists := &mocks.MockPlaylistAPI{
				GetFunc: func(ctx context.Context, id string) (*models.Playlist, error) {
					return nil, shared.ErrPlaylistNotFound
				},
			}
			runner := NewRunner(RunnerOpts{Output: output, Playlists: playlists})

			if err := runCommand(t, runner, "playlist", "show", "ghost"); err != nil {
				t.Fatalf("expected not-found to be rendered, not returned, got %v", err)
			}
			if !strings.Contains(output.String(), "Playlist not found") {
				t.Errorf("expected not-found message, got %q", output.String())
			}
		})
	})

	t.Run("PlaylistCreate", func(t *testing.T) {
		t.Run("creates and refreshes", func(t *testing.T) {
			output := &bytes.Buffer{}
			playlists := &mocks.MockPlaylistAPI{}
			runner := NewRunner(RunnerOpts{Output: output, Playlists: playlists})

			if err := runCommand(t, runner, "playlist", "create", "New Mix"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlists.CreateCalls != 1 || playlists.ListCalls != 1 {
				t.Errorf("expected create then refresh, got create=%d list=%d", playlists.CreateCalls, playlists.ListCalls)
			}
		})

		t.Run("rejects a missing name", func(t *testing.T) {
			playlists := &mocks.MockPlaylistAPI{}
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Playlists: playlists})

			err := runCommand(t, runner, "playlist", "create")
			if !errors.Is(err, shared.ErrMissingArgument) {
				t.Fatalf("expected ErrMissingArgument, got %v", err)
			}
			if playlists.CreateCalls != 0 {
				t.Errorf("expected no create call, got %d", playlists.CreateCalls)
			}
		})
	})

	t.Run("PlaylistDelete", func(t *testing.T) {
		t.Run("declined prompt aborts without a network call", func(t *testing.T) {
			output := &bytes.Buffer{}
			playlists := &mocks.MockPlaylistAPI{}
			runner := NewRunner(RunnerOpts{
				Output:    output,
				Input:     strings.NewReader("n\n"),
				Playlists: playlists,
			})

			if err := runCommand(t, runner, "playlist", "delete", "pl1"); err != nil {
				t.Fatalf("expected decline to be rendered, not returned, got %v", err)
			}
			if playlists.DeleteCalls != 0 {
				t.Errorf("expected no delete call, got %d", playlists.DeleteCalls)
			}
			if !strings.Contains(output.String(), "Aborted") {
				t.Errorf("expected abort message, got %q", output.String())
			}
		})

		t.Run("--yes skips the prompt", func(t *testing.T) {
			playlists := &mocks.MockPlaylistAPI{}
			runner := NewRunner(RunnerOpts{
				Output:    &bytes.Buffer{},
				Input:     strings.NewReader(""),
				Playlists: playlists,
			})

			if err := runCommand(t, runner, "playlist", "delete", "--yes", "pl1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if playlists.DeleteCalls != 1 {
				t.Errorf("expected 1 delete call, got %d", playlists.DeleteCalls)
			}
		})
	})

	t.Run("PlaylistAdd", func(t *testing.T) {
		t.Run("adds the picked search result", func(t *testing.T) {
			output := &bytes.Buffer{}
			catalog := &mocks.MockCatalog{
				SearchFunc: func(ctx context.Context, query string) ([]models.Song, error) {
					return []models.Song{
						{ID: "s1", Title: "First"},
						{ID: "s2", Title: "Second"},
					}, nil
				},
			}
			var addedID string
			playlists := &mocks.MockPlaylistAPI{
				AddFunc: func(ctx context.Context, id string, song models.Song) error {
					addedID = song.ID
					return nil
				},
			}
			runner := NewRunner(RunnerOpts{Output: output, Catalog: catalog, Playlists: playlists})
			runner.config.Database.Path = ":memory:"

			if err := runCommand(t, runner, "playlist", "add", "--query", "tune", "--pick", "2", "pl1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if addedID != "s2" {
				t.Errorf("expected second result added, got %s", addedID)
			}
			if playlists.GetCalls != 1 {
				t.Errorf("expected refetch after add, got %d get calls", playlists.GetCalls)
			}
		})

		t.Run("out-of-range pick fails before any mutation", func(t *testing.T) {
			catalog := &mocks.MockCatalog{
				SearchFunc: func(ctx context.Context, query string) ([]models.Song, error) {
					return []models.Song{{ID: "s1"}}, nil
				},
			}
			playlists := &mocks.MockPlaylistAPI{}
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Catalog: catalog, Playlists: playlists})
			runner.config.Database.Path = ":memory:"

			err := runCommand(t, runner, "playlist", "add", "--query", "tune", "--pick", "5", "pl1")
			if !errors.Is(err, shared.ErrInvalidInput) {
				t.Fatalf("expected ErrInvalidInput, got %v", err)
			}
			if playlists.AddCalls != 0 {
				t.Errorf("expected no add call, got %d", playlists.AddCalls)
			}
		})
	})

	t.Run("PlaylistExport", func(t *testing.T) {
		playlists := func() *mocks.MockPlaylistAPI {
			return &mocks.MockPlaylistAPI{
				GetFunc: func(ctx context.Context, id string) (*models.Playlist, error) {
					return &models.Playlist{
						ID:   id,
						Name: "Morning",
						Songs: []models.Song{
							{ID: "s1", Title: "One More Time", Artist: models.Artist{Name: "Daft Punk"}},
						},
					}, nil
				},
			}
		}

		t.Run("writes the export to the output stream", func(t *testing.T) {
			output := &bytes.Buffer{}
			runner := NewRunner(RunnerOpts{Output: output, Playlists: playlists()})

			if err := runCommand(t, runner, "playlist", "export", "--format", "text", "pl1"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "Morning") {
				t.Errorf("expected playlist name in export, got %q", output.String())
			}
		})

		t.Run("surfaces a failing output stream", func(t *testing.T) {
			runner := NewRunner(RunnerOpts{Output: &mocks.FWriter{}, Playlists: playlists()})

			err := runCommand(t, runner, "playlist", "export", "--format", "text", "pl1")
			if err == nil {
				t.Fatal("expected error from failing writer")
			}
			if !strings.Contains(err.Error(), "failed to write output") {
				t.Errorf("expected write failure surfaced, got %v", err)
			}
		})
	})

	t.Run("SearchRun", func(t *testing.T) {
		t.Run("prints results", func(t *testing.T) {
			output := &bytes.Buffer{}
			catalog := &mocks.MockCatalog{
				SearchFunc: func(ctx context.Context, query string) ([]models.Song, error) {
					return []models.Song{{ID: "s1", Title: "One More Time", Artist: models.Artist{Name: "Daft Punk"}}}, nil
				},
			}
			runner := NewRunner(RunnerOpts{Output: output, Catalog: catalog})
			runner.config.Database.Path = ":memory:"

			if err := runCommand(t, runner, "search", "run", "daft punk"); err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if !strings.Contains(output.String(), "One More Time") {
				t.Errorf("expected result in output, got %q", output.String())
			}
		})

		t.Run("surfaces catalog failures", func(t *testing.T) {
			catalog := &mocks.MockCatalog{
				SearchFunc: func(ctx context.Context, query string) ([]models.Song, error) {
					return []models.Song{}, shared.ErrSearchFailed
				},
			}
			runner := NewRunner(RunnerOpts{Output: &bytes.Buffer{}, Catalog: catalog})

			if err := runCommand(t, runner, "search", "run", "query"); !errors.Is(err, shared.ErrSearchFailed) {
				t.Errorf("expected ErrSearchFailed, got %v", err)
			}
		})
	})
}
