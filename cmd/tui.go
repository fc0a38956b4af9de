package main

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/plxdev/plx/internal/shared"
	"github.com/plxdev/plx/internal/store"
	"github.com/plxdev/plx/internal/ui"
	"github.com/urfave/cli/v3"
)

// TUI launches the interactive terminal UI for playlist management.
func (r *Runner) TUI(ctx context.Context, cmd *cli.Command) error {
	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/plx-tui.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	// The confirm-delete view handles the confirmation gate, so the TUI's
	// store is pre-confirmed.
	st := store.New(store.Opts{
		API:     r.playlists,
		Confirm: store.AlwaysConfirm,
		Logger:  fileLogger,
	})

	history, closeDB, err := r.openHistory()
	if err != nil {
		fileLogger.Warn("search history unavailable", "error", err)
		history = nil
	} else {
		defer closeDB()
	}

	model := ui.NewModel(ctx, st, r.catalog, history, fileLogger)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running TUI: %w", err)
	}

	return nil
}
