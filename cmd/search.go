package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"
)

// SearchRun runs a catalog search and prints the results.
//
// The query is forwarded to the catalog exactly as given, including the empty
// string; what an empty query means is the catalog's decision.
func (r *Runner) SearchRun(ctx context.Context, cmd *cli.Command) error {
	query := cmd.StringArg("query")
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	r.logger.Info("searching catalog", "query", query)

	songs, err := r.catalog.SearchSongs(ctx, query)
	if err != nil {
		return fmt.Errorf("catalog search failed: %w", err)
	}
	r.recordSearch(query, len(songs))

	if useJSON {
		return r.writeJSON(songs, pretty)
	}

	if len(songs) == 0 {
		r.writePlain("No results for %q\n", query)
		return nil
	}

	r.writePlain("Results for %q (%d):\n", query, len(songs))
	for i, song := range songs {
		r.writePlain("%3d. %s - %s [%s]  (%s)\n", i+1, song.ArtistName(), song.Title, song.AlbumTitle(), song.ID)
	}

	return nil
}

// SearchHistory prints recent catalog searches from the local database.
func (r *Runner) SearchHistory(ctx context.Context, cmd *cli.Command) error {
	limit := cmd.Int("limit")

	history, closeDB, err := r.openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	records, err := history.Recent(int(limit))
	if err != nil {
		return fmt.Errorf("failed to read search history: %w", err)
	}

	if len(records) == 0 {
		r.writePlain("No search history.\n")
		return nil
	}

	r.writePlain("Recent searches:\n")
	for _, rec := range records {
		r.writePlain("  %s  %-32q %d results\n", rec.CreatedAt.Format("2006-01-02 15:04"), rec.Query, rec.Results)
	}

	return nil
}

// SearchClear deletes all logged searches.
func (r *Runner) SearchClear(ctx context.Context, cmd *cli.Command) error {
	history, closeDB, err := r.openHistory()
	if err != nil {
		return err
	}
	defer closeDB()

	if err := history.Clear(); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}

	r.writePlain("✓ Search history cleared\n")
	return nil
}

// recordSearch logs a query to the history database. Logging is best effort
// and never fails the search itself.
func (r *Runner) recordSearch(query string, results int) {
	history, closeDB, err := r.openHistory()
	if err != nil {
		r.logger.Debug("search history unavailable", "error", err)
		return
	}
	defer closeDB()

	if err := history.Record(query, results); err != nil {
		r.logger.Warn("failed to record search", "error", err)
	}
}
