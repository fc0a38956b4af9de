package repositories

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/plxdev/plx/internal/shared"
)

// SearchRecord is one logged catalog query. Result sets are ephemeral and
// never stored; only the query string and when it ran.
type SearchRecord struct {
	ID        string
	Query     string
	Results   int
	CreatedAt time.Time
}

// HistoryRepository logs catalog searches in SQLite.
type HistoryRepository struct {
	db *sql.DB
}

// NewHistoryRepository creates a HistoryRepository on the given connection.
func NewHistoryRepository(db *sql.DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// Init creates the search_history table when missing.
func (r *HistoryRepository) Init() error {
	query := `
		CREATE TABLE IF NOT EXISTS search_history (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			results INTEGER NOT NULL DEFAULT 0,
			created_at TIMESTAMP NOT NULL
		)
	`

	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to create search_history table: %w", err)
	}

	return nil
}

// Record logs a query and how many results it returned.
func (r *HistoryRepository) Record(query string, results int) error {
	insert := `
		INSERT INTO search_history (id, query, results, created_at)
		VALUES (?, ?, ?, ?)
	`

	if _, err := r.db.Exec(insert, shared.GenerateID(), query, results, time.Now().UTC()); err != nil {
		return fmt.Errorf("failed to record search: %w", err)
	}

	return nil
}

// Recent returns the latest n searches, newest first.
func (r *HistoryRepository) Recent(n int) ([]SearchRecord, error) {
	if n <= 0 {
		n = 10
	}

	query := `
		SELECT id, query, results, created_at
		FROM search_history
		ORDER BY created_at DESC
		LIMIT ?
	`

	rows, err := r.db.Query(query, n)
	if err != nil {
		return nil, fmt.Errorf("failed to query search history: %w", err)
	}
	defer rows.Close()

	var records []SearchRecord
	for rows.Next() {
		var rec SearchRecord
		if err := rows.Scan(&rec.ID, &rec.Query, &rec.Results, &rec.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan search record: %w", err)
		}
		records = append(records, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return records, nil
}

// Clear deletes all logged searches.
func (r *HistoryRepository) Clear() error {
	if _, err := r.db.Exec("DELETE FROM search_history"); err != nil {
		return fmt.Errorf("failed to clear search history: %w", err)
	}
	return nil
}
