// package formatter exports playlist contents to CSV, Markdown, and plain text
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"

	"github.com/plxdev/plx/internal/models"
)

// ExportToCSV converts a playlist to CSV with columns: ID, Title, Artist, Album, Added, Stream
func ExportToCSV(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Added", "Stream"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, song := range playlist.Songs {
		record := []string{
			song.ID,
			song.Title,
			song.Artist.Name,
			song.Album.Title,
			song.AddedDate(),
			song.StreamURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a playlist to a Markdown table.
func ExportToMarkdown(playlist *models.Playlist) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", playlist.Name))
	buf.WriteString(fmt.Sprintf("%d songs\n\n", len(playlist.Songs)))

	if len(playlist.Songs) == 0 {
		return buf.Bytes(), nil
	}

	buf.WriteString("| # | Title | Artist | Album | Added |\n")
	buf.WriteString("|---|-------|--------|-------|-------|\n")

	for i, song := range playlist.Songs {
		buf.WriteString(fmt.Sprintf("| %d | %s | %s | %s | %s |\n",
			i+1,
			song.Title,
			song.ArtistName(),
			song.AlbumTitle(),
			song.AddedDate(),
		))
	}

	return buf.Bytes(), nil
}

// ExportToText converts a playlist to a human-readable plain text listing.
func ExportToText(playlist *models.Playlist) []byte {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s (%d songs)\n", playlist.Name, len(playlist.Songs)))

	for i, song := range playlist.Songs {
		buf.WriteString(fmt.Sprintf("%3d. %s - %s", i+1, song.ArtistName(), song.Title))
		if song.Album.Title != "" {
			buf.WriteString(fmt.Sprintf(" [%s]", song.Album.Title))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes()
}
