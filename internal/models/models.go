package models

import (
	"fmt"
	"time"
)

// Artist identifies the performing artist of a [Song].
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Album identifies the album a [Song] belongs to. CoverImage is absent in
// early schema versions.
type Album struct {
	ID         string `json:"id"`
	Title      string `json:"title"`
	CoverImage string `json:"coverImage,omitempty"`
}

// Song is the canonical, version-independent song record used internally
// after ingesting any external response shape.
//
// StreamURL and AddedAt are optional; records persisted under older schema
// versions simply lack them.
type Song struct {
	ID        string     `json:"id"`
	Title     string     `json:"title"`
	Artist    Artist     `json:"artist"`
	Album     Album      `json:"album"`
	StreamURL string     `json:"streamUrl,omitempty"`
	AddedAt   *time.Time `json:"addedAt,omitempty"`
}

// ArtistName returns the artist name with a view-layer placeholder for
// records that predate the nested artist shape.
func (s Song) ArtistName() string {
	if s.Artist.Name == "" {
		return "Unknown Artist"
	}
	return s.Artist.Name
}

// AlbumTitle returns the album title with a view-layer placeholder for
// records that predate the nested album shape.
func (s Song) AlbumTitle() string {
	if s.Album.Title == "" {
		return "Unknown Album"
	}
	return s.Album.Title
}

// AddedDate formats the add timestamp for display, or an empty string when
// the record predates add timestamps.
func (s Song) AddedDate() string {
	if s.AddedAt == nil {
		return ""
	}
	return s.AddedAt.Format("02/01/2006")
}

// Playlist is a named, ordered collection of songs. The ID is assigned by the
// persistence service and immutable; insertion order is display order.
type Playlist struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Songs []Song `json:"songs"`
}

// Validate checks playlist fields the client is responsible for. The service
// owns everything else.
func (p Playlist) Validate() error {
	if p.Name == "" {
		return fmt.Errorf("playlist name must not be empty")
	}
	return nil
}

// ContainsSong reports whether a song with the given id is already present.
//
// Views use this for display only; the persistence service remains the
// de-duplication authority for add-song.
func (p Playlist) ContainsSong(songID string) bool {
	for _, s := range p.Songs {
		if s.ID == songID {
			return true
		}
	}
	return false
}
