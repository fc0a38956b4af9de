package services

// Wire types for the catalog and persistence services. The song record has
// shipped in three shapes over the service's lifetime: flat strings for
// artist/album, nested artist/album objects, and nested objects plus
// img/steam/create_dt. These types accept all of them and fold into the
// canonical [models.Song].

import (
	"encoding/json"
	"time"

	"github.com/plxdev/plx/internal/models"
)

// wireID accepts both string and numeric identifiers on the wire.
type wireID string

func (w *wireID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*w = wireID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*w = wireID(n.String())
		return nil
	}

	// Unrecognized id shape degrades to empty, never fails the record.
	*w = ""
	return nil
}

// wireTime accepts RFC 3339 timestamps, bare dates, and unix seconds.
type wireTime struct {
	t *time.Time
}

func (w *wireTime) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02"} {
			if parsed, err := time.Parse(layout, s); err == nil {
				w.t = &parsed
				return nil
			}
		}
		return nil
	}

	var unix int64
	if err := json.Unmarshal(data, &unix); err == nil && unix > 0 {
		parsed := time.Unix(unix, 0).UTC()
		w.t = &parsed
	}

	return nil
}

type wireArtist struct {
	ID   wireID `json:"id"`
	Name string `json:"name"`
}

type wireAlbum struct {
	ID          wireID `json:"id"`
	Title       string `json:"title"`
	CoverMedium string `json:"cover_medium"`
	CoverImage  string `json:"coverImage"`
}

// wireSong is the union of every song shape the services have produced.
type wireSong struct {
	ID        wireID          `json:"id"`
	Title     string          `json:"title"`
	Img       string          `json:"img"`
	Link      string          `json:"link"`
	Steam     string          `json:"steam"`
	StreamURL string          `json:"streamUrl"`
	CreateDT  wireTime        `json:"create_dt"`
	AddedAt   wireTime        `json:"addedAt"`
	Artist    json.RawMessage `json:"artist"`
	Album     json.RawMessage `json:"album"`
}

// canonical folds a wire song into the canonical record. Missing optional
// fields stay absent; placeholder text is a view concern.
func (w wireSong) canonical() models.Song {
	song := models.Song{
		ID:    string(w.ID),
		Title: w.Title,
	}

	song.Artist = decodeArtist(w.Artist)
	song.Album = decodeAlbum(w.Album)

	if song.Album.CoverImage == "" {
		song.Album.CoverImage = w.Img
	}

	switch {
	case w.StreamURL != "":
		song.StreamURL = w.StreamURL
	case w.Steam != "":
		song.StreamURL = w.Steam
	case w.Link != "":
		song.StreamURL = w.Link
	}

	if w.AddedAt.t != nil {
		song.AddedAt = w.AddedAt.t
	} else if w.CreateDT.t != nil {
		song.AddedAt = w.CreateDT.t
	}

	return song
}

// decodeArtist handles both the nested artist object and the flat string
// variant of the earliest schema.
func decodeArtist(raw json.RawMessage) models.Artist {
	if len(raw) == 0 {
		return models.Artist{}
	}

	var obj wireArtist
	if err := json.Unmarshal(raw, &obj); err == nil {
		return models.Artist{ID: string(obj.ID), Name: obj.Name}
	}

	var name string
	if err := json.Unmarshal(raw, &name); err == nil {
		return models.Artist{Name: name}
	}

	return models.Artist{}
}

func decodeAlbum(raw json.RawMessage) models.Album {
	if len(raw) == 0 {
		return models.Album{}
	}

	var obj wireAlbum
	if err := json.Unmarshal(raw, &obj); err == nil {
		album := models.Album{ID: string(obj.ID), Title: obj.Title, CoverImage: obj.CoverImage}
		if album.CoverImage == "" {
			album.CoverImage = obj.CoverMedium
		}
		return album
	}

	var title string
	if err := json.Unmarshal(raw, &title); err == nil {
		return models.Album{Title: title}
	}

	return models.Album{}
}

// wirePlaylist accepts the persistence service's playlist document, which
// carries its identifier as either "_id" or "id" depending on version.
type wirePlaylist struct {
	MongoID wireID     `json:"_id"`
	ID      wireID     `json:"id"`
	Name    string     `json:"name"`
	Songs   []wireSong `json:"songs"`
}

func (w wirePlaylist) canonical() models.Playlist {
	id := string(w.MongoID)
	if id == "" {
		id = string(w.ID)
	}

	songs := make([]models.Song, len(w.Songs))
	for i, ws := range w.Songs {
		songs[i] = ws.canonical()
	}

	return models.Playlist{ID: id, Name: w.Name, Songs: songs}
}

// addSongPayload is the legacy add-song wire shape the persistence service
// expects: cover and stream link flattened, add timestamp as create_dt.
type addSongPayload struct {
	ID     string `json:"id"`
	Title  string `json:"title"`
	Img    string `json:"img,omitempty"`
	Artist struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"artist"`
	Album struct {
		ID    string `json:"id"`
		Title string `json:"title"`
	} `json:"album"`
	Steam    string `json:"steam,omitempty"`
	CreateDT string `json:"create_dt,omitempty"`
}

func encodeAddSong(song models.Song) addSongPayload {
	payload := addSongPayload{
		ID:    song.ID,
		Title: song.Title,
		Img:   song.Album.CoverImage,
		Steam: song.StreamURL,
	}

	payload.Artist.ID = song.Artist.ID
	payload.Artist.Name = song.Artist.Name
	payload.Album.ID = song.Album.ID
	payload.Album.Title = song.Album.Title

	if song.AddedAt != nil {
		payload.CreateDT = song.AddedAt.UTC().Format(time.RFC3339)
	}

	return payload
}
