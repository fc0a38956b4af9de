package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/plxdev/plx/internal/shared"
	mocks "github.com/plxdev/plx/internal/testing"
)

func TestCatalogService(t *testing.T) {
	t.Run("NewCatalogService", func(t *testing.T) {
		t.Run("creates service with default URL", func(t *testing.T) {
			if svc := NewCatalogService("", nil, 0, 0); svc == nil {
				t.Fatal("expected service to be created")
			} else if svc.baseURL != defaultCatalogBaseURL {
				t.Errorf("expected baseURL to be %s, got %s", defaultCatalogBaseURL, svc.baseURL)
			}
		})

		t.Run("creates service with custom URL", func(t *testing.T) {
			customURL := "http://localhost:9000"
			if svc := NewCatalogService(customURL, nil, 5, 2); svc.baseURL != customURL {
				t.Errorf("expected baseURL to be %s, got %s", customURL, svc.baseURL)
			}
		})
	})

	t.Run("SearchSongs", func(t *testing.T) {
		t.Run("sends query and decodes bare array", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if r.URL.Path != "/songs/search" {
					t.Errorf("expected path /songs/search, got %s", r.URL.Path)
				}
				if r.Method != http.MethodGet {
					t.Errorf("expected GET method, got %s", r.Method)
				}
				if q := r.URL.Query().Get("q"); q != "daft punk" {
					t.Errorf("expected query 'daft punk', got %q", q)
				}

				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`[
					{"id": 101, "title": "One More Time", "artist": {"id": "a1", "name": "Daft Punk"}, "album": {"id": "al1", "title": "Discovery", "cover_medium": "http://img/discovery.jpg"}, "link": "http://stream/101"}
				]`))
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 0, 0)
			songs, err := svc.SearchSongs(context.Background(), "daft punk")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(songs) != 1 {
				t.Fatalf("expected 1 song, got %d", len(songs))
			}
			if songs[0].ID != "101" {
				t.Errorf("expected numeric id folded to string 101, got %s", songs[0].ID)
			}
			if songs[0].Artist.Name != "Daft Punk" {
				t.Errorf("expected artist Daft Punk, got %s", songs[0].Artist.Name)
			}
			if songs[0].Album.CoverImage != "http://img/discovery.jpg" {
				t.Errorf("expected cover_medium mapped to cover image, got %s", songs[0].Album.CoverImage)
			}
			if songs[0].StreamURL != "http://stream/101" {
				t.Errorf("expected link mapped to stream URL, got %s", songs[0].StreamURL)
			}
		})

		t.Run("decodes data envelope to the same result", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(`{"data": [{"id": "s1", "title": "Around the World", "artist": "Daft Punk", "album": "Homework"}]}`))
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 0, 0)
			songs, err := svc.SearchSongs(context.Background(), "around")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}

			if len(songs) != 1 {
				t.Fatalf("expected 1 song, got %d", len(songs))
			}
			if songs[0].ID != "s1" {
				t.Errorf("expected id s1, got %s", songs[0].ID)
			}
			if songs[0].Artist.Name != "Daft Punk" {
				t.Errorf("expected flat artist string decoded, got %q", songs[0].Artist.Name)
			}
			if songs[0].Album.Title != "Homework" {
				t.Errorf("expected flat album string decoded, got %q", songs[0].Album.Title)
			}
		})

		t.Run("forwards empty query as-is", func(t *testing.T) {
			var gotRawQuery string
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotRawQuery = r.URL.RawQuery
				w.Write([]byte(`[]`))
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 0, 0)
			songs, err := svc.SearchSongs(context.Background(), "")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if gotRawQuery != "q=" {
				t.Errorf("expected raw query 'q=', got %q", gotRawQuery)
			}
			if songs == nil {
				t.Error("expected non-nil empty slice")
			}
		})

		t.Run("returns empty slice and error on server failure", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(http.StatusInternalServerError)
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 0, 0)
			songs, err := svc.SearchSongs(context.Background(), "query")
			if err == nil {
				t.Fatal("expected error for 500 response")
			}
			if !errors.Is(err, shared.ErrSearchFailed) {
				t.Errorf("expected ErrSearchFailed, got %v", err)
			}
			if songs == nil || len(songs) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", songs)
			}
		})

		t.Run("folds both envelopes to an identical sequence", func(t *testing.T) {
			song := `{"id": 101, "title": "One More Time", "artist": {"id": "a1", "name": "Daft Punk"}, "album": {"id": "al1", "title": "Discovery", "cover_medium": "http://img/discovery.jpg"}, "link": "http://stream/101"}`

			serveBody := func(body string) *httptest.Server {
				return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
					w.Header().Set("Content-Type", "application/json")
					w.Write([]byte(body))
				}))
			}

			bareServer := serveBody(`[` + song + `]`)
			defer bareServer.Close()
			envelopeServer := serveBody(`{"data": [` + song + `]}`)
			defer envelopeServer.Close()

			bareSongs, err := NewCatalogService(bareServer.URL, nil, 0, 0).SearchSongs(context.Background(), "one more time")
			if err != nil {
				t.Fatalf("expected no error from bare array, got %v", err)
			}
			envelopeSongs, err := NewCatalogService(envelopeServer.URL, nil, 0, 0).SearchSongs(context.Background(), "one more time")
			if err != nil {
				t.Fatalf("expected no error from data envelope, got %v", err)
			}

			if len(bareSongs) != 1 {
				t.Fatalf("expected 1 song from bare array, got %d", len(bareSongs))
			}
			if !reflect.DeepEqual(bareSongs, envelopeSongs) {
				t.Errorf("expected both envelopes to decode identically:\nbare:     %+v\nenvelope: %+v", bareSongs, envelopeSongs)
			}
		})

		t.Run("returns empty slice and error on transport failure", func(t *testing.T) {
			client := &http.Client{Transport: mocks.NewMockRoundTripper(nil, errors.New("connection refused"))}
			svc := NewCatalogService("http://catalog.invalid", client, 0, 0)

			songs, err := svc.SearchSongs(context.Background(), "query")
			if err == nil {
				t.Fatal("expected error for unreachable catalog")
			}
			if !errors.Is(err, shared.ErrSearchFailed) {
				t.Errorf("expected ErrSearchFailed, got %v", err)
			}
			if len(songs) != 0 {
				t.Errorf("expected no songs, got %d", len(songs))
			}
		})

		t.Run("returns empty slice and error when the body cannot be read", func(t *testing.T) {
			resp := &http.Response{StatusCode: http.StatusOK, Body: &mocks.FCloser{}}
			client := &http.Client{Transport: mocks.NewMockRoundTripper(resp, nil)}
			svc := NewCatalogService("http://catalog.invalid", client, 0, 0)

			songs, err := svc.SearchSongs(context.Background(), "query")
			if err == nil {
				t.Fatal("expected error for unreadable body")
			}
			if !errors.Is(err, shared.ErrSearchFailed) {
				t.Errorf("expected ErrSearchFailed, got %v", err)
			}
			if songs == nil || len(songs) != 0 {
				t.Errorf("expected empty non-nil slice, got %v", songs)
			}
		})

		t.Run("unrecognized shape yields empty result without error", func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(`{"message": "maintenance"}`))
			}))
			defer server.Close()

			svc := NewCatalogService(server.URL, nil, 0, 0)
			songs, err := svc.SearchSongs(context.Background(), "query")
			if err != nil {
				t.Fatalf("expected no error, got %v", err)
			}
			if len(songs) != 0 {
				t.Errorf("expected no songs, got %d", len(songs))
			}
		})

		t.Run("respects context cancellation while throttled", func(t *testing.T) {
			svc := NewCatalogService("http://localhost:3001", nil, 0.001, 1)
			// Drain the single burst token so the next call must wait.
			svc.limiter.Allow()

			ctx, cancel := context.WithCancel(context.Background())
			cancel()

			if _, err := svc.SearchSongs(ctx, "query"); err == nil {
				t.Fatal("expected error from canceled context")
			}
		})
	})
}
