package services

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/time/rate"

	"crate/internal/shared"
)

func newTestQobuz(t *testing.T, handler http.Handler) *QobuzService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	service, err := NewQobuzService("test-app-id", "test-token")
	if err != nil {
		t.Fatalf("failed to create service: %v", err)
	}
	service.baseURL = server.URL
	return service
}

func newTestTidal(t *testing.T, handler http.Handler) *TidalService {
	t.Helper()

	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	// Constructed directly so no token endpoint is needed.
	return &TidalService{
		baseURL:     server.URL,
		countryCode: "US",
		httpClient:  http.DefaultClient,
		limiter:     rate.NewLimiter(rate.Inf, 1),
	}
}

func TestQobuzService(t *testing.T) {
	ctx := context.Background()

	t.Run("requires app id", func(t *testing.T) {
		if _, err := NewQobuzService("", ""); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("SearchTracks", func(t *testing.T) {
		service := newTestQobuz(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/track/search" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("X-App-Id") != "test-app-id" {
				t.Error("missing X-App-Id header")
			}
			if r.Header.Get("X-User-Auth-Token") != "test-token" {
				t.Error("missing X-User-Auth-Token header")
			}
			if r.URL.Query().Get("query") != "dancing with the damned" {
				t.Errorf("unexpected query %q", r.URL.Query().Get("query"))
			}
			if r.URL.Query().Get("limit") != "5" {
				t.Errorf("unexpected limit %q", r.URL.Query().Get("limit"))
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"tracks": {
					"total": 1,
					"items": [{
						"id": 12345,
						"title": "Dancing With The Damned",
						"version": "Remastered",
						"duration": 214,
						"isrc": "USABC2400001",
						"performer": {"id": 1, "name": "Killing Mood"},
						"album": {"id": "a1", "title": "First Light", "artist": {"id": 1, "name": "Killing Mood"}}
					}]
				}
			}`))
		}))

		tracks, err := service.SearchTracks(ctx, "dancing with the damned", 5)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}

		track := tracks[0]
		if track.ID != "12345" {
			t.Errorf("unexpected id %q", track.ID)
		}
		if track.Title != "Dancing With The Damned (Remastered)" {
			t.Errorf("version should be appended to the title, got %q", track.Title)
		}
		if track.Artist != "Killing Mood" || track.Album != "First Light" {
			t.Errorf("unexpected track %q by %q", track.Album, track.Artist)
		}
		if track.Duration != 214 || track.ISRC != "USABC2400001" {
			t.Errorf("unexpected duration %d isrc %q", track.Duration, track.ISRC)
		}
	})

	t.Run("Track falls back to album artist", func(t *testing.T) {
		service := newTestQobuz(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/track/get" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("track_id") != "777" {
				t.Errorf("unexpected track_id %q", r.URL.Query().Get("track_id"))
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"id": 777,
				"title": "Stay",
				"duration": 198,
				"album": {"id": "a2", "title": "Second Sight", "artist": {"id": 9, "name": "Alpha"}}
			}`))
		}))

		track, err := service.Track(ctx, "777")
		if err != nil {
			t.Fatalf("track lookup failed: %v", err)
		}

		if track.Artist != "Alpha" {
			t.Errorf("expected album artist fallback, got %q", track.Artist)
		}
	})

	t.Run("non-2xx is an API error", func(t *testing.T) {
		service := newTestQobuz(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusUnauthorized)
		}))

		if _, err := service.SearchTracks(ctx, "anything", 5); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}

func TestTidalService(t *testing.T) {
	ctx := context.Background()

	t.Run("requires credentials", func(t *testing.T) {
		if _, err := NewTidalService(ctx, "", "secret"); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
		if _, err := NewTidalService(ctx, "id", ""); !errors.Is(err, shared.ErrMissingCredentials) {
			t.Errorf("expected ErrMissingCredentials, got %v", err)
		}
	})

	t.Run("SearchTracks", func(t *testing.T) {
		service := newTestTidal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/search/tracks" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.URL.Query().Get("countryCode") != "US" {
				t.Error("countryCode should always be sent")
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{
				"totalNumberOfItems": 1,
				"items": [{
					"id": 555,
					"title": "Stay",
					"duration": 198,
					"isrc": "USXYZ2400002",
					"artist": {"id": 2, "name": "Alpha"},
					"album": {"id": 3, "title": "Second Sight"}
				}]
			}`))
		}))

		tracks, err := service.SearchTracks(ctx, "stay", 0)
		if err != nil {
			t.Fatalf("search failed: %v", err)
		}

		if len(tracks) != 1 {
			t.Fatalf("expected 1 track, got %d", len(tracks))
		}
		if tracks[0].ID != "555" || tracks[0].Artist != "Alpha" || tracks[0].ISRC != "USXYZ2400002" {
			t.Errorf("unexpected track %+v", tracks[0])
		}
	})

	t.Run("Track", func(t *testing.T) {
		service := newTestTidal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/tracks/555" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}

			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"id": 555, "title": "Stay", "duration": 198, "artist": {"id": 2, "name": "Alpha"}, "album": {"id": 3, "title": "Second Sight"}}`))
		}))

		track, err := service.Track(ctx, "555")
		if err != nil {
			t.Fatalf("track lookup failed: %v", err)
		}
		if track.Title != "Stay" || track.Artist != "Alpha" {
			t.Errorf("unexpected track %+v", track)
		}
	})

	t.Run("non-2xx is an API error", func(t *testing.T) {
		service := newTestTidal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusTooManyRequests)
		}))

		if _, err := service.Track(ctx, "1"); !errors.Is(err, shared.ErrAPIRequest) {
			t.Errorf("expected ErrAPIRequest, got %v", err)
		}
	})
}
