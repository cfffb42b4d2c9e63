// Qobuz API implementation of [Provider]
//
// Request/response shapes based on the documented api.json/0.2 endpoints.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/time/rate"

	"crate/internal/shared"
)

const qobuzBaseURL = "https://www.qobuz.com/api.json/0.2"

// QobuzTrack represents a Qobuz catalog track.
type QobuzTrack struct {
	ID        int64          `json:"id"`
	Title     string         `json:"title"`
	Version   string         `json:"version"`
	Duration  int            `json:"duration"`
	ISRC      string         `json:"isrc"`
	Performer QobuzPerformer `json:"performer"`
	Album     QobuzAlbum     `json:"album"`
}

// QobuzPerformer represents the primary performing artist.
type QobuzPerformer struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// QobuzAlbum represents a Qobuz album.
type QobuzAlbum struct {
	ID     string         `json:"id"`
	Title  string         `json:"title"`
	Artist QobuzPerformer `json:"artist"`
}

type qobuzSearchResponse struct {
	Tracks struct {
		Total int          `json:"total"`
		Items []QobuzTrack `json:"items"`
	} `json:"tracks"`
}

// QobuzService implements the Provider interface against the Qobuz catalog
// API using app-id and user-token header authentication.
type QobuzService struct {
	appID      string
	userToken  string
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// NewQobuzService creates a Qobuz provider with the given credentials.
func NewQobuzService(appID, userToken string) (*QobuzService, error) {
	if appID == "" {
		return nil, fmt.Errorf("%w: qobuz app_id", shared.ErrMissingCredentials)
	}
	return &QobuzService{
		appID:      appID,
		userToken:  userToken,
		baseURL:    qobuzBaseURL,
		httpClient: http.DefaultClient,
		limiter:    rate.NewLimiter(rate.Limit(5), 1),
	}, nil
}

func (s *QobuzService) Name() string {
	return "Qobuz"
}

// doRequest performs a paced, authenticated GET against the Qobuz API.
func (s *QobuzService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	apiURL := s.baseURL + endpoint + "?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("X-App-Id", s.appID)
	if s.userToken != "" {
		req.Header.Set("X-User-Auth-Token", s.userToken)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: qobuz status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchTracks searches the Qobuz catalog.
func (s *QobuzService) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	var response qobuzSearchResponse
	if err := s.doRequest(ctx, "/track/search", params, &response); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(response.Tracks.Items))
	for _, item := range response.Tracks.Items {
		tracks = append(tracks, qobuzToTrack(item))
	}
	return tracks, nil
}

// Track retrieves one track by Qobuz ID.
func (s *QobuzService) Track(ctx context.Context, id string) (*Track, error) {
	params := url.Values{}
	params.Set("track_id", id)

	var item QobuzTrack
	if err := s.doRequest(ctx, "/track/get", params, &item); err != nil {
		return nil, err
	}

	track := qobuzToTrack(item)
	return &track, nil
}

func qobuzToTrack(item QobuzTrack) Track {
	title := item.Title
	if item.Version != "" {
		title = fmt.Sprintf("%s (%s)", item.Title, item.Version)
	}

	artist := item.Performer.Name
	if artist == "" {
		artist = item.Album.Artist.Name
	}

	return Track{
		ID:       strconv.FormatInt(item.ID, 10),
		Title:    title,
		Artist:   artist,
		Album:    item.Album.Title,
		Duration: item.Duration,
		ISRC:     item.ISRC,
	}
}
