// Tidal API implementation of [Provider]
//
// Uses the OAuth2 client-credentials grant; token refresh is handled by the
// oauth2 transport.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"golang.org/x/oauth2/clientcredentials"
	"golang.org/x/time/rate"

	"crate/internal/shared"
)

const (
	tidalBaseURL  = "https://api.tidal.com/v1"
	tidalTokenURL = "https://auth.tidal.com/v1/oauth2/token"
)

// TidalArtist represents a Tidal artist reference.
type TidalArtist struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// TidalAlbum represents a Tidal album reference.
type TidalAlbum struct {
	ID    int64  `json:"id"`
	Title string `json:"title"`
}

// TidalTrack represents a Tidal catalog track.
type TidalTrack struct {
	ID       int64       `json:"id"`
	Title    string      `json:"title"`
	Duration int         `json:"duration"`
	ISRC     string      `json:"isrc"`
	Artist   TidalArtist `json:"artist"`
	Album    TidalAlbum  `json:"album"`
}

type tidalSearchResponse struct {
	Items []TidalTrack `json:"items"`
	Total int          `json:"totalNumberOfItems"`
}

// TidalService implements the Provider interface for the Tidal API.
type TidalService struct {
	baseURL     string
	countryCode string
	httpClient  *http.Client
	limiter     *rate.Limiter
}

// NewTidalService creates a Tidal provider using client-credentials
// authentication. The returned service lazily fetches and refreshes its
// token through the oauth2 client.
func NewTidalService(ctx context.Context, clientID, clientSecret string) (*TidalService, error) {
	if clientID == "" || clientSecret == "" {
		return nil, fmt.Errorf("%w: tidal client_id and client_secret", shared.ErrMissingCredentials)
	}

	conf := &clientcredentials.Config{
		ClientID:     clientID,
		ClientSecret: clientSecret,
		TokenURL:     tidalTokenURL,
	}

	return &TidalService{
		baseURL:     tidalBaseURL,
		countryCode: "US",
		httpClient:  conf.Client(ctx),
		limiter:     rate.NewLimiter(rate.Limit(5), 1),
	}, nil
}

func (s *TidalService) Name() string {
	return "Tidal"
}

func (s *TidalService) doRequest(ctx context.Context, endpoint string, params url.Values, result any) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	params.Set("countryCode", s.countryCode)
	apiURL := s.baseURL + endpoint + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, apiURL, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("%w: tidal status %d", shared.ErrAPIRequest, resp.StatusCode)
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// SearchTracks searches the Tidal catalog.
func (s *TidalService) SearchTracks(ctx context.Context, query string, limit int) ([]Track, error) {
	if limit <= 0 {
		limit = 10
	}

	params := url.Values{}
	params.Set("query", query)
	params.Set("limit", strconv.Itoa(limit))

	var response tidalSearchResponse
	if err := s.doRequest(ctx, "/search/tracks", params, &response); err != nil {
		return nil, err
	}

	tracks := make([]Track, 0, len(response.Items))
	for _, item := range response.Items {
		tracks = append(tracks, tidalToTrack(item))
	}
	return tracks, nil
}

// Track retrieves one track by Tidal ID.
func (s *TidalService) Track(ctx context.Context, id string) (*Track, error) {
	var item TidalTrack
	if err := s.doRequest(ctx, "/tracks/"+url.PathEscape(id), url.Values{}, &item); err != nil {
		return nil, err
	}

	track := tidalToTrack(item)
	return &track, nil
}

func tidalToTrack(item TidalTrack) Track {
	return Track{
		ID:       strconv.FormatInt(item.ID, 10),
		Title:    item.Title,
		Artist:   item.Artist.Name,
		Album:    item.Album.Title,
		Duration: item.Duration,
		ISRC:     item.ISRC,
	}
}
