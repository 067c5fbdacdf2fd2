package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const defaultGoogleBaseURL = "https://maps.googleapis.com/maps/api"

// Google talks to the Google Maps Places and Geocoding web services.
type Google struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        *slog.Logger
}

// NewGoogle creates a Google geocoder. An empty baseURL selects the public API.
func NewGoogle(apiKey, baseURL string, timeout time.Duration, logger *slog.Logger) *Google {
	if baseURL == "" {
		baseURL = defaultGoogleBaseURL
	}
	return &Google{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "google_places"),
	}
}

type googleStatus struct {
	Status       string `json:"status"`
	ErrorMessage string `json:"error_message"`
}

func (s googleStatus) err() error {
	switch s.Status {
	case "OK":
		return nil
	case "ZERO_RESULTS", "NOT_FOUND":
		return ErrNoResults
	default:
		if s.ErrorMessage != "" {
			return fmt.Errorf("google: %s: %s", s.Status, s.ErrorMessage)
		}
		return fmt.Errorf("google: status %s", s.Status)
	}
}

type autocompleteResponse struct {
	googleStatus
	Predictions []struct {
		PlaceID     string `json:"place_id"`
		Description string `json:"description"`
	} `json:"predictions"`
}

type detailsResponse struct {
	googleStatus
	Result struct {
		FormattedAddress string `json:"formatted_address"`
		Geometry         struct {
			Location struct {
				Lat float64 `json:"lat"`
				Lng float64 `json:"lng"`
			} `json:"location"`
		} `json:"geometry"`
	} `json:"result"`
}

type geocodeResponse struct {
	googleStatus
	Results []struct {
		FormattedAddress string `json:"formatted_address"`
	} `json:"results"`
}

// Predict calls Place Autocomplete.
func (g *Google) Predict(ctx context.Context, text, country string) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("input", text)
	q.Set("components", "country:"+strings.ToLower(country))

	var resp autocompleteResponse
	if err := g.get(ctx, "/place/autocomplete/json", q, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		if err == ErrNoResults {
			return []Suggestion{}, nil
		}
		return nil, err
	}

	out := make([]Suggestion, 0, len(resp.Predictions))
	for _, p := range resp.Predictions {
		out = append(out, Suggestion{PlaceID: p.PlaceID, Description: p.Description})
	}
	return out, nil
}

// Resolve calls Place Details for the address and geometry.
func (g *Google) Resolve(ctx context.Context, placeID string) (*Location, error) {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", "formatted_address,geometry")

	var resp detailsResponse
	if err := g.get(ctx, "/place/details/json", q, &resp); err != nil {
		return nil, err
	}
	if err := resp.err(); err != nil {
		return nil, err
	}

	return &Location{
		Address: resp.Result.FormattedAddress,
		Point: Point{
			Lng: resp.Result.Geometry.Location.Lng,
			Lat: resp.Result.Geometry.Location.Lat,
		},
	}, nil
}

// Reverse calls the Geocoding API with latlng.
func (g *Google) Reverse(ctx context.Context, p Point) (string, error) {
	q := url.Values{}
	q.Set("latlng", formatCoord(p.Lat)+","+formatCoord(p.Lng))

	var resp geocodeResponse
	if err := g.get(ctx, "/geocode/json", q, &resp); err != nil {
		return "", err
	}
	if err := resp.err(); err != nil {
		return "", err
	}
	if len(resp.Results) == 0 {
		return "", ErrNoResults
	}
	return resp.Results[0].FormattedAddress, nil
}

func (g *Google) get(ctx context.Context, path string, q url.Values, out any) error {
	q.Set("key", g.apiKey)
	reqURL := g.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("google: create request: %w", err)
	}

	start := time.Now()
	resp, err := g.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("google: request failed: %w", err)
	}
	defer resp.Body.Close()

	g.log.DebugContext(ctx, "google places response",
		slog.String("path", path),
		slog.Int("status", resp.StatusCode),
		slog.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("google: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("google: decode json: %w", err)
	}
	return nil
}
