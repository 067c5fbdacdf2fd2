package location

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const defaultNominatimBaseURL = "https://nominatim.openstreetmap.org"

// Nominatim talks to an OpenStreetMap Nominatim server. Place ids are OSM
// references such as "N240109189" (type initial + OSM id), which /lookup
// accepts directly.
type Nominatim struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	log        *slog.Logger
}

// NewNominatim creates a Nominatim geocoder. Nominatim's usage policy requires
// an identifying User-Agent.
func NewNominatim(baseURL, userAgent string, timeout time.Duration, logger *slog.Logger) *Nominatim {
	if baseURL == "" {
		baseURL = defaultNominatimBaseURL
	}
	return &Nominatim{
		baseURL:    strings.TrimRight(baseURL, "/"),
		userAgent:  userAgent,
		httpClient: &http.Client{Timeout: timeout},
		log:        logger.With("adapter", "nominatim"),
	}
}

type nominatimPlace struct {
	OSMType     string `json:"osm_type"`
	OSMID       int64  `json:"osm_id"`
	DisplayName string `json:"display_name"`
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
}

func (p nominatimPlace) placeID() string {
	if p.OSMType == "" {
		return ""
	}
	return strings.ToUpper(p.OSMType[:1]) + strconv.FormatInt(p.OSMID, 10)
}

func (p nominatimPlace) location() (*Location, error) {
	lat, err := strconv.ParseFloat(p.Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: lat %q: %w", p.Lat, err)
	}
	lng, err := strconv.ParseFloat(p.Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("nominatim: lon %q: %w", p.Lon, err)
	}
	return &Location{Address: p.DisplayName, Point: Point{Lng: lng, Lat: lat}}, nil
}

// Predict calls /search restricted by countrycodes.
func (n *Nominatim) Predict(ctx context.Context, text, country string) ([]Suggestion, error) {
	q := url.Values{}
	q.Set("q", text)
	q.Set("countrycodes", strings.ToLower(country))
	q.Set("format", "jsonv2")
	q.Set("limit", "5")

	var places []nominatimPlace
	if err := n.get(ctx, "/search", q, &places); err != nil {
		return nil, err
	}

	out := make([]Suggestion, 0, len(places))
	for _, p := range places {
		id := p.placeID()
		if id == "" {
			continue
		}
		out = append(out, Suggestion{PlaceID: id, Description: p.DisplayName})
	}
	return out, nil
}

// Resolve calls /lookup with the OSM reference.
func (n *Nominatim) Resolve(ctx context.Context, placeID string) (*Location, error) {
	q := url.Values{}
	q.Set("osm_ids", placeID)
	q.Set("format", "jsonv2")

	var places []nominatimPlace
	if err := n.get(ctx, "/lookup", q, &places); err != nil {
		return nil, err
	}
	if len(places) == 0 {
		return nil, ErrNoResults
	}
	return places[0].location()
}

// Reverse calls /reverse.
func (n *Nominatim) Reverse(ctx context.Context, p Point) (string, error) {
	q := url.Values{}
	q.Set("lat", formatCoord(p.Lat))
	q.Set("lon", formatCoord(p.Lng))
	q.Set("format", "jsonv2")

	var resp struct {
		DisplayName string `json:"display_name"`
		Error       string `json:"error"`
	}
	if err := n.get(ctx, "/reverse", q, &resp); err != nil {
		return "", err
	}
	if resp.Error != "" || resp.DisplayName == "" {
		return "", ErrNoResults
	}
	return resp.DisplayName, nil
}

func (n *Nominatim) get(ctx context.Context, path string, q url.Values, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, n.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return fmt.Errorf("nominatim: create request: %w", err)
	}
	req.Header.Set("User-Agent", n.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := n.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("nominatim: request failed: %w", err)
	}
	defer resp.Body.Close()

	n.log.DebugContext(ctx, "nominatim response", slog.String("path", path), slog.Int("status", resp.StatusCode))

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nominatim: unexpected status %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("nominatim: decode json: %w", err)
	}
	return nil
}
