package location

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// SRID of every stored point (WGS 84).
const SRID = 4326

// Point is a WGS 84 coordinate pair.
type Point struct {
	Lng float64 `json:"longitude"`
	Lat float64 `json:"latitude"`
}

// Validate rejects coordinates outside the WGS 84 ranges.
func (p Point) Validate() error {
	if math.IsNaN(p.Lng) || p.Lng < -180 || p.Lng > 180 {
		return fmt.Errorf("longitude %v out of range", p.Lng)
	}
	if math.IsNaN(p.Lat) || p.Lat < -90 || p.Lat > 90 {
		return fmt.Errorf("latitude %v out of range", p.Lat)
	}
	return nil
}

// WKT renders the point as "POINT(lng lat)".
func (p Point) WKT() string {
	return "POINT(" + formatCoord(p.Lng) + " " + formatCoord(p.Lat) + ")"
}

// EWKT renders the point with its SRID, as written to the spatial column.
func (p Point) EWKT() string {
	return fmt.Sprintf("SRID=%d;%s", SRID, p.WKT())
}

func formatCoord(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// ParsePoint parses "POINT(lng lat)", with or without an "SRID=n;" prefix.
func ParsePoint(s string) (Point, error) {
	s = strings.TrimSpace(s)
	if _, rest, ok := strings.Cut(s, ";"); ok && strings.HasPrefix(strings.ToUpper(s), "SRID=") {
		s = strings.TrimSpace(rest)
	}

	upper := strings.ToUpper(s)
	if !strings.HasPrefix(upper, "POINT") {
		return Point{}, fmt.Errorf("not a point: %q", s)
	}
	body := strings.TrimSpace(s[len("POINT"):])
	if !strings.HasPrefix(body, "(") || !strings.HasSuffix(body, ")") {
		return Point{}, fmt.Errorf("malformed point: %q", s)
	}

	coords := strings.Fields(body[1 : len(body)-1])
	if len(coords) != 2 {
		return Point{}, fmt.Errorf("point needs 2 coordinates, got %d", len(coords))
	}

	lng, err := strconv.ParseFloat(coords[0], 64)
	if err != nil {
		return Point{}, fmt.Errorf("longitude: %w", err)
	}
	lat, err := strconv.ParseFloat(coords[1], 64)
	if err != nil {
		return Point{}, fmt.Errorf("latitude: %w", err)
	}

	p := Point{Lng: lng, Lat: lat}
	return p, p.Validate()
}

// Location is a resolved address and its coordinates.
type Location struct {
	Address string `json:"address"`
	Point
}

// Suggestion is one entry of a place-suggestion list.
type Suggestion struct {
	PlaceID     string `json:"place_id"`
	Description string `json:"description"`
}
