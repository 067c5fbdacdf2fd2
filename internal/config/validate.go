package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// Supported geocoder providers.
const (
	GeocoderGoogle    = "google"
	GeocoderNominatim = "nominatim"
)

// Validate checks cross-field constraints that struct tags cannot express.
func (c *Config) Validate() error {
	var errs []error

	if c.Server.Port < 1 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port %d out of range", c.Server.Port))
	}
	if c.Server.MaxUploadBytes <= 0 {
		errs = append(errs, errors.New("server.max_upload_bytes must be positive"))
	}

	if len(c.Auth.JWTSecret) < 32 {
		errs = append(errs, errors.New("auth.jwt_secret must be at least 32 characters"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}

	if _, err := url.ParseRequestURI(c.Storage.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("storage.base_url: %w", err))
	}
	if strings.TrimSpace(c.Storage.Bucket) == "" {
		errs = append(errs, errors.New("storage.bucket is required"))
	}

	c.Geocoder.Provider = strings.ToLower(strings.TrimSpace(c.Geocoder.Provider))
	switch c.Geocoder.Provider {
	case GeocoderGoogle:
		if c.Geocoder.APIKey == "" {
			errs = append(errs, errors.New("geocoder.api_key is required for the google provider"))
		}
	case GeocoderNominatim:
	default:
		errs = append(errs, fmt.Errorf("geocoder.provider %q: want %s or %s",
			c.Geocoder.Provider, GeocoderGoogle, GeocoderNominatim))
	}
	if c.Geocoder.Debounce <= 0 {
		errs = append(errs, errors.New("geocoder.debounce must be positive"))
	}
	if c.Geocoder.MinQueryLength < 1 {
		errs = append(errs, errors.New("geocoder.min_query_length must be at least 1"))
	}
	if len(c.Geocoder.Country) != 2 {
		errs = append(errs, fmt.Errorf("geocoder.country %q must be an ISO 3166-1 alpha-2 code", c.Geocoder.Country))
	}

	return errors.Join(errs...)
}
