package location

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"unicode/utf8"

	"github.com/georgemunganga/intloko-backend/internal/domain"
	"github.com/georgemunganga/intloko-backend/internal/session"
)

// Notices shown to staff when resolution does not produce a location.
const (
	NoticeUnavailable = "Location service is unavailable. Try again or enter the address another way."
	NoticeNoResults   = "No matching address was found."
	NoticeDenied      = "Current location is unavailable. Allow location access or type the address."
)

// SuggestResult is the outcome of one keystroke's suggestion query.
// Superseded is set when a newer query on the same session replaced this one;
// the client must ignore the result.
type SuggestResult struct {
	Suggestions []Suggestion `json:"suggestions"`
	Superseded  bool         `json:"superseded,omitempty"`
	Notice      string       `json:"notice,omitempty"`
}

// Resolution is the outcome of selecting a suggestion or using the current
// position. Location is nil whenever Notice is set.
type Resolution struct {
	Location *Location `json:"location"`
	Notice   string    `json:"notice,omitempty"`
}

// CurrentPosition is what the device reported. A nil coordinate or Denied
// means the position is unavailable.
type CurrentPosition struct {
	Lat    *float64
	Lng    *float64
	Denied bool
}

// ResolverConfig tunes the Resolver.
type ResolverConfig struct {
	Country        string
	MinQueryLength int
}

// Resolver turns typed text or a device position into a Location. Remote
// failures never escape as errors: they become a Notice and an unset location.
// Only cancellation of the caller's context is returned as an error.
type Resolver struct {
	geocoder Geocoder
	sessions *Sessions
	cfg      ResolverConfig
	log      *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(geocoder Geocoder, sessions *Sessions, cfg ResolverConfig, logger *slog.Logger) *Resolver {
	return &Resolver{
		geocoder: geocoder,
		sessions: sessions,
		cfg:      cfg,
		log:      logger.With("service", "location"),
	}
}

// Suggest returns place suggestions for text. Calls from the same staff
// session and client key are debounced: only the last one in a burst reaches
// the geocoder, and a response for an older query is reported as superseded.
func (r *Resolver) Suggest(ctx context.Context, sess session.Session, clientKey, text string) (SuggestResult, error) {
	text = strings.TrimSpace(text)
	if utf8.RuneCountInString(text) < r.cfg.MinQueryLength {
		return SuggestResult{Suggestions: []Suggestion{}}, nil
	}

	var out []Suggestion
	err := r.sessions.Get(sessionKey(sess, clientKey)).Do(ctx, func(ctx context.Context) error {
		var err error
		out, err = r.geocoder.Predict(ctx, text, r.cfg.Country)
		return err
	})

	switch {
	case err == nil:
		if out == nil {
			out = []Suggestion{}
		}
		return SuggestResult{Suggestions: out}, nil
	case errors.Is(err, ErrSuperseded):
		return SuggestResult{Suggestions: []Suggestion{}, Superseded: true}, nil
	case ctx.Err() != nil:
		return SuggestResult{}, ctx.Err()
	case errors.Is(err, ErrNoResults):
		return SuggestResult{Suggestions: []Suggestion{}}, nil
	default:
		r.logFailure(ctx, "predict", err)
		return SuggestResult{Suggestions: []Suggestion{}, Notice: NoticeUnavailable}, nil
	}
}

// Select resolves a chosen suggestion to an address and coordinates.
func (r *Resolver) Select(ctx context.Context, placeID string) (Resolution, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return Resolution{Notice: NoticeNoResults}, nil
	}

	loc, err := r.geocoder.Resolve(ctx, placeID)
	if err == nil {
		err = loc.Validate()
	}
	if err != nil {
		return r.failed(ctx, "details", err)
	}
	return Resolution{Location: loc}, nil
}

// Current reverse-resolves the device position. A missing or denied position
// is reported as a notice, not an error.
func (r *Resolver) Current(ctx context.Context, pos CurrentPosition) (Resolution, error) {
	if pos.Denied || pos.Lat == nil || pos.Lng == nil {
		return Resolution{Notice: NoticeDenied}, nil
	}

	p := Point{Lng: *pos.Lng, Lat: *pos.Lat}
	if err := p.Validate(); err != nil {
		r.logFailure(ctx, "position", err)
		return Resolution{Notice: NoticeDenied}, nil
	}

	addr, err := r.geocoder.Reverse(ctx, p)
	if err != nil {
		return r.failed(ctx, "reverse", err)
	}
	return Resolution{Location: &Location{Address: addr, Point: p}}, nil
}

func (r *Resolver) failed(ctx context.Context, op string, err error) (Resolution, error) {
	if ctx.Err() != nil {
		return Resolution{}, ctx.Err()
	}
	r.logFailure(ctx, op, err)
	if errors.Is(err, ErrNoResults) {
		return Resolution{Notice: NoticeNoResults}, nil
	}
	return Resolution{Notice: NoticeUnavailable}, nil
}

func (r *Resolver) logFailure(ctx context.Context, op string, err error) {
	rerr := &domain.ResolutionError{Op: op, Err: err}
	r.log.WarnContext(ctx, "location resolution failed", slog.String("error", rerr.Error()))
}

func sessionKey(sess session.Session, clientKey string) string {
	return sess.UserID.String() + ":" + clientKey
}
