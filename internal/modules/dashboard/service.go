package dashboard

import (
	"context"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/georgemunganga/intloko-backend/internal/modules/profile"
	"github.com/georgemunganga/intloko-backend/internal/modules/vendor"
)

// VendorLister is the part of the vendor service the dashboard reads.
type VendorLister interface {
	List(ctx context.Context) ([]*vendor.Vendor, error)
}

// ProfileLister is the part of the profile service the dashboard reads.
type ProfileLister interface {
	List(ctx context.Context) ([]*profile.Profile, error)
}

// Overview is the full dashboard payload.
type Overview struct {
	Summary Summary       `json:"summary"`
	Chart   []MonthBucket `json:"chart"`
}

type Service interface {
	Summary(ctx context.Context) (Summary, error)
	Overview(ctx context.Context, year int) (Overview, error)
}

type service struct {
	vendors  VendorLister
	profiles ProfileLister
	log      *slog.Logger
}

func NewService(vendors VendorLister, profiles ProfileLister, logger *slog.Logger) Service {
	return &service{vendors: vendors, profiles: profiles, log: logger.With("service", "dashboard")}
}

func (s *service) Summary(ctx context.Context) (Summary, error) {
	vendors, err := s.vendors.List(ctx)
	if err != nil {
		return Summary{}, err
	}
	return Summarize(vendors), nil
}

func (s *service) Overview(ctx context.Context, year int) (Overview, error) {
	var (
		vendors  []*vendor.Vendor
		profiles []*profile.Profile
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		vendors, err = s.vendors.List(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		profiles, err = s.profiles.List(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		s.log.ErrorContext(ctx, "load dashboard failed", slog.String("error", err.Error()))
		return Overview{}, err
	}

	return Overview{
		Summary: Summarize(vendors),
		Chart:   Chart(vendors, profiles, year),
	}, nil
}
