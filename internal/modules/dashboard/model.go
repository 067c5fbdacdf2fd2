// Package dashboard computes the aggregate metrics shown on the admin home
// page from the vendor and profile listings.
package dashboard

import (
	"math"
	"time"

	"github.com/georgemunganga/intloko-backend/internal/modules/profile"
	"github.com/georgemunganga/intloko-backend/internal/modules/vendor"
)

// RecentLimit is how many vendors the summary previews.
const RecentLimit = 5

// Summary holds the headline counters.
type Summary struct {
	Vendors       int              `json:"vendors"`
	Categories    int              `json:"categories"`
	AverageRating float64          `json:"average_rating"`
	Tagged        int              `json:"tagged"`
	Recent        []*vendor.Vendor `json:"recent"`
}

// MonthBucket is one point of the monthly chart.
type MonthBucket struct {
	Name    string `json:"name"`
	Vendors int    `json:"vendors"`
	Users   int    `json:"users"`
}

// Summarize expects vendors ordered newest first, as the vendor listing
// returns them.
func Summarize(vendors []*vendor.Vendor) Summary {
	s := Summary{Vendors: len(vendors), Recent: []*vendor.Vendor{}}

	categories := make(map[string]struct{})
	var total float64
	for _, v := range vendors {
		for _, c := range v.Category {
			categories[c] = struct{}{}
		}
		total += v.Rating
		if len(v.Tags) > 0 {
			s.Tagged++
		}
	}
	s.Categories = len(categories)

	if len(vendors) > 0 {
		s.AverageRating = math.Round(total/float64(len(vendors))*10) / 10
	}

	n := min(RecentLimit, len(vendors))
	s.Recent = append(s.Recent, vendors[:n]...)
	return s
}

// Chart buckets vendors by insertion month and profiles by update month.
// A zero year counts every record; otherwise only records from that year.
func Chart(vendors []*vendor.Vendor, profiles []*profile.Profile, year int) []MonthBucket {
	buckets := make([]MonthBucket, 12)
	for i := range buckets {
		buckets[i].Name = time.Month(i + 1).String()[:3]
	}

	for _, v := range vendors {
		if i, ok := monthIndex(v.InsertedAt, year); ok {
			buckets[i].Vendors++
		}
	}
	for _, p := range profiles {
		if i, ok := monthIndex(p.UpdatedAt, year); ok {
			buckets[i].Users++
		}
	}
	return buckets
}

func monthIndex(t time.Time, year int) (int, bool) {
	if t.IsZero() {
		return 0, false
	}
	t = t.UTC()
	if year != 0 && t.Year() != year {
		return 0, false
	}
	return int(t.Month()) - 1, true
}
