package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Category is a vendor category label offered by the vendor form.
type Category struct {
	ID        uuid.UUID `json:"id"`
	Label     string    `json:"label"`
	IsActive  bool      `json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
}

// DefaultLabels are the categories every installation starts with.
var DefaultLabels = []string{
	"Inyama yenhloko",
	"Mogodu",
	"Assorted",
	"Hard Body",
	"Sheep Trotter",
	"Cow Heels",
	"Skopo(Sheep)",
	"PorkTrotters",
}
