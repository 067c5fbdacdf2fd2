package profile

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// Profile is the user-facing identity of a staff account. Its ID is the
// authentication principal's ID.
type Profile struct {
	ID        uuid.UUID `json:"id"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	FullName  string    `json:"full_name"`
	Username  string    `json:"username"`
	AvatarURL *string   `json:"avatar_url"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Input is the editable part of a profile.
type Input struct {
	FirstName string  `json:"first_name" validate:"required"`
	LastName  string  `json:"last_name"  validate:"required"`
	Username  string  `json:"username"   validate:"required"`
	AvatarURL *string `json:"avatar_url" validate:"omitempty,url"`
}

func (in Input) normalize() Input {
	in.FirstName = strings.TrimSpace(in.FirstName)
	in.LastName = strings.TrimSpace(in.LastName)
	in.Username = strings.TrimSpace(in.Username)
	if in.AvatarURL != nil {
		u := strings.TrimSpace(*in.AvatarURL)
		if u == "" {
			in.AvatarURL = nil
		} else {
			in.AvatarURL = &u
		}
	}
	return in
}

// FullName derives the stored full name. It is recomputed on every save.
func FullName(first, last string) string {
	return first + " " + last
}

// apply copies in onto p and recomputes the full name.
func (p *Profile) apply(in Input) {
	p.FirstName = in.FirstName
	p.LastName = in.LastName
	p.Username = in.Username
	p.AvatarURL = in.AvatarURL
	p.FullName = FullName(in.FirstName, in.LastName)
}
