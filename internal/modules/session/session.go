package session

import (
	"time"

	"github.com/google/uuid"
)

// Session is an administrator's stored bearer credential and profile.
type Session struct {
	ID        uuid.UUID `json:"id"`
	Token     string    `json:"-"`
	Profile   Profile   `json:"profile"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}

// Profile is the administrator record returned by the login endpoint.
type Profile struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	IsCreator bool   `json:"is_creator"`
	ImageURL  string `json:"image_url,omitempty"`
}

func (s *Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
