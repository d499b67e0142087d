package session

import (
	"context"
	"errors"
	"time"

	"starfield-server/internal/space"
	"starfield-server/internal/viewport"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("session not found")

// Session is the navigation state of one viewer. It never holds generated
// bodies: stars and the selected system are regenerated on every read.
type Session struct {
	ID         uuid.UUID           `json:"id"`
	Pan        space.Vec2          `json:"pan"`
	Directions viewport.Directions `json:"directions"`
	Selected   *Selection          `json:"selected,omitempty"`
	CreatedAt  time.Time           `json:"created_at"`
	UpdatedAt  time.Time           `json:"updated_at"`
	ExpiresAt  time.Time           `json:"expires_at"`
}

// Selection records which cell was picked and the viewport sector it was
// picked at.
type Selection struct {
	Cell     space.Cell `json:"cell"`
	Position space.Vec2 `json:"position"`
}

func (s *Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s *Session) clone() *Session {
	c := *s
	if s.Selected != nil {
		sel := *s.Selected
		c.Selected = &sel
	}
	return &c
}

// View is a session with its viewport regenerated.
type View struct {
	SessionID  uuid.UUID           `json:"session_id"`
	Pan        space.Vec2          `json:"pan"`
	Directions viewport.Directions `json:"directions"`
	Stars      []space.Star        `json:"stars"`
	Selected   *space.Star         `json:"selected"`
}

type Repository interface {
	Create(ctx context.Context, s *Session) error
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	Update(ctx context.Context, s *Session) error
	Delete(ctx context.Context, id uuid.UUID) error
}
