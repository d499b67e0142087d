package session

import (
	"context"
	stderrors "errors"
	"log/slog"
	"math"
	"time"

	"starfield-server/internal/galaxy"
	"starfield-server/internal/lehmer"
	"starfield-server/internal/selection"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/space"
	"starfield-server/internal/viewport"

	"github.com/google/uuid"
)

// MaxStep bounds the dt a single advance may apply, in seconds.
const MaxStep = 1.0

type Service struct {
	repo          Repository
	galaxy        *galaxy.Service
	resolver      *selection.Resolver
	normalization lehmer.Normalization
	panSpeed      float64
	ttl           time.Duration
	now           func() time.Time
	logger        *slog.Logger
}

func NewService(repo Repository, galaxyService *galaxy.Service, resolver *selection.Resolver, normalization lehmer.Normalization, panSpeed float64, ttl time.Duration, logger *slog.Logger) *Service {
	logger.Debug("Initializing session service", "pan_speed", panSpeed, "ttl", ttl)

	return &Service{
		repo:          repo,
		galaxy:        galaxyService,
		resolver:      resolver,
		normalization: normalization,
		panSpeed:      panSpeed,
		ttl:           ttl,
		now:           time.Now,
		logger:        logger,
	}
}

func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Create starts a viewer at pan (0,0) with nothing selected.
func (s *Service) Create(ctx context.Context) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.New(),
		CreatedAt: now,
		UpdatedAt: now,
		ExpiresAt: now.Add(s.ttl),
	}

	logger := s.logger.With("component", "session_service", "operation", "create", "session_id", sess.ID)

	if err := s.repo.Create(ctx, sess); err != nil {
		return nil, errors.WrapExternal("failed to create session", err)
	}

	logger.Info("Session created", "expires_at", sess.ExpiresAt)
	return sess, nil
}

func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	sess, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, s.mapError(err, "failed to load session")
	}
	return sess, nil
}

// Advance replaces the held directions and moves the pan by dt seconds.
func (s *Service) Advance(ctx context.Context, id uuid.UUID, dirs viewport.Directions, dt float64) (*View, error) {
	if math.IsNaN(dt) || dt < 0 || dt > MaxStep {
		return nil, errors.Validationf("dt must be between 0 and %g seconds", MaxStep)
	}

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	sess.Directions = dirs
	sess.Pan = viewport.Advance(sess.Pan, dirs, s.panSpeed, dt)

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Debug("Session advanced",
		"component", "session_service",
		"operation", "advance",
		"session_id", id,
		"pan_x", sess.Pan.X,
		"pan_y", sess.Pan.Y,
	)

	return s.view(ctx, sess)
}

// Select resolves the pointer against the session's pan. An empty cell
// clears the selection.
func (s *Service) Select(ctx context.Context, id uuid.UUID, pointer space.Vec2) (*View, error) {
	if !finite(pointer.X) || !finite(pointer.Y) {
		return nil, errors.Validation("pointer must be finite")
	}

	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	logger := s.logger.With("component", "session_service", "operation", "select", "session_id", id)

	cell, sector := selection.Target(pointer, sess.Pan)
	star := s.resolver.ResolveCell(lehmer.NewWithNormalization(s.normalization), cell, sector)
	if star == nil {
		sess.Selected = nil
		logger.Debug("Selection cleared", "cell_x", cell.X, "cell_y", cell.Y)
	} else {
		sess.Selected = &Selection{Cell: cell, Position: sector}
		logger.Debug("System selected", "cell_x", cell.X, "cell_y", cell.Y, "name", star.Name)
	}

	if err := s.save(ctx, sess); err != nil {
		return nil, err
	}

	return s.build(ctx, sess, star)
}

// View regenerates the viewport and the selected system.
func (s *Service) View(ctx context.Context, id uuid.UUID) (*View, error) {
	sess, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.view(ctx, sess)
}

func (s *Service) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return s.mapError(err, "failed to delete session")
	}

	s.logger.Info("Session deleted", "component", "session_service", "operation", "delete", "session_id", id)
	return nil
}

func (s *Service) view(ctx context.Context, sess *Session) (*View, error) {
	var selected *space.Star
	if sess.Selected != nil {
		selected = s.resolver.ResolveCell(lehmer.NewWithNormalization(s.normalization), sess.Selected.Cell, sess.Selected.Position)
	}
	return s.build(ctx, sess, selected)
}

func (s *Service) build(ctx context.Context, sess *Session, selected *space.Star) (*View, error) {
	stars, err := s.galaxy.View(ctx, sess.Pan)
	if err != nil {
		return nil, err
	}
	if stars == nil {
		stars = []space.Star{}
	}

	return &View{
		SessionID:  sess.ID,
		Pan:        sess.Pan,
		Directions: sess.Directions,
		Stars:      stars,
		Selected:   selected,
	}, nil
}

// save refreshes the sliding expiry and writes the session back.
func (s *Service) save(ctx context.Context, sess *Session) error {
	now := s.now()
	sess.UpdatedAt = now
	sess.ExpiresAt = now.Add(s.ttl)

	if err := s.repo.Update(ctx, sess); err != nil {
		return s.mapError(err, "failed to save session")
	}
	return nil
}

func (s *Service) mapError(err error, message string) error {
	if stderrors.Is(err, ErrNotFound) {
		return errors.Unauthorized("session expired or unknown")
	}
	return errors.WrapExternal(message, err)
}

func finite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
