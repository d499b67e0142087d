package galaxy

import (
	"context"
	"log/slog"

	"starfield-server/internal/lehmer"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/space"
)

type Service struct {
	scanner       *Scanner
	normalization lehmer.Normalization
	workers       int
	logger        *slog.Logger
}

func NewService(scanner *Scanner, normalization lehmer.Normalization, workers int, logger *slog.Logger) *Service {
	logger.Debug("Initializing galaxy service", "grid_width", scanner.Grid().Width, "grid_height", scanner.Grid().Height, "workers", workers)

	return &Service{
		scanner:       scanner,
		normalization: normalization,
		workers:       workers,
		logger:        logger,
	}
}

func (s *Service) Grid() Grid {
	return s.scanner.Grid()
}

// View rescans the viewport at pan. Nothing is cached between calls.
func (s *Service) View(ctx context.Context, pan space.Vec2) ([]space.Star, error) {
	logger := s.logger.With("component", "galaxy_service", "operation", "view", "pan_x", pan.X, "pan_y", pan.Y)

	stars, err := s.scanner.ScanParallel(ctx, s.normalization, pan, s.workers)
	if err != nil {
		return nil, errors.WrapInternal("galaxy scan cancelled", err)
	}

	logger.Debug("Viewport scanned", "sectors", s.scanner.Grid().Cells(), "stars", len(stars))
	return stars, nil
}
