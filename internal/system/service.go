package system

import (
	"context"
	"log/slog"

	"starfield-server/internal/lehmer"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/space"
)

type Service struct {
	generator     *Generator
	normalization lehmer.Normalization
	logger        *slog.Logger
}

func NewService(generator *Generator, normalization lehmer.Normalization, logger *slog.Logger) *Service {
	logger.Debug("Initializing system service")

	return &Service{
		generator:     generator,
		normalization: normalization,
		logger:        logger,
	}
}

// GetSystem regenerates the full system at cell. The star is positioned at
// the cell's universe coordinate.
func (s *Service) GetSystem(ctx context.Context, cell space.Cell) (*space.Star, error) {
	logger := s.logger.With("component", "system_service", "operation", "get_system", "cell_x", cell.X, "cell_y", cell.Y)

	if err := ctx.Err(); err != nil {
		return nil, errors.WrapInternal("system generation cancelled", err)
	}

	src := lehmer.NewWithNormalization(s.normalization)
	pos := space.Vec2{X: float64(cell.X), Y: float64(cell.Y)}

	star, ok := s.generator.Star(src, cell, pos, DepthFull)
	if !ok {
		logger.Debug("No star at cell", "draws", src.Draws())
		return nil, errors.NotFoundf("no star system at (%d,%d)", cell.X, cell.Y)
	}

	logger.Debug("System generated", "name", star.Name, "planets", len(star.Children), "draws", src.Draws())
	return &star, nil
}
