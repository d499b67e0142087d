package selection

import (
	"context"
	"log/slog"

	"starfield-server/internal/lehmer"
	"starfield-server/internal/shared/errors"
	"starfield-server/internal/space"
	"starfield-server/internal/system"
)

// Resolver regenerates the full system under a pointer.
type Resolver struct {
	generator *system.Generator
}

func NewResolver(generator *system.Generator) *Resolver {
	return &Resolver{generator: generator}
}

// Target returns the universe cell and viewport sector under pointer. The
// pointer is measured in sectors from the viewport's top-left corner.
func Target(pointer, pan space.Vec2) (space.Cell, space.Vec2) {
	sector := pointer.Floor()
	return space.CellAt(sector, pan), sector
}

// Resolve reseeds src at the targeted cell and runs full generation. It
// returns nil when the cell is empty, which clears any prior selection. The
// star is positioned at its viewport sector, like the shallow scan entry.
func (r *Resolver) Resolve(src *lehmer.Source, pointer, pan space.Vec2) *space.Star {
	cell, sector := Target(pointer, pan)
	return r.ResolveCell(src, cell, sector)
}

// ResolveCell regenerates the full system at a known cell.
func (r *Resolver) ResolveCell(src *lehmer.Source, cell space.Cell, pos space.Vec2) *space.Star {
	star, ok := r.generator.Star(src, cell, pos, system.DepthFull)
	if !ok {
		return nil
	}
	return &star
}

type Service struct {
	resolver      *Resolver
	normalization lehmer.Normalization
	logger        *slog.Logger
}

func NewService(resolver *Resolver, normalization lehmer.Normalization, logger *slog.Logger) *Service {
	logger.Debug("Initializing selection service")

	return &Service{
		resolver:      resolver,
		normalization: normalization,
		logger:        logger,
	}
}

// Resolve returns the selected system, or nil when the pointer is over an
// empty cell.
func (s *Service) Resolve(ctx context.Context, pointer, pan space.Vec2) (*space.Star, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WrapInternal("selection cancelled", err)
	}

	cell, _ := Target(pointer, pan)
	logger := s.logger.With("component", "selection_service", "operation", "resolve", "cell_x", cell.X, "cell_y", cell.Y)

	star := s.resolver.Resolve(lehmer.NewWithNormalization(s.normalization), pointer, pan)
	if star == nil {
		logger.Debug("Selection cleared")
		return nil, nil
	}

	logger.Debug("System selected", "name", star.Name, "planets", len(star.Children))
	return star, nil
}
