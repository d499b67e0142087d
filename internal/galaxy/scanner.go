package galaxy

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"starfield-server/internal/lehmer"
	"starfield-server/internal/space"
	"starfield-server/internal/system"
)

// Scanner walks every sector of the viewport grid and keeps the cells that
// hold a star. It never expands stars past their own attributes.
type Scanner struct {
	generator *system.Generator
	grid      Grid
}

func NewScanner(generator *system.Generator, grid Grid) (*Scanner, error) {
	if grid.Width <= 0 || grid.Height <= 0 {
		return nil, fmt.Errorf("invalid scan grid %dx%d", grid.Width, grid.Height)
	}
	return &Scanner{generator: generator, grid: grid}, nil
}

func (s *Scanner) Grid() Grid {
	return s.grid
}

// Scan reseeds src for each sector, x-major then y, and returns the stars in
// that order. Each star's position is its grid index within the viewport.
func (s *Scanner) Scan(src *lehmer.Source, pan space.Vec2) []space.Star {
	var stars []space.Star
	for x := 0; x < s.grid.Width; x++ {
		stars = s.scanColumn(src, x, pan, stars)
	}
	return stars
}

func (s *Scanner) scanColumn(src *lehmer.Source, x int, pan space.Vec2, stars []space.Star) []space.Star {
	for y := 0; y < s.grid.Height; y++ {
		grid := space.Vec2{X: float64(x), Y: float64(y)}
		cell := space.CellAt(grid, pan)

		if star, ok := s.generator.Star(src, cell, grid, system.DepthShallow); ok {
			stars = append(stars, star)
		}
	}
	return stars
}

// ScanParallel splits the grid by column across at most workers goroutines.
// Every column gets its own source, so the result matches Scan exactly.
func (s *Scanner) ScanParallel(ctx context.Context, normalization lehmer.Normalization, pan space.Vec2, workers int) ([]space.Star, error) {
	if workers <= 1 {
		return s.Scan(lehmer.NewWithNormalization(normalization), pan), nil
	}

	columns := make([][]space.Star, s.grid.Width)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for x := 0; x < s.grid.Width; x++ {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			src := lehmer.NewWithNormalization(normalization)
			columns[x] = s.scanColumn(src, x, pan, nil)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	var stars []space.Star
	for _, column := range columns {
		stars = append(stars, column...)
	}
	return stars, nil
}
