package galaxy

import (
	"starfield-server/internal/lehmer"
	"starfield-server/internal/space"
)

// Grid is the size of the viewport in sectors.
type Grid struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

func (g Grid) Cells() int {
	return g.Width * g.Height
}

// Galaxy holds the shallow stars visible in the viewport for one tick, in
// scan order (column by column).
type Galaxy struct {
	Stars []space.Star `json:"stars"`
}

// Update discards the previous list and rescans at pan.
func (g *Galaxy) Update(scanner *Scanner, src *lehmer.Source, pan space.Vec2) {
	g.Stars = scanner.Scan(src, pan)
}
