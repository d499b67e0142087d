package space

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Cell identifies one sector of universe space. Cells are the only seed input.
type Cell struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

// Vec2 is a sub-cell position: a grid position for stars, an orbit position
// for planets and moons.
type Vec2 struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

func (v Vec2) Add(o Vec2) Vec2 {
	return Vec2{X: v.X + o.X, Y: v.Y + o.Y}
}

func (v Vec2) Scale(f float64) Vec2 {
	return Vec2{X: v.X * f, Y: v.Y * f}
}

// Floor returns v with both components rounded down.
func (v Vec2) Floor() Vec2 {
	return Vec2{X: math.Floor(v.X), Y: math.Floor(v.Y)}
}

// CellAt converts a grid position plus the pan offset into a universe cell.
// The sum is truncated toward zero on each axis.
func CellAt(grid, pan Vec2) Cell {
	return Cell{
		X: int64(grid.X + pan.X),
		Y: int64(grid.Y + pan.Y),
	}
}

type Kind string

const (
	KindStar   Kind = "star"
	KindPlanet Kind = "planet"
	KindMoon   Kind = "moon"
)

type PlanetType string

const (
	PlanetTypeBarren      PlanetType = "barren"
	PlanetTypeTerrestrial PlanetType = "terrestrial"
	PlanetTypeGasGiant    PlanetType = "gas_giant"
	PlanetTypeIce         PlanetType = "ice"
	PlanetTypeVolcanic    PlanetType = "volcanic"
)

// Body is any generated object. A shallow body has nil Children; an expanded
// one has a non-nil slice, which is empty when no children were rolled.
// Moons are never expanded.
type Body struct {
	Kind        Kind       `json:"kind"`
	Name        string     `json:"name"`
	Diameter    float64    `json:"diameter"`
	Position    Vec2       `json:"position"`
	Color       Color      `json:"color"`
	ColorIndex  int        `json:"color_index"`
	OrbitRadius float64    `json:"orbit_radius"`
	PlanetType  PlanetType `json:"planet_type,omitempty"`
	Children    []Body     `json:"children"`
}

// Expanded reports whether the child structure was generated.
func (b Body) Expanded() bool {
	return b.Children != nil
}

// Star is a root body together with the cell it was generated from.
type Star struct {
	Cell Cell `json:"cell"`
	Body
}

// Planets returns the star's planets, nil for a shallow star.
func (s Star) Planets() []Body {
	return s.Children
}

// Color is an RGB triple.
type Color struct {
	R uint8 `json:"r"`
	G uint8 `json:"g"`
	B uint8 `json:"b"`
}

func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

// ParseColor reads a #rrggbb or rrggbb string.
func ParseColor(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 {
		return Color{}, fmt.Errorf("color %q: want 6 hex digits", s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("color %q: %w", s, err)
	}
	return Color{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// Palette is the ordered set of colours a body can take. Generation picks an
// index into it, so its length is part of the draw contract.
type Palette []Color

// DefaultPalette returns the seven star colours ordered cool to warm.
func DefaultPalette() Palette {
	return Palette{
		{R: 175, G: 201, B: 255},
		{R: 199, G: 216, B: 255},
		{R: 255, G: 244, B: 243},
		{R: 255, G: 229, B: 207},
		{R: 255, G: 217, B: 178},
		{R: 255, G: 199, B: 142},
		{R: 255, G: 166, B: 81},
	}
}

// ParsePalette reads a comma-separated list of hex colours.
func ParsePalette(s string) (Palette, error) {
	var p Palette
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		c, err := ParseColor(part)
		if err != nil {
			return nil, err
		}
		p = append(p, c)
	}
	if len(p) == 0 {
		return nil, fmt.Errorf("palette %q has no colours", s)
	}
	return p, nil
}

func (p Palette) String() string {
	parts := make([]string, len(p))
	for i, c := range p {
		parts[i] = c.Hex()
	}
	return strings.Join(parts, ",")
}
