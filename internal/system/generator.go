package system

import (
	"fmt"
	"math"

	"starfield-server/internal/lehmer"
	"starfield-server/internal/space"
)

// Generator builds bodies from a reseeded source. It holds only read-only
// configuration; all mutable state lives in the source passed to each call.
type Generator struct {
	palette space.Palette
	bearing space.Vec2
}

func NewGenerator(palette space.Palette) (*Generator, error) {
	if len(palette) == 0 {
		return nil, fmt.Errorf("generator needs a non-empty palette")
	}
	p := make(space.Palette, len(palette))
	copy(p, palette)

	return &Generator{
		palette: p,
		bearing: space.Vec2{X: math.Cos(orbitBearing), Y: math.Sin(orbitBearing)},
	}, nil
}

func (g *Generator) Palette() space.Palette {
	return g.palette
}

// Star reseeds src at cell and decides whether a star exists there. When one
// does, it is placed at pos and expanded to depth. Existence, diameter and
// colour are drawn in that order regardless of depth, so shallow and full
// generation agree on them. An empty cell costs exactly one draw.
func (g *Generator) Star(src *lehmer.Source, cell space.Cell, pos space.Vec2, depth Depth) (space.Star, bool) {
	src.Reseed(cell.X, cell.Y)

	if src.Int(0, occupancyOdds) != 1 {
		return space.Star{}, false
	}

	diameter := src.Float(starDiameterMin, starDiameterMax)
	colorIndex := g.colorIndex(src)
	name := StarName(cell)

	star := space.Star{
		Cell: cell,
		Body: space.Body{
			Kind:       space.KindStar,
			Name:       name,
			Diameter:   diameter,
			Position:   pos,
			Color:      g.palette[colorIndex],
			ColorIndex: colorIndex,
		},
	}

	if depth == DepthFull {
		star.Children = g.planets(src, name, pos)
	}

	return star, true
}

// planets draws the planet count and, only when it is non-zero, one base
// distance shared by every planet of the star.
func (g *Generator) planets(src *lehmer.Source, starName string, origin space.Vec2) []space.Body {
	count := int(src.Int(0, maxPlanets))
	if count == 0 {
		return []space.Body{}
	}

	base := src.Float(planetBaseMin, planetBaseMax)

	planets := make([]space.Body, 0, count)
	for i := 0; i < count; i++ {
		planets = append(planets, g.planet(src, PlanetName(starName, i), origin, base))
	}
	return planets
}

// planet draws the orbit offset, diameter and colour, then the planet's moons
// before the next planet is touched.
func (g *Generator) planet(src *lehmer.Source, name string, origin space.Vec2, base float64) space.Body {
	radius := base + src.Float(planetOffsetMin, planetOffsetMax)
	diameter := src.Float(planetDiameterMin, planetDiameterMax)
	colorIndex := g.colorIndex(src)
	pos := g.orbit(origin, radius)

	return space.Body{
		Kind:        space.KindPlanet,
		Name:        name,
		Diameter:    diameter,
		Position:    pos,
		Color:       g.palette[colorIndex],
		ColorIndex:  colorIndex,
		OrbitRadius: radius,
		PlanetType:  Classify(diameter, radius),
		Children:    g.moons(src, name, pos),
	}
}

func (g *Generator) moons(src *lehmer.Source, planetName string, origin space.Vec2) []space.Body {
	count := int(src.Int(0, maxMoons))
	if count == 0 {
		return []space.Body{}
	}

	base := src.Float(moonBaseMin, moonBaseMax)

	moons := make([]space.Body, 0, count)
	for i := 0; i < count; i++ {
		radius := base + src.Float(moonOffsetMin, moonOffsetMax)
		diameter := src.Float(moonDiameterMin, moonDiameterMax)
		colorIndex := g.colorIndex(src)

		moons = append(moons, space.Body{
			Kind:        space.KindMoon,
			Name:        MoonName(planetName, i),
			Diameter:    diameter,
			Position:    g.orbit(origin, radius),
			Color:       g.palette[colorIndex],
			ColorIndex:  colorIndex,
			OrbitRadius: radius,
		})
	}
	return moons
}

func (g *Generator) colorIndex(src *lehmer.Source) int {
	return int(src.Int(0, uint32(len(g.palette))))
}

func (g *Generator) orbit(origin space.Vec2, radius float64) space.Vec2 {
	return origin.Add(g.bearing.Scale(radius))
}
