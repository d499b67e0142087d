package viewport

import (
	"starfield-server/internal/galaxy"
	"starfield-server/internal/lehmer"
	"starfield-server/internal/selection"
	"starfield-server/internal/space"
)

type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions holds one flag per held movement key.
type Directions struct {
	Up    bool `json:"up"`
	Down  bool `json:"down"`
	Left  bool `json:"left"`
	Right bool `json:"right"`
}

func (d *Directions) Set(dir Direction, held bool) {
	switch dir {
	case Up:
		d.Up = held
	case Down:
		d.Down = held
	case Left:
		d.Left = held
	case Right:
		d.Right = held
	}
}

// Advance moves pan by speed*dt along each held direction. Each flag is
// applied on its own, so opposing flags cancel out.
func Advance(pan space.Vec2, dirs Directions, speed, dt float64) space.Vec2 {
	step := speed * dt
	if dirs.Up {
		pan.Y -= step
	}
	if dirs.Down {
		pan.Y += step
	}
	if dirs.Left {
		pan.X -= step
	}
	if dirs.Right {
		pan.X += step
	}
	return pan
}

// PointerFromPixels converts a pixel position into sector units.
func PointerFromPixels(px, py, sectorPixels float64) space.Vec2 {
	return space.Vec2{X: px / sectorPixels, Y: py / sectorPixels}
}

// State is everything one viewer needs between ticks. It owns its source
// exclusively; a State must not be updated from two goroutines.
type State struct {
	Pan        space.Vec2
	Directions Directions
	Pointer    space.Vec2
	Clicked    bool
	Galaxy     galaxy.Galaxy
	Selected   *space.Star

	source   *lehmer.Source
	scanner  *galaxy.Scanner
	resolver *selection.Resolver
	speed    float64
}

func NewState(scanner *galaxy.Scanner, resolver *selection.Resolver, source *lehmer.Source, speed float64) *State {
	return &State{
		source:   source,
		scanner:  scanner,
		resolver: resolver,
		speed:    speed,
	}
}

// Update runs one fixed step: move, rescan the viewport, then resolve a
// pending click. A click over an empty cell clears the selection.
func (s *State) Update(dt float64) {
	s.Pan = Advance(s.Pan, s.Directions, s.speed, dt)

	s.Galaxy.Update(s.scanner, s.source, s.Pan)

	if s.Clicked {
		s.Selected = s.resolver.Resolve(s.source, s.Pointer, s.Pan)
	}
}

// Hovered returns the shallow star under the pointer, if any.
func (s *State) Hovered() *space.Star {
	sector := s.Pointer.Floor()
	for i := range s.Galaxy.Stars {
		if s.Galaxy.Stars[i].Position == sector {
			return &s.Galaxy.Stars[i]
		}
	}
	return nil
}
