package system

// Depth selects how far below the star generation goes.
type Depth int

const (
	// DepthShallow generates the star's own attributes only.
	DepthShallow Depth = iota
	// DepthFull generates the star, its planets and their moons.
	DepthFull
)

func (d Depth) String() string {
	if d == DepthFull {
		return "full"
	}
	return "shallow"
}

// Numeric ranges are half-open: [min, max).
const (
	occupancyOdds = 20

	starDiameterMin = 10
	starDiameterMax = 40

	maxPlanets        = 10
	planetBaseMin     = 60
	planetBaseMax     = 200
	planetOffsetMin   = 20
	planetOffsetMax   = 200
	planetDiameterMin = 4
	planetDiameterMax = 20

	maxMoons        = 5
	moonBaseMin     = 6
	moonBaseMax     = 20
	moonOffsetMin   = 10
	moonOffsetMax   = 100
	moonDiameterMin = 1
	moonDiameterMax = 5

	// orbitBearing is an angle in radians shared by every orbit.
	orbitBearing = 90.0
)
