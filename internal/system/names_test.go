package system

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"starfield-server/internal/space"
)

func TestStarNameIsPureFunctionOfKey(t *testing.T) {
	a := StarName(space.Cell{X: 6, Y: 32})
	assert.Equal(t, a, StarName(space.Cell{X: 6, Y: 32}))
	assert.Equal(t, a, StarName(space.Cell{X: 6 - 0x10000, Y: 32}))
	assert.NotEqual(t, a, StarName(space.Cell{X: 6, Y: 33}))
}

func TestPlanetAndMoonNames(t *testing.T) {
	assert.Equal(t, "Vega III", PlanetName("Vega", 2))
	assert.Equal(t, "Vega 11", PlanetName("Vega", 10))
	assert.Equal(t, "Vega IIIb", MoonName("Vega III", 1))
}

func TestClassify(t *testing.T) {
	assert.Equal(t, space.PlanetTypeGasGiant, Classify(18, 100))
	assert.Equal(t, space.PlanetTypeVolcanic, Classify(8, 120))
	assert.Equal(t, space.PlanetTypeIce, Classify(8, 400))
	assert.Equal(t, space.PlanetTypeBarren, Classify(5, 200))
	assert.Equal(t, space.PlanetTypeTerrestrial, Classify(10, 200))
}
