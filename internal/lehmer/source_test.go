package lehmer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyPacksLowBits(t *testing.T) {
	assert.Equal(t, int64(5<<16|7), Key(5, 7))
	assert.Equal(t, int64(65566), Key(1, 30))
	assert.Equal(t, Key(5, 7), Key(5+0x10000, 7))
	assert.Equal(t, Key(5, 7), Key(5, 7-0x30000))
	assert.Equal(t, Key(0xFFFF, 0xFFFF), Key(-1, -1))
}

func TestNextGoldenSequence(t *testing.T) {
	src := New()
	src.Reseed(5, 7)

	want := []uint32{1567185172, 415024612, 2317090887, 3092243891, 1709581982}
	for i, w := range want {
		require.Equal(t, w, src.Next(), "draw %d", i)
	}
	assert.Equal(t, len(want), src.Draws())
}

func TestReseedRestartsSequence(t *testing.T) {
	src := New()
	src.Reseed(0, 0)
	first := src.Next()
	src.Next()
	src.Next()

	src.Reseed(0, 0)
	assert.Equal(t, 0, src.Draws())
	assert.Equal(t, first, src.Next())
	assert.Equal(t, uint32(2365105408), first)
}

func TestAliasedCellsShareSequence(t *testing.T) {
	a, b := New(), New()
	a.Reseed(12, 900)
	b.Reseed(12+3*0x10000, 900-0x10000)

	for i := 0; i < 32; i++ {
		require.Equal(t, a.Next(), b.Next())
	}
}

func TestIntRange(t *testing.T) {
	src := New()
	for x := int64(0); x < 40; x++ {
		src.Reseed(x, x*3)
		for i := 0; i < 50; i++ {
			v := src.Int(4, 11)
			require.GreaterOrEqual(t, v, uint32(4))
			require.Less(t, v, uint32(11))
		}
	}
}

func TestIntFirstDrawResidue(t *testing.T) {
	src := New()
	src.Reseed(5, 7)
	assert.Equal(t, uint32(1567185172%20), src.Int(0, 20))
}

func TestIntPanicsOnEmptyRange(t *testing.T) {
	src := New()
	assert.Panics(t, func() { src.Int(3, 3) })
	assert.Panics(t, func() { src.Int(5, 2) })
	assert.Equal(t, 0, src.Draws())
}

func TestFloatParityScaling(t *testing.T) {
	src := New()
	src.Reseed(5, 7)
	got := src.Float(10, 40)
	assert.InDelta(t, float64(1567185172)/0x7FFFFFFF*30+10, got, 1e-9)

	// A draw can reach 2^32-1, so parity values stay below min + 2*(max-min)
	// plus the tiny excess of 2^32-1 over 2*(2^31-1).
	upper := 10 + 30*(float64(0xFFFFFFFF)/0x7FFFFFFF)
	for x := int64(0); x < 100; x++ {
		src.Reseed(x, 1)
		for i := 0; i < 20; i++ {
			v := src.Float(10, 40)
			require.GreaterOrEqual(t, v, 10.0)
			require.LessOrEqual(t, v, upper)
		}
	}
}

func TestFloatUnitRange(t *testing.T) {
	src := NewWithNormalization(NormalizationUnit)
	for x := int64(0); x < 100; x++ {
		src.Reseed(x, 2)
		for i := 0; i < 20; i++ {
			v := src.Float(1, 5)
			require.GreaterOrEqual(t, v, 1.0)
			require.Less(t, v, 5.0)
		}
	}
}

func TestZeroValueSourceUsesParity(t *testing.T) {
	var zero Source
	zero.Reseed(5, 7)
	parity := New()
	parity.Reseed(5, 7)

	assert.Equal(t, NormalizationParity, zero.Normalization())
	assert.Equal(t, parity.Float(0, 1), zero.Float(0, 1))
}

func TestNormalizationValid(t *testing.T) {
	assert.True(t, NormalizationParity.Valid())
	assert.True(t, NormalizationUnit.Valid())
	assert.False(t, Normalization("fast").Valid())
}

func TestParityDivisorIsExact(t *testing.T) {
	assert.Equal(t, float64(2147483647), NormalizationParity.divisor())
	assert.NotEqual(t, float64(1<<31), NormalizationParity.divisor())
	assert.NotEqual(t, float64(float32(0x7FFFFFFF)), NormalizationParity.divisor())
	assert.Equal(t, float64(1<<32), NormalizationUnit.divisor())
}
