package lehmer

import "fmt"

const (
	increment   = 0xe120fc15
	multiplier1 = 0x4a39b70d
	multiplier2 = 0x12fad5c9
)

// Normalization selects the divisor Float uses to scale a 32-bit draw.
type Normalization string

const (
	// NormalizationParity divides by 0x7FFFFFFF. A draw above 2^31-1 maps past
	// max, so Float can return values up to roughly min + 2*(max-min). The
	// division is float64 with the exact divisor; single-precision math
	// rounds it to 2^31, so low bits can differ from such renderers.
	NormalizationParity Normalization = "parity"
	// NormalizationUnit divides by 2^32 and keeps Float inside [min, max).
	NormalizationUnit Normalization = "unit"
)

func (n Normalization) divisor() float64 {
	if n == NormalizationUnit {
		return 0x100000000
	}
	return 0x7FFFFFFF
}

// Valid reports whether n names a known normalization.
func (n Normalization) Valid() bool {
	return n == NormalizationParity || n == NormalizationUnit
}

// Source is a reseedable counter-based generator. It is not safe for
// concurrent use: the order of draws is part of what it produces.
type Source struct {
	counter       int64
	draws         int
	normalization Normalization
}

// New returns a Source using parity normalization.
func New() *Source {
	return NewWithNormalization(NormalizationParity)
}

func NewWithNormalization(n Normalization) *Source {
	return &Source{normalization: n}
}

// Key packs the low 16 bits of x and y into the 32-bit seed key. Higher bits
// are discarded, so cells 65536 apart on either axis share a key.
func Key(x, y int64) int64 {
	return (x&0xFFFF)<<16 | (y & 0xFFFF)
}

// Reseed sets the counter from the cell coordinate and resets the draw count.
func (s *Source) Reseed(x, y int64) {
	s.counter = Key(x, y)
	s.draws = 0
}

func (s *Source) Normalization() Normalization {
	if s.normalization == "" {
		return NormalizationParity
	}
	return s.normalization
}

func (s *Source) Counter() int64 {
	return s.counter
}

// Draws returns the number of values drawn since the last Reseed.
func (s *Source) Draws() int {
	return s.draws
}

// Next advances the counter and mixes it into a 32-bit value.
func (s *Source) Next() uint32 {
	s.draws++
	s.counter += increment

	tmp := s.counter * multiplier1
	m1 := (tmp >> 32) ^ tmp
	tmp = m1 * multiplier2
	m2 := (tmp >> 32) ^ tmp

	return uint32(m2)
}

// Int returns a value in [min, max). It panics unless max > min.
func (s *Source) Int(min, max uint32) uint32 {
	if max <= min {
		panic(fmt.Sprintf("lehmer: Int requires max > min, got min=%d max=%d", min, max))
	}
	return s.Next()%(max-min) + min
}

// Float scales one draw onto [min, max) using the configured normalization.
func (s *Source) Float(min, max float64) float64 {
	return float64(s.Next())/s.normalization.divisor()*(max-min) + min
}
