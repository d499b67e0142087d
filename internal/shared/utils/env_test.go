package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("STARFIELD_TEST_VALUE", "7")
	t.Setenv("STARFIELD_TEST_BAD", "seven")

	assert.Equal(t, "7", GetEnv("STARFIELD_TEST_VALUE", "x"))
	assert.Equal(t, "x", GetEnv("STARFIELD_TEST_MISSING", "x"))
	assert.Equal(t, 7, GetEnvInt("STARFIELD_TEST_VALUE", 1))
	assert.Equal(t, 1, GetEnvInt("STARFIELD_TEST_BAD", 1))
	assert.Equal(t, 7.0, GetEnvFloat("STARFIELD_TEST_VALUE", 0.5))
	assert.Equal(t, 0.5, GetEnvFloat("STARFIELD_TEST_MISSING", 0.5))
}
