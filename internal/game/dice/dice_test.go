package dice_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/skirmish/internal/game/dice"
)

// fixedSrc returns the same values for every draw.
type fixedSrc struct {
	i int
	f float64
}

func (s fixedSrc) Intn(_ int) int    { return s.i }
func (s fixedSrc) Float64() float64 { return s.f }

// TestCryptoSource_Intn_InRange verifies the postcondition:
// every value returned by Intn(6) is in [0, 6).
func TestCryptoSource_Intn_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Intn(6)
		assert.GreaterOrEqual(t, v, 0)
		assert.Less(t, v, 6)
	}
}

// TestCryptoSource_Intn_PanicsOnZero verifies the precondition:
// Intn panics when called with n <= 0.
func TestCryptoSource_Intn_PanicsOnZero(t *testing.T) {
	src := dice.NewCryptoSource()
	assert.Panics(t, func() { src.Intn(0) })
}

func TestCryptoSource_Float64_InRange(t *testing.T) {
	src := dice.NewCryptoSource()
	for i := 0; i < 1000; i++ {
		v := src.Float64()
		assert.GreaterOrEqual(t, v, 0.0)
		assert.Less(t, v, 1.0)
	}
}

// TestSeededSource_Reproducible verifies two sources with the same seed agree draw for draw.
func TestSeededSource_Reproducible(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		seed := rapid.Int64().Draw(rt, "seed")
		a := dice.NewSeededSource(seed)
		b := dice.NewSeededSource(seed)
		for i := 0; i < 20; i++ {
			assert.Equal(rt, a.Float64(), b.Float64())
			assert.Equal(rt, a.Intn(100), b.Intn(100))
		}
	})
}

// TestSeededSource_ZeroSeedUsable verifies a zero seed behaves like seed 1.
func TestSeededSource_ZeroSeedUsable(t *testing.T) {
	a := dice.NewSeededSource(0)
	b := dice.NewSeededSource(1)
	assert.Equal(t, a.Float64(), b.Float64())
}

func TestSeededSource_Intn_PanicsOnZero(t *testing.T) {
	assert.Panics(t, func() { dice.NewSeededSource(7).Intn(0) })
}

func TestUniform_Range(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		f := rapid.Float64Range(0, 0.999999).Draw(rt, "f")
		v := dice.Uniform(fixedSrc{f: f}, 0.85, 1.15)
		assert.GreaterOrEqual(rt, v, 0.85)
		assert.Less(rt, v, 1.15)
	})
}

func TestChance_ClampsProbability(t *testing.T) {
	assert.True(t, dice.Chance(fixedSrc{f: 0.999}, 1.5))
	assert.False(t, dice.Chance(fixedSrc{f: 0}, -0.2))
	assert.True(t, dice.Chance(fixedSrc{f: 0.29}, 0.3))
	assert.False(t, dice.Chance(fixedSrc{f: 0.3}, 0.3))
}

func TestClamp01(t *testing.T) {
	assert.Equal(t, 0.0, dice.Clamp01(-3))
	assert.Equal(t, 1.0, dice.Clamp01(2))
	assert.Equal(t, 0.4, dice.Clamp01(0.4))
}

// TestLoggedSource_LogsDraws verifies every draw is logged at debug level with its result.
func TestLoggedSource_LogsDraws(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	src := dice.NewLoggedSource(fixedSrc{i: 3, f: 0.25}, zap.New(core))

	assert.Equal(t, 3, src.Intn(6))
	assert.Equal(t, 0.25, src.Float64())

	entries := logs.FilterMessage("dice draw").All()
	require.Len(t, entries, 2)
	assert.Equal(t, "intn", entries[0].ContextMap()["kind"])
	assert.Equal(t, int64(3), entries[0].ContextMap()["result"])
	assert.Equal(t, 0.25, entries[1].ContextMap()["result"])
}

func TestNewLoggedSource_PanicsOnNil(t *testing.T) {
	assert.Panics(t, func() { dice.NewLoggedSource(nil, zap.NewNop()) })
	assert.Panics(t, func() { dice.NewLoggedSource(fixedSrc{}, nil) })
}
