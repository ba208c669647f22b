package vmath

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFastRandDeterministic(t *testing.T) {
	a := NewFastRand(42)
	b := NewFastRand(42)
	for i := 0; i < 100; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestFastRandZeroSeed(t *testing.T) {
	r := NewFastRand(0)
	assert.NotZero(t, r.Next(), "zero seed must not lock xorshift at zero")
}

func TestFastRandIntRangeInclusive(t *testing.T) {
	r := NewFastRand(7)
	seenLo, seenHi := false, false
	for i := 0; i < 10000; i++ {
		v := r.IntRange(1, 4)
		assert.GreaterOrEqual(t, v, 1)
		assert.LessOrEqual(t, v, 4)
		seenLo = seenLo || v == 1
		seenHi = seenHi || v == 4
	}
	assert.True(t, seenLo)
	assert.True(t, seenHi)
	assert.Equal(t, 5, r.IntRange(5, 5))
}

func TestFastRandFloatRange(t *testing.T) {
	r := NewFastRand(99)
	for i := 0; i < 10000; i++ {
		v := r.FloatRange(-2, 3)
		assert.GreaterOrEqual(t, v, -2.0)
		assert.Less(t, v, 3.0)
	}
}

func TestVec2Normalize(t *testing.T) {
	n := V2(3, 4).Normalize()
	assert.InDelta(t, 0.6, n.X, 1e-12)
	assert.InDelta(t, 0.8, n.Y, 1e-12)
	assert.Equal(t, Vec2{}, Vec2{}.Normalize())
}

func TestVec2RoundedMag(t *testing.T) {
	assert.Equal(t, 0.0, V2(0.4, -0.4).RoundedMag())
	assert.InDelta(t, 5.0, V2(2.9, 4.1).RoundedMag(), 1e-12)
}

func TestVec2ClampMagnitude(t *testing.T) {
	v := V2(30, 40).ClampMagnitude(10)
	assert.InDelta(t, 10.0, v.Mag(), 1e-9)
	assert.Equal(t, V2(1, 1), V2(1, 1).ClampMagnitude(10))
}

func TestClampAndRound(t *testing.T) {
	assert.Equal(t, 1.0, Clamp(-5, 1, 3))
	assert.Equal(t, 3.0, Clamp(9, 1, 3))
	assert.Equal(t, 2.0, Clamp(2, 1, 3))
	assert.Equal(t, 2.0, Round(2.5))
	assert.Equal(t, 4.0, Round(3.5))
	assert.False(t, math.IsNaN(Dist(V2(0, 0), V2(1, 1))))
}
