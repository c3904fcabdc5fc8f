package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDistanceMeters_SamePoint(t *testing.T) {
	d := DistanceMeters(12.9716, 77.5946, 12.9716, 77.5946)
	assert.Equal(t, 0.0, d)
}

func TestDistanceMeters_Symmetric(t *testing.T) {
	d1 := DistanceMeters(12.9716, 77.5946, 12.9750, 77.6000)
	d2 := DistanceMeters(12.9750, 77.6000, 12.9716, 77.5946)
	assert.InDelta(t, d1, d2, 1e-9)
}

func TestDistanceMeters_ReferencePairs(t *testing.T) {
	// 0.001 derajat lintang ≈ 111.19 m di mana pun
	d := DistanceMeters(12.9716, 77.5946, 12.9726, 77.5946)
	assert.InDelta(t, 111.19, d, 0.5)

	// 0.01 derajat lintang ≈ 1111.9 m
	d = DistanceMeters(0, 0, 0.01, 0)
	assert.InDelta(t, 1111.9, d, 2)

	// 1 derajat bujur di ekuator ≈ 111.19 km
	d = DistanceMeters(0, 0, 0, 1)
	assert.InDelta(t, 111195, d, 100)
}

func TestDistanceMeters_NonNegative(t *testing.T) {
	d := DistanceMeters(-33.8688, 151.2093, 40.7128, -74.0060)
	assert.Greater(t, d, 0.0)
}

func TestIsWithinProximity_DefaultThreshold(t *testing.T) {
	// default 100 m
	assert.True(t, IsWithinProximity(0))
	assert.True(t, IsWithinProximity(50))
	assert.True(t, IsWithinProximity(100))
	assert.False(t, IsWithinProximity(100.01))
	assert.False(t, IsWithinProximity(150))
}

func TestIsWithinProximity_ConfiguredThreshold(t *testing.T) {
	t.Setenv("ATTENDANCE_MAX_DISTANCE_METERS", "25")
	assert.True(t, IsWithinProximity(25))
	assert.False(t, IsWithinProximity(26))
}
