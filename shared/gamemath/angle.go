package gamemath

import "math"

// Repeat wraps t into [0, length).
func Repeat(t, length float64) float64 {
	return Clamp(t-math.Floor(t/length)*length, 0, length)
}

// DeltaAngle returns the shortest signed difference between two angles in
// degrees, in (-180, 180].
func DeltaAngle(current, target float64) float64 {
	delta := Repeat(target-current, 360)
	if delta > 180 {
		delta -= 360
	}
	return delta
}

// SmoothDamp moves current toward target with a critically damped spring.
// velocity carries state between calls and is updated in place.
func SmoothDamp(current, target float64, velocity *float64, smoothTime, maxSpeed, dt float64) float64 {
	smoothTime = math.Max(0.0001, smoothTime)
	omega := 2 / smoothTime

	x := omega * dt
	decay := 1 / (1 + x + 0.48*x*x + 0.235*x*x*x)

	change := current - target
	originalTarget := target

	maxChange := maxSpeed * smoothTime
	change = Clamp(change, -maxChange, maxChange)
	target = current - change

	temp := (*velocity + omega*change) * dt
	*velocity = (*velocity - omega*temp) * decay
	output := target + (change+temp)*decay

	// Prevent overshooting.
	if (originalTarget-current > 0) == (output > originalTarget) {
		output = originalTarget
		if dt > 0 {
			*velocity = (output - originalTarget) / dt
		}
	}
	return output
}

// SmoothDampAngle is SmoothDamp for angles in degrees, taking the shortest
// way around.
func SmoothDampAngle(current, target float64, velocity *float64, smoothTime, dt float64) float64 {
	target = current + DeltaAngle(current, target)
	return SmoothDamp(current, target, velocity, smoothTime, math.Inf(1), dt)
}

// Heading returns the yaw in degrees of a planar vector, measured from the
// +Y axis toward +X.
func Heading(x, y float64) float64 {
	return math.Atan2(x, y) * 180 / math.Pi
}
