// Package astro holds the low-cost astronomical approximations used by the
// almanac: sunrise and sunset, integer sidereal time, moon phase and season.
// Inputs and outputs are calendar.Time buffers mutated in place.
package astro

import "math"

// Observer represents a ground-based observer location.
type Observer struct {
	LatDeg float64 // Latitude in degrees (north positive)
	LonDeg float64 // Longitude in degrees (east positive)
	Name   string  // Optional name for the site
}

// Valid reports whether the coordinates are on the globe. NaN is invalid.
func (o Observer) Valid() bool {
	return math.Abs(o.LonDeg) <= 180 && math.Abs(o.LatDeg) <= 90
}

// degPerRad matches the constant the sun tables were fitted with.
const degPerRad = 57.295779513082322

// degToRad converts degrees to radians.
func degToRad(deg float64) float64 {
	return deg / degPerRad
}

// radToDeg converts radians to degrees.
func radToDeg(rad float64) float64 {
	return rad * degPerRad
}
