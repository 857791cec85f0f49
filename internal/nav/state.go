// Package nav holds vehicle states and Dubins path geometry in the map frame.
package nav

import (
	"fmt"
	"math"
)

// TimeUnset marks a state whose time has not been established yet.
const TimeUnset = -1

// Tolerances for deciding whether two states describe the same pose.
const (
	positionTolerance = 0.5  // meters
	headingTolerance  = 0.25 // radians
)

// State is a vehicle configuration: position in meters (map frame), heading
// in radians (0 = east, counterclockwise positive), speed in m/s, and time
// in seconds on the mission clock.
type State struct {
	X       float64
	Y       float64
	Heading float64
	Speed   float64
	Time    float64
}

// NewState returns a state with the heading normalized to [0, 2π).
func NewState(x, y, heading, speed, t float64) State {
	return State{X: x, Y: y, Heading: NormalizeHeading(heading), Speed: speed, Time: t}
}

// NormalizeHeading wraps an angle into [0, 2π).
func NormalizeHeading(h float64) float64 {
	h = math.Mod(h, 2*math.Pi)
	if h < 0 {
		h += 2 * math.Pi
	}
	return h
}

// Push advances the state dt seconds along its heading at its speed.
func (s State) Push(dt float64) State {
	d := s.Speed * dt
	return State{
		X:       s.X + d*math.Cos(s.Heading),
		Y:       s.Y + d*math.Sin(s.Heading),
		Heading: s.Heading,
		Speed:   s.Speed,
		Time:    s.Time + dt,
	}
}

// DistanceTo returns the straight-line distance to o.
func (s State) DistanceTo(o State) float64 {
	return math.Hypot(o.X-s.X, o.Y-s.Y)
}

// HeadingTo returns the heading from s toward o.
func (s State) HeadingTo(o State) float64 {
	return NormalizeHeading(math.Atan2(o.Y-s.Y, o.X-s.X))
}

// HeadingDifference returns the smallest angle between the two headings,
// in [0, π].
func (s State) HeadingDifference(o State) float64 {
	d := math.Abs(NormalizeHeading(s.Heading) - NormalizeHeading(o.Heading))
	if d > math.Pi {
		d = 2*math.Pi - d
	}
	return d
}

// IsCoLocated reports whether o describes the same pose within tolerance.
// Time and speed are not compared.
func (s State) IsCoLocated(o State) bool {
	return s.DistanceTo(o) <= positionTolerance && s.HeadingDifference(o) <= headingTolerance
}

func (s State) String() string {
	return fmt.Sprintf("(%.2f, %.2f) hdg=%.2f spd=%.2f t=%.2f", s.X, s.Y, s.Heading, s.Speed, s.Time)
}
