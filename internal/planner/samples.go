package planner

import (
	"math"
	"math/rand"

	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
)

// InitialSamples is how many sampled states each outer anytime iteration
// adds to the pool.
const InitialSamples = 100

// ribbonBias is the fraction of samples drawn on uncovered ribbons rather
// than uniformly in the reachable disc.
const ribbonBias = 0.25

// stateSampler draws candidate states uniformly in the disc reachable
// within the planning horizon, biased toward uncovered ribbons. Seeded
// deterministic so runs are replayable.
type stateSampler struct {
	rng                    *rand.Rand
	minX, maxX, minY, maxY float64
	speed                  float64
	ribbons                *ribbon.Manager
}

func newStateSampler(seed int64, start nav.State, speed float64, rm *ribbon.Manager) *stateSampler {
	reach := speed * nav.TimeHorizon
	return &stateSampler{
		rng:     rand.New(rand.NewSource(seed)),
		minX:    start.X - reach,
		maxX:    start.X + reach,
		minY:    start.Y - reach,
		maxY:    start.Y + reach,
		speed:   speed,
		ribbons: rm,
	}
}

func (g *stateSampler) sample() nav.State {
	if g.ribbons != nil && g.ribbons.Count() > 0 && g.rng.Float64() < ribbonBias {
		if s, ok := g.sampleOnRibbon(); ok {
			return s
		}
	}
	cx, cy := (g.minX+g.maxX)/2, (g.minY+g.maxY)/2
	r := (g.maxX - g.minX) / 2 * math.Sqrt(g.rng.Float64())
	a := g.rng.Float64() * 2 * math.Pi
	return nav.State{
		X:       cx + r*math.Cos(a),
		Y:       cy + r*math.Sin(a),
		Heading: g.rng.Float64() * 2 * math.Pi,
		Speed:   g.speed,
		Time:    nav.TimeUnset,
	}
}

func (g *stateSampler) sampleOnRibbon() (nav.State, bool) {
	ribbons := g.ribbons.Ribbons()
	if len(ribbons) == 0 {
		return nav.State{}, false
	}
	r := &ribbons[g.rng.Intn(len(ribbons))]
	x, y := r.PointAt(g.rng.Float64() * r.Length())
	heading := r.Direction()
	if g.rng.Intn(2) == 0 {
		heading = nav.NormalizeHeading(heading + math.Pi)
	}
	return nav.State{X: x, Y: y, Heading: heading, Speed: g.speed, Time: nav.TimeUnset}, true
}
