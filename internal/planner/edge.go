package planner

import (
	"math"

	"asv-planner/internal/nav"
)

// edge connects a parent vertex to its child along one or more Dubins
// arcs. Cost is finite iff the edge is feasible.
type edge struct {
	arcs            []nav.Arc
	coverageAllowed bool
	cost            float64
	computed        bool
}

func (e *edge) infeasible() bool { return e.computed && math.IsInf(e.cost, 1) }

// computeTrueCost integrates the edge: time at the configured penalty,
// map traversal cost, collision probability against tracked vessels, and
// coverage applied to the child's ribbon snapshot. The child's g follows
// from the parent's.
func (a *arena) computeTrueCost(id vertexID, cfg *Config) {
	v := a.get(id)
	parent := a.get(v.parent)
	e := &v.edge
	e.computed = true

	wm := cfg.wmap()
	var duration, mapCost, collisionSum float64
	prev := parent.state
	for _, arc := range e.arcs {
		duration += arc.Duration()
		steps := int(math.Ceil(arc.Duration() / dubinsIncrement))
		if steps < 1 {
			steps = 1
		}
		dt := arc.Duration() / float64(steps)
		for i := 1; i <= steps; i++ {
			s := arc.Interpolate(arc.Start.Speed * dt * float64(i))
			q := wm.Query(s.X, s.Y)
			if q.Blocked {
				e.cost = math.Inf(1)
				v.g = math.Inf(1)
				return
			}
			mapCost += q.Cost * dt
			if cfg.Obstacles != nil {
				collisionSum += cfg.Obstacles.CollisionDensityAt(s.X, s.Y, s.Time) * dt
			}
			// every edge sweeps coverage into the child's snapshot; the
			// coverageAllowed flag only selects the larger turning radius
			v.ribbons.CoverBetween(prev.X, prev.Y, s.X, s.Y)
			prev = s
		}
	}
	if collisionSum > maxCollisionProbability {
		e.cost = math.Inf(1)
		v.g = math.Inf(1)
		return
	}
	e.cost = timePenalty*duration + mapCost + collisionPenalty*collisionSum
	v.g = parent.g + e.cost
}
