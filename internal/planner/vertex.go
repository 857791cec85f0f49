package planner

import (
	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
)

// vertexID indexes into the search arena. Vertices hold their parent as an
// index, so the whole tree is freed when the arena goes out of scope.
type vertexID int32

const noVertex vertexID = -1

type vertex struct {
	state   nav.State
	ribbons *ribbon.Manager // snapshot of remaining coverage at this vertex
	parent  vertexID
	edge    edge // edge from parent; zero value for roots
	g       float64
	h       float64
}

func (v *vertex) f() float64 { return v.g + v.h }

// arena owns every vertex allocated during one plan() call.
type arena struct {
	vs []vertex
}

func newArena() *arena {
	return &arena{vs: make([]vertex, 0, 1024)}
}

func (a *arena) get(id vertexID) *vertex { return &a.vs[id] }

func (a *arena) len() int { return len(a.vs) }

// root allocates a parentless vertex with zero accrued cost.
func (a *arena) root(s nav.State, rm *ribbon.Manager) vertexID {
	a.vs = append(a.vs, vertex{state: s, ribbons: rm, parent: noVertex})
	return vertexID(len(a.vs) - 1)
}

// connect allocates a child whose edge is the Dubins path from the parent
// state to the given state at the given radius. The child's ribbon
// snapshot is cloned from the parent; coverage is applied when the edge's
// true cost is computed.
func (a *arena) connect(parent vertexID, to nav.State, radius float64, coverageAllowed bool) (vertexID, error) {
	p := a.get(parent)
	path, err := nav.ShortestPath(p.state, to, radius)
	if err != nil {
		return noVertex, err
	}
	arcs := path.Arcs(p.state.Speed)
	return a.attach(parent, arcs, to.Speed, coverageAllowed), nil
}

// connectArc attaches a child along an existing arc, used to re-validate a
// previous plan from the current start vertex.
func (a *arena) connectArc(parent vertexID, arc nav.Arc) vertexID {
	return a.attach(parent, []nav.Arc{arc}, arc.Start.Speed, false)
}

func (a *arena) attach(parent vertexID, arcs []nav.Arc, speed float64, coverageAllowed bool) vertexID {
	p := a.get(parent)
	end := p.state
	if len(arcs) > 0 {
		end = arcs[len(arcs)-1].End()
	}
	end.Speed = speed
	v := vertex{
		state:   end,
		ribbons: p.ribbons.Clone(),
		parent:  parent,
		edge:    edge{arcs: arcs, coverageAllowed: coverageAllowed},
	}
	a.vs = append(a.vs, v)
	return vertexID(len(a.vs) - 1)
}

// computeApproxToGo fills the vertex's cost-to-go estimate from its ribbon
// snapshot, in time units at the given speed.
func (a *arena) computeApproxToGo(id vertexID, speed float64) {
	v := a.get(id)
	if speed <= 0 {
		v.h = 0
		return
	}
	v.h = timePenalty * v.ribbons.ApproxDistanceUntilDone(v.state) / speed
}

// tracePlan concatenates parent edges from the root down to id.
func (a *arena) tracePlan(id vertexID) nav.Plan {
	var chain []vertexID
	for cur := id; cur != noVertex; cur = a.get(cur).parent {
		chain = append(chain, cur)
	}
	var plan nav.Plan
	for i := len(chain) - 1; i >= 0; i-- {
		plan.AppendAll(a.get(chain[i]).edge.arcs)
	}
	return plan
}
