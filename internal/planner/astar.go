package planner

import (
	"container/heap"
	"context"
	"math"
	"sort"

	"asv-planner/internal/logging"
	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
)

// AStarPlanner runs an anytime A* over Dubins edges: it keeps improving
// its best goal-reaching vertex until the deadline and returns the best
// plan found so far.
type AStarPlanner struct {
	cfg     Config
	arena   *arena
	open    *vertexQueue
	samples []nav.State
	tried   map[vertexID]map[int]struct{}
	best    vertexID

	expandedCount  int
	iterationCount int
}

// NewAStarPlanner returns a planner ready for repeated Plan calls.
func NewAStarPlanner() *AStarPlanner {
	return &AStarPlanner{}
}

// Plan searches for a trajectory that covers every ribbon, starting from
// start, within timeRemaining wall seconds. It returns an empty plan only
// if nothing feasible was found before the deadline. A non-empty
// previousPlan that is still feasible is kept as a warm-start candidate.
func (p *AStarPlanner) Plan(ctx context.Context, rm *ribbon.Manager, start nav.State,
	cfg Config, previousPlan nav.Plan, timeRemaining float64) (nav.Plan, error) {

	if err := cfg.Validate(); err != nil {
		return nav.Plan{}, err
	}
	log := logging.FromContext(ctx)

	p.cfg = cfg
	endTime := cfg.Now() + timeRemaining
	rm.ChangeHeuristicIfTooManyRibbons()

	p.arena = newArena()
	p.open = &vertexQueue{arena: p.arena}
	p.samples = p.samples[:0]
	p.tried = make(map[vertexID]map[int]struct{})
	p.best = noVertex
	p.expandedCount = 0
	p.iterationCount = 0

	start.Speed = cfg.MaxSpeed // h assumes the best achievable progress rate
	sampler := newStateSampler(cfg.seed(), start, cfg.MaxSpeed, rm)
	startV := p.arena.root(start, rm)
	p.arena.computeApproxToGo(startV, cfg.MaxSpeed)

	ribbonSamples := rm.FindStatesOnRibbonsOnCircle(start, cfg.CoverageTurningRadius*2+1)
	nearSamples := rm.FindNearStatesOnRibbons(start, cfg.CoverageTurningRadius)

	// collision check the old plan; a single infeasible edge discards it
	lastPlanEnd := startV
	for _, arc := range previousPlan.Arcs() {
		child := p.arena.connectArc(lastPlanEnd, arc)
		p.arena.computeTrueCost(child, &p.cfg)
		if p.arena.get(child).edge.infeasible() {
			lastPlanEnd = startV
			break
		}
		p.arena.computeApproxToGo(child, cfg.MaxSpeed)
		lastPlanEnd = child
	}

	for cfg.Now() < endTime {
		p.open.clear()
		if p.best != noVertex && p.arena.get(p.best).f() <= p.arena.get(startV).f() {
			log.Debug("found best possible plan, assuming heuristic admissibility")
			cfg.Visualizer.Note("best possible plan found")
			break
		}
		cfg.Visualizer.BeginIteration(p.iterationCount)
		p.visualize("start", startV)
		p.push(startV)
		if lastPlanEnd != startV {
			p.push(lastPlanEnd)
		}
		// expand the start vertex toward nearby ribbons up front so the
		// vehicle is not forced to loop back around
		p.expandToCoverSpecificSamples(startV, ribbonSamples, true)
		p.expandToCoverSpecificSamples(startV, nearSamples, true)
		// first iteration seeds the pool; later ones grow it linearly
		p.addSamples(sampler, InitialSamples)
		v, found := p.aStar(endTime)
		if found && (p.best == noVertex || p.arena.get(v).f() < p.arena.get(p.best).f()) {
			p.best = v
			p.visualize("goal", v)
		}
		p.iterationCount++
	}

	log.Debug("search finished",
		"samples", len(p.samples), "expanded", p.expandedCount, "iterations", p.iterationCount)
	cfg.Visualizer.Note("%d total samples, %d expanded in %d iterations",
		len(p.samples), p.expandedCount, p.iterationCount)

	if p.best == noVertex {
		log.Debug("failed to find a plan")
		return nav.Plan{}, nil
	}
	return p.arena.tracePlan(p.best), nil
}

// aStar runs the inner search until it reaches a goal vertex better than
// the current best, drains the queue, or hits the deadline.
func (p *AStarPlanner) aStar(endTime float64) (vertexID, bool) {
	if p.open.Len() == 0 {
		return noVertex, false
	}
	v := heap.Pop(p.open).(vertexID)
	for p.cfg.Now() < endTime {
		if p.goalCondition(v) && (p.best == noVertex || p.arena.get(v).f() < p.arena.get(p.best).f()) {
			return v, true
		}
		p.expand(v)
		if p.open.Len() == 0 {
			return noVertex, false
		}
		v = heap.Pop(p.open).(vertexID)
	}
	return noVertex, false
}

func (p *AStarPlanner) goalCondition(v vertexID) bool {
	return p.arena.get(v).ribbons.Done()
}

// expand produces up to K children from the nearest untried samples, plus
// ribbon-directed coverage edges when coverage turns are enabled.
func (p *AStarPlanner) expand(v vertexID) {
	p.expandedCount++
	state := p.arena.get(v).state

	tried := p.tried[v]
	if tried == nil {
		tried = make(map[int]struct{})
		p.tried[v] = tried
	}
	type cand struct {
		idx  int
		dist float64
	}
	cands := make([]cand, 0, len(p.samples))
	for i, s := range p.samples {
		if _, ok := tried[i]; ok {
			continue
		}
		cands = append(cands, cand{i, state.DistanceTo(s)})
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
	n := p.cfg.BranchingFactor
	if n > len(cands) {
		n = len(cands)
	}
	for _, c := range cands[:n] {
		tried[c.idx] = struct{}{}
		p.connectAndPush(v, p.samples[c.idx], p.cfg.TurningRadius, false)
	}

	if p.cfg.CoverageTurningRadius > 0 {
		rm := p.arena.get(v).ribbons
		onCircle := rm.FindStatesOnRibbonsOnCircle(state, p.cfg.CoverageTurningRadius*2+1)
		p.expandToCoverSpecificSamples(v, onCircle, true)
	}
}

// expandToCoverSpecificSamples connects v to each sample with the coverage
// turning radius, crediting coverage along the edges.
func (p *AStarPlanner) expandToCoverSpecificSamples(v vertexID, samples []nav.State, coverageAllowed bool) {
	if p.cfg.CoverageTurningRadius <= 0 {
		return
	}
	for _, s := range samples {
		s.Speed = p.cfg.MaxSpeed
		p.connectAndPush(v, s, p.cfg.CoverageTurningRadius, coverageAllowed)
	}
}

func (p *AStarPlanner) connectAndPush(parent vertexID, to nav.State, radius float64, coverageAllowed bool) {
	child, err := p.arena.connect(parent, to, radius, coverageAllowed)
	if err != nil {
		return
	}
	p.arena.computeTrueCost(child, &p.cfg)
	if p.arena.get(child).edge.infeasible() {
		return
	}
	p.arena.computeApproxToGo(child, p.cfg.MaxSpeed)
	p.push(child)
}

// push adds a vertex to the open set unless it provably cannot beat the
// current best.
func (p *AStarPlanner) push(v vertexID) {
	if math.IsInf(p.arena.get(v).f(), 1) {
		return
	}
	if p.best != noVertex && p.arena.get(v).f() >= p.arena.get(p.best).f() {
		return
	}
	heap.Push(p.open, v)
}

func (p *AStarPlanner) addSamples(g *stateSampler, n int) {
	for i := 0; i < n; i++ {
		p.samples = append(p.samples, g.sample())
	}
}

func (p *AStarPlanner) visualize(tag string, v vertexID) {
	vx := p.arena.get(v)
	p.cfg.Visualizer.Vertex(tag, vx.state, vx.f(), vx.g, vx.h)
}

// vertexQueue is a min-f heap over arena indices, breaking f ties toward
// the smaller h.
type vertexQueue struct {
	arena *arena
	ids   []vertexID
}

func (q *vertexQueue) Len() int { return len(q.ids) }

func (q *vertexQueue) Less(i, j int) bool {
	a, b := q.arena.get(q.ids[i]), q.arena.get(q.ids[j])
	if a.f() == b.f() {
		return a.h < b.h
	}
	return a.f() < b.f()
}

func (q *vertexQueue) Swap(i, j int) { q.ids[i], q.ids[j] = q.ids[j], q.ids[i] }

func (q *vertexQueue) Push(x any) { q.ids = append(q.ids, x.(vertexID)) }

func (q *vertexQueue) Pop() any {
	last := q.ids[len(q.ids)-1]
	q.ids = q.ids[:len(q.ids)-1]
	return last
}

func (q *vertexQueue) clear() { q.ids = q.ids[:0] }
