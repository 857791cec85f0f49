package ribbon

import (
	"math"
	"sort"

	"asv-planner/internal/nav"
)

// Heuristic selects how the manager estimates distance-to-completion.
type Heuristic int

const (
	MaxDistance Heuristic = iota
	TspPointNoSplitAllRibbons
	TspPointNoSplitKRibbons
	TspDubinsNoSplitAllRibbons
	TspDubinsNoSplitKRibbons
)

// maxRibbonsForExactTSP bounds the all-ribbons TSP variants; above this the
// manager downgrades to the K-ribbons counterpart.
const maxRibbonsForExactTSP = 8

// Manager holds the mission's uncovered ribbons and the selected
// completion heuristic.
type Manager struct {
	ribbons       []Ribbon
	heuristic     Heuristic
	turningRadius float64 // used by the Dubins heuristics
	k             int
}

// NewManager creates a manager with the given heuristic, Dubins heuristic
// turning radius, and K for the K-ribbons variants.
func NewManager(h Heuristic, turningRadius float64, k int) *Manager {
	if k < 1 {
		k = 1
	}
	return &Manager{heuristic: h, turningRadius: turningRadius, k: k}
}

// Add appends a ribbon between the two endpoints.
func (m *Manager) Add(x1, y1, x2, y2 float64) {
	r := New(x1, y1, x2, y2)
	if r.Length() < minimumRibbonLength {
		return
	}
	m.ribbons = append(m.ribbons, r)
}

// Cover marks the projection of (x, y) covered on the nearest ribbon,
// provided it lies within half the coverage width.
func (m *Manager) Cover(x, y float64) {
	best := -1
	bestDist := math.Inf(1)
	for i := range m.ribbons {
		if m.ribbons[i].Done() {
			continue
		}
		_, dist := m.ribbons[i].Project(x, y)
		if dist < bestDist {
			bestDist = dist
			best = i
		}
	}
	if best >= 0 {
		m.ribbons[best].CoverPoint(x, y)
	}
	m.dropDone()
}

// CoverBetween marks the sweep from (x1, y1) to (x2, y2) covered on every
// ribbon the sweep stays close to.
func (m *Manager) CoverBetween(x1, y1, x2, y2 float64) {
	for i := range m.ribbons {
		r := &m.ribbons[i]
		p1, d1 := r.Project(x1, y1)
		p2, d2 := r.Project(x2, y2)
		if d1 > width/2 || d2 > width/2 {
			continue
		}
		lo, hi := p1, p2
		if lo > hi {
			lo, hi = hi, lo
		}
		r.CoverInterval(lo-width/2, hi+width/2)
	}
	m.dropDone()
}

func (m *Manager) dropDone() {
	kept := m.ribbons[:0]
	for _, r := range m.ribbons {
		if !r.Done() {
			kept = append(kept, r)
		}
	}
	m.ribbons = kept
}

// Done reports whether every ribbon is fully covered.
func (m *Manager) Done() bool {
	for i := range m.ribbons {
		if !m.ribbons[i].Done() {
			return false
		}
	}
	return true
}

// SetHeuristic selects the completion heuristic.
func (m *Manager) SetHeuristic(h Heuristic) { m.heuristic = h }

// GetHeuristic returns the selected heuristic.
func (m *Manager) GetHeuristic() Heuristic { return m.heuristic }

// ChangeHeuristicIfTooManyRibbons downgrades the all-ribbons TSP variants
// to their K-ribbons counterparts when the exact TSP would be too large.
func (m *Manager) ChangeHeuristicIfTooManyRibbons() {
	if len(m.ribbons) <= maxRibbonsForExactTSP {
		return
	}
	switch m.heuristic {
	case TspPointNoSplitAllRibbons:
		m.heuristic = TspPointNoSplitKRibbons
	case TspDubinsNoSplitAllRibbons:
		m.heuristic = TspDubinsNoSplitKRibbons
	}
}

// Count returns the number of ribbons still being tracked.
func (m *Manager) Count() int { return len(m.ribbons) }

// Ribbons returns the tracked ribbons. Callers must not mutate them.
func (m *Manager) Ribbons() []Ribbon { return m.ribbons }

// TotalUncovered returns the total uncovered length across all ribbons.
func (m *Manager) TotalUncovered() float64 {
	var sum float64
	for i := range m.ribbons {
		sum += m.ribbons[i].RemainingLength()
	}
	return sum
}

// Clone returns a deep copy suitable for handing to a planning iteration.
func (m *Manager) Clone() *Manager {
	c := &Manager{heuristic: m.heuristic, turningRadius: m.turningRadius, k: m.k}
	c.ribbons = make([]Ribbon, len(m.ribbons))
	for i := range m.ribbons {
		c.ribbons[i] = m.ribbons[i].Clone()
	}
	return c
}

// FindStatesOnRibbonsOnCircle returns heading-aligned states where the
// circle of the given radius around center crosses uncovered ribbon
// portions. Each state points along its ribbon toward the longer uncovered
// remainder.
func (m *Manager) FindStatesOnRibbonsOnCircle(center nav.State, radius float64) []nav.State {
	if radius <= 0 {
		return nil
	}
	var out []nav.State
	for i := range m.ribbons {
		r := &m.ribbons[i]
		for _, sp := range r.uncoveredSpans() {
			for _, p := range circleCrossings(r, sp, center.X, center.Y, radius) {
				x, y := r.PointAt(p)
				heading := r.Direction()
				// point toward the larger remainder of the span
				if p-sp.lo > sp.hi-p {
					heading = nav.NormalizeHeading(heading + math.Pi)
				}
				out = append(out, nav.State{X: x, Y: y, Heading: heading, Time: nav.TimeUnset})
			}
		}
	}
	return out
}

// FindNearStatesOnRibbons returns an entry state at each end of a ribbon's
// uncovered portion that lies within radius of center, pointing toward the
// other end; a portion with both ends in range yields two states.
func (m *Manager) FindNearStatesOnRibbons(center nav.State, radius float64) []nav.State {
	if radius <= 0 {
		return nil
	}
	var out []nav.State
	for i := range m.ribbons {
		r := &m.ribbons[i]
		lo, hi, ok := r.uncoveredExtent()
		if !ok {
			continue
		}
		for _, entry := range [2][2]float64{{lo, hi}, {hi, lo}} {
			x, y := r.PointAt(entry[0])
			if math.Hypot(x-center.X, y-center.Y) > radius {
				continue
			}
			heading := r.Direction()
			if entry[1] < entry[0] {
				heading = nav.NormalizeHeading(heading + math.Pi)
			}
			out = append(out, nav.State{X: x, Y: y, Heading: heading, Time: nav.TimeUnset})
		}
	}
	return out
}

// circleCrossings returns parameters within sp where the segment crosses
// the circle centered at (cx, cy).
func circleCrossings(r *Ribbon, sp span, cx, cy, radius float64) []float64 {
	l := r.Length()
	if l == 0 {
		return nil
	}
	dx, dy := (r.X2-r.X1)/l, (r.Y2-r.Y1)/l
	fx, fy := r.X1-cx, r.Y1-cy
	// |f + p*d|^2 = radius^2, d is unit length
	b := 2 * (fx*dx + fy*dy)
	c := fx*fx + fy*fy - radius*radius
	disc := b*b - 4*c
	if disc < 0 {
		return nil
	}
	sq := math.Sqrt(disc)
	var out []float64
	for _, p := range []float64{(-b - sq) / 2, (-b + sq) / 2} {
		if p >= sp.lo && p <= sp.hi {
			out = append(out, p)
		}
	}
	return out
}

// nearestUncovered returns the indices of the k ribbons whose uncovered
// extents start closest to the state.
func (m *Manager) nearestUncovered(from nav.State, k int) []int {
	type cand struct {
		idx  int
		dist float64
	}
	var cands []cand
	for i := range m.ribbons {
		r := &m.ribbons[i]
		lo, hi, ok := r.uncoveredExtent()
		if !ok {
			continue
		}
		x1, y1 := r.PointAt(lo)
		x2, y2 := r.PointAt(hi)
		d := math.Min(math.Hypot(x1-from.X, y1-from.Y), math.Hypot(x2-from.X, y2-from.Y))
		cands = append(cands, cand{i, d})
	}
	sort.Slice(cands, func(a, b int) bool { return cands[a].dist < cands[b].dist })
	if len(cands) > k {
		cands = cands[:k]
	}
	out := make([]int, len(cands))
	for i, c := range cands {
		out[i] = c.idx
	}
	return out
}
