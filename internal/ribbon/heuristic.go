package ribbon

import (
	"math"

	"asv-planner/internal/nav"
)

// ApproxDistanceUntilDone estimates the distance the vehicle still has to
// travel to cover every ribbon, from the given state, using the selected
// heuristic. The estimate is a lower bound for the point metrics.
func (m *Manager) ApproxDistanceUntilDone(from nav.State) float64 {
	idxs := m.uncoveredIndices()
	if len(idxs) == 0 {
		return 0
	}
	switch m.heuristic {
	case MaxDistance:
		return m.maxDistance(from, idxs)
	case TspPointNoSplitAllRibbons:
		return m.tsp(from, m.boundExact(from, idxs), pointMetric{})
	case TspPointNoSplitKRibbons:
		return m.tsp(from, m.nearestUncovered(from, m.k), pointMetric{})
	case TspDubinsNoSplitAllRibbons:
		return m.tsp(from, m.boundExact(from, idxs), dubinsMetric{radius: m.turningRadius})
	case TspDubinsNoSplitKRibbons:
		return m.tsp(from, m.nearestUncovered(from, m.k), dubinsMetric{radius: m.turningRadius})
	}
	return m.maxDistance(from, idxs)
}

func (m *Manager) uncoveredIndices() []int {
	var out []int
	for i := range m.ribbons {
		if !m.ribbons[i].Done() {
			out = append(out, i)
		}
	}
	return out
}

// boundExact caps the ribbon set fed to the exact TSP. Normally
// ChangeHeuristicIfTooManyRibbons has already downgraded the heuristic;
// this keeps the evaluation bounded if a caller skipped that.
func (m *Manager) boundExact(from nav.State, idxs []int) []int {
	if len(idxs) <= maxRibbonsForExactTSP {
		return idxs
	}
	return m.nearestUncovered(from, maxRibbonsForExactTSP)
}

// maxDistance is the cheapest lower bound: the farthest uncovered ribbon
// endpoint must eventually be reached.
func (m *Manager) maxDistance(from nav.State, idxs []int) float64 {
	var best float64
	for _, i := range idxs {
		r := &m.ribbons[i]
		lo, hi, ok := r.uncoveredExtent()
		if !ok {
			continue
		}
		for _, p := range []float64{lo, hi} {
			x, y := r.PointAt(p)
			d := math.Hypot(x-from.X, y-from.Y)
			if d > best {
				best = d
			}
		}
	}
	return best
}

// metric scores the approach from an oriented state to a ribbon entry.
type metric interface {
	approach(from nav.State, to nav.State) float64
}

type pointMetric struct{}

func (pointMetric) approach(from, to nav.State) float64 {
	return from.DistanceTo(to)
}

type dubinsMetric struct {
	radius float64
}

func (d dubinsMetric) approach(from, to nav.State) float64 {
	if d.radius <= 0 {
		return from.DistanceTo(to)
	}
	p, err := nav.ShortestPath(from, to, d.radius)
	if err != nil {
		return from.DistanceTo(to)
	}
	return p.Length()
}

// traversal is one way to sweep a ribbon's uncovered extent: enter at one
// end, exit at the other.
type traversal struct {
	entry, exit nav.State
	length      float64
}

func (m *Manager) traversals(idx int) [2]traversal {
	r := &m.ribbons[idx]
	lo, hi, _ := r.uncoveredExtent()
	x1, y1 := r.PointAt(lo)
	x2, y2 := r.PointAt(hi)
	fwd := r.Direction()
	rev := nav.NormalizeHeading(fwd + math.Pi)
	length := hi - lo
	return [2]traversal{
		{entry: nav.State{X: x1, Y: y1, Heading: fwd}, exit: nav.State{X: x2, Y: y2, Heading: fwd}, length: length},
		{entry: nav.State{X: x2, Y: y2, Heading: rev}, exit: nav.State{X: x1, Y: y1, Heading: rev}, length: length},
	}
}

// tsp solves the no-split ribbon ordering exactly over the given subset
// with a Held-Karp sweep: 2^n masks, two traversal directions per ribbon.
func (m *Manager) tsp(from nav.State, idxs []int, met metric) float64 {
	n := len(idxs)
	if n == 0 {
		return 0
	}
	travs := make([][2]traversal, n)
	for i, idx := range idxs {
		travs[i] = m.traversals(idx)
	}
	const inf = math.MaxFloat64
	size := 1 << n
	dp := make([][]float64, size)
	for mask := range dp {
		dp[mask] = make([]float64, 2*n)
		for j := range dp[mask] {
			dp[mask][j] = inf
		}
	}
	for i := 0; i < n; i++ {
		for e := 0; e < 2; e++ {
			t := travs[i][e]
			dp[1<<i][2*i+e] = met.approach(from, t.entry) + t.length
		}
	}
	for mask := 1; mask < size; mask++ {
		for j := 0; j < 2*n; j++ {
			cur := dp[mask][j]
			if cur == inf {
				continue
			}
			exit := travs[j/2][j%2].exit
			for i := 0; i < n; i++ {
				if mask&(1<<i) != 0 {
					continue
				}
				next := mask | 1<<i
				for e := 0; e < 2; e++ {
					t := travs[i][e]
					cost := cur + met.approach(exit, t.entry) + t.length
					if cost < dp[next][2*i+e] {
						dp[next][2*i+e] = cost
					}
				}
			}
		}
	}
	best := inf
	for _, c := range dp[size-1] {
		if c < best {
			best = c
		}
	}
	if best == inf {
		return 0
	}
	return best
}
