package nav

import (
	"errors"
	"math"
)

// PathType enumerates the six Dubins words.
type PathType int

const (
	LSL PathType = iota
	LSR
	RSL
	RSR
	RLR
	LRL
)

// segment curvature signs per word: +1 left, -1 right, 0 straight.
var pathSegments = map[PathType][3]int{
	LSL: {1, 0, 1},
	LSR: {1, 0, -1},
	RSL: {-1, 0, 1},
	RSR: {-1, 0, -1},
	RLR: {-1, 1, -1},
	LRL: {1, -1, 1},
}

// ErrNoDubinsPath is returned when no word admits a solution, which only
// happens for degenerate inputs (non-positive radius).
var ErrNoDubinsPath = errors.New("no dubins path between states")

// Path is a Dubins shortest path between two oriented points. Segment
// lengths are stored normalized by the turning radius.
type Path struct {
	Start   State
	Radius  float64
	Type    PathType
	lengths [3]float64
}

// Length returns the total path length in meters.
func (p Path) Length() float64 {
	return (p.lengths[0] + p.lengths[1] + p.lengths[2]) * p.Radius
}

// Arcs converts the path into timed arcs traversed at the given speed,
// starting at the path's start time. Zero-length segments are dropped.
func (p Path) Arcs(speed float64) []Arc {
	arcs := make([]Arc, 0, 3)
	segs := pathSegments[p.Type]
	cur := p.Start
	cur.Speed = speed
	for i := 0; i < 3; i++ {
		length := p.lengths[i] * p.Radius
		if length <= 1e-9 {
			continue
		}
		var curvature float64
		if segs[i] != 0 {
			curvature = float64(segs[i]) / p.Radius
		}
		a := Arc{Start: cur, Curvature: curvature, Length: length}
		arcs = append(arcs, a)
		cur = a.End()
	}
	return arcs
}

// ShortestPath solves the Dubins problem from one oriented point to another
// for a vehicle of the given minimum turning radius, picking the shortest
// feasible of the six words.
func ShortestPath(from, to State, radius float64) (Path, error) {
	if radius <= 0 {
		return Path{}, ErrNoDubinsPath
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	d := math.Hypot(dx, dy) / radius
	theta := math.Atan2(dy, dx)
	alpha := NormalizeHeading(from.Heading - theta)
	beta := NormalizeHeading(to.Heading - theta)

	best := Path{Start: from, Radius: radius}
	bestLen := math.Inf(1)
	for _, t := range []PathType{LSL, LSR, RSL, RSR, RLR, LRL} {
		lengths, ok := solveWord(t, alpha, beta, d)
		if !ok {
			continue
		}
		total := lengths[0] + lengths[1] + lengths[2]
		if total < bestLen {
			bestLen = total
			best.Type = t
			best.lengths = lengths
		}
	}
	if math.IsInf(bestLen, 1) {
		return Path{}, ErrNoDubinsPath
	}
	return best, nil
}

func mod2pi(a float64) float64 { return NormalizeHeading(a) }

func solveWord(t PathType, alpha, beta, d float64) ([3]float64, bool) {
	sa, ca := math.Sin(alpha), math.Cos(alpha)
	sb, cb := math.Sin(beta), math.Cos(beta)
	cab := math.Cos(alpha - beta)

	switch t {
	case LSL:
		pSq := 2 + d*d - 2*cab + 2*d*(sa-sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		tmp := math.Atan2(cb-ca, d+sa-sb)
		return [3]float64{mod2pi(tmp - alpha), math.Sqrt(pSq), mod2pi(beta - tmp)}, true
	case RSR:
		pSq := 2 + d*d - 2*cab + 2*d*(sb-sa)
		if pSq < 0 {
			return [3]float64{}, false
		}
		tmp := math.Atan2(ca-cb, d-sa+sb)
		return [3]float64{mod2pi(alpha - tmp), math.Sqrt(pSq), mod2pi(tmp - beta)}, true
	case LSR:
		pSq := -2 + d*d + 2*cab + 2*d*(sa+sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		p := math.Sqrt(pSq)
		tmp := math.Atan2(-ca-cb, d+sa+sb) - math.Atan2(-2, p)
		return [3]float64{mod2pi(tmp - alpha), p, mod2pi(tmp - mod2pi(beta))}, true
	case RSL:
		pSq := -2 + d*d + 2*cab - 2*d*(sa+sb)
		if pSq < 0 {
			return [3]float64{}, false
		}
		p := math.Sqrt(pSq)
		tmp := math.Atan2(ca+cb, d-sa-sb) - math.Atan2(2, p)
		return [3]float64{mod2pi(alpha - tmp), p, mod2pi(beta - tmp)}, true
	case RLR:
		tmp := (6 - d*d + 2*cab + 2*d*(sa-sb)) / 8
		if math.Abs(tmp) > 1 {
			return [3]float64{}, false
		}
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t0 := mod2pi(alpha - math.Atan2(ca-cb, d-sa+sb) + p/2)
		return [3]float64{t0, p, mod2pi(alpha - beta - t0 + p)}, true
	case LRL:
		tmp := (6 - d*d + 2*cab + 2*d*(sb-sa)) / 8
		if math.Abs(tmp) > 1 {
			return [3]float64{}, false
		}
		p := mod2pi(2*math.Pi - math.Acos(tmp))
		t0 := mod2pi(-alpha - math.Atan2(ca-cb, d+sa-sb) + p/2)
		return [3]float64{t0, p, mod2pi(mod2pi(beta) - alpha - t0 + mod2pi(p))}, true
	}
	return [3]float64{}, false
}
