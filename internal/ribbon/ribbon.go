// Package ribbon tracks the survey lines a mission still has to trace and
// scores how far a vehicle is from finishing them.
package ribbon

import (
	"math"

	"asv-planner/internal/nav"
)

// minimumRibbonLength is the shortest ribbon worth tracking; fully covered
// remainders below this are discarded.
const minimumRibbonLength = 0.5

// defaultWidth is the process-wide coverage width until configured.
const defaultWidth = 2.0

var width = defaultWidth

// SetWidth sets the process-wide coverage width in meters.
func SetWidth(w float64) {
	if w > 0 {
		width = w
	}
}

// Width returns the process-wide coverage width in meters.
func Width() float64 { return width }

// span is a covered sub-interval of a ribbon, in arc-length parameters
// measured from the first endpoint.
type span struct {
	lo, hi float64
}

// Ribbon is a survey line segment with its covered sub-intervals.
type Ribbon struct {
	X1, Y1, X2, Y2 float64
	covered        []span // sorted, non-overlapping
}

// New creates a ribbon between two endpoints.
func New(x1, y1, x2, y2 float64) Ribbon {
	return Ribbon{X1: x1, Y1: y1, X2: x2, Y2: y2}
}

// Length returns the ribbon's full length.
func (r *Ribbon) Length() float64 {
	return math.Hypot(r.X2-r.X1, r.Y2-r.Y1)
}

// CoveredLength returns the total covered length.
func (r *Ribbon) CoveredLength() float64 {
	var sum float64
	for _, s := range r.covered {
		sum += s.hi - s.lo
	}
	return sum
}

// RemainingLength returns the uncovered length.
func (r *Ribbon) RemainingLength() float64 {
	rem := r.Length() - r.CoveredLength()
	if rem < 0 {
		return 0
	}
	return rem
}

// Done reports whether the ribbon is fully covered.
func (r *Ribbon) Done() bool {
	return r.RemainingLength() < minimumRibbonLength
}

// Direction returns the heading from the first endpoint to the second.
func (r *Ribbon) Direction() float64 {
	return nav.NormalizeHeading(math.Atan2(r.Y2-r.Y1, r.X2-r.X1))
}

// PointAt returns the position at arc-length parameter p from the first
// endpoint.
func (r *Ribbon) PointAt(p float64) (float64, float64) {
	l := r.Length()
	if l == 0 {
		return r.X1, r.Y1
	}
	t := p / l
	return r.X1 + t*(r.X2-r.X1), r.Y1 + t*(r.Y2-r.Y1)
}

// Project returns the arc-length parameter of the closest point on the
// segment to (x, y), and the distance to it.
func (r *Ribbon) Project(x, y float64) (float64, float64) {
	dx, dy := r.X2-r.X1, r.Y2-r.Y1
	l := r.Length()
	if l == 0 {
		return 0, math.Hypot(x-r.X1, y-r.Y1)
	}
	t := ((x-r.X1)*dx + (y-r.Y1)*dy) / (l * l)
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}
	px, py := r.X1+t*dx, r.Y1+t*dy
	return t * l, math.Hypot(x-px, y-py)
}

// CoverPoint marks the projection of (x, y) covered within half the
// process-wide width on either side, provided the point lies within
// width/2 of the ribbon. It reports whether anything was covered.
func (r *Ribbon) CoverPoint(x, y float64) bool {
	p, dist := r.Project(x, y)
	if dist > width/2 {
		return false
	}
	r.coverSpan(p-width/2, p+width/2)
	return true
}

// CoverInterval marks the parameter interval [lo, hi] covered.
func (r *Ribbon) CoverInterval(lo, hi float64) {
	r.coverSpan(lo, hi)
}

func (r *Ribbon) coverSpan(lo, hi float64) {
	l := r.Length()
	if lo < 0 {
		lo = 0
	}
	if hi > l {
		hi = l
	}
	if hi <= lo {
		return
	}
	merged := make([]span, 0, len(r.covered)+1)
	inserted := false
	for _, s := range r.covered {
		switch {
		case s.hi < lo:
			merged = append(merged, s)
		case s.lo > hi:
			if !inserted {
				merged = append(merged, span{lo, hi})
				inserted = true
			}
			merged = append(merged, s)
		default:
			lo = math.Min(lo, s.lo)
			hi = math.Max(hi, s.hi)
		}
	}
	if !inserted {
		merged = append(merged, span{lo, hi})
	}
	r.covered = merged
}

// uncoveredExtent returns the parameter interval from the first uncovered
// point to the last, and false if the ribbon is done. No-split traversal
// has to pass through any covered gaps in the middle anyway.
func (r *Ribbon) uncoveredExtent() (float64, float64, bool) {
	if r.Done() {
		return 0, 0, false
	}
	lo, hi := 0.0, r.Length()
	if len(r.covered) > 0 {
		if r.covered[0].lo <= 0 {
			lo = r.covered[0].hi
		}
		last := r.covered[len(r.covered)-1]
		if last.hi >= r.Length() {
			hi = last.lo
		}
	}
	if hi <= lo {
		return 0, 0, false
	}
	return lo, hi, true
}

// uncoveredSpans returns the uncovered parameter intervals in order.
func (r *Ribbon) uncoveredSpans() []span {
	var out []span
	cursor := 0.0
	for _, s := range r.covered {
		if s.lo > cursor {
			out = append(out, span{cursor, s.lo})
		}
		cursor = s.hi
	}
	if cursor < r.Length() {
		out = append(out, span{cursor, r.Length()})
	}
	return out
}

// Clone returns a deep copy.
func (r *Ribbon) Clone() Ribbon {
	c := *r
	c.covered = make([]span, len(r.covered))
	copy(c.covered, r.covered)
	return c
}
