package nav

import "math"

// TimeHorizon is how far into the future plans extend, in seconds.
const TimeHorizon = 30.0

// planDisplayInterval is the spacing of samples handed to display surfaces.
const planDisplayInterval = 0.5

// Arc is one constant-curvature piece of a plan. Speed is constant along
// the arc, so duration follows from length and the start state's speed.
type Arc struct {
	Start     State
	Curvature float64 // signed, 1/m; 0 means straight
	Length    float64 // meters
}

// Duration returns the time to traverse the arc.
func (a Arc) Duration() float64 {
	if a.Start.Speed <= 0 {
		return 0
	}
	return a.Length / a.Start.Speed
}

// EndTime returns the mission time at the end of the arc.
func (a Arc) EndTime() float64 { return a.Start.Time + a.Duration() }

// Interpolate returns the state dist meters along the arc from its start.
func (a Arc) Interpolate(dist float64) State {
	s := a.Start
	if dist <= 0 {
		return s
	}
	if dist > a.Length {
		dist = a.Length
	}
	var out State
	if a.Curvature == 0 {
		out = State{
			X:       s.X + dist*math.Cos(s.Heading),
			Y:       s.Y + dist*math.Sin(s.Heading),
			Heading: s.Heading,
		}
	} else {
		h := s.Heading + a.Curvature*dist
		out = State{
			X:       s.X + (math.Sin(h)-math.Sin(s.Heading))/a.Curvature,
			Y:       s.Y - (math.Cos(h)-math.Cos(s.Heading))/a.Curvature,
			Heading: NormalizeHeading(h),
		}
	}
	out.Speed = s.Speed
	if s.Speed > 0 {
		out.Time = s.Time + dist/s.Speed
	} else {
		out.Time = s.Time
	}
	return out
}

// End returns the state at the end of the arc.
func (a Arc) End() State { return a.Interpolate(a.Length) }

// Plan is an ordered sequence of timed arcs chaining end-to-start.
type Plan struct {
	arcs []Arc
}

// Empty reports whether the plan has no arcs.
func (p *Plan) Empty() bool { return len(p.arcs) == 0 }

// Arcs returns the plan's arcs in order.
func (p *Plan) Arcs() []Arc { return p.arcs }

// Append adds an arc to the end of the plan.
func (p *Plan) Append(a Arc) { p.arcs = append(p.arcs, a) }

// AppendAll adds a sequence of arcs to the end of the plan.
func (p *Plan) AppendAll(arcs []Arc) { p.arcs = append(p.arcs, arcs...) }

// StartTime returns the time of the first arc, or TimeUnset when empty.
func (p *Plan) StartTime() float64 {
	if p.Empty() {
		return TimeUnset
	}
	return p.arcs[0].Start.Time
}

// EndTime returns the time at the end of the last arc, or TimeUnset.
func (p *Plan) EndTime() float64 {
	if p.Empty() {
		return TimeUnset
	}
	return p.arcs[len(p.arcs)-1].EndTime()
}

// Sample projects s onto the plan at s.Time, filling position, heading and
// speed. It reports whether the plan covers that time.
func (p *Plan) Sample(s *State) bool {
	for _, a := range p.arcs {
		if s.Time < a.Start.Time-1e-9 {
			break
		}
		if s.Time <= a.EndTime()+1e-9 {
			st := a.Interpolate((s.Time - a.Start.Time) * a.Start.Speed)
			s.X, s.Y, s.Heading, s.Speed = st.X, st.Y, st.Heading, st.Speed
			return true
		}
	}
	return false
}

// ChangeIntoSuffix drops arcs entirely before t and truncates the arc
// containing t so the plan starts there. A t at or before the plan's start
// leaves it unchanged.
func (p *Plan) ChangeIntoSuffix(t float64) {
	if p.Empty() || t <= p.StartTime() {
		return
	}
	var out []Arc
	for _, a := range p.arcs {
		end := a.EndTime()
		if end <= t {
			continue
		}
		if a.Start.Time < t {
			drop := (t - a.Start.Time) * a.Start.Speed
			a = Arc{Start: a.Interpolate(drop), Curvature: a.Curvature, Length: a.Length - drop}
		}
		out = append(out, a)
	}
	p.arcs = out
}

// HalfSecondSamples returns states along the plan at half-second spacing
// for display.
func (p *Plan) HalfSecondSamples() []State {
	if p.Empty() {
		return nil
	}
	var out []State
	for t := p.StartTime(); t <= p.EndTime(); t += planDisplayInterval {
		s := State{Time: t}
		if p.Sample(&s) {
			out = append(out, s)
		}
	}
	return out
}

// Copy returns a deep copy of the plan.
func (p *Plan) Copy() Plan {
	arcs := make([]Arc, len(p.arcs))
	copy(arcs, p.arcs)
	return Plan{arcs: arcs}
}
