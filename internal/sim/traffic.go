package sim

import (
	"asv-planner/internal/config"
	"asv-planner/internal/nav"
)

// Vessel is one scripted traffic vessel: it holds course and speed.
type Vessel struct {
	ID    uint32
	State nav.State
}

// NewTraffic builds vessels from the mission config.
func NewTraffic(specs []config.TrafficVessel, now float64) []*Vessel {
	out := make([]*Vessel, len(specs))
	for i, t := range specs {
		out[i] = &Vessel{
			ID:    t.ID,
			State: nav.NewState(t.X, t.Y, t.Heading, t.Speed, now),
		}
	}
	return out
}

// Step advances the vessel to the given mission time.
func (v *Vessel) Step(now float64) nav.State {
	dt := now - v.State.Time
	if dt > 0 {
		v.State = v.State.Push(dt)
	}
	return v.State
}
