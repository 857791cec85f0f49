package obstacle

import "sort"

// maxDistributionAge is how far behind the newest entry a distribution may
// lag before it is aged out, in seconds.
const maxDistributionAge = 30.0

// Manager maps each tracked vessel to an ordered timeline of position
// distributions. The planner reads a deep snapshot per iteration, so the
// live manager is only ever written by the obstacle ingest path.
type Manager struct {
	vessels map[uint32][]Distribution
}

// NewManager returns an empty obstacle manager.
func NewManager() *Manager {
	return &Manager{vessels: make(map[uint32][]Distribution)}
}

// Update replaces the timeline for a vessel. Entries are kept sorted by
// time and stale ones aged out. An empty update removes the vessel.
func (m *Manager) Update(id uint32, dists []Distribution) {
	if len(dists) == 0 {
		delete(m.vessels, id)
		return
	}
	timeline := make([]Distribution, len(dists))
	copy(timeline, dists)
	sort.Slice(timeline, func(i, j int) bool { return timeline[i].Time < timeline[j].Time })
	newest := timeline[len(timeline)-1].Time
	kept := timeline[:0]
	for _, d := range timeline {
		if newest-d.Time <= maxDistributionAge {
			kept = append(kept, d)
		}
	}
	m.vessels[id] = kept
}

// Forget drops a vessel's timeline.
func (m *Manager) Forget(id uint32) {
	delete(m.vessels, id)
}

// Count returns the number of tracked vessels.
func (m *Manager) Count() int { return len(m.vessels) }

// CollisionDensityAt sums the position density of every tracked vessel at
// (x, y) at mission time t. Timelines are interpolated between entries and
// extrapolated flat beyond their ends.
func (m *Manager) CollisionDensityAt(x, y, t float64) float64 {
	var sum float64
	for _, timeline := range m.vessels {
		d := at(timeline, t)
		sum += d.Density(x, y)
	}
	return sum
}

func at(timeline []Distribution, t float64) Distribution {
	if len(timeline) == 1 {
		return timeline[0]
	}
	for i := 0; i < len(timeline)-1; i++ {
		if t < timeline[i+1].Time {
			return interpolate(timeline[i], timeline[i+1], t)
		}
	}
	return timeline[len(timeline)-1]
}

// Snapshot returns a deep copy for a planning iteration.
func (m *Manager) Snapshot() *Manager {
	c := NewManager()
	for id, timeline := range m.vessels {
		cp := make([]Distribution, len(timeline))
		for i, d := range timeline {
			cp[i] = d.clone()
		}
		c.vessels[id] = cp
	}
	return c
}
