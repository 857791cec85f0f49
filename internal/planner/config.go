// Package planner implements the anytime Dubins A* search over a vertex
// arena, scored against the static map, tracked vessels, and remaining
// ribbons.
package planner

import (
	"fmt"

	"asv-planner/internal/obstacle"
	"asv-planner/internal/viz"
	"asv-planner/internal/worldmap"
)

// Cost weights, shared across planner strategies.
const (
	timePenalty      = 1.0
	collisionPenalty = 600.0

	// edge integration step along arcs, in seconds of travel
	dubinsIncrement = 0.1

	// accumulated collision probability above which an edge is rejected
	maxCollisionProbability = 0.1
)

// samplerSeed keeps state generation reproducible across runs.
const samplerSeed = 7

// Config carries one planning iteration's inputs. It is rebuilt by the
// executive each cycle from its current settings.
type Config struct {
	MaxSpeed              float64
	TurningRadius         float64
	CoverageTurningRadius float64
	BranchingFactor       int

	Obstacles *obstacle.Manager // per-iteration snapshot
	Map       worldmap.Map

	StartStateTime float64
	Seed           int64

	Visualizer *viz.Writer
	Now        func() float64
}

// Validate checks the invariants the search relies on.
func (c *Config) Validate() error {
	if c.MaxSpeed <= 0 {
		return fmt.Errorf("max speed must be positive, got %v", c.MaxSpeed)
	}
	if c.TurningRadius <= 0 {
		return fmt.Errorf("turning radius must be positive, got %v", c.TurningRadius)
	}
	if c.CoverageTurningRadius != 0 && c.CoverageTurningRadius < c.TurningRadius {
		return fmt.Errorf("coverage turning radius %v below turning radius %v",
			c.CoverageTurningRadius, c.TurningRadius)
	}
	if c.BranchingFactor < 1 {
		return fmt.Errorf("branching factor must be at least 1, got %d", c.BranchingFactor)
	}
	if c.Now == nil {
		return fmt.Errorf("clock function not set")
	}
	return nil
}

func (c *Config) seed() int64 {
	if c.Seed != 0 {
		return c.Seed
	}
	return samplerSeed
}

func (c *Config) wmap() worldmap.Map {
	if c.Map == nil {
		return worldmap.EmptyMap{}
	}
	return c.Map
}
