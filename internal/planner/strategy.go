package planner

import (
	"context"
	"fmt"

	"asv-planner/internal/nav"
	"asv-planner/internal/ribbon"
)

// Strategy selects a concrete search. Only the anytime A* is wired today;
// the tag exists so alternatives slot in without virtual dispatch.
type Strategy int

const (
	StrategyAStar Strategy = iota
)

// Planner dispatches to the selected strategy. The strategies share the
// vertex arena and ribbon machinery.
type Planner struct {
	strategy Strategy
	astar    *AStarPlanner
}

// New creates a planner for the given strategy.
func New(s Strategy) (*Planner, error) {
	switch s {
	case StrategyAStar:
		return &Planner{strategy: s, astar: NewAStarPlanner()}, nil
	default:
		return nil, fmt.Errorf("unknown planner strategy %d", s)
	}
}

// Plan runs one planning iteration; see AStarPlanner.Plan for the
// contract.
func (p *Planner) Plan(ctx context.Context, rm *ribbon.Manager, start nav.State,
	cfg Config, previousPlan nav.Plan, timeRemaining float64) (nav.Plan, error) {
	return p.astar.Plan(ctx, rm, start, cfg, previousPlan, timeRemaining)
}
