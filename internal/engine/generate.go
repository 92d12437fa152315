// Package engine implements the floor layout placement search: a
// bounded-attempt randomized engine that places rectangular rooms inside
// an irregular floor boundary, maximizing coverage and adjacency
// satisfaction, with an optional post-placement expansion pass.
//
// The engine is pure CPU-bound computation. It performs no I/O, no
// logging, and never mutates caller-owned input structures.
package engine

import (
	"context"

	"github.com/piwi3910/floorplan/internal/model"
)

// Engine runs the placement search with fixed settings.
type Engine struct {
	settings model.SearchSettings
}

func New(settings model.SearchSettings) *Engine {
	return &Engine{settings: settings}
}

// Generate computes a layout for the plan and returns its statistics.
//
// Structural validation runs first and aborts immediately with
// InvalidConfigError, InvalidShapeError, InvalidRoomError or
// InvalidAdjacencyError; no attempts are consumed. After validation the
// search issues up to MaxAttempts randomized attempts, keeping the best
// complete layout by (adjacencyScore, spaceUtilization). If expansion is
// enabled, the retained best layout is grown before the final scoring
// pass. If no attempt produces a complete layout the call fails with
// NoFeasiblePlacementError.
//
// Cancelling ctx stops issuing further attempts: the best layout found
// so far is returned as a success if at least one attempt completed,
// otherwise NoFeasiblePlacementError is returned.
func (e *Engine) Generate(ctx context.Context, plan model.Plan) (model.Result, error) {
	cfg := e.settings
	if cfg.MaxAttempts <= 0 {
		return model.Result{}, &InvalidConfigError{Reason: "max attempts must be positive"}
	}
	if cfg.Workers < 0 {
		return model.Result{}, &InvalidConfigError{Reason: "workers must not be negative"}
	}
	if cfg.Workers == 0 {
		cfg.Workers = 1
	}

	shape, err := NewFloorShape(plan.Regions)
	if err != nil {
		return model.Result{}, err
	}
	if err := ValidateRooms(plan.Rooms); err != nil {
		return model.Result{}, err
	}
	if err := ValidateAdjacencies(plan.Adjacencies, plan.Rooms); err != nil {
		return model.Result{}, err
	}
	if err := ValidateAdjacencies(plan.Separations, plan.Rooms); err != nil {
		return model.Result{}, err
	}

	adjacencies := dedupePairs(plan.Adjacencies)
	separations := dedupePairs(plan.Separations)

	search := newPlacementSearch(shape, plan.Rooms, adjacencies, separations, cfg)
	best, attempts, ok := search.run(ctx)
	if !ok {
		return model.Result{}, &NoFeasiblePlacementError{
			Attempts:    attempts,
			BestPartial: search.bestPartialRooms(),
		}
	}

	if cfg.EnableExpansion {
		expandLayout(best, shape, plan.Rooms, search.avoid)
	}

	stats := Score(best, shape, adjacencies)
	return model.Result{
		Statistics:  stats,
		PlacedRooms: best.Placed(),
		Attempts:    attempts,
		Seed:        cfg.Seed,
	}, nil
}

// Generate is a convenience wrapper running a one-shot search with the
// plan's own settings.
func Generate(ctx context.Context, plan model.Plan) (model.Result, error) {
	return New(plan.Settings).Generate(ctx, plan)
}
