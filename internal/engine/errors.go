package engine

import (
	"fmt"

	"github.com/piwi3910/floorplan/internal/model"
)

// InvalidShapeError reports a floor boundary that cannot be built:
// an empty region list or a union with zero area.
type InvalidShapeError struct {
	Reason string
}

func (e *InvalidShapeError) Error() string {
	return "invalid floor shape: " + e.Reason
}

// InvalidRoomError reports a room definition that fails validation.
type InvalidRoomError struct {
	Name   string
	Reason string
}

func (e *InvalidRoomError) Error() string {
	if e.Name == "" {
		return "invalid room: " + e.Reason
	}
	return fmt.Sprintf("invalid room %q: %s", e.Name, e.Reason)
}

// InvalidAdjacencyError reports an adjacency or separation pair that is
// self-referential or names an unknown room.
type InvalidAdjacencyError struct {
	RoomA  string
	RoomB  string
	Reason string
}

func (e *InvalidAdjacencyError) Error() string {
	return fmt.Sprintf("invalid adjacency (%s, %s): %s", e.RoomA, e.RoomB, e.Reason)
}

// InvalidConfigError reports search settings rejected before any work
// begins, such as a non-positive attempt budget.
type InvalidConfigError struct {
	Reason string
}

func (e *InvalidConfigError) Error() string {
	return "invalid search configuration: " + e.Reason
}

// NoFeasiblePlacementError is returned when no attempt within the budget
// produced a complete layout. BestPartial holds the deepest partial
// placement reached, for diagnostics.
type NoFeasiblePlacementError struct {
	Attempts    int
	BestPartial []model.PlacedRoom
}

func (e *NoFeasiblePlacementError) Error() string {
	return fmt.Sprintf("no feasible placement found after %d attempts", e.Attempts)
}
