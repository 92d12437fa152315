package engine

import "github.com/piwi3910/floorplan/internal/model"

// Score evaluates a layout against the floor shape and the adjacency
// requirements. It is pure: the same inputs always produce the same
// Statistics. Duplicate unordered pairs are deduplicated so they cannot
// be double-counted.
func Score(layout *model.Layout, shape *FloorShape, adjacencies []model.Adjacency) model.Statistics {
	floorArea := float64(shape.TotalArea())
	roomArea := float64(layout.RoomArea())

	deduped := dedupePairs(adjacencies)
	satisfied := make([]model.Adjacency, 0, len(deduped))
	for _, pair := range deduped {
		a, okA := layout.Get(pair.RoomA)
		b, okB := layout.Get(pair.RoomB)
		if !okA || !okB {
			continue
		}
		if a.Rect().SharesWall(b.Rect()) {
			satisfied = append(satisfied, pair)
		}
	}

	return model.Statistics{
		FloorArea:        floorArea,
		RoomArea:         roomArea,
		SpaceUtilization: roomArea / floorArea,
		AdjacencyScore:   len(satisfied),
		TotalAdjacencies: len(deduped),
		AdjacentPairs:    satisfied,
	}
}
