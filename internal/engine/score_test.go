package engine

import (
	"testing"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func placed(name string, x, y, w, h int) model.PlacedRoom {
	return model.PlacedRoom{Name: name, X: x, Y: y, Width: w, Height: h, BaseWidth: w, BaseHeight: h}
}

func TestScore_UtilizationExact(t *testing.T) {
	shape, err := NewFloorShape([]model.Region{region(0, 0, 10, 10)})
	require.NoError(t, err)

	layout := model.NewLayout()
	layout.Place(placed("A", 0, 0, 5, 4))
	layout.Place(placed("B", 5, 0, 5, 4))

	stats := Score(layout, shape, nil)
	assert.Equal(t, 100.0, stats.FloorArea)
	assert.Equal(t, 40.0, stats.RoomArea)
	assert.InDelta(t, 0.4, stats.SpaceUtilization, 1e-9)
	assert.Equal(t, 0, stats.TotalAdjacencies)
}

func TestScore_SharedWallCounts(t *testing.T) {
	shape, err := NewFloorShape([]model.Region{region(0, 0, 20, 20)})
	require.NoError(t, err)

	layout := model.NewLayout()
	layout.Place(placed("A", 0, 0, 4, 4))
	layout.Place(placed("B", 4, 0, 4, 4))  // shares A's right wall
	layout.Place(placed("C", 4, 4, 4, 4))  // shares B's bottom wall, touches A only at a corner
	layout.Place(placed("D", 10, 10, 4, 4)) // isolated

	adjacencies := []model.Adjacency{
		{RoomA: "A", RoomB: "B"},
		{RoomA: "B", RoomB: "C"},
		{RoomA: "A", RoomB: "C"}, // corner touch only: not satisfied
		{RoomA: "A", RoomB: "D"}, // not touching at all
	}

	stats := Score(layout, shape, adjacencies)
	assert.Equal(t, 2, stats.AdjacencyScore)
	assert.Equal(t, 4, stats.TotalAdjacencies)
	assert.Equal(t, []model.Adjacency{
		{RoomA: "A", RoomB: "B"},
		{RoomA: "B", RoomB: "C"},
	}, stats.AdjacentPairs)
}

func TestScore_PartialWallOverlap(t *testing.T) {
	shape, err := NewFloorShape([]model.Region{region(0, 0, 20, 20)})
	require.NoError(t, err)

	layout := model.NewLayout()
	layout.Place(placed("A", 0, 0, 4, 4))
	layout.Place(placed("B", 4, 2, 4, 4)) // right wall of A overlaps for 2 units

	stats := Score(layout, shape, []model.Adjacency{{RoomA: "A", RoomB: "B"}})
	assert.Equal(t, 1, stats.AdjacencyScore)
}

func TestScore_DuplicatePairsNotDoubleCounted(t *testing.T) {
	shape, err := NewFloorShape([]model.Region{region(0, 0, 20, 20)})
	require.NoError(t, err)

	layout := model.NewLayout()
	layout.Place(placed("A", 0, 0, 4, 4))
	layout.Place(placed("B", 4, 0, 4, 4))

	adjacencies := []model.Adjacency{
		{RoomA: "A", RoomB: "B"},
		{RoomA: "B", RoomB: "A"},
	}
	stats := Score(layout, shape, adjacencies)
	assert.Equal(t, 1, stats.AdjacencyScore)
	assert.Equal(t, 1, stats.TotalAdjacencies)
}

func TestScore_UnplacedRoomInPairIgnored(t *testing.T) {
	shape, err := NewFloorShape([]model.Region{region(0, 0, 20, 20)})
	require.NoError(t, err)

	layout := model.NewLayout()
	layout.Place(placed("A", 0, 0, 4, 4))

	stats := Score(layout, shape, []model.Adjacency{{RoomA: "A", RoomB: "Ghost"}})
	assert.Equal(t, 0, stats.AdjacencyScore)
	assert.Equal(t, 1, stats.TotalAdjacencies)
}
