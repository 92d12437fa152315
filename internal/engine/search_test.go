package engine

import (
	"context"
	"testing"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// uFloorPlan builds a U-shaped floor with five rooms and five wanted
// adjacencies. Generous expansion budgets so a full placement is easy
// to find.
func uFloorPlan() model.Plan {
	return model.Plan{
		Name: "u-floor",
		Regions: []model.Region{
			region(0, 0, 5, 15),
			region(5, 0, 10, 5),
			region(15, 0, 5, 15),
		},
		Rooms: []model.Room{
			{Name: "Living Room", Width: 6, Height: 4, MaxExpansion: 10},
			{Name: "Kitchen", Width: 5, Height: 4, MaxExpansion: 8},
			{Name: "Dining", Width: 4, Height: 4, MaxExpansion: 6},
			{Name: "Bedroom", Width: 5, Height: 5, MaxExpansion: 5},
			{Name: "Bathroom", Width: 3, Height: 3, MaxExpansion: 2},
		},
		Adjacencies: []model.Adjacency{
			{RoomA: "Living Room", RoomB: "Kitchen"},
			{RoomA: "Kitchen", RoomB: "Dining"},
			{RoomA: "Living Room", RoomB: "Dining"},
			{RoomA: "Living Room", RoomB: "Bedroom"},
			{RoomA: "Bedroom", RoomB: "Bathroom"},
		},
		Settings: model.SearchSettings{
			MaxAttempts:     5000,
			EnableExpansion: true,
			Seed:            42,
			Workers:         1,
		},
	}
}

func requireValidResult(t *testing.T, plan model.Plan, res model.Result) {
	t.Helper()

	require.Len(t, res.PlacedRooms, len(plan.Rooms))

	shape, err := NewFloorShape(plan.Regions)
	require.NoError(t, err)

	byName := make(map[string]model.Room, len(plan.Rooms))
	for _, r := range plan.Rooms {
		byName[r.Name] = r
	}

	for i, p := range res.PlacedRooms {
		room, ok := byName[p.Name]
		require.True(t, ok, "unknown placed room %q", p.Name)
		assert.True(t, shape.Contains(p.Rect()), "%s not inside floor", p.Name)
		assert.GreaterOrEqual(t, p.Width, room.Width, "%s shrank below base width", p.Name)
		assert.GreaterOrEqual(t, p.Height, room.Height, "%s shrank below base height", p.Name)
		used := (p.Width - room.Width) + (p.Height - room.Height)
		assert.LessOrEqual(t, used, room.MaxExpansion, "%s over expansion budget", p.Name)

		for _, q := range res.PlacedRooms[i+1:] {
			assert.False(t, p.Rect().Overlaps(q.Rect()), "%s overlaps %s", p.Name, q.Name)
		}
	}
}

func TestGenerate_UShapedFloor(t *testing.T) {
	plan := uFloorPlan()

	res, err := Generate(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, 5, res.TotalAdjacencies)
	assert.GreaterOrEqual(t, res.AdjacencyScore, 0)
	assert.LessOrEqual(t, res.AdjacencyScore, 5)
	assert.Greater(t, res.SpaceUtilization, 0.0)
	assert.LessOrEqual(t, res.SpaceUtilization, 1.0)
	assert.Equal(t, 200.0, res.FloorArea)
	assert.Equal(t, int64(42), res.Seed)
	assert.GreaterOrEqual(t, res.Attempts, 1)
	assert.LessOrEqual(t, res.Attempts, 5000)

	requireValidResult(t, plan, res)
}

func TestGenerate_OversizedRooms(t *testing.T) {
	plan := model.Plan{
		Regions: []model.Region{region(0, 0, 4, 4)},
		Rooms: []model.Room{
			{Name: "A", Width: 3, Height: 3},
			{Name: "B", Width: 3, Height: 3},
		},
		Settings: model.SearchSettings{MaxAttempts: 50, Seed: 1, Workers: 1},
	}

	_, err := Generate(context.Background(), plan)
	var noFit *NoFeasiblePlacementError
	require.ErrorAs(t, err, &noFit)
	assert.Equal(t, 50, noFit.Attempts)
	// One of the two rooms always fits alone.
	assert.Len(t, noFit.BestPartial, 1)
}

func TestGenerate_RoomLargerThanFloor(t *testing.T) {
	plan := model.Plan{
		Regions:  []model.Region{region(0, 0, 4, 4)},
		Rooms:    []model.Room{{Name: "A", Width: 10, Height: 10}},
		Settings: model.SearchSettings{MaxAttempts: 10, Seed: 1, Workers: 1},
	}

	_, err := Generate(context.Background(), plan)
	var noFit *NoFeasiblePlacementError
	require.ErrorAs(t, err, &noFit)
	assert.Empty(t, noFit.BestPartial)
}

func TestGenerate_UnknownRoomInAdjacency(t *testing.T) {
	plan := uFloorPlan()
	plan.Adjacencies = append(plan.Adjacencies, model.Adjacency{RoomA: "Living Room", RoomB: "Garage"})

	_, err := Generate(context.Background(), plan)
	var badAdj *InvalidAdjacencyError
	require.ErrorAs(t, err, &badAdj)
	assert.Equal(t, "Garage", badAdj.RoomB)
}

func TestGenerate_InvalidSettings(t *testing.T) {
	for name, mutate := range map[string]func(*model.Plan){
		"zero attempts":     func(p *model.Plan) { p.Settings.MaxAttempts = 0 },
		"negative attempts": func(p *model.Plan) { p.Settings.MaxAttempts = -5 },
		"negative workers":  func(p *model.Plan) { p.Settings.Workers = -1 },
	} {
		t.Run(name, func(t *testing.T) {
			plan := uFloorPlan()
			mutate(&plan)
			_, err := Generate(context.Background(), plan)
			var badCfg *InvalidConfigError
			require.ErrorAs(t, err, &badCfg)
		})
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	plan := uFloorPlan()
	plan.Settings.MaxAttempts = 25

	first, err := Generate(context.Background(), plan)
	require.NoError(t, err)
	second, err := Generate(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestGenerate_SingleAttemptDeterministic(t *testing.T) {
	plan := uFloorPlan()
	plan.Settings.MaxAttempts = 1
	plan.Settings.Seed = 7

	first, err1 := Generate(context.Background(), plan)
	second, err2 := Generate(context.Background(), plan)

	// A single attempt may or may not complete, but two runs with the
	// same seed must agree exactly.
	if err1 != nil {
		require.Error(t, err2)
		assert.Equal(t, err1.Error(), err2.Error())
		return
	}
	require.NoError(t, err2)
	assert.Equal(t, first.PlacedRooms, second.PlacedRooms)
	assert.Equal(t, 1, first.Attempts)
}

func TestGenerate_ParallelMatchesSequential(t *testing.T) {
	plan := uFloorPlan()
	plan.Settings.MaxAttempts = 200

	seq, err := Generate(context.Background(), plan)
	require.NoError(t, err)

	plan.Settings.Workers = 4
	par, err := Generate(context.Background(), plan)
	require.NoError(t, err)

	assert.Equal(t, seq.PlacedRooms, par.PlacedRooms)
	assert.Equal(t, seq.AdjacencyScore, par.AdjacencyScore)
}

func TestGenerate_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plan := uFloorPlan()
	res, err := Generate(ctx, plan)
	if err != nil {
		var noFit *NoFeasiblePlacementError
		require.ErrorAs(t, err, &noFit)
		return
	}
	// A best layout found before cancellation is still a valid result.
	requireValidResult(t, plan, res)
}

// cancelAfterCtx reports cancellation only after its Err method has been
// consulted a set number of times. The sequential search consults Err
// once before each attempt, so this cancels at an exact attempt index.
type cancelAfterCtx struct {
	context.Context
	remaining int
}

func (c *cancelAfterCtx) Err() error {
	if c.remaining > 0 {
		c.remaining--
		return nil
	}
	return context.Canceled
}

func TestGenerate_CancelAfterCompletedAttempt(t *testing.T) {
	// Three rooms in a single row: the two end rooms can never share a
	// wall, so no attempt is perfect and the search would normally run
	// the full budget. Every attempt completes, so cancelling after the
	// first one must return that layout as a success.
	plan := model.Plan{
		Regions: []model.Region{region(0, 0, 12, 4)},
		Rooms: []model.Room{
			{Name: "A", Width: 4, Height: 4},
			{Name: "B", Width: 4, Height: 4},
			{Name: "C", Width: 4, Height: 4},
		},
		Adjacencies: []model.Adjacency{
			{RoomA: "A", RoomB: "B"},
			{RoomA: "B", RoomB: "C"},
			{RoomA: "A", RoomB: "C"},
		},
		Settings: model.SearchSettings{MaxAttempts: 400, Seed: 7, Workers: 1},
	}

	ctx := &cancelAfterCtx{Context: context.Background(), remaining: 1}
	res, err := Generate(ctx, plan)
	require.NoError(t, err)

	requireValidResult(t, plan, res)
	assert.Equal(t, 1, res.Attempts)
	assert.Equal(t, 2, res.AdjacencyScore)
	assert.Equal(t, 3, res.TotalAdjacencies)
}

func TestGenerate_SeparationRespected(t *testing.T) {
	plan := model.Plan{
		Regions: []model.Region{region(0, 0, 12, 4)},
		Rooms: []model.Room{
			{Name: "A", Width: 4, Height: 4},
			{Name: "B", Width: 4, Height: 4},
			{Name: "C", Width: 4, Height: 4},
		},
		Separations: []model.Adjacency{{RoomA: "A", RoomB: "B"}},
		Settings:    model.SearchSettings{MaxAttempts: 500, Seed: 3, Workers: 1},
	}

	res, err := Generate(context.Background(), plan)
	require.NoError(t, err)
	require.Len(t, res.PlacedRooms, 3)

	rects := make(map[string]model.Rect, 3)
	for _, p := range res.PlacedRooms {
		rects[p.Name] = p.Rect()
	}
	assert.False(t, rects["A"].SharesWall(rects["B"]), "separated rooms share a wall")
}

func TestGenerate_SeedIsReported(t *testing.T) {
	plan := uFloorPlan()
	plan.Settings.MaxAttempts = 50
	plan.Settings.Seed = 1337

	res, err := Generate(context.Background(), plan)
	require.NoError(t, err)
	assert.Equal(t, int64(1337), res.Seed)
	requireValidResult(t, plan, res)
}

func TestPairMap(t *testing.T) {
	m := pairMap([]model.Adjacency{{RoomA: "A", RoomB: "B"}, {RoomA: "B", RoomB: "C"}})
	assert.True(t, m["A"]["B"])
	assert.True(t, m["B"]["A"])
	assert.True(t, m["C"]["B"])
	assert.False(t, m["A"]["C"])
}
