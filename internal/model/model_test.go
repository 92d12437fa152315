package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rect(x, y, w, h int) Rect {
	return Rect{X: x, Y: y, Width: w, Height: h}
}

func TestRect_Overlaps(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"identical", rect(0, 0, 4, 4), rect(0, 0, 4, 4), true},
		{"partial", rect(0, 0, 4, 4), rect(2, 2, 4, 4), true},
		{"contained", rect(0, 0, 10, 10), rect(3, 3, 2, 2), true},
		{"edge touch", rect(0, 0, 4, 4), rect(4, 0, 4, 4), false},
		{"corner touch", rect(0, 0, 4, 4), rect(4, 4, 4, 4), false},
		{"disjoint", rect(0, 0, 4, 4), rect(10, 10, 4, 4), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.Overlaps(tt.b))
			assert.Equal(t, tt.want, tt.b.Overlaps(tt.a))
		})
	}
}

func TestRect_SharesWall(t *testing.T) {
	tests := []struct {
		name string
		a, b Rect
		want bool
	}{
		{"right wall full", rect(0, 0, 4, 4), rect(4, 0, 4, 4), true},
		{"right wall partial", rect(0, 0, 4, 4), rect(4, 2, 4, 4), true},
		{"bottom wall", rect(0, 0, 4, 4), rect(0, 4, 4, 4), true},
		{"corner only", rect(0, 0, 4, 4), rect(4, 4, 4, 4), false},
		{"vertical corner only", rect(0, 0, 4, 4), rect(4, -4, 4, 4), false},
		{"gap between", rect(0, 0, 4, 4), rect(5, 0, 4, 4), false},
		{"overlapping", rect(0, 0, 4, 4), rect(2, 0, 4, 4), false},
		{"offset bottom partial", rect(0, 0, 4, 4), rect(3, 4, 4, 4), true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.a.SharesWall(tt.b))
			assert.Equal(t, tt.want, tt.b.SharesWall(tt.a))
		})
	}
}

func TestRect_ContainsRect(t *testing.T) {
	outer := rect(0, 0, 10, 10)
	assert.True(t, outer.ContainsRect(rect(0, 0, 10, 10)))
	assert.True(t, outer.ContainsRect(rect(2, 3, 4, 5)))
	assert.False(t, outer.ContainsRect(rect(8, 8, 4, 4)))
	assert.False(t, outer.ContainsRect(rect(-1, 0, 4, 4)))
}

func TestNewRoom(t *testing.T) {
	room := NewRoom("Kitchen", 5, 4, 8)
	assert.NotEmpty(t, room.ID)
	assert.Len(t, room.ID, 8)
	assert.Equal(t, "Kitchen", room.Name)
	assert.Equal(t, 20, room.Area())
}

func TestNewRegion(t *testing.T) {
	r := NewRegion("east wing", 5, 0, 10, 5)
	assert.NotEmpty(t, r.ID)
	assert.Equal(t, 50, r.Area())
	assert.Equal(t, 15, r.Right())
}

func TestAdjacency_Key(t *testing.T) {
	a := Adjacency{RoomA: "Kitchen", RoomB: "Dining"}
	b := Adjacency{RoomA: "Dining", RoomB: "Kitchen"}
	assert.Equal(t, a.Key(), b.Key())
	assert.NotEqual(t, a.Key(), Adjacency{RoomA: "Kitchen", RoomB: "Living"}.Key())
}

func TestPlacedRoom_ExpansionUsed(t *testing.T) {
	p := PlacedRoom{Width: 7, Height: 5, BaseWidth: 5, BaseHeight: 4}
	assert.Equal(t, 3, p.ExpansionUsed())
}

func TestDefaultSearchSettings(t *testing.T) {
	s := DefaultSearchSettings()
	assert.Equal(t, 1000, s.MaxAttempts)
	assert.True(t, s.EnableExpansion)
	assert.Equal(t, int64(42), s.Seed)
	assert.Equal(t, 1, s.Workers)
}

func TestResultJSONShape(t *testing.T) {
	res := Result{
		Statistics: Statistics{
			FloorArea:        200,
			RoomArea:         150,
			SpaceUtilization: 0.75,
			AdjacencyScore:   4,
			TotalAdjacencies: 5,
			AdjacentPairs:    []Adjacency{{RoomA: "A", RoomB: "B"}},
		},
		PlacedRooms: []PlacedRoom{{
			Name: "A", X: 1, Y: 2, Width: 3, Height: 4,
			BaseWidth: 3, BaseHeight: 4, MaxExpansion: 6,
		}},
		Attempts: 12,
		Seed:     42,
	}

	data, err := json.Marshal(res)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, key := range []string{"floorArea", "roomArea", "spaceUtilization", "adjacencyScore", "totalAdjacencies", "adjacentPairs", "placedRooms", "attempts", "seed"} {
		assert.Contains(t, decoded, key)
	}

	rooms := decoded["placedRooms"].([]any)
	room := rooms[0].(map[string]any)
	assert.NotContains(t, room, "BaseWidth", "internal fields must not leak into JSON")
	assert.NotContains(t, room, "MaxExpansion")
	assert.Len(t, room, 5)
}

func TestAppConfig_ApplyToSettings(t *testing.T) {
	cfg := DefaultAppConfig()
	cfg.DefaultMaxAttempts = 250
	cfg.DefaultSeed = 9
	cfg.DefaultWorkers = 4

	s := SearchSettings{}
	cfg.ApplyToSettings(&s)
	assert.Equal(t, 250, s.MaxAttempts)
	assert.Equal(t, int64(9), s.Seed)
	assert.Equal(t, 4, s.Workers)
}
