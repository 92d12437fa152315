package engine

import (
	"testing"

	"github.com/piwi3910/floorplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateRooms(t *testing.T) {
	tests := []struct {
		name   string
		rooms  []model.Room
		reason string // empty = valid
	}{
		{
			name:  "valid",
			rooms: []model.Room{{Name: "A", Width: 3, Height: 4}, {Name: "B", Width: 2, Height: 2, MaxExpansion: 5}},
		},
		{
			name:   "empty name",
			rooms:  []model.Room{{Name: "", Width: 3, Height: 4}},
			reason: "empty room name",
		},
		{
			name:   "duplicate name",
			rooms:  []model.Room{{Name: "A", Width: 3, Height: 4}, {Name: "A", Width: 2, Height: 2}},
			reason: "duplicate room name",
		},
		{
			name:   "zero width",
			rooms:  []model.Room{{Name: "A", Width: 0, Height: 4}},
			reason: "non-positive dimension",
		},
		{
			name:   "negative height",
			rooms:  []model.Room{{Name: "A", Width: 3, Height: -1}},
			reason: "non-positive dimension",
		},
		{
			name:   "negative expansion",
			rooms:  []model.Room{{Name: "A", Width: 3, Height: 4, MaxExpansion: -1}},
			reason: "negative expansion budget",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateRooms(tt.rooms)
			if tt.reason == "" {
				assert.NoError(t, err)
				return
			}
			var roomErr *InvalidRoomError
			require.ErrorAs(t, err, &roomErr)
			assert.Equal(t, tt.reason, roomErr.Reason)
		})
	}
}

func TestValidateAdjacencies(t *testing.T) {
	rooms := []model.Room{
		{Name: "Kitchen", Width: 5, Height: 4},
		{Name: "Dining", Width: 4, Height: 4},
	}

	assert.NoError(t, ValidateAdjacencies([]model.Adjacency{{RoomA: "Kitchen", RoomB: "Dining"}}, rooms))

	var adjErr *InvalidAdjacencyError
	err := ValidateAdjacencies([]model.Adjacency{{RoomA: "Kitchen", RoomB: "Garage"}}, rooms)
	require.ErrorAs(t, err, &adjErr)

	err = ValidateAdjacencies([]model.Adjacency{{RoomA: "Kitchen", RoomB: "Kitchen"}}, rooms)
	require.ErrorAs(t, err, &adjErr)
	assert.Equal(t, "room paired with itself", adjErr.Reason)
}

func TestDedupePairs(t *testing.T) {
	pairs := []model.Adjacency{
		{RoomA: "A", RoomB: "B"},
		{RoomA: "B", RoomB: "A"}, // same unordered pair
		{RoomA: "A", RoomB: "C"},
		{RoomA: "A", RoomB: "B"}, // exact duplicate
	}
	got := dedupePairs(pairs)
	require.Len(t, got, 2)
	assert.Equal(t, model.Adjacency{RoomA: "A", RoomB: "B"}, got[0])
	assert.Equal(t, model.Adjacency{RoomA: "A", RoomB: "C"}, got[1])
}
