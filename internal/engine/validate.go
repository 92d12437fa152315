package engine

import "github.com/piwi3910/floorplan/internal/model"

// ValidateRooms checks room definitions before any search work begins.
func ValidateRooms(rooms []model.Room) error {
	if len(rooms) == 0 {
		return &InvalidRoomError{Reason: "no rooms defined"}
	}
	seen := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		if r.Name == "" {
			return &InvalidRoomError{Reason: "empty room name"}
		}
		if _, dup := seen[r.Name]; dup {
			return &InvalidRoomError{Name: r.Name, Reason: "duplicate room name"}
		}
		seen[r.Name] = struct{}{}
		if r.Width <= 0 || r.Height <= 0 {
			return &InvalidRoomError{Name: r.Name, Reason: "non-positive dimension"}
		}
		if r.MaxExpansion < 0 {
			return &InvalidRoomError{Name: r.Name, Reason: "negative expansion budget"}
		}
	}
	return nil
}

// ValidateAdjacencies checks that every pair references two distinct,
// known rooms. It applies to both adjacency requirements and separation
// constraints.
func ValidateAdjacencies(pairs []model.Adjacency, rooms []model.Room) error {
	names := make(map[string]struct{}, len(rooms))
	for _, r := range rooms {
		names[r.Name] = struct{}{}
	}
	for _, p := range pairs {
		if _, ok := names[p.RoomA]; !ok {
			return &InvalidAdjacencyError{RoomA: p.RoomA, RoomB: p.RoomB, Reason: "unknown room " + p.RoomA}
		}
		if _, ok := names[p.RoomB]; !ok {
			return &InvalidAdjacencyError{RoomA: p.RoomA, RoomB: p.RoomB, Reason: "unknown room " + p.RoomB}
		}
		if p.RoomA == p.RoomB {
			return &InvalidAdjacencyError{RoomA: p.RoomA, RoomB: p.RoomB, Reason: "room paired with itself"}
		}
	}
	return nil
}

// dedupePairs removes duplicate unordered pairs, keeping the first
// occurrence order. Duplicates are permitted in input but must not be
// double-counted when scoring.
func dedupePairs(pairs []model.Adjacency) []model.Adjacency {
	seen := make(map[string]struct{}, len(pairs))
	out := make([]model.Adjacency, 0, len(pairs))
	for _, p := range pairs {
		key := p.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, p)
	}
	return out
}
