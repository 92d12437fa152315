package model

// Layout is a set of placed rooms keyed by name, preserving placement
// order. It is the transient working state of one search attempt and the
// retained best candidate between attempts.
type Layout struct {
	order []string
	rooms map[string]PlacedRoom
}

func NewLayout() *Layout {
	return &Layout{rooms: make(map[string]PlacedRoom)}
}

// Place adds a room to the layout. Placing a name twice panics: the
// search never revisits a placed room within an attempt.
func (l *Layout) Place(p PlacedRoom) {
	if _, ok := l.rooms[p.Name]; ok {
		panic("layout: room placed twice: " + p.Name)
	}
	l.order = append(l.order, p.Name)
	l.rooms[p.Name] = p
}

// Update replaces the geometry of an already-placed room.
func (l *Layout) Update(p PlacedRoom) {
	if _, ok := l.rooms[p.Name]; !ok {
		panic("layout: update of unplaced room: " + p.Name)
	}
	l.rooms[p.Name] = p
}

// Get returns the placed room with the given name.
func (l *Layout) Get(name string) (PlacedRoom, bool) {
	p, ok := l.rooms[name]
	return p, ok
}

// Len returns the number of placed rooms.
func (l *Layout) Len() int {
	return len(l.order)
}

// Overlaps reports whether r overlaps any placed room except the one
// named exclude (pass "" to check against all).
func (l *Layout) Overlaps(r Rect, exclude string) bool {
	for name, p := range l.rooms {
		if name == exclude {
			continue
		}
		if r.Overlaps(p.Rect()) {
			return true
		}
	}
	return false
}

// Placed returns the placed rooms in placement order.
func (l *Layout) Placed() []PlacedRoom {
	out := make([]PlacedRoom, 0, len(l.order))
	for _, name := range l.order {
		out = append(out, l.rooms[name])
	}
	return out
}

// RoomArea returns the summed area of all placed rooms.
func (l *Layout) RoomArea() int {
	total := 0
	for _, p := range l.rooms {
		total += p.Width * p.Height
	}
	return total
}

// Clone returns an independent copy of the layout.
func (l *Layout) Clone() *Layout {
	c := &Layout{
		order: append([]string(nil), l.order...),
		rooms: make(map[string]PlacedRoom, len(l.rooms)),
	}
	for name, p := range l.rooms {
		c.rooms[name] = p
	}
	return c
}
