package model

import "github.com/google/uuid"

// Rect is an axis-aligned rectangle on the integer floor grid.
// X, Y is the top-left corner; Y grows downward.
type Rect struct {
	X      int `json:"x" toml:"x"`
	Y      int `json:"y" toml:"y"`
	Width  int `json:"width" toml:"width"`
	Height int `json:"height" toml:"height"`
}

// Area returns the rectangle area in grid units.
func (r Rect) Area() int {
	return r.Width * r.Height
}

// Right returns the exclusive right edge coordinate (X + Width).
func (r Rect) Right() int {
	return r.X + r.Width
}

// Bottom returns the exclusive bottom edge coordinate (Y + Height).
func (r Rect) Bottom() int {
	return r.Y + r.Height
}

// Overlaps reports whether r and o share interior area.
// Rectangles that only touch along an edge or corner do not overlap.
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.Right() && r.Right() > o.X &&
		r.Y < o.Bottom() && r.Bottom() > o.Y
}

// ContainsRect reports whether o lies entirely within r.
func (r Rect) ContainsRect(o Rect) bool {
	return r.X <= o.X && r.Y <= o.Y &&
		r.Right() >= o.Right() && r.Bottom() >= o.Bottom()
}

// SharesWall reports whether r and o share a boundary segment of strictly
// positive length. Touching at a single corner point does not count.
func (r Rect) SharesWall(o Rect) bool {
	// Vertical wall: one rectangle's right edge is the other's left edge,
	// with overlapping vertical extent.
	if r.Right() == o.X || o.Right() == r.X {
		return max(r.Y, o.Y) < min(r.Bottom(), o.Bottom())
	}
	// Horizontal wall: one rectangle's bottom edge is the other's top edge,
	// with overlapping horizontal extent.
	if r.Bottom() == o.Y || o.Bottom() == r.Y {
		return max(r.X, o.X) < min(r.Right(), o.Right())
	}
	return false
}

// Region is one rectangular piece of the buildable floor boundary.
// The floor shape is the union of all regions; regions may overlap.
type Region struct {
	ID    string `json:"id,omitempty" toml:"id,omitempty"`
	Label string `json:"label,omitempty" toml:"label,omitempty"`
	Rect
}

func NewRegion(label string, x, y, w, h int) Region {
	return Region{
		ID:    uuid.New().String()[:8],
		Label: label,
		Rect:  Rect{X: x, Y: y, Width: w, Height: h},
	}
}

// Room describes a rectangular room before placement. MaxExpansion is a
// shared budget: total growth in width plus height may not exceed it.
type Room struct {
	ID           string `json:"id,omitempty" toml:"id,omitempty"`
	Name         string `json:"name" toml:"name" validate:"required"`
	Width        int    `json:"width" toml:"width" validate:"gt=0"`
	Height       int    `json:"height" toml:"height" validate:"gt=0"`
	MaxExpansion int    `json:"max_expansion" toml:"max_expansion" validate:"gte=0"`
}

func NewRoom(name string, w, h, maxExpansion int) Room {
	return Room{
		ID:           uuid.New().String()[:8],
		Name:         name,
		Width:        w,
		Height:       h,
		MaxExpansion: maxExpansion,
	}
}

// Area returns the base room area.
func (r Room) Area() int {
	return r.Width * r.Height
}

// Adjacency is a desired (or, as a separation constraint, forbidden)
// wall-sharing relationship between two named rooms.
type Adjacency struct {
	RoomA string `json:"roomA" toml:"room_a" validate:"required"`
	RoomB string `json:"roomB" toml:"room_b" validate:"required"`
}

// Key returns an order-independent identity for the pair, used to
// deduplicate requirements before scoring.
func (a Adjacency) Key() string {
	if a.RoomA <= a.RoomB {
		return a.RoomA + "\x00" + a.RoomB
	}
	return a.RoomB + "\x00" + a.RoomA
}

// PlacedRoom is a room with final geometry inside the floor shape.
// Width/Height include any expansion granted after placement; the base
// dimensions are kept for reporting but are not part of the wire schema.
type PlacedRoom struct {
	Name   string `json:"name"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Width  int    `json:"width"`
	Height int    `json:"height"`

	BaseWidth    int `json:"-"`
	BaseHeight   int `json:"-"`
	MaxExpansion int `json:"-"`
}

// Rect returns the placed geometry.
func (p PlacedRoom) Rect() Rect {
	return Rect{X: p.X, Y: p.Y, Width: p.Width, Height: p.Height}
}

// ExpansionUsed returns the combined width+height growth consumed so far.
func (p PlacedRoom) ExpansionUsed() int {
	return (p.Width - p.BaseWidth) + (p.Height - p.BaseHeight)
}

// Statistics is the scored snapshot of a layout.
type Statistics struct {
	FloorArea        float64     `json:"floorArea"`
	RoomArea         float64     `json:"roomArea"`
	SpaceUtilization float64     `json:"spaceUtilization"`
	AdjacencyScore   int         `json:"adjacencyScore"`
	TotalAdjacencies int         `json:"totalAdjacencies"`
	AdjacentPairs    []Adjacency `json:"adjacentPairs"`
}

// Result is the outcome of one generate call. It is rebuilt from scratch
// on every invocation and never merged with a previous result.
type Result struct {
	Statistics
	PlacedRooms []PlacedRoom `json:"placedRooms"`
	Attempts    int          `json:"attempts"`
	Seed        int64        `json:"seed"`
}

// SearchSettings configures the placement search.
type SearchSettings struct {
	MaxAttempts     int   `json:"max_attempts" toml:"max_attempts"`
	EnableExpansion bool  `json:"enable_expansion" toml:"enable_expansion"`
	Seed            int64 `json:"seed" toml:"seed"`
	Workers         int   `json:"workers" toml:"workers"`
}

func DefaultSearchSettings() SearchSettings {
	return SearchSettings{
		MaxAttempts:     1000,
		EnableExpansion: true,
		Seed:            42,
		Workers:         1,
	}
}

// Plan ties everything together for save/load and for one generate call.
// Separations are the inverse of Adjacencies: pairs that must not end up
// sharing a wall.
type Plan struct {
	Name        string         `json:"name" toml:"name"`
	Regions     []Region       `json:"regions" toml:"regions" validate:"omitempty,dive"`
	Rooms       []Room         `json:"rooms" toml:"rooms" validate:"required,min=1,dive"`
	Adjacencies []Adjacency    `json:"adjacencies,omitempty" toml:"adjacencies,omitempty" validate:"omitempty,dive"`
	Separations []Adjacency    `json:"separations,omitempty" toml:"separations,omitempty" validate:"omitempty,dive"`
	Settings    SearchSettings `json:"settings" toml:"settings"`
	Result      *Result        `json:"result,omitempty" toml:"-"`
}

func NewPlan() Plan {
	return Plan{
		Name:     "Untitled",
		Regions:  []Region{},
		Rooms:    []Room{},
		Settings: DefaultSearchSettings(),
	}
}
