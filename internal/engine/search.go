package engine

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/piwi3910/floorplan/internal/model"
)

// seedStride separates the per-attempt rng streams derived from the
// master seed, so attempt i is reproducible given (seed, i).
const seedStride int64 = 0x9E3779B9

// position is a candidate top-left placement for a room.
type position struct {
	X, Y int
}

// placementSearch runs the bounded-attempt randomized placement loop.
// The inputs are immutable for the duration of one run; the only shared
// mutable state is the best-layout accumulator, guarded by mu.
type placementSearch struct {
	shape       *FloorShape
	rooms       []model.Room
	adjacencies []model.Adjacency
	wants       map[string]map[string]bool // desired wall-sharing partners
	avoid       map[string]map[string]bool // forbidden wall-sharing partners
	cfg         model.SearchSettings

	mu          sync.Mutex
	best        *model.Layout
	bestStats   model.Statistics
	bestAttempt int
	partial     []model.PlacedRoom // deepest failed attempt, for diagnostics
}

func newPlacementSearch(shape *FloorShape, rooms []model.Room, adjacencies, separations []model.Adjacency, cfg model.SearchSettings) *placementSearch {
	return &placementSearch{
		shape:       shape,
		rooms:       rooms,
		adjacencies: adjacencies,
		wants:       pairMap(adjacencies),
		avoid:       pairMap(separations),
		cfg:         cfg,
	}
}

// pairMap expands pairs into a symmetric name -> partner-set lookup.
func pairMap(pairs []model.Adjacency) map[string]map[string]bool {
	m := make(map[string]map[string]bool)
	add := func(a, b string) {
		if m[a] == nil {
			m[a] = make(map[string]bool)
		}
		m[a][b] = true
	}
	for _, p := range pairs {
		add(p.RoomA, p.RoomB)
		add(p.RoomB, p.RoomA)
	}
	return m
}

// run executes up to MaxAttempts attempts, possibly across workers, and
// returns the best complete layout, the number of attempts issued, and
// whether any attempt produced a complete layout. Cancelling ctx stops
// issuing further attempts; the best layout found so far still counts.
//
// Base room areas are fixed, so every complete layout of the same room
// set has the same utilization; a layout satisfying every adjacency
// requirement cannot be beaten. The sequential loop stops early on such
// a layout. Parallel workers run the full budget instead: skipping
// attempts on early exit would make the surviving best depend on
// goroutine scheduling, and the earliest-attempt tie rule only keeps
// results reproducible when every issued attempt index is deterministic.
func (s *placementSearch) run(ctx context.Context) (*model.Layout, int, bool) {
	workers := s.cfg.Workers
	if workers <= 1 {
		attempts := 0
		for i := 0; i < s.cfg.MaxAttempts; i++ {
			if ctx.Err() != nil {
				break
			}
			attempts++
			if s.attempt(i) {
				break
			}
		}
		return s.result(attempts)
	}

	var next, issued atomic.Int64
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for ctx.Err() == nil {
				i := int(next.Add(1)) - 1
				if i >= s.cfg.MaxAttempts {
					return
				}
				issued.Add(1)
				s.attempt(i)
			}
		}()
	}
	wg.Wait()
	return s.result(int(issued.Load()))
}

func (s *placementSearch) result(attempts int) (*model.Layout, int, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil {
		return nil, attempts, false
	}
	// The caller owns the returned layout; the expansion pass mutates it.
	return s.best.Clone(), attempts, true
}

// bestPartialRooms returns the deepest partial placement reached by any
// failed attempt.
func (s *placementSearch) bestPartialRooms() []model.PlacedRoom {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.partial
}

// attempt runs one complete randomized placement try. It reports whether
// the resulting layout is perfect, which allows the loop to stop early.
func (s *placementSearch) attempt(i int) bool {
	rng := rand.New(rand.NewSource(s.cfg.Seed + int64(i)*seedStride))
	order := rng.Perm(len(s.rooms))

	placed := make([]model.PlacedRoom, 0, len(s.rooms))
	for _, idx := range order {
		room := s.rooms[idx]
		pos, ok := s.bestPosition(room, placed)
		if !ok {
			s.recordPartial(placed)
			return false
		}
		placed = append(placed, model.PlacedRoom{
			Name:         room.Name,
			X:            pos.X,
			Y:            pos.Y,
			Width:        room.Width,
			Height:       room.Height,
			BaseWidth:    room.Width,
			BaseHeight:   room.Height,
			MaxExpansion: room.MaxExpansion,
		})
	}

	layout := model.NewLayout()
	for _, p := range placed {
		layout.Place(p)
	}
	stats := Score(layout, s.shape, s.adjacencies)
	return s.offer(layout, stats, i)
}

// bestPosition scans candidate top-left positions over the floor bounding
// box in row-major order and picks the most desirable feasible one:
// maximize newly satisfied adjacency requirements, then minimize the
// growth of bounding-box waste around the placed rooms, then first in
// scan order.
func (s *placementSearch) bestPosition(room model.Room, placed []model.PlacedRoom) (position, bool) {
	bounds := s.shape.Bounds()
	var best position
	found := false
	bestGain, bestGap := -1, 0

	for y := bounds.Y; y+room.Height <= bounds.Bottom(); y++ {
		for x := bounds.X; x+room.Width <= bounds.Right(); x++ {
			r := model.Rect{X: x, Y: y, Width: room.Width, Height: room.Height}
			if overlapsAny(r, placed) {
				continue
			}
			if !s.shape.Contains(r) {
				continue
			}
			if s.violatesSeparation(room.Name, r, placed) {
				continue
			}
			gain := s.adjacencyGain(room.Name, r, placed)
			gap := gapGrowth(r, placed)
			if !found || gain > bestGain || (gain == bestGain && gap < bestGap) {
				found = true
				best = position{X: x, Y: y}
				bestGain = gain
				bestGap = gap
			}
		}
	}
	return best, found
}

func overlapsAny(r model.Rect, placed []model.PlacedRoom) bool {
	for _, p := range placed {
		if r.Overlaps(p.Rect()) {
			return true
		}
	}
	return false
}

// adjacencyGain counts desired partners already placed that would share a
// wall with the room at r. Every such requirement is currently
// unsatisfied, because the room being placed is part of the pair.
func (s *placementSearch) adjacencyGain(name string, r model.Rect, placed []model.PlacedRoom) int {
	partners := s.wants[name]
	if len(partners) == 0 {
		return 0
	}
	gain := 0
	for _, p := range placed {
		if partners[p.Name] && r.SharesWall(p.Rect()) {
			gain++
		}
	}
	return gain
}

// violatesSeparation reports whether placing the room at r would create a
// forbidden shared wall with an already-placed room.
func (s *placementSearch) violatesSeparation(name string, r model.Rect, placed []model.PlacedRoom) bool {
	partners := s.avoid[name]
	if len(partners) == 0 {
		return false
	}
	for _, p := range placed {
		if partners[p.Name] && r.SharesWall(p.Rect()) {
			return true
		}
	}
	return false
}

// gapGrowth measures the unused area inside the bounding box of the
// placed rooms plus the candidate. Smaller values keep the layout
// compact, leaving larger contiguous free areas for later rooms.
func gapGrowth(r model.Rect, placed []model.PlacedRoom) int {
	minX, minY := r.X, r.Y
	maxRight, maxBottom := r.Right(), r.Bottom()
	area := r.Area()
	for _, p := range placed {
		pr := p.Rect()
		if pr.X < minX {
			minX = pr.X
		}
		if pr.Y < minY {
			minY = pr.Y
		}
		if pr.Right() > maxRight {
			maxRight = pr.Right()
		}
		if pr.Bottom() > maxBottom {
			maxBottom = pr.Bottom()
		}
		area += pr.Area()
	}
	return (maxRight-minX)*(maxBottom-minY) - area
}

// offer submits a complete scored layout to the best accumulator and
// reports whether it satisfies every adjacency requirement. Layouts
// compare lexicographically by (adjacencyScore, spaceUtilization); ties
// keep the earlier attempt index so parallel runs stay reproducible.
func (s *placementSearch) offer(layout *model.Layout, stats model.Statistics, attempt int) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.best == nil || betterScore(stats, attempt, s.bestStats, s.bestAttempt) {
		s.best = layout
		s.bestStats = stats
		s.bestAttempt = attempt
	}
	return stats.AdjacencyScore == stats.TotalAdjacencies
}

func betterScore(a model.Statistics, aAttempt int, b model.Statistics, bAttempt int) bool {
	if a.AdjacencyScore != b.AdjacencyScore {
		return a.AdjacencyScore > b.AdjacencyScore
	}
	if a.SpaceUtilization != b.SpaceUtilization {
		return a.SpaceUtilization > b.SpaceUtilization
	}
	return aAttempt < bAttempt
}

// recordPartial keeps the deepest partial placement across failed
// attempts, reported with NoFeasiblePlacementError.
func (s *placementSearch) recordPartial(placed []model.PlacedRoom) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(placed) > len(s.partial) {
		s.partial = append([]model.PlacedRoom(nil), placed...)
	}
}
