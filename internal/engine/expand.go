package engine

import "github.com/piwi3910/floorplan/internal/model"

// expandLayout grows placed rooms into unused floor area. Rooms are
// processed in the original input order; each room alternates unit growth
// in width and height, anchored at its placed top-left corner, until both
// directions are blocked or its expansion budget is exhausted. A growth
// step is blocked when the grown rectangle would leave the floor shape,
// overlap another room, or create a forbidden shared wall.
func expandLayout(layout *model.Layout, shape *FloorShape, rooms []model.Room, avoid map[string]map[string]bool) {
	for _, room := range rooms {
		p, ok := layout.Get(room.Name)
		if !ok {
			continue
		}
		for p.ExpansionUsed() < p.MaxExpansion {
			grewWidth := false
			cand := p
			cand.Width++
			if expansionFits(cand, layout, shape, avoid) {
				p = cand
				layout.Update(p)
				grewWidth = true
			}
			if p.ExpansionUsed() >= p.MaxExpansion {
				break
			}
			grewHeight := false
			cand = p
			cand.Height++
			if expansionFits(cand, layout, shape, avoid) {
				p = cand
				layout.Update(p)
				grewHeight = true
			}
			if !grewWidth && !grewHeight {
				break
			}
		}
	}
}

func expansionFits(p model.PlacedRoom, layout *model.Layout, shape *FloorShape, avoid map[string]map[string]bool) bool {
	r := p.Rect()
	if !shape.Contains(r) {
		return false
	}
	if layout.Overlaps(r, p.Name) {
		return false
	}
	partners := avoid[p.Name]
	if len(partners) == 0 {
		return true
	}
	for _, other := range layout.Placed() {
		if other.Name == p.Name {
			continue
		}
		if partners[other.Name] && r.SharesWall(other.Rect()) {
			return false
		}
	}
	return true
}
