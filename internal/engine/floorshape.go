package engine

import "github.com/piwi3910/floorplan/internal/model"

// FloorShape is the buildable area formed by a union of rectangular
// regions. Internally it keeps a disjoint dissection of the union so
// containment and area queries are exact for integer coordinates.
type FloorShape struct {
	cells  []model.Rect // pairwise disjoint, union equals the floor
	bounds model.Rect
	area   int
}

// NewFloorShape builds a FloorShape from the given regions. It fails
// with InvalidShapeError if the list is empty or the union area is zero.
// Overlapping input regions are allowed; overlap is counted once.
func NewFloorShape(regions []model.Region) (*FloorShape, error) {
	if len(regions) == 0 {
		return nil, &InvalidShapeError{Reason: "no floor regions defined"}
	}

	var cells []model.Rect
	for _, region := range regions {
		if region.Width <= 0 || region.Height <= 0 {
			continue
		}
		// Keep only the parts of the new region not already covered.
		pieces := []model.Rect{region.Rect}
		for _, cell := range cells {
			var next []model.Rect
			for _, p := range pieces {
				next = append(next, subtractRect(p, cell)...)
			}
			pieces = next
			if len(pieces) == 0 {
				break
			}
		}
		cells = append(cells, pieces...)
	}

	area := 0
	for _, c := range cells {
		area += c.Area()
	}
	if area == 0 {
		return nil, &InvalidShapeError{Reason: "floor union has zero area"}
	}

	bounds := cells[0]
	for _, c := range cells[1:] {
		right, bottom := bounds.Right(), bounds.Bottom()
		if c.X < bounds.X {
			bounds.X = c.X
		}
		if c.Y < bounds.Y {
			bounds.Y = c.Y
		}
		if c.Right() > right {
			right = c.Right()
		}
		if c.Bottom() > bottom {
			bottom = c.Bottom()
		}
		bounds.Width = right - bounds.X
		bounds.Height = bottom - bounds.Y
	}

	return &FloorShape{cells: cells, bounds: bounds, area: area}, nil
}

// TotalArea returns the union area, with overlapping regions counted once.
func (f *FloorShape) TotalArea() int {
	return f.area
}

// Bounds returns the bounding box of the floor shape.
func (f *FloorShape) Bounds() model.Rect {
	return f.bounds
}

// Contains reports whether r is fully covered by the floor union.
// It subtracts every dissection cell from r; full coverage leaves nothing.
func (f *FloorShape) Contains(r model.Rect) bool {
	if r.Width <= 0 || r.Height <= 0 {
		return false
	}
	if !f.bounds.ContainsRect(r) {
		return false
	}
	remaining := []model.Rect{r}
	for _, cell := range f.cells {
		var next []model.Rect
		for _, p := range remaining {
			next = append(next, subtractRect(p, cell)...)
		}
		remaining = next
		if len(remaining) == 0 {
			return true
		}
	}
	return false
}

// subtractRect subtracts sub from base, returning up to 4 rectangles
// covering the parts of base outside sub. This is a classic rectangle
// subtraction operation.
func subtractRect(base, sub model.Rect) []model.Rect {
	if !base.Overlaps(sub) {
		return []model.Rect{base}
	}

	ix := max(base.X, sub.X)
	iy := max(base.Y, sub.Y)
	iRight := min(base.Right(), sub.Right())
	iBottom := min(base.Bottom(), sub.Bottom())

	var result []model.Rect

	// Left portion (full height of base)
	if ix > base.X {
		result = append(result, model.Rect{
			X: base.X, Y: base.Y,
			Width: ix - base.X, Height: base.Height,
		})
	}
	// Right portion (full height of base)
	if iRight < base.Right() {
		result = append(result, model.Rect{
			X: iRight, Y: base.Y,
			Width: base.Right() - iRight, Height: base.Height,
		})
	}
	// Top portion (between left and right)
	if iy > base.Y {
		result = append(result, model.Rect{
			X: ix, Y: base.Y,
			Width: iRight - ix, Height: iy - base.Y,
		})
	}
	// Bottom portion (between left and right)
	if iBottom < base.Bottom() {
		result = append(result, model.Rect{
			X: ix, Y: iBottom,
			Width: iRight - ix, Height: base.Bottom() - iBottom,
		})
	}

	return result
}
