package export

import (
	"fmt"

	"github.com/yofu/dxf"
	"github.com/yofu/dxf/color"
	"github.com/yofu/dxf/drawing"

	"github.com/piwi3910/floorplan/internal/model"
)

// Layer names used in the exported drawing.
const (
	layerFloor = "FLOOR"
	layerRooms = "ROOMS"
)

// ExportDXF writes the generated layout as a DXF drawing with the floor
// regions on a FLOOR layer and the placed rooms on a ROOMS layer. Each
// rectangle is drawn as four line entities so the file opens in any CAD
// viewer without polyline support.
func ExportDXF(path string, plan model.Plan) error {
	if plan.Result == nil || len(plan.Result.PlacedRooms) == 0 {
		return fmt.Errorf("plan has no generated layout to export")
	}

	d := dxf.NewDrawing()

	if _, err := d.AddLayer(layerFloor, dxf.DefaultColor, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add floor layer: %w", err)
	}
	for _, region := range plan.Regions {
		if err := drawRect(d, region.Rect); err != nil {
			return err
		}
	}

	if _, err := d.AddLayer(layerRooms, color.Red, dxf.DefaultLineType, true); err != nil {
		return fmt.Errorf("failed to add rooms layer: %w", err)
	}
	for _, room := range plan.Result.PlacedRooms {
		if err := drawRect(d, room.Rect()); err != nil {
			return err
		}
	}

	if err := d.SaveAs(path); err != nil {
		return fmt.Errorf("failed to write DXF file: %w", err)
	}
	return nil
}

// drawRect draws a rectangle as four lines on the current layer. The Y
// axis is flipped so the plan's top-left origin maps to conventional
// CAD coordinates.
func drawRect(d *drawing.Drawing, r model.Rect) error {
	x1, y1 := float64(r.X), -float64(r.Y)
	x2, y2 := float64(r.Right()), -float64(r.Bottom())

	segments := [][4]float64{
		{x1, y1, x2, y1},
		{x2, y1, x2, y2},
		{x2, y2, x1, y2},
		{x1, y2, x1, y1},
	}
	for _, s := range segments {
		if _, err := d.Line(s[0], s[1], 0, s[2], s[3], 0); err != nil {
			return fmt.Errorf("failed to draw line: %w", err)
		}
	}
	return nil
}
