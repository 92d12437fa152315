// Package export provides functionality for exporting generated floor
// plan layouts to various file formats.
package export

import (
	"fmt"
	"math"

	"github.com/go-pdf/fpdf"

	"github.com/piwi3910/floorplan/internal/model"
)

// roomColor represents an RGB color for a placed room.
type roomColor struct {
	R, G, B int
}

var roomColors = []roomColor{
	{R: 76, G: 175, B: 80},  // green
	{R: 33, G: 150, B: 243}, // blue
	{R: 255, G: 152, B: 0},  // orange
	{R: 156, G: 39, B: 176}, // purple
	{R: 0, G: 188, B: 212},  // cyan
	{R: 244, G: 67, B: 54},  // red
	{R: 255, G: 235, B: 59}, // yellow
	{R: 121, G: 85, B: 72},  // brown
}

// Page layout constants (A4 landscape in mm).
const (
	pageWidth    = 297.0
	pageHeight   = 210.0
	marginLeft   = 15.0
	marginRight  = 15.0
	marginTop    = 15.0
	marginBottom = 15.0
	headerHeight = 12.0
	drawAreaTop  = marginTop + headerHeight + 5.0
)

// ExportPDF generates a PDF document for a generated plan: a floor plan
// page with the placed rooms drawn to scale, followed by a summary page
// with statistics and the room schedule.
func ExportPDF(path string, plan model.Plan) error {
	if plan.Result == nil || len(plan.Result.PlacedRooms) == 0 {
		return fmt.Errorf("plan has no generated layout to export")
	}

	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, marginBottom)

	pdf.AddPage()
	renderPlanPage(pdf, plan)

	pdf.AddPage()
	renderSummaryPage(pdf, plan)

	return pdf.OutputFileAndClose(path)
}

// floorBounds computes the bounding box of all floor regions.
func floorBounds(regions []model.Region) model.Rect {
	if len(regions) == 0 {
		return model.Rect{}
	}
	minX, minY := regions[0].X, regions[0].Y
	maxX, maxY := regions[0].Right(), regions[0].Bottom()
	for _, r := range regions[1:] {
		minX = min(minX, r.X)
		minY = min(minY, r.Y)
		maxX = max(maxX, r.Right())
		maxY = max(maxY, r.Bottom())
	}
	return model.Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}
}

// renderPlanPage draws the floor outline and placed rooms on the current page.
func renderPlanPage(pdf *fpdf.Fpdf, plan model.Plan) {
	res := plan.Result
	bounds := floorBounds(plan.Regions)

	// Title
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetXY(marginLeft, marginTop)
	name := plan.Name
	if name == "" {
		name = "Floor Plan"
	}
	title := fmt.Sprintf("%s (%d x %d)", name, bounds.Width, bounds.Height)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, headerHeight, title, "", 0, "L", false, 0, "")

	// Stats line
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetXY(marginLeft, marginTop+headerHeight)
	stats := fmt.Sprintf("Rooms: %d | Floor area: %.0f | Room area: %.0f | Utilization: %.1f%% | Adjacencies: %d/%d",
		len(res.PlacedRooms), res.FloorArea, res.RoomArea, res.SpaceUtilization*100,
		res.AdjacencyScore, res.TotalAdjacencies)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 5, stats, "", 0, "L", false, 0, "")

	// Calculate drawing area and scale to fit the floor bounding box
	drawWidth := pageWidth - marginLeft - marginRight
	drawHeight := pageHeight - drawAreaTop - marginBottom - 10
	scaleX := drawWidth / float64(bounds.Width)
	scaleY := drawHeight / float64(bounds.Height)
	scale := math.Min(scaleX, scaleY)

	canvasW := float64(bounds.Width) * scale
	offsetX := marginLeft + (drawWidth-canvasW)/2
	offsetY := drawAreaTop

	toPage := func(x, y int) (float64, float64) {
		return offsetX + float64(x-bounds.X)*scale, offsetY + float64(y-bounds.Y)*scale
	}

	// Floor regions
	pdf.SetFillColor(235, 235, 230)
	pdf.SetDrawColor(100, 100, 100)
	pdf.SetLineWidth(0.5)
	for _, region := range plan.Regions {
		rx, ry := toPage(region.X, region.Y)
		pdf.Rect(rx, ry, float64(region.Width)*scale, float64(region.Height)*scale, "FD")
	}

	// Placed rooms
	for i, room := range res.PlacedRooms {
		col := roomColors[i%len(roomColors)]
		rx, ry := toPage(room.X, room.Y)
		rw := float64(room.Width) * scale
		rh := float64(room.Height) * scale

		pdf.SetFillColor(col.R, col.G, col.B)
		pdf.SetDrawColor(30, 30, 30)
		pdf.SetLineWidth(0.3)
		pdf.Rect(rx, ry, rw, rh, "FD")

		// Room label (only if rectangle is large enough)
		if rw > 15 && rh > 8 {
			pdf.SetFont("Helvetica", "", labelFontSize(rw, rh))
			pdf.SetTextColor(0, 0, 0)

			label := room.Name
			dims := fmt.Sprintf("%dx%d", room.Width, room.Height)

			labelW := pdf.GetStringWidth(label)
			dimsW := pdf.GetStringWidth(dims)

			if labelW < rw-2 {
				pdf.SetXY(rx+(rw-labelW)/2, ry+rh/2-4)
				pdf.CellFormat(labelW, 4, label, "", 0, "C", false, 0, "")
			}
			if rh > 14 && dimsW < rw-2 {
				pdf.SetXY(rx+(rw-dimsW)/2, ry+rh/2)
				pdf.CellFormat(dimsW, 4, dims, "", 0, "C", false, 0, "")
			}
		}
	}
}

// renderSummaryPage draws statistics, the room schedule, and the
// adjacency outcome table.
func renderSummaryPage(pdf *fpdf.Fpdf, plan model.Plan) {
	res := plan.Result

	// Title
	pdf.SetFont("Helvetica", "B", 16)
	pdf.SetXY(marginLeft, marginTop)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 10, "Layout Summary", "", 0, "L", false, 0, "")

	pdf.SetDrawColor(0, 0, 0)
	pdf.SetLineWidth(0.5)
	pdf.Line(marginLeft, marginTop+12, pageWidth-marginRight, marginTop+12)

	y := marginTop + 18

	// Overall statistics
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Statistics", "", 0, "L", false, 0, "")
	y += 9

	summaryItems := []struct {
		label string
		value string
	}{
		{"Floor Area", fmt.Sprintf("%.0f", res.FloorArea)},
		{"Room Area", fmt.Sprintf("%.0f", res.RoomArea)},
		{"Space Utilization", fmt.Sprintf("%.1f%%", res.SpaceUtilization*100)},
		{"Adjacencies Satisfied", fmt.Sprintf("%d of %d", res.AdjacencyScore, res.TotalAdjacencies)},
		{"Attempts", fmt.Sprintf("%d", res.Attempts)},
		{"Seed", fmt.Sprintf("%d", res.Seed)},
	}

	pdf.SetFont("Helvetica", "", 10)
	for _, item := range summaryItems {
		pdf.SetXY(marginLeft+5, y)
		pdf.CellFormat(60, 6, item.label+":", "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(40, 6, item.value, "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		y += 7
	}

	y += 5

	// Room schedule table
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetXY(marginLeft, y)
	pdf.CellFormat(100, 7, "Room Schedule", "", 0, "L", false, 0, "")
	y += 9

	colWidths := []float64{60, 30, 40, 40, 35, 35}
	headers := []string{"Room", "Position", "Placed Size", "Base Size", "Area", "Expansion"}

	pdf.SetFont("Helvetica", "B", 9)
	pdf.SetFillColor(230, 230, 230)
	xPos := marginLeft
	for i, header := range headers {
		pdf.SetXY(xPos, y)
		pdf.CellFormat(colWidths[i], 6, header, "1", 0, "C", true, 0, "")
		xPos += colWidths[i]
	}
	y += 6

	baseDims := make(map[string]model.Room, len(plan.Rooms))
	for _, r := range plan.Rooms {
		baseDims[r.Name] = r
	}

	pdf.SetFont("Helvetica", "", 9)
	for i, room := range res.PlacedRooms {
		base := baseDims[room.Name]
		used := (room.Width - base.Width) + (room.Height - base.Height)

		xPos = marginLeft
		rowData := []string{
			room.Name,
			fmt.Sprintf("(%d, %d)", room.X, room.Y),
			fmt.Sprintf("%d x %d", room.Width, room.Height),
			fmt.Sprintf("%d x %d", base.Width, base.Height),
			fmt.Sprintf("%d", room.Width*room.Height),
			fmt.Sprintf("%d / %d", used, base.MaxExpansion),
		}

		if i%2 == 0 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}

		for j, cell := range rowData {
			pdf.SetXY(xPos, y)
			pdf.CellFormat(colWidths[j], 6, cell, "1", 0, "C", true, 0, "")
			xPos += colWidths[j]
		}
		y += 6
	}

	// Adjacency outcomes
	if res.TotalAdjacencies > 0 {
		y += 8
		pdf.SetFont("Helvetica", "B", 12)
		pdf.SetXY(marginLeft, y)
		pdf.CellFormat(100, 7, "Desired Adjacencies", "", 0, "L", false, 0, "")
		y += 9

		satisfied := make(map[string]bool, len(res.AdjacentPairs))
		for _, pair := range res.AdjacentPairs {
			satisfied[pair.Key()] = true
		}

		pdf.SetFont("Helvetica", "", 9)
		for _, pair := range plan.Adjacencies {
			status := "not satisfied"
			pdf.SetTextColor(200, 0, 0)
			if satisfied[pair.Key()] {
				status = "satisfied"
				pdf.SetTextColor(0, 140, 0)
			}
			pdf.SetXY(marginLeft+5, y)
			pdf.CellFormat(200, 5, fmt.Sprintf("- %s / %s: %s", pair.RoomA, pair.RoomB, status), "", 0, "L", false, 0, "")
			y += 5
		}
		pdf.SetTextColor(0, 0, 0)
	}

	// Footer
	pdf.SetFont("Helvetica", "I", 8)
	pdf.SetTextColor(120, 120, 120)
	pdf.SetXY(marginLeft, pageHeight-marginBottom)
	pdf.CellFormat(pageWidth-marginLeft-marginRight, 4, "Generated by floorplan - interior layout generator", "", 0, "C", false, 0, "")
}

// labelFontSize returns an appropriate font size based on the rectangle dimensions.
func labelFontSize(w, h float64) float64 {
	minDim := math.Min(w, h)
	switch {
	case minDim > 40:
		return 8
	case minDim > 20:
		return 7
	default:
		return 6
	}
}
