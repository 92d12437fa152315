// Package importer provides CSV and Excel import functionality for room
// lists. It supports automatic delimiter detection, flexible column
// mapping, and case-insensitive header recognition.
package importer

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/floorplan/internal/model"
)

// ImportResult holds the results of an import operation.
type ImportResult struct {
	Rooms       []model.Room
	Adjacencies []model.Adjacency
	Errors      []string
	Warnings    []string
}

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Name      int
	Width     int
	Height    int
	Expansion int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"name":      {"name", "room", "room name", "label", "description", "desc"},
	"width":     {"width", "w", "x"},
	"height":    {"height", "h", "depth", "d", "y"},
	"expansion": {"expansion", "max expansion", "max_expansion", "budget", "exp", "grow"},
}

// adjacencySheetNames are the recognized names for an optional Excel
// sheet listing desired room adjacencies.
var adjacencySheetNames = []string{"adjacencies", "adjacency"}

// DetectCSVDelimiter reads the file content and determines the most likely CSV delimiter.
// It tries comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent (non-one) column count across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1 // Allow variable field counts

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

		// Score: count how many rows have the same column count as the first row
		// Only consider delimiters that produce more than 1 column
		firstCols := len(records[0])
		if firstCols < 2 {
			continue
		}

		score := 0
		for _, row := range records {
			if len(row) == firstCols {
				score++
			}
		}

		// Prefer delimiters with higher consistency and more columns
		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// It performs case-insensitive matching against known aliases for each column role.
// Returns the mapping and true if a header was detected, or a default positional
// mapping and false if no header was found.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Name:      -1,
		Width:     -1,
		Height:    -1,
		Expansion: -1,
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					switch role {
					case "name":
						if mapping.Name == -1 {
							mapping.Name = i
						}
					case "width":
						if mapping.Width == -1 {
							mapping.Width = i
						}
					case "height":
						if mapping.Height == -1 {
							mapping.Height = i
						}
					case "expansion":
						if mapping.Expansion == -1 {
							mapping.Expansion = i
						}
					}
				}
			}
		}
	}

	if !isHeader {
		// Fall back to positional mapping: Name, Width, Height, Expansion
		return ColumnMapping{
			Name:      0,
			Width:     1,
			Height:    2,
			Expansion: 3,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
// Returns empty string if the index is out of range or negative.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts a Room from a row using the given column mapping.
// Returns the room, any error message, and any warning message.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, roomCount int) (model.Room, string, string) {
	name := getCell(row, mapping.Name)
	if name == "" {
		name = fmt.Sprintf("Room %d", roomCount+1)
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return model.Room{}, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := strconv.Atoi(widthStr)
	if err != nil {
		return model.Room{}, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	heightStr := getCell(row, mapping.Height)
	if heightStr == "" {
		return model.Room{}, fmt.Sprintf("%s: Missing height value", rowLabel), ""
	}
	height, err := strconv.Atoi(heightStr)
	if err != nil {
		return model.Room{}, fmt.Sprintf("%s: Invalid height '%s'", rowLabel, heightStr), ""
	}

	if width <= 0 || height <= 0 {
		return model.Room{}, fmt.Sprintf("%s: Width and height must be positive", rowLabel), ""
	}

	// Optional expansion budget
	expansion := 0
	var warning string
	expStr := getCell(row, mapping.Expansion)
	if expStr != "" {
		expansion, err = strconv.Atoi(expStr)
		if err != nil || expansion < 0 {
			warning = fmt.Sprintf("%s: Invalid expansion '%s', defaulting to 0", rowLabel, expStr)
			expansion = 0
		}
	}

	return model.NewRoom(name, width, height, expansion), "", warning
}

// isEmptyRow returns true if the row has no meaningful content.
func isEmptyRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

// ImportCSV imports rooms from a CSV file.
// It automatically detects the delimiter and maps columns by header names.
// Supports comma, semicolon, tab, and pipe delimiters.
func ImportCSV(path string) ImportResult {
	result := ImportResult{}

	data, err := os.ReadFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open file: %v", err))
		return result
	}

	if len(bytes.TrimSpace(data)) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	delimiter := DetectCSVDelimiter(data)
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		result.Warnings = append(result.Warnings, fmt.Sprintf("Detected %s delimiter", delimName))
	}

	reader := csv.NewReader(bytes.NewReader(data))
	reader.Comma = delimiter
	reader.LazyQuotes = true
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	result = importFromRows(records, "Line", result.Warnings)
	return result
}

// ImportCSVFromReader imports rooms from a CSV reader with a specific delimiter.
// This is useful for testing or when the delimiter is already known.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ImportResult {
	result := ImportResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	if len(records) == 0 {
		result.Errors = append(result.Errors, "File is empty")
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports rooms from an Excel (.xlsx) file.
// Reads the first sheet and auto-detects column mapping from headers.
// A sheet named "adjacencies" with room_a/room_b columns is imported as
// desired adjacency pairs.
func ImportExcel(path string) ImportResult {
	result := ImportResult{}

	f, err := excelize.OpenFile(path)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot open Excel file: %v", err))
		return result
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		result.Errors = append(result.Errors, "Excel file has no sheets")
		return result
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read Excel data: %v", err))
		return result
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "Sheet is empty")
		return result
	}

	result = importFromRows(rows, "Row", nil)

	if sheet := findAdjacencySheet(sheets); sheet != "" {
		pairs, warnings := importAdjacencySheet(f, sheet)
		result.Adjacencies = pairs
		result.Warnings = append(result.Warnings, warnings...)
	}

	return result
}

func findAdjacencySheet(sheets []string) string {
	for _, sheet := range sheets {
		normalized := strings.ToLower(strings.TrimSpace(sheet))
		for _, name := range adjacencySheetNames {
			if normalized == name {
				return sheet
			}
		}
	}
	return ""
}

// importAdjacencySheet reads room pairs from an adjacency sheet. The
// first row is skipped when it looks like a header.
func importAdjacencySheet(f *excelize.File, sheet string) ([]model.Adjacency, []string) {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, []string{fmt.Sprintf("Cannot read sheet %q: %v", sheet, err)}
	}

	var pairs []model.Adjacency
	var warnings []string
	for i, row := range rows {
		if isEmptyRow(row) {
			continue
		}
		a := getCell(row, 0)
		b := getCell(row, 1)
		if i == 0 && isAdjacencyHeader(a, b) {
			continue
		}
		if a == "" || b == "" {
			warnings = append(warnings, fmt.Sprintf("Sheet %q row %d: adjacency needs two room names", sheet, i+1))
			continue
		}
		pairs = append(pairs, model.Adjacency{RoomA: a, RoomB: b})
	}
	return pairs, warnings
}

func isAdjacencyHeader(a, b string) bool {
	headers := map[string]bool{"room_a": true, "room a": true, "rooma": true, "from": true,
		"room_b": true, "room b": true, "roomb": true, "to": true}
	return headers[strings.ToLower(a)] || headers[strings.ToLower(b)]
}

// importFromRows is the shared import logic for both CSV and Excel data.
// It detects headers, maps columns, and parses each row into rooms.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ImportResult {
	result := ImportResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	// Detect columns from first row
	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		// Validate that required columns were found
		missing := []string{}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if mapping.Height == -1 {
			missing = append(missing, "Height")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else {
		// No header: check if first row is numeric (positional mapping)
		if len(rows[0]) >= 3 {
			if _, err := strconv.Atoi(strings.TrimSpace(rows[0][1])); err != nil {
				// First column after name is not numeric - might be an unrecognized header
				// Skip it as a header but use positional mapping
				startRow = 1
				result.Warnings = append(result.Warnings, "Detected header row, skipping")
			}
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		lineNum := i + 1

		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, lineNum)
		room, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Rooms))

		if errMsg != "" {
			result.Errors = append(result.Errors, errMsg)
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Rooms = append(result.Rooms, room)
	}

	return result
}
