package cutlist

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/plycut/internal/model"
	"github.com/piwi3910/plycut/internal/units"
)

// ColumnMapping maps semantic column roles to their indices in the data.
type ColumnMapping struct {
	Label    int
	Length   int
	Width    int
	Quantity int
	Grain    int
}

// headerAliases maps canonical column names to their accepted aliases (all lowercase).
var headerAliases = map[string][]string{
	"label":    {"label", "name", "part", "part name", "description", "desc", "piece", "item"},
	"length":   {"length", "len", "l", "height", "h", "y"},
	"width":    {"width", "w", "x"},
	"quantity": {"quantity", "qty", "count", "num", "amount", "pcs", "pieces"},
	"grain":    {"grain", "grain direction", "direction", "grain dir", "orientation"},
}

// DetectCSVDelimiter determines the most likely CSV delimiter by trying
// comma, semicolon, tab, and pipe. The delimiter that produces the most
// consistent multi-column split across lines wins.
func DetectCSVDelimiter(data []byte) rune {
	candidates := []rune{',', ';', '\t', '|'}
	bestDelimiter := ','
	bestScore := 0

	for _, delim := range candidates {
		reader := csv.NewReader(bytes.NewReader(data))
		reader.Comma = delim
		reader.LazyQuotes = true
		reader.FieldsPerRecord = -1

		records, err := reader.ReadAll()
		if err != nil || len(records) < 1 {
			continue
		}

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

		weighted := score*10 + firstCols
		if weighted > bestScore {
			bestScore = weighted
			bestDelimiter = delim
		}
	}

	return bestDelimiter
}

// DetectColumns examines a header row and returns a ColumnMapping.
// Matching is case-insensitive against the known aliases. Returns the
// mapping and true if a header was detected, or a default positional
// mapping (label, length, width, quantity, grain) and false otherwise.
func DetectColumns(row []string) (ColumnMapping, bool) {
	mapping := ColumnMapping{
		Label:    -1,
		Length:   -1,
		Width:    -1,
		Quantity: -1,
		Grain:    -1,
	}

	assign := func(role string, i int) {
		switch role {
		case "label":
			if mapping.Label == -1 {
				mapping.Label = i
			}
		case "length":
			if mapping.Length == -1 {
				mapping.Length = i
			}
		case "width":
			if mapping.Width == -1 {
				mapping.Width = i
			}
		case "quantity":
			if mapping.Quantity == -1 {
				mapping.Quantity = i
			}
		case "grain":
			if mapping.Grain == -1 {
				mapping.Grain = i
			}
		}
	}

	isHeader := false
	for i, cell := range row {
		normalized := strings.ToLower(strings.TrimSpace(cell))
		for role, aliases := range headerAliases {
			for _, alias := range aliases {
				if normalized == alias {
					isHeader = true
					assign(role, i)
				}
			}
		}
	}

	if !isHeader {
		return ColumnMapping{
			Label:    0,
			Length:   1,
			Width:    2,
			Quantity: 3,
			Grain:    4,
		}, false
	}

	return mapping, true
}

// getCell safely retrieves a cell value from a row by column index.
func getCell(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

// parseRow extracts the pieces of one row using the given column mapping.
// Dimensions accept the same decimal, fraction, and mixed-number forms as
// the text notation. Returns the pieces, an error message, and a warning.
func parseRow(row []string, mapping ColumnMapping, rowLabel string, nextID int) ([]model.Piece, string, string) {
	label := getCell(row, mapping.Label)

	lengthStr := getCell(row, mapping.Length)
	if lengthStr == "" {
		return nil, fmt.Sprintf("%s: Missing length value", rowLabel), ""
	}
	length, err := units.ParseInches(lengthStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid length '%s'", rowLabel, lengthStr), ""
	}

	widthStr := getCell(row, mapping.Width)
	if widthStr == "" {
		return nil, fmt.Sprintf("%s: Missing width value", rowLabel), ""
	}
	width, err := units.ParseInches(widthStr)
	if err != nil {
		return nil, fmt.Sprintf("%s: Invalid width '%s'", rowLabel, widthStr), ""
	}

	qty := 1
	if qtyStr := getCell(row, mapping.Quantity); qtyStr != "" {
		qty, err = strconv.Atoi(qtyStr)
		if err != nil {
			return nil, fmt.Sprintf("%s: Invalid quantity '%s'", rowLabel, qtyStr), ""
		}
	}

	if length <= 0 || width <= 0 || qty <= 0 {
		return nil, fmt.Sprintf("%s: Length, width, and quantity must be positive", rowLabel), ""
	}

	grain := model.GrainNone
	var warning string
	if grainStr := getCell(row, mapping.Grain); grainStr != "" {
		g, ok := model.ParseGrain(strings.ToLower(grainStr))
		if ok {
			grain = g
		} else {
			warning = fmt.Sprintf("%s: Unknown grain direction '%s', defaulting to none", rowLabel, grainStr)
		}
	}

	pieces := make([]model.Piece, 0, qty)
	for i := 0; i < qty; i++ {
		pieces = append(pieces, model.Piece{
			ID:     nextID + i + 1,
			Label:  label,
			Length: length,
			Width:  width,
			Grain:  grain,
		})
	}
	return pieces, "", warning
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

// ImportCSV imports pieces from a CSV file. The delimiter is detected
// automatically and columns are mapped by header names when present.
func ImportCSV(path string) ParseResult {
	result := ParseResult{}

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
	var warnings []string
	if delimiter != ',' {
		delimName := map[rune]string{';': "semicolon", '\t': "tab", '|': "pipe"}[delimiter]
		warnings = append(warnings, fmt.Sprintf("Detected %s delimiter", delimName))
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

	return importFromRows(records, "Line", warnings)
}

// ImportCSVFromReader imports pieces from a CSV reader with a known delimiter.
func ImportCSVFromReader(reader io.Reader, delimiter rune) ParseResult {
	result := ParseResult{}

	csvReader := csv.NewReader(reader)
	csvReader.Comma = delimiter
	csvReader.LazyQuotes = true
	csvReader.FieldsPerRecord = -1

	records, err := csvReader.ReadAll()
	if err != nil {
		result.Errors = append(result.Errors, fmt.Sprintf("Cannot read CSV: %v", err))
		return result
	}

	return importFromRows(records, "Line", nil)
}

// ImportExcel imports pieces from the first sheet of an .xlsx workbook,
// auto-detecting the column mapping from headers.
func ImportExcel(path string) ParseResult {
	result := ParseResult{}

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

	return importFromRows(rows, "Row", nil)
}

// importFromRows is the shared import logic for CSV and Excel data.
func importFromRows(rows [][]string, rowPrefix string, initialWarnings []string) ParseResult {
	result := ParseResult{
		Warnings: initialWarnings,
	}

	if len(rows) == 0 {
		result.Errors = append(result.Errors, "No data rows found")
		return result
	}

	mapping, hasHeader := DetectColumns(rows[0])
	startRow := 0
	if hasHeader {
		startRow = 1
		result.Warnings = append(result.Warnings, "Detected header row, skipping")

		missing := []string{}
		if mapping.Length == -1 {
			missing = append(missing, "Length")
		}
		if mapping.Width == -1 {
			missing = append(missing, "Width")
		}
		if len(missing) > 0 {
			result.Errors = append(result.Errors, fmt.Sprintf("Required columns not found in header: %s", strings.Join(missing, ", ")))
			return result
		}
	} else if len(rows[0]) >= 3 {
		// No recognized header: if the length column of the first row is not
		// numeric it is probably an unknown header, skip it.
		if _, err := units.ParseInches(strings.TrimSpace(rows[0][1])); err != nil {
			startRow = 1
			result.Warnings = append(result.Warnings, "Detected header row, skipping")
		}
	}

	for i := startRow; i < len(rows); i++ {
		row := rows[i]
		if isEmptyRow(row) {
			continue
		}

		rowLabel := fmt.Sprintf("%s %d", rowPrefix, i+1)
		pieces, errMsg, warning := parseRow(row, mapping, rowLabel, len(result.Pieces))

		if errMsg != "" {
			result.Warnings = append(result.Warnings, errMsg+", skipping")
			continue
		}
		if warning != "" {
			result.Warnings = append(result.Warnings, warning)
		}

		result.Pieces = append(result.Pieces, pieces...)
	}

	return result
}
