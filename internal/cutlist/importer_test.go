package cutlist

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/piwi3910/plycut/internal/model"
)

func TestDetectCSVDelimiter(t *testing.T) {
	tests := []struct {
		name string
		data string
		want rune
	}{
		{"comma", "a,b,c\n1,2,3\n", ','},
		{"semicolon", "a;b;c\n1;2;3\n", ';'},
		{"tab", "a\tb\tc\n1\t2\t3\n", '\t'},
		{"pipe", "a|b|c\n1|2|3\n", '|'},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectCSVDelimiter([]byte(tc.data)))
		})
	}
}

func TestDetectColumns(t *testing.T) {
	mapping, hasHeader := DetectColumns([]string{"Name", "Length", "Width", "Qty", "Grain"})
	require.True(t, hasHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Length)
	assert.Equal(t, 2, mapping.Width)
	assert.Equal(t, 3, mapping.Quantity)
	assert.Equal(t, 4, mapping.Grain)

	mapping, hasHeader = DetectColumns([]string{"Shelf", "24", "12", "2"})
	require.False(t, hasHeader)
	assert.Equal(t, 0, mapping.Label)
	assert.Equal(t, 1, mapping.Length)
	assert.Equal(t, 2, mapping.Width)
}

func TestImportCSVWithHeader(t *testing.T) {
	csvData := `name,length,width,qty,grain
Side,30,12,2,L
Top,24 1/2,12,1,
Back,30,24,1,W
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 4)

	assert.Equal(t, "Side", result.Pieces[0].Label)
	assert.Equal(t, model.GrainAlongLength, result.Pieces[0].Grain)
	assert.Equal(t, result.Pieces[0].Length, result.Pieces[1].Length)

	assert.Equal(t, "Top", result.Pieces[2].Label)
	assert.InDelta(t, 24.5, result.Pieces[2].Length, 1e-9)
	assert.Equal(t, model.GrainNone, result.Pieces[2].Grain)

	assert.Equal(t, model.GrainAlongWidth, result.Pieces[3].Grain)

	// Sequential ids across quantity expansion.
	for i, p := range result.Pieces {
		assert.Equal(t, i+1, p.ID)
	}
}

func TestImportCSVSkipsBadRows(t *testing.T) {
	csvData := `name,length,width,qty
Good,10,5,1
NoWidth,10,,1
BadQty,10,5,zero
AlsoGood,8,4,1
`
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 2)
	assert.Equal(t, "Good", result.Pieces[0].Label)
	assert.Equal(t, "AlsoGood", result.Pieces[1].Label)
	assert.Len(t, result.Warnings, 3) // header notice plus two skipped rows
}

func TestImportCSVMissingRequiredColumns(t *testing.T) {
	csvData := "name,qty\nSide,2\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "Length")
	assert.Contains(t, result.Errors[0], "Width")
}

func TestImportCSVUnknownGrainWarns(t *testing.T) {
	csvData := "name,length,width,qty,grain\nSide,30,12,1,diagonal\n"
	result := ImportCSVFromReader(strings.NewReader(csvData), ',')
	require.Len(t, result.Pieces, 1)
	assert.Equal(t, model.GrainNone, result.Pieces[0].Grain)
	require.Len(t, result.Warnings, 2)
	assert.Contains(t, result.Warnings[1], "diagonal")
}

func TestImportExcel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parts.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"Name", "Length", "Width", "Qty", "Grain"},
		{"Side", 30, 12, 2, "L"},
		{"Top", 24, 12, 1, ""},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	result := ImportExcel(path)
	require.Empty(t, result.Errors)
	require.Len(t, result.Pieces, 3)
	assert.Equal(t, "Side", result.Pieces[0].Label)
	assert.Equal(t, model.GrainAlongLength, result.Pieces[1].Grain)
	assert.Equal(t, "Top", result.Pieces[2].Label)
	assert.Equal(t, 24.0, result.Pieces[2].Length)
}

func TestImportExcelMissingFile(t *testing.T) {
	result := ImportExcel(filepath.Join(t.TempDir(), "absent.xlsx"))
	require.NotEmpty(t, result.Errors)
	assert.Empty(t, result.Pieces)
}
