package render

import (
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/plycut/internal/model"
)

func testLayout() model.SheetLayout {
	return model.SheetLayout{
		Index: 0,
		Sheet: model.SheetSpec{Length: 96, Width: 48},
		Placements: []model.Placement{
			{PieceID: 1, X: 0, Y: 0, Width: 24, Height: 48},
			{PieceID: 2, X: 24.125, Y: 0, Width: 20, Height: 30},
		},
	}
}

func TestSheetImage(t *testing.T) {
	img, err := SheetImage(testLayout(), 600)
	require.NoError(t, err)

	bounds := img.Bounds()
	// Length axis is the longer one, so the height maps to maxEdge.
	assert.Equal(t, 600, bounds.Dy())
	assert.Equal(t, 300, bounds.Dx())
}

func TestSheetImageInvalidMaxEdge(t *testing.T) {
	_, err := SheetImage(testLayout(), 0)
	assert.Error(t, err)
}

func TestWritePNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sheet.png")
	run := model.NewPackingRun(model.DefaultRunConfig())
	run.Sheets = []model.SheetLayout{testLayout()}

	require.NoError(t, WritePNG(path, run, 0, 400))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()

	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	assert.Equal(t, 400, cfg.Height)

	assert.Error(t, WritePNG(path, run, 3, 400), "out-of-range sheet index must fail")
}
