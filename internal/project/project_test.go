package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/piwi3910/plycut/internal/model"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "bookcase.json")

	p := New("bookcase")
	p.Config.Kerf = 0.125
	p.Pieces = []model.Piece{
		{ID: 1, Label: "Side", Length: 72, Width: 11.25, Grain: model.GrainAlongLength},
		{ID: 2, Label: "Shelf", Length: 30, Width: 11.25},
	}

	require.NoError(t, Save(path, p))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, FormatVersion, loaded.Version)
	assert.Equal(t, "bookcase", loaded.Name)
	assert.NotEmpty(t, loaded.SavedAt)
	assert.Equal(t, p.Config, loaded.Config)
	assert.Equal(t, p.Pieces, loaded.Pieces)
	assert.Nil(t, loaded.LastRun)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}

func TestLoadRejectsInvalidFiles(t *testing.T) {
	dir := t.TempDir()

	noVersion := filepath.Join(dir, "noversion.json")
	require.NoError(t, os.WriteFile(noVersion, []byte(`{"config":{"sheet":{"length":96,"width":48},"kerf":0,"max_sheets":1}}`), 0644))
	_, err := Load(noVersion)
	assert.ErrorContains(t, err, "version")

	badConfig := filepath.Join(dir, "badconfig.json")
	require.NoError(t, os.WriteFile(badConfig, []byte(`{"version":"1.0.0","config":{"sheet":{"length":0,"width":48},"kerf":0,"max_sheets":1}}`), 0644))
	_, err = Load(badConfig)
	assert.ErrorIs(t, err, model.ErrInvalidDimension)

	garbage := filepath.Join(dir, "garbage.json")
	require.NoError(t, os.WriteFile(garbage, []byte("not json"), 0644))
	_, err = Load(garbage)
	assert.Error(t, err)
}
