// Package project persists cut-list projects as versioned JSON files: the
// run configuration, the requested pieces, and optionally the last result.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/piwi3910/plycut/internal/model"
)

// FormatVersion is written into every project file so older files can be
// migrated when the schema changes.
const FormatVersion = "1.0.0"

// Project is the top-level structure of a saved project file.
type Project struct {
	Version string            `json:"version"`
	Name    string            `json:"name,omitempty"`
	SavedAt string            `json:"saved_at"`
	Config  model.RunConfig   `json:"config"`
	Pieces  []model.Piece     `json:"pieces"`
	LastRun *model.PackingRun `json:"last_run,omitempty"`
}

// New creates a project with the default run configuration.
func New(name string) *Project {
	return &Project{
		Version: FormatVersion,
		Name:    name,
		Config:  model.DefaultRunConfig(),
	}
}

// Save writes the project to path as indented JSON, creating parent
// directories as needed.
func Save(path string, p *Project) error {
	p.Version = FormatVersion
	p.SavedAt = time.Now().UTC().Format(time.RFC3339)

	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// Load reads a project file and validates its shape.
func Load(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read project file: %w", err)
	}

	var p Project
	if err := json.Unmarshal(data, &p); err != nil {
		return nil, fmt.Errorf("failed to parse project file: %w", err)
	}
	if p.Version == "" {
		return nil, fmt.Errorf("invalid project file: missing version field")
	}
	if err := p.Config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid project config: %w", err)
	}
	if p.Pieces == nil {
		p.Pieces = []model.Piece{}
	}
	return &p, nil
}

// DefaultDir returns the per-user directory for project files.
func DefaultDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(configDir, "plycut"), nil
}
