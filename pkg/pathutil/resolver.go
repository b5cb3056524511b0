// Package pathutil provides centralized path management for the database and generated documents.
package pathutil

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Default locations.
const (
	DefaultOutputDir = "generated"
	appDir           = "invoice"
	dbFileName       = "invoices.db"
)

// PathResolver manages the database path and the output directory of generated documents.
type PathResolver struct {
	databasePath string
	outputDir    string
}

// Config represents the configuration for PathResolver.
type Config struct {
	// DatabasePath is the SQLite database file
	DatabasePath string
	// OutputDir is where generated invoices and timesheets are written
	OutputDir string
}

// New creates a new PathResolver with the given configuration.
// If DatabasePath is empty, it defaults to $XDG_DATA_HOME/invoice/invoices.db.
// If OutputDir is empty, it defaults to ./generated.
func New(config Config) *PathResolver {
	dbPath := config.DatabasePath
	if dbPath == "" {
		dbPath = DefaultDatabasePath()
	}

	outputDir := config.OutputDir
	if outputDir == "" {
		outputDir = DefaultOutputDir
	}

	return &PathResolver{
		databasePath: dbPath,
		outputDir:    outputDir,
	}
}

// DefaultDatabasePath returns the database location under the XDG data directory.
func DefaultDatabasePath() string {
	return filepath.Join(xdg.DataHome, appDir, dbFileName)
}

// GetDatabasePath returns the database file path.
func (p *PathResolver) GetDatabasePath() string {
	return p.databasePath
}

// GetOutputDir returns the output directory.
func (p *PathResolver) GetOutputDir() string {
	return p.outputDir
}

// UniquePath returns the output path for name. Unless overwrite is set, an
// existing file is never reused: "_(1)", "_(2)", ... is inserted before the
// extension until a free name is found. The output directory is created.
func (p *PathResolver) UniquePath(name string, overwrite bool) (string, error) {
	if err := p.EnsureDir(p.outputDir); err != nil {
		return "", err
	}

	full := filepath.Join(p.outputDir, name)
	if overwrite || !p.FileExists(full) {
		return full, nil
	}

	ext := filepath.Ext(name)
	base := strings.TrimSuffix(filepath.Base(name), ext)
	for i := 1; ; i++ {
		candidate := filepath.Join(p.outputDir, fmt.Sprintf("%s_(%d)%s", base, i, ext))
		if !p.FileExists(candidate) {
			return candidate, nil
		}
	}
}

// EnsureDir creates a directory if it doesn't exist.
func (p *PathResolver) EnsureDir(dirPath string) error {
	if err := os.MkdirAll(dirPath, 0755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dirPath, err)
	}
	return nil
}

// FileExists checks if a file exists.
func (p *PathResolver) FileExists(filePath string) bool {
	_, err := os.Stat(filePath)
	return err == nil
}
