package config

import (
	"fmt"
	"os"
	"path/filepath"
)

// Paths is the single source of truth for every file path the pipeline
// touches. All output paths hang off the configured output directory.
type Paths struct {
	InputFile  string
	OutputDir  string
	FiguresDir string

	// Well-known output files
	WorkbookFile string
	SummaryFile  string
}

// BuildPaths resolves the configured names into concrete paths.
func (c *Config) BuildPaths() *Paths {
	outDir := c.Output.Dir
	if outDir == "" {
		outDir = "."
	}
	return &Paths{
		InputFile:    c.Input.Path,
		OutputDir:    outDir,
		FiguresDir:   filepath.Join(outDir, c.Output.FiguresDir),
		WorkbookFile: filepath.Join(outDir, c.Output.WorkbookName),
		SummaryFile:  filepath.Join(outDir, c.Output.SummaryName),
	}
}

// FigurePath returns the path of a chart image inside the figures directory.
func (p *Paths) FigurePath(name string) string {
	return filepath.Join(p.FiguresDir, name)
}

// EnsureDirectories creates the output and figures directories when missing.
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.OutputDir, p.FiguresDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}
