// Command hospitalclean runs the patient-export cleaning pipeline top to
// bottom: it reads the raw workbook, cleans and deduplicates it, renders the
// figures and writes the cleaned workbook plus summaries, then prints the
// output paths.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"hospitalcli/internal/config"
	"hospitalcli/internal/infrastructure"
	"hospitalcli/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	logger := infrastructure.InitializeLogger(cfg.Logging)
	paths := cfg.BuildPaths()

	result, err := pipeline.New(logger, paths).Run(context.Background())
	if err != nil {
		logger.Error("pipeline failed", "error", err)
		os.Exit(1)
	}

	fmt.Println("Saved:", strings.Join(result.OutputPaths, " "))
}
