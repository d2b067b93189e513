package config

import (
	"context"
	"os"
	"path/filepath"

	"github.com/rshade/adminui/internal/logging"
)

// ProjectOverlayName is the project-local overlay file name.
const ProjectOverlayName = ".adminui.yaml"

// applyProjectOverlay merges projectDir/.adminui.yaml onto cfg. A missing
// overlay is not an error; a broken one is logged and skipped so the global
// configuration still applies.
func applyProjectOverlay(ctx context.Context, cfg *Config, projectDir string) {
	if projectDir == "" {
		return
	}

	overlayPath := filepath.Join(projectDir, ProjectOverlayName)
	if _, err := os.Stat(overlayPath); err != nil {
		return
	}

	merged := *cfg
	if err := ShallowMergeYAML(&merged, overlayPath); err != nil {
		logger := logging.FromContext(ctx)
		logger.Warn().
			Str("component", "config").
			Str("operation", "merge_project_config").
			Err(err).
			Str("overlay_path", overlayPath).
			Msg("failed to merge project config, using global config")
		return
	}
	*cfg = merged
}
