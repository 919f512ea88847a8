package main

import (
	"errors"
	"os"

	tex2img "github.com/alnah/go-tex2img"
	"github.com/alnah/go-tex2img/internal/config"
	"github.com/alnah/go-tex2img/internal/hints"
)

// Exit codes for the tex2img CLI.
// Follows Unix conventions: 0=success, 1=general, 2=usage, and custom codes < 126.
const (
	ExitSuccess = 0 // All equations rendered
	ExitGeneral = 1 // General/unexpected error (including render failures)
	ExitUsage   = 2 // Invalid flags or config
	ExitIO      = 3 // Missing input directory, empty batch, write failures
	ExitBrowser = 4 // Browser/Chrome errors
)

// exitCodeFor returns the appropriate exit code for an error.
// It uses errors.Is to check wrapped errors, so callers must use fmt.Errorf("%w", err).
func exitCodeFor(err error) int {
	if err == nil {
		return ExitSuccess
	}

	// Browser errors (exit 4)
	if errors.Is(err, tex2img.ErrBrowserConnect) ||
		errors.Is(err, tex2img.ErrPageCreate) ||
		errors.Is(err, tex2img.ErrPageLoad) {
		return ExitBrowser
	}

	// I/O errors (exit 3)
	if errors.Is(err, os.ErrNotExist) ||
		errors.Is(err, os.ErrPermission) ||
		errors.Is(err, ErrNoSources) ||
		errors.Is(err, ErrReadSource) ||
		errors.Is(err, ErrWriteArtifact) {
		return ExitIO
	}

	// Usage errors (exit 2)
	if errors.Is(err, ErrNoInputDir) ||
		errors.Is(err, ErrNoOutputDir) ||
		errors.Is(err, config.ErrConfigNotFound) ||
		errors.Is(err, config.ErrConfigParse) ||
		errors.Is(err, config.ErrInvalidScale) ||
		errors.Is(err, config.ErrInvalidStroke) ||
		errors.Is(err, config.ErrInvalidColor) ||
		errors.Is(err, config.ErrInvalidTimeout) {
		return ExitUsage
	}

	return ExitGeneral
}

// hintFor returns an actionable hint for the error, or "" when none applies.
// The hint is appended to the logged error message. configName is the
// --config value, used to report which paths were searched.
func hintFor(err error, configName string) string {
	switch {
	case errors.Is(err, tex2img.ErrBrowserConnect),
		errors.Is(err, tex2img.ErrPageCreate),
		errors.Is(err, tex2img.ErrPageLoad):
		return hints.ForBrowserConnect()
	case errors.Is(err, tex2img.ErrTypeset):
		return hints.ForTypeset()
	case errors.Is(err, tex2img.ErrRasterize):
		return hints.ForRasterize()
	case errors.Is(err, config.ErrConfigNotFound):
		return hints.ForConfigNotFound(config.SearchPaths(configName))
	case errors.Is(err, ErrNoSources):
		return hints.ForNoSources(tex2img.SourceExt)
	case errors.Is(err, ErrWriteArtifact):
		return hints.ForOutputDirectory()
	}
	return ""
}
