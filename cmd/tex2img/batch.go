package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	flag "github.com/spf13/pflag"

	tex2img "github.com/alnah/go-tex2img"
	"github.com/alnah/go-tex2img/internal/fileutil"
)

// Sentinel errors for batch operations.
var (
	ErrNoInputDir    = errors.New("no input directory specified")
	ErrNoOutputDir   = errors.New("no output directory specified")
	ErrNoSources     = errors.New("no equation source files found")
	ErrReadSource    = errors.New("failed to read equation source")
	ErrWriteArtifact = errors.New("failed to write artifact")
	ErrRendererInit  = errors.New("failed to initialize renderer")
)

// equationRenderer is the interface for the rendering service.
type equationRenderer interface {
	Render(ctx context.Context, input tex2img.Input) (*tex2img.Result, error)
	Close() error
}

// Compile-time interface implementation check.
var _ equationRenderer = (*tex2img.Renderer)(nil)

// batchParams holds the resolved settings for one batch run.
type batchParams struct {
	inputDir  string
	outputDir string
	display   bool
	svgOnly   bool
	keepGoing bool
}

// batchStats summarizes a batch run.
type batchStats struct {
	written int
	skipped int
	failed  int
}

// run resolves configuration, builds the renderer, and executes the batch.
func run(ctx context.Context, flags *cliFlags, fs *flag.FlagSet, logger *log.Logger) error {
	cfg, err := resolveConfig(flags, fs)
	if err != nil {
		return err
	}
	if cfg.Input.Dir == "" {
		return ErrNoInputDir
	}
	if cfg.Output.Dir == "" {
		return ErrNoOutputDir
	}

	opts := []tex2img.Option{
		tex2img.WithOutline(tex2img.OutlineStyle{Color: cfg.Outline.Color, Width: cfg.Outline.Width}),
		tex2img.WithMargin(cfg.Render.Margin),
		tex2img.WithScale(cfg.Render.Scale),
	}
	if d := cfg.ParsedTimeout(); d > 0 {
		opts = append(opts, tex2img.WithTimeout(d))
	}

	renderer, err := tex2img.NewRenderer(opts...)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRendererInit, err)
	}
	defer func() {
		if closeErr := renderer.Close(); closeErr != nil {
			logger.Warnf("closing renderer: %v", closeErr)
		}
	}()

	stats, err := runBatch(ctx, renderer, logger, batchParams{
		inputDir:  cfg.Input.Dir,
		outputDir: cfg.Output.Dir,
		display:   !cfg.Render.Inline,
		svgOnly:   flags.svgOnly,
		keepGoing: flags.keepGoing,
	})
	if err != nil {
		return err
	}

	logger.Infof("done: %d written, %d skipped, %d failed", stats.written, stats.skipped, stats.failed)
	if stats.failed > 0 {
		return fmt.Errorf("%d of %d equations failed", stats.failed, stats.written+stats.failed)
	}
	return nil
}

// runBatch renders every eligible source file in params.inputDir, strictly
// in the enumerator's sorted order. Each file ends in one of three states:
// written (both artifacts on disk), skipped (empty source), or failed.
// Failures abort the batch unless keepGoing is set; already-written
// artifacts are never cleaned up.
func runBatch(ctx context.Context, renderer equationRenderer, logger *log.Logger, params batchParams) (batchStats, error) {
	var stats batchStats

	if err := fileutil.EnsureDir(params.outputDir); err != nil {
		return stats, err
	}

	names, err := fileutil.ListSources(params.inputDir, tex2img.SourceExt)
	if err != nil {
		return stats, err
	}
	if len(names) == 0 {
		return stats, fmt.Errorf("%w: %s", ErrNoSources, params.inputDir)
	}

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		srcPath := filepath.Join(params.inputDir, name)
		data, err := os.ReadFile(srcPath) // #nosec G304 -- enumerated from the configured input dir
		if err != nil {
			return stats, fmt.Errorf("%w: %s: %v", ErrReadSource, srcPath, err)
		}

		tex := string(data)
		if strings.TrimSpace(tex) == "" {
			logger.Warnf("skipping %s: empty equation source", name)
			stats.skipped++
			continue
		}

		base := fileutil.BaseName(name)
		result, err := renderer.Render(ctx, tex2img.Input{
			TeX:     tex,
			Display: params.display,
			SVGOnly: params.svgOnly,
		})
		if err != nil {
			if params.keepGoing {
				logger.Errorf("rendering %s: %v", name, err)
				stats.failed++
				continue
			}
			return stats, fmt.Errorf("rendering %s: %w", name, err)
		}

		svgPath := filepath.Join(params.outputDir, base+tex2img.VectorExt)
		if err := os.WriteFile(svgPath, result.SVG, fileutil.FilePermissions); err != nil {
			return stats, fmt.Errorf("%w: %s: %v", ErrWriteArtifact, svgPath, err)
		}
		logger.Infof("wrote %s", svgPath)

		if !params.svgOnly {
			pngPath := filepath.Join(params.outputDir, base+tex2img.RasterExt)
			if err := os.WriteFile(pngPath, result.PNG, fileutil.FilePermissions); err != nil {
				return stats, fmt.Errorf("%w: %s: %v", ErrWriteArtifact, pngPath, err)
			}
			logger.Infof("wrote %s", pngPath)
		}

		stats.written++
	}

	return stats, nil
}
