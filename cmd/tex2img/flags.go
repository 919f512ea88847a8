package main

import (
	"fmt"

	flag "github.com/spf13/pflag"

	"github.com/alnah/go-tex2img/internal/config"
)

// commonFlags holds flags shared across output modes.
type commonFlags struct {
	config  string
	quiet   bool
	verbose bool
}

// renderFlags holds typesetting and rasterization flags.
type renderFlags struct {
	inline  bool
	scale   float64
	margin  float64
	timeout string
}

// outlineFlags holds glyph outline flags.
type outlineFlags struct {
	color string
	width float64
}

// cliFlags holds all flags for the tex2img command.
type cliFlags struct {
	common    commonFlags
	inputDir  string
	outputDir string
	render    renderFlags
	outline   outlineFlags
	svgOnly   bool
	keepGoing bool
	help      bool
	version   bool
}

// parseFlags parses command-line arguments into a cliFlags struct.
// The returned FlagSet is needed later to distinguish explicitly set flags
// from defaults when merging with a config file.
func parseFlags(args []string) (*cliFlags, *flag.FlagSet, error) {
	flags := &cliFlags{}
	fs := flag.NewFlagSet("tex2img", flag.ContinueOnError)

	fs.StringVarP(&flags.inputDir, "input", "i", "", "directory containing .tex equation files")
	fs.StringVarP(&flags.outputDir, "output", "o", "", "directory for .svg and .png artifacts")
	fs.StringVarP(&flags.common.config, "config", "c", "", "config file path or name")
	fs.BoolVar(&flags.render.inline, "inline", false, "typeset inline math instead of display math")
	fs.Float64Var(&flags.render.scale, "scale", config.DefaultScale, "raster density multiplier")
	fs.Float64Var(&flags.render.margin, "margin", config.DefaultMargin, "canvas padding in SVG user units")
	fs.StringVar(&flags.render.timeout, "timeout", "", "per-equation typesetting timeout (e.g. 30s)")
	fs.StringVar(&flags.outline.color, "outline-color", config.DefaultStrokeColor, "glyph outline stroke color")
	fs.Float64Var(&flags.outline.width, "outline-width", config.DefaultStrokeWidth, "glyph outline stroke width in SVG user units")
	fs.BoolVar(&flags.svgOnly, "svg-only", false, "skip PNG generation")
	fs.BoolVarP(&flags.keepGoing, "keep-going", "k", false, "continue after per-file render failures")
	fs.BoolVarP(&flags.common.quiet, "quiet", "q", false, "only log errors")
	fs.BoolVarP(&flags.common.verbose, "verbose", "v", false, "enable debug logging")
	fs.BoolVarP(&flags.help, "help", "h", false, "show usage")
	fs.BoolVar(&flags.version, "version", false, "show version")

	if err := fs.Parse(args[1:]); err != nil {
		return nil, nil, fmt.Errorf("parsing flags: %w", err)
	}

	return flags, fs, nil
}

// resolveConfig produces the effective configuration with precedence
// flags > config file > defaults. Only flags the user explicitly set
// override file values; untouched flags carry defaults and must not win
// over an explicit config entry.
func resolveConfig(flags *cliFlags, fs *flag.FlagSet) (*config.Config, error) {
	var cfg *config.Config
	if flags.common.config != "" {
		loaded, err := config.LoadConfig(flags.common.config)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	} else {
		cfg = config.DefaultConfig()
	}

	if fs.Changed("input") {
		cfg.Input.Dir = flags.inputDir
	}
	if fs.Changed("output") {
		cfg.Output.Dir = flags.outputDir
	}
	if fs.Changed("inline") {
		cfg.Render.Inline = flags.render.inline
	}
	if fs.Changed("scale") {
		cfg.Render.Scale = flags.render.scale
	}
	if fs.Changed("margin") {
		cfg.Render.Margin = flags.render.margin
	}
	if fs.Changed("timeout") {
		cfg.Render.Timeout = flags.render.timeout
	}
	if fs.Changed("outline-color") {
		cfg.Outline.Color = flags.outline.color
	}
	if fs.Changed("outline-width") {
		cfg.Outline.Width = flags.outline.width
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
