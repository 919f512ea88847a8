package tex2img

import "time"

// Output file extensions and the raster density reference.
const (
	// SourceExt is the recognized equation source extension.
	SourceExt = ".tex"
	// VectorExt is the extension of the written vector artifact.
	VectorExt = ".svg"
	// RasterExt is the extension of the written raster artifact.
	RasterExt = ".png"

	// BaseDensity is the native pixel density of the vector output.
	// The effective raster density is BaseDensity multiplied by the
	// configured scale factor.
	BaseDensity = 72
)

// OutlineStyle configures the stroke added behind every glyph fill.
// Width is in SVG user units; MathJax emits 1000 units per em, so widths
// in the tens are hairlines and widths in the hundreds are heavy.
type OutlineStyle struct {
	Color string
	Width float64
}

// DefaultOutlineStyle returns the stroke applied when none is configured:
// a black outline slightly thickening each glyph.
func DefaultOutlineStyle() OutlineStyle {
	return OutlineStyle{Color: "#000000", Width: 40}
}

// Input contains rendering parameters for one equation.
type Input struct {
	TeX     string // LaTeX source (required)
	Display bool   // Display (block) math layout instead of inline
	SVGOnly bool   // Skip PNG generation (for debugging)
}

// Result holds the rendered artifacts for one equation.
type Result struct {
	SVG []byte // post-processed vector document
	PNG []byte // raster image, nil when Input.SVGOnly was set
}

// Option configures a Renderer.
type Option func(*Renderer)

// renderConfig holds internal configuration for Renderer.
type renderConfig struct {
	timeout time.Duration
	outline OutlineStyle
	margin  float64
	scale   float64
}

// defaultTimeout is used when no timeout is specified.
const defaultTimeout = 30 * time.Second

// WithTimeout sets the per-equation typesetting timeout.
// Panics if d <= 0 (programmer error, similar to time.NewTicker).
func WithTimeout(d time.Duration) Option {
	if d <= 0 {
		panic("tex2img: WithTimeout duration must be positive")
	}
	return func(r *Renderer) {
		r.cfg.timeout = d
	}
}

// WithOutline sets the outline stroke applied to glyph paths.
// A zero-width style disables the outline pass.
func WithOutline(style OutlineStyle) Option {
	return func(r *Renderer) {
		r.cfg.outline = style
	}
}

// WithMargin sets the canvas padding in SVG user units.
// Zero and negative margins disable the margin pass.
func WithMargin(margin float64) Option {
	return func(r *Renderer) {
		r.cfg.margin = margin
	}
}

// WithScale sets the raster density multiplier.
// Panics if scale <= 0 (programmer error, matching WithTimeout).
func WithScale(scale float64) Option {
	if scale <= 0 {
		panic("tex2img: WithScale factor must be positive")
	}
	return func(r *Renderer) {
		r.cfg.scale = scale
	}
}
