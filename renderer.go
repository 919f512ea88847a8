package tex2img

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/alnah/go-tex2img/internal/svgpost"
)

// Renderer orchestrates the LaTeX-to-image pipeline for single equations:
// typeset to SVG, outline pass, margin pass, rasterize.
// Create with NewRenderer(), use Render() per equation, and Close() when done.
type Renderer struct {
	cfg        renderConfig
	typesetter svgTypesetter
	rasterizer rasterizer
}

// NewRenderer creates a Renderer with default configuration.
// Use options to customize behavior (e.g., WithTimeout, WithOutline,
// WithMargin, WithScale).
func NewRenderer(opts ...Option) (*Renderer, error) {
	r := &Renderer{
		cfg: renderConfig{
			timeout: defaultTimeout,
			outline: DefaultOutlineStyle(),
			scale:   1.0,
		},
	}

	for _, opt := range opts {
		opt(r)
	}

	// Create collaborators if not injected (e.g., by tests)
	if r.typesetter == nil {
		r.typesetter = newRodTypesetter(r.cfg.timeout)
	}
	if r.rasterizer == nil {
		r.rasterizer = newRasterizer()
	}

	return r, nil
}

// Density returns the effective raster density: BaseDensity scaled by the
// configured factor, rounded to the nearest integer.
func (r *Renderer) Density() int {
	return int(math.Round(BaseDensity * r.cfg.scale))
}

// Render runs the full pipeline for one equation and returns both artifacts.
// The context is used for cancellation and timeout.
// If input.SVGOnly is true, PNG generation is skipped.
// Recovers from internal panics to prevent crashes from propagating to callers.
func (r *Renderer) Render(ctx context.Context, input Input) (result *Result, err error) {
	defer func() {
		if rec := recover(); rec != nil {
			err = fmt.Errorf("internal error: %v", rec)
		}
	}()

	if strings.TrimSpace(input.TeX) == "" {
		return nil, ErrEmptyTeX
	}

	svg, err := r.typesetter.Typeset(ctx, input.TeX, input.Display)
	if err != nil {
		return nil, fmt.Errorf("typesetting equation: %w", err)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	svg, err = r.postProcess(svg)
	if err != nil {
		return nil, err
	}

	res := &Result{SVG: []byte(svg)}

	if input.SVGOnly {
		return res, nil
	}

	pngBytes, err := r.rasterizer.Rasterize(ctx, svg, r.Density())
	if err != nil {
		return nil, fmt.Errorf("rasterizing equation: %w", err)
	}

	res.PNG = pngBytes
	return res, nil
}

// postProcess applies the outline and margin passes. Order matters: the
// stroke is injected first, then the canvas is widened, because a stroke
// can visually exceed the original bounding box and the margin compensates
// for that clipping risk.
func (r *Renderer) postProcess(svg string) (string, error) {
	doc, err := svgpost.Parse(svg)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostProcess, err)
	}

	if r.cfg.outline.Width > 0 {
		svgpost.ApplyOutline(doc, r.cfg.outline.Color, r.cfg.outline.Width)
	}
	svgpost.ExpandMargin(doc, r.cfg.margin)

	out, err := svgpost.Serialize(doc)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrPostProcess, err)
	}
	return out, nil
}

// Close releases resources (headless Chrome browser).
func (r *Renderer) Close() error {
	if r.typesetter != nil {
		return r.typesetter.Close()
	}
	return nil
}
