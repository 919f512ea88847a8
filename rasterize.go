package tex2img

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"math"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/srwiley/oksvg"
	"github.com/srwiley/rasterx"

	"github.com/alnah/go-tex2img/internal/svgpost"
)

// rasterizer abstracts SVG to PNG conversion to allow different backends.
type rasterizer interface {
	Rasterize(ctx context.Context, svg string, density int) ([]byte, error)
}

// Compile-time interface checks
var (
	_ rasterizer = (*rsvgRasterizer)(nil)
	_ rasterizer = (*rasterxRasterizer)(nil)
)

// rsvgBinary is the librsvg conversion tool looked up on PATH.
// Override with TEX2IMG_RSVG_BIN to point at a custom binary.
const rsvgBinary = "rsvg-convert"

// newRasterizer selects a rasterization backend: rsvg-convert when
// installed (best fidelity), otherwise the in-process rasterx fallback.
func newRasterizer() rasterizer {
	bin := os.Getenv("TEX2IMG_RSVG_BIN")
	if bin == "" {
		bin = rsvgBinary
	}
	if path, err := exec.LookPath(bin); err == nil {
		return &rsvgRasterizer{bin: path}
	}
	return &rasterxRasterizer{}
}

// rsvgRasterizer shells out to rsvg-convert, piping SVG text through stdin
// and reading PNG bytes from stdout.
type rsvgRasterizer struct {
	bin string
}

// Rasterize converts SVG text to PNG at the given density. The density is
// translated to rsvg-convert's zoom factor relative to BaseDensity.
func (r *rsvgRasterizer) Rasterize(ctx context.Context, svg string, density int) ([]byte, error) {
	zoom := float64(density) / BaseDensity

	cmd := exec.CommandContext(ctx, r.bin,
		"-f", "png",
		"-z", strconv.FormatFloat(zoom, 'f', 4, 64),
	)
	cmd.Stdin = strings.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %s: %v: %s", ErrRasterize, r.bin, err, errBuf.String())
	}
	if out.Len() == 0 {
		return nil, fmt.Errorf("%w: %s produced no output", ErrRasterize, r.bin)
	}
	return out.Bytes(), nil
}

// rasterxRasterizer renders SVG in-process with oksvg and rasterx. Used when
// rsvg-convert is not installed. Pixel dimensions are derived from the
// declared width when one is present, falling back to viewBox units at one
// pixel per unit at BaseDensity.
type rasterxRasterizer struct{}

// Pixel equivalents of CSS length units at BaseDensity.
var unitPixels = map[string]float64{
	"":   1,
	"px": 1,
	"pt": 96.0 / 72,
	"em": 16,
	"ex": 8,
}

func (r *rasterxRasterizer) Rasterize(ctx context.Context, svg string, density int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	icon, err := oksvg.ReadIconStream(strings.NewReader(svg))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRasterize, err)
	}
	if icon.ViewBox.W <= 0 || icon.ViewBox.H <= 0 {
		return nil, fmt.Errorf("%w: document has no usable viewBox", ErrRasterize)
	}

	wPx := icon.ViewBox.W * float64(density) / BaseDensity
	if declared, ok := declaredWidthPixels(svg, density); ok {
		wPx = declared
	}
	hPx := wPx * icon.ViewBox.H / icon.ViewBox.W

	w := pixelDim(wPx)
	h := pixelDim(hPx)

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	scanner := rasterx.NewScannerGV(w, h, img, img.Bounds())
	icon.SetTarget(0, 0, float64(w), float64(h))
	icon.Draw(rasterx.NewDasher(w, h, scanner), 1.0)

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("%w: encoding PNG: %v", ErrRasterize, err)
	}
	return buf.Bytes(), nil
}

// declaredWidthPixels resolves the root element's declared width attribute
// to pixels at the given density. Reports ok=false for missing, malformed,
// percentage-based, or unknown-unit widths.
func declaredWidthPixels(svg string, density int) (float64, bool) {
	doc, err := svgpost.Parse(svg)
	if err != nil {
		return 0, false
	}
	width := doc.Root().SelectAttrValue("width", "")
	if width == "" || strings.Contains(width, "%") {
		return 0, false
	}
	val, unit, ok := svgpost.SplitLength(width)
	if !ok || val <= 0 {
		return 0, false
	}
	perUnit, known := unitPixels[unit]
	if !known {
		return 0, false
	}
	return val * perUnit * float64(density) / BaseDensity, true
}

// pixelDim rounds a pixel dimension up and clamps it to at least 1.
func pixelDim(v float64) int {
	d := int(math.Ceil(v))
	if d < 1 {
		return 1
	}
	return d
}
