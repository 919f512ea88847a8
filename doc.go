// Package tex2img converts LaTeX equations to styled SVG and PNG images
// using MathJax in headless Chrome.
//
// # Quick Start
//
// Create a renderer, render an equation, and close when done:
//
//	r, err := tex2img.NewRenderer()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
//	result, err := r.Render(ctx, tex2img.Input{
//	    TeX:     `e^{i\pi} + 1 = 0`,
//	    Display: true,
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("euler.svg", result.SVG, 0644)
//	os.WriteFile("euler.png", result.PNG, 0644)
//
// The result contains both the post-processed SVG (result.SVG) and the
// rasterized PNG (result.PNG). Use Input.SVGOnly to skip PNG generation.
//
// # Rendering Pipeline
//
// The conversion process follows these stages:
//
//  1. Typesetting via MathJax in headless Chrome (go-rod)
//  2. Outline pass: glyph paths gain a stroke behind their fill
//  3. Margin pass: the viewBox and declared size grow symmetrically
//  4. Rasterization via rsvg-convert, or in-process via rasterx when
//     librsvg is not installed
//
// # Configuration
//
// Use functional options to customize the renderer:
//
//	r, err := tex2img.NewRenderer(
//	    tex2img.WithTimeout(time.Minute),
//	    tex2img.WithOutline(tex2img.OutlineStyle{Color: "#fff", Width: 80}),
//	    tex2img.WithMargin(200),
//	    tex2img.WithScale(2.0),
//	)
//
// # Browser Requirements
//
// Typesetting requires Chrome/Chromium; the go-rod library automatically
// downloads a managed Chromium instance on first run (~/.cache/rod/browser/).
// The harness page loads MathJax from the jsDelivr CDN, so network access is
// needed on first render of a session.
//
// For containers and CI environments, set ROD_NO_SANDBOX=1 to disable the
// Chrome sandbox. Use ROD_BROWSER_BIN to specify a custom Chrome binary and
// TEX2IMG_RSVG_BIN to point at a custom rsvg-convert.
package tex2img
