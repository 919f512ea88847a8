package svgpost

import "testing"

// expandAndRead applies ExpandMargin to an SVG string and returns the root
// viewBox, width, and height attributes afterwards.
func expandAndRead(t *testing.T, svg string, margin float64) (viewBox, width, height string) {
	t.Helper()

	doc, err := Parse(svg)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	ExpandMargin(doc, margin)
	root := doc.Root()
	return root.SelectAttrValue("viewBox", ""),
		root.SelectAttrValue("width", ""),
		root.SelectAttrValue("height", "")
}

func TestExpandMarginViewBox(t *testing.T) {
	t.Parallel()

	vb, _, _ := expandAndRead(t, `<svg viewBox="0 0 100 50"/>`, 20)
	if want := "-20 -20 140 90"; vb != want {
		t.Errorf("viewBox = %q, want %q", vb, want)
	}
}

func TestExpandMarginScalesDeclaredSize(t *testing.T) {
	t.Parallel()

	vb, w, h := expandAndRead(t, `<svg viewBox="0 0 100 50" width="10ex" height="5ex"/>`, 20)
	if want := "-20 -20 140 90"; vb != want {
		t.Errorf("viewBox = %q, want %q", vb, want)
	}
	// 10ex * 140/100 = 14ex, then height from the new box: 14 * 90/140 = 9ex.
	if want := "14ex"; w != want {
		t.Errorf("width = %q, want %q", w, want)
	}
	if want := "9ex"; h != want {
		t.Errorf("height = %q, want %q", h, want)
	}
}

func TestExpandMarginNoOps(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		svg    string
		margin float64
	}{
		{
			name:   "zero margin",
			svg:    `<svg viewBox="0 0 100 50" width="10ex"/>`,
			margin: 0,
		},
		{
			name:   "negative margin",
			svg:    `<svg viewBox="0 0 100 50" width="10ex"/>`,
			margin: -5,
		},
		{
			name:   "missing viewBox",
			svg:    `<svg width="10ex"/>`,
			margin: 20,
		},
		{
			name:   "three viewBox components",
			svg:    `<svg viewBox="0 0 100" width="10ex"/>`,
			margin: 20,
		},
		{
			name:   "five viewBox components",
			svg:    `<svg viewBox="0 0 100 50 7" width="10ex"/>`,
			margin: 20,
		},
		{
			name:   "non-numeric viewBox component",
			svg:    `<svg viewBox="0 0 wide 50" width="10ex"/>`,
			margin: 20,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			doc, err := Parse(tt.svg)
			if err != nil {
				t.Fatalf("Parse() error = %v", err)
			}
			before, err := Serialize(doc)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}

			ExpandMargin(doc, tt.margin)

			after, err := Serialize(doc)
			if err != nil {
				t.Fatalf("Serialize() error = %v", err)
			}
			if before != after {
				t.Errorf("document changed:\nbefore: %s\nafter:  %s", before, after)
			}
		})
	}
}

func TestExpandMarginPercentageSizeUntouched(t *testing.T) {
	t.Parallel()

	vb, w, _ := expandAndRead(t, `<svg viewBox="0 0 100 50" width="100%"/>`, 20)
	if want := "-20 -20 140 90"; vb != want {
		t.Errorf("viewBox = %q, want %q", vb, want)
	}
	if want := "100%"; w != want {
		t.Errorf("percentage width = %q, want untouched %q", w, want)
	}
}

func TestExpandMarginMalformedWidthKeepsSizes(t *testing.T) {
	t.Parallel()

	vb, w, h := expandAndRead(t, `<svg viewBox="0 0 100 50" width="auto" height="5ex"/>`, 20)
	if want := "-20 -20 140 90"; vb != want {
		t.Errorf("viewBox = %q, want %q", vb, want)
	}
	if want := "auto"; w != want {
		t.Errorf("width = %q, want untouched %q", w, want)
	}
	if want := "5ex"; h != want {
		t.Errorf("height = %q, want untouched %q", h, want)
	}
}

func TestExpandMarginNonPositiveBoxKeepsSizes(t *testing.T) {
	t.Parallel()

	vb, w, _ := expandAndRead(t, `<svg viewBox="0 0 0 50" width="10ex"/>`, 20)
	if want := "-20 -20 40 90"; vb != want {
		t.Errorf("viewBox = %q, want %q", vb, want)
	}
	if want := "10ex"; w != want {
		t.Errorf("width = %q, want untouched %q", w, want)
	}
}

func TestExpandMarginWidthOnly(t *testing.T) {
	t.Parallel()

	_, w, h := expandAndRead(t, `<svg viewBox="0 0 100 50" width="10ex"/>`, 20)
	if want := "14ex"; w != want {
		t.Errorf("width = %q, want %q", w, want)
	}
	if h != "" {
		t.Errorf("height = %q, want absent", h)
	}
}

func TestExpandMarginDivergentDeclaredAspect(t *testing.T) {
	t.Parallel()

	// Declared height deliberately disagrees with the viewBox aspect ratio.
	// The pass recomputes height from the new bounding box, so the declared
	// size is normalized to the box rather than preserving the drift.
	_, w, h := expandAndRead(t, `<svg viewBox="0 0 100 50" width="10ex" height="9ex"/>`, 20)
	if want := "14ex"; w != want {
		t.Errorf("width = %q, want %q", w, want)
	}
	if want := "9ex"; h != want {
		t.Errorf("height = %q, want %q", h, want)
	}
}

func TestExpandMarginNegativeOrigin(t *testing.T) {
	t.Parallel()

	vb, _, _ := expandAndRead(t, `<svg viewBox="-4.5 -10 200 30.5"/>`, 10)
	if want := "-14.5 -20 220 50.5"; vb != want {
		t.Errorf("viewBox = %q, want %q", vb, want)
	}
}

func TestExpandMarginCommaSeparatedViewBox(t *testing.T) {
	t.Parallel()

	vb, _, _ := expandAndRead(t, `<svg viewBox="0, 0, 100, 50"/>`, 20)
	if want := "-20 -20 140 90"; vb != want {
		t.Errorf("viewBox = %q, want %q", vb, want)
	}
}
