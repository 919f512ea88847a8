package svgpost

import "github.com/beevik/etree"

// ExpandMargin grows the document's visible canvas by margin units on all
// four sides, keeping the content centered: the viewBox origin shifts by
// (-margin, -margin) and both dimensions grow by 2*margin.
//
// Declared width/height attributes, when present and not percentage-based,
// are scaled by the same ratio so the on-page size stays consistent with the
// enlarged bounding box even when the size unit differs from the viewBox
// unit. The new height is re-derived from the new bounding box aspect ratio
// rather than from the old declared height, so a declared size that had
// drifted from the viewBox aspect is normalized to it.
//
// The pass is a guarded no-op, never an error: margin <= 0, a missing or
// malformed viewBox, or non-positive old dimensions leave the affected
// attributes unchanged.
func ExpandMargin(doc *etree.Document, margin float64) {
	if margin <= 0 {
		return
	}
	root := doc.Root()
	if root == nil {
		return
	}

	vb := root.SelectAttr("viewBox")
	if vb == nil {
		return
	}
	x, y, w, h, ok := parseViewBox(vb.Value)
	if !ok {
		return
	}

	newW := w + 2*margin
	newH := h + 2*margin
	root.CreateAttr("viewBox", formatViewBox(x-margin, y-margin, newW, newH))

	if w <= 0 || h <= 0 {
		return
	}

	widthAttr := root.SelectAttr("width")
	if widthAttr == nil || isPercentage(widthAttr.Value) {
		return
	}
	widthVal, widthUnit, ok := SplitLength(widthAttr.Value)
	if !ok {
		return
	}

	newWidthVal := widthVal * newW / w
	root.CreateAttr("width", formatNumber(newWidthVal)+widthUnit)

	heightAttr := root.SelectAttr("height")
	if heightAttr == nil || isPercentage(heightAttr.Value) {
		return
	}
	if _, heightUnit, ok := SplitLength(heightAttr.Value); ok {
		root.CreateAttr("height", formatNumber(newWidthVal*newH/newW)+heightUnit)
	}
}
