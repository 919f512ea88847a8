package svgpost

import "github.com/beevik/etree"

// ApplyOutline adds an outline stroke to every filled path in the document.
//
// Paths whose fill attribute is exactly "none" are structural (struts, rules
// with their own handling) and are left untouched. All other paths gain the
// configured stroke color and width, with paint-order placing the stroke
// behind the fill so the outline never overdraws the glyph, and a rounded
// line-join. Re-applying the same style is idempotent: attributes are set,
// never accumulated, and no element is added or removed.
func ApplyOutline(doc *etree.Document, color string, width float64) {
	for _, path := range doc.FindElements("//path") {
		if path.SelectAttrValue("fill", "") == "none" {
			continue
		}
		path.CreateAttr("stroke", color)
		path.CreateAttr("stroke-width", formatNumber(width))
		path.CreateAttr("paint-order", "stroke")
		path.CreateAttr("stroke-linejoin", "round")
	}
}
