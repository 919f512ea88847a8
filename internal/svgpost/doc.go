// Package svgpost mutates rendered equation SVG documents before output.
//
// It provides the two post-processing passes applied to every typeset
// equation: outline injection (ApplyOutline) and margin expansion
// (ExpandMargin). Both passes operate on an etree document tree and are
// defensive: a document with a missing or malformed viewBox is returned
// unchanged rather than corrupted.
package svgpost
