package svgpost

import (
	"errors"
	"fmt"

	"github.com/beevik/etree"
)

// ErrMalformedSVG indicates the SVG text could not be parsed into a document tree.
var ErrMalformedSVG = errors.New("malformed SVG document")

// Parse reads an SVG string into a document tree.
func Parse(svg string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(svg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedSVG, err)
	}
	if doc.Root() == nil {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedSVG)
	}
	return doc, nil
}

// Serialize writes a document tree back to SVG text.
func Serialize(doc *etree.Document) (string, error) {
	out, err := doc.WriteToString()
	if err != nil {
		return "", fmt.Errorf("serializing SVG: %w", err)
	}
	return out, nil
}
