package tex2img

import "errors"

// Sentinel errors for library operations.
var (
	ErrEmptyTeX       = errors.New("TeX content cannot be empty")
	ErrTypeset        = errors.New("typesetting failed")
	ErrBrowserConnect = errors.New("failed to connect to browser")
	ErrPageCreate     = errors.New("failed to create browser page")
	ErrPageLoad       = errors.New("failed to load typesetting page")
	ErrPostProcess    = errors.New("SVG post-processing failed")
	ErrRasterize      = errors.New("PNG rasterization failed")

	// Option validation errors.
	ErrInvalidScale = errors.New("invalid raster scale factor")
)
