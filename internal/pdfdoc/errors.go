package pdfdoc

import "errors"

// Sentinel errors for PDF serialization.
var (
	ErrFontData     = errors.New("invalid font data")
	ErrUnknownImage = errors.New("page references an unknown image")
	ErrEncodeImage  = errors.New("failed to encode image")
	ErrRender       = errors.New("failed to render PDF")
)
