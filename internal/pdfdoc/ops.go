package pdfdoc

import (
	"image"
)

// RGB is an 8-bit per channel color.
type RGB struct {
	R, G, B uint8
}

// Op is one drawing operation of a page.
type Op interface {
	isOp()
}

// SetFont sets the font size and the distance LineBreak moves down.
type SetFont struct {
	Size       float64
	LineHeight float64
}

// SetCursor moves the cursor. X also becomes the start of following lines;
// Y is the text baseline.
type SetCursor struct {
	X, Y float64
}

// SetFillColor sets the color of following text.
type SetFillColor struct {
	Color RGB
}

// WriteText draws text at the cursor and advances X by its width.
type WriteText struct {
	Text string
}

// LineBreak returns X to the line start and moves Y down one line.
type LineBreak struct{}

// DrawImage draws a registered image into the box X, Y, Width, Height.
// When Rotated is set the image is turned 90° clockwise to fill the box,
// so its own width runs along the box height.
type DrawImage struct {
	ID                  ImageID
	X, Y, Width, Height float64
	Rotated             bool
}

func (SetFont) isOp()      {}
func (SetCursor) isOp()    {}
func (SetFillColor) isOp() {}
func (WriteText) isOp()    {}
func (LineBreak) isOp()    {}
func (DrawImage) isOp()    {}

// Page is one page of the document, sized in points.
type Page struct {
	Width, Height float64
	Ops           []Op
}

// ImageID identifies an image within a Document.
type ImageID int

// Image is a decoded image and its source encoding.
type Image struct {
	Image  image.Image
	Format string // image.Decode format name: "jpeg", "png", "bmp", "webp", "ico"
	Data   []byte // original file bytes
}

// Document is a fully laid out document.
type Document struct {
	Title  string
	Pages  []Page
	Images []Image // indexed by ImageID
}
