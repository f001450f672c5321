package pdfdoc

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"strconv"

	"codeberg.org/go-pdf/fpdf"
	"golang.org/x/image/draw"
)

// DefaultImageQuality is the JPEG quality used when re-encoding images.
const DefaultImageQuality = 85

// fontFamily is the name the body font is registered under.
const fontFamily = "body"

// SaveOptions controls image handling and document metadata.
type SaveOptions struct {
	ImageQuality      int    // 1-100, JPEG re-encoding quality (0 = DefaultImageQuality)
	MaxImageDimension int    // pixels; larger images are downscaled (0 = no limit)
	Creator           string // PDF creator metadata
}

// Write serializes doc to w using font (TrueType bytes) for all text.
// A document without pages is written as one blank page, since a PDF needs
// at least one.
func Write(w io.Writer, doc *Document, font []byte, opts SaveOptions) error {
	if len(font) == 0 {
		return ErrFontData
	}
	if opts.ImageQuality <= 0 || opts.ImageQuality > 100 {
		opts.ImageQuality = DefaultImageQuality
	}

	init := &fpdf.InitType{UnitStr: "pt"}
	if len(doc.Pages) > 0 {
		init.Size = fpdf.SizeType{Wd: doc.Pages[0].Width, Ht: doc.Pages[0].Height}
	}
	pdf := fpdf.NewCustom(init)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(0, 0, 0)
	pdf.SetTitle(doc.Title, true)
	if opts.Creator != "" {
		pdf.SetCreator(opts.Creator, true)
	}
	// fpdf does not report malformed fonts; callers validate with sfnt first.
	pdf.AddUTF8FontFromBytes(fontFamily, "", font)
	if err := pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrFontData, err)
	}

	r := &renderer{pdf: pdf, doc: doc, opts: opts, registered: make(map[ImageID]string)}
	for i := range doc.Pages {
		if err := r.page(&doc.Pages[i]); err != nil {
			return fmt.Errorf("page %d: %w", i+1, err)
		}
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

// renderer replays page ops against fpdf.
type renderer struct {
	pdf        *fpdf.Fpdf
	doc        *Document
	opts       SaveOptions
	registered map[ImageID]string

	x, y       float64
	lineStart  float64
	lineHeight float64
	fontSize   float64
}

func (r *renderer) page(p *Page) error {
	r.pdf.AddPageFormat("P", fpdf.SizeType{Wd: p.Width, Ht: p.Height})
	r.x, r.y, r.lineStart = 0, 0, 0

	// fpdf forgets the font on every new page.
	if r.fontSize > 0 {
		r.pdf.SetFont(fontFamily, "", r.fontSize)
	}

	for _, op := range p.Ops {
		switch op := op.(type) {
		case SetFont:
			r.fontSize = op.Size
			r.lineHeight = op.LineHeight
			r.pdf.SetFont(fontFamily, "", op.Size)
		case SetCursor:
			r.x, r.y, r.lineStart = op.X, op.Y, op.X
		case SetFillColor:
			r.pdf.SetTextColor(int(op.Color.R), int(op.Color.G), int(op.Color.B))
		case WriteText:
			if op.Text == "" {
				continue
			}
			r.pdf.Text(r.x, r.y, op.Text)
			r.x += r.pdf.GetStringWidth(op.Text)
		case LineBreak:
			r.x = r.lineStart
			r.y += r.lineHeight
		case DrawImage:
			if err := r.image(op); err != nil {
				return err
			}
		}
	}
	if err := r.pdf.Error(); err != nil {
		return fmt.Errorf("%w: %v", ErrRender, err)
	}
	return nil
}

func (r *renderer) image(op DrawImage) error {
	name, err := r.register(op.ID)
	if err != nil {
		return err
	}
	opts := fpdf.ImageOptions{AllowNegativePosition: true}

	if !op.Rotated {
		r.pdf.ImageOptions(name, op.X, op.Y, op.Width, op.Height, false, opts, 0, "")
		return nil
	}

	// Draw the unrotated image centred on the box, then turn it clockwise
	// about the centre so it fills the box.
	cx, cy := op.X+op.Width/2, op.Y+op.Height/2
	r.pdf.TransformBegin()
	r.pdf.TransformRotate(-90, cx, cy)
	r.pdf.ImageOptions(name, cx-op.Height/2, cy-op.Width/2, op.Height, op.Width, false, opts, 0, "")
	r.pdf.TransformEnd()
	return nil
}

// register embeds an image on first use and returns its fpdf name.
func (r *renderer) register(id ImageID) (string, error) {
	if name, ok := r.registered[id]; ok {
		return name, nil
	}
	if id < 0 || int(id) >= len(r.doc.Images) {
		return "", fmt.Errorf("%w: %d", ErrUnknownImage, id)
	}

	data, kind, err := encodeImage(r.doc.Images[id], r.opts)
	if err != nil {
		return "", fmt.Errorf("image %d: %w", id, err)
	}

	name := "img" + strconv.Itoa(int(id))
	r.pdf.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: kind}, bytes.NewReader(data))
	if err := r.pdf.Error(); err != nil {
		return "", fmt.Errorf("%w: image %d: %v", ErrEncodeImage, id, err)
	}
	r.registered[id] = name
	return name, nil
}

// encodeImage returns bytes fpdf can embed and their type ("jpg" or "png").
// JPEG sources within the size limit pass through untouched; everything else
// is re-encoded as 8-bit PNG, or as JPEG at opts.ImageQuality when a JPEG
// source had to be downscaled.
func encodeImage(img Image, opts SaveOptions) ([]byte, string, error) {
	src := img.Image
	scaled := false
	if limit := opts.MaxImageDimension; limit > 0 {
		if b := src.Bounds(); b.Dx() > limit || b.Dy() > limit {
			src = downscale(src, limit)
			scaled = true
		}
	}

	var buf bytes.Buffer
	switch {
	case img.Format == "jpeg" && !scaled && len(img.Data) > 0:
		return img.Data, "jpg", nil
	case img.Format == "jpeg":
		if err := jpeg.Encode(&buf, src, &jpeg.Options{Quality: opts.ImageQuality}); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEncodeImage, err)
		}
		return buf.Bytes(), "jpg", nil
	default:
		if err := png.Encode(&buf, toNRGBA(src)); err != nil {
			return nil, "", fmt.Errorf("%w: %v", ErrEncodeImage, err)
		}
		return buf.Bytes(), "png", nil
	}
}

// downscale fits src within limit×limit, keeping its aspect ratio.
func downscale(src image.Image, limit int) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w >= h {
		h = max(1, h*limit/w)
		w = limit
	} else {
		w = max(1, w*limit/h)
		h = limit
	}
	dst := image.NewNRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

// toNRGBA converts to 8-bit NRGBA; fpdf rejects 16-bit PNGs.
func toNRGBA(src image.Image) *image.NRGBA {
	if n, ok := src.(*image.NRGBA); ok {
		return n
	}
	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
