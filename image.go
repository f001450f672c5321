package code2pdf

import (
	"bytes"
	"encoding/binary"
	"errors"
	"image"
	_ "image/jpeg" // register JPEG decoder
	"image/png"
	"io"

	"golang.org/x/image/bmp"
	_ "golang.org/x/image/webp" // register WebP decoder

	"github.com/alnah/go-code2pdf/internal/pdfdoc"
)

// rotateRatio is how much wider than tall an image must be to be turned
// sideways on a portrait page.
const rotateRatio = 1.25

var (
	errICOFormat = errors.New("ico: invalid format")
	pngSignature = []byte("\x89PNG\r\n\x1a\n")
)

func init() {
	image.RegisterFormat("ico", "\x00\x00\x01\x00", decodeICO, decodeICOConfig)
}

// decodeImage decodes any registered format and keeps the source bytes for
// passthrough embedding.
func decodeImage(data []byte) (pdfdoc.Image, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return pdfdoc.Image{}, err
	}
	b := img.Bounds()
	if b.Dx() == 0 || b.Dy() == 0 {
		return pdfdoc.Image{}, errors.New("empty image")
	}
	return pdfdoc.Image{Image: img, Format: format, Data: data}, nil
}

// placeImage scales a w×h pixel image uniformly to the largest size that
// fits the whole page, anchored at the bottom-left corner. Images much
// wider than tall are turned 90° clockwise, and the fit is computed on the
// turned footprint.
func placeImage(d Dimensions, w, h int) pdfdoc.DrawImage {
	fw, fh := float64(w), float64(h)
	rotated := fw > rotateRatio*fh
	if rotated {
		fw, fh = fh, fw
	}
	scale := min(d.Width/fw, d.Height/fh)
	bw, bh := fw*scale, fh*scale
	return pdfdoc.DrawImage{
		X:       0,
		Y:       d.Height - bh,
		Width:   bw,
		Height:  bh,
		Rotated: rotated,
	}
}

// icoEntry is one image of an ICO directory.
type icoEntry struct {
	width, height int
	data          []byte
}

// largestICOEntry parses the ICO directory and returns its largest image.
func largestICOEntry(data []byte) (icoEntry, error) {
	le := binary.LittleEndian
	if len(data) < 6 || le.Uint16(data[0:]) != 0 || le.Uint16(data[2:]) != 1 {
		return icoEntry{}, errICOFormat
	}
	n := int(le.Uint16(data[4:]))

	var best icoEntry
	found := false
	for i := range n {
		off := 6 + 16*i
		if off+16 > len(data) {
			break
		}
		e := data[off : off+16]
		w, h := int(e[0]), int(e[1])
		if w == 0 {
			w = 256
		}
		if h == 0 {
			h = 256
		}
		size, start := int(le.Uint32(e[8:])), int(le.Uint32(e[12:]))
		if start < 0 || size <= 0 || start+size > len(data) {
			continue
		}
		if !found || w*h > best.width*best.height {
			best = icoEntry{width: w, height: h, data: data[start : start+size]}
			found = true
		}
	}
	if !found {
		return icoEntry{}, errICOFormat
	}
	return best, nil
}

// decodeICO decodes the largest image of an icon. PNG entries are decoded
// directly; BMP entries are given a file header and their XOR mask decoded.
func decodeICO(r io.Reader) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	e, err := largestICOEntry(data)
	if err != nil {
		return nil, err
	}
	if bytes.HasPrefix(e.data, pngSignature) {
		return png.Decode(bytes.NewReader(e.data))
	}
	bmpData, err := icoDIBToBMP(e.data)
	if err != nil {
		return nil, err
	}
	return bmp.Decode(bytes.NewReader(bmpData))
}

func decodeICOConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return image.Config{}, err
	}
	e, err := largestICOEntry(data)
	if err != nil {
		return image.Config{}, err
	}
	if bytes.HasPrefix(e.data, pngSignature) {
		return png.DecodeConfig(bytes.NewReader(e.data))
	}
	bmpData, err := icoDIBToBMP(e.data)
	if err != nil {
		return image.Config{}, err
	}
	return bmp.DecodeConfig(bytes.NewReader(bmpData))
}

// icoDIBToBMP turns an icon DIB into a BMP file. Icon DIBs store twice the
// image height (color rows followed by the AND mask); halving it makes the
// decoder read the color rows only.
func icoDIBToBMP(dib []byte) ([]byte, error) {
	le := binary.LittleEndian
	if len(dib) < 40 {
		return nil, errICOFormat
	}
	dib = bytes.Clone(dib)
	headerSize := le.Uint32(dib[0:])
	height := int32(le.Uint32(dib[8:]))
	le.PutUint32(dib[8:], uint32(height/2))

	bpp := le.Uint16(dib[14:])
	colors := le.Uint32(dib[32:])
	if colors == 0 && bpp <= 8 {
		colors = 1 << bpp
	}

	const fileHeaderLen = 14
	out := make([]byte, fileHeaderLen, fileHeaderLen+len(dib))
	out[0], out[1] = 'B', 'M'
	le.PutUint32(out[2:], uint32(fileHeaderLen+len(dib)))
	le.PutUint32(out[10:], fileHeaderLen+headerSize+colors*4)
	return append(out, dib...), nil
}
