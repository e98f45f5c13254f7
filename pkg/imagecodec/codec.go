// Package imagecodec decodes and encodes cover images and converts between
// RGB and YCbCr, matching the JPEG pipeline's own colour transform so the
// bit channel modifies only luma.
package imagecodec

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"

	_ "image/gif"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
)

// Plane is a row-major grid of samples in [0,255].
type Plane struct {
	Width, Height int
	Pix           []float64
}

// NewPlane allocates a zeroed plane of the given size.
func NewPlane(width, height int) *Plane {
	return &Plane{Width: width, Height: height, Pix: make([]float64, width*height)}
}

// At returns the sample at (x,y).
func (p *Plane) At(x, y int) float64 {
	return p.Pix[y*p.Width+x]
}

// Set writes the sample at (x,y).
func (p *Plane) Set(x, y int, v float64) {
	p.Pix[y*p.Width+x] = v
}

// YCbCrImage holds the three planes of a decoded cover image at full
// (4:4:4) resolution, ready for the DCT pipeline to operate on luma alone.
type YCbCrImage struct {
	Y, Cb, Cr *Plane
}

// Decode reads a cover image in any registered format (JPEG, PNG, GIF, BMP,
// TIFF) and converts it to full-resolution YCbCr using BT.601 coefficients.
func Decode(data []byte) (*YCbCrImage, error) {
	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("imagecodec: decoding image: %w", err)
	}
	return FromImage(img), nil
}

// FromImage converts a decoded image.Image into full-resolution YCbCr.
func FromImage(img image.Image) *YCbCrImage {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()

	out := &YCbCrImage{Y: NewPlane(w, h), Cb: NewPlane(w, h), Cr: NewPlane(w, h)}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			r, g, b, _ := img.At(bounds.Min.X+x, bounds.Min.Y+y).RGBA()
			// RGBA returns 16-bit-scaled channels; reduce to 8-bit.
			rf := float64(r >> 8)
			gf := float64(g >> 8)
			bf := float64(b >> 8)

			Y, Cb, Cr := RGBToYCbCr(rf, gf, bf)
			out.Y.Set(x, y, Y)
			out.Cb.Set(x, y, Cb)
			out.Cr.Set(x, y, Cr)
		}
	}
	return out
}

// RGBToYCbCr applies the BT.601 forward colour transform.
func RGBToYCbCr(r, g, b float64) (y, cb, cr float64) {
	y = 0.299*r + 0.587*g + 0.114*b
	cb = 128 - 0.168736*r - 0.331264*g + 0.5*b
	cr = 128 + 0.5*r - 0.418688*g - 0.081312*b
	return
}

// YCbCrToRGB applies the BT.601 inverse colour transform, clamping to
// [0,255].
func YCbCrToRGB(y, cb, cr float64) (r, g, b float64) {
	r = y + 1.402*(cr-128)
	g = y - 0.344136*(cb-128) - 0.714136*(cr-128)
	b = y + 1.772*(cb-128)
	return clamp8(r), clamp8(g), clamp8(b)
}

func clamp8(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return v
}

// ToImage renders the YCbCr planes back into an RGBA image, reconstructing
// pixels from the (possibly modified) Y plane and untouched Cb/Cr planes.
func (img *YCbCrImage) ToImage() *image.RGBA {
	out := image.NewRGBA(image.Rect(0, 0, img.Y.Width, img.Y.Height))
	for y := 0; y < img.Y.Height; y++ {
		for x := 0; x < img.Y.Width; x++ {
			r, g, b := YCbCrToRGB(img.Y.At(x, y), img.Cb.At(x, y), img.Cr.At(x, y))
			out.Set(x, y, colorRGB{uint8(r + 0.5), uint8(g + 0.5), uint8(b + 0.5)})
		}
	}
	return out
}

type colorRGB struct {
	R, G, B uint8
}

func (c colorRGB) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R) * 0x101
	g = uint32(c.G) * 0x101
	b = uint32(c.B) * 0x101
	a = 0xffff
	return
}

// EncodeJPEG re-encodes the image as a JPEG at the given quality (1-100).
func EncodeJPEG(img *YCbCrImage, quality int) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img.ToImage(), &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("imagecodec: encoding jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// BlockCount returns how many whole 8x8 luma blocks fit in the plane,
// trailing partial rows or columns are not addressable by the channel.
func (p *Plane) BlockCount() (cols, rows int) {
	return p.Width / 8, p.Height / 8
}

// Block extracts the 8x8 luma block at block coordinates (bx,by).
func (p *Plane) Block(bx, by int) [8][8]float64 {
	var b [8][8]float64
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			b[y][x] = p.At(bx*8+x, by*8+y)
		}
	}
	return b
}

// SetBlock writes an 8x8 luma block back at block coordinates (bx,by).
func (p *Plane) SetBlock(bx, by int, b [8][8]float64) {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			p.Set(bx*8+x, by*8+y, b[y][x])
		}
	}
}
