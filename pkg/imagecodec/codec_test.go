package imagecodec

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"math"
	"testing"
)

func TestRGBYCbCrRoundTrip(t *testing.T) {
	cases := [][3]float64{
		{0, 0, 0}, {255, 255, 255}, {128, 64, 32}, {12, 200, 77},
	}
	for _, c := range cases {
		y, cb, cr := RGBToYCbCr(c[0], c[1], c[2])
		r, g, b := YCbCrToRGB(y, cb, cr)
		if math.Abs(r-c[0]) > 1.0 || math.Abs(g-c[1]) > 1.0 || math.Abs(b-c[2]) > 1.0 {
			t.Fatalf("round trip drift for %v: got (%v,%v,%v)", c, r, g, b)
		}
	}
}

func TestFromImagePreservesChromaOnYOnlyEdit(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 16, 16))
	for y := 0; y < 16; y++ {
		for x := 0; x < 16; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 10), uint8(y * 10), 200, 255})
		}
	}
	ycc := FromImage(src)
	beforeCb := append([]float64(nil), ycc.Cb.Pix...)
	beforeCr := append([]float64(nil), ycc.Cr.Pix...)

	for i := range ycc.Y.Pix {
		ycc.Y.Pix[i] = clamp8(ycc.Y.Pix[i] + 5)
	}

	for i := range beforeCb {
		if ycc.Cb.Pix[i] != beforeCb[i] || ycc.Cr.Pix[i] != beforeCr[i] {
			t.Fatalf("chroma plane %d changed after modifying only Y", i)
		}
	}
}

func TestBlockRoundTrip(t *testing.T) {
	p := NewPlane(16, 16)
	for i := range p.Pix {
		p.Pix[i] = float64(i % 256)
	}
	cols, rows := p.BlockCount()
	if cols != 2 || rows != 2 {
		t.Fatalf("expected 2x2 blocks, got %dx%d", cols, rows)
	}
	b := p.Block(1, 1)
	b[0][0] = 42
	p.SetBlock(1, 1, b)
	if p.At(8, 8) != 42 {
		t.Fatalf("SetBlock did not write back expected sample")
	}
}

func TestDecodeEncodeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 32, 32))
	for y := 0; y < 32; y++ {
		for x := 0; x < 32; x++ {
			src.Set(x, y, color.RGBA{uint8(x * 8), uint8(y * 8), 128, 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, src); err != nil {
		t.Fatalf("encode source png: %v", err)
	}

	ycc, err := Decode(buf.Bytes())
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if ycc.Y.Width != 32 || ycc.Y.Height != 32 {
		t.Fatalf("unexpected plane dims: %dx%d", ycc.Y.Width, ycc.Y.Height)
	}

	out, err := EncodeJPEG(ycc, 90)
	if err != nil {
		t.Fatalf("encode jpeg: %v", err)
	}
	if len(out) == 0 {
		t.Fatalf("empty jpeg output")
	}
}
