package media

import (
	"bytes"
	"encoding/binary"
	"errors"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		img.Set(x, h/2, color.RGBA{R: 200, A: 255})
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatalf("png: %v", err)
	}
	return buf.Bytes()
}

func TestToWebPDownscales(t *testing.T) {
	p := NewProcessor(200, 75)

	out, err := p.ToWebP(bytes.NewReader(pngOf(t, 800, 400)))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}

	img, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output is not webp: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Fatalf("expected 200x100, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestToWebPKeepsSmallImages(t *testing.T) {
	p := NewProcessor(512, 80)

	out, err := p.ToWebP(bytes.NewReader(pngOf(t, 40, 60)))
	if err != nil {
		t.Fatalf("convert: %v", err)
	}
	img, _ := webp.Decode(bytes.NewReader(out))
	if b := img.Bounds(); b.Dx() != 40 || b.Dy() != 60 {
		t.Fatalf("small image should keep its size, got %dx%d", b.Dx(), b.Dy())
	}
}

func TestToWebPRejectsOtherContent(t *testing.T) {
	p := NewProcessor(0, 0)
	_, err := p.ToWebP(strings.NewReader("%PDF-1.4 not an image"))
	if !errors.Is(err, ErrUnsupportedImage) {
		t.Fatalf("expected ErrUnsupportedImage, got %v", err)
	}
}

// pngHeader returns a 1x1 PNG whose header claims w x h, so only
// DecodeConfig can read it cheaply.
func pngHeader(t *testing.T, w, h uint32) []byte {
	t.Helper()
	raw := pngOf(t, 1, 1)
	binary.BigEndian.PutUint32(raw[16:20], w)
	binary.BigEndian.PutUint32(raw[20:24], h)
	binary.BigEndian.PutUint32(raw[29:33], crc32.ChecksumIEEE(raw[12:29]))
	return raw
}

func TestToWebPRejectsOversizeImages(t *testing.T) {
	p := NewProcessor(0, 0)

	cases := map[string][]byte{
		"wide":   pngHeader(t, MaxDimension+1, 1),
		"tall":   pngHeader(t, 1, MaxDimension+1),
		"pixels": pngHeader(t, 7000, 7000),
	}
	for name, raw := range cases {
		_, err := p.ToWebP(bytes.NewReader(raw))
		if !errors.Is(err, ErrUnsupportedImage) {
			t.Fatalf("%s: expected ErrUnsupportedImage, got %v", name, err)
		}
	}

	if _, err := p.ToWebP(bytes.NewReader(pngOf(t, 300, 10))); err != nil {
		t.Fatalf("ordinary image rejected: %v", err)
	}
}
