package media

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const ContentTypeWebP = "image/webp"

var ErrUnsupportedImage = errors.New("only jpeg, png and gif images are accepted")

// Decoded size limits. The body limit bounds the upload, not the bitmap.
const (
	MaxDimension = 8000
	MaxPixels    = 40_000_000
)

var accepted = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/gif":  true,
}

// Processor normalizes uploads: any accepted format in, a bounded WebP out.
type Processor struct {
	MaxSide int
	Quality float32
}

func NewProcessor(maxSide int, quality float32) *Processor {
	if maxSide <= 0 {
		maxSide = 512
	}
	if quality <= 0 || quality > 100 {
		quality = 80
	}
	return &Processor{MaxSide: maxSide, Quality: quality}
}

func (p *Processor) ToWebP(r io.Reader) ([]byte, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if !accepted[http.DetectContentType(raw)] {
		return nil, ErrUnsupportedImage
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.Width > MaxDimension || cfg.Height > MaxDimension ||
		cfg.Width*cfg.Height > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d exceeds the size limit", ErrUnsupportedImage, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupportedImage, err)
	}

	img := p.fit(src)

	var out bytes.Buffer
	if err := webp.Encode(&out, img, &webp.Options{Quality: p.Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return out.Bytes(), nil
}

// fit scales src down so that its longest side is at most MaxSide.
func (p *Processor) fit(src image.Image) image.Image {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= p.MaxSide && h <= p.MaxSide {
		return src
	}

	var nw, nh int
	if w >= h {
		nw = p.MaxSide
		nh = max(1, h*p.MaxSide/w)
	} else {
		nh = p.MaxSide
		nw = max(1, w*p.MaxSide/h)
	}

	dst := image.NewRGBA(image.Rect(0, 0, nw, nh))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Over, nil)
	return dst
}
