package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/chai2010/webp"
	"golang.org/x/image/draw"
)

const (
	MainMaxSide  = 1920
	ThumbMaxSide = 400
	Quality      = 82

	// MaxPixels caps the decoded size; a small file can declare huge
	// dimensions.
	MaxPixels = 50_000_000

	ContentType = "image/webp"
)

var (
	ErrUnsupported   = errors.New("unsupported image")
	ErrTooManyPixels = errors.New("image dimensions too large")
)

type Result struct {
	Main  []byte
	Thumb []byte

	Width  int
	Height int
}

// Process decodes JPEG, PNG, GIF or WebP input and re-encodes it as a WebP
// main image and thumbnail, each scaled down to fit its bound.
func Process(r io.Reader) (*Result, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}

	cfg, _, err := image.DecodeConfig(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	if int64(cfg.Width)*int64(cfg.Height) > MaxPixels {
		return nil, fmt.Errorf("%w: %dx%d", ErrTooManyPixels, cfg.Width, cfg.Height)
	}

	src, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}

	main := Fit(src, MainMaxSide)
	mainBytes, err := encode(main)
	if err != nil {
		return nil, err
	}

	thumbBytes, err := encode(Fit(main, ThumbMaxSide))
	if err != nil {
		return nil, err
	}

	b := main.Bounds()
	return &Result{
		Main:   mainBytes,
		Thumb:  thumbBytes,
		Width:  b.Dx(),
		Height: b.Dy(),
	}, nil
}

// FitSize scales w×h down so that neither side exceeds bound, keeping the
// aspect ratio. Images already inside the bound are left alone.
func FitSize(w, h, bound int) (int, int) {
	if w <= bound && h <= bound {
		return w, h
	}
	if w >= h {
		return bound, max(1, h*bound/w)
	}
	return max(1, w*bound/h), bound
}

func Fit(src image.Image, bound int) image.Image {
	b := src.Bounds()
	w, h := FitSize(b.Dx(), b.Dy(), bound)
	if w == b.Dx() && h == b.Dy() {
		return src
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func encode(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := webp.Encode(&buf, img, &webp.Options{Quality: Quality}); err != nil {
		return nil, fmt.Errorf("encode webp: %w", err)
	}
	return buf.Bytes(), nil
}
