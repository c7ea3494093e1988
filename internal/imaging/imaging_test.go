package imaging

import (
	"bytes"
	"encoding/binary"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"strings"
	"testing"

	"github.com/chai2010/webp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFitSize(t *testing.T) {
	tests := []struct {
		name         string
		w, h, bound  int
		wantW, wantH int
	}{
		{"inside bound", 800, 600, 1920, 800, 600},
		{"landscape", 4000, 3000, 1920, 1920, 1440},
		{"portrait", 1000, 2000, 400, 200, 400},
		{"square", 500, 500, 400, 400, 400},
		{"very thin", 5000, 2, 400, 400, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, h := FitSize(tt.w, tt.h, tt.bound)
			assert.Equal(t, tt.wantW, w)
			assert.Equal(t, tt.wantH, h)
		})
	}
}

func TestProcess_ProducesBoundedWebP(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 2400, 1200))
	for x := 0; x < 2400; x += 40 {
		for y := 0; y < 1200; y++ {
			src.Set(x, y, color.RGBA{R: 139, G: 90, B: 43, A: 255})
		}
	}
	var in bytes.Buffer
	require.NoError(t, png.Encode(&in, src))

	res, err := Process(&in)
	require.NoError(t, err)
	assert.Equal(t, 1920, res.Width)
	assert.Equal(t, 960, res.Height)

	mainCfg, err := webp.DecodeConfig(bytes.NewReader(res.Main))
	require.NoError(t, err)
	assert.Equal(t, 1920, mainCfg.Width)

	thumbCfg, err := webp.DecodeConfig(bytes.NewReader(res.Thumb))
	require.NoError(t, err)
	assert.Equal(t, 400, thumbCfg.Width)
	assert.Equal(t, 200, thumbCfg.Height)
}

func TestProcess_RejectsNonImage(t *testing.T) {
	_, err := Process(strings.NewReader("definitely not an image"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

// pngHeader is a PNG signature plus an IHDR chunk, enough for DecodeConfig.
func pngHeader(w, h uint32) []byte {
	var buf bytes.Buffer
	buf.WriteString("\x89PNG\r\n\x1a\n")

	ihdr := make([]byte, 13)
	binary.BigEndian.PutUint32(ihdr[0:4], w)
	binary.BigEndian.PutUint32(ihdr[4:8], h)
	ihdr[8] = 8 // bit depth
	ihdr[9] = 2 // truecolor

	_ = binary.Write(&buf, binary.BigEndian, uint32(len(ihdr)))
	chunk := append([]byte("IHDR"), ihdr...)
	buf.Write(chunk)
	_ = binary.Write(&buf, binary.BigEndian, crc32.ChecksumIEEE(chunk))
	return buf.Bytes()
}

func TestProcess_RejectsHugeDimensions(t *testing.T) {
	_, err := Process(bytes.NewReader(pngHeader(100_000, 100_000)))
	assert.ErrorIs(t, err, ErrTooManyPixels)
	assert.NotErrorIs(t, err, ErrUnsupported)
}
