package imageprocessor

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pngOf(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 120, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestThumbnail_KeepsAspectRatio(t *testing.T) {
	p := NewProcessor(80)

	res, err := p.Thumbnail(bytes.NewReader(pngOf(t, 1280, 640)), SizeThumbnail)
	require.NoError(t, err)
	assert.Equal(t, 320, res.Width)
	assert.Equal(t, 160, res.Height)

	w, h, err := Dimensions(bytes.NewReader(res.Data))
	require.NoError(t, err)
	assert.Equal(t, 320, w)
	assert.Equal(t, 160, h)
}

func TestThumbnail_DoesNotUpscale(t *testing.T) {
	res, err := NewProcessor(0).Thumbnail(bytes.NewReader(pngOf(t, 100, 50)), SizeThumbnail)
	require.NoError(t, err)
	assert.Equal(t, 100, res.Width)
	assert.Equal(t, 50, res.Height)
}

func TestThumbnail_RejectsGarbage(t *testing.T) {
	_, err := NewProcessor(85).Thumbnail(bytes.NewReader([]byte("not an image")), SizeThumbnail)
	assert.ErrorIs(t, err, ErrUnsupportedImage)
}

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("image/png"))
	assert.True(t, IsSupported("image/webp"))
	assert.False(t, IsSupported("video/mp4"))
}
