package thumbnail_test

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"rkhub/shared/thumbnail"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodePNG(t *testing.T, width, height int) *bytes.Buffer {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for x := range width {
		for y := range height {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}

	buf := new(bytes.Buffer)
	require.NoError(t, png.Encode(buf, img))

	return buf
}

func TestGenerate_FitsBoundingBox(t *testing.T) {
	out, err := thumbnail.Generate(encodePNG(t, 200, 100), 50, 50)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, 50, img.Bounds().Dx())
	assert.Equal(t, 25, img.Bounds().Dy())
}

func TestGenerate_DoesNotUpscale(t *testing.T) {
	out, err := thumbnail.Generate(encodePNG(t, 20, 10), 480, 480)
	require.NoError(t, err)

	img, err := imaging.Decode(bytes.NewReader(out))
	require.NoError(t, err)

	assert.Equal(t, 20, img.Bounds().Dx())
}

func TestGenerate_InvalidImage(t *testing.T) {
	_, err := thumbnail.Generate(strings.NewReader("not an image"), 50, 50)

	assert.Error(t, err)
}
