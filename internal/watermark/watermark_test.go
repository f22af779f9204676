package watermark

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func encodeJPEG(t *testing.T, w, h int, c color.Color) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, c)
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, nil))
	return buf.Bytes()
}

func writePNG(t *testing.T, path string, w, h int) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: 255, A: 255})
		}
	}
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
}

func newTestWatermarker(t *testing.T, markW, markH int) (*Watermarker, string) {
	t.Helper()
	dir := t.TempDir()
	markPath := filepath.Join(dir, "watermark.png")
	writePNG(t, markPath, markW, markH)
	outDir := filepath.Join(dir, "static")
	return New(markPath, outDir), outDir
}

func TestApply(t *testing.T) {
	wm, outDir := newTestWatermarker(t, 20, 20)

	avatar := encodeJPEG(t, 100, 100, color.White)
	require.NoError(t, wm.Apply(avatar, "out.jpg"))

	f, err := os.Open(filepath.Join(outDir, "out.jpg"))
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())

	// the bottom-right corner carries the red watermark
	r, _, _, _ := img.At(95, 95).RGBA()
	assert.Greater(t, r>>8, uint32(200))

	// the top-left corner is untouched avatar
	r, g, b, _ := img.At(5, 5).RGBA()
	assert.Greater(t, r>>8, uint32(200))
	assert.Greater(t, g>>8, uint32(200))
	assert.Greater(t, b>>8, uint32(200))
}

func TestApplyScalesOversizedWatermark(t *testing.T) {
	wm, outDir := newTestWatermarker(t, 300, 300)

	avatar := encodeJPEG(t, 100, 100, color.White)
	require.NoError(t, wm.Apply(avatar, "out.jpg"))

	f, err := os.Open(filepath.Join(outDir, "out.jpg"))
	require.NoError(t, err)
	defer f.Close()

	img, err := jpeg.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 100, img.Bounds().Dx())
	assert.Equal(t, 100, img.Bounds().Dy())
}

func TestApplyRejectsNonJPEG(t *testing.T) {
	wm, _ := newTestWatermarker(t, 20, 20)

	err := wm.Apply([]byte("not an image"), "out.jpg")
	assert.Error(t, err)
}

func TestApplyMissingWatermark(t *testing.T) {
	wm := New(filepath.Join(t.TempDir(), "absent.png"), t.TempDir())

	err := wm.Apply(encodeJPEG(t, 10, 10, color.White), "out.jpg")
	assert.Error(t, err)
}

func TestFitWatermarkKeepsAspectRatio(t *testing.T) {
	mark := image.NewRGBA(image.Rect(0, 0, 400, 200))
	fitted := fitWatermark(mark, image.Rect(0, 0, 100, 100))

	assert.Equal(t, 100, fitted.Bounds().Dx())
	assert.Equal(t, 50, fitted.Bounds().Dy())
}
