package watermark

import (
	"bytes"
	"fmt"
	"image"
	"image/draw"
	"image/jpeg"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

const jpegQuality = 90

// Watermarker composites a configured PNG watermark onto avatar images.
type Watermarker struct {
	watermarkPath string
	outputDir     string
}

func New(watermarkPath, outputDir string) *Watermarker {
	return &Watermarker{watermarkPath: watermarkPath, outputDir: outputDir}
}

// Apply decodes src as JPEG, pastes the watermark into the bottom-right
// corner and writes the result to outputDir/filename. A watermark larger
// than the avatar is scaled down to fit first.
func (w *Watermarker) Apply(src []byte, filename string) error {
	mark, err := w.loadWatermark()
	if err != nil {
		return err
	}

	img, err := jpeg.Decode(bytes.NewReader(src))
	if err != nil {
		return fmt.Errorf("decode avatar: %w", err)
	}

	bounds := img.Bounds()
	out := image.NewRGBA(bounds)
	draw.Draw(out, bounds, img, bounds.Min, draw.Src)

	mark = fitWatermark(mark, bounds)
	mb := mark.Bounds()
	corner := image.Pt(bounds.Max.X-mb.Dx(), bounds.Max.Y-mb.Dy())
	draw.Draw(out, image.Rectangle{Min: corner, Max: corner.Add(image.Pt(mb.Dx(), mb.Dy()))}, mark, mb.Min, draw.Over)

	if err := os.MkdirAll(w.outputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(filepath.Join(w.outputDir, filename))
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close()

	if err := jpeg.Encode(f, out, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return fmt.Errorf("encode avatar: %w", err)
	}
	return nil
}

func (w *Watermarker) loadWatermark() (image.Image, error) {
	f, err := os.Open(w.watermarkPath)
	if err != nil {
		return nil, fmt.Errorf("open watermark: %w", err)
	}
	defer f.Close()

	mark, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode watermark: %w", err)
	}
	return mark, nil
}

// fitWatermark scales the watermark down to fit inside the avatar bounds,
// keeping its aspect ratio. Watermarks that already fit are returned as-is.
func fitWatermark(mark image.Image, avatar image.Rectangle) image.Image {
	mb := mark.Bounds()
	if mb.Dx() <= avatar.Dx() && mb.Dy() <= avatar.Dy() {
		return mark
	}

	ratioX := float64(avatar.Dx()) / float64(mb.Dx())
	ratioY := float64(avatar.Dy()) / float64(mb.Dy())
	ratio := ratioX
	if ratioY < ratio {
		ratio = ratioY
	}

	width := int(float64(mb.Dx()) * ratio)
	height := int(float64(mb.Dy()) * ratio)
	if width < 1 {
		width = 1
	}
	if height < 1 {
		height = 1
	}

	scaled := image.NewRGBA(image.Rect(0, 0, width, height))
	xdraw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), mark, mb, xdraw.Src, nil)
	return scaled
}
