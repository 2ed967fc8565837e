// Package imagemeasure reads image dimensions from file headers.
package imagemeasure

import (
	"bufio"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/user/sweepcast/pkg/ports"
)

// Measurer implements ports.ImageMeasurer. Only the header is decoded.
type Measurer struct{}

// New creates a new Measurer.
func New() *Measurer {
	return &Measurer{}
}

// Measure returns the pixel width and height of the image at path.
func (m *Measurer) Measure(path string) (int, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, 0, fmt.Errorf("open image: %w", err)
	}
	defer f.Close()

	cfg, format, err := image.DecodeConfig(bufio.NewReader(f))
	if err != nil {
		return 0, 0, fmt.Errorf("decode %s header: %w", path, err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("%s image %s has empty dimensions", format, path)
	}
	return cfg.Width, cfg.Height, nil
}

var _ ports.ImageMeasurer = (*Measurer)(nil)
