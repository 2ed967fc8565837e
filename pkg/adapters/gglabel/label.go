// Package gglabel stamps text onto captured frames using the gg library.
package gglabel

import (
	"fmt"
	"image/color"

	"github.com/fogleman/gg"

	"github.com/user/sweepcast/pkg/ports"
)

// Labeler implements ports.FrameLabeler.
// The label is drawn in the top-left corner over a translucent box;
// frame dimensions are never changed.
type Labeler struct {
	Padding    float64
	Background color.Color
	Foreground color.Color
}

// New creates a Labeler with the default style.
func New() *Labeler {
	return &Labeler{
		Padding:    4,
		Background: color.NRGBA{R: 0, G: 0, B: 0, A: 160},
		Foreground: color.White,
	}
}

// Label draws text onto the PNG at path and rewrites it in place.
func (l *Labeler) Label(path, text string) error {
	img, err := gg.LoadImage(path)
	if err != nil {
		return fmt.Errorf("load frame: %w", err)
	}

	dc := gg.NewContextForImage(img)
	tw, th := dc.MeasureString(text)
	boxW := tw + 2*l.Padding
	boxH := th + 2*l.Padding

	dc.SetColor(l.Background)
	dc.DrawRectangle(0, 0, boxW, boxH)
	dc.Fill()

	dc.SetColor(l.Foreground)
	dc.DrawStringAnchored(text, l.Padding, l.Padding, 0, 1)

	if err := dc.SavePNG(path); err != nil {
		return fmt.Errorf("save frame: %w", err)
	}
	return nil
}

var _ ports.FrameLabeler = (*Labeler)(nil)
