package ports

// ImageMeasurer reads the pixel dimensions of an image file.
type ImageMeasurer interface {
	// Measure returns the width and height of the image at path.
	Measure(path string) (width, height int, err error)
}

// FrameLabeler stamps text onto an image file in place.
type FrameLabeler interface {
	// Label draws text onto the image at path.
	Label(path string, text string) error
}
