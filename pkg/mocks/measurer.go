package mocks

import (
	"sync"

	"github.com/user/sweepcast/pkg/ports"
)

// ImageMeasurer is a mock implementation of ports.ImageMeasurer.
type ImageMeasurer struct {
	MeasureFunc func(path string) (int, int, error)

	mu    sync.Mutex
	Paths []string
}

func (m *ImageMeasurer) Measure(path string) (int, int, error) {
	m.mu.Lock()
	m.Paths = append(m.Paths, path)
	m.mu.Unlock()
	if m.MeasureFunc != nil {
		return m.MeasureFunc(path)
	}
	return 0, 0, nil
}

var _ ports.ImageMeasurer = (*ImageMeasurer)(nil)

// FrameLabeler is a mock implementation of ports.FrameLabeler.
type FrameLabeler struct {
	LabelFunc func(path, text string) error

	Labels map[string]string
}

func (m *FrameLabeler) Label(path, text string) error {
	if m.Labels == nil {
		m.Labels = make(map[string]string)
	}
	m.Labels[path] = text
	if m.LabelFunc != nil {
		return m.LabelFunc(path, text)
	}
	return nil
}

var _ ports.FrameLabeler = (*FrameLabeler)(nil)
