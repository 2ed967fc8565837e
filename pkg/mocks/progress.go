package mocks

import (
	"sync"

	"github.com/user/sweepcast/pkg/ports"
)

// Progress is a mock implementation of ports.Progress that records calls.
type Progress struct {
	mu sync.Mutex

	Phases    []string
	Steps     int
	Fractions []float64
	DoneCalls int
}

func (m *Progress) Begin(description string, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Phases = append(m.Phases, description)
}

func (m *Progress) Step() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Steps++
}

func (m *Progress) Set(fraction float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Fractions = append(m.Fractions, fraction)
}

func (m *Progress) Done() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DoneCalls++
}

var _ ports.Progress = (*Progress)(nil)
