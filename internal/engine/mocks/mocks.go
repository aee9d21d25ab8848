package mocks

import "strconv"

// MockIDGenerator is a mock implementation of engine.IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	seq int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

// Generate returns GenerateFunc's value when set, else a deterministic
// sequential ID.
func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.seq++
	return "id-" + strconv.Itoa(m.seq)
}
