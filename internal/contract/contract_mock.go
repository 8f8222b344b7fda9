package contract

import (
	"context"

	"github.com/huangsam/spendchart/schema"
	"github.com/stretchr/testify/mock"
)

// --- MockSurface Implementation ---

// MockSurface is a mock type for the Surface type.
type MockSurface struct {
	mock.Mock
}

var _ Surface = &MockSurface{} // Compile-time check

// Translate implements the Surface interface.
func (m *MockSurface) Translate(dx, dy float64) {
	m.Called(dx, dy)
}

// DrawLine implements the Surface interface.
func (m *MockSurface) DrawLine(from, to schema.Point, paint *schema.Paint) {
	m.Called(from, to, paint)
}

// DrawArc implements the Surface interface.
func (m *MockSurface) DrawArc(bounds schema.Rect, startAngle, sweepAngle float64, paint *schema.Paint) {
	m.Called(bounds, startAngle, sweepAngle, paint)
}

// DrawPath implements the Surface interface.
func (m *MockSurface) DrawPath(path *schema.Path, paint *schema.Paint) {
	m.Called(path, paint)
}

// DrawText implements the Surface interface.
func (m *MockSurface) DrawText(text string, x, y float64, paint *schema.Paint) {
	m.Called(text, x, y, paint)
}

// --- MockPayloadLoader Implementation ---

// MockPayloadLoader is a mock type for the PayloadLoader type.
type MockPayloadLoader struct {
	mock.Mock
}

var _ PayloadLoader = &MockPayloadLoader{} // Compile-time check

// Load implements the PayloadLoader interface.
func (m *MockPayloadLoader) Load(ctx context.Context) []schema.PayloadRecord {
	ret := m.Called(ctx)
	records, _ := ret.Get(0).([]schema.PayloadRecord)
	return records
}
