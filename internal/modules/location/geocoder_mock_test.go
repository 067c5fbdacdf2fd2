package location

import (
	"context"
	"sync"
)

// GeocoderMock is a moq-style mock of Geocoder.
type GeocoderMock struct {
	PredictFunc func(ctx context.Context, text, country string) ([]Suggestion, error)
	ResolveFunc func(ctx context.Context, placeID string) (*Location, error)
	ReverseFunc func(ctx context.Context, p Point) (string, error)

	mu    sync.Mutex
	calls struct {
		Predict []string
		Resolve []string
		Reverse []Point
	}
}

func (m *GeocoderMock) Predict(ctx context.Context, text, country string) ([]Suggestion, error) {
	m.mu.Lock()
	m.calls.Predict = append(m.calls.Predict, text)
	m.mu.Unlock()
	if m.PredictFunc == nil {
		panic("GeocoderMock.PredictFunc: method is nil but Geocoder.Predict was just called")
	}
	return m.PredictFunc(ctx, text, country)
}

func (m *GeocoderMock) Resolve(ctx context.Context, placeID string) (*Location, error) {
	m.mu.Lock()
	m.calls.Resolve = append(m.calls.Resolve, placeID)
	m.mu.Unlock()
	if m.ResolveFunc == nil {
		panic("GeocoderMock.ResolveFunc: method is nil but Geocoder.Resolve was just called")
	}
	return m.ResolveFunc(ctx, placeID)
}

func (m *GeocoderMock) Reverse(ctx context.Context, p Point) (string, error) {
	m.mu.Lock()
	m.calls.Reverse = append(m.calls.Reverse, p)
	m.mu.Unlock()
	if m.ReverseFunc == nil {
		panic("GeocoderMock.ReverseFunc: method is nil but Geocoder.Reverse was just called")
	}
	return m.ReverseFunc(ctx, p)
}

func (m *GeocoderMock) PredictCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls.Predict...)
}

func (m *GeocoderMock) ResolveCalls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls.Resolve...)
}

func (m *GeocoderMock) ReverseCalls() []Point {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Point(nil), m.calls.Reverse...)
}
