package storage

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/openreports/report-registry-client/interfaces"
)

// MockContentStore mocks the interfaces.ContentStore interface.
type MockContentStore struct {
	mock.Mock
}

// Upload mocks the Upload method.
func (m *MockContentStore) Upload(ctx context.Context, data []byte) (interfaces.ContentID, error) {
	args := m.Called(ctx, data)
	return args.Get(0).(interfaces.ContentID), args.Error(1)
}

// Fetch mocks the Fetch method.
func (m *MockContentStore) Fetch(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	args := m.Called(ctx, id)
	data, _ := args.Get(0).([]byte)
	return data, args.Error(1)
}

// Available mocks the Available method.
func (m *MockContentStore) Available(ctx context.Context) bool {
	args := m.Called(ctx)
	return args.Bool(0)
}

// ContentURL mocks the ContentURL method.
func (m *MockContentStore) ContentURL(id interfaces.ContentID) string {
	args := m.Called(id)
	return args.String(0)
}

// Name mocks the Name method.
func (m *MockContentStore) Name() string {
	args := m.Called()
	return args.String(0)
}

// LocationURI mocks the LocationURI method.
func (m *MockContentStore) LocationURI() string {
	args := m.Called()
	return args.String(0)
}
