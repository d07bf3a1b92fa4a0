package registry

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/stretchr/testify/mock"

	"github.com/openreports/report-registry-client/interfaces"
)

// MockRegistry mocks the interfaces.ReportRegistry interface.
type MockRegistry struct {
	mock.Mock
}

// SetTransactOpts mocks the SetTransactOpts method.
func (m *MockRegistry) SetTransactOpts(auth *bind.TransactOpts) {
	m.Called(auth)
}

// Owner mocks the Owner method.
func (m *MockRegistry) Owner(ctx context.Context) (interfaces.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).(interfaces.Address), args.Error(1)
}

// ReportCount mocks the ReportCount method.
func (m *MockRegistry) ReportCount(ctx context.Context) (uint64, error) {
	args := m.Called(ctx)
	return args.Get(0).(uint64), args.Error(1)
}

// Report mocks the Report method.
func (m *MockRegistry) Report(ctx context.Context, id uint64) (interfaces.Report, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(interfaces.Report), args.Error(1)
}

// IsAuthorized mocks the IsAuthorized method.
func (m *MockRegistry) IsAuthorized(ctx context.Context, addr interfaces.Address) (bool, error) {
	args := m.Called(ctx, addr)
	return args.Bool(0), args.Error(1)
}

// AddReport mocks the AddReport method.
func (m *MockRegistry) AddReport(ctx context.Context, title string, contentID interfaces.ContentID) (*types.Transaction, error) {
	args := m.Called(ctx, title, contentID)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// DeleteReport mocks the DeleteReport method.
func (m *MockRegistry) DeleteReport(ctx context.Context, id uint64) (*types.Transaction, error) {
	args := m.Called(ctx, id)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// AddAuthorized mocks the AddAuthorized method.
func (m *MockRegistry) AddAuthorized(ctx context.Context, addr interfaces.Address) (*types.Transaction, error) {
	args := m.Called(ctx, addr)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// RemoveAuthorized mocks the RemoveAuthorized method.
func (m *MockRegistry) RemoveAuthorized(ctx context.Context, addr interfaces.Address) (*types.Transaction, error) {
	args := m.Called(ctx, addr)
	tx, _ := args.Get(0).(*types.Transaction)
	return tx, args.Error(1)
}

// WaitSettled mocks the WaitSettled method.
func (m *MockRegistry) WaitSettled(ctx context.Context, tx *types.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}
