package wallet

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/stretchr/testify/mock"

	"github.com/openreports/report-registry-client/interfaces"
)

// MockWalletProvider mocks the interfaces.WalletProvider interface.
type MockWalletProvider struct {
	mock.Mock
}

// Connect mocks the Connect method.
func (m *MockWalletProvider) Connect(ctx context.Context) (interfaces.Address, error) {
	args := m.Called(ctx)
	return args.Get(0).(interfaces.Address), args.Error(1)
}

// TransactOpts mocks the TransactOpts method.
func (m *MockWalletProvider) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	args := m.Called(ctx)
	opts, _ := args.Get(0).(*bind.TransactOpts)
	return opts, args.Error(1)
}

// Subscribe mocks the Subscribe method.
func (m *MockWalletProvider) Subscribe() (<-chan interfaces.WalletEvent, func()) {
	args := m.Called()
	return args.Get(0).(chan interfaces.WalletEvent), args.Get(1).(func())
}

// Close mocks the Close method.
func (m *MockWalletProvider) Close() error {
	args := m.Called()
	return args.Error(0)
}
