package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
)

// WalletEvent is a wallet-originated session invalidation trigger. Events
// carry no payload: any event means the session's identity or network
// assumptions no longer hold and the safest response is a full reset.
type WalletEvent int

const (
	// AccountsChanged signals that the wallet's active account changed.
	AccountsChanged WalletEvent = iota

	// ChainChanged signals that the wallet switched networks.
	ChainChanged
)

// String returns the event name.
func (e WalletEvent) String() string {
	switch e {
	case AccountsChanged:
		return "accountsChanged"
	case ChainChanged:
		return "chainChanged"
	default:
		return "unknown"
	}
}

// WalletProvider abstracts the wallet/identity provider. Implementations
// hold the signing key; the session layer never sees key material.
type WalletProvider interface {
	// Connect resolves the wallet's active address. It is idempotent:
	// repeated calls simply re-resolve the address.
	Connect(ctx context.Context) (Address, error)

	// TransactOpts returns signing options bound to the active address,
	// for use with registry write methods.
	TransactOpts(ctx context.Context) (*bind.TransactOpts, error)

	// Subscribe registers for account and chain change notifications.
	// The returned function releases the subscription; callers must invoke
	// it on shutdown so no listener outlives its session.
	Subscribe() (<-chan WalletEvent, func())

	// Close releases the provider's resources, including any underlying
	// RPC connection and the change watcher.
	Close() error
}
