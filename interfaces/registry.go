package interfaces

import (
	"context"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/core/types"
)

// ReportRegistry is the client's view of the on-chain report registry
// contract. Read methods reflect current chain state; write methods return
// a pending transaction that settles asynchronously. Settlement is observed
// through WaitSettled, and the registry contract, not the client, is the
// serialization point for correctness across concurrent writers.
type ReportRegistry interface {
	// SetTransactOpts binds the handle to a signing capability. Write
	// methods fail until it is called; passing nil unbinds the handle
	// again.
	SetTransactOpts(auth *bind.TransactOpts)

	// Owner returns the registry's owner address.
	Owner(ctx context.Context) (Address, error)

	// ReportCount returns the total number of reports ever registered,
	// including soft-deleted ones. Report ids are the dense range
	// 1..ReportCount.
	ReportCount(ctx context.Context) (uint64, error)

	// Report reads a single report by id.
	Report(ctx context.Context, id uint64) (Report, error)

	// IsAuthorized reports whether the address may submit reports.
	IsAuthorized(ctx context.Context, addr Address) (bool, error)

	// AddReport registers a new report carrying the uploaded payload's
	// content identifier.
	AddReport(ctx context.Context, title string, contentID ContentID) (*types.Transaction, error)

	// DeleteReport soft-deletes a report. The entry stays in the id range
	// with IsActive flipped false.
	DeleteReport(ctx context.Context, id uint64) (*types.Transaction, error)

	// AddAuthorized grants submission rights to an address. Owner-only,
	// enforced by the contract.
	AddAuthorized(ctx context.Context, addr Address) (*types.Transaction, error)

	// RemoveAuthorized revokes submission rights from an address.
	// Owner-only, enforced by the contract.
	RemoveAuthorized(ctx context.Context, addr Address) (*types.Transaction, error)

	// WaitSettled blocks until the transaction's outcome is known.
	// A settled-but-reverted transaction is an error.
	WaitSettled(ctx context.Context, tx *types.Transaction) error
}
