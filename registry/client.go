package registry

import (
	"context"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	"github.com/openreports/report-registry-client/bindings/reportregistry"
	"github.com/openreports/report-registry-client/interfaces"
)

// ErrNoTransactOpts is returned when a transaction is attempted without
// first setting transaction options.
var ErrNoTransactOpts = errors.New("no authorized transactor available")

// ErrTransactionReverted is returned by WaitSettled when a transaction was
// mined but reverted. It is distinct from broadcast failures so callers can
// tell a rejected write from one that never reached the chain.
var ErrTransactionReverted = errors.New("transaction reverted on-chain")

// OnchainRegistryClient implements interfaces.ReportRegistry against a
// ReportRegistry contract deployed on a blockchain.
type OnchainRegistryClient struct {
	contract *reportregistry.ReportRegistry
	client   bind.ContractBackend
	backend  bind.DeployBackend
	address  common.Address
	auth     *bind.TransactOpts
}

// NewOnchainRegistryClient creates a client for the registry contract at the
// specified address. It requires a ContractBackend for reads and a
// DeployBackend for observing transaction settlement.
func NewOnchainRegistryClient(client bind.ContractBackend, backend bind.DeployBackend, address common.Address) (*OnchainRegistryClient, error) {
	contract, err := reportregistry.NewReportRegistry(address, client)
	if err != nil {
		return nil, err
	}

	return &OnchainRegistryClient{
		contract: contract,
		client:   client,
		backend:  backend,
		address:  address,
	}, nil
}

// SetTransactOpts sets the transaction options required for state-mutating
// methods. Until called, all writes fail with ErrNoTransactOpts.
func (c *OnchainRegistryClient) SetTransactOpts(auth *bind.TransactOpts) {
	c.auth = auth
}

// ContractAddress returns the registry contract's address.
func (c *OnchainRegistryClient) ContractAddress() interfaces.Address {
	return interfaces.Address(c.address)
}

// Owner reads the registry's owner address.
func (c *OnchainRegistryClient) Owner(ctx context.Context) (interfaces.Address, error) {
	opts := &bind.CallOpts{Context: ctx}

	owner, err := c.contract.Owner(opts)
	if err != nil {
		return interfaces.Address{}, fmt.Errorf("failed to read registry owner: %w", err)
	}

	return interfaces.Address(owner), nil
}

// ReportCount reads the total number of reports ever registered.
func (c *OnchainRegistryClient) ReportCount(ctx context.Context) (uint64, error) {
	opts := &bind.CallOpts{Context: ctx}

	count, err := c.contract.ReportCount(opts)
	if err != nil {
		return 0, fmt.Errorf("failed to read report count: %w", err)
	}

	return count.Uint64(), nil
}

// Report reads a single report by id.
func (c *OnchainRegistryClient) Report(ctx context.Context, id uint64) (interfaces.Report, error) {
	opts := &bind.CallOpts{Context: ctx}

	entry, err := c.contract.GetReport(opts, new(big.Int).SetUint64(id))
	if err != nil {
		return interfaces.Report{}, fmt.Errorf("failed to read report %d: %w", id, err)
	}

	return interfaces.Report{
		ID:        entry.Id.Uint64(),
		Title:     entry.Title,
		Author:    interfaces.Address(entry.Author),
		Timestamp: entry.Timestamp.Int64(),
		ContentID: interfaces.ContentID(entry.ContentId),
		IsActive:  entry.IsActive,
	}, nil
}

// IsAuthorized reads whether an address may submit reports.
func (c *OnchainRegistryClient) IsAuthorized(ctx context.Context, addr interfaces.Address) (bool, error) {
	opts := &bind.CallOpts{Context: ctx}

	return c.contract.Authorized(opts, common.Address(addr))
}

// AddReport submits a register-report transaction carrying the title and
// the payload's content identifier.
func (c *OnchainRegistryClient) AddReport(ctx context.Context, title string, contentID interfaces.ContentID) (*types.Transaction, error) {
	auth, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.AddReport(auth, title, contentID.String())
}

// DeleteReport submits a soft-delete transaction for the given report id.
func (c *OnchainRegistryClient) DeleteReport(ctx context.Context, id uint64) (*types.Transaction, error) {
	auth, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.DeleteReport(auth, new(big.Int).SetUint64(id))
}

// AddAuthorized submits a transaction granting submission rights.
func (c *OnchainRegistryClient) AddAuthorized(ctx context.Context, addr interfaces.Address) (*types.Transaction, error) {
	auth, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.AddAuthorized(auth, common.Address(addr))
}

// RemoveAuthorized submits a transaction revoking submission rights.
func (c *OnchainRegistryClient) RemoveAuthorized(ctx context.Context, addr interfaces.Address) (*types.Transaction, error) {
	auth, err := c.transactOpts(ctx)
	if err != nil {
		return nil, err
	}

	return c.contract.RemoveAuthorized(auth, common.Address(addr))
}

// WaitSettled blocks until the transaction is mined and checks its receipt
// status. Reverted transactions return ErrTransactionReverted.
func (c *OnchainRegistryClient) WaitSettled(ctx context.Context, tx *types.Transaction) error {
	receipt, err := bind.WaitMined(ctx, c.backend, tx)
	if err != nil {
		return fmt.Errorf("failed waiting for transaction %s: %w", tx.Hash().Hex(), err)
	}

	if receipt.Status != types.ReceiptStatusSuccessful {
		return fmt.Errorf("%w: %s", ErrTransactionReverted, tx.Hash().Hex())
	}

	return nil
}

// transactOpts returns a copy of the configured transaction options bound
// to the caller's context.
func (c *OnchainRegistryClient) transactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	if c.auth == nil {
		return nil, ErrNoTransactOpts
	}

	auth := *c.auth
	auth.Context = ctx
	return &auth, nil
}
