// Package reportregistry contains the Go binding for the ReportRegistry
// contract. The binding is hand-maintained over bind.BoundContract and must
// be kept in sync with the deployed contract's ABI below.
package reportregistry

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
)

// ReportRegistryABI is the input ABI used to generate the binding.
const ReportRegistryABI = `[
	{"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
	{"type":"function","name":"reportCount","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
	{"type":"function","name":"getReport","stateMutability":"view","inputs":[{"name":"id","type":"uint256"}],"outputs":[{"name":"id","type":"uint256"},{"name":"title","type":"string"},{"name":"author","type":"address"},{"name":"timestamp","type":"uint256"},{"name":"contentId","type":"string"},{"name":"isActive","type":"bool"}]},
	{"type":"function","name":"authorized","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
	{"type":"function","name":"addReport","stateMutability":"nonpayable","inputs":[{"name":"title","type":"string"},{"name":"contentId","type":"string"}],"outputs":[]},
	{"type":"function","name":"deleteReport","stateMutability":"nonpayable","inputs":[{"name":"id","type":"uint256"}],"outputs":[]},
	{"type":"function","name":"addAuthorized","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]},
	{"type":"function","name":"removeAuthorized","stateMutability":"nonpayable","inputs":[{"name":"account","type":"address"}],"outputs":[]}
]`

// ContractReport mirrors the getReport return tuple.
type ContractReport struct {
	Id        *big.Int
	Title     string
	Author    common.Address
	Timestamp *big.Int
	ContentId string
	IsActive  bool
}

// ReportRegistry wraps a deployed ReportRegistry contract instance.
type ReportRegistry struct {
	contract *bind.BoundContract
}

// NewReportRegistry creates a binding for the contract at the given address.
func NewReportRegistry(address common.Address, backend bind.ContractBackend) (*ReportRegistry, error) {
	parsed, err := abi.JSON(strings.NewReader(ReportRegistryABI))
	if err != nil {
		return nil, err
	}

	contract := bind.NewBoundContract(address, parsed, backend, backend, backend)
	return &ReportRegistry{contract: contract}, nil
}

// Owner calls the contract's owner() view method.
func (r *ReportRegistry) Owner(opts *bind.CallOpts) (common.Address, error) {
	var out []interface{}
	err := r.contract.Call(opts, &out, "owner")
	if err != nil {
		return common.Address{}, err
	}

	return *abi.ConvertType(out[0], new(common.Address)).(*common.Address), nil
}

// ReportCount calls the contract's reportCount() view method.
func (r *ReportRegistry) ReportCount(opts *bind.CallOpts) (*big.Int, error) {
	var out []interface{}
	err := r.contract.Call(opts, &out, "reportCount")
	if err != nil {
		return nil, err
	}

	return *abi.ConvertType(out[0], new(*big.Int)).(**big.Int), nil
}

// GetReport calls the contract's getReport(uint256) view method.
func (r *ReportRegistry) GetReport(opts *bind.CallOpts, id *big.Int) (ContractReport, error) {
	var out []interface{}
	err := r.contract.Call(opts, &out, "getReport", id)
	if err != nil {
		return ContractReport{}, err
	}

	report := ContractReport{
		Id:        *abi.ConvertType(out[0], new(*big.Int)).(**big.Int),
		Title:     *abi.ConvertType(out[1], new(string)).(*string),
		Author:    *abi.ConvertType(out[2], new(common.Address)).(*common.Address),
		Timestamp: *abi.ConvertType(out[3], new(*big.Int)).(**big.Int),
		ContentId: *abi.ConvertType(out[4], new(string)).(*string),
		IsActive:  *abi.ConvertType(out[5], new(bool)).(*bool),
	}
	return report, nil
}

// Authorized calls the contract's authorized(address) view method.
func (r *ReportRegistry) Authorized(opts *bind.CallOpts, account common.Address) (bool, error) {
	var out []interface{}
	err := r.contract.Call(opts, &out, "authorized", account)
	if err != nil {
		return false, err
	}

	return *abi.ConvertType(out[0], new(bool)).(*bool), nil
}

// AddReport submits an addReport(string,string) transaction.
func (r *ReportRegistry) AddReport(opts *bind.TransactOpts, title string, contentId string) (*types.Transaction, error) {
	return r.contract.Transact(opts, "addReport", title, contentId)
}

// DeleteReport submits a deleteReport(uint256) transaction.
func (r *ReportRegistry) DeleteReport(opts *bind.TransactOpts, id *big.Int) (*types.Transaction, error) {
	return r.contract.Transact(opts, "deleteReport", id)
}

// AddAuthorized submits an addAuthorized(address) transaction.
func (r *ReportRegistry) AddAuthorized(opts *bind.TransactOpts, account common.Address) (*types.Transaction, error) {
	return r.contract.Transact(opts, "addAuthorized", account)
}

// RemoveAuthorized submits a removeAuthorized(address) transaction.
func (r *ReportRegistry) RemoveAuthorized(opts *bind.TransactOpts, account common.Address) (*types.Transaction, error) {
	return r.contract.Transact(opts, "removeAuthorized", account)
}
