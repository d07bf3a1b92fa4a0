// Package registry implements the on-chain ReportRegistry client over the
// contract binding. Reads go through eth_call; writes require transaction
// options set via SetTransactOpts and settle through WaitSettled.
package registry
