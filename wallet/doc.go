// Package wallet implements the wallet/identity provider backed by a local
// key file and an Ethereum RPC endpoint. It resolves the active address,
// produces transaction signing options, and watches for account or chain
// changes, which it publishes to subscribers as session reset triggers.
package wallet
