// Package interfaces defines the core types and component contracts for the
// report registry client, separating interface definitions from
// implementations.
//
// The package provides the contracts between the session state machine and
// its external collaborators:
//
// # Registry
//
// ReportRegistry: read and write access to the on-chain report registry
// contract. Reads cover the owner address, the report count and individual
// reports; writes (add, delete, grant, revoke) return pending transactions
// that settle asynchronously.
//
// # Wallet
//
// WalletProvider: binds the client to a wallet-held key, resolves the active
// address, produces transaction signing options, and notifies subscribers of
// account or chain changes.
//
// # Content store
//
// ContentStore: content-addressed upload service. Uploading a payload yields
// a ContentID from which a public retrieval URL can be constructed. The store
// has no delete primitive.
//
// # Core types
//
//   - Address: 20-byte account or contract address with hex validation
//   - ContentID: content identifier returned by the content store
//   - Report: immutable point-in-time copy of a registry entry
//   - ReportCollection: active reports ordered by timestamp descending
//   - SubmissionDraft: transient title + payload pair awaiting submission
package interfaces
