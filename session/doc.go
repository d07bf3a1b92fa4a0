// Package session implements the client-side session and synchronization
// state machine. The Manager binds to a wallet, derives the owner role,
// keeps a local snapshot of the on-chain report registry consistent with
// remote state, and sequences multi-step write operations so that partial
// failures never leave inconsistent local state.
//
// The manager holds exactly one piece of shared state, the published
// report collection snapshot. It is replaced wholesale on every successful
// synchronization and never mutated in place, so readers never observe a
// torn collection. Per-operation-class pending flags (synchronizing,
// uploading) reject a second invocation of the same class while one is in
// flight; the registry contract, not the client, is the serialization
// point across independent operations.
package session
