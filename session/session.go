package session

import (
	"github.com/openreports/report-registry-client/interfaces"
)

// Session is the bound-identity state. It is created empty at startup,
// populated atomically on a successful connect, and invalidated wholesale
// on any wallet account/network change or explicit reset. There is no
// partially-populated session: either Connected is true and Address is
// set, or the whole value is zero.
type Session struct {
	// Connected reports whether a wallet address is bound and the registry
	// handle carries its signing capability.
	Connected bool `json:"connected"`

	// Address is the bound wallet address. Zero when not connected.
	Address interfaces.Address `json:"address"`

	// IsOwner is true iff the bound address equals the registry's owner
	// address. Only meaningful while Connected; resolves fail-safe to
	// false when the owner read fails.
	IsOwner bool `json:"is_owner"`

	// Authorized is true when the bound address holds submission rights.
	// Advisory only: the contract re-checks on every write. Resolves
	// fail-safe to false when the read fails.
	Authorized bool `json:"authorized"`
}

// Snapshot is a point-in-time projection of the manager's state for
// presentation. The report collection it carries is the published
// snapshot; it is immutable by convention and must not be modified.
type Snapshot struct {
	Session

	// Reports is the current collection of active reports, newest first.
	Reports interfaces.ReportCollection `json:"reports"`

	// Synchronizing is true while a registry refresh is in flight.
	Synchronizing bool `json:"synchronizing"`

	// Uploading is true while a submission pipeline run is in flight.
	Uploading bool `json:"uploading"`
}
