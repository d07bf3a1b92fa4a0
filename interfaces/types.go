package interfaces

import (
	"bytes"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrInvalidAddress is returned when an address string fails validation
// before any transaction is attempted.
var ErrInvalidAddress = errors.New("invalid address: must be a 20-byte hex string")

// ErrInvalidDraft is returned when a submission draft fails validation
// before any network call is attempted.
var ErrInvalidDraft = errors.New("invalid submission draft")

// Address represents a 20-byte Ethereum account or contract address.
type Address [20]byte

// NewAddressFromBytes creates an address from a raw 20-byte slice.
func NewAddressFromBytes(addr []byte) (Address, error) {
	if len(addr) != 20 {
		return Address{}, ErrInvalidAddress
	}

	var res Address
	copy(res[:], addr)
	return res, nil
}

// NewAddressFromHex creates an address from a hex string, with or without
// the 0x prefix. Mixed-case input is accepted: addresses compare as raw
// bytes, so checksummed and lowercase forms of the same address are equal.
func NewAddressFromHex(addr string) (Address, error) {
	clean := strings.TrimPrefix(addr, "0x")
	if len(clean) != 40 {
		return Address{}, ErrInvalidAddress
	}

	addrBytes, err := hex.DecodeString(clean)
	if err != nil {
		return Address{}, fmt.Errorf("%w: %v", ErrInvalidAddress, err)
	}

	return NewAddressFromBytes(addrBytes)
}

// String returns the 0x-prefixed lowercase hex representation.
func (addr Address) String() string {
	return "0x" + hex.EncodeToString(addr[:])
}

// Bytes returns the raw 20-byte address.
func (addr Address) Bytes() []byte {
	return addr[:]
}

// Equal compares two addresses for equality. Comparison is on raw bytes,
// which makes it insensitive to the hex casing the addresses were parsed
// from.
func (addr Address) Equal(other Address) bool {
	return addr == other
}

// IsZero reports whether the address is the zero address.
func (addr Address) IsZero() bool {
	return addr == Address{}
}

// MarshalJSON encodes the address as its 0x-prefixed hex string.
func (addr Address) MarshalJSON() ([]byte, error) {
	return json.Marshal(addr.String())
}

// UnmarshalJSON decodes an address from a hex string.
func (addr *Address) UnmarshalJSON(data []byte) error {
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	parsed, err := NewAddressFromHex(raw)
	if err != nil {
		return err
	}

	*addr = parsed
	return nil
}

// ContentID is the identifier the content store assigns to an uploaded
// payload. Its format is store-specific (an IPFS CID for the default
// backend) and the client treats it as opaque.
type ContentID string

// String returns the raw identifier.
func (id ContentID) String() string {
	return string(id)
}

// Equal compares two content identifiers.
func (id ContentID) Equal(other ContentID) bool {
	return id == other
}

// Report is an immutable, point-in-time copy of a registry entry. Reports
// are never mutated locally; every state change requires a full
// re-synchronization from the registry.
type Report struct {
	// ID is the registry-assigned report number, 1-based and contiguous
	// up to the registry's report count.
	ID uint64 `json:"id"`

	// Title is the submitter-chosen report title.
	Title string `json:"title"`

	// Author is the wallet address that submitted the report.
	Author Address `json:"author"`

	// Timestamp is the registry-recorded submission time, seconds since
	// epoch.
	Timestamp int64 `json:"timestamp"`

	// ContentID locates the report payload in the content store.
	ContentID ContentID `json:"content_id"`

	// IsActive is false once the report has been soft-deleted on-chain.
	IsActive bool `json:"is_active"`
}

// ReportCollection is an ordered snapshot of active reports, sorted by
// timestamp descending. It is rebuilt in full on every synchronization and
// replaced wholesale, never patched in place.
type ReportCollection []Report

// SortByTimestampDesc orders the collection newest-first. The sort is
// stable: entries with equal timestamps keep their registry iteration
// order.
func (c ReportCollection) SortByTimestampDesc() {
	sort.SliceStable(c, func(i, j int) bool {
		return c[i].Timestamp > c[j].Timestamp
	})
}

// SubmissionDraft holds a pending report submission: a title and the raw
// payload. It is transient, cleared on successful submission and left
// untouched on failure so the user can retry.
type SubmissionDraft struct {
	Title   string
	Payload []byte
}

// Validate checks the draft before any network call is made.
func (d *SubmissionDraft) Validate() error {
	if strings.TrimSpace(d.Title) == "" {
		return fmt.Errorf("%w: report title must not be empty", ErrInvalidDraft)
	}
	if len(bytes.TrimSpace(d.Payload)) == 0 {
		return fmt.Errorf("%w: report payload must not be empty", ErrInvalidDraft)
	}
	return nil
}
