// Package storage implements the content store backends used for report
// payloads. Backends are created by the factory from scheme://-style
// location URIs and expose content-addressed upload with public retrieval
// URL templating. None of the backends has a delete primitive: a payload
// uploaded for a registration that later fails stays in the store.
//
// Supported schemes:
//
//   - ipfs://  — IPFS pinning API with two-credential basic auth
//   - s3://    — Amazon S3 or compatible object storage
//   - file://  — local filesystem, intended for development and tests
package storage
