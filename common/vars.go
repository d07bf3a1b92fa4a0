// Package common holds shared service metadata and logging setup used by
// every binary in this repository.
package common

// Version is set at build time via -ldflags.
var Version = "dev"

// PackageName identifies this service in logs and metrics.
const PackageName = "report-registry-client"
