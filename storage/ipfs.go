package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	shell "github.com/ipfs/go-ipfs-api"

	"github.com/openreports/report-registry-client/interfaces"
)

// DefaultIPFSGateway is the public gateway used for retrieval URLs when the
// location URI does not name one.
const DefaultIPFSGateway = "https://ipfs.io"

// IPFSStore implements a content store over an IPFS pinning API. The API
// requires two credential values (project id and secret) sent as basic
// auth; both must be present before any network call is attempted.
type IPFSStore struct {
	shell       *shell.Shell
	apiURL      string
	gateway     string
	log         *slog.Logger
	locationURI string
}

// basicAuthTransport injects the project credentials into every API call.
type basicAuthTransport struct {
	projectID string
	secret    string
	base      http.RoundTripper
}

func (t *basicAuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	req.SetBasicAuth(t.projectID, t.secret)
	return t.base.RoundTrip(req)
}

// NewIPFSStore creates an IPFS content store against the given API URL.
// Returns interfaces.ErrStoreNotConfigured if either credential is empty,
// so misconfiguration fails before any upload is attempted.
func NewIPFSStore(apiURL, projectID, secret, gateway string, timeout time.Duration, log *slog.Logger) (*IPFSStore, error) {
	if projectID == "" || secret == "" {
		return nil, fmt.Errorf("%w: IPFS project id and secret are required", interfaces.ErrStoreNotConfigured)
	}

	if gateway == "" {
		gateway = DefaultIPFSGateway
	}

	httpClient := &http.Client{
		Timeout: timeout,
		Transport: &basicAuthTransport{
			projectID: projectID,
			secret:    secret,
			base:      http.DefaultTransport,
		},
	}

	uri := fmt.Sprintf("ipfs://%s/?gateway=%s", strings.TrimPrefix(strings.TrimPrefix(apiURL, "https://"), "http://"), gateway)

	return &IPFSStore{
		shell:       shell.NewShellWithClient(apiURL, httpClient),
		apiURL:      apiURL,
		gateway:     strings.TrimSuffix(gateway, "/"),
		log:         log,
		locationURI: uri,
	}, nil
}

// Upload adds the payload to IPFS and returns its CID.
// Returns ErrStoreUnavailable if the node is not accessible.
func (s *IPFSStore) Upload(ctx context.Context, data []byte) (interfaces.ContentID, error) {
	start := time.Now()

	if !s.shell.IsUp() {
		s.log.Warn("IPFS node unavailable", slog.String("api", s.apiURL))
		return "", interfaces.ErrStoreUnavailable
	}

	cid, err := s.shell.Add(bytes.NewReader(data))
	if err != nil {
		s.log.Error("Failed to add payload to IPFS",
			"err", err,
			slog.Duration("duration", time.Since(start)))
		return "", fmt.Errorf("failed to add payload to IPFS: %w", err)
	}

	s.log.Debug("Uploaded payload to IPFS",
		slog.String("cid", cid),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return interfaces.ContentID(cid), nil
}

// Fetch retrieves a payload from IPFS by its CID.
func (s *IPFSStore) Fetch(ctx context.Context, id interfaces.ContentID) ([]byte, error) {
	start := time.Now()

	if !s.shell.IsUp() {
		return nil, interfaces.ErrStoreUnavailable
	}

	reader, err := s.shell.Cat("/ipfs/" + id.String())
	if err != nil {
		if strings.Contains(err.Error(), "no link named") || strings.Contains(err.Error(), "not found") {
			return nil, interfaces.ErrContentNotFound
		}
		return nil, fmt.Errorf("failed to fetch payload from IPFS: %w", err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read payload from IPFS: %w", err)
	}

	s.log.Debug("Fetched payload from IPFS",
		slog.String("cid", id.String()),
		slog.Int("size", len(data)),
		slog.Duration("duration", time.Since(start)))

	return data, nil
}

// Available checks if the IPFS node is accessible.
func (s *IPFSStore) Available(ctx context.Context) bool {
	return s.shell.IsUp()
}

// ContentURL returns the public gateway URL for a CID.
func (s *IPFSStore) ContentURL(id interfaces.ContentID) string {
	return fmt.Sprintf("%s/ipfs/%s", s.gateway, id)
}

// Name returns a unique identifier for this store backend.
func (s *IPFSStore) Name() string {
	return fmt.Sprintf("ipfs-%s", s.apiURL)
}

// LocationURI returns the URI that identifies this store backend.
func (s *IPFSStore) LocationURI() string {
	return s.locationURI
}
