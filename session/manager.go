package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/atomic"

	"github.com/openreports/report-registry-client/interfaces"
	"github.com/openreports/report-registry-client/metrics"
)

// Config carries the manager's collaborators. Wallet and Registry are
// required; Store may be nil, in which case submissions fail fast with a
// configuration error before any network call.
type Config struct {
	Wallet   interfaces.WalletProvider
	Registry interfaces.ReportRegistry
	Store    interfaces.ContentStore
	Log      *slog.Logger
}

// Manager is the session state machine. All operations are safe for
// concurrent use; duplicate invocations of the same operation class are
// rejected through the pending flags rather than queued.
type Manager struct {
	wallet   interfaces.WalletProvider
	registry interfaces.ReportRegistry
	store    interfaces.ContentStore
	log      *slog.Logger

	// mu guards session and reports. The collection is always replaced
	// wholesale under the lock, never mutated in place.
	mu      sync.Mutex
	session Session
	reports interfaces.ReportCollection

	synchronizing atomic.Bool
	uploading     atomic.Bool
}

// NewManager creates a manager with an empty session.
func NewManager(cfg *Config) *Manager {
	return &Manager{
		wallet:   cfg.Wallet,
		registry: cfg.Registry,
		store:    cfg.Store,
		log:      cfg.Log,
	}
}

// Snapshot returns the current projection of the session state. The
// returned report collection is the published snapshot and must be treated
// as read-only.
func (m *Manager) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	return Snapshot{
		Session:       m.session,
		Reports:       m.reports,
		Synchronizing: m.synchronizing.Load(),
		Uploading:     m.uploading.Load(),
	}
}

// Store exposes the configured content store, if any, so presentation
// layers can build payload retrieval URLs.
func (m *Manager) Store() interfaces.ContentStore {
	return m.store
}

// Connect binds the session to the wallet's active address and arms the
// registry handle with its signing capability. Idempotent: repeated calls
// re-resolve the address. On failure the session is left empty and the
// returned error names the cause.
func (m *Manager) Connect(ctx context.Context) error {
	addr, err := m.wallet.Connect(ctx)
	if err != nil {
		return fmt.Errorf("wallet connection failed: %w", err)
	}

	auth, err := m.wallet.TransactOpts(ctx)
	if err != nil {
		return fmt.Errorf("wallet signer unavailable: %w", err)
	}
	m.registry.SetTransactOpts(auth)

	isOwner := m.resolveOwner(ctx, addr)
	authorized := m.resolveAuthorized(ctx, addr)

	m.mu.Lock()
	m.session = Session{
		Connected:  true,
		Address:    addr,
		IsOwner:    isOwner,
		Authorized: authorized,
	}
	m.mu.Unlock()

	m.log.Info("Session bound",
		slog.String("address", addr.String()),
		slog.Bool("is_owner", isOwner),
		slog.Bool("authorized", authorized))

	return nil
}

// resolveOwner compares the session address against the registry's owner.
// A failed owner read resolves to "not owner": elevated capability is
// never granted on a read error. Addresses compare as raw bytes, which
// makes the comparison insensitive to hex casing.
func (m *Manager) resolveOwner(ctx context.Context, addr interfaces.Address) bool {
	owner, err := m.registry.Owner(ctx)
	if err != nil {
		m.log.Warn("Owner resolution failed, assuming not owner", "err", err)
		return false
	}
	return owner.Equal(addr)
}

// resolveAuthorized checks submission rights, fail-safe false.
func (m *Manager) resolveAuthorized(ctx context.Context, addr interfaces.Address) bool {
	authorized, err := m.registry.IsAuthorized(ctx, addr)
	if err != nil {
		m.log.Warn("Authorization check failed, assuming not authorized", "err", err)
		return false
	}
	return authorized
}

// Reset invalidates the entire session: address, signing capability, role
// flags and the report snapshot all return to the initial unbound state.
// In-flight operations are not interrupted; their pending flags clear on
// their own exit paths.
func (m *Manager) Reset() {
	m.registry.SetTransactOpts(nil)

	m.mu.Lock()
	m.session = Session{}
	m.reports = nil
	m.mu.Unlock()

	metrics.SessionResetsTotal.Inc()
	m.log.Info("Session reset to unbound state")
}

// Watch subscribes to wallet change events and resets the session on every
// event until ctx is cancelled. The subscription is released on return, so
// no listener outlives its caller's scope.
func (m *Manager) Watch(ctx context.Context) {
	events, release := m.wallet.Subscribe()
	defer release()

	for {
		select {
		case <-ctx.Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			m.log.Info("Wallet change event, invalidating session",
				slog.String("event", event.String()))
			m.Reset()
		}
	}
}

// Refresh synchronizes the local report collection with the registry.
// The scan reads the report count, then every report id in 1..count,
// keeps active entries, orders them newest first and publishes the result
// atomically. On any read failure the whole refresh aborts and the
// previous snapshot is retained unchanged; partial scans are never
// published.
func (m *Manager) Refresh(ctx context.Context) error {
	m.mu.Lock()
	connected := m.session.Connected
	m.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	if !m.synchronizing.CompareAndSwap(false, true) {
		return ErrOperationInFlight
	}
	defer m.synchronizing.Store(false)

	count, err := m.registry.ReportCount(ctx)
	if err != nil {
		metrics.RefreshesTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("registry synchronization failed: %w", err)
	}

	collected := make(interfaces.ReportCollection, 0, count)
	for id := uint64(1); id <= count; id++ {
		report, err := m.registry.Report(ctx, id)
		if err != nil {
			metrics.RefreshesTotal.WithLabelValues("failure").Inc()
			return fmt.Errorf("registry synchronization failed at report %d of %d: %w", id, count, err)
		}
		if report.IsActive {
			collected = append(collected, report)
		}
	}

	collected.SortByTimestampDesc()

	m.mu.Lock()
	m.reports = collected
	m.mu.Unlock()

	metrics.RefreshesTotal.WithLabelValues("success").Inc()
	m.log.Debug("Report collection synchronized",
		slog.Uint64("scanned", count),
		slog.Int("active", len(collected)))

	return nil
}

// Submit runs the two-phase submission pipeline: upload the payload to the
// content store, then register the returned content identifier on-chain,
// then wait for settlement. The on-chain write is only attempted after a
// successful upload, and the draft is only cleared after the transaction
// settles. On failure the draft is left untouched so the user can retry.
func (m *Manager) Submit(ctx context.Context, draft *interfaces.SubmissionDraft) error {
	if err := draft.Validate(); err != nil {
		return err
	}

	m.mu.Lock()
	connected := m.session.Connected
	m.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	if m.store == nil {
		return interfaces.ErrStoreNotConfigured
	}

	if !m.uploading.CompareAndSwap(false, true) {
		return ErrOperationInFlight
	}
	defer m.uploading.Store(false)

	contentID, err := m.store.Upload(ctx, draft.Payload)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failure").Inc()
		return fmt.Errorf("payload upload failed: %w", err)
	}

	tx, err := m.registry.AddReport(ctx, draft.Title, contentID)
	if err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failure").Inc()
		// The uploaded payload stays in the content store; it has no
		// delete primitive. Surfaced here rather than silently dropped.
		m.log.Warn("Register transaction not broadcast, uploaded payload is orphaned",
			slog.String("content_id", contentID.String()))
		return fmt.Errorf("%w: %v", ErrSubmissionRejected, err)
	}

	if err := m.registry.WaitSettled(ctx, tx); err != nil {
		metrics.SubmissionsTotal.WithLabelValues("failure").Inc()
		metrics.SettlementFailuresTotal.Inc()
		m.log.Warn("Register transaction failed to settle, uploaded payload is orphaned",
			slog.String("content_id", contentID.String()),
			"err", err)
		return fmt.Errorf("%w: %v", ErrSubmissionRejected, err)
	}

	draft.Title = ""
	draft.Payload = nil
	metrics.SubmissionsTotal.WithLabelValues("success").Inc()
	m.uploading.Store(false)

	m.log.Info("Report registered", slog.String("content_id", contentID.String()))

	if err := m.Refresh(ctx); err != nil {
		// Submission itself succeeded; the stale snapshot is surfaced as
		// a synchronization failure and the previous collection stands.
		m.log.Warn("Post-submission refresh failed", "err", err)
	}

	return nil
}

// Grant authorizes an address to submit reports. The address is validated
// client-side before any transaction is sent; ownership is enforced by the
// contract. No report re-sync follows: authorization does not affect the
// report collection.
func (m *Manager) Grant(ctx context.Context, addr string) error {
	return m.changeAuthorization(ctx, addr, true)
}

// Revoke removes an address's submission rights. Same discipline as Grant.
func (m *Manager) Revoke(ctx context.Context, addr string) error {
	return m.changeAuthorization(ctx, addr, false)
}

func (m *Manager) changeAuthorization(ctx context.Context, rawAddr string, grant bool) error {
	addr, err := interfaces.NewAddressFromHex(rawAddr)
	if err != nil {
		return err
	}

	m.mu.Lock()
	connected := m.session.Connected
	m.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	var send func(context.Context, interfaces.Address) (*types.Transaction, error)
	if grant {
		send = m.registry.AddAuthorized
	} else {
		send = m.registry.RemoveAuthorized
	}

	tx, err := send(ctx, addr)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrAuthorizationRejected, err)
	}

	if err := m.registry.WaitSettled(ctx, tx); err != nil {
		metrics.SettlementFailuresTotal.Inc()
		return fmt.Errorf("%w: %v", ErrAuthorizationRejected, err)
	}

	m.log.Info("Authorization updated",
		slog.String("address", addr.String()),
		slog.Bool("granted", grant))

	return nil
}

// DeleteReport soft-deletes a report after the explicit user confirmation
// gate. The registry flips the entry's active flag; the report disappears
// from the local collection through the next refresh's filter step, never
// by direct local removal.
func (m *Manager) DeleteReport(ctx context.Context, id uint64, confirmed bool) error {
	if !confirmed {
		return ErrNotConfirmed
	}

	m.mu.Lock()
	connected := m.session.Connected
	m.mu.Unlock()
	if !connected {
		return ErrNotConnected
	}

	tx, err := m.registry.DeleteReport(ctx, id)
	if err != nil {
		return fmt.Errorf("delete report %d failed: %w", id, err)
	}

	if err := m.registry.WaitSettled(ctx, tx); err != nil {
		metrics.SettlementFailuresTotal.Inc()
		return fmt.Errorf("delete report %d failed to settle: %w", id, err)
	}

	m.log.Info("Report deleted", slog.Uint64("id", id))

	return m.Refresh(ctx)
}
