package wallet

import (
	"context"
	"io"
	"log/slog"
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/require"

	"github.com/openreports/report-registry-client/interfaces"
)

var testLog = slog.New(slog.NewTextHandler(io.Discard, nil))

func newTestProvider(t *testing.T, keyFile string) *Provider {
	t.Helper()

	// The HTTP transport dials lazily, so no node needs to listen here.
	provider, err := NewProvider(Config{
		RPCAddr: "http://127.0.0.1:8545",
		KeyFile: keyFile,
		Log:     testLog,
	})
	require.NoError(t, err)
	return provider
}

func writeTestKey(t *testing.T) (string, interfaces.Address) {
	t.Helper()

	key, err := crypto.GenerateKey()
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "wallet-key.hex")
	require.NoError(t, crypto.SaveECDSA(path, key))

	return path, interfaces.Address(crypto.PubkeyToAddress(key.PublicKey))
}

func TestConnectMissingKeyFile(t *testing.T) {
	provider := newTestProvider(t, filepath.Join(t.TempDir(), "missing.hex"))
	defer provider.Close()

	_, err := provider.Connect(context.Background())
	require.ErrorIs(t, err, ErrNoWallet)
}

func TestTransactOptsRequireConnection(t *testing.T) {
	keyFile, _ := writeTestKey(t)
	provider := newTestProvider(t, keyFile)
	defer provider.Close()

	_, err := provider.TransactOpts(context.Background())
	require.ErrorIs(t, err, ErrNoWallet)
}

func TestTransactOptsBoundToKey(t *testing.T) {
	keyFile, addr := writeTestKey(t)
	provider := newTestProvider(t, keyFile)
	defer provider.Close()

	key, err := provider.loadKey()
	require.NoError(t, err)

	provider.mu.Lock()
	provider.key = key
	provider.address = crypto.PubkeyToAddress(key.PublicKey)
	provider.chainID = big.NewInt(31337)
	provider.mu.Unlock()

	auth, err := provider.TransactOpts(context.Background())
	require.NoError(t, err)
	require.Equal(t, addr, interfaces.Address(auth.From))
	require.NotNil(t, auth.Signer)
}

func TestSubscribeAndRelease(t *testing.T) {
	keyFile, _ := writeTestKey(t)
	provider := newTestProvider(t, keyFile)
	defer provider.Close()

	events, release := provider.Subscribe()

	provider.publish(interfaces.AccountsChanged)
	require.Equal(t, interfaces.AccountsChanged, <-events)

	release()
	_, ok := <-events
	require.False(t, ok)

	// Releasing twice is a no-op.
	release()
}

func TestPublishCoalescesPendingEvents(t *testing.T) {
	keyFile, _ := writeTestKey(t)
	provider := newTestProvider(t, keyFile)
	defer provider.Close()

	events, release := provider.Subscribe()
	defer release()

	// A subscriber with a pending event never blocks the publisher.
	provider.publish(interfaces.AccountsChanged)
	provider.publish(interfaces.ChainChanged)
	provider.publish(interfaces.ChainChanged)

	require.Equal(t, interfaces.AccountsChanged, <-events)
	select {
	case event := <-events:
		t.Fatalf("expected coalesced events, got %s", event)
	default:
	}
}

func TestCheckDetectsKeyRemoval(t *testing.T) {
	keyFile, addr := writeTestKey(t)
	provider := newTestProvider(t, keyFile)
	defer provider.Close()

	provider.mu.Lock()
	provider.address = common.Address(addr)
	provider.chainID = big.NewInt(31337)
	provider.mu.Unlock()

	// Same key on disk, no divergence on the account side. The chain id
	// check fails against the unreachable RPC, which must not count as a
	// change either.
	event, changed := provider.check(context.Background())
	require.False(t, changed, "got event %s", event)

	require.NoError(t, os.Remove(keyFile))

	event, changed = provider.check(context.Background())
	require.True(t, changed)
	require.Equal(t, interfaces.AccountsChanged, event)
}

func TestCheckDetectsKeyRotation(t *testing.T) {
	keyFile, addr := writeTestKey(t)
	provider := newTestProvider(t, keyFile)
	defer provider.Close()

	provider.mu.Lock()
	provider.address = common.Address(addr)
	provider.chainID = big.NewInt(31337)
	provider.mu.Unlock()

	rotated, err := crypto.GenerateKey()
	require.NoError(t, err)
	require.NoError(t, crypto.SaveECDSA(keyFile, rotated))

	event, changed := provider.check(context.Background())
	require.True(t, changed)
	require.Equal(t, interfaces.AccountsChanged, event)
}
