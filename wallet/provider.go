package wallet

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"log/slog"
	"math/big"
	"os"
	"sync"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"

	"github.com/openreports/report-registry-client/interfaces"
)

// ErrNoWallet is returned when no wallet key is available at the configured
// location.
var ErrNoWallet = errors.New("no wallet available: key file missing")

// DefaultPollInterval is how often the watcher re-checks the active account
// and chain when no interval is configured.
const DefaultPollInterval = 5 * time.Second

// Config configures a key-file backed wallet provider.
type Config struct {
	// RPCAddr is the Ethereum JSON-RPC endpoint to connect through.
	RPCAddr string

	// KeyFile is the path to the hex-encoded private key file. The file is
	// re-read by the watcher so key rotations show up as account changes.
	KeyFile string

	// PollInterval overrides DefaultPollInterval for the change watcher.
	PollInterval time.Duration

	Log *slog.Logger
}

// Provider implements interfaces.WalletProvider over a local key file and
// an ethclient connection.
type Provider struct {
	cfg    Config
	log    *slog.Logger
	client *ethclient.Client

	mu      sync.Mutex
	key     *ecdsa.PrivateKey
	address common.Address
	chainID *big.Int

	subMu   sync.Mutex
	subs    map[int]chan interfaces.WalletEvent
	nextSub int

	watchOnce   sync.Once
	watchCancel context.CancelFunc
	watchDone   chan struct{}
}

// NewProvider dials the RPC endpoint and returns an unconnected provider.
// No key material is read until Connect is called.
func NewProvider(cfg Config) (*Provider, error) {
	client, err := ethclient.Dial(cfg.RPCAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RPC at %s: %w", cfg.RPCAddr, err)
	}

	if cfg.PollInterval <= 0 {
		cfg.PollInterval = DefaultPollInterval
	}

	return &Provider{
		cfg:    cfg,
		log:    cfg.Log,
		client: client,
		subs:   make(map[int]chan interfaces.WalletEvent),
	}, nil
}

// Client exposes the underlying ethclient connection, which satisfies both
// bind.ContractBackend and bind.DeployBackend for registry clients sharing
// this provider's RPC endpoint.
func (p *Provider) Client() *ethclient.Client {
	return p.client
}

// Connect resolves the active address from the key file and the chain id
// from the RPC endpoint. It is idempotent; repeated calls re-resolve the
// address. The change watcher is started on the first successful call.
func (p *Provider) Connect(ctx context.Context) (interfaces.Address, error) {
	key, err := p.loadKey()
	if err != nil {
		return interfaces.Address{}, err
	}

	chainID, err := p.client.ChainID(ctx)
	if err != nil {
		return interfaces.Address{}, fmt.Errorf("failed to resolve chain id: %w", err)
	}

	address := crypto.PubkeyToAddress(key.PublicKey)

	p.mu.Lock()
	p.key = key
	p.address = address
	p.chainID = chainID
	p.mu.Unlock()

	p.watchOnce.Do(p.startWatcher)

	p.log.Debug("Wallet connected",
		slog.String("address", address.Hex()),
		slog.String("chain_id", chainID.String()))

	return interfaces.Address(address), nil
}

// TransactOpts returns signing options bound to the connected key.
func (p *Provider) TransactOpts(ctx context.Context) (*bind.TransactOpts, error) {
	p.mu.Lock()
	key, chainID := p.key, p.chainID
	p.mu.Unlock()

	if key == nil {
		return nil, ErrNoWallet
	}

	auth, err := bind.NewKeyedTransactorWithChainID(key, chainID)
	if err != nil {
		return nil, fmt.Errorf("failed to create transactor: %w", err)
	}

	auth.Context = ctx
	return auth, nil
}

// Subscribe registers for account and chain change events. The returned
// function releases the subscription and must be called on shutdown.
func (p *Provider) Subscribe() (<-chan interfaces.WalletEvent, func()) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	id := p.nextSub
	p.nextSub++

	ch := make(chan interfaces.WalletEvent, 1)
	p.subs[id] = ch

	release := func() {
		p.subMu.Lock()
		defer p.subMu.Unlock()
		if sub, ok := p.subs[id]; ok {
			delete(p.subs, id)
			close(sub)
		}
	}

	return ch, release
}

// Close stops the watcher, drops all subscriptions and closes the RPC
// connection.
func (p *Provider) Close() error {
	if p.watchCancel != nil {
		p.watchCancel()
		<-p.watchDone
	}

	p.subMu.Lock()
	for id, ch := range p.subs {
		delete(p.subs, id)
		close(ch)
	}
	p.subMu.Unlock()

	p.client.Close()
	return nil
}

func (p *Provider) loadKey() (*ecdsa.PrivateKey, error) {
	if _, err := os.Stat(p.cfg.KeyFile); os.IsNotExist(err) {
		return nil, ErrNoWallet
	}

	key, err := crypto.LoadECDSA(p.cfg.KeyFile)
	if err != nil {
		return nil, fmt.Errorf("failed to load wallet key from %s: %w", p.cfg.KeyFile, err)
	}

	return key, nil
}

func (p *Provider) startWatcher() {
	ctx, cancel := context.WithCancel(context.Background())
	p.watchCancel = cancel
	p.watchDone = make(chan struct{})

	go p.watch(ctx)
}

// watch polls the key file and the RPC chain id. Any divergence from the
// connected state is published to subscribers; the session layer treats
// every event as a full reset trigger.
func (p *Provider) watch(ctx context.Context) {
	defer close(p.watchDone)

	ticker := time.NewTicker(p.cfg.PollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		if event, changed := p.check(ctx); changed {
			p.log.Info("Wallet change detected", slog.String("event", event.String()))
			p.publish(event)
		}
	}
}

func (p *Provider) check(ctx context.Context) (interfaces.WalletEvent, bool) {
	p.mu.Lock()
	boundAddr, boundChain := p.address, p.chainID
	p.mu.Unlock()

	if boundChain == nil {
		// Not connected yet, nothing to diverge from.
		return 0, false
	}

	key, err := p.loadKey()
	if err != nil {
		// Key removed or unreadable counts as an account change.
		return interfaces.AccountsChanged, true
	}
	if crypto.PubkeyToAddress(key.PublicKey) != boundAddr {
		return interfaces.AccountsChanged, true
	}

	chainID, err := p.client.ChainID(ctx)
	if err != nil {
		// Transient RPC failures are not chain changes.
		p.log.Debug("Chain id check failed", "err", err)
		return 0, false
	}
	if chainID.Cmp(boundChain) != 0 {
		return interfaces.ChainChanged, true
	}

	return 0, false
}

func (p *Provider) publish(event interfaces.WalletEvent) {
	p.subMu.Lock()
	defer p.subMu.Unlock()

	for _, ch := range p.subs {
		select {
		case ch <- event:
		default:
			// Subscriber already has a pending reset; one is enough.
		}
	}
}
