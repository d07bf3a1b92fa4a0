// Package clientcommon assembles the session manager and its collaborators
// from parsed cli flags, shared by the client binaries.
package clientcommon

import (
	"fmt"
	"log/slog"
	"net/url"

	gethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/urfave/cli/v2"

	"github.com/openreports/report-registry-client/cmd/flags"
	"github.com/openreports/report-registry-client/interfaces"
	"github.com/openreports/report-registry-client/registry"
	"github.com/openreports/report-registry-client/session"
	"github.com/openreports/report-registry-client/storage"
	"github.com/openreports/report-registry-client/wallet"
)

// BuildManager wires wallet provider, registry client and content store
// into a session manager. The returned provider must be Closed by the
// caller on shutdown.
func BuildManager(cCtx *cli.Context, logger *slog.Logger) (*session.Manager, *wallet.Provider, error) {
	registryAddrHex := cCtx.String(flags.RegistryAddrFlag.Name)
	if !gethcommon.IsHexAddress(registryAddrHex) {
		return nil, nil, fmt.Errorf("invalid registry contract address: %s", registryAddrHex)
	}

	provider, err := wallet.NewProvider(wallet.Config{
		RPCAddr: cCtx.String(flags.RpcAddrFlag.Name),
		KeyFile: cCtx.String(flags.WalletKeyFileFlag.Name),
		Log:     logger,
	})
	if err != nil {
		return nil, nil, err
	}

	regClient, err := registry.NewOnchainRegistryClient(
		provider.Client(), provider.Client(), gethcommon.HexToAddress(registryAddrHex))
	if err != nil {
		provider.Close()
		return nil, nil, fmt.Errorf("failed to create registry client: %w", err)
	}

	var store interfaces.ContentStore
	if storeURI := cCtx.String(flags.StoreURIFlag.Name); storeURI != "" {
		withCreds, err := withStoreCredentials(storeURI,
			cCtx.String(flags.StoreProjectIDFlag.Name),
			cCtx.String(flags.StoreSecretFlag.Name))
		if err != nil {
			provider.Close()
			return nil, nil, err
		}

		store, err = storage.NewStoreFactory(logger).StoreFor(withCreds)
		if err != nil {
			provider.Close()
			return nil, nil, err
		}
	}

	manager := session.NewManager(&session.Config{
		Wallet:   provider,
		Registry: regClient,
		Store:    store,
		Log:      logger,
	})

	return manager, provider, nil
}

// withStoreCredentials injects the two flag-supplied credential values into
// the location URI's userinfo part, unless the URI already carries one.
func withStoreCredentials(locationURI, projectID, secret string) (string, error) {
	u, err := url.Parse(locationURI)
	if err != nil {
		return "", fmt.Errorf("%w: %v", interfaces.ErrInvalidLocationURI, err)
	}

	if u.User == nil && projectID != "" {
		u.User = url.UserPassword(projectID, secret)
	}

	return u.String(), nil
}
