// Package flags holds the cli flag definitions shared by the client
// binaries, plus helpers turning parsed flags into component configs.
package flags

import (
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/urfave/cli/v2"

	"github.com/openreports/report-registry-client/common"
	"github.com/openreports/report-registry-client/httpserver"
)

func SetupLogger(cCtx *cli.Context) (log *slog.Logger) {
	logJSON := cCtx.Bool(LogJsonFlag.Name)
	logDebug := cCtx.Bool(LogDebugFlag.Name)
	logUID := cCtx.Bool(LogUidFlag.Name)
	logService := cCtx.String(LogServiceFlag.Name)

	logger := common.SetupLogger(&common.LoggingOpts{
		Debug:   logDebug,
		JSON:    logJSON,
		Service: logService,
		Version: common.Version,
	})

	if logUID {
		id := uuid.Must(uuid.NewRandom())
		logger = logger.With("uid", id.String())
	}
	return logger
}

func ConfigureServer(cCtx *cli.Context, logger *slog.Logger, listenAddr string) *httpserver.HTTPServerConfig {
	metricsAddr := cCtx.String(MetricsAddrFlag.Name)
	enablePprof := cCtx.Bool(PprofFlag.Name)
	drainDuration := time.Duration(cCtx.Int64(DrainSecondsFlag.Name)) * time.Second

	return &httpserver.HTTPServerConfig{
		ListenAddr:               listenAddr,
		MetricsAddr:              metricsAddr,
		Log:                      logger,
		EnablePprof:              enablePprof,
		DrainDuration:            drainDuration,
		GracefulShutdownDuration: 30 * time.Second,
		ReadTimeout:              60 * time.Second,
		WriteTimeout:             30 * time.Second,
	}
}

var RpcAddrFlag = &cli.StringFlag{
	Name:  "rpc-addr",
	Value: "http://127.0.0.1:8545",
	Usage: "address to connect to RPC",
}

var RegistryAddrFlag = &cli.StringFlag{
	Name:     "registry-contract",
	Required: true,
	Usage:    "Report registry contract address. 40-char hex string, 0x prefix optional",
	EnvVars:  []string{"REPORT_REGISTRY_CONTRACT"},
}

var WalletKeyFileFlag = &cli.StringFlag{
	Name:    "wallet-key-file",
	Value:   "wallet-key.hex",
	Usage:   "Path to the hex-encoded wallet private key",
	EnvVars: []string{"REPORT_WALLET_KEY_FILE"},
}

var StoreURIFlag = &cli.StringFlag{
	Name:    "store-uri",
	Usage:   "Content store location URI (ipfs://, s3:// or file://)",
	EnvVars: []string{"REPORT_STORE_URI"},
}

var StoreProjectIDFlag = &cli.StringFlag{
	Name:    "store-project-id",
	Usage:   "Content store credential: project id",
	EnvVars: []string{"REPORT_STORE_PROJECT_ID"},
}

var StoreSecretFlag = &cli.StringFlag{
	Name:    "store-secret",
	Usage:   "Content store credential: project secret",
	EnvVars: []string{"REPORT_STORE_SECRET"},
}

var LogJsonFlag = &cli.BoolFlag{
	Name:  "log-json",
	Value: false,
	Usage: "log in JSON format",
}
var LogDebugFlag = &cli.BoolFlag{
	Name:  "log-debug",
	Value: false,
	Usage: "log debug messages",
}
var LogUidFlag = &cli.BoolFlag{
	Name:  "log-uid",
	Value: false,
	Usage: "generate a uuid and add to all log messages",
}
var LogServiceFlag = &cli.StringFlag{
	Name:  "log-service",
	Value: common.PackageName,
	Usage: "add 'service' tag to logs",
}

var PprofFlag = &cli.BoolFlag{
	Name:  "pprof",
	Value: false,
	Usage: "enable pprof debug endpoint",
}
var DrainSecondsFlag = &cli.Int64Flag{
	Name:  "drain-seconds",
	Value: 45,
	Usage: "seconds to wait in drain HTTP request",
}
var MetricsAddrFlag = &cli.StringFlag{
	Name:  "metrics-addr",
	Value: "127.0.0.1:8090",
	Usage: "address to listen on for Prometheus metrics",
}

var CommonFlags = []cli.Flag{
	RpcAddrFlag,
	RegistryAddrFlag,
	WalletKeyFileFlag,
	StoreURIFlag,
	StoreProjectIDFlag,
	StoreSecretFlag,
	LogJsonFlag,
	LogDebugFlag,
	LogUidFlag,
	LogServiceFlag,
}
