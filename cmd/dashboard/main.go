package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/openreports/report-registry-client/cmd/clientcommon"
	"github.com/openreports/report-registry-client/cmd/flags"
	"github.com/openreports/report-registry-client/common"
	"github.com/openreports/report-registry-client/httpserver"
)

var listenAddrFlag = &cli.StringFlag{
	Name:  "listen-addr",
	Value: "127.0.0.1:8080",
	Usage: "address to listen on for API",
}

func main() {
	app := &cli.App{
		Name:    "dashboard",
		Usage:   "HTTP dashboard for the report registry session",
		Version: common.Version,
		Flags: append([]cli.Flag{
			listenAddrFlag,
			flags.MetricsAddrFlag,
			flags.PprofFlag,
			flags.DrainSecondsFlag,
		}, flags.CommonFlags...),
		Action: runDashboard,
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runDashboard(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)

	manager, provider, err := clientcommon.BuildManager(cCtx, logger)
	if err != nil {
		logger.Error("Failed to assemble session manager", "err", err)
		return err
	}
	defer provider.Close()

	if err := manager.Connect(cCtx.Context); err != nil {
		logger.Error("Initial wallet connection failed", "err", err)
		return err
	}
	if err := manager.Refresh(cCtx.Context); err != nil {
		// Served stale-empty until the first successful refresh.
		logger.Warn("Initial report synchronization failed", "err", err)
	}

	watchCtx, stopWatch := context.WithCancel(cCtx.Context)
	defer stopWatch()
	go manager.Watch(watchCtx)

	cfg := flags.ConfigureServer(cCtx, logger, cCtx.String(listenAddrFlag.Name))
	srv, err := httpserver.New(cfg, httpserver.NewHandler(manager, logger))
	if err != nil {
		cfg.Log.Error("failed to create server", "err", err)
		return err
	}

	exit := make(chan os.Signal, 1)
	signal.Notify(exit, os.Interrupt, syscall.SIGTERM)
	srv.RunInBackground()
	<-exit

	// Shutdown server once termination signal is received
	srv.Shutdown()
	return nil
}
