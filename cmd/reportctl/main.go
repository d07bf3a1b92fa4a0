package main

import (
	"bufio"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/openreports/report-registry-client/cmd/clientcommon"
	"github.com/openreports/report-registry-client/cmd/flags"
	"github.com/openreports/report-registry-client/interfaces"
)

var flagTitle = &cli.StringFlag{
	Name:     "title",
	Required: true,
	Usage:    "Title for the submitted report",
}
var flagPayloadFile = &cli.StringFlag{
	Name:     "file",
	Required: true,
	Usage:    "Path to the report payload file",
}
var flagReportID = &cli.Uint64Flag{
	Name:     "id",
	Required: true,
	Usage:    "Registry-assigned report id",
}
var flagYes = &cli.BoolFlag{
	Name:  "yes",
	Usage: "Skip the interactive confirmation prompt",
}

func main() {
	app := &cli.App{
		Name:  "reportctl",
		Usage: "Submit, list and manage reports in the on-chain registry",
		Flags: flags.CommonFlags,
		Commands: []*cli.Command{
			{
				Name:        "status",
				Usage:       "Show the bound session state",
				Description: "Connects the wallet and prints the resolved address, owner role and submission authorization.",
				Action:      runStatus,
			},
			{
				Name:        "list",
				Usage:       "List active reports, newest first",
				Action:      runList,
			},
			{
				Name:   "submit",
				Usage:  "Upload a payload and register it as a report",
				Flags:  []cli.Flag{flagTitle, flagPayloadFile},
				Action: runSubmit,
			},
			{
				Name:   "delete",
				Usage:  "Soft-delete a report by id",
				Flags:  []cli.Flag{flagReportID, flagYes},
				Action: runDelete,
			},
			{
				Name:      "grant",
				Usage:     "Authorize an address to submit reports (owner only)",
				ArgsUsage: "ADDRESS",
				Action:    runGrant,
			},
			{
				Name:      "revoke",
				Usage:     "Revoke an address's submission rights (owner only)",
				ArgsUsage: "ADDRESS",
				Action:    runRevoke,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

func runStatus(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	manager, provider, err := clientcommon.BuildManager(cCtx, logger)
	if err != nil {
		return err
	}
	defer provider.Close()

	if err := manager.Connect(cCtx.Context); err != nil {
		return err
	}

	encoded, _ := json.MarshalIndent(manager.Snapshot().Session, "", "  ")
	fmt.Println(string(encoded))
	return nil
}

func runList(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	manager, provider, err := clientcommon.BuildManager(cCtx, logger)
	if err != nil {
		return err
	}
	defer provider.Close()

	if err := manager.Connect(cCtx.Context); err != nil {
		return err
	}
	if err := manager.Refresh(cCtx.Context); err != nil {
		return err
	}

	snapshot := manager.Snapshot()
	for _, report := range snapshot.Reports {
		line := fmt.Sprintf("#%d\t%s\t%s\tby %s", report.ID, report.Title, report.ContentID, report.Author)
		if store := manager.Store(); store != nil {
			line += "\t" + store.ContentURL(report.ContentID)
		}
		fmt.Println(line)
	}
	fmt.Printf("%d active reports\n", len(snapshot.Reports))
	return nil
}

func runSubmit(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	manager, provider, err := clientcommon.BuildManager(cCtx, logger)
	if err != nil {
		return err
	}
	defer provider.Close()

	payload, err := os.ReadFile(cCtx.String(flagPayloadFile.Name))
	if err != nil {
		return fmt.Errorf("could not read payload file: %w", err)
	}

	if err := manager.Connect(cCtx.Context); err != nil {
		return err
	}

	draft := interfaces.SubmissionDraft{
		Title:   cCtx.String(flagTitle.Name),
		Payload: payload,
	}
	if err := manager.Submit(cCtx.Context, &draft); err != nil {
		return err
	}

	fmt.Println("report registered")
	return nil
}

func runDelete(cCtx *cli.Context) error {
	logger := flags.SetupLogger(cCtx)
	manager, provider, err := clientcommon.BuildManager(cCtx, logger)
	if err != nil {
		return err
	}
	defer provider.Close()

	id := cCtx.Uint64(flagReportID.Name)

	confirmed := cCtx.Bool(flagYes.Name)
	if !confirmed {
		fmt.Printf("Delete report #%d? [y/N]: ", id)
		answer, err := bufio.NewReader(os.Stdin).ReadString('\n')
		if err != nil {
			return err
		}
		confirmed = strings.EqualFold(strings.TrimSpace(answer), "y")
	}

	if err := manager.Connect(cCtx.Context); err != nil {
		return err
	}
	if err := manager.DeleteReport(cCtx.Context, id, confirmed); err != nil {
		return err
	}

	fmt.Printf("report #%d deleted\n", id)
	return nil
}

func runGrant(cCtx *cli.Context) error {
	return runAuthorization(cCtx, true)
}

func runRevoke(cCtx *cli.Context) error {
	return runAuthorization(cCtx, false)
}

func runAuthorization(cCtx *cli.Context, grant bool) error {
	addr := cCtx.Args().First()
	if addr == "" {
		return fmt.Errorf("expected an address argument")
	}

	logger := flags.SetupLogger(cCtx)
	manager, provider, err := clientcommon.BuildManager(cCtx, logger)
	if err != nil {
		return err
	}
	defer provider.Close()

	if err := manager.Connect(cCtx.Context); err != nil {
		return err
	}

	if grant {
		err = manager.Grant(cCtx.Context, addr)
	} else {
		err = manager.Revoke(cCtx.Context, addr)
	}
	if err != nil {
		return err
	}

	fmt.Println("authorization updated")
	return nil
}
