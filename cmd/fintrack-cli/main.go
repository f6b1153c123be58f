package main

import (
	"context"

	"github.com/alecthomas/kong"

	"fintrack/internal/cli"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	ctx := context.Background()
	svc, cleanup := cli.OpenLedger(ctx, logger, cfg)
	defer func() {
		if err := cleanup(); err != nil {
			logger.Error("Storage cleanup failed", "error", err)
		}
	}()

	var root cli.CLI
	k := kong.Parse(&root,
		kong.Name("fintrack-cli"),
		kong.Description("Personal finance ledger."),
		kong.UsageOnError())

	err := k.Run(&cli.Context{Ctx: ctx, Svc: svc})
	k.FatalIfErrorf(err)
}
