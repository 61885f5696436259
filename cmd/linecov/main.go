package main

import (
	"context"
	"log/slog"
	"os"

	"github.com/urfave/cli/v3"

	"github.com/farcloser/linecov/version"
)

func main() {
	ctx := context.Background()

	appl := rootCommand()

	if err := appl.Run(ctx, os.Args); err != nil {
		slog.Error("failed to run", "error", err)
		os.Exit(1)
	}
}

func rootCommand() *cli.Command {
	cmd := analyzeCommand()
	cmd.Name = version.Name()
	cmd.Version = version.Version() + " " + version.Commit()

	return cmd
}
