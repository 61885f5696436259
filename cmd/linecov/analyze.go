package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/afero"
	"github.com/urfave/cli/v3"

	"github.com/farcloser/linecov"
	"github.com/farcloser/linecov/internal/output"
	"github.com/farcloser/linecov/internal/source"
)

var errInvalidArgCount = errors.New("expected exactly one argument: report path or \"-\" for stdin")

func analyzeCommand() *cli.Command {
	return &cli.Command{
		Usage:     "Print the overall line coverage of a JaCoCo XML report",
		ArgsUsage: "<report.xml | ->",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "format",
				Aliases: []string{"f"},
				Usage:   "Output format: text, console, json, markdown",
				Value:   output.FormatText,
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"D"},
				Usage:   "Log analysis stages and include raw counter data in structured output",
			},
		},
		Action: func(_ context.Context, cmd *cli.Command) error {
			if cmd.NArg() != 1 {
				return fmt.Errorf("%w: got %d", errInvalidArgCount, cmd.NArg())
			}

			debug := cmd.Bool("debug")
			if debug {
				slog.SetLogLoggerLevel(slog.LevelDebug)
			}

			formatName := cmd.String("format")
			if err := output.Validate(formatName); err != nil {
				return fmt.Errorf("--format: %w", err)
			}

			reportPath := cmd.Args().First()

			result, err := analyzeFile(afero.NewOsFs(), reportPath)
			if err != nil {
				return err
			}

			return output.Print(os.Stdout, formatName, reportPath, result, debug)
		},
	}
}

func analyzeFile(fs afero.Fs, reportPath string) (*linecov.Result, error) {
	reader, err := source.Open(fs, os.Stdin, reportPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", linecov.ErrReadReport, err)
	}
	defer reader.Close()

	return linecov.Analyze(reader)
}
