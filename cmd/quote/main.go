package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/noah-isme/carquote/internal/catalog"
	"github.com/noah-isme/carquote/internal/config"
	"github.com/noah-isme/carquote/internal/export"
	"github.com/noah-isme/carquote/internal/obs"
)

const usage = `usage:
  quote --models ./data/cars.json --model <id> --trim <code> [--options smartkey,audio] [--color UD]
  quote --models ./data/cars.json --scenarios ./scenarios.json [--csv ./result.csv]`

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	fs := flag.NewFlagSet("quote", flag.ContinueOnError)
	fs.SetOutput(stderr)
	var (
		modelsPath    = fs.String("models", cfg.CatalogPath, "path to the catalog JSON file")
		modelID       = fs.String("model", "", "model id for a single quote")
		trimCode      = fs.String("trim", "", "trim code for a single quote")
		options       = fs.String("options", "", "comma separated option codes")
		color         = fs.String("color", "", "exterior color code")
		scenariosPath = fs.String("scenarios", "", "path to a scenarios JSON file for batch mode")
		csvPath       = fs.String("csv", "", "write batch results as CSV to this path")
	)
	if err := fs.Parse(args); err != nil {
		return 1
	}

	logger := obs.NewLoggerTo(stderr, cfg.LogFormat, cfg.LogLevel).With().Str("cmd", "quote").Logger()

	if *scenariosPath == "" && (strings.TrimSpace(*modelID) == "" || strings.TrimSpace(*trimCode) == "") {
		fmt.Fprintln(stderr, usage)
		return 1
	}

	cat, err := catalog.LoadFile(*modelsPath)
	if err != nil {
		logger.Error().Err(err).Str("path", *modelsPath).Msg("load catalog")
		return 1
	}
	runner := export.Runner{Catalog: cat}

	if *scenariosPath != "" {
		if err := runBatch(context.Background(), logger, runner, *scenariosPath, *csvPath, stdout); err != nil {
			logger.Error().Err(err).Str("scenarios", *scenariosPath).Msg("batch quote failed")
			return 1
		}
		return 0
	}

	res, err := runner.Quote(export.Scenario{
		Model:   *modelID,
		Trim:    *trimCode,
		Options: export.SplitCodes(*options),
		Color:   *color,
	})
	if err != nil {
		logger.Error().Err(err).Str("model", *modelID).Str("trim", *trimCode).Msg("quote failed")
		return 1
	}
	if err := export.WriteText(stdout, res); err != nil {
		logger.Error().Err(err).Msg("write quote")
		return 1
	}
	return 0
}

func runBatch(ctx context.Context, logger zerolog.Logger, runner export.Runner, scenariosPath, csvPath string, stdout io.Writer) error {
	scenarios, err := export.LoadScenarios(scenariosPath)
	if err != nil {
		return err
	}
	report, err := runner.Run(ctx, scenarios)
	if err != nil {
		return err
	}
	logger.Info().Str("run_id", report.RunID).Int("scenarios", len(report.Results)).Msg("batch priced")

	for _, res := range report.Results {
		if err := export.WriteText(stdout, res); err != nil {
			return err
		}
	}
	if csvPath == "" {
		return nil
	}

	f, err := os.Create(csvPath)
	if err != nil {
		return fmt.Errorf("create csv: %w", err)
	}
	if err := export.WriteCSV(f, report.Results); err != nil {
		_ = f.Close()
		return fmt.Errorf("write csv: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close csv: %w", err)
	}
	logger.Info().Str("run_id", report.RunID).Str("path", csvPath).Msg("csv written")
	return nil
}
