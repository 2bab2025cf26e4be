// Command score runs one transaction through the model artifacts from the
// command line, the same way the form does.
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"fraudcheck/config"
	"fraudcheck/fraud"
	"fraudcheck/ml"
)

// exitFraud is the exit status for a FRAUDULENT verdict.
const exitFraud = 2

func main() {
	code, err := run(os.Args[1:], os.Stdout)
	if err != nil {
		log.Fatal(err)
	}
	os.Exit(code)
}

func run(args []string, out io.Writer) (int, error) {
	var raw fraud.RawTransaction

	fs := flag.NewFlagSet("score", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	configPath := fs.String("config", "config.yaml", "config file naming the artifact dir and timezone")
	modelDir := fs.String("model_dir", "", "artifact dir, overrides the config")
	fs.StringVar(&raw.CardNumber, "card", "", "credit card number")
	fs.StringVar(&raw.Amount, "amount", "", "transaction amount")
	fs.StringVar(&raw.Date, "date", "", "transaction date, YYYY-MM-DD")
	fs.StringVar(&raw.Hour, "hour", "", "transaction hour, 0-23")
	fs.StringVar(&raw.Category, "category", "", "merchant category")
	fs.StringVar(&raw.Gender, "gender", "", "Male or Female")
	fs.StringVar(&raw.MerchantID, "merchant_id", "", "merchant id")
	fs.StringVar(&raw.CustomerLat, "lat", "", "customer latitude")
	fs.StringVar(&raw.CustomerLong, "long", "", "customer longitude")
	fs.StringVar(&raw.CityPopulation, "city_pop", "", "city population")
	fs.StringVar(&raw.JobID, "job_id", "", "job id")
	fs.StringVar(&raw.MerchantLat, "merch_lat", "", "merchant latitude")
	fs.StringVar(&raw.MerchantLong, "merch_long", "", "merchant longitude")
	if err := fs.Parse(args); err != nil {
		return 0, err
	}

	if missing := raw.MissingRequired(); len(missing) > 0 {
		return 0, fmt.Errorf("missing required %s", strings.Join(missing, " and "))
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		return 0, fmt.Errorf("failed to load config: %w", err)
	}
	if *modelDir != "" {
		cfg.Model.Dir = *modelDir
	}
	loc, err := cfg.Location()
	if err != nil {
		return 0, fmt.Errorf("invalid timezone: %w", err)
	}

	artifacts, err := ml.LoadArtifacts(cfg.Model.Dir, cfg.Model.ScalerFile, cfg.Model.ClassifierFile)
	if err != nil {
		return 0, fmt.Errorf("failed to load artifacts: %w", err)
	}
	pipeline, err := fraud.NewPipeline(artifacts, fraud.WithLocation(loc))
	if err != nil {
		return 0, fmt.Errorf("failed to build pipeline: %w", err)
	}

	tx, err := raw.Parse()
	if err != nil {
		return 0, fmt.Errorf("invalid transaction: %w", err)
	}
	result, err := pipeline.Analyze(context.Background(), tx)
	if err != nil {
		return 0, fmt.Errorf("analysis failed [%s]: %w", fraud.Kind(err), err)
	}

	fmt.Fprintf(out, "verdict=%s label=%d confidence=%.3f\n", result.Verdict, result.Label, result.Confidence)
	names := fraud.FeatureNames()
	for i, v := range result.Features {
		fmt.Fprintf(out, "  %-20s %v\n", names[i], v)
	}
	if result.Verdict.IsFraud() {
		return exitFraud, nil
	}
	return 0, nil
}
