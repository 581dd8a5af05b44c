// Package main provides the harvester command-line tool for collecting
// vulnerability records from the public CVE catalog.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"cveharvest/internal/config"
	"cveharvest/internal/crawler"
	"cveharvest/internal/exporter"
	"cveharvest/internal/logger"
	"cveharvest/internal/models"
	"cveharvest/internal/report"
)

const defaultConfigPath = "configs/harvester.yaml"

func main() {
	// Define command-line flags
	configFile := flag.String("config", "", "Path to YAML configuration file")
	output := flag.String("output", "", "Output directory for CSV files (overrides config)")
	startYear := flag.Int("start-year", 0, "First year to harvest (overrides config)")
	endYear := flag.Int("end-year", 0, "Last year to harvest (overrides config)")
	months := flag.String("months", "", "Comma-separated month names to harvest (overrides config)")
	concurrency := flag.Int("concurrency", 0, "Maximum concurrently active units (overrides config)")
	showUsage := flag.Bool("help", false, "Show usage information")

	flag.Parse()

	if *showUsage {
		printUsage()
		os.Exit(0)
	}

	cfg := loadConfiguration(*configFile)

	// Apply CLI overrides on top of the loaded configuration
	if *output != "" {
		cfg.Harvester.Output.BasePath = *output
	}

	if *startYear != 0 {
		cfg.Harvester.Range.StartYear = *startYear
	}

	if *endYear != 0 {
		cfg.Harvester.Range.EndYear = *endYear
	}

	if *months != "" {
		var names []string
		for _, name := range strings.Split(*months, ",") {
			names = append(names, strings.TrimSpace(name))
		}

		cfg.Harvester.Range.Months = names
	}

	if *concurrency != 0 {
		cfg.Harvester.Concurrency.MaxActiveUnits = *concurrency
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("❌ Invalid configuration: %v\n", err)
	}

	logg := logger.FromConfig(cfg.Harvester.Logging)

	printHeader(cfg)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sink := exporter.NewCSVExporter(cfg.Harvester.Output.BasePath)
	runner := crawler.NewRunner(cfg, logg, sink)

	results, elapsed := runner.Run(ctx)

	fmt.Println()
	fmt.Print(report.Render(results, elapsed))

	failed := 0
	for _, res := range results {
		if res.Status == models.UnitFailed {
			failed++
		}
	}

	if failed > 0 {
		fmt.Printf("\n⚠️  %d units failed, re-run them with -start-year/-end-year/-months\n", failed)
		os.Exit(1)
	}

	fmt.Println("\n✨ Harvest complete!")
}

// loadConfiguration resolves the effective configuration: explicit
// file, default config file, or built-in defaults.
func loadConfiguration(configFile string) *config.Config {
	if configFile != "" {
		fmt.Printf("⚙️  Loading configuration from: %s\n", configFile)

		cfg, err := config.LoadConfig(configFile)
		if err != nil {
			log.Fatalf("❌ Failed to load config: %v\n", err)
		}

		return cfg
	}

	if _, err := os.Stat(defaultConfigPath); err == nil {
		fmt.Printf("⚙️  Loading default configuration: %s\n", defaultConfigPath)

		cfg, err := config.LoadConfig(defaultConfigPath)
		if err != nil {
			log.Fatalf("❌ Failed to load default config: %v\n", err)
		}

		return cfg
	}

	fmt.Println("⚙️  Using built-in defaults")

	return config.Default()
}

func printHeader(cfg *config.Config) {
	h := &cfg.Harvester

	fmt.Println("🕷️  CVE Catalog Harvester")
	fmt.Printf("Source: %s\n", h.Source.BaseURL)
	fmt.Printf("Range: %d-%d, %d months\n", h.Range.StartYear, h.Range.EndYear, len(h.Range.GetMonths()))
	fmt.Printf("Concurrency: %d active units, pacing %s %d-%dms\n",
		h.Concurrency.MaxActiveUnits, h.Pacing.Mode, h.Pacing.MinDelayMs, h.Pacing.MaxDelayMs)
	fmt.Printf("Output: %s\n", h.Output.BasePath)
	fmt.Println()
}

func printUsage() {
	fmt.Println("Usage: ./bin/harvester [OPTIONS]")
	fmt.Println()
	fmt.Println("Modes:")
	fmt.Println("  1. Config-based:   ./bin/harvester -config configs/harvester.yaml")
	fmt.Println("  2. Default config: ./bin/harvester (reads configs/harvester.yaml if exists)")
	fmt.Println("  3. CLI overrides:  ./bin/harvester -start-year 2024 -end-year 2024 -months March")
	fmt.Println()
	fmt.Println("Options:")
	flag.PrintDefaults()
	fmt.Println()
	fmt.Println("Examples:")
	fmt.Println("  ./bin/harvester -config configs/harvester.yaml")
	fmt.Println("  ./bin/harvester -start-year 2024 -end-year 2025 -output ./storage")
	fmt.Println("  ./bin/harvester -months \"January,February\" -concurrency 3")
}
