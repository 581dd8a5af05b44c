// Package main provides the confinit command-line tool. It writes the
// built-in default harvester configuration to a YAML file so operators
// can start from a complete, annotatable template.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"cveharvest/internal/config"
)

func main() {
	output := flag.String("output", "configs/harvester.yaml", "Path to write the configuration file")
	force := flag.Bool("force", false, "Overwrite an existing file")
	flag.Parse()

	if _, err := os.Stat(*output); err == nil && !*force {
		log.Fatalf("❌ %s already exists, use -force to overwrite\n", *output)
	}

	if err := os.MkdirAll(filepath.Dir(*output), 0755); err != nil {
		log.Fatalf("❌ Failed to create directory: %v\n", err)
	}

	cfg := config.Default()

	if err := cfg.SaveConfig(*output); err != nil {
		log.Fatalf("❌ Failed to write config: %v\n", err)
	}

	fmt.Printf("✅ Wrote default configuration to %s\n", *output)
	fmt.Printf("   %s\n", cfg.String())
}
