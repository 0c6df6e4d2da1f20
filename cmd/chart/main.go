package main

import (
	"context"
	"flag"
	"log"
	"os"

	chartcmd "github.com/louisbranch/jyotish-engine/internal/cmd/chart"
)

// main computes a single chart and prints it to stdout.
func main() {
	cfg, err := chartcmd.ParseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatalf("parse flags: %v", err)
	}
	log.SetPrefix("[CHART] ")

	if err := chartcmd.Run(context.Background(), cfg, os.Stdout); err != nil {
		log.Fatalf("failed to compute chart: %v", err)
	}
}
