// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"fmt"

	"github.com/louisbranch/jyotish-engine/internal/chart"
	"github.com/louisbranch/jyotish-engine/internal/ephemeris"
	"github.com/louisbranch/jyotish-engine/internal/geocode"
	entrypoint "github.com/louisbranch/jyotish-engine/internal/platform/cmd"
	"github.com/louisbranch/jyotish-engine/internal/scan"
	"github.com/louisbranch/jyotish-engine/internal/services/mcp/domain"
	"github.com/louisbranch/jyotish-engine/internal/services/mcp/service"
	"github.com/louisbranch/jyotish-engine/internal/storage/sqlite"
)

// Config holds MCP command configuration.
type Config struct {
	HTTPAddr  string `env:"JYOTISH_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
	Transport string `env:"JYOTISH_MCP_TRANSPORT" envDefault:"stdio"`
	DBPath    string `env:"JYOTISH_DB_PATH"       envDefault:"data/jyotish.db"`
	CacheSize int    `env:"JYOTISH_CACHE_SIZE"    envDefault:"4096"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := entrypoint.ParseConfig(&cfg); err != nil {
		return Config{}, err
	}
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for HTTP transport)")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "Transport type: stdio or http")
	fs.StringVar(&cfg.DBPath, "db-path", cfg.DBPath, "The birth record SQLite database path")
	fs.IntVar(&cfg.CacheSize, "cache-size", cfg.CacheSize, "Ephemeris position cache size")
	if err := entrypoint.ParseArgs(fs, args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP protocol adapter.
func Run(ctx context.Context, cfg Config) error {
	return entrypoint.RunWithTelemetry(ctx, entrypoint.ServiceMCP, func(ctx context.Context) error {
		provider, err := ephemeris.NewMemo(ephemeris.NewAnalytic(nil), cfg.CacheSize)
		if err != nil {
			return fmt.Errorf("ephemeris cache: %w", err)
		}
		store, err := sqlite.Open(cfg.DBPath)
		if err != nil {
			return fmt.Errorf("open store: %w", err)
		}
		defer store.Close()

		assembler := chart.NewAssembler(provider, chart.Options{})
		engine := domain.Engine{
			Assembler: assembler,
			Scanner:   scan.NewScanner(assembler),
			Resolver:  geocode.Validated(geocode.DefaultGazetteer()),
			Records:   store,
			Snapshots: store,
		}
		return service.Run(ctx, service.Config{
			Transport: service.TransportKind(cfg.Transport),
			HTTPAddr:  cfg.HTTPAddr,
			Engine:    engine,
		})
	})
}
