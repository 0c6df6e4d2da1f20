// Package service builds and runs the MCP server over stdio or HTTP.
package service

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/louisbranch/jyotish-engine/internal/services/mcp/domain"
)

const (
	serverName    = "jyotish-engine"
	serverVersion = "0.1.0"

	// shutdownTimeout bounds graceful HTTP shutdown after cancellation.
	shutdownTimeout = 10 * time.Second
)

// TransportKind selects how the MCP server speaks to its client.
type TransportKind string

const (
	TransportStdio TransportKind = "stdio"
	TransportHTTP  TransportKind = "http"
)

// Config holds the MCP service configuration.
type Config struct {
	Transport TransportKind
	// HTTPAddr is the listen address for the HTTP transport.
	HTTPAddr string
	Engine   domain.Engine
}

// NewServer builds an MCP server with every engine tool registered.
func NewServer(engine domain.Engine) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: serverName, Version: serverVersion}, nil)
	mcp.AddTool(server, domain.ChartComputeTool(), domain.ChartComputeHandler(engine))
	mcp.AddTool(server, domain.DivisionalChartTool(), domain.DivisionalChartHandler(engine))
	mcp.AddTool(server, domain.DashaPeriodsTool(), domain.DashaPeriodsHandler(engine))
	mcp.AddTool(server, domain.AshtakavargaTool(), domain.AshtakavargaHandler(engine))
	mcp.AddTool(server, domain.TransitScanTool(), domain.TransitScanHandler(engine))
	mcp.AddTool(server, domain.BirthRecordSaveTool(), domain.BirthRecordSaveHandler(engine))
	mcp.AddTool(server, domain.BirthRecordGetTool(), domain.BirthRecordGetHandler(engine))
	return server
}

// Run serves MCP until context cancellation.
func Run(ctx context.Context, cfg Config) error {
	if cfg.Engine.Assembler == nil {
		return fmt.Errorf("engine assembler is required")
	}

	server := NewServer(cfg.Engine)
	switch cfg.Transport {
	case TransportStdio, "":
		return server.Run(ctx, &mcp.StdioTransport{})
	case TransportHTTP:
		return runHTTP(ctx, cfg, server)
	default:
		return fmt.Errorf("transport %q is not supported", cfg.Transport)
	}
}

// runHTTP serves the streamable HTTP transport on cfg.HTTPAddr and shuts
// down gracefully when the context is cancelled.
func runHTTP(ctx context.Context, cfg Config, server *mcp.Server) error {
	addr := cfg.HTTPAddr
	if addr == "" {
		addr = "localhost:8080"
	}

	handler := mcp.NewStreamableHTTPHandler(func(*http.Request) *mcp.Server {
		return server
	}, nil)

	mux := http.NewServeMux()
	mux.Handle("/mcp", handler)
	httpServer := &http.Server{
		Addr:    addr,
		Handler: mux,
	}

	errs := make(chan error, 1)
	go func() {
		log.Printf("mcp http transport listening on %s", addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errs <- err
			return
		}
		errs <- nil
	}()

	select {
	case err := <-errs:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http transport: %w", err)
		}
		return <-errs
	}
}
