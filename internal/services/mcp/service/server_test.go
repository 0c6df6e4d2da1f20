package service

import (
	"context"
	"testing"

	"github.com/louisbranch/jyotish-engine/internal/chart"
	"github.com/louisbranch/jyotish-engine/internal/ephemeris"
	"github.com/louisbranch/jyotish-engine/internal/services/mcp/domain"
)

func TestNewServerRegistersTools(t *testing.T) {
	engine := domain.Engine{
		Assembler: chart.NewAssembler(ephemeris.NewFixed(nil), chart.Options{}),
	}
	if NewServer(engine) == nil {
		t.Fatal("expected a server")
	}
}

func TestRunRequiresAssembler(t *testing.T) {
	if err := Run(context.Background(), Config{}); err == nil {
		t.Fatal("expected missing assembler error")
	}
}

func TestRunRejectsUnknownTransport(t *testing.T) {
	cfg := Config{
		Transport: TransportKind("carrier-pigeon"),
		Engine: domain.Engine{
			Assembler: chart.NewAssembler(ephemeris.NewFixed(nil), chart.Options{}),
		},
	}
	if err := Run(context.Background(), cfg); err == nil {
		t.Fatal("expected unsupported transport error")
	}
}
