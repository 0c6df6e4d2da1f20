// Package scan assembles charts across a range of instants in parallel.
// Each instant is independent of every other, so the range maps onto a
// bounded worker pool; results come back in chronological order
// regardless of completion order.
package scan

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	"github.com/louisbranch/jyotish-engine/internal/astro"
	"github.com/louisbranch/jyotish-engine/internal/chart"
	"github.com/louisbranch/jyotish-engine/internal/houses"
	"github.com/louisbranch/jyotish-engine/internal/julian"
)

var tracer = otel.Tracer("jyotish-engine/scan")

// ErrInvalidRange indicates an empty or inverted scan range or a
// non-positive step.
var ErrInvalidRange = errors.New("invalid scan range")

// defaultWorkers bounds parallelism when the request does not.
const defaultWorkers = 8

// maxSamples caps a single scan so a mistyped step cannot allocate an
// unbounded result set. Daily steps over a century stay well inside it.
const maxSamples = 100_000

// Request describes a chart scan over [Start, End] at a fixed step.
type Request struct {
	Start julian.Day
	End   julian.Day
	// StepDays is the sample spacing in days.
	StepDays float64
	Location astro.Location
	Mode     astro.ZodiacMode
	System   houses.System
	// FallbackWholeSign is forwarded to each house computation.
	FallbackWholeSign bool
	// Workers bounds the pool size; zero means a default.
	Workers int
}

// Sample is one assembled chart in a scan.
type Sample struct {
	Day   julian.Day
	Chart chart.Chart
}

// Scanner maps chart assembly over instant ranges.
type Scanner struct {
	assembler *chart.Assembler
}

// NewScanner returns a Scanner backed by an assembler.
func NewScanner(assembler *chart.Assembler) *Scanner {
	return &Scanner{assembler: assembler}
}

// Run assembles one chart per instant in the request range. The first
// assembly error cancels the remaining work and is returned. Results are
// ordered by instant.
func (s *Scanner) Run(ctx context.Context, request Request) ([]Sample, error) {
	days, err := instants(request)
	if err != nil {
		return nil, err
	}
	ctx, span := tracer.Start(ctx, "scan.Run", trace.WithAttributes(
		attribute.Int("scan.samples", len(days)),
		attribute.Float64("scan.step_days", request.StepDays),
	))
	defer span.End()

	workers := request.Workers
	if workers <= 0 {
		workers = defaultWorkers
	}

	samples := make([]Sample, len(days))
	group, ctx := errgroup.WithContext(ctx)
	group.SetLimit(workers)
	for i, day := range days {
		group.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			moment, err := julian.FromDay(day, 0)
			if err != nil {
				return fmt.Errorf("instant %v: %w", day, err)
			}
			assembled, err := s.assembler.Assemble(ctx, chart.Request{
				Moment:            moment,
				Location:          request.Location,
				Mode:              request.Mode,
				System:            request.System,
				FallbackWholeSign: request.FallbackWholeSign,
			})
			if err != nil {
				return fmt.Errorf("instant %v: %w", day, err)
			}
			samples[i] = Sample{Day: day, Chart: assembled}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	return samples, nil
}

// instants expands a request into its ordered sample days.
func instants(request Request) ([]julian.Day, error) {
	if request.StepDays <= 0 {
		return nil, fmt.Errorf("%w: step %v", ErrInvalidRange, request.StepDays)
	}
	if request.End < request.Start {
		return nil, fmt.Errorf("%w: end %v before start %v", ErrInvalidRange, request.End, request.Start)
	}
	count := int(float64(request.End-request.Start)/request.StepDays) + 1
	if count > maxSamples {
		return nil, fmt.Errorf("%w: %d samples exceeds limit %d", ErrInvalidRange, count, maxSamples)
	}
	days := make([]julian.Day, 0, count)
	for i := 0; i < count; i++ {
		days = append(days, request.Start+julian.Day(float64(i)*request.StepDays))
	}
	return days, nil
}
