// Package engine evaluates several indicator specs over one bar series.
package engine

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/indicators"
	"github.com/GaiusCaesarBC/Nexus-Signal-Frontend-sub002/pricing"
)

// Observer is notified after each indicator computation.
type Observer interface {
	Observe(name string, points int, elapsed time.Duration)
}

type Engine struct {
	logger   *zap.Logger
	observer Observer
	limit    int
}

type Option func(*Engine)

// WithObserver reports per-indicator timings, e.g. to Prometheus.
func WithObserver(o Observer) Option {
	return func(e *Engine) { e.observer = o }
}

// WithLimit caps how many specs are computed concurrently.
func WithLimit(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.limit = n
		}
	}
}

func New(logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Engine{logger: logger, limit: runtime.GOMAXPROCS(0)}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Validate checks every spec before any work is done.
func Validate(specs []indicators.Spec) error {
	if len(specs) == 0 {
		return fmt.Errorf("%w: no indicators requested", indicators.ErrInvalidSpec)
	}
	for i, s := range specs {
		if err := s.Validate(); err != nil {
			return fmt.Errorf("indicator %d: %w", i, err)
		}
	}
	return nil
}

// ComputeAll runs every spec over bars and returns outputs in spec order.
// The indicators are pure, so specs are computed in parallel; ctx is
// checked before each spec starts.
func (e *Engine) ComputeAll(ctx context.Context, bars []pricing.Bar, specs []indicators.Spec) ([]indicators.Output, error) {
	if err := Validate(specs); err != nil {
		return nil, err
	}

	out := make([]indicators.Output, len(specs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(e.limit)
	for i, spec := range specs {
		i, spec := i, spec
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			start := time.Now()
			res, err := indicators.Compute(bars, spec)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			points := len(res.Histogram)
			for _, s := range res.Lines {
				points += len(s)
			}
			if res.Empty() {
				e.logger.Debug("insufficient history",
					zap.String("indicator", res.Key),
					zap.Int("bars", len(bars)))
			}
			if e.observer != nil {
				e.observer.Observe(res.Name, points, elapsed)
			}

			out[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	e.logger.Debug("computed indicators",
		zap.Int("bars", len(bars)),
		zap.Int("indicators", len(specs)))
	return out, nil
}
