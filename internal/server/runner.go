// Package server schedules repeated reconciliation passes.
package server

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"
)

// PassFunc performs one reconciliation pass.
type PassFunc func(ctx context.Context) error

// Config for the runner.
type Config struct {
	// Interval between passes. Zero runs a single pass.
	Interval time.Duration

	// IsFatal reports whether a pass error should stop the runner. When nil,
	// every error is logged and the next tick proceeds.
	IsFatal func(error) bool
}

// Runner runs passes immediately and then on every interval tick.
type Runner struct {
	pass   PassFunc
	config Config
	logger *slog.Logger
}

// NewRunner creates a new runner.
func NewRunner(pass PassFunc, cfg Config, logger *slog.Logger) *Runner {
	if logger == nil {
		logger = slog.Default()
	}
	return &Runner{
		pass:   pass,
		config: cfg,
		logger: logger.With("component", "runner"),
	}
}

// Run blocks until the context is canceled or a fatal pass error occurs.
// With a zero interval it runs one pass and returns its error.
func (r *Runner) Run(ctx context.Context) error {
	if r.config.Interval <= 0 {
		return r.pass(ctx)
	}

	r.logger.Info("scheduler started", "interval", r.config.Interval)

	// Ticks that arrive while a pass is running are coalesced into one.
	trigger := make(chan struct{}, 1)
	trigger <- struct{}{}

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		ticker := time.NewTicker(r.config.Interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
				select {
				case trigger <- struct{}{}:
				default:
					r.logger.Debug("pass still running, skipping tick")
				}
			}
		}
	})

	g.Go(func() error {
		for {
			select {
			case <-ctx.Done():
				return nil
			case <-trigger:
			}

			start := time.Now()
			err := r.pass(ctx)
			switch {
			case err == nil:
				r.logger.Debug("pass complete", "duration_ms", time.Since(start).Milliseconds())
			case errors.Is(err, context.Canceled), ctx.Err() != nil:
				return nil
			case r.config.IsFatal != nil && r.config.IsFatal(err):
				r.logger.Error("pass failed, stopping", "error", err)
				return err
			default:
				r.logger.Error("pass failed", "error", err)
			}
		}
	})

	err := g.Wait()
	r.logger.Info("scheduler stopped")
	return err
}
