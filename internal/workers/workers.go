// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package workers

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MKhiriev/go-book-giveaway/internal/logger"
)

// ErrStop may be returned by a [Periodic] job to end the loop without an error.
var ErrStop = errors.New("stop periodic job")

const defaultInterval = 30 * time.Second

type Workers struct {
	workers []Worker
}

func NewWorkers(workers ...Worker) *Workers {
	return &Workers{workers: workers}
}

// Run starts every worker in its own goroutine and waits for all of them.
// The returned error joins the errors of all failed workers.
func (w *Workers) Run(ctx context.Context) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)

	for _, worker := range w.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := worker.Run(ctx); err != nil {
				mu.Lock()
				errs = append(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	return errors.Join(errs...)
}

// Periodic calls a job right away and then on every tick of interval.
// Job errors are logged and do not stop the loop, except [ErrStop].
type Periodic struct {
	name     string
	interval time.Duration
	job      func(ctx context.Context) error
	logger   *logger.Logger
}

// NewPeriodic builds a [Periodic] worker. A non-positive interval falls back
// to 30 seconds.
func NewPeriodic(name string, interval time.Duration, job func(ctx context.Context) error, logger *logger.Logger) *Periodic {
	if interval <= 0 {
		interval = defaultInterval
	}
	return &Periodic{name: name, interval: interval, job: job, logger: logger}
}

func (p *Periodic) Run(ctx context.Context) error {
	t := time.NewTicker(p.interval)
	defer t.Stop()

	for {
		if err := p.job(ctx); err != nil {
			if errors.Is(err, ErrStop) {
				return nil
			}
			if ctx.Err() != nil {
				return nil
			}
			p.logger.Err(err).Str("worker", p.name).Msg("periodic job failed")
		}

		select {
		case <-ctx.Done():
			return nil
		case <-t.C:
		}
	}
}
