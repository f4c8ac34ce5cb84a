// Package worker runs the background expiry/purge maintenance independent of
// request traffic. A single goroutine owns the ticker, so sweeps never
// overlap each other; they share their store operations with the request
// path, which keeps interleaving with lazy expiry safe.
package worker

import (
	"context"
	"sync"
	"time"

	"dropgate/internal/app"
	"dropgate/internal/logger"
)

type Sweeper struct {
	drops    *app.DropService
	interval time.Duration
	grace    time.Duration
	logger   *logger.Logger

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewSweeper(drops *app.DropService, interval, grace time.Duration, log *logger.Logger) *Sweeper {
	ctx, cancel := context.WithCancel(context.Background())

	if log == nil {
		log = logger.Default()
	}

	return &Sweeper{
		drops:    drops,
		interval: interval,
		grace:    grace,
		logger:   log.WithComponent("sweeper"),
		ctx:      ctx,
		cancel:   cancel,
	}
}

func (s *Sweeper) Start() {
	s.logger.Info("Starting sweeper", "interval", s.interval, "grace", s.grace)

	s.wg.Add(1)
	go s.run()
}

func (s *Sweeper) Stop() {
	s.logger.Info("Stopping sweeper")
	s.cancel()
	s.wg.Wait()
}

func (s *Sweeper) run() {
	defer s.wg.Done()

	// Catch up immediately on anything that came due while we were down.
	s.Sweep()

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.ctx.Done():
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one expire pass followed by one purge pass. Failures are logged
// and never stop the loop.
func (s *Sweeper) Sweep() {
	defer func() {
		if r := recover(); r != nil {
			s.logger.Error("Panic in sweep", "panic", r)
		}
	}()

	expired, err := s.drops.ExpireDue()
	if err != nil {
		s.logger.Error("Expire sweep failed", "error", err)
	} else if expired > 0 {
		s.logger.Info("Expired drops", "count", expired)
	}

	purged, err := s.drops.PurgeEnded(s.grace)
	if err != nil {
		s.logger.Error("Purge sweep failed", "error", err)
	} else if purged > 0 {
		s.logger.Info("Purged drops", "count", purged)
	}
}
