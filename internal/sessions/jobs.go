package sessions

import (
	"context"
	"time"

	"cinebook/internal/shared/config"
	"cinebook/pkg/logger"
)

// ExpiryProcessor sweeps overdue sessions in the background. The sweep is
// a safety net behind lazy expiry on reads; both paths share the same
// guarded transition so a session expires exactly once.
type ExpiryProcessor struct {
	service   Service
	interval  time.Duration
	batchSize int
	log       *logger.Logger
	done      chan struct{}
}

func NewExpiryProcessor(service Service, cfg *config.Config, log *logger.Logger) *ExpiryProcessor {
	return &ExpiryProcessor{
		service:   service,
		interval:  cfg.Booking.ExpiryCheckInterval,
		batchSize: 100,
		log:       log,
		done:      make(chan struct{}),
	}
}

func (p *ExpiryProcessor) Start(ctx context.Context) {
	go p.run(ctx)
	p.log.Info("session expiry processor started", "interval", p.interval.String())
}

func (p *ExpiryProcessor) Stop() {
	close(p.done)
	p.log.Info("session expiry processor stopped")
}

func (p *ExpiryProcessor) run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			p.sweep(ctx)
		case <-p.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *ExpiryProcessor) sweep(ctx context.Context) {
	expired, err := p.service.ExpireOverdue(ctx, p.batchSize)
	if err != nil {
		p.log.ErrorWithContext(ctx, "session expiry sweep failed", err, nil)
		return
	}
	if expired > 0 {
		p.log.Info("expired overdue sessions", "count", expired)
	}
}
