package sessions

import (
	"context"
	"log/slog"
	"time"

	"github.com/JaimeStill/lox/pkg/lifecycle"
)

// Purger deletes expired sessions on a fixed interval until the lifecycle
// context is cancelled.
type Purger struct {
	sys      System
	interval time.Duration
	logger   *slog.Logger
}

// NewPurger creates a Purger for sys.
func NewPurger(sys System, interval time.Duration, logger *slog.Logger) *Purger {
	return &Purger{
		sys:      sys,
		interval: interval,
		logger:   logger.With("system", "session-purger"),
	}
}

// Start launches the purge loop and registers a shutdown hook that waits
// for it to exit.
func (p *Purger) Start(lc *lifecycle.Coordinator) error {
	done := make(chan struct{})
	go func() {
		defer close(done)
		p.Run(lc.Context())
	}()

	lc.OnShutdown(func() {
		<-lc.Context().Done()
		<-done
		p.logger.Info("session purger stopped")
	})

	p.logger.Info("session purger started", "interval", p.interval)
	return nil
}

// Run purges once per interval and returns when ctx is done.
func (p *Purger) Run(ctx context.Context) {
	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.purge(ctx)
		}
	}
}

func (p *Purger) purge(ctx context.Context) {
	n, err := p.sys.PurgeExpired(ctx)
	if err != nil {
		if ctx.Err() == nil {
			p.logger.Error("purge expired sessions", "error", err)
		}
		return
	}
	if n > 0 {
		p.logger.Info("purged expired sessions", "count", n)
	}
}
