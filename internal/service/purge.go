package service

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Purger удаляет сеансы, к которым давно не обращались.
type Purger interface {
	PurgeIdle(ctx context.Context, idle time.Duration) (int64, error)
}

// RunSessionPurge периодически удаляет простаивающие сеансы, пока не отменён ctx.
func RunSessionPurge(ctx context.Context, p Purger, interval, idle time.Duration, logger *zap.Logger) {
	if p == nil || interval <= 0 {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := p.PurgeIdle(ctx, idle)
			if err != nil {
				if ctx.Err() != nil {
					return
				}
				logger.Warn("purge idle sessions", zap.Error(err))
				continue
			}
			if n > 0 {
				logger.Info("idle sessions purged", zap.Int64("count", n))
			}
		}
	}
}
