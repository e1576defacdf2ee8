package app

import (
	"context"
	"fmt"
	"time"

	"minnow/internal/common/config"
	"minnow/internal/common/logger"
	"minnow/internal/common/resultlog"
)

const (
	connectAttempts = 3
	connectDelay    = 200 * time.Millisecond
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(ctx context.Context, operation func() error, maxRetries int, initialDelay time.Duration, log logger.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName), map[string]interface{}{
				"error":       err.Error(),
				"attempt":     i + 1,
				"maxRetries":  maxRetries,
				"nextRetryIn": delay.String(),
			})
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return ctx.Err()
			}
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

// buildRecorders connects the enabled result log sinks. A sink that cannot be
// reached is skipped with a warning; the run itself never depends on it.
func buildRecorders(ctx context.Context, cfg *config.Config, log logger.Logger) (resultlog.Recorder, func()) {
	var sinks resultlog.Multi
	var closers []func() error

	if cfg.ResultLog.Redis.Enabled {
		pub := resultlog.NewRedisPublisher(cfg.ResultLog.Redis)
		err := retryWithBackoff(ctx, func() error {
			pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
			defer cancel()
			return pub.Ping(pingCtx)
		}, connectAttempts, connectDelay, log, "Redis connection")
		if err != nil {
			log.Warn("result log redis disabled", map[string]interface{}{"error": err.Error()})
			_ = pub.Close()
		} else {
			sinks = append(sinks, pub)
			closers = append(closers, pub.Close)
		}
	}

	if cfg.ResultLog.Postgres.Enabled {
		rec, err := resultlog.NewPostgres(cfg.ResultLog.Postgres)
		if err == nil {
			err = retryWithBackoff(ctx, func() error {
				pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
				defer cancel()
				return rec.Ping(pingCtx)
			}, connectAttempts, connectDelay, log, "PostgreSQL connection")
			if err != nil {
				_ = rec.Close()
			}
		}
		if err != nil {
			log.Warn("result log postgres disabled", map[string]interface{}{"error": err.Error()})
		} else {
			sinks = append(sinks, rec)
			closers = append(closers, rec.Close)
		}
	}

	closeAll := func() {
		for _, c := range closers {
			_ = c()
		}
	}

	if len(sinks) == 0 {
		return nil, closeAll
	}
	return sinks, closeAll
}
