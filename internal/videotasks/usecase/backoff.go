package usecase

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/clipforge/clipforge-backend/internal/config"
)

const (
	defaultInitialDelayMs    = 5000
	defaultMaxDelayMs        = 60000
	defaultBackoffMultiplier = 1.5
	defaultMaxAttempts       = 60
	defaultCacheTTLSeconds   = 5
)

func normalizePollerConfig(cfg config.PollerConfig) config.PollerConfig {
	if cfg.InitialDelayMs <= 0 {
		cfg.InitialDelayMs = defaultInitialDelayMs
	}
	if cfg.MaxDelayMs <= 0 {
		cfg.MaxDelayMs = defaultMaxDelayMs
	}
	if cfg.BackoffMultiplier <= 1 {
		cfg.BackoffMultiplier = defaultBackoffMultiplier
	}
	if cfg.MaxAttempts <= 0 {
		cfg.MaxAttempts = defaultMaxAttempts
	}
	if cfg.CacheTTLSeconds <= 0 {
		cfg.CacheTTLSeconds = defaultCacheTTLSeconds
	}
	return cfg
}

// newPollBackOff yields delays of min(initial * multiplier^(k-1), max) with no
// jitter, so attempt pacing is exactly the configured schedule.
func newPollBackOff(cfg config.PollerConfig) *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.InitialInterval = time.Duration(cfg.InitialDelayMs) * time.Millisecond
	b.MaxInterval = time.Duration(cfg.MaxDelayMs) * time.Millisecond
	b.Multiplier = cfg.BackoffMultiplier
	b.RandomizationFactor = 0
	b.MaxElapsedTime = 0
	b.Reset()
	return b
}
