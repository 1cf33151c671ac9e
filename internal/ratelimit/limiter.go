package ratelimit

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/artmafra/notas/internal/config"
	redis "github.com/redis/go-redis/v9"
)

const keyClientIP = "ratelimit:ip:%s"

// RequestLimiter throttles requests per client IP. A nil or disabled limiter
// admits everything, so local development and tests run without redis.
type RequestLimiter struct {
	enabled bool

	window *SlidingWindow
	limit  int
	per    time.Duration
}

func NewRequestLimiter(cfg config.Config) (*RequestLimiter, error) {
	limitCfg := cfg.RateLimit
	if !limitCfg.Enabled() {
		return nil, nil
	}

	if limitCfg.Requests <= 0 {
		return nil, fmt.Errorf("rate limit requests must be positive, got %d", limitCfg.Requests)
	}
	if limitCfg.WindowSeconds <= 0 {
		return nil, fmt.Errorf("rate limit window must be positive, got %d", limitCfg.WindowSeconds)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     limitCfg.RedisAddr,
		Password: limitCfg.RedisPassword,
		DB:       limitCfg.RedisDB,
	})

	return &RequestLimiter{
		enabled: true,
		window:  NewSlidingWindow(client),
		limit:   limitCfg.Requests,
		per:     time.Duration(limitCfg.WindowSeconds) * time.Second,
	}, nil
}

func (l *RequestLimiter) Enabled() bool {
	return l != nil && l.enabled
}

// AllowIP admits one request from the given client IP.
func (l *RequestLimiter) AllowIP(ctx context.Context, ip string) (*Result, error) {
	if !l.Enabled() {
		return &Result{Allowed: true, Limit: l.clampLimit(), Remaining: l.clampLimit()}, nil
	}
	key := fmt.Sprintf(keyClientIP, strings.TrimSpace(ip))
	return l.window.Allow(ctx, key, l.limit, l.per)
}

func (l *RequestLimiter) clampLimit() int {
	if l == nil {
		return 0
	}
	return l.limit
}
