package ratelimit

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	redis "github.com/redis/go-redis/v9"
)

// Sliding window over a redis sorted set: one member per admitted request,
// scored by server time in milliseconds. Eviction and admission run inside
// one script so concurrent clients cannot overshoot the limit.
const slidingWindowScript = `
local window = tonumber(ARGV[1])
local limit = tonumber(ARGV[2])

local nowData = redis.call("TIME")
local now = (nowData[1] * 1000) + math.floor(nowData[2] / 1000)
local cutoff = now - window

redis.call("ZREMRANGEBYSCORE", KEYS[1], "-inf", cutoff)
local count = redis.call("ZCARD", KEYS[1])

local allowed = 0
if count < limit then
  allowed = 1
  redis.call("ZADD", KEYS[1], now, ARGV[3])
  count = count + 1
end
redis.call("PEXPIRE", KEYS[1], window)

local resetAt = now + window
local oldest = redis.call("ZRANGE", KEYS[1], 0, 0, "WITHSCORES")
if oldest[2] ~= nil then
  resetAt = tonumber(oldest[2]) + window
end

return {allowed, limit - count, resetAt}
`

type SlidingWindow struct {
	client *redis.Client
	script *redis.Script
}

type Result struct {
	Allowed    bool
	Limit      int
	Remaining  int
	RetryAfter time.Duration
}

func NewSlidingWindow(client *redis.Client) *SlidingWindow {
	if client == nil {
		return nil
	}
	return &SlidingWindow{
		client: client,
		script: redis.NewScript(slidingWindowScript),
	}
}

// Allow admits one request against key, permitting at most limit requests
// per window.
func (s *SlidingWindow) Allow(ctx context.Context, key string, limit int, window time.Duration) (*Result, error) {
	if s == nil || s.client == nil {
		return nil, errors.New("rate limiter not configured")
	}
	if key == "" {
		return nil, errors.New("rate limiter key is empty")
	}
	if limit <= 0 {
		return nil, errors.New("rate limiter limit must be positive")
	}
	if window <= 0 {
		return nil, errors.New("rate limiter window must be positive")
	}

	res, err := s.script.Run(
		ctx,
		s.client,
		[]string{key},
		int64(window/time.Millisecond),
		limit,
		uuid.NewString(),
	).Slice()
	if err != nil {
		return nil, err
	}
	if len(res) < 3 {
		return nil, errors.New("invalid rate limit script response")
	}

	allowed := castToInt(res[0]) == 1
	remaining := castToInt(res[1])
	if remaining < 0 {
		remaining = 0
	}

	var retryAfter time.Duration
	if !allowed {
		retryAfter = time.Until(time.UnixMilli(castToInt(res[2])))
		if retryAfter < 0 {
			retryAfter = 0
		}
	}

	return &Result{
		Allowed:    allowed,
		Limit:      limit,
		Remaining:  int(remaining),
		RetryAfter: retryAfter,
	}, nil
}

func castToInt(v interface{}) int64 {
	switch val := v.(type) {
	case int64:
		return val
	case int:
		return int64(val)
	case float64:
		return int64(val)
	default:
		return 0
	}
}
