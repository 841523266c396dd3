package middleware

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// RateLimitConfig defines configuration for rate limiting
type RateLimitConfig struct {
	// Window is the time window for rate limiting
	Window time.Duration
	// Limit is the maximum number of requests allowed in the window
	Limit int
	// Key prefix for Redis keys
	KeyPrefix string
}

// RateLimiter counts requests per key in fixed windows stored in Redis.
// Without Redis it falls back to an in-process token bucket per key that
// refills Limit tokens per Window. Buckets that have refilled completely are
// swept once per Window, so the map only holds keys seen recently.
type RateLimiter struct {
	redis  *redis.Client
	config RateLimitConfig
	logger *zap.Logger
	now    func() time.Time

	mu        sync.Mutex
	local     map[string]*rate.Limiter
	lastSweep time.Time
}

// NewRateLimiter creates a new rate limiter instance. redisClient may be nil.
func NewRateLimiter(redisClient *redis.Client, config RateLimitConfig, logger *zap.Logger) *RateLimiter {
	return &RateLimiter{
		redis:  redisClient,
		config: config,
		logger: logger,
		now:    time.Now,
		local:  make(map[string]*rate.Limiter),
	}
}

// NewRecipeCreationRateLimiter limits recipe creation per user.
func NewRecipeCreationRateLimiter(redisClient *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_creation",
	}, logger)
}

// NewRecipeModificationRateLimiter limits changes to one recipe per user.
func NewRecipeModificationRateLimiter(redisClient *redis.Client, limit int, window time.Duration, logger *zap.Logger) *RateLimiter {
	return NewRateLimiter(redisClient, RateLimitConfig{
		Window:    window,
		Limit:     limit,
		KeyPrefix: "rate_limit:recipe_modification",
	}, logger)
}

// IsAllowed checks if a request for the given key is allowed
// Returns: allowed, remaining requests, reset time, error
func (rl *RateLimiter) IsAllowed(ctx context.Context, key string) (bool, int, time.Time, error) {
	if rl.redis == nil {
		allowed, remaining, reset := rl.allowLocal(key)
		return allowed, remaining, reset, nil
	}

	now := rl.now()
	windowStart := now.Truncate(rl.config.Window)
	redisKey := fmt.Sprintf("%s:%s:%d", rl.config.KeyPrefix, key, windowStart.Unix())

	// Use Redis pipeline for atomic operations
	pipe := rl.redis.Pipeline()
	incrCmd := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, rl.config.Window)

	if _, err := pipe.Exec(ctx); err != nil {
		return false, 0, time.Time{}, err
	}

	count := int(incrCmd.Val())
	remaining := rl.config.Limit - count
	if remaining < 0 {
		remaining = 0
	}

	resetTime := windowStart.Add(rl.config.Window)
	return count <= rl.config.Limit, remaining, resetTime, nil
}

func (rl *RateLimiter) allowLocal(key string) (bool, int, time.Time) {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	if now.Sub(rl.lastSweep) >= rl.config.Window {
		rl.sweep(now)
	}

	limiter, ok := rl.local[key]
	if !ok {
		every := rate.Inf
		if rl.config.Limit > 0 {
			every = rate.Every(rl.config.Window / time.Duration(rl.config.Limit))
		}
		limiter = rate.NewLimiter(every, rl.config.Limit)
		rl.local[key] = limiter
	}

	allowed := limiter.AllowN(now, 1)
	remaining := int(limiter.TokensAt(now))
	if remaining < 0 {
		remaining = 0
	}

	reset := now
	if missing := float64(rl.config.Limit) - limiter.TokensAt(now); missing > 0 && limiter.Limit() > 0 {
		reset = now.Add(time.Duration(missing / float64(limiter.Limit()) * float64(time.Second)))
	}
	return allowed, remaining, reset
}

// sweep drops full buckets. A full bucket behaves exactly like the fresh one
// allowLocal would create for the key. Callers hold rl.mu.
func (rl *RateLimiter) sweep(now time.Time) {
	for key, limiter := range rl.local {
		if limiter.TokensAt(now) >= float64(limiter.Burst()) {
			delete(rl.local, key)
		}
	}
	rl.lastSweep = now
}

// callerKey is the identified user or, for anonymous callers, the client IP.
func callerKey(c *gin.Context) string {
	if id, ok := c.Get(ContextUserID); ok {
		return fmt.Sprintf("%v", id)
	}
	return "ip:" + c.ClientIP()
}

// RateLimitMiddleware limits requests per caller.
func (rl *RateLimiter) RateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.enforce(c, callerKey(c), fmt.Sprintf("You have exceeded the rate limit of %d requests per %v", rl.config.Limit, rl.config.Window))
	}
}

// PerRecipeRateLimitMiddleware limits requests per caller and recipe id.
func (rl *RateLimiter) PerRecipeRateLimitMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		recipeID := c.Param("id")
		if recipeID == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"message": "recipe ID is required"})
			return
		}
		key := fmt.Sprintf("%s:%s", callerKey(c), recipeID)
		rl.enforce(c, key, fmt.Sprintf("You have exceeded the rate limit of %d modifications per recipe per %v", rl.config.Limit, rl.config.Window))
	}
}

func (rl *RateLimiter) enforce(c *gin.Context, key, message string) {
	allowed, remaining, resetTime, err := rl.IsAllowed(c.Request.Context(), key)
	if err != nil {
		// Log error but don't fail the request
		rl.logger.Warn("rate limit check failed", zap.String("key", key), zap.Error(err))
		c.Header("X-RateLimit-Error", "rate limit check failed")
		c.Next()
		return
	}

	c.Header("X-RateLimit-Limit", strconv.Itoa(rl.config.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(resetTime.Unix(), 10))

	if !allowed {
		rateLimitRejects.WithLabelValues(rl.config.KeyPrefix).Inc()
		retryAfter := int(resetTime.Sub(rl.now()).Seconds())
		if retryAfter < 1 {
			retryAfter = 1
		}
		c.Header("Retry-After", strconv.Itoa(retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":                "rate limit exceeded",
			"message":              message,
			"rate_limit_remaining": remaining,
			"rate_limit_reset":     resetTime.Unix(),
			"retry_after":          retryAfter,
		})
		return
	}

	c.Next()
}
