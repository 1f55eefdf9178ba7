package middleware

import (
	"fmt"
	"strconv"
	"time"

	"client-wallet-service/config"
	redisStore "client-wallet-service/internal/adapter/storage/redis"
	"client-wallet-service/pkg/apperror"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// RateLimitRule defines a rate limit for an endpoint group.
type RateLimitRule struct {
	Limit  int64
	Window time.Duration
}

// RateLimitRules returns the per-group limits from configuration.
func RateLimitRules(cfg config.RateLimitConfig) map[string]RateLimitRule {
	return map[string]RateLimitRule{
		"webhook": {Limit: int64(cfg.WebhookLimit), Window: cfg.WebhookWindow},
		"admin":   {Limit: int64(cfg.AdminLimit), Window: cfg.AdminWindow},
	}
}

// RateLimiter creates a rate-limiting middleware for a given endpoint group.
// Store failures let the request through.
func RateLimiter(store *redisStore.RateLimitStore, group string, rule RateLimitRule, write ErrorWriter, log zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || rule.Limit <= 0 {
			c.Next()
			return
		}

		key := fmt.Sprintf("%s:%s", group, extractIdentifier(c))
		result, err := store.Allow(c.Request.Context(), key, rule.Limit, rule.Window)
		if err != nil {
			log.Warn().Err(err).Str("group", group).Msg("rate limit check failed, allowing request (degraded mode)")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.FormatInt(result.Limit, 10))
		c.Header("X-RateLimit-Remaining", strconv.FormatInt(result.Remaining, 10))
		c.Header("X-RateLimit-Reset", strconv.FormatInt(result.ResetAt, 10))

		if !result.Allowed {
			retryAfter := result.ResetAt - time.Now().Unix()
			if retryAfter < 1 {
				retryAfter = 1
			}
			c.Header("Retry-After", strconv.FormatInt(retryAfter, 10))
			write(c, apperror.ErrRateLimitExceeded())
			c.Abort()
			return
		}

		c.Next()
	}
}

// extractIdentifier keys admin callers by actor and guests by client IP.
func extractIdentifier(c *gin.Context) string {
	if actor := Actor(c); actor != "" {
		return "actor:" + actor
	}
	return "ip:" + c.ClientIP()
}
