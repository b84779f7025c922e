package middleware

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"

	"github.com/listindia/listindia-api/internal/httperr"
)

// Limit buckets carried over from the original deployment.
var (
	LimitGeneral        = Limit{Scope: "general", Max: 100, Window: 15 * time.Minute}
	LimitAuth           = Limit{Scope: "auth", Max: 5, Window: 15 * time.Minute}
	LimitBusinessCreate = Limit{Scope: "business_create", Max: 3, Window: time.Hour}
	LimitSearch         = Limit{Scope: "search", Max: 30, Window: time.Minute}
)

type Limit struct {
	Scope  string
	Max    int64
	Window time.Duration
}

// RateLimit is a fixed-window counter in Redis, keyed by client IP.
// Redis being down fails open: throttling must never take the API down
// with it.
func RateLimit(rdb *redis.Client, limit Limit, logger zerolog.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		window := time.Now().Unix() / int64(limit.Window.Seconds())
		key := fmt.Sprintf("rl:%s:%s:%d", limit.Scope, c.ClientIP(), window)

		pipe := rdb.TxPipeline()
		incr := pipe.Incr(c.Request.Context(), key)
		pipe.Expire(c.Request.Context(), key, limit.Window)

		if _, err := pipe.Exec(c.Request.Context()); err != nil {
			logger.Warn().Err(err).Str("scope", limit.Scope).Msg("rate limiter unavailable")
			c.Next()
			return
		}

		if incr.Val() > limit.Max {
			httperr.TooManyRequests(c, "too_many_requests",
				"too many requests from this IP, please try again later")
			c.Abort()
			return
		}

		c.Next()
	}
}
