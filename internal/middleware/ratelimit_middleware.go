package middleware

import (
	"context"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/milkfamily/trace_api/internal/utils"
)

// windowCounter is the slice of the Redis wrapper the limiter needs.
type windowCounter interface {
	IncrWithTTL(ctx context.Context, key string, ttl time.Duration) (int64, error)
}

// RateLimiter bounds requests per client IP over a fixed one-minute window.
// The counter lives in Redis so every replica shares the same window. Applied
// to the public write endpoints only; catalog reads stay unthrottled.
type RateLimiter struct {
	counter windowCounter
	limit   int64
}

// NewRateLimiter constructs a RateLimiter allowing limit requests per minute.
func NewRateLimiter(counter windowCounter, limit int) *RateLimiter {
	return &RateLimiter{counter: counter, limit: int64(limit)}
}

// Handle returns the gin middleware. The limiter fails open: if Redis is
// unreachable the request goes through, throttling is protection, not a
// dependency.
func (r *RateLimiter) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := fmt.Sprintf("ratelimit:%s:%s", c.Request.URL.Path, c.ClientIP())

		n, err := r.counter.IncrWithTTL(c.Request.Context(), key, time.Minute)
		if err != nil {
			log.Warn().Err(err).Msg("Rate limiter unavailable, allowing request")
			c.Next()
			return
		}

		if n > r.limit {
			utils.Fail(c, 429, "Quá nhiều yêu cầu, vui lòng thử lại sau.")
			c.Abort()
			return
		}

		c.Next()
	}
}
