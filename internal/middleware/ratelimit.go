package middleware

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/SscSPs/notes_app/internal/dto"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/ulule/limiter/v3"
	sredis "github.com/ulule/limiter/v3/drivers/store/redis"
	"github.com/ulule/limiter/v3/drivers/store/memory"
)

// NewLimiter builds a limiter from a formatted rate such as "5-M". Counters live in Redis when a
// client is given so that every replica shares them, otherwise in process memory.
func NewLimiter(formattedRate, prefix string, redisClient *redis.Client) (*limiter.Limiter, error) {
	rate, err := limiter.NewRateFromFormatted(formattedRate)
	if err != nil {
		return nil, fmt.Errorf("invalid rate %q: %w", formattedRate, err)
	}

	if redisClient == nil {
		return limiter.New(memory.NewStoreWithOptions(limiter.StoreOptions{Prefix: prefix}), rate), nil
	}

	store, err := sredis.NewStoreWithOptions(redisClient, limiter.StoreOptions{Prefix: prefix})
	if err != nil {
		return nil, fmt.Errorf("failed to create redis limiter store: %w", err)
	}
	return limiter.New(store, rate), nil
}

// RateLimit creates a Gin middleware for rate limiting requests by client IP.
func RateLimit(limiterInstance *limiter.Limiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := c.ClientIP()
		logger := GetLoggerFromCtx(c.Request.Context())

		context, err := limiterInstance.Get(c.Request.Context(), ip)
		if err != nil {
			logger.Error("Failed to get rate limit context", slog.String("ip", ip), slog.String("error", err.Error()))
			c.AbortWithStatusJSON(http.StatusInternalServerError,
				dto.NewErrorResponse(http.StatusInternalServerError, "Internal server error during rate limit check", c.Request.URL.Path))
			return
		}

		c.Header("X-RateLimit-Limit", fmt.Sprint(context.Limit))
		c.Header("X-RateLimit-Remaining", fmt.Sprint(context.Remaining))

		if context.Reached {
			logger.Warn("Rate limit exceeded", slog.String("ip", ip), slog.Int64("limit", context.Limit))
			c.AbortWithStatusJSON(http.StatusTooManyRequests,
				dto.NewErrorResponse(http.StatusTooManyRequests, "Too many requests. Please try again later.", c.Request.URL.Path))
			return
		}

		c.Next()
	}
}
