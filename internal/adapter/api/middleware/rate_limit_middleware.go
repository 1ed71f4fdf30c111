package middleware

import (
	"math"
	"strconv"

	"github.com/labstack/echo/v4"

	"gretastore/internal/infrastructure/ratelimit"
	"gretastore/pkg/errors"
	"gretastore/pkg/logger"
	"gretastore/pkg/response"
)

// RateLimit limits each client IP per route.
func RateLimit(limiter *ratelimit.RateLimiter) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ip := c.RealIP()

			allowed, wait := limiter.Allow(ip + " " + c.Path())
			if !allowed {
				logger.Warn("RATE LIMIT: Blocked %s %s from %s (retry in %v)", c.Request().Method, c.Path(), ip, wait)
				retry := int(math.Ceil(wait.Seconds()))
				if retry < 1 {
					retry = 1
				}
				c.Response().Header().Set("Retry-After", strconv.Itoa(retry))
				return response.Error(c, errors.TooManyRequests("Rate limit exceeded"))
			}

			return next(c)
		}
	}
}
