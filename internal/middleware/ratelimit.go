// File: internal/middleware/ratelimit.go
package middleware

import (
	"fmt"
	"math"
	"net/http"
	"time"

	"mamacare/internal/api"
	"mamacare/internal/cache"

	"github.com/labstack/echo/v4"
)

// RateLimit 以 Redis 固定視窗計數器限制單一來源 IP 的請求數。
// 視窗內首個請求設定過期時間，超過上限回 429 並附 retryAfter（分鐘），
// Retry-After 標頭以計數器剩餘 TTL 計算（秒）。
// Redis 故障時放行（可用性優先於限流）。
func RateLimit(rdb cache.Cache, scope string, max int, window time.Duration) echo.MiddlewareFunc {
	retryAfter := int(math.Ceil(window.Minutes()))
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx := c.Request().Context()
			key := fmt.Sprintf("ratelimit:%s:%s", scope, c.RealIP())

			n, err := rdb.Incr(ctx, key).Result()
			if err != nil {
				return next(c)
			}
			if n == 1 {
				rdb.Expire(ctx, key, window)
			}
			if n > int64(max) {
				remaining := window
				if ttl, err := rdb.TTL(ctx, key).Result(); err == nil && ttl > 0 {
					remaining = ttl
				}
				c.Response().Header().Set("Retry-After", fmt.Sprint(int(math.Ceil(remaining.Seconds()))))
				return c.JSON(http.StatusTooManyRequests, api.ErrorResponse{
					Success:    false,
					Error:      "Too many requests from this IP, please try again later.",
					RetryAfter: retryAfter,
				})
			}
			return next(c)
		}
	}
}
