package serverutils

import (
	"sync"
	"time"

	"shopping-assistant-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

type rateLimiter struct {
	bucket    map[string]*rate.Limiter
	rate      rate.Limit
	burstSize int
	mutex     sync.Mutex
}

func newRateLimiter(reqRate rate.Limit, burstSize int) *rateLimiter {
	return &rateLimiter{
		bucket:    make(map[string]*rate.Limiter),
		rate:      reqRate,
		burstSize: burstSize,
	}
}

func (r *rateLimiter) limiterFor(ip string) *rate.Limiter {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	if _, exist := r.bucket[ip]; !exist {
		r.bucket[ip] = rate.NewLimiter(r.rate, r.burstSize)
	}

	return r.bucket[ip]
}

// RateLimiter allows perMinute requests per client IP with a burst of the
// same size. perMinute <= 0 disables limiting.
func RateLimiter(perMinute int, log logger.ILogger) fiber.Handler {
	if perMinute <= 0 {
		return func(ctx *fiber.Ctx) error { return ctx.Next() }
	}
	if log == nil {
		log = logger.NewNopLogger()
	}

	limiter := newRateLimiter(rate.Every(time.Minute/time.Duration(perMinute)), perMinute)

	return func(ctx *fiber.Ctx) error {
		clientIP := ctx.IP()
		if !limiter.limiterFor(clientIP).Allow() {
			log.Warn("HTTP", "Too many requests", map[string]interface{}{"ip": clientIP})
			return ctx.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse(fiber.StatusTooManyRequests, "Too many requests"))
		}
		return ctx.Next()
	}
}
