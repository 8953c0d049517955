package handler

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"
)

// RateLimitState — in-memory rate limiter по IP (token bucket на каждый адрес).
type RateLimitState struct {
	mu      sync.Mutex
	perIP   map[string]*ipLimiter
	limit   rate.Limit
	burst   int
	idleTTL time.Duration
	nowFunc func() time.Time
}

type ipLimiter struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// NewRateLimitState создаёт лимитер: rps запросов в секунду с запасом burst.
func NewRateLimitState(rps float64, burst int) *RateLimitState {
	if burst < 1 {
		burst = 1
	}
	return &RateLimitState{
		perIP:   make(map[string]*ipLimiter),
		limit:   rate.Limit(rps),
		burst:   burst,
		idleTTL: time.Minute,
		nowFunc: time.Now,
	}
}

// RunCleanup удаляет давно неактивные IP, пока не отменён ctx.
func (s *RateLimitState) RunCleanup(ctx context.Context) {
	ticker := time.NewTicker(s.idleTTL)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *RateLimitState) evictIdle() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFunc()
	for ip, l := range s.perIP {
		if now.Sub(l.lastSeen) > s.idleTTL {
			delete(s.perIP, ip)
		}
	}
}

// Allow возвращает true, если запрос разрешён, false если лимит превышен.
func (s *RateLimitState) Allow(ip string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.nowFunc()
	l, ok := s.perIP[ip]
	if !ok {
		l = &ipLimiter{limiter: rate.NewLimiter(s.limit, s.burst)}
		s.perIP[ip] = l
	}
	l.lastSeen = now
	return l.limiter.AllowN(now, 1)
}

// RateLimit — gin middleware поверх RateLimitState. Адрес клиента берётся из
// c.ClientIP(): X-Forwarded-For учитывается только от доверенных прокси движка.
func RateLimit(limiter *RateLimitState) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !limiter.Allow(c.ClientIP()) {
			c.Header("Retry-After", "1")
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "rate limit exceeded", "message": "too many requests",
			})
			return
		}
		c.Next()
	}
}
