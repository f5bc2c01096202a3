// Package ratelimit implementa o limite de envios por cliente usando um log
// deslizante de horários.
package ratelimit

import (
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// SlidingLog guarda, por chave, os horários das tentativas aceitas dentro da janela.
// Chaves inativas não são removidas.
type SlidingLog struct {
	mu     sync.Mutex
	max    int
	window time.Duration
	now    func() time.Time
	hits   map[string][]time.Time
}

func NewSlidingLog(max int, window time.Duration, now func() time.Time) *SlidingLog {
	if now == nil {
		now = time.Now
	}
	return &SlidingLog{
		max:    max,
		window: window,
		now:    now,
		hits:   make(map[string][]time.Time),
	}
}

// Allow descarta registros mais velhos que a janela e aceita a tentativa se
// ainda houver espaço. Tentativas recusadas não entram no log.
func (l *SlidingLog) Allow(key string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	recent := l.hits[key][:0]
	for _, t := range l.hits[key] {
		if now.Sub(t) < l.window {
			recent = append(recent, t)
		}
	}

	if len(recent) >= l.max {
		l.hits[key] = recent
		return false
	}

	l.hits[key] = append(recent, now)
	return true
}

// Handler adapta o SlidingLog ao middleware limiter do Fiber.
type Handler struct {
	Now func() time.Time
}

func (h Handler) New(config limiter.Config) fiber.Handler {
	cfg := config
	if cfg.Max <= 0 {
		cfg.Max = 5
	}
	if cfg.Expiration <= 0 {
		cfg.Expiration = time.Minute
	}
	if cfg.KeyGenerator == nil {
		cfg.KeyGenerator = func(c *fiber.Ctx) string { return c.IP() }
	}
	if cfg.LimitReached == nil {
		cfg.LimitReached = func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusTooManyRequests) }
	}

	ledger := NewSlidingLog(cfg.Max, cfg.Expiration, h.Now)

	return func(c *fiber.Ctx) error {
		if cfg.Next != nil && cfg.Next(c) {
			return c.Next()
		}
		if !ledger.Allow(cfg.KeyGenerator(c)) {
			return cfg.LimitReached(c)
		}
		return c.Next()
	}
}
