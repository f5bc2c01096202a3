package ratelimit

import (
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type manualClock struct {
	mu sync.Mutex
	t  time.Time
}

func (m *manualClock) Now() time.Time {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.t
}

func (m *manualClock) Advance(d time.Duration) {
	m.mu.Lock()
	m.t = m.t.Add(d)
	m.mu.Unlock()
}

func TestSlidingLog_FiveThenRejectThenRecover(t *testing.T) {
	clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
	l := NewSlidingLog(5, time.Minute, clock.Now)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow("1.2.3.4"), "attempt %d", i+1)
		clock.Advance(time.Second)
	}
	assert.False(t, l.Allow("1.2.3.4"))

	// rejected attempts are not recorded, so the first hit leaves the window at +60s
	clock.Advance(55 * time.Second)
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
}

func TestSlidingLog_KeysAreIndependent(t *testing.T) {
	l := NewSlidingLog(1, time.Minute, nil)

	assert.True(t, l.Allow("a"))
	assert.False(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
}

func TestSlidingLog_ExactWindowBoundaryExpires(t *testing.T) {
	clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
	l := NewSlidingLog(1, time.Minute, clock.Now)

	require.True(t, l.Allow("k"))
	clock.Advance(time.Minute - time.Nanosecond)
	assert.False(t, l.Allow("k"))
	clock.Advance(time.Nanosecond)
	assert.True(t, l.Allow("k"))
}

func TestSlidingLog_Concurrent(t *testing.T) {
	l := NewSlidingLog(5, time.Minute, nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		allowed int
	)
	for i := 0; i < 40; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if l.Allow("same") {
				mu.Lock()
				allowed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 5, allowed)
}

func TestHandler_SharedAcrossRoutes(t *testing.T) {
	clock := &manualClock{t: time.Unix(1_700_000_000, 0)}
	mw := limiter.New(limiter.Config{
		Max:               2,
		Expiration:        time.Minute,
		LimiterMiddleware: Handler{Now: clock.Now},
		LimitReached: func(c *fiber.Ctx) error {
			return c.SendStatus(fiber.StatusTooManyRequests)
		},
	})

	app := fiber.New()
	ok := func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusCreated) }
	app.Post("/a", mw, ok)
	app.Post("/b", mw, ok)

	status := func(path string) int {
		resp, err := app.Test(httptest.NewRequest("POST", path, nil), -1)
		require.NoError(t, err)
		return resp.StatusCode
	}

	assert.Equal(t, fiber.StatusCreated, status("/a"))
	assert.Equal(t, fiber.StatusCreated, status("/b"))
	assert.Equal(t, fiber.StatusTooManyRequests, status("/a"))
	assert.Equal(t, fiber.StatusTooManyRequests, status("/b"))

	clock.Advance(time.Minute)
	assert.Equal(t, fiber.StatusCreated, status("/b"))
}
