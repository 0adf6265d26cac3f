package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func newTestLimiter(limit int, window time.Duration) *Limiter {
	return NewLimiter(&Config{
		Enabled: true,
		Limit:   limit,
		Window:  window,
		// No cleanup goroutine in unit tests.
	})
}

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := newTestLimiter(3, time.Hour)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"), "fourth request within the window should be rejected")
}

func TestLimiter_SeparateClients(t *testing.T) {
	l := newTestLimiter(1, time.Hour)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("5.6.7.8"), "another client has its own bucket")
}

func TestLimiter_Refills(t *testing.T) {
	l := newTestLimiter(2, 100*time.Millisecond)

	assert.True(t, l.Allow("1.2.3.4"))
	assert.True(t, l.Allow("1.2.3.4"))
	assert.False(t, l.Allow("1.2.3.4"))

	time.Sleep(120 * time.Millisecond)
	assert.True(t, l.Allow("1.2.3.4"), "tokens should refill after the window")
}

func TestLimiter_Disabled(t *testing.T) {
	l := NewLimiter(&Config{Enabled: false})

	for i := 0; i < 100; i++ {
		assert.True(t, l.Allow("1.2.3.4"))
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("AUTH_RATE_LIMIT_ENABLED", "")
	t.Setenv("AUTH_RATE_LIMIT", "")
	t.Setenv("AUTH_RATE_WINDOW", "")

	cfg := LoadConfig()

	assert.True(t, cfg.Enabled)
	assert.Equal(t, 10, cfg.Limit)
	assert.Equal(t, 15*time.Minute, cfg.Window)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("AUTH_RATE_LIMIT_ENABLED", "false")
	t.Setenv("AUTH_RATE_LIMIT", "100")
	t.Setenv("AUTH_RATE_WINDOW", "1m")

	cfg := LoadConfig()

	assert.False(t, cfg.Enabled)
	assert.Equal(t, 100, cfg.Limit)
	assert.Equal(t, time.Minute, cfg.Window)
}
