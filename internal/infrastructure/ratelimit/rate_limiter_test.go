package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRateLimiterBurstThenRefill(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		ok, _ := rl.Allow("1.2.3.4")
		assert.True(t, ok, "request %d", i)
	}

	ok, wait := rl.Allow("1.2.3.4")
	assert.False(t, ok)
	assert.InDelta(t, 12*time.Second, wait, float64(time.Second))

	// Other keys have their own bucket.
	ok, _ = rl.Allow("5.6.7.8")
	assert.True(t, ok)

	now = now.Add(12 * time.Second)
	ok, _ = rl.Allow("1.2.3.4")
	assert.True(t, ok)
}

func TestRateLimiterCleanup(t *testing.T) {
	now := time.Date(2026, 10, 18, 12, 0, 0, 0, time.UTC)
	rl := NewRateLimiter(5, time.Minute)
	rl.now = func() time.Time { return now }

	rl.Allow("old")
	now = now.Add(3 * time.Hour)
	rl.Allow("fresh")

	rl.Cleanup(2 * time.Hour)
	assert.Equal(t, 1, rl.Size())
}
