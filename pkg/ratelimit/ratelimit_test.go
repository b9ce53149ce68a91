package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDecide(t *testing.T) {
	reset := time.Date(2024, 1, 1, 0, 1, 0, 0, time.UTC)

	d := decide(3, 5, reset)
	assert.True(t, d.Allowed)
	assert.Equal(t, int64(2), d.Remaining)
	assert.Equal(t, reset, d.ResetAt)

	d = decide(5, 5, reset)
	assert.True(t, d.Allowed)
	assert.Zero(t, d.Remaining)

	d = decide(7, 5, reset)
	assert.False(t, d.Allowed)
	assert.Zero(t, d.Remaining)
}

func TestKeyPrefix(t *testing.T) {
	assert.Equal(t, "ratelimit:import:1.2.3.4", NewRedisLimiter(nil, "", time.Minute, 1).key("import:1.2.3.4"))
	assert.Equal(t, "rl:x", NewRedisLimiter(nil, "rl", time.Minute, 1).key("x"))
}
