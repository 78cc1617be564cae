package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLimiter_AllowsUpToLimit(t *testing.T) {
	l := New(Config{Limit: 3, Interval: time.Hour, MaxClients: 10})

	for i := 0; i < 3; i++ {
		assert.True(t, l.Allow("10.0.0.1"), "request %d must pass", i+1)
	}
	assert.False(t, l.Allow("10.0.0.1"))

	// Другой клиент считается отдельно
	assert.True(t, l.Allow("10.0.0.2"))
}

func TestLimiter_BoundedCapacity(t *testing.T) {
	l := New(Config{Limit: 1, Interval: time.Hour, MaxClients: 2})

	assert.True(t, l.Allow("a"))
	assert.True(t, l.Allow("b"))
	assert.True(t, l.Allow("c"))

	assert.Equal(t, 2, l.Len())

	// "a" вытеснен самым давним, поэтому получает новый лимит
	assert.True(t, l.Allow("a"))
}

func TestLimiter_EntryExpires(t *testing.T) {
	l := New(Config{Limit: 1, Interval: 50 * time.Millisecond, MaxClients: 10})

	assert.True(t, l.Allow("client"))
	assert.False(t, l.Allow("client"))

	time.Sleep(80 * time.Millisecond)

	assert.True(t, l.Allow("client"))
}

func TestNew_Defaults(t *testing.T) {
	l := New(Config{})
	for i := 0; i < DefaultLimit; i++ {
		assert.True(t, l.Allow("x"))
	}
	assert.False(t, l.Allow("x"))
}
