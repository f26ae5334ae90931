package cache

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New(time.Minute, time.Minute, 10)

	c.Set("a", 1)
	v, ok := c.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCacheExpiration(t *testing.T) {
	c := New(time.Minute, time.Minute, 10)

	c.SetWithExpiration("short", "v", 10*time.Millisecond)
	time.Sleep(30 * time.Millisecond)

	_, ok := c.Get("short")
	assert.False(t, ok)
}

func TestCacheEviction(t *testing.T) {
	c := New(time.Minute, time.Minute, 2)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Set("c", 3)

	assert.LessOrEqual(t, c.Count(), 2)
	_, ok := c.Get("c")
	assert.True(t, ok, "newest entry survives eviction")
}

func TestCacheDelete(t *testing.T) {
	c := New(time.Minute, time.Minute, 10)

	c.Set("a", 1)
	c.Delete("a")

	_, ok := c.Get("a")
	assert.False(t, ok)
}
