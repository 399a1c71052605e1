package convcache_test

import (
	"testing"

	"github.com/AdguardTeam/safariconverter/internal/convcache"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLRU(t *testing.T) {
	t.Parallel()

	c := convcache.NewLRU[string, int](&convcache.LRUConfig{Size: 2})

	_, ok := c.Get("a")
	assert.False(t, ok)

	c.Set("a", 1)
	c.Set("b", 2)

	v, ok := c.Get("a")
	require.True(t, ok)

	assert.Equal(t, 1, v)
	assert.Equal(t, 2, c.Len())

	// Exceeding the size evicts the least recently used entry.
	c.Set("c", 3)

	_, ok = c.Get("b")
	assert.False(t, ok)

	assert.Equal(t, 2, c.Len())

	c.Clear()

	assert.Equal(t, 0, c.Len())
}

func TestEmpty(t *testing.T) {
	t.Parallel()

	c := convcache.Empty[string, int]{}

	c.Set("a", 1)

	_, ok := c.Get("a")
	assert.False(t, ok)
	assert.Equal(t, 0, c.Len())
}
