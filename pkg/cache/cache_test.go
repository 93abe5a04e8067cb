package cache

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SetGet(t *testing.T) {
	c := New("test", 10)

	require.NoError(t, c.Set("a", "value-a", 1))

	value, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, "value-a", value)

	_, ok = c.Get("missing")
	assert.False(t, ok)
}

func TestCache_Replace(t *testing.T) {
	c := New("test", 10)

	require.NoError(t, c.Set("a", 1, 3))
	require.NoError(t, c.Set("a", 2, 5))

	value, ok := c.Get("a")
	require.True(t, ok)
	assert.Equal(t, 2, value)
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 5, c.Weight())
}

func TestCache_EvictsLeastRecentlyUsed(t *testing.T) {
	c := New("test", 3)

	require.NoError(t, c.Set("a", 1, 1))
	require.NoError(t, c.Set("b", 2, 1))
	require.NoError(t, c.Set("c", 3, 1))

	// Touch a so that b becomes the coldest entry.
	_, ok := c.Get("a")
	require.True(t, ok)

	require.NoError(t, c.Set("d", 4, 1))

	_, ok = c.Get("b")
	assert.False(t, ok)
	for _, key := range []string{"a", "c", "d"} {
		_, ok := c.Get(key)
		assert.True(t, ok, key)
	}
	assert.Equal(t, 3, c.Weight())
}

func TestCache_EvictsUntilWithinBudget(t *testing.T) {
	c := New("test", 4)

	require.NoError(t, c.Set("a", 1, 1))
	require.NoError(t, c.Set("b", 2, 1))
	require.NoError(t, c.Set("c", 3, 1))
	require.NoError(t, c.Set("heavy", 4, 3))

	assert.Equal(t, 2, c.Len())
	assert.Equal(t, 4, c.Weight())

	_, ok := c.Get("c")
	assert.True(t, ok)
	_, ok = c.Get("heavy")
	assert.True(t, ok)
}

func TestCache_OverBudget(t *testing.T) {
	c := New("test", 2)
	assert.Equal(t, ErrOverBudget, c.Set("a", 1, 3))
	assert.Equal(t, 0, c.Len())
}

func TestCache_DeleteAndPurge(t *testing.T) {
	c := New("test", 10)

	require.NoError(t, c.Set("a", 1, 2))
	require.NoError(t, c.Set("b", 2, 2))

	c.Delete("a")
	c.Delete("missing")
	assert.Equal(t, 1, c.Len())
	assert.Equal(t, 2, c.Weight())

	c.Purge()
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Weight())
	assert.Equal(t, 10, c.Budget())

	require.NoError(t, c.Set("c", 3, 1))
	value, ok := c.Get("c")
	require.True(t, ok)
	assert.Equal(t, 3, value)
}

func TestCache_Concurrent(t *testing.T) {
	c := New("test", 50)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(worker int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				key := fmt.Sprintf("%d-%d", worker, j%20)
				_ = c.Set(key, j, 1)
				c.Get(key)
			}
		}(i)
	}
	wg.Wait()

	assert.LessOrEqual(t, c.Weight(), c.Budget())
	assert.Equal(t, c.Weight(), c.Len())
}
