package models

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContentCache_PutGet(t *testing.T) {
	c := NewContentCache(10)
	c.Put("yt:abc", "green")

	cat, ok := c.Get("yt:abc")
	require.True(t, ok)
	assert.Equal(t, "green", cat)

	_, ok = c.Get("yt:missing")
	assert.False(t, ok)
}

func TestContentCache_UpdateDoesNotGrow(t *testing.T) {
	c := NewContentCache(10)
	c.Put("k", "red")
	c.Put("k", "green")

	assert.Equal(t, 1, c.Len())
	cat, _ := c.Get("k")
	assert.Equal(t, "green", cat)
}

func TestContentCache_EvictsOldestAtCapacity(t *testing.T) {
	c := NewContentCache(3)
	c.Put("a", "red")
	c.Put("b", "green")
	c.Put("c", "yellow")
	c.Put("d", "red")

	assert.Equal(t, 3, c.Len())
	_, ok := c.Get("a")
	assert.False(t, ok)
	_, ok = c.Get("d")
	assert.True(t, ok)
}

func TestContentCache_DefaultCapacityBound(t *testing.T) {
	c := NewContentCache(0)
	for i := 0; i < DefaultContentCacheCapacity+1; i++ {
		c.Put(fmt.Sprintf("url:page-%d", i), "red")
	}
	assert.Equal(t, DefaultContentCacheCapacity, c.Len())
}

func TestContentCache_SnapshotRestore(t *testing.T) {
	c := NewContentCache(10)
	c.Put("a", "red")
	c.Put("b", "green")

	snap := c.Snapshot()
	require.Len(t, snap, 2)
	assert.Equal(t, ContentEntry{Key: "a", Category: "red"}, snap[0])
	assert.Equal(t, ContentEntry{Key: "b", Category: "green"}, snap[1])

	c2 := NewContentCache(10)
	c2.Restore(snap)
	cat, ok := c2.Get("b")
	require.True(t, ok)
	assert.Equal(t, "green", cat)
	assert.Equal(t, 2, c2.Len())
}

func TestContentCache_RestoreReappliesBound(t *testing.T) {
	entries := make([]ContentEntry, 5)
	for i := range entries {
		entries[i] = ContentEntry{Key: fmt.Sprintf("k%d", i), Category: "red"}
	}

	c := NewContentCache(3)
	c.Restore(entries)
	assert.Equal(t, 3, c.Len())

	_, ok := c.Get("k0")
	assert.False(t, ok)
	_, ok = c.Get("k4")
	assert.True(t, ok)
}
