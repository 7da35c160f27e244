package site

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/docsite/internal/apidoc"
)

func TestCacheSyncDropsOnDocumentSetChange(t *testing.T) {
	c := NewCache()
	docs := []*apidoc.PackageDocument{{Name: "a", Version: "1"}, {Name: "b", Version: "1"}}

	assert.False(t, c.Sync(docs, ""))
	c.Put(&Rendered{Name: "a", Version: "1", Markdown: "# a"})

	got, ok := c.Get("a", "1")
	require.True(t, ok)
	assert.Equal(t, "# a", got.Markdown)
	_, ok = c.Get("a", "2")
	assert.False(t, ok)

	assert.False(t, c.Sync(docs, ""), "same set keeps entries")
	assert.Equal(t, 1, c.Len())

	bumped := []*apidoc.PackageDocument{{Name: "a", Version: "1"}, {Name: "b", Version: "2"}}
	assert.True(t, c.Sync(bumped, ""))
	assert.Zero(t, c.Len())

	c.Put(&Rendered{Name: "a", Version: "1"})
	assert.True(t, c.Sync(bumped, "https://docs.example.com"), "base URL change drops entries")
}

func TestCacheSyncDropsOnContentChangeWithSameVersion(t *testing.T) {
	c := NewCache()
	docs := []*apidoc.PackageDocument{{Name: "a", Version: "1", Description: "before"}}
	c.Sync(docs, "")
	c.Put(&Rendered{Name: "a", Version: "1"})

	same := []*apidoc.PackageDocument{{Name: "a", Version: "1", Description: "before"}}
	assert.False(t, c.Sync(same, ""), "equal content keeps entries")
	assert.Equal(t, 1, c.Len())

	edited := []*apidoc.PackageDocument{{Name: "a", Version: "1", Description: "after"}}
	assert.True(t, c.Sync(edited, ""))
	_, ok := c.Get("a", "1")
	assert.False(t, ok)
}

func TestRunOrderedKeepsOrderAndBoundsConcurrency(t *testing.T) {
	var inFlight, peak atomic.Int32
	items := []int{1, 2, 3, 4, 5, 6, 7, 8}

	results := runOrdered(context.Background(), items, 3, func(_ context.Context, n int) (int, error) {
		cur := inFlight.Add(1)
		for {
			p := peak.Load()
			if cur <= p || peak.CompareAndSwap(p, cur) {
				break
			}
		}
		defer inFlight.Add(-1)
		return n * n, nil
	})

	require.Len(t, results, len(items))
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, items[i]*items[i], r.Value)
	}
	assert.LessOrEqual(t, peak.Load(), int32(3))
}
