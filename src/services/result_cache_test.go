package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/username/bigmacindex/src/models"
	"github.com/username/bigmacindex/src/store"
)

// pausingStore holds the first DistinctNames call after it has read its rows
// until release is closed.
type pausingStore struct {
	store.RecordStore
	once    sync.Once
	loaded  chan struct{}
	release chan struct{}
}

func (p *pausingStore) DistinctNames(ctx context.Context) ([]string, error) {
	names, err := p.RecordStore.DistinctNames(ctx)
	p.once.Do(func() {
		close(p.loaded)
		<-p.release
	})
	return names, err
}

func TestReadOverlappingWriteIsNotCached(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t, row("Japan", "2024-01-01", f(450), nil, nil))
	paused := &pausingStore{RecordStore: st, loaded: make(chan struct{}), release: make(chan struct{})}

	resultCache := NewResultCache(time.Minute)
	q := NewQueryService(paused, resultCache)
	w := NewWriteService(st, resultCache, fixedClock("2025-01-01"))

	type result struct {
		names []string
		err   error
	}
	inFlight := make(chan result, 1)
	go func() {
		names, err := q.ListDistinctNames(ctx)
		inFlight <- result{names, err}
	}()

	<-paused.loaded
	_, err := st.InsertRecords(ctx, []models.Record{row("Brazil", "2024-01-01", f(22), nil, nil)})
	require.NoError(t, err)
	_, err = w.InsertRecord(ctx, "2025-01-01", f(1))
	require.NoError(t, err)
	close(paused.release)

	stale := <-inFlight
	require.NoError(t, stale.err)
	assert.Equal(t, []string{"Japan"}, stale.names)

	_, found := resultCache.get(ckNames)
	assert.False(t, found, "a result loaded before the write must not survive the flush")

	names, err := q.ListDistinctNames(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Brazil", "Japan"}, names)
}

func TestResultCache_StoreAfterInvalidateIsDropped(t *testing.T) {
	c := NewResultCache(time.Minute)

	gen := c.currentGeneration()
	assert.True(t, c.storeIfCurrent("k", 1, gen))
	v, found := c.get("k")
	require.True(t, found)
	assert.Equal(t, 1, v)

	gen = c.currentGeneration()
	c.Invalidate()
	assert.False(t, c.storeIfCurrent("k", 2, gen))
	_, found = c.get("k")
	assert.False(t, found)

	var none *ResultCache
	none.Invalidate()
	assert.False(t, none.storeIfCurrent("k", 1, none.currentGeneration()))
}
