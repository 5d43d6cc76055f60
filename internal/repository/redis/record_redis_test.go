package redis

import (
	"context"
	"os"
	"strings"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// These tests need a live server: REDIS_URL=redis://localhost:6379/15
func newTestStore(t *testing.T) *RecordRedis {
	t.Helper()
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	client, err := Connect(context.Background(), url)
	require.NoError(t, err)

	prefix := "test:" + uuid.NewString() + ":"
	t.Cleanup(func() {
		ctx := context.Background()
		keys, _ := client.Keys(ctx, prefix+"*").Result()
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		_ = client.Close()
	})
	return NewRecordRedis(client, prefix, 0)
}

func TestRecordRedis_PutGetDelete(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Put(ctx, "p1", "hello"))
	got, ok, err := s.Get(ctx, "p1")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "hello", got)

	n, err := s.Len(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	require.NoError(t, s.Delete(ctx, "p1"))
	_, ok, _ = s.Get(ctx, "p1")
	assert.False(t, ok)
}

func TestRecordRedis_ConcurrentUpdates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := s.Update(ctx, "p", func(cur string, _ bool) (string, error) {
				return cur + "x", nil
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	got, _, err := s.Get(ctx, "p")
	require.NoError(t, err)
	assert.Equal(t, strings.Repeat("x", 5), got)
}

func TestConnect_InvalidURL(t *testing.T) {
	_, err := Connect(context.Background(), "://bad")
	assert.Error(t, err)
}
