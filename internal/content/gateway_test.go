package content

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestGatewayFetcher(t *testing.T) {
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		switch r.URL.Path {
		case "/ipfs/good-cid":
			w.Write([]byte("Cholesterol: 190 mg/dL"))
		case "/ipfs/slow-cid":
			time.Sleep(200 * time.Millisecond)
			w.Write([]byte("late"))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	f := NewGateway(srv.URL+"/ipfs/", 50*time.Millisecond, nil)

	t.Run("success", func(t *testing.T) {
		text, ok := f.Fetch(context.Background(), "good-cid")
		assert.True(t, ok)
		assert.Equal(t, "Cholesterol: 190 mg/dL", text)
	})

	t.Run("non-200 is unavailable", func(t *testing.T) {
		before := hits.Load()
		text, ok := f.Fetch(context.Background(), "bad-cid")
		assert.False(t, ok)
		assert.Empty(t, text)
		assert.Equal(t, before+1, hits.Load(), "no retry")
	})

	t.Run("timeout is unavailable", func(t *testing.T) {
		_, ok := f.Fetch(context.Background(), "slow-cid")
		assert.False(t, ok)
	})
}

func TestGatewayFetcher_Unreachable(t *testing.T) {
	f := NewGateway("http://127.0.0.1:1", 100*time.Millisecond, nil)
	_, ok := f.Fetch(context.Background(), "any")
	assert.False(t, ok)
}
