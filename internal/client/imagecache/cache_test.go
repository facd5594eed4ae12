package imagecache

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetch_DownloadsOncePerStableKey(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte("scan-bytes"))
	}))
	defer srv.Close()

	c, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	urlA := srv.URL + "/storage/v1/object/sign/invoice-scans/u1/abc.jpg?token=AAA"
	urlB := srv.URL + "/storage/v1/object/sign/invoice-scans/u1/abc.jpg?token=BBB"

	data, err := c.Fetch(ctx, urlA)
	require.NoError(t, err)
	assert.Equal(t, []byte("scan-bytes"), data)

	// a fresh signed URL for the same blob must hit the cache
	data, err = c.Fetch(ctx, urlB)
	require.NoError(t, err)
	assert.Equal(t, []byte("scan-bytes"), data)

	assert.Equal(t, int64(1), hits.Load())
}

func TestFetch_NonSignedURLKeyedByFullURL(t *testing.T) {
	var hits atomic.Int64
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits.Add(1)
		_, _ = w.Write([]byte(r.URL.RawQuery))
	}))
	defer srv.Close()

	c, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	a, err := c.Fetch(ctx, srv.URL+"/plain/abc.jpg?v=1")
	require.NoError(t, err)
	b, err := c.Fetch(ctx, srv.URL+"/plain/abc.jpg?v=2")
	require.NoError(t, err)

	// different full URLs are distinct entries
	assert.Equal(t, []byte("v=1"), a)
	assert.Equal(t, []byte("v=2"), b)
	assert.Equal(t, int64(2), hits.Load())
}

func TestFetch_ErrorStatusIsNotCached(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		_, _ = w.Write([]byte("ok"))
	}))
	defer srv.Close()

	c, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()
	url := srv.URL + "/storage/v1/object/sign/x.jpg?token=T"

	_, err = c.Fetch(ctx, url)
	require.Error(t, err)

	fail.Store(false)
	data, err := c.Fetch(ctx, url)
	require.NoError(t, err)
	assert.Equal(t, []byte("ok"), data)
}
