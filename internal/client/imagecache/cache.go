package imagecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// Cache is a small content-addressed disk cache for invoice scans. Entries
// are keyed by the stable blob path when the URL has the signed shape, and
// by the full URL otherwise.
type Cache struct {
	dir   string
	httpc *http.Client

	mu sync.Mutex
}

// New creates the cache directory if needed.
func New(dir string) (*Cache, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	return &Cache{
		dir:   dir,
		httpc: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

// Fetch returns the bytes behind signedURL, downloading at most once per
// stable key. Two URLs for the same blob with different tokens resolve to
// the same entry.
func (c *Cache) Fetch(ctx context.Context, signedURL string) ([]byte, error) {
	key, ok := StableKey(signedURL)
	if !ok {
		key = signedURL
	}
	file := filepath.Join(c.dir, fileName(key))

	c.mu.Lock()
	defer c.mu.Unlock()

	if data, err := os.ReadFile(file); err == nil {
		return data, nil
	}

	data, err := c.download(ctx, signedURL)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(file, data, 0o600); err != nil {
		return nil, fmt.Errorf("writing cache entry: %w", err)
	}
	return data, nil
}

func (c *Cache) download(ctx context.Context, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("downloading scan: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("downloading scan: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}

// fileName flattens a key into a safe file name.
func fileName(key string) string {
	sum := sha256.Sum256([]byte(key))
	return hex.EncodeToString(sum[:])
}
