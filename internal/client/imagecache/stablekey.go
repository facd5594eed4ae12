// Package imagecache caches invoice scans on disk, keyed so that repeated
// signed URLs for the same blob hit the same entry even though the token
// portion of the URL changes on every request.
package imagecache

import (
	"net/url"
	"strings"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
)

// StableKey derives a token-independent cache key from a signed URL: the
// path segment following the "/sign/" marker, with query parameters
// ignored. A URL that does not match the signed shape yields ("", false)
// and callers fall back to default (token-inclusive) keying.
func StableKey(rawURL string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	i := strings.Index(u.Path, common.SignedURLMarker)
	if i < 0 {
		return "", false
	}
	key := u.Path[i+len(common.SignedURLMarker):]
	if key == "" {
		return "", false
	}
	return key, true
}
