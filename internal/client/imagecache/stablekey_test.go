package imagecache

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStableKey_SameBlobDifferentTokens(t *testing.T) {
	a, ok := StableKey("https://api.example.com/storage/v1/object/sign/invoice-scans/u1/abc.jpg?token=AAA")
	require.True(t, ok)
	b, ok := StableKey("https://api.example.com/storage/v1/object/sign/invoice-scans/u1/abc.jpg?token=BBB")
	require.True(t, ok)

	assert.Equal(t, "invoice-scans/u1/abc.jpg", a)
	assert.Equal(t, a, b)
}

func TestStableKey_DifferentBlobsDiffer(t *testing.T) {
	a, ok := StableKey("https://api.example.com/storage/v1/object/sign/invoice-scans/u1/abc.jpg?token=AAA")
	require.True(t, ok)
	b, ok := StableKey("https://api.example.com/storage/v1/object/sign/invoice-scans/u1/def.jpg?token=AAA")
	require.True(t, ok)

	assert.NotEqual(t, a, b)
}

func TestStableKey_NonSignedShapeFallsBack(t *testing.T) {
	_, ok := StableKey("https://api.example.com/storage/v1/object/invoice-scans/u1/abc.jpg")
	assert.False(t, ok)

	_, ok = StableKey("https://api.example.com/storage/v1/object/sign/")
	assert.False(t, ok)

	_, ok = StableKey("://not-a-url")
	assert.False(t, ok)
}
