package services

import (
	"context"
	"errors"
	"io"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/config"
)

type fakeObjectAPI struct {
	objects map[string][]byte
	putErr  error
}

func newFakeObjectAPI() *fakeObjectAPI {
	return &fakeObjectAPI{objects: make(map[string][]byte)}
}

func (f *fakeObjectAPI) PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.putErr != nil {
		return nil, f.putErr
	}
	data, err := io.ReadAll(in.Body)
	if err != nil {
		return nil, err
	}
	f.objects[*in.Key] = data
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeObjectAPI) GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, errors.New("NoSuchKey: the specified key does not exist")
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(strings.NewReader(string(data)))}, nil
}

func (f *fakeObjectAPI) DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, *in.Key)
	return &s3.DeleteObjectOutput{}, nil
}

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.PublicBaseURL = "https://api.example.com"
	cfg.SignedURLValidityDuration = time.Hour
	return cfg
}

func testStorage() (*StorageService, *fakeObjectAPI) {
	api := newFakeObjectAPI()
	return &StorageService{cfg: testConfig(), client: api}, api
}

func TestUploadGetDelete(t *testing.T) {
	s, api := testStorage()
	ctx := context.Background()

	require.NoError(t, s.Upload(ctx, "invoice-scans/u1/a.jpg", []byte{1, 2, 3}))
	assert.Len(t, api.objects, 1)

	data, err := s.Get(ctx, "invoice-scans/u1/a.jpg")
	require.NoError(t, err)
	assert.Equal(t, []byte{1, 2, 3}, data)

	require.NoError(t, s.Delete(ctx, "invoice-scans/u1/a.jpg"))
	_, err = s.Get(ctx, "invoice-scans/u1/a.jpg")
	require.ErrorIs(t, err, common.ErrNotFound)
}

func TestSignURL_ShapeAndStability(t *testing.T) {
	s, _ := testStorage()

	signed, err := s.SignURL("invoice-scans/u1/a.jpg")
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	assert.Equal(t, "api.example.com", u.Host)
	assert.Equal(t, "/storage/v1/object/sign/invoice-scans/u1/a.jpg", u.Path)
	assert.NotEmpty(t, u.Query().Get(common.SignedURLTokenParam))

	// re-signing changes only the token, never the path
	signed2, err := s.SignURL("invoice-scans/u1/a.jpg")
	require.NoError(t, err)
	u2, err := url.Parse(signed2)
	require.NoError(t, err)
	assert.Equal(t, u.Path, u2.Path)
}

func TestSignURL_TokenRoundTrip(t *testing.T) {
	s, _ := testStorage()

	signed, err := s.SignURL("invoice-scans/u1/a.jpg")
	require.NoError(t, err)

	u, err := url.Parse(signed)
	require.NoError(t, err)
	token := u.Query().Get(common.SignedURLTokenParam)

	path, err := s.VerifyURLToken(token)
	require.NoError(t, err)
	assert.Equal(t, "invoice-scans/u1/a.jpg", path)
}

func TestVerifyURLToken_RejectsTamperedToken(t *testing.T) {
	s, _ := testStorage()

	signed, err := s.SignURL("invoice-scans/u1/a.jpg")
	require.NoError(t, err)
	u, _ := url.Parse(signed)
	token := u.Query().Get(common.SignedURLTokenParam)

	_, err = s.VerifyURLToken(token + "x")
	require.ErrorIs(t, err, common.ErrInvalidToken)
}
