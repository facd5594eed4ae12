package services

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/auth"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/config"
)

// Indirection points for tests.
var (
	loadDefaultAWSConfig = awsconfig.LoadDefaultConfig

	newS3ClientFromConfig = func(cfg aws.Config, optFns ...func(*s3.Options)) *s3.Client {
		return s3.NewFromConfig(cfg, optFns...)
	}
)

// objectAPI is the slice of the S3 client the service uses.
type objectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	GetObject(ctx context.Context, in *s3.GetObjectInput, optFns ...func(*s3.Options)) (*s3.GetObjectOutput, error)
	DeleteObject(ctx context.Context, in *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// StorageService proxies invoice-scan blobs to an S3-compatible backend and
// issues time-limited signed URLs for reading them. The signed URL embeds a
// token scoped to a single object path; the path segment before the query
// string is stable across re-signs.
type StorageService struct {
	cfg    *config.Config
	client objectAPI
}

// NewStorageService constructs a StorageService backed by the configured
// S3 endpoint.
func NewStorageService(cfg *config.Config) (*StorageService, error) {
	awsCfg, err := loadDefaultAWSConfig(context.Background(),
		awsconfig.WithRegion(cfg.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			cfg.S3RootUser,
			cfg.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, fmt.Errorf("loading s3 config: %w", err)
	}

	client := newS3ClientFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.S3BaseEndpoint)
		o.UsePathStyle = true
	})

	return &StorageService{cfg: cfg, client: client}, nil
}

// Upload stores data at path, overwriting any previous object.
func (s *StorageService) Upload(ctx context.Context, path string, data []byte) error {
	_, err := s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(path),
		Body:   bytes.NewReader(data),
	})
	if err != nil {
		return fmt.Errorf("uploading object %s: %w", path, err)
	}
	return nil
}

// Get reads the object at path. A missing object maps to common.ErrNotFound.
func (s *StorageService) Get(ctx context.Context, path string) ([]byte, error) {
	out, err := s.client.GetObject(ctx, &s3.GetObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		if strings.Contains(err.Error(), "NoSuchKey") {
			return nil, fmt.Errorf("object %s: %w", path, common.ErrNotFound)
		}
		return nil, fmt.Errorf("fetching object %s: %w", path, err)
	}
	defer out.Body.Close()

	data, err := io.ReadAll(out.Body)
	if err != nil {
		return nil, fmt.Errorf("reading object %s: %w", path, err)
	}
	return data, nil
}

// Delete removes the object at path. Deleting an absent object is not an
// error.
func (s *StorageService) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.cfg.S3Bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("deleting object %s: %w", path, err)
	}
	return nil
}

// SignURL returns a full URL of the form
//
//	<PublicBaseURL>/storage/v1/object/sign/<path>?token=<jwt>
//
// valid for the configured signed-URL lifetime. Only the token varies
// between calls for the same path.
func (s *StorageService) SignURL(path string) (string, error) {
	token, err := auth.GenerateURLToken(path, []byte(s.cfg.SecretKey), s.cfg.SignedURLValidityDuration)
	if err != nil {
		return "", fmt.Errorf("signing url for %s: %w", path, err)
	}

	base := strings.TrimRight(s.cfg.PublicBaseURL, "/")
	return base + "/storage/v1/object/sign/" + path + "?" + common.SignedURLTokenParam + "=" + url.QueryEscape(token), nil
}

// VerifyURLToken checks a signed-URL token and returns the object path it
// grants access to.
func (s *StorageService) VerifyURLToken(token string) (string, error) {
	return auth.GetPathFromURLToken(token, []byte(s.cfg.SecretKey))
}
