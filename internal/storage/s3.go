// Package storage uploads menu item images to an S3-compatible bucket.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"path"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"restaurant-ordering/internal/config"
)

// ErrDisabled is returned by Disabled when no bucket is configured.
var ErrDisabled = errors.New("image storage is not configured")

// Uploader stores an object and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error)
}

// putObjectAPI is the subset of *s3.Client used here.
type putObjectAPI interface {
	PutObject(ctx context.Context, in *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
}

type S3Uploader struct {
	client  putObjectAPI
	bucket  string
	baseURL string
	logger  *log.Logger
}

// NewS3Uploader builds a client with static credentials. A custom endpoint
// (R2, MinIO) switches to path-style addressing.
func NewS3Uploader(ctx context.Context, cfg config.StorageConfig, logger *log.Logger) (*S3Uploader, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, "")),
	)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}
	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
			o.UsePathStyle = true
		}
	})
	baseURL := cfg.PublicBaseURL
	if baseURL == "" {
		baseURL = fmt.Sprintf("https://%s.s3.%s.amazonaws.com", cfg.Bucket, cfg.Region)
	}
	return newS3Uploader(client, cfg.Bucket, baseURL, logger), nil
}

func newS3Uploader(client putObjectAPI, bucket, baseURL string, logger *log.Logger) *S3Uploader {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &S3Uploader{client: client, bucket: bucket, baseURL: strings.TrimRight(baseURL, "/"), logger: logger}
}

func (u *S3Uploader) Upload(ctx context.Context, key, contentType string, body io.Reader) (string, error) {
	in := &s3.PutObjectInput{
		Bucket: aws.String(u.bucket),
		Key:    aws.String(key),
		Body:   body,
	}
	if contentType != "" {
		in.ContentType = aws.String(contentType)
	}
	if _, err := u.client.PutObject(ctx, in); err != nil {
		u.logger.Printf("storage: put bucket=%s key=%s error=%v", u.bucket, key, err)
		return "", fmt.Errorf("upload %s: %w", key, err)
	}
	u.logger.Printf("storage: put bucket=%s key=%s", u.bucket, key)
	return u.baseURL + "/" + key, nil
}

// Disabled rejects every upload.
type Disabled struct{}

func (Disabled) Upload(context.Context, string, string, io.Reader) (string, error) {
	return "", ErrDisabled
}

// MenuImageKey builds a unique object key for an item image, keeping the
// original extension.
func MenuImageKey(itemID, filename string) string {
	ext := strings.ToLower(path.Ext(filename))
	return fmt.Sprintf("menu-items/%s/%s%s", itemID, uuid.NewString(), ext)
}
