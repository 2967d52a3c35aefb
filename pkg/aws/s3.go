package aws

import (
	"context"
	"fmt"
	"time"

	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gofiber/storage/s3/v2"
)

const requestTimeout = 10 * time.Second

type Config struct {
	Endpoint  string
	Bucket    string
	Region    string
	AccessKey string
	SecretKey string
}

// S3 stores blobs as objects under a fixed key prefix of one bucket.
type S3 struct {
	bucket     *s3.Storage
	bucketName string
	prefix     string
}

func NewS3Bucket(cfg Config) *S3 {
	storage := s3.New(s3.Config{
		Endpoint: cfg.Endpoint,
		Bucket:   cfg.Bucket,
		Region:   cfg.Region,
		Credentials: s3.Credentials{
			AccessKey:       cfg.AccessKey,
			SecretAccessKey: cfg.SecretKey,
		},
		MaxAttempts:    3,
		RequestTimeout: requestTimeout,
		Reset:          false,
	})

	return &S3{
		bucket:     storage,
		bucketName: cfg.Bucket,
		prefix:     "itemshare/",
	}
}

// Get treats a missing or empty object as absent.
func (s *S3) Get(ctx context.Context, key string) ([]byte, bool, error) {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	data, err := s.bucket.GetWithContext(ctx, s.prefix+key)
	if err != nil {
		return nil, false, fmt.Errorf("downloading %s: %w", key, err)
	}
	if len(data) == 0 {
		return nil, false, nil
	}
	return data, true, nil
}

func (s *S3) Set(ctx context.Context, key string, blob []byte) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if err := s.bucket.SetWithContext(ctx, s.prefix+key, blob, 0); err != nil {
		return fmt.Errorf("uploading %s: %w", key, err)
	}
	return nil
}

// Ping checks that the bucket exists and the credentials can reach it.
func (s *S3) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, requestTimeout)
	defer cancel()

	if _, err := s.bucket.Conn().HeadBucket(ctx, &awss3.HeadBucketInput{Bucket: &s.bucketName}); err != nil {
		return fmt.Errorf("checking bucket %s: %w", s.bucketName, err)
	}
	return nil
}

func (s *S3) Close() error {
	return s.bucket.Close()
}
