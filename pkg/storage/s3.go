package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/smithy-go"
)

// S3Client is the subset of the S3 API the backend uses. Narrow on purpose
// so tests can substitute a mock.
type S3Client interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	HeadObject(ctx context.Context, params *s3.HeadObjectInput, optFns ...func(*s3.Options)) (*s3.HeadObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

// S3Config contains configuration for the S3 backend.
type S3Config struct {
	Bucket         string `env:"REPORT_S3_BUCKET"`
	Region         string `env:"REPORT_S3_REGION" envDefault:"us-east-1"`
	AccessKeyID    string `env:"REPORT_S3_ACCESS_KEY_ID"`
	SecretKey      string `env:"REPORT_S3_SECRET_KEY"`
	Endpoint       string `env:"REPORT_S3_ENDPOINT"`         // for S3-compatible services
	BaseURL        string `env:"REPORT_S3_BASE_URL"`         // public URL base for stored reports
	ForcePathStyle bool   `env:"REPORT_S3_FORCE_PATH_STYLE"` // for MinIO and friends
}

// S3Option configures S3Storage creation.
type S3Option func(*S3Storage)

// WithS3Client sets a pre-configured client, bypassing AWS config loading.
// Used in tests.
func WithS3Client(client S3Client) S3Option {
	return func(s *S3Storage) { s.client = client }
}

// S3Storage stores artifacts in an S3 bucket. Safe for concurrent use.
type S3Storage struct {
	client  S3Client
	bucket  string
	baseURL string
}

// NewS3Storage creates an S3 backend for the configured bucket. Static
// credentials are used when provided; otherwise the default AWS credential
// chain applies.
func NewS3Storage(ctx context.Context, cfg S3Config, opts ...S3Option) (*S3Storage, error) {
	if cfg.Bucket == "" {
		return nil, fmt.Errorf("%w: bucket is required", ErrInvalidConfig)
	}

	baseURL := cfg.BaseURL
	if baseURL != "" && !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}

	s := &S3Storage{bucket: cfg.Bucket, baseURL: baseURL}
	for _, opt := range opts {
		opt(s)
	}
	if s.client != nil {
		return s, nil
	}

	loadOpts := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithRegion(cfg.Region),
	}
	if cfg.AccessKeyID != "" && cfg.SecretKey != "" {
		loadOpts = append(loadOpts, awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKeyID, cfg.SecretKey, ""),
		))
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	s.client = s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Endpoint)
		}
		o.UsePathStyle = cfg.ForcePathStyle
	})
	return s, nil
}

// Save uploads the content of r under the given key.
func (s *S3Storage) Save(ctx context.Context, path string, r io.Reader) (*Object, error) {
	key := s.key(path)

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, errors.Join(ErrSaveFailed, err)
	}

	_, err = s.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucket),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType(path)),
	})
	if err != nil {
		return nil, errors.Join(ErrSaveFailed, err)
	}

	return &Object{Path: path, Size: int64(len(data)), URL: s.URL(path)}, nil
}

// Exists reports whether an object is present at the key.
func (s *S3Storage) Exists(ctx context.Context, path string) bool {
	_, err := s.client.HeadObject(ctx, &s3.HeadObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	return err == nil
}

// Delete removes the object at the key. A missing key is not an error.
func (s *S3Storage) Delete(ctx context.Context, path string) error {
	_, err := s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(s.key(path)),
	})
	if err != nil {
		var apiErr smithy.APIError
		if errors.As(err, &apiErr) && apiErr.ErrorCode() == "NoSuchKey" {
			return nil
		}
		return errors.Join(ErrDeleteFailed, err)
	}
	return nil
}

// URL returns the public URL for a key, or empty without a base URL.
func (s *S3Storage) URL(path string) string {
	if s.baseURL == "" {
		return ""
	}
	return s.baseURL + s.key(path)
}

func (s *S3Storage) key(path string) string {
	return strings.TrimPrefix(strings.ReplaceAll(path, "\\", "/"), "/")
}
