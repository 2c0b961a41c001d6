// Package storage keeps uploaded files under generated, collision-resistant
// names.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"gwp-backend/internal/config"

	"github.com/aws/aws-sdk-go/aws"
	"github.com/aws/aws-sdk-go/aws/credentials"
	"github.com/aws/aws-sdk-go/aws/session"
	"github.com/aws/aws-sdk-go/service/s3"
)

var (
	// ErrNotFound is returned when no file is stored under a key.
	ErrNotFound = errors.New("storage: file not found")
	// ErrInvalidKey rejects keys that are not a single plain file name.
	ErrInvalidKey = errors.New("storage: invalid key")
)

// Provider defines the behavior for any storage backend.
type Provider interface {
	Put(ctx context.Context, key string, body io.Reader, contentType string) error
	Get(ctx context.Context, key string) (*FileObject, error)
	Delete(ctx context.Context, key string) error
}

// FileObject is the provider-agnostic representation of a stored file.
// Callers must close Body.
type FileObject struct {
	Body          io.ReadCloser
	ContentLength int64
	ContentType   string
	LastModified  time.Time
}

// New selects the backend named in cfg.
func New(cfg *config.StorageConfig) (Provider, error) {
	switch cfg.Provider {
	case "", "local":
		return NewLocalProvider(cfg.UploadDir)
	case "s3":
		awsCfg := &aws.Config{
			Region:           aws.String(cfg.S3.Region),
			S3ForcePathStyle: aws.Bool(cfg.S3.Endpoint != ""),
		}
		if cfg.S3.Endpoint != "" {
			awsCfg.Endpoint = aws.String(cfg.S3.Endpoint)
		}
		if cfg.S3.AccessKey != "" {
			awsCfg.Credentials = credentials.NewStaticCredentials(cfg.S3.AccessKey, cfg.S3.SecretKey, "")
		}
		sess, err := session.NewSession(awsCfg)
		if err != nil {
			return nil, fmt.Errorf("create aws session: %w", err)
		}
		return NewS3Provider(s3.New(sess), cfg.S3.Bucket, cfg.S3.Prefix), nil
	}
	return nil, fmt.Errorf("unsupported storage provider %q", cfg.Provider)
}
