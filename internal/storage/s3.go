// Package storage forwards uploaded image bytes to an S3-compatible
// bucket and hands back durable public URLs.
package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"

	"github.com/mkravets/blog-api/config"
)

var (
	// ErrUnsupportedType rejects content types outside the allow-list,
	// before any network call.
	ErrUnsupportedType = errors.New("unsupported content type")
	// ErrTooLarge rejects payloads over the configured cap, before any
	// network call.
	ErrTooLarge = errors.New("file too large")
)

// ObjectStoreClient is the slice of the S3 API the gateway uses.
type ObjectStoreClient interface {
	PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error)
	DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, optFns ...func(*s3.Options)) (*s3.DeleteObjectOutput, error)
}

type UploadInput struct {
	Prefix      string
	Filename    string
	ContentType string
	Size        int64
	Body        io.Reader
}

type Object struct {
	Key         string
	URL         string
	ContentType string
	Size        int64
}

type Gateway struct {
	client  ObjectStoreClient
	cfg     *config.Storage
	allowed map[string]struct{}
}

// New builds a gateway over an S3-compatible endpoint (MinIO-style
// path-addressed buckets included).
func New(ctx context.Context, cfg *config.Storage) (*Gateway, error) {
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(cfg.Region),
		awsconfig.WithCredentialsProvider(
			credentials.NewStaticCredentialsProvider(cfg.AccessKey, cfg.SecretKey, ""),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("load storage config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(cfg.Endpoint)
		o.UsePathStyle = true
	})

	return NewWithClient(cfg, client), nil
}

func NewWithClient(cfg *config.Storage, client ObjectStoreClient) *Gateway {
	allowed := make(map[string]struct{}, len(cfg.AllowedContentTypes))
	for _, ct := range cfg.AllowedContentTypes {
		allowed[ct] = struct{}{}
	}

	return &Gateway{
		client:  client,
		cfg:     cfg,
		allowed: allowed,
	}
}

// Upload validates the declared content type and size, then forwards the
// bytes under a generated collision-free key.
func (g *Gateway) Upload(ctx context.Context, input UploadInput) (Object, error) {
	if _, ok := g.allowed[input.ContentType]; !ok {
		return Object{}, fmt.Errorf("%w: %s", ErrUnsupportedType, input.ContentType)
	}
	if input.Size > g.cfg.MaxUploadBytes {
		return Object{}, fmt.Errorf("%w: %d bytes exceeds limit of %d", ErrTooLarge, input.Size, g.cfg.MaxUploadBytes)
	}

	prefix := input.Prefix
	if prefix == "" {
		prefix = g.cfg.DefaultPrefix
	}
	key := g.ObjectKey(prefix, input.Filename)

	_, err := g.client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:        aws.String(g.cfg.Bucket),
		Key:           aws.String(key),
		Body:          input.Body,
		ContentType:   aws.String(input.ContentType),
		ContentLength: aws.Int64(input.Size),
	})
	if err != nil {
		return Object{}, fmt.Errorf("failed to upload object %s: %w", key, err)
	}

	return Object{
		Key:         key,
		URL:         g.ObjectURL(key),
		ContentType: input.ContentType,
		Size:        input.Size,
	}, nil
}

// Delete removes an object by key. Deleting an absent key succeeds, so
// the operation is idempotent from the caller's perspective.
func (g *Gateway) Delete(ctx context.Context, key string) error {
	_, err := g.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(g.cfg.Bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete object %s: %w", key, err)
	}

	return nil
}

// ObjectKey builds prefix/slug-suffix.ext. The random suffix keeps
// repeated uploads of identically named files from colliding.
func (g *Gateway) ObjectKey(prefix, filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	stem := strings.TrimSuffix(filename, filepath.Ext(filename))
	suffix := uuid.New().String()[:8]

	return fmt.Sprintf("%s/%s-%s%s", strings.Trim(prefix, "/"), slugify(stem), suffix, ext)
}

// ObjectURL prefers the configured CDN base and otherwise derives the
// direct URL from the storage endpoint and bucket.
func (g *Gateway) ObjectURL(key string) string {
	if g.cfg.CDNBaseURL != "" {
		return strings.TrimRight(g.cfg.CDNBaseURL, "/") + "/" + key
	}

	return fmt.Sprintf("%s/%s/%s", strings.TrimRight(g.cfg.Endpoint, "/"), g.cfg.Bucket, key)
}

func slugify(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		}
	}

	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
