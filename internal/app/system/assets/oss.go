// internal/app/system/assets/oss.go
package assets

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/aliyun/aliyun-oss-go-sdk/oss"
)

// OSSConfig carries the object-store connection settings from app config.
type OSSConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	// PublicBase overrides the derived public URL base (e.g. a CDN domain).
	PublicBase string
}

// OSSStore stores objects in an Aliyun OSS bucket and serves them from the
// bucket's public endpoint (or a CDN base when configured).
type OSSStore struct {
	bucket     *oss.Bucket
	endpoint   string
	bucketName string
	publicBase string
}

// NewOSSStore dials the bucket. It fails fast on incomplete configuration so
// a misconfigured deployment dies at startup, not on first upload.
func NewOSSStore(cfg OSSConfig) (*OSSStore, error) {
	if cfg.Endpoint == "" || cfg.AccessKey == "" || cfg.SecretKey == "" || cfg.Bucket == "" {
		return nil, fmt.Errorf("oss: endpoint, access key, secret key, and bucket are all required")
	}
	client, err := oss.New(cfg.Endpoint, cfg.AccessKey, cfg.SecretKey)
	if err != nil {
		return nil, fmt.Errorf("oss.New: %w", err)
	}
	bkt, err := client.Bucket(cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("oss bucket %q: %w", cfg.Bucket, err)
	}
	return &OSSStore{
		bucket:     bkt,
		endpoint:   cfg.Endpoint,
		bucketName: cfg.Bucket,
		publicBase: strings.TrimRight(cfg.PublicBase, "/"),
	}, nil
}

// Put uploads one object and returns its public URL.
func (s *OSSStore) Put(ctx context.Context, key string, r io.Reader, contentType string) (string, error) {
	opts := []oss.Option{oss.WithContext(ctx)}
	if contentType != "" {
		opts = append(opts, oss.ContentType(contentType))
	}
	if err := s.bucket.PutObject(key, r, opts...); err != nil {
		return "", fmt.Errorf("oss put %q: %w", key, err)
	}
	return s.publicURL(key), nil
}

func (s *OSSStore) publicURL(key string) string {
	if s.publicBase != "" {
		return s.publicBase + "/" + key
	}
	end := s.endpoint
	end = strings.TrimPrefix(end, "https://")
	end = strings.TrimPrefix(end, "http://")
	return fmt.Sprintf("https://%s.%s/%s", s.bucketName, end, key)
}
