package source

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"
)

// Provider fetches the raw bytes of the order workbook.
type Provider interface {
	// Open returns a reader over the workbook. The caller closes it.
	Open(ctx context.Context) (io.ReadCloser, error)

	// GetProviderName returns the provider name
	GetProviderName() string
}

// S3Opener creates S3 clients for s3:// URIs.
type S3Opener func(ctx context.Context) (S3API, error)

// NewProvider picks a provider from the URI scheme: s3://bucket/key,
// http(s)://..., anything else is a local path.
func NewProvider(uri string, s3Opener S3Opener) (Provider, error) {
	switch {
	case strings.HasPrefix(uri, "s3://"):
		u, err := url.Parse(uri)
		if err != nil {
			return nil, fmt.Errorf("invalid source uri %q: %w", uri, err)
		}
		key := strings.TrimPrefix(u.Path, "/")
		if u.Host == "" || key == "" {
			return nil, fmt.Errorf("invalid source uri %q: want s3://bucket/key", uri)
		}
		if s3Opener == nil {
			return nil, fmt.Errorf("no S3 client configured for %q", uri)
		}
		return NewS3Provider(u.Host, key, s3Opener), nil
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		return NewHTTPProvider(uri, nil), nil
	default:
		return NewLocalProvider(uri), nil
	}
}
