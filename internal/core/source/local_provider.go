package source

import (
	"context"
	"fmt"
	"io"
	"os"
)

// LocalProvider reads the workbook from the filesystem
type LocalProvider struct {
	path string
}

func NewLocalProvider(path string) *LocalProvider {
	return &LocalProvider{path: path}
}

func (p *LocalProvider) Open(ctx context.Context) (io.ReadCloser, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(p.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", p.path, err)
	}
	return f, nil
}

// GetProviderName returns the provider name
func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}
