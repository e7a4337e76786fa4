package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
)

// LocalProvider writes reports to the local filesystem
type LocalProvider struct {
	basePath   string // Base directory for reports
	baseURL    string // Base URL to access files
	publicPath string // Public path the HTTP server mounts basePath on
}

// NewLocalProvider creates a new local file storage provider
func NewLocalProvider(basePath, baseURL string) (*LocalProvider, error) {
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}

	return &LocalProvider{
		basePath:   basePath,
		baseURL:    baseURL,
		publicPath: PublicPath,
	}, nil
}

// PublicPath is the URL prefix under which local reports are served.
const PublicPath = "/reports/"

// Publish writes a report file
func (p *LocalProvider) Publish(ctx context.Context, content io.Reader, filename string, options *Options) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	options = MergeOptions(options)
	finalFilename := fileName(filename, options)

	folderPath := filepath.Join(p.basePath, options.Folder)
	if err := os.MkdirAll(folderPath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create folder: %w", err)
	}

	filePath := filepath.Join(folderPath, finalFilename)

	// Check if file exists and overwrite is false
	if !options.Overwrite {
		if _, err := os.Stat(filePath); err == nil {
			return nil, fmt.Errorf("file already exists: %s", finalFilename)
		}
	}

	out, err := os.Create(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create file: %w", err)
	}
	defer out.Close()

	size, err := io.Copy(out, content)
	if err != nil {
		os.Remove(filePath)
		return nil, fmt.Errorf("failed to write file: %w", err)
	}

	key := path.Join(options.Folder, finalFilename)
	return &Result{
		URL:         p.GetURL(key),
		Key:         key,
		FileName:    filename,
		Size:        size,
		ContentType: ContentType(filename),
	}, nil
}

// Delete deletes a file from local filesystem
func (p *LocalProvider) Delete(ctx context.Context, key string) error {
	filePath := filepath.Join(p.basePath, filepath.FromSlash(key))

	if err := os.Remove(filePath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("file not found: %s", key)
		}
		return fmt.Errorf("failed to delete file: %w", err)
	}

	return nil
}

// GetURL gets the public URL for a file
func (p *LocalProvider) GetURL(key string) string {
	return p.baseURL + p.publicPath + key
}

// GetProviderName returns the provider name
func (p *LocalProvider) GetProviderName() string {
	return "Local Storage"
}
