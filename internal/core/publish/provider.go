package publish

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Result describes a published report file
type Result struct {
	URL         string `json:"url"`          // Public URL to download the file
	Key         string `json:"key"`          // Provider-specific identifier
	FileName    string `json:"file_name"`    // Original filename
	Size        int64  `json:"size"`         // Bytes written, 0 when the provider cannot tell
	ContentType string `json:"content_type"` // MIME type derived from the extension
}

// Options controls where and how a file is published
type Options struct {
	Folder    string `json:"folder"`    // Folder/prefix to publish into
	Name      string `json:"name"`      // Fixed name without extension; empty generates a unique one
	Overwrite bool   `json:"overwrite"` // Replace an existing file with the same name
}

// Provider defines the interface for report storage backends
type Provider interface {
	// Publish stores the content under a name derived from filename
	Publish(ctx context.Context, content io.Reader, filename string, options *Options) (*Result, error)

	// Delete removes a file by key
	Delete(ctx context.Context, key string) error

	// GetURL gets the public URL for a key
	GetURL(key string) string

	// GetProviderName returns the provider name
	GetProviderName() string
}

// DefaultOptions returns default publish options
func DefaultOptions() *Options {
	return &Options{
		Folder:    "sales",
		Overwrite: false,
	}
}

// MergeOptions merges custom options with defaults
func MergeOptions(custom *Options) *Options {
	defaults := DefaultOptions()

	if custom == nil {
		return defaults
	}

	if custom.Folder != "" {
		defaults.Folder = custom.Folder
	}
	if custom.Name != "" {
		defaults.Name = custom.Name
	}
	defaults.Overwrite = custom.Overwrite

	return defaults
}

// fileName returns the stored name: the fixed name when given, otherwise
// the original name with a timestamp and short uuid appended.
func fileName(filename string, options *Options) string {
	ext := filepath.Ext(filename)
	if options.Name != "" {
		return options.Name + ext
	}
	base := strings.TrimSuffix(filepath.Base(filename), ext)
	return fmt.Sprintf("%s_%d_%s%s", base, time.Now().Unix(), uuid.New().String()[:8], ext)
}

// ContentType detects the content type based on file extension
func ContentType(filename string) string {
	contentTypes := map[string]string{
		".pdf":  "application/pdf",
		".xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
		".json": "application/json",
		".png":  "image/png",
	}

	if ct, ok := contentTypes[strings.ToLower(filepath.Ext(filename))]; ok {
		return ct
	}
	return "application/octet-stream"
}
