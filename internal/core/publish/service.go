package publish

import (
	"context"
	"fmt"
	"io"
)

// Service provides report publishing with provider switching
type Service struct {
	provider     Provider
	providerName string
}

// NewService creates a new publish service
func NewService(provider Provider) *Service {
	s := &Service{}
	if provider != nil {
		s.SetProvider(provider)
	}
	return s
}

// Publish stores a report using the configured provider
func (s *Service) Publish(ctx context.Context, content io.Reader, filename string, options *Options) (*Result, error) {
	if s.provider == nil {
		return nil, fmt.Errorf("publish provider not configured")
	}

	return s.provider.Publish(ctx, content, filename, options)
}

// Delete deletes a report by key
func (s *Service) Delete(ctx context.Context, key string) error {
	if s.provider == nil {
		return fmt.Errorf("publish provider not configured")
	}

	return s.provider.Delete(ctx, key)
}

// GetURL gets the public URL for a report
func (s *Service) GetURL(key string) string {
	if s.provider == nil {
		return ""
	}

	return s.provider.GetURL(key)
}

// GetProviderName returns the current provider name
func (s *Service) GetProviderName() string {
	return s.providerName
}

// SetProvider changes the publish provider
func (s *Service) SetProvider(provider Provider) {
	s.provider = provider
	s.providerName = provider.GetProviderName()
}
