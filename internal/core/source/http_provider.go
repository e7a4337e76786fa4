package source

import (
	"context"
	"fmt"
	"io"
	"net/http"
)

// HTTPProvider downloads the workbook, e.g. a published sheet export link.
type HTTPProvider struct {
	url    string
	client *http.Client
}

func NewHTTPProvider(url string, client *http.Client) *HTTPProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPProvider{url: url, client: client}
}

func (p *HTTPProvider) Open(ctx context.Context) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, p.url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to download %s: %w", p.url, err)
	}
	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download %s: unexpected status %d", p.url, resp.StatusCode)
	}
	return resp.Body, nil
}

// GetProviderName returns the provider name
func (p *HTTPProvider) GetProviderName() string {
	return "HTTP"
}
