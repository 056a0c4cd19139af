package store

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// HTTP serves objects from a bucket exposed over HTTP, such as an R2 or S3
// public endpoint.
type HTTP struct {
	baseURL string
	client  *http.Client
}

// NewHTTP creates an HTTP-backed store. baseURL is the bucket root without a
// trailing slash.
func NewHTTP(baseURL string) *HTTP {
	return &HTTP{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 30 * time.Second},
	}
}

func (h *HTTP) Get(ctx context.Context, key string) ([]byte, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, h.baseURL+"/"+key, nil)
	if err != nil {
		return nil, false, fmt.Errorf("building request for %s: %w", key, err)
	}

	resp, err := h.client.Do(req)
	if err != nil {
		return nil, false, fmt.Errorf("fetching %s: %w", key, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode == http.StatusNotFound {
		return nil, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, false, fmt.Errorf("fetching %s: unexpected status %s", key, resp.Status)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, false, fmt.Errorf("reading %s: %w", key, err)
	}
	return data, true, nil
}
