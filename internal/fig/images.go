package fig

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ImageClient fetches person portraits from the registry's image origin.
// The origin serves raw image bytes at a deterministic URL per external
// identifier; no search or listing exists.
type ImageClient struct {
	baseURL string
	http    *http.Client
}

// NewImageClient constructs an ImageClient. baseURL is the prefix the
// external identifier is appended to.
func NewImageClient(baseURL string, timeout time.Duration) *ImageClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &ImageClient{
		baseURL: baseURL,
		http:    &http.Client{Timeout: timeout},
	}
}

// Image fetches the portrait bytes and content type for an external
// identifier. Failures follow the same taxonomy as the roster client.
func (c *ImageClient) Image(ctx context.Context, externalID string) ([]byte, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+externalID, nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", classifyTransportErr(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, "", fmt.Errorf("%w: image %s", ErrRateLimited, externalID)
	case resp.StatusCode != http.StatusOK:
		return nil, "", fmt.Errorf("%w: image %s returned %d", ErrUpstreamUnavailable, externalID, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, "", classifyTransportErr(err)
	}
	return body, resp.Header.Get("Content-Type"), nil
}
