package fig

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Options configures a Client. Endpoints are joined to BaseURL verbatim;
// Discipline is sent as the fixed discipline filter on every search.
type Options struct {
	BaseURL          string
	AthletesEndpoint string
	CoachesEndpoint  string
	JudgesEndpoint   string
	Discipline       string
	Timeout          time.Duration
}

// Client fetches raw rosters from the registry. One operation per entity
// kind; each performs a single bounded GET and returns the decoded array.
//
// Safe for concurrent use.
type Client struct {
	opts Options
	http *http.Client
}

// NewClient constructs a Client with its own http.Client enforcing the
// configured per-call timeout.
func NewClient(opts Options) *Client {
	if opts.Timeout <= 0 {
		opts.Timeout = 10 * time.Second
	}
	return &Client{
		opts: opts,
		http: &http.Client{Timeout: opts.Timeout},
	}
}

// Athletes fetches the full athlete license roster for the configured
// discipline.
func (c *Client) Athletes(ctx context.Context) ([]RawAthlete, error) {
	q := url.Values{}
	q.Set("function", "searchLicenses")
	q.Set("discipline", c.opts.Discipline)
	q.Set("country", "")
	q.Set("idlicense", "")
	q.Set("lastname", "")

	var out []RawAthlete
	if err := c.getArray(ctx, c.opts.AthletesEndpoint, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Coaches fetches the full coach roster for the configured discipline.
func (c *Client) Coaches(ctx context.Context) ([]RawCoach, error) {
	q := url.Values{}
	q.Set("function", "searchAcademic")
	q.Set("discipline", c.opts.Discipline)
	q.Set("country", "")
	q.Set("id", "")
	q.Set("lastname", "")
	q.Set("level", "")

	var out []RawCoach
	if err := c.getArray(ctx, c.opts.CoachesEndpoint, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Judges fetches the full judge roster for the configured discipline.
func (c *Client) Judges(ctx context.Context) ([]RawJudge, error) {
	q := url.Values{}
	q.Set("function", "searchJudges")
	q.Set("discipline", c.opts.Discipline)
	q.Set("country", "")
	q.Set("id", "")
	q.Set("lastname", "")
	q.Set("category", "")

	var out []RawJudge
	if err := c.getArray(ctx, c.opts.JudgesEndpoint, q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// getArray performs the GET and decodes the body into dst (a pointer to a
// slice). Failures are classified into the package's sentinel errors.
func (c *Client) getArray(ctx context.Context, endpoint string, q url.Values, dst any) error {
	u := c.opts.BaseURL + endpoint + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return classifyTransportErr(err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: GET %s", ErrRateLimited, endpoint)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("%w: GET %s returned %d", ErrUpstreamUnavailable, endpoint, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return classifyTransportErr(err)
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return fmt.Errorf("%w: %v", ErrUpstreamFormat, err)
	}
	return nil
}

// classifyTransportErr folds transport-level failures into the sentinel
// taxonomy: timeouts and cancellations map to ErrUpstreamTimeout,
// everything else to ErrUpstreamUnavailable.
func classifyTransportErr(err error) error {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	var ue *url.Error
	if errors.As(err, &ue) && ue.Timeout() {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	var ne interface{ Timeout() bool }
	if errors.As(err, &ne) && ne.Timeout() {
		return fmt.Errorf("%w: %v", ErrUpstreamTimeout, err)
	}
	return fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
}
