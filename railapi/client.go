// Package railapi provides the client for the IRCTC RapidAPI service.
//
// All endpoints share the same calling convention: GET with query
// parameters, two static authentication headers, and a JSON body with the
// payload under a "data" field.
package railapi

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/effective-security/xlog"
)

var logger = xlog.NewPackageLogger("github.com/effective-security/railgentic", "railapi")

const (
	// DefaultHost is the RapidAPI host identifier sent with every request.
	DefaultHost = "irctc-api2.p.rapidapi.com"

	// EnvAPIKey names the environment variable holding the RapidAPI key.
	EnvAPIKey = "RAPIDAPI_KEY"
	// EnvHost optionally overrides the upstream host.
	EnvHost = "RAPIDAPI_HOST"
)

// Error kinds. Callers classify failures with errors.Is;
// the messages carried alongside are meant for the agent.
var (
	// ErrNoAPIKey is returned when RAPIDAPI_KEY is not set.
	ErrNoAPIKey = errors.New("RAPIDAPI_KEY is not set")
	// ErrNetwork is returned on connection failure or timeout.
	ErrNetwork = errors.New("upstream request failed")
	// ErrUpstream is returned when the upstream responds with a non-2xx status.
	ErrUpstream = errors.New("upstream returned error status")
	// ErrNoData is returned on a well-formed response with no matching data.
	ErrNoData = errors.New("no data found")
)

// Config holds the process-wide upstream settings,
// established once at startup and never mutated.
type Config struct {
	APIKey  string
	Host    string
	BaseURL string
}

// LoadConfig reads the upstream configuration from the environment.
// A missing API key fails fast here, rather than as a confusing
// HTTP 401 later.
func LoadConfig() (*Config, error) {
	apikey := os.Getenv(EnvAPIKey)
	if apikey == "" {
		return nil, errors.WithStack(ErrNoAPIKey)
	}
	host := os.Getenv(EnvHost)
	if host == "" {
		host = DefaultHost
	}
	return &Config{
		APIKey:  apikey,
		Host:    host,
		BaseURL: "https://" + host,
	}, nil
}

// Client performs authenticated calls against the upstream REST API.
// It is safe for concurrent use.
type Client struct {
	cfg        *Config
	httpClient *http.Client
}

func NewClient(cfg *Config) *Client {
	return &Client{
		cfg:        cfg,
		httpClient: http.DefaultClient,
	}
}

func (c *Client) WithBaseURL(baseURL string) *Client {
	c.cfg.BaseURL = baseURL
	return c
}

func (c *Client) WithHTTPClient(client *http.Client) *Client {
	c.httpClient = client
	return c
}

// Get calls the given endpoint with the query parameters and returns the
// raw response body. The timeout is fixed per tool and bounds the whole
// call through the request context.
func (c *Client) Get(ctx context.Context, endpoint string, params url.Values, timeout time.Duration) ([]byte, error) {
	if c.cfg == nil || c.cfg.APIKey == "" {
		return nil, errors.WithStack(ErrNoAPIKey)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	u := c.cfg.BaseURL + endpoint
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create request")
	}
	req.Header.Set("x-rapidapi-key", c.cfg.APIKey)
	req.Header.Set("x-rapidapi-host", c.cfg.Host)

	started := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		logger.ContextKV(ctx, xlog.WARNING,
			"endpoint", endpoint,
			"status", "request_failed",
			"err", err.Error(),
		)
		return nil, errors.WithMessagef(ErrNetwork, "%s: %v", endpoint, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.WithMessagef(ErrNetwork, "%s: %v", endpoint, err)
	}

	logger.ContextKV(ctx, xlog.DEBUG,
		"endpoint", endpoint,
		"status_code", resp.StatusCode,
		"bytes", len(body),
		"elapsed", time.Since(started).String(),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.WithMessagef(ErrUpstream, "%s: status %d", endpoint, resp.StatusCode)
	}

	return body, nil
}
