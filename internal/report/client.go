package report

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/runsage/runsage/internal/config"
	"github.com/runsage/runsage/pkg/models"
)

// FetchError indicates the report source could not be retrieved.
type FetchError struct {
	Source string
	Err    error
}

func (e *FetchError) Error() string {
	return fmt.Sprintf("failed to fetch report from %s: %v", e.Source, e.Err)
}

func (e *FetchError) Unwrap() error { return e.Err }

// Client retrieves raw report JSON from the configured source.
type Client struct {
	cfg  *config.SourceConfig
	http *http.Client
}

// NewClient creates a report source client
func NewClient(cfg *config.SourceConfig) *Client {
	return &Client{
		cfg: cfg,
		http: &http.Client{
			Timeout: time.Duration(cfg.TimeoutSeconds) * time.Second,
		},
	}
}

// Fetch returns the raw report bytes from the configured source. A fetch
// failure is terminal for the operation and is never retried here.
func (c *Client) Fetch(ctx context.Context) ([]byte, error) {
	switch c.cfg.Kind {
	case "http":
		return c.fetchHTTP(ctx)
	case "file":
		data, err := os.ReadFile(c.cfg.Path)
		if err != nil {
			return nil, &FetchError{Source: c.cfg.Path, Err: err}
		}
		return data, nil
	case "github":
		return fetchGitHub(&c.cfg.GitHub)
	default:
		return nil, &FetchError{Source: c.cfg.Kind, Err: fmt.Errorf("unknown source kind")}
	}
}

// Load fetches and parses the report in one step, returning the cases along
// with the content hash that ties a trained resolver to this exact report.
func (c *Client) Load(ctx context.Context) ([]models.TestCase, string, error) {
	data, err := c.Fetch(ctx)
	if err != nil {
		return nil, "", err
	}
	cases, err := Parse(data)
	if err != nil {
		return nil, "", err
	}
	return cases, Hash(data), nil
}

func (c *Client) fetchHTTP(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.cfg.URL, nil)
	if err != nil {
		return nil, &FetchError{Source: c.cfg.URL, Err: err}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, &FetchError{Source: c.cfg.URL, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &FetchError{Source: c.cfg.URL, Err: fmt.Errorf("unexpected status %d", resp.StatusCode)}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{Source: c.cfg.URL, Err: err}
	}
	return data, nil
}

// Hash returns the SHA256 content hash of a raw report, used to detect when
// a persisted resolver has gone stale.
func Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}
