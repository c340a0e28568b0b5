package report

import (
	"encoding/base64"
	"fmt"
	"net/url"
	"strings"

	"github.com/cli/go-gh/v2/pkg/api"
	"github.com/runsage/runsage/internal/config"
)

// contentsResponse is the GitHub contents API payload for a single file.
type contentsResponse struct {
	Content  string `json:"content"`
	Encoding string `json:"encoding"`
}

// fetchGitHub retrieves the report file through the GitHub contents API,
// reusing gh CLI authentication. Useful for reports in private repos where
// the raw URL form is not reachable.
func fetchGitHub(cfg *config.GitHubSourceConfig) ([]byte, error) {
	source := fmt.Sprintf("github:%s/%s", cfg.Repo, cfg.Path)

	client, err := api.DefaultRESTClient()
	if err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("failed to create REST client: %w", err)}
	}

	endpoint := fmt.Sprintf("repos/%s/contents/%s", cfg.Repo, cfg.Path)
	if cfg.Ref != "" {
		endpoint += "?ref=" + url.QueryEscape(cfg.Ref)
	}

	var resp contentsResponse
	if err := client.Get(endpoint, &resp); err != nil {
		return nil, &FetchError{Source: source, Err: err}
	}

	if resp.Encoding != "base64" {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("unexpected content encoding %q", resp.Encoding)}
	}

	// The API wraps base64 content with newlines
	data, err := base64.StdEncoding.DecodeString(strings.ReplaceAll(resp.Content, "\n", ""))
	if err != nil {
		return nil, &FetchError{Source: source, Err: fmt.Errorf("failed to decode content: %w", err)}
	}

	return data, nil
}
