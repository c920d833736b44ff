// Package release checks the unicode-org/cldr-json repository for new
// CLDR releases and compares them against the pinned release.
package release

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
)

// DefaultBaseURL is the GitHub API endpoint for the latest CLDR release.
const DefaultBaseURL = "https://api.github.com/repos/unicode-org/cldr-json"

const userAgent = "langgen-cldr-updater/1.0"

// Client queries the GitHub releases API.
type Client struct {
	// BaseURL overrides DefaultBaseURL, mainly for tests.
	BaseURL string
	// HTTPClient overrides the default 30s-timeout client.
	HTTPClient *http.Client
}

type latestRelease struct {
	TagName string `json:"tag_name"`
}

// Latest returns the tag name of the newest CLDR release.
func (c *Client) Latest(ctx context.Context) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultBaseURL
	}
	url := base + "/releases/latest"

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", url, err)
	}
	req.Header.Set("Accept", "application/vnd.github+json")
	req.Header.Set("User-Agent", userAgent)

	client := c.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching CLDR releases from %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching CLDR releases from %s: unexpected status %s", url, resp.Status)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("reading releases response: %w", err)
	}

	var latest latestRelease
	if err := json.Unmarshal(body, &latest); err != nil {
		return "", fmt.Errorf("parsing releases response: %w", err)
	}

	tag := strings.TrimSpace(latest.TagName)
	if tag == "" {
		return "", fmt.Errorf("releases response did not include a valid tag_name")
	}
	return tag, nil
}

// IsNewer reports whether latest is a newer release than current. A
// current version that is not valid semver (e.g. never pinned) makes any
// valid release count as newer.
func IsNewer(current, latest string) (bool, error) {
	latestVersion, err := semver.NewVersion(latest)
	if err != nil {
		return false, fmt.Errorf("parsing latest release %q: %w", latest, err)
	}

	currentVersion, err := semver.NewVersion(current)
	if err != nil {
		return true, nil
	}
	return latestVersion.GreaterThan(currentVersion), nil
}

// Output is one key=value line for a GitHub Actions output file.
type Output struct {
	Key   string
	Value string
}

// WriteGitHubOutput appends outputs to the file GitHub Actions names in
// $GITHUB_OUTPUT, preserving their order.
func WriteGitHubOutput(path string, outputs []Output) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var b strings.Builder
	for _, out := range outputs {
		b.WriteString(out.Key)
		b.WriteByte('=')
		b.WriteString(out.Value)
		b.WriteByte('\n')
	}
	if _, err := file.WriteString(b.String()); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}
