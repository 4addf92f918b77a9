package scholar

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is the Google Scholar host.
	DefaultBaseURL   = "https://scholar.google.com"
	defaultUserAgent = "Mozilla/5.0 (compatible; CiteScraper/1.0)"
)

type pageFetcher struct {
	client    *http.Client
	userAgent string
}

func newPageFetcher(client *http.Client, userAgent string) pageFetcher {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if userAgent == "" {
		userAgent = defaultUserAgent
	}
	return pageFetcher{client: client, userAgent: userAgent}
}

func (f pageFetcher) fetch(ctx context.Context, pageURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.5")

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("scholar returned %s", resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read page: %w", err)
	}
	return body, nil
}

// ProfileURL builds the profile page address for a scholar id.
func ProfileURL(base, profileID string) (string, error) {
	parsed, err := url.Parse(strings.TrimSuffix(base, "/") + "/citations")
	if err != nil {
		return "", fmt.Errorf("invalid scholar base url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("user", profileID)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}

// CitationURL builds the detail page address of a single publication.
func CitationURL(base, user, citationID string) (string, error) {
	parsed, err := url.Parse(strings.TrimSuffix(base, "/") + "/citations")
	if err != nil {
		return "", fmt.Errorf("invalid scholar base url %s: %w", base, err)
	}

	parsed.RawQuery = strings.Join([]string{
		"view_op=view_citation",
		"hl=en",
		"user=" + url.QueryEscape(user),
		"citation_for_view=" + url.QueryEscape(user) + ":" + url.QueryEscape(citationID),
	}, "&")
	return parsed.String(), nil
}
