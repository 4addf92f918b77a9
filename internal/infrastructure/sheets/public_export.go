package sheets

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/source"
)

// DefaultExportBaseURL is the public spreadsheet host.
const DefaultExportBaseURL = "https://docs.google.com/spreadsheets/d"

// PublicExportProvider downloads a worksheet as CSV without credentials.
// It only works for workbooks shared as "anyone with the link".
type PublicExportProvider struct {
	baseURL    string
	documentID string
	client     *http.Client
}

var _ source.Provider = (*PublicExportProvider)(nil)

// NewPublicExportProvider wires an HTTP client; a nil client gets a 30s timeout.
func NewPublicExportProvider(client *http.Client, baseURL, documentID string) *PublicExportProvider {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	if baseURL == "" {
		baseURL = DefaultExportBaseURL
	}
	return &PublicExportProvider{baseURL: baseURL, documentID: documentID, client: client}
}

// Name identifies the provider inside the registry.
func (p *PublicExportProvider) Name() string {
	return "public_export"
}

// Fetch requests the gviz CSV export of the sheet.
func (p *PublicExportProvider) Fetch(ctx context.Context, sheet string) (*domain.RecordSet, error) {
	exportURL, err := ExportURL(p.baseURL, p.documentID, sheet)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, exportURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request export: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("export returned %s", resp.Status)
	}

	set, err := domain.ReadCSV(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse export of %s: %w", sheet, err)
	}
	return set, nil
}

// ExportURL builds the CSV export address of a worksheet.
func ExportURL(base, documentID, sheet string) (string, error) {
	parsed, err := url.Parse(strings.TrimSuffix(base, "/") + "/" + url.PathEscape(documentID) + "/gviz/tq")
	if err != nil {
		return "", fmt.Errorf("invalid export base url %s: %w", base, err)
	}

	query := parsed.Query()
	query.Set("tqx", "out:csv")
	query.Set("sheet", sheet)
	parsed.RawQuery = query.Encode()
	return parsed.String(), nil
}
