package sheets

import (
	"context"
	"fmt"
	"os"

	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/source"
)

// ServiceAccountProvider reads worksheets with a service-account key.
type ServiceAccountProvider struct {
	documentID string
	keyFile    string
	options    []option.ClientOption
}

var _ source.Provider = (*ServiceAccountProvider)(nil)

// NewServiceAccountProvider binds the workbook and the JSON key path.
// Extra client options are appended to the Sheets client (endpoints, transports).
func NewServiceAccountProvider(documentID, keyFile string, opts ...option.ClientOption) *ServiceAccountProvider {
	return &ServiceAccountProvider{documentID: documentID, keyFile: keyFile, options: opts}
}

// Name identifies the provider inside the registry.
func (p *ServiceAccountProvider) Name() string {
	return "service_account"
}

// Fetch authenticates with the key file and reads the worksheet.
func (p *ServiceAccountProvider) Fetch(ctx context.Context, sheet string) (*domain.RecordSet, error) {
	if p.keyFile == "" {
		return nil, fmt.Errorf("service account key file is not configured")
	}

	raw, err := os.ReadFile(p.keyFile)
	if err != nil {
		return nil, fmt.Errorf("read service account key: %w", err)
	}

	creds, err := google.CredentialsFromJSON(ctx, raw, readonlyScope)
	if err != nil {
		return nil, fmt.Errorf("parse service account key: %w", err)
	}

	opts := append([]option.ClientOption{option.WithCredentials(creds)}, p.options...)
	svc, err := sheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets client: %w", err)
	}

	return readWorksheet(ctx, svc, p.documentID, sheet)
}
