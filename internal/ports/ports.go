package ports

import (
	"context"

	"CiteScraper/internal/domain"
)

// RecordSource loads a CV sheet, degrading to an empty schema-correct set.
type RecordSource interface {
	Load(ctx context.Context, sheet string) *domain.RecordSet
}

// StatsSource scrapes profile counters; failures degrade to defaults.
type StatsSource interface {
	Fetch(ctx context.Context, profileURL string) domain.CitationStats
}

// CitationInspector runs the exploratory citation page scrape.
type CitationInspector interface {
	Inspect(ctx context.Context, records *domain.RecordSet) (domain.CitationReport, bool)
}

// ListRenderer turns a filtered record set into list markup.
type ListRenderer interface {
	RenderFiltered(records *domain.RecordSet, category string, style domain.ListStyle) string
	RenderLine(text string) string
	Extension() string
}
