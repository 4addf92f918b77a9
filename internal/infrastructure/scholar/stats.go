package scholar

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/ports"
)

// statsTableSelector marks the citation summary table of a profile page.
const statsTableSelector = "table#gsc_rsb_st"

// StatsExtractor scrapes citation counters from a profile page.
type StatsExtractor struct {
	fetcher pageFetcher
	logger  *slog.Logger
}

var _ ports.StatsSource = (*StatsExtractor)(nil)

// NewStatsExtractor wires an HTTP client; a nil client gets a 30s timeout.
func NewStatsExtractor(client *http.Client, userAgent string, log *slog.Logger) *StatsExtractor {
	return &StatsExtractor{fetcher: newPageFetcher(client, userAgent), logger: log}
}

// Fetch downloads the profile page and extracts its counters.
// Network and parse failures are logged and yield zero defaults.
func (s *StatsExtractor) Fetch(ctx context.Context, profileURL string) domain.CitationStats {
	body, err := s.fetcher.fetch(ctx, profileURL)
	if err != nil {
		s.warn("fetch profile page", "url", profileURL, "error", err)
		return domain.DefaultCitationStats()
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		s.warn("parse profile page", "url", profileURL, "error", err)
		return domain.DefaultCitationStats()
	}

	return ParseStats(doc)
}

// ParseStats reads the value column of the stats table: every second cell
// starting from the second, mapped positionally to citations, h-index and
// i10-index. Missing cells stay "0".
func ParseStats(doc *goquery.Document) domain.CitationStats {
	stats := domain.DefaultCitationStats()

	table := doc.Find(statsTableSelector).First()
	if table.Length() == 0 {
		return stats
	}

	var values []string
	table.Find("td").Each(func(i int, td *goquery.Selection) {
		if i%2 == 1 {
			values = append(values, strings.TrimSpace(td.Text()))
		}
	})

	fields := []*string{&stats.Citations, &stats.HIndex, &stats.I10Index}
	for i, field := range fields {
		if i < len(values) {
			*field = values[i]
		}
	}
	return stats
}

func (s *StatsExtractor) warn(msg string, args ...interface{}) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}
