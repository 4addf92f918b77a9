package scholar

import (
	"bytes"
	"context"
	"log/slog"
	"net/http"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/ports"
)

const (
	citationLinkSelector = ".gs_scl a"
	citedByPhrase        = "cited by"
)

// LinkExtractor inspects the citation detail page of a publication.
type LinkExtractor struct {
	fetcher      pageFetcher
	baseURL      string
	citationUser string
	logger       *slog.Logger
}

var _ ports.CitationInspector = (*LinkExtractor)(nil)

// NewLinkExtractor binds the Scholar host and the account owning the citation ids.
func NewLinkExtractor(client *http.Client, userAgent, baseURL, citationUser string, log *slog.Logger) *LinkExtractor {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &LinkExtractor{
		fetcher:      newPageFetcher(client, userAgent),
		baseURL:      baseURL,
		citationUser: citationUser,
		logger:       log,
	}
}

// Inspect scrapes the page of the first publication carrying a Scholar id.
// The boolean is false when no record qualifies or the page cannot be read.
func (l *LinkExtractor) Inspect(ctx context.Context, records *domain.RecordSet) (domain.CitationReport, bool) {
	scholarID := firstScholarID(records)
	if scholarID == "" {
		l.info("no scholar ids found in the sheet")
		return domain.CitationReport{}, false
	}

	pageURL, err := CitationURL(l.baseURL, l.citationUser, scholarID)
	if err != nil {
		l.warn("build citation url", "id", scholarID, "error", err)
		return domain.CitationReport{}, false
	}

	body, err := l.fetcher.fetch(ctx, pageURL)
	if err != nil {
		l.warn("fetch citation page", "url", pageURL, "error", err)
		return domain.CitationReport{}, false
	}

	report := domain.CitationReport{
		URL:             pageURL,
		ScholarID:       scholarID,
		CitedBySections: CountCitedBySections(body),
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		l.warn("parse citation page", "url", pageURL, "error", err)
		return report, true
	}
	report.LinkTexts = ExtractLinkTexts(doc)

	return report, true
}

func firstScholarID(records *domain.RecordSet) string {
	for _, pub := range domain.Publications(records) {
		if pub.ScholarID != "" {
			return pub.ScholarID
		}
	}
	return ""
}

// ExtractLinkTexts returns the stripped text of every anchor inside a
// citation container, in document order.
func ExtractLinkTexts(doc *goquery.Document) []string {
	texts := []string{}
	doc.Find(citationLinkSelector).Each(func(_ int, s *goquery.Selection) {
		for _, node := range s.Nodes {
			texts = append(texts, strippedText(node))
		}
	})
	return texts
}

// CountCitedBySections lower-cases the raw page and counts the segments
// produced by splitting it on "cited by".
func CountCitedBySections(body []byte) int {
	return len(strings.Split(strings.ToLower(string(body)), citedByPhrase))
}

// strippedText trims every descendant text node and joins them without separator.
func strippedText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			b.WriteString(strings.TrimSpace(node.Data))
			return
		}
		for child := node.FirstChild; child != nil; child = child.NextSibling {
			walk(child)
		}
	}
	walk(n)
	return b.String()
}

func (l *LinkExtractor) info(msg string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Info(msg, args...)
	}
}

func (l *LinkExtractor) warn(msg string, args ...interface{}) {
	if l.logger != nil {
		l.logger.Warn(msg, args...)
	}
}
