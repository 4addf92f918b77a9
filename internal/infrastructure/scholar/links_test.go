package scholar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"CiteScraper/internal/domain"
)

const citationHTML = `
<html><body>
  <div class="gs_scl">
    <div class="gsc_oci_field">Total citations</div>
    <div class="gsc_oci_value"><a href="/scholar?cites=1">Cited by 12</a></div>
  </div>
  <div class="gs_scl">
    <a href="/scholar?q=related">  Related <b> articles </b></a>
  </div>
  <a href="/outside">Not a citation link</a>
  <p>Cited by nobody else. CITED BY again.</p>
</body></html>`

func TestCitationURL(t *testing.T) {
	t.Parallel()

	u, err := CitationURL("https://scholar.google.com", "DY2D56IAAAAJ", "u5HHmVD_uO8C")
	if err != nil {
		t.Fatalf("CitationURL returned error: %v", err)
	}

	parsed, err := url.Parse(u)
	if err != nil {
		t.Fatalf("parse result: %v", err)
	}

	q := parsed.Query()
	if q.Get("view_op") != "view_citation" || q.Get("hl") != "en" {
		t.Fatalf("unexpected query: %s", parsed.RawQuery)
	}
	if q.Get("user") != "DY2D56IAAAAJ" {
		t.Fatalf("unexpected user: %s", q.Get("user"))
	}
	if q.Get("citation_for_view") != "DY2D56IAAAAJ:u5HHmVD_uO8C" {
		t.Fatalf("unexpected citation_for_view: %s", q.Get("citation_for_view"))
	}
}

func TestExtractLinkTexts(t *testing.T) {
	t.Parallel()

	texts := ExtractLinkTexts(mustDocument(t, citationHTML))

	if len(texts) != 2 {
		t.Fatalf("expected 2 link texts, got %d: %q", len(texts), texts)
	}
	if texts[0] != "Cited by 12" {
		t.Fatalf("unexpected first text: %q", texts[0])
	}
	if texts[1] != "Relatedarticles" {
		t.Fatalf("unexpected second text: %q", texts[1])
	}
}

func TestCountCitedBySections(t *testing.T) {
	t.Parallel()

	if got := CountCitedBySections(nil); got != 1 {
		t.Fatalf("expected 1 section for empty page, got %d", got)
	}
	if got := CountCitedBySections([]byte(citationHTML)); got != 4 {
		t.Fatalf("expected 4 sections, got %d", got)
	}
}

func TestLinkExtractorInspect(t *testing.T) {
	t.Parallel()

	queries := make(chan url.Values, 1)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		queries <- r.URL.Query()
		_, _ = w.Write([]byte(citationHTML))
	}))
	defer server.Close()

	records := domain.NewRecordSet("title", "category", "id_scholar")
	records.Append("No id", "journal", "")
	records.Append("First", "journal", "AAA")
	records.Append("Second", "journal", "BBB")

	extractor := NewLinkExtractor(server.Client(), "", server.URL, "DY2D56IAAAAJ", nil)
	report, ok := extractor.Inspect(context.Background(), records)
	if !ok {
		t.Fatalf("expected report")
	}

	gotQuery := <-queries
	if gotQuery.Get("citation_for_view") != "DY2D56IAAAAJ:AAA" {
		t.Fatalf("unexpected citation requested: %s", gotQuery.Get("citation_for_view"))
	}
	if report.ScholarID != "AAA" {
		t.Fatalf("unexpected scholar id: %s", report.ScholarID)
	}
	if len(report.LinkTexts) != 2 || report.CitedBySections != 4 {
		t.Fatalf("unexpected report: %+v", report)
	}
}

func TestLinkExtractorInspectWithoutScholarIDs(t *testing.T) {
	t.Parallel()

	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
	}))
	defer server.Close()

	extractor := NewLinkExtractor(server.Client(), "", server.URL, "DY2D56IAAAAJ", nil)

	withoutColumn := domain.NewRecordSet("title", "category")
	withoutColumn.Append("Paper", "journal")
	blankIDs := domain.NewRecordSet("title", "id_scholar")
	blankIDs.Append("Paper", "  ")

	for _, records := range []*domain.RecordSet{withoutColumn, blankIDs, domain.EmptyFor(domain.SheetPublications)} {
		if _, ok := extractor.Inspect(context.Background(), records); ok {
			t.Fatalf("expected no report for %v", records.Columns())
		}
	}
	if requests != 0 {
		t.Fatalf("expected no requests, got %d", requests)
	}
}
