package app

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CiteScraper/internal/config"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig(t *testing.T, serverURL string) config.Config {
	t.Helper()

	dir := t.TempDir()
	return config.Config{
		Sheets: config.SheetsConfig{
			DocumentID:         "doc-1",
			ExportBaseURL:      serverURL + "/sheets",
			ServiceAccountFile: filepath.Join(dir, "missing-key.json"),
			OAuthTokenFile:     filepath.Join(dir, "missing-token.json"),
			Providers:          []string{"service_account", "oauth", "public_export"},
		},
		Scholar: config.ScholarConfig{BaseURL: serverURL + "/scholar", ProfileID: "PROFILE", CitationUser: "OWNER"},
		Output:  config.OutputConfig{Dir: filepath.Join(dir, "out"), Dialect: "latex"},
		Sections: []config.SectionConfig{
			{Name: "journal-articles", Sheet: "pubs", Category: "journal", Style: "ordered"},
			{Name: "classes", Sheet: "classes", Category: "grad", Style: "bullet"},
		},
	}
}

func TestRunFallsThroughToPublicExport(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/sheets/") && r.URL.Query().Get("sheet") == "pubs":
			_, _ = w.Write([]byte("author,category,citation\nSmith,journal,**Smith J** published X (2020).\n"))
		case strings.HasPrefix(r.URL.Path, "/scholar/citations"):
			_, _ = w.Write([]byte(`<table id="gsc_rsb_st"><tr><td>Citations</td><td>7</td></tr><tr><td>h-index</td><td>2</td></tr></table>`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	cfg := testConfig(t, server.URL)
	application, err := New(cfg, quietLogger())
	require.NoError(t, err)
	defer application.Close()

	written, err := application.Run(context.Background(), "", "")
	require.NoError(t, err)
	require.Len(t, written, 3)

	journal, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "journal-articles.tex"))
	require.NoError(t, err)
	assert.Contains(t, string(journal), `\item \underline{\textbf{Smith J}} published X (2020).`)

	classes, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "classes.tex"))
	require.NoError(t, err)
	assert.Equal(t, "\\begin{itemize}\\item No data available\\end{itemize}\n", string(classes))

	stats, err := os.ReadFile(filepath.Join(cfg.Output.Dir, "stats.tex"))
	require.NoError(t, err)
	assert.Equal(t, "Citations: 7 | h-index: 2 | i10-index: 0\n", string(stats))
}

func TestNewWiresDatabaseProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://127.0.0.1:0")
	cfg.Database = config.DatabaseConfig{Driver: "sqlite", DSN: filepath.Join(t.TempDir(), "cv.db")}

	application, err := New(cfg, quietLogger())
	require.NoError(t, err)
	defer application.Close()

	assert.Equal(t, []string{"service_account", "oauth", "public_export", "database"}, application.Records.Providers())
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://127.0.0.1:0")
	cfg.Sheets.Providers = []string{"fax"}

	_, err := New(cfg, quietLogger())
	require.Error(t, err)
}

func TestPipelineRejectsBadStyleAndDialect(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t, "http://127.0.0.1:0")
	cfg.Sections = []config.SectionConfig{{Name: "x", Sheet: "pubs", Category: "journal", Style: "zigzag"}}

	application, err := New(cfg, quietLogger())
	require.NoError(t, err)

	_, err = application.Pipeline("")
	require.Error(t, err)

	_, err = application.Formatter("rtf")
	require.Error(t, err)
}
