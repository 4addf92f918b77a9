package usecase

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"CiteScraper/internal/domain"
	"CiteScraper/internal/format"
)

type fakeSource struct {
	sets  map[string]*domain.RecordSet
	loads []string
}

func (f *fakeSource) Load(_ context.Context, sheet string) *domain.RecordSet {
	f.loads = append(f.loads, sheet)
	if set, ok := f.sets[sheet]; ok {
		return set
	}
	return domain.EmptyFor(sheet)
}

type fakeStats struct {
	stats domain.CitationStats
	urls  []string
}

func (f *fakeStats) Fetch(_ context.Context, profileURL string) domain.CitationStats {
	f.urls = append(f.urls, profileURL)
	return f.stats
}

func newTestPipeline(t *testing.T, src *fakeSource, stats *fakeStats, profileURL string) *Pipeline {
	t.Helper()

	renderer, err := format.New(format.DialectLaTeX)
	require.NoError(t, err)

	deps := PipelineDeps{Source: src, Renderer: renderer}
	if stats != nil {
		deps.Stats = stats
	}

	return NewPipeline(deps, []Section{
		{Name: "journal-articles", Sheet: domain.SheetPublications, Category: "journal", Style: domain.StyleOrdered},
		{Name: "teaching", Sheet: domain.SheetTeaching, Category: "invited", Style: domain.StyleBullet},
	}, profileURL)
}

func TestPipelineBuildWritesFragments(t *testing.T) {
	t.Parallel()

	pubs := domain.NewRecordSet("author", "category", "citation")
	pubs.Append("Smith", "journal", "**Smith J** published X (2020).")

	src := &fakeSource{sets: map[string]*domain.RecordSet{domain.SheetPublications: pubs}}
	stats := &fakeStats{stats: domain.CitationStats{Citations: "10", HIndex: "2", I10Index: "1"}}
	pipeline := newTestPipeline(t, src, stats, "https://scholar.example/citations?user=abc")

	dir := t.TempDir()
	written, err := pipeline.Build(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(dir, "journal-articles.tex"),
		filepath.Join(dir, "teaching.tex"),
		filepath.Join(dir, "stats.tex"),
	}, written)
	assert.Equal(t, []string{domain.SheetPublications, domain.SheetTeaching}, src.loads)
	assert.Equal(t, []string{"https://scholar.example/citations?user=abc"}, stats.urls)

	journal, err := os.ReadFile(written[0])
	require.NoError(t, err)
	assert.Equal(t, "\\begin{enumerate}\n\\item \\underline{\\textbf{Smith J}} published X (2020).\n\\end{enumerate}\n", string(journal))

	teaching, err := os.ReadFile(written[1])
	require.NoError(t, err)
	assert.Equal(t, "\\begin{itemize}\\item No data available\\end{itemize}\n", string(teaching))

	summary, err := os.ReadFile(written[2])
	require.NoError(t, err)
	assert.Equal(t, "Citations: 10 | h-index: 2 | i10-index: 1\n", string(summary))
}

func TestPipelineSkipsStatsWithoutProfile(t *testing.T) {
	t.Parallel()

	stats := &fakeStats{stats: domain.DefaultCitationStats()}
	pipeline := newTestPipeline(t, &fakeSource{}, stats, "")

	written, err := pipeline.Build(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Len(t, written, 2)
	assert.Empty(t, stats.urls)
	assert.Equal(t, "Citations: 0 | h-index: 0 | i10-index: 0", pipeline.StatsLine(context.Background()))
}

func TestPipelineBuildRequiresDependencies(t *testing.T) {
	t.Parallel()

	_, err := NewPipeline(PipelineDeps{}, nil, "").Build(context.Background(), t.TempDir())
	require.Error(t, err)
}

func TestPipelineBuildFailsOnUnwritableDir(t *testing.T) {
	t.Parallel()

	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0o644))

	pipeline := newTestPipeline(t, &fakeSource{}, nil, "")
	_, err := pipeline.Build(context.Background(), filepath.Join(blocker, "out"))
	require.Error(t, err)
}
