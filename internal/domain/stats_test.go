package domain

import (
	"bytes"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCitationStatsString(t *testing.T) {
	t.Parallel()

	stats := CitationStats{Citations: "1,234", HIndex: "17", I10Index: "25"}
	assert.Equal(t, "Citations: 1,234 | h-index: 17 | i10-index: 25", stats.String())
	assert.Equal(t, "Citations: 0 | h-index: 0 | i10-index: 0", DefaultCitationStats().String())
}

func TestCitationReportPrint(t *testing.T) {
	t.Parallel()

	report := CitationReport{LinkTexts: []string{"Cited by 12", "Related articles"}, CitedBySections: 3}

	var buf bytes.Buffer
	require.NoError(t, report.Print(&buf))
	assert.Equal(t, "Citation links found:\nCited by 12\nRelated articles\n\nFound 3 'cited by' sections\n", buf.String())
}

func TestCellString(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "", CellString(nil))
	assert.Equal(t, "", CellString(math.NaN()))
	assert.Equal(t, "2020", CellString(float64(2020)))
	assert.Equal(t, "x", CellString([]byte("x")))
	assert.Equal(t, "42", CellString(int64(42)))
}
