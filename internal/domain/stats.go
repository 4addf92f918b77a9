package domain

import (
	"fmt"
	"io"
)

// CitationStats holds profile counters exactly as scraped.
type CitationStats struct {
	Citations string
	HIndex    string
	I10Index  string
}

// DefaultCitationStats is returned whenever extraction fails.
func DefaultCitationStats() CitationStats {
	return CitationStats{Citations: "0", HIndex: "0", I10Index: "0"}
}

// String formats the counters as a single summary line.
func (c CitationStats) String() string {
	return fmt.Sprintf("Citations: %s | h-index: %s | i10-index: %s", c.Citations, c.HIndex, c.I10Index)
}

// CitationReport is the diagnostic output of a citation page inspection.
type CitationReport struct {
	URL             string
	ScholarID       string
	LinkTexts       []string
	CitedBySections int
}

// Print writes the report in a human-readable form.
func (r CitationReport) Print(w io.Writer) error {
	if _, err := fmt.Fprintln(w, "Citation links found:"); err != nil {
		return err
	}
	for _, text := range r.LinkTexts {
		if _, err := fmt.Fprintln(w, text); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(w, "\nFound %d 'cited by' sections\n", r.CitedBySections)
	return err
}
