package domain

import (
	"fmt"
	"math"
	"strings"
)

// PublicationRecord is the typed view of a row of the pubs sheet.
type PublicationRecord struct {
	Author      string
	Year        string
	Title       string
	JournalAbbv string
	Number      string
	DOI         string
	PubDate     string
	Category    string
	ScholarID   string
	Citation    string
}

// PublicationFromRecord maps a generic row onto PublicationRecord.
func PublicationFromRecord(rec Record) PublicationRecord {
	return PublicationRecord{
		Author:      rec["author"],
		Year:        rec["year"],
		Title:       rec["title"],
		JournalAbbv: rec["journal_abbv"],
		Number:      rec["number"],
		DOI:         rec["doi"],
		PubDate:     rec["pub_date"],
		Category:    rec[ColumnCategory],
		ScholarID:   strings.TrimSpace(rec[ColumnScholarID]),
		Citation:    rec[ColumnCitation],
	}
}

// Publications converts every row of the set.
func Publications(set *RecordSet) []PublicationRecord {
	out := make([]PublicationRecord, 0, set.Len())
	for i := 0; i < set.Len(); i++ {
		out = append(out, PublicationFromRecord(set.Record(i)))
	}
	return out
}

// CellString renders a raw cell value, mapping nil and NaN to "".
func CellString(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	case float64:
		if math.IsNaN(v) {
			return ""
		}
		return fmt.Sprint(v)
	default:
		return fmt.Sprint(v)
	}
}
