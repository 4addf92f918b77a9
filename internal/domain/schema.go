package domain

// Sheet names of the CV workbook.
const (
	SheetPublications = "pubs"
	SheetAdvising     = "advising"
	SheetClasses      = "classes"
	SheetTeaching     = "teaching"
)

// Well-known column names.
const (
	ColumnCategory  = "category"
	ColumnCitation  = "citation"
	ColumnScholarID = "id_scholar"
)

var schemas = map[string][]string{
	SheetPublications: {"author", "year", "title", "journal_abbv", "number", "doi", "pub_date", "category"},
	SheetAdvising:     {"name", "title", "institution", "date_start", "date_stop", "defense_date", "complete", "category"},
	SheetClasses:      {"univ", "number", "name", "type", "semester", "level"},
	SheetTeaching:     {"title", "host", "location", "date", "with", "url", "category"},
}

// Schema returns the fixed column list for a known sheet.
func Schema(sheet string) ([]string, bool) {
	cols, ok := schemas[sheet]
	if !ok {
		return nil, false
	}
	return append([]string(nil), cols...), true
}

// EmptyFor returns a row-less set carrying the sheet's schema,
// or a columnless set when the sheet is unknown.
func EmptyFor(sheet string) *RecordSet {
	cols, _ := Schema(sheet)
	return NewRecordSet(cols...)
}

// ListStyle selects numbered or unnumbered list output.
type ListStyle string

const (
	StyleOrdered ListStyle = "ordered"
	StyleBullet  ListStyle = "bullet"
)
