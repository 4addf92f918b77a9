package sheets

import (
	"context"
	"fmt"

	"google.golang.org/api/sheets/v4"

	"CiteScraper/internal/domain"
)

// DefaultDocumentID is the CV workbook.
const DefaultDocumentID = "1yEYPdjQNqIw_lrOjUPDKjx9wMfzTeYrcdrtSDRj6Zhw"

const readonlyScope = sheets.SpreadsheetsReadonlyScope

// readWorksheet loads every populated row of a worksheet through the Sheets API.
func readWorksheet(ctx context.Context, svc *sheets.Service, documentID, sheet string) (*domain.RecordSet, error) {
	resp, err := svc.Spreadsheets.Values.Get(documentID, sheet).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("read worksheet %s: %w", sheet, err)
	}
	return valuesToRecordSet(resp.Values), nil
}

// valuesToRecordSet treats the first row as the header and every later row
// as a record. Trailing empty cells omitted by the API become "".
func valuesToRecordSet(values [][]interface{}) *domain.RecordSet {
	if len(values) == 0 {
		return domain.NewRecordSet()
	}

	header := make([]string, len(values[0]))
	for i, cell := range values[0] {
		header[i] = domain.CellString(cell)
	}

	set := domain.NewRecordSet(header...)
	for _, row := range values[1:] {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = domain.CellString(cell)
		}
		set.Append(cells...)
	}
	return set
}
