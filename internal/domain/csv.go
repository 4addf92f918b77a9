package domain

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
)

// ReadCSV parses comma-separated text whose first row is the header.
// Empty input yields a columnless set.
func ReadCSV(r io.Reader) (*RecordSet, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return NewRecordSet(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read csv header: %w", err)
	}

	set := NewRecordSet(header...)
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv row %d: %w", set.Len()+1, err)
		}
		set.Append(row...)
	}
	return set, nil
}

// WriteCSV writes the header and every row of set.
func WriteCSV(w io.Writer, set *RecordSet) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(set.Columns()); err != nil {
		return fmt.Errorf("write csv header: %w", err)
	}
	for i := 0; i < set.Len(); i++ {
		if err := writer.Write(set.rows[i]); err != nil {
			return fmt.Errorf("write csv row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}
