package domain

// Record is a single row keyed by column name.
type Record map[string]string

// RecordSet is an ordered, columnar table of string cells.
// An empty string marks a missing value.
type RecordSet struct {
	columns []string
	index   map[string]int
	rows    [][]string
}

// NewRecordSet builds an empty set with the given columns.
func NewRecordSet(columns ...string) *RecordSet {
	s := &RecordSet{
		columns: append([]string(nil), columns...),
		index:   make(map[string]int, len(columns)),
	}
	for i, col := range columns {
		if _, ok := s.index[col]; !ok {
			s.index[col] = i
		}
	}
	return s
}

// Columns returns a copy of the column names in order.
func (s *RecordSet) Columns() []string {
	if s == nil {
		return nil
	}
	return append([]string(nil), s.columns...)
}

// HasColumn reports whether the set carries the named column.
func (s *RecordSet) HasColumn(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.index[name]
	return ok
}

// Len returns the number of rows.
func (s *RecordSet) Len() int {
	if s == nil {
		return 0
	}
	return len(s.rows)
}

// Empty reports whether the set has no rows or no columns.
func (s *RecordSet) Empty() bool {
	return s.Len() == 0 || len(s.columns) == 0
}

// Append adds a row positionally. Short rows are padded, long rows truncated.
func (s *RecordSet) Append(values ...string) {
	row := make([]string, len(s.columns))
	copy(row, values)
	s.rows = append(s.rows, row)
}

// AppendRecord adds a row by column name; unknown keys are ignored.
func (s *RecordSet) AppendRecord(rec Record) {
	row := make([]string, len(s.columns))
	for col, value := range rec {
		if i, ok := s.index[col]; ok {
			row[i] = value
		}
	}
	s.rows = append(s.rows, row)
}

// Value returns the cell at row/column, or "" when either is absent.
func (s *RecordSet) Value(row int, column string) string {
	if s == nil || row < 0 || row >= len(s.rows) {
		return ""
	}
	i, ok := s.index[column]
	if !ok {
		return ""
	}
	return s.rows[row][i]
}

// Column returns a copy of every value of the named column in row order.
func (s *RecordSet) Column(name string) []string {
	if !s.HasColumn(name) {
		return nil
	}
	i := s.index[name]
	values := make([]string, 0, len(s.rows))
	for _, row := range s.rows {
		values = append(values, row[i])
	}
	return values
}

// Record returns the row at position i keyed by column name.
func (s *RecordSet) Record(i int) Record {
	if s == nil || i < 0 || i >= len(s.rows) {
		return nil
	}
	rec := make(Record, len(s.columns))
	for col, idx := range s.index {
		rec[col] = s.rows[i][idx]
	}
	return rec
}

// Filter returns an independent copy holding the rows accepted by keep.
func (s *RecordSet) Filter(keep func(Record) bool) *RecordSet {
	out := NewRecordSet(s.Columns()...)
	for i := 0; i < s.Len(); i++ {
		if keep(s.Record(i)) {
			out.rows = append(out.rows, append([]string(nil), s.rows[i]...))
		}
	}
	return out
}

// Transform rewrites every value of column in place.
func (s *RecordSet) Transform(column string, fn func(string) string) {
	if !s.HasColumn(column) {
		return
	}
	i := s.index[column]
	for _, row := range s.rows {
		row[i] = fn(row[i])
	}
}
