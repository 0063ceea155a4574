package table

// Table is an in-memory delimited table: a header and its rows.
type Table struct {
	Header  []string
	Records []Record

	index map[string]int
}

// New builds a table from a header and rows. Rows shorter than the header are
// padded with empty values; rows are not copied.
func New(header []string, rows [][]string) *Table {
	t := &Table{
		Header: header,
		index:  headerIndex(header),
	}
	t.Records = make([]Record, 0, len(rows))
	for _, values := range rows {
		t.Records = append(t.Records, t.newRecord(values))
	}
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasColumn reports whether the header contains name.
func (t *Table) HasColumn(name string) bool {
	_, ok := t.index[name]
	return ok
}

func (t *Table) newRecord(values []string) Record {
	if len(values) < len(t.Header) {
		padded := make([]string, len(t.Header))
		copy(padded, values)
		values = padded
	}
	return Record{index: t.index, values: values}
}

// headerIndex maps each column name to its first position; later duplicates
// are reachable only positionally.
func headerIndex(header []string) map[string]int {
	index := make(map[string]int, len(header))
	for i, name := range header {
		if _, exists := index[name]; !exists {
			index[name] = i
		}
	}
	return index
}

// Record is one data row of a Table.
type Record struct {
	index  map[string]int
	values []string
}

// Value returns the value of the first column named field, or "" when the
// table has no such column. Names are case-sensitive.
func (r Record) Value(field string) string {
	i, ok := r.index[field]
	if !ok || i >= len(r.values) {
		return ""
	}
	return r.values[i]
}

// Values returns a copy of the row in header order.
func (r Record) Values() []string {
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out
}
