package table

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"personmatch/internal/fileutil"
)

// PersonIDColumn is the column prepended to every output row.
const PersonIDColumn = "person_id"

// Write emits tbl with ids prepended as the person_id column. ids must hold
// one identifier per record, in record order.
func Write(w io.Writer, tbl *Table, ids []int, opts Options) error {
	if len(ids) != tbl.Len() {
		return fmt.Errorf("write table: %d identifiers for %d records", len(ids), tbl.Len())
	}
	delim := opts.delimiter()
	if !ValidDelimiter(delim) {
		return fmt.Errorf("write table: invalid delimiter %q", delim)
	}

	writer := csv.NewWriter(w)
	writer.Comma = delim

	header := make([]string, 0, len(tbl.Header)+1)
	header = append(header, PersonIDColumn)
	header = append(header, tbl.Header...)
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	row := make([]string, 0, len(header))
	for i, rec := range tbl.Records {
		row = append(row[:0], strconv.Itoa(ids[i]))
		row = append(row, rec.values...)
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("write row %d: %w", i+1, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// WriteFile writes the annotated table to path atomically: readers see either
// the previous file or the complete new one.
func WriteFile(path string, tbl *Table, ids []int, opts Options) error {
	return fileutil.WriteAtomic(path, 0o644, func(w io.Writer) error {
		return Write(w, tbl, ids, opts)
	})
}
