package table

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"

	"personmatch/internal/services"
)

const stageLoad = "load"

// Options controls how tables are parsed and written.
type Options struct {
	// Delimiter separates fields. Zero means a comma.
	Delimiter rune
	// LazyQuotes tolerates stray quotes inside unquoted fields.
	LazyQuotes bool
}

func (o Options) delimiter() rune {
	if o.Delimiter == 0 {
		return ','
	}
	return o.Delimiter
}

// ValidDelimiter reports whether r can separate fields.
func ValidDelimiter(r rune) bool {
	return r != 0 && r != '"' && r != '\r' && r != '\n' && r != utf8.RuneError && utf8.ValidRune(r)
}

// Load opens path and parses it with Read.
func Load(path string, opts Options) (*Table, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, services.Wrap(services.ErrInvalidArgument, stageLoad, "open", path, err)
	}
	defer file.Close()

	tbl, err := Read(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return tbl, nil
}

// Read parses a delimited table whose first row is the header.
func Read(r io.Reader, opts Options) (*Table, error) {
	delim := opts.delimiter()
	if !ValidDelimiter(delim) {
		return nil, services.Wrap(services.ErrInvalidArgument, stageLoad, "delimiter", fmt.Sprintf("invalid delimiter %q", delim), nil)
	}

	reader := csv.NewReader(transform.NewReader(r, unicode.BOMOverride(transform.Nop)))
	reader.Comma = delim
	reader.LazyQuotes = opts.LazyQuotes
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, services.Wrap(services.ErrMalformedInput, stageLoad, "header", "missing header row", nil)
		}
		return nil, services.Wrap(services.ErrMalformedInput, stageLoad, "header", "", err)
	}

	var rows [][]string
	for {
		values, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, services.Wrap(services.ErrMalformedInput, stageLoad, "parse", "", err)
		}
		if len(values) > len(header) {
			line, _ := reader.FieldPos(0)
			return nil, services.Wrap(services.ErrMalformedInput, stageLoad, "parse",
				fmt.Sprintf("line %d has %d fields, header has %d", line, len(values), len(header)), nil)
		}
		rows = append(rows, values)
	}
	return New(header, rows), nil
}
