// Package table reads and writes the delimited person tables that the resolver
// works on.
//
// Read parses a header row followed by data rows into a Table whose Records
// expose values by column name. A leading UTF-8 byte order mark is dropped and
// UTF-16 input with a byte order mark is transcoded to UTF-8; both CRLF and LF
// line endings are accepted. Any parse failure is reported as
// services.ErrMalformedInput so callers can stop before producing output.
//
// Write emits the table with a person_id column prepended, keeping the input
// column order and row order. WriteFile does so atomically.
package table
