// Package csvpreview turns comma-separated text into preview records.
//
// The format is deliberately simple: one header line, then one record per
// non-blank line, cells split on every comma. Quoting and escaped delimiters
// are not recognised.
package csvpreview

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"
)

// ParseErrorMessage is the text shown to the operator for any malformed input.
const ParseErrorMessage = "Failed to parse CSV file. Please check the format."

// ParseError reports input that could not be turned into records.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string { return ParseErrorMessage }

func (e *ParseError) Unwrap() error { return e.Err }

var (
	errNotText = errors.New("input is not valid UTF-8 text")
	errBinary  = errors.New("input contains NUL bytes")
)

// Parse splits raw into records. Line 0 supplies the headers. Each later
// non-blank line becomes a record whose id is its 1-based line index, unless an
// "id" column carries a value. Empty cells leave their field unset.
func Parse(raw string) ([]Record, error) {
	if !utf8.ValidString(raw) {
		return nil, &ParseError{Err: errNotText}
	}
	if strings.IndexByte(raw, 0) >= 0 {
		return nil, &ParseError{Err: errBinary}
	}

	lines := strings.Split(raw, "\n")
	headers := splitCells(lines[0])

	out := []Record{}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "" {
			continue
		}
		cells := splitCells(lines[i])
		rec := newRecord(strconv.Itoa(i))
		for col, header := range headers {
			if col >= len(cells) || cells[col] == "" {
				continue
			}
			rec.set(header, cells[col])
		}
		out = append(out, rec)
	}
	return out, nil
}

// ParseReader reads r to the end and parses the text. The read stops early
// when ctx is cancelled.
func ParseReader(ctx context.Context, r io.Reader) ([]Record, error) {
	var buf bytes.Buffer
	chunk := make([]byte, 32*1024)
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		n, err := r.Read(chunk)
		buf.Write(chunk[:n])
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, &ParseError{Err: err}
		}
	}
	return Parse(buf.String())
}

// Columns returns the preview header: the keys of the first record.
func Columns(records []Record) []string {
	if len(records) == 0 {
		return nil
	}
	return records[0].Keys()
}

func splitCells(line string) []string {
	cells := strings.Split(line, ",")
	for i := range cells {
		cells[i] = strings.TrimSpace(cells[i])
	}
	return cells
}
