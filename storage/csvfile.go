package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
)

const (
	// DateLayout is the day/month/year layout used for every date field.
	DateLayout = "2/1/2006"

	fieldDelimiter = ','
)

// lineError carries the line a parse failure happened on up to the store.
type lineError struct {
	line int
	err  error
}

func (e *lineError) Error() string { return e.err.Error() }

func (e *lineError) Unwrap() error { return e.err }

// readRecords opens path, skips its header line and calls fn for every
// following record in file order. It stops at the first error.
func readRecords(path string, fn func(record []string) error) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.Comma = fieldDelimiter
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	// The header is never data and is not checked.
	if _, err := r.Read(); err != nil {
		if err == io.EOF {
			return nil
		}
		return fmt.Errorf("reading header: %w", err)
	}

	for {
		record, err := r.Read()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			var perr *csv.ParseError
			if errors.As(err, &perr) {
				return &lineError{line: perr.Line, err: fmt.Errorf("reading record: %w", perr.Err)}
			}
			return fmt.Errorf("reading record: %w", err)
		}

		line, _ := r.FieldPos(0)
		if err := fn(record); err != nil {
			return &lineError{line: line, err: err}
		}
	}
}

// writeRecords truncates path and writes header followed by rows, every line
// ending in CRLF.
func writeRecords(path string, header []string, rows [][]string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("closing file: %w", cerr)
		}
	}()

	w := csv.NewWriter(f)
	w.Comma = fieldDelimiter
	w.UseCRLF = true

	if err := w.Write(header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if err := w.WriteAll(rows); err != nil {
		return fmt.Errorf("writing records: %w", err)
	}
	return nil
}

func newLoadError(path string, err error) *LoadError {
	le := &LoadError{Path: path, Err: err}
	var lerr *lineError
	if errors.As(err, &lerr) {
		le.Line = lerr.line
		le.Err = lerr.err
	}
	return le
}
