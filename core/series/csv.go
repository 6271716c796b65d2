package series

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

var (
	// ErrEmptySeries is returned when an upload holds no values.
	ErrEmptySeries = errors.New("series has no values")
	// ErrMalformed matches every *ParseError.
	ErrMalformed = errors.New("malformed series")
)

// ParseError describes the first cell that could not be read as a number.
type ParseError struct {
	Line   int
	Column int
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Column == 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("line %d, column %d: invalid number %q", e.Line, e.Column, e.Value)
}

func (e *ParseError) Unwrap() []error { return []error{ErrMalformed, e.Err} }

// ParseCSV reads comma separated numeric values without a header. Rows are
// flattened in reading order and blank lines are skipped.
func ParseCSV(r io.Reader) ([]float64, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.Comment = '#'

	var values []float64
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				return nil, &ParseError{Line: pe.Line, Err: pe.Err}
			}
			return nil, err
		}
		for col, cell := range rec {
			cell = strings.TrimSpace(cell)
			if cell == "" && len(rec) > 1 && col == len(rec)-1 {
				// trailing delimiter
				continue
			}
			v, err := strconv.ParseFloat(cell, 64)
			if errors.Is(err, strconv.ErrRange) {
				// overflow parses to ±Inf
				err = nil
			}
			if err != nil {
				line, column := cr.FieldPos(col)
				return nil, &ParseError{Line: line, Column: column, Value: cell, Err: err}
			}
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return nil, ErrEmptySeries
	}
	return values, nil
}

// LoadCSV parses the series stored at path.
func LoadCSV(path string) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	values, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return values, nil
}
