// Package tsv reads the tab-separated resources that describe the charted
// map: sector lists and world lists.
package tsv

import (
	"bufio"
	"io"
	"slices"
	"strconv"
	"strings"

	"go.trai.ch/starmap/internal/core/domain"
	"go.trai.ch/zerr"
)

const maxLineSize = 1 << 20

// Record is one data line, keyed by header name.
type Record struct {
	Line   int
	Fields map[string]string
}

// Get returns the value of col. Columns past the end of a short line are absent.
func (r Record) Get(col string) (string, bool) {
	v, ok := r.Fields[col]
	return v, ok
}

// Require returns the value of col or ErrMissingColumn.
func (r Record) Require(col string) (string, error) {
	v, ok := r.Fields[col]
	if !ok {
		err := zerr.With(zerr.Wrap(domain.ErrMissingColumn, "field absent"), "column", col)
		return "", zerr.With(err, "line", r.Line)
	}
	return v, nil
}

// Int parses col as a base-10 integer.
func (r Record) Int(col string) (int, error) {
	v, err := r.Require(col)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		err := zerr.With(zerr.Wrap(domain.ErrParse, "invalid integer"), "column", col)
		err = zerr.With(err, "line", r.Line)
		return 0, zerr.With(err, "value", v)
	}
	return n, nil
}

// Table is a parsed resource.
type Table struct {
	Header  []string
	Records []Record
}

// RequireColumns fails with ErrMissingColumn unless every col is in the header.
func (t *Table) RequireColumns(cols ...string) error {
	for _, col := range cols {
		if !slices.Contains(t.Header, col) {
			return zerr.With(zerr.Wrap(domain.ErrMissingColumn, "column not in header"), "column", col)
		}
	}
	return nil
}

// Read parses tab-separated text. Blank lines and lines starting with '#'
// are skipped; the first remaining line is the header. Values are paired
// with header names by position: a short line leaves the trailing columns
// absent and a long line drops its extra values.
func Read(r io.Reader) (*Table, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	t := &Table{}
	line := 0
	for scanner.Scan() {
		line++
		text := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(text) == "" || strings.HasPrefix(text, "#") {
			continue
		}

		values := strings.Split(text, "\t")
		if t.Header == nil {
			t.Header = make([]string, len(values))
			for i, v := range values {
				t.Header[i] = strings.TrimSpace(v)
			}
			continue
		}

		rec := Record{Line: line, Fields: make(map[string]string, len(t.Header))}
		for i, v := range values[:min(len(values), len(t.Header))] {
			rec.Fields[t.Header[i]] = strings.TrimSpace(v)
		}
		t.Records = append(t.Records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, zerr.With(zerr.Wrap(domain.ErrResourceReadFailed, err.Error()), "line", line)
	}
	return t, nil
}
