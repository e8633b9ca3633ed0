package ioutils

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"

	"github.com/cockroachdb/errors"
)

// Table is an in-memory CSV table: a header row followed by data rows.
type Table struct {
	Header []string
	Rows   [][]string
}

// WriteCSV writes a table to path, creating the parent directory if needed.
//
// Example:
//
//	t := &Table{Header: []string{"track_id", "artist_id"}}
//	t.Rows = append(t.Rows, []string{"t1", "a1"})
//	err := WriteCSV("data/track_artists.csv", t)
func WriteCSV(path string, t *Table) error {
	if err := EnsureDir(filepath.Dir(path)); err != nil {
		return errors.Wrapf(err, "create directory for %s", path)
	}

	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "create %s", path)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(t.Header); err != nil {
		return errors.Wrapf(err, "write header of %s", path)
	}
	if err := w.WriteAll(t.Rows); err != nil {
		return errors.Wrapf(err, "write rows of %s", path)
	}
	return f.Close()
}

// Record is one CSV data row addressed by column name.
type Record map[string]string

// ReadCSV reads a CSV file with a header row into records.
//
// Every row must have as many fields as the header.
func ReadCSV(path string) ([]Record, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "open %s", path)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, errors.Wrapf(err, "parse %s", path)
	}
	if len(rows) == 0 {
		return nil, errors.Newf("%s: missing header row", path)
	}

	header := rows[0]
	records := make([]Record, 0, len(rows)-1)
	for _, row := range rows[1:] {
		rec := make(Record, len(header))
		for i, col := range header {
			rec[col] = row[i]
		}
		records = append(records, rec)
	}
	return records, nil
}

// Int parses a nullable integer column. An empty cell yields nil.
//
// Values written as floats ("72.0") are accepted and truncated, since
// spreadsheet tools tend to rewrite integer columns that way.
func (r Record) Int(col string) (*int, error) {
	v := r[col]
	if v == "" {
		return nil, nil
	}
	if n, err := strconv.Atoi(v); err == nil {
		return &n, nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return nil, errors.Wrapf(err, "column %s", col)
	}
	n := int(f)
	return &n, nil
}

// Bool parses a boolean column. An empty cell is false.
func (r Record) Bool(col string) (bool, error) {
	v := r[col]
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, errors.Wrapf(err, "column %s", col)
	}
	return b, nil
}

// NullableString returns nil for an empty cell.
func (r Record) NullableString(col string) *string {
	v, ok := r[col]
	if !ok || v == "" {
		return nil
	}
	return &v
}

// FormatInt renders a nullable integer; nil becomes an empty cell.
func FormatInt(v *int) string {
	if v == nil {
		return ""
	}
	return strconv.Itoa(*v)
}

// FormatFloat renders a float with the shortest exact representation.
func FormatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// FormatNullableFloat renders a nullable float; nil becomes missing.
func FormatNullableFloat(v *float64, missing string) string {
	if v == nil {
		return missing
	}
	return FormatFloat(*v)
}

// FormatString renders a nullable string; nil becomes an empty cell.
func FormatString(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}
