// Package catalog reads and writes the tabular product and SKU catalogs.
// Tables are kept as strings keyed by column name so columns the rest of the
// program does not know about survive a read-append-write cycle.
package catalog

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/Veraticus/shelfsort/internal/common"
	"github.com/xuri/excelize/v2"
)

// Supported file extensions.
const (
	ExtCSV  = ".csv"
	ExtXLSX = ".xlsx"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Table is a rectangular sheet with a header row.
type Table struct {
	index  map[string]int
	Header []string
	Rows   [][]string
}

// NewTable creates an empty table with the given columns.
func NewTable(header ...string) *Table {
	t := &Table{Header: append([]string(nil), header...)}
	t.reindex()
	return t
}

func (t *Table) reindex() {
	t.index = make(map[string]int, len(t.Header))
	for i, name := range t.Header {
		key := columnKey(name)
		if _, dup := t.index[key]; !dup {
			t.index[key] = i
		}
	}
}

func columnKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Has reports whether the table has column.
func (t *Table) Has(column string) bool {
	_, ok := t.index[columnKey(column)]
	return ok
}

// RequireColumns fails with ErrMissingColumn naming every absent column.
func (t *Table) RequireColumns(columns ...string) error {
	var missing []string
	for _, c := range columns {
		if !t.Has(c) {
			missing = append(missing, c)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: %s", common.ErrMissingColumn, strings.Join(missing, ", "))
	}
	return nil
}

// Value returns the trimmed cell of row i in column, or "" when either is
// absent.
func (t *Table) Value(i int, column string) string {
	col, ok := t.index[columnKey(column)]
	if !ok || i < 0 || i >= len(t.Rows) || col >= len(t.Rows[i]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[i][col])
}

// Len returns the number of data rows.
func (t *Table) Len() int {
	return len(t.Rows)
}

// ensureColumn adds column to the header when missing and returns its index.
func (t *Table) ensureColumn(column string) int {
	if col, ok := t.index[columnKey(column)]; ok {
		return col
	}
	t.Header = append(t.Header, column)
	t.reindex()
	return len(t.Header) - 1
}

// AppendRow adds a row given as column values. Missing columns are created.
func (t *Table) AppendRow(values map[string]string, order []string) {
	for _, column := range order {
		t.ensureColumn(column)
	}
	for column := range values {
		t.ensureColumn(column)
	}

	row := make([]string, len(t.Header))
	for column, value := range values {
		row[t.index[columnKey(column)]] = value
	}
	t.Rows = append(t.Rows, row)
}

// padded returns the rows extended to the header width.
func (t *Table) padded() [][]string {
	rows := make([][]string, len(t.Rows))
	for i, r := range t.Rows {
		if len(r) >= len(t.Header) {
			rows[i] = r
			continue
		}
		rows[i] = make([]string, len(t.Header))
		copy(rows[i], r)
	}
	return rows
}

// Read loads a table from a .csv or .xlsx file. The first row is the header.
func Read(path string) (*Table, error) {
	ext := strings.ToLower(filepath.Ext(path))
	if ext != ExtCSV && ext != ExtXLSX {
		return nil, fmt.Errorf("%w: %s (expected %s or %s)", common.ErrUnsupportedFormat, path, ExtXLSX, ExtCSV)
	}

	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", common.ErrMissingFile, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}

	var records [][]string
	var err error
	if ext == ExtCSV {
		records, err = readCSV(path)
	} else {
		records, err = readXLSX(path)
	}
	if err != nil {
		return nil, err
	}

	return fromRecords(records), nil
}

func fromRecords(records [][]string) *Table {
	if len(records) == 0 {
		return NewTable()
	}

	t := NewTable(records[0]...)
	for _, r := range records[1:] {
		if isBlank(r) {
			continue
		}
		row := make([]string, len(t.Header))
		copy(row, r)
		t.Rows = append(t.Rows, row)
	}
	return t
}

func isBlank(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}

func readCSV(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	r := csv.NewReader(bytes.NewReader(bytes.TrimPrefix(data, utf8BOM)))
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return records, nil
}

func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, nil
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheets[0], path, err)
	}
	return rows, nil
}

// Write saves the table as .csv or .xlsx depending on the path extension.
// CSV output starts with a UTF-8 byte order mark so spreadsheet programs
// detect the encoding.
func Write(path string, t *Table) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ExtCSV:
		return writeCSV(path, t)
	case ExtXLSX:
		return writeXLSX(path, t)
	default:
		return fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, path)
	}
}

func writeCSV(path string, t *Table) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("%w: failed to create %s: %w", common.ErrPersistence, path, err)
	}
	defer f.Close()

	if err := encodeCSV(f, t); err != nil {
		return fmt.Errorf("%w: failed to write %s: %w", common.ErrPersistence, path, err)
	}
	return f.Close()
}

func encodeCSV(w io.Writer, t *Table) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return err
	}
	cw := csv.NewWriter(w)
	if err := cw.Write(t.Header); err != nil {
		return err
	}
	if err := cw.WriteAll(t.padded()); err != nil {
		return err
	}
	return cw.Error()
}

// numericColumns are written to spreadsheets as numbers.
var numericColumns = map[string]bool{
	"id":      true,
	"litrag":  true,
	"packqnt": true,
}

func writeXLSX(path string, t *Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetSheetRow(sheet, "A1", &t.Header); err != nil {
		return fmt.Errorf("%w: failed to write header: %w", common.ErrPersistence, err)
	}

	for i, row := range t.padded() {
		cells := make([]any, len(row))
		for col, value := range row {
			cells[col] = value
			if col < len(t.Header) && numericColumns[columnKey(t.Header[col])] {
				if n, ok := parseNumber(value); ok {
					cells[col] = n
				}
			}
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("%w: %w", common.ErrPersistence, err)
		}
		if err := f.SetSheetRow(sheet, cell, &cells); err != nil {
			return fmt.Errorf("%w: failed to write row %d: %w", common.ErrPersistence, i+1, err)
		}
	}

	if err := f.SaveAs(path); err != nil {
		return fmt.Errorf("%w: failed to save %s: %w", common.ErrPersistence, path, err)
	}
	return nil
}
