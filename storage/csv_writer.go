package storage

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"ads-unifier/models"
)

// CSVWriter writes the unified table to a CSV file.
type CSVWriter struct {
	file   *os.File
	writer *csv.Writer
}

// NewCSVWriter creates (or truncates) the CSV file at the given path and
// writes the header row. Intermediate directories are created automatically.
func NewCSVWriter(path string) (*CSVWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("csv: create output dir: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("csv: create file %q: %w", path, err)
	}

	w := csv.NewWriter(f)
	if err := w.Write(models.Columns()); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("csv: write header: %w", err)
	}

	return &CSVWriter{file: f, writer: w}, nil
}

// Write appends every record of the table. Absent values become empty fields.
func (c *CSVWriter) Write(table *models.UnifiedTable) error {
	for _, r := range table.Records {
		if err := c.writer.Write(FormatRecord(r)); err != nil {
			return fmt.Errorf("csv: write row: %w", err)
		}
	}

	c.writer.Flush()
	return c.writer.Error()
}

// Close flushes and closes the underlying file.
func (c *CSVWriter) Close() error {
	c.writer.Flush()
	if err := c.writer.Error(); err != nil {
		_ = c.file.Close()
		return fmt.Errorf("csv: flush: %w", err)
	}
	return c.file.Close()
}

// FormatRecord renders a record in output column order.
func FormatRecord(r *models.UnifiedRecord) []string {
	row := make([]string, 0, len(models.BaseColumns)+len(models.DerivedColumns))
	for i := range models.BaseColumns {
		if i < len(r.Base) && r.Base[i].Valid {
			row = append(row, r.Base[i].String)
		} else {
			row = append(row, "")
		}
	}
	for i := range models.DerivedColumns {
		if i < len(r.Derived) && r.Derived[i].Valid {
			row = append(row, r.Derived[i].Decimal.String())
		} else {
			row = append(row, "")
		}
	}
	return row
}
