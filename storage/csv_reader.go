package storage

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"ads-unifier/models"
)

// ErrEmptyInput is returned for an input file without a header row.
var ErrEmptyInput = errors.New("csv: input has no header row")

const utf8BOM = "\ufeff"

// CSVReader loads platform exports from a single directory.
type CSVReader struct {
	dir string
}

// NewCSVReader creates a reader rooted at dir.
func NewCSVReader(dir string) *CSVReader {
	return &CSVReader{dir: dir}
}

// Read parses the named file into a RawTable, keeping the source column
// names and row order. No schema validation happens here.
func (r *CSVReader) Read(name string) (*models.RawTable, error) {
	path := filepath.Join(r.dir, name)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csv: open %q: %w", path, err)
	}
	defer f.Close()

	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("csv: parse %q: %w", path, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrEmptyInput, path)
	}

	headers := records[0]
	if len(headers) > 0 {
		headers[0] = strings.TrimPrefix(headers[0], utf8BOM)
	}

	return &models.RawTable{
		Path:    path,
		Headers: headers,
		Rows:    records[1:],
	}, nil
}
