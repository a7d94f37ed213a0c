package services

import (
	"database/sql"
	"errors"
	"fmt"

	"ads-unifier/models"
	"ads-unifier/utils"
)

// ErrMissingColumn is returned when a source table lacks a column its
// platform mapping expects.
var ErrMissingColumn = errors.New("mapper: missing source column")

// naValues are the cell spellings read as absent, in addition to the empty cell.
var naValues = map[string]struct{}{
	"": {}, "#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {},
	"-NaN": {}, "-nan": {}, "1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {},
	"NA": {}, "NULL": {}, "NaN": {}, "None": {}, "n/a": {}, "nan": {}, "null": {},
}

// Mapper projects raw platform tables onto the unified schema.
type Mapper struct {
	logger *utils.Logger
}

// NewMapper creates a Mapper with the given logger.
func NewMapper(logger *utils.Logger) *Mapper {
	return &Mapper{logger: logger}
}

// Map returns a new table with one unified record per raw row, in source
// order. Columns the platform does not provide are absent on every row.
func (m *Mapper) Map(pm PlatformMapping, raw *models.RawTable) (*models.UnifiedTable, error) {
	// sources[i] is the raw column index feeding BaseColumns[i], or -1 for absent.
	sources := make([]int, len(models.BaseColumns))
	for i, col := range models.BaseColumns {
		sources[i] = -1
		src, ok := pm.Fields[col]
		if !ok {
			continue
		}
		idx := raw.Column(src)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %s export %q has no %q column (for %s)",
				ErrMissingColumn, pm.Platform, raw.Path, src, col)
		}
		sources[i] = idx
	}
	platformIdx := models.BaseIndex(models.ColPlatform)

	out := &models.UnifiedTable{Records: make([]*models.UnifiedRecord, 0, len(raw.Rows))}
	for rowNum, row := range raw.Rows {
		rec := &models.UnifiedRecord{Base: make([]sql.NullString, len(models.BaseColumns))}
		for i, idx := range sources {
			switch {
			case i == platformIdx:
				rec.Base[i] = sql.NullString{String: string(pm.Platform), Valid: true}
			case idx < 0:
				// absent
			case idx >= len(row):
				return nil, fmt.Errorf("%w: %s export %q row %d is too short",
					ErrMissingColumn, pm.Platform, raw.Path, rowNum+1)
			default:
				rec.Base[i] = cell(row[idx])
			}
		}
		out.Records = append(out.Records, rec)
	}

	m.logger.Info("[mapper] %s: mapped %d rows from %s", pm.Platform, out.Len(), raw.Path)
	return out, nil
}

func cell(v string) sql.NullString {
	if _, na := naValues[v]; na {
		return sql.NullString{}
	}
	return sql.NullString{String: v, Valid: true}
}
