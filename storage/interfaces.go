package storage

import "ads-unifier/models"

// UnifiedWriter is the interface any sink for the final table must satisfy.
type UnifiedWriter interface {
	Write(table *models.UnifiedTable) error
	Close() error
}

// RawTableReader loads one platform export by file name.
type RawTableReader interface {
	Read(name string) (*models.RawTable, error)
}
