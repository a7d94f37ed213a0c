package services

import (
	"database/sql"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"ads-unifier/models"
	"ads-unifier/utils"
)

// Combiner concatenates mapped platform tables and orders the result.
type Combiner struct {
	logger *utils.Logger
}

// NewCombiner creates a Combiner with the given logger.
func NewCombiner(logger *utils.Logger) *Combiner {
	return &Combiner{logger: logger}
}

// Combine appends the tables in argument order, then stable-sorts by
// (date, platform, campaign_id). Rows equal on all three keep their
// concatenation order.
func (c *Combiner) Combine(tables ...*models.UnifiedTable) *models.UnifiedTable {
	total := 0
	for _, t := range tables {
		total += t.Len()
	}

	out := &models.UnifiedTable{Records: make([]*models.UnifiedRecord, 0, total)}
	for _, t := range tables {
		if t == nil {
			continue
		}
		out.Records = append(out.Records, t.Records...)
	}

	sort.SliceStable(out.Records, func(i, j int) bool {
		return lessRecord(out.Records[i], out.Records[j])
	})

	c.logger.Info("[combiner] Combined %d tables into %d rows", len(tables), out.Len())
	return out
}

func lessRecord(a, b *models.UnifiedRecord) bool {
	if c := compareText(a.Get(models.ColDate), b.Get(models.ColDate)); c != 0 {
		return c < 0
	}
	if c := compareText(a.Get(models.ColPlatform), b.Get(models.ColPlatform)); c != 0 {
		return c < 0
	}
	return compareID(a.Get(models.ColCampaignID), b.Get(models.ColCampaignID)) < 0
}

// compareText orders present values lexicographically and absent values last.
func compareText(a, b sql.NullString) int {
	switch {
	case !a.Valid && !b.Valid:
		return 0
	case !a.Valid:
		return 1
	case !b.Valid:
		return -1
	}
	return strings.Compare(a.String, b.String)
}

// compareID orders campaign ids in three bands: numeric ids by value, then
// other ids by text, then absent ids. "9" sorts before "10".
func compareID(a, b sql.NullString) int {
	if c := idBand(a) - idBand(b); c != 0 {
		return c
	}
	if idBand(a) == bandNumeric {
		da, _ := decimal.NewFromString(a.String)
		db, _ := decimal.NewFromString(b.String)
		if c := da.Cmp(db); c != 0 {
			return c
		}
	}
	return strings.Compare(a.String, b.String)
}

const (
	bandNumeric = iota
	bandText
	bandAbsent
)

func idBand(v sql.NullString) int {
	if !v.Valid {
		return bandAbsent
	}
	if _, err := decimal.NewFromString(v.String); err != nil {
		return bandText
	}
	return bandNumeric
}
