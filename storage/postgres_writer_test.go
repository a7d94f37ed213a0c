package storage

import (
	"database/sql"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-unifier/models"
)

func TestInsertBatchPlaceholders(t *testing.T) {
	batch := []*models.UnifiedRecord{sampleRecord(), sampleRecord()}
	query, args := insertBatch(100, batch)

	width := len(models.Columns()) + 1
	require.Len(t, args, 2*width)
	assert.True(t, strings.HasPrefix(query, "INSERT INTO unified_ads_performance (row_num, date, platform,"))
	assert.Contains(t, query, "($1,$2,")
	assert.Contains(t, query, "($33,$34,")
	assert.True(t, strings.HasSuffix(query, "$64)"))

	assert.Equal(t, 100, args[0])
	assert.Equal(t, 101, args[width])
}

func TestRecordArgsAbsentValues(t *testing.T) {
	args := recordArgs(0, sampleRecord())

	campaignID := args[1+models.BaseIndex(models.ColCampaignID)].(sql.NullString)
	assert.False(t, campaignID.Valid)

	ctr := args[1+len(models.BaseColumns)].(decimal.NullDecimal)
	assert.True(t, ctr.Valid)

	cpc := args[2+len(models.BaseColumns)].(decimal.NullDecimal)
	assert.False(t, cpc.Valid)
}

func TestRecordArgsWithoutDerived(t *testing.T) {
	r := sampleRecord()
	r.Derived = nil

	args := recordArgs(0, r)
	require.Len(t, args, 1+len(models.Columns()))
	assert.Nil(t, args[len(args)-1])
}
