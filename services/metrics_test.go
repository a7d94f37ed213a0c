package services

import (
	"database/sql"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ads-unifier/models"
)

func ns(v string) sql.NullString { return sql.NullString{String: v, Valid: true} }

func record(impressions, clicks, cost, conversions string) *models.UnifiedRecord {
	r := &models.UnifiedRecord{Base: make([]sql.NullString, len(models.BaseColumns))}
	set := func(col, v string) {
		if v != "" {
			r.Base[models.BaseIndex(col)] = ns(v)
		}
	}
	set(models.ColPlatform, "Google")
	set(models.ColImpressions, impressions)
	set(models.ColClicks, clicks)
	set(models.ColCost, cost)
	set(models.ColConversions, conversions)
	return r
}

func assertDecimal(t *testing.T, want string, got decimal.NullDecimal) {
	t.Helper()
	require.True(t, got.Valid, "expected %s, got absent", want)
	assert.True(t, decimal.RequireFromString(want).Equal(got.Decimal), "want %s, got %s", want, got.Decimal)
}

func TestMetricsKnownValues(t *testing.T) {
	in := &models.UnifiedTable{Records: []*models.UnifiedRecord{record("1000", "20", "50.00", "4")}}
	out := NewMetricsCalculator(newTestLogger()).Apply(in)

	require.Equal(t, 1, out.Len())
	d := out.Records[0].Derived
	require.Len(t, d, len(models.DerivedColumns))
	assertDecimal(t, "0.02", d[0])
	assertDecimal(t, "2.50", d[1])
	assertDecimal(t, "12.50", d[2])
	assertDecimal(t, "0.2", d[3])
}

func TestMetricsZeroClicks(t *testing.T) {
	in := &models.UnifiedTable{Records: []*models.UnifiedRecord{record("1000", "0", "50.00", "4")}}
	d := NewMetricsCalculator(newTestLogger()).Apply(in).Records[0].Derived

	assertDecimal(t, "0", d[0])
	assert.False(t, d[1].Valid, "calc_cpc should be absent")
	assertDecimal(t, "12.5", d[2])
	assert.False(t, d[3].Valid, "calc_conversion_rate should be absent")
}

func TestMetricsZeroOverZero(t *testing.T) {
	in := &models.UnifiedTable{Records: []*models.UnifiedRecord{record("0", "0", "0", "0")}}
	d := NewMetricsCalculator(newTestLogger()).Apply(in).Records[0].Derived

	for i, v := range d {
		assert.False(t, v.Valid, "%s should be absent", models.DerivedColumns[i])
	}
}

func TestMetricsAbsentOperand(t *testing.T) {
	in := &models.UnifiedTable{Records: []*models.UnifiedRecord{record("1000", "20", "50", "")}}
	d := NewMetricsCalculator(newTestLogger()).Apply(in).Records[0].Derived

	assertDecimal(t, "0.02", d[0])
	assertDecimal(t, "2.5", d[1])
	assert.False(t, d[2].Valid)
	assert.False(t, d[3].Valid)
}

func TestRatioRoundsHalfToEven(t *testing.T) {
	tests := []struct {
		num, den string
		places   int32
		want     string
	}{
		{"1", "8", 2, "0.12"},
		{"3", "8", 2, "0.38"},
		{"1", "3", 6, "0.333333"},
		{"2", "3", 2, "0.67"},
		{"5", "1", 2, "5"},
		{"-1", "8", 2, "-0.12"},
		{"3", "-8", 2, "-0.38"},
		{"-0.006", "1", 2, "-0.01"},
		{"0.004", "1", 2, "0"},
		// just above a half-way point beyond 16 significant digits
		{"0.12500000000000000001", "1", 2, "0.13"},
		{"0.37499999999999999999", "1", 2, "0.37"},
		{"1", "0.12499999999999999999999", 0, "8"},
	}

	for _, tt := range tests {
		got := Ratio(ns(tt.num), ns(tt.den), tt.places)
		if !got.Valid {
			t.Errorf("Ratio(%s, %s, %d): got absent, want %s", tt.num, tt.den, tt.places, tt.want)
			continue
		}
		if want := decimal.RequireFromString(tt.want); !got.Decimal.Equal(want) {
			t.Errorf("Ratio(%s, %s, %d) = %s; want %s", tt.num, tt.den, tt.places, got.Decimal, tt.want)
		}
	}
}

func TestRatioNonNumeric(t *testing.T) {
	assert.False(t, Ratio(ns("abc"), ns("2"), 2).Valid)
	assert.False(t, Ratio(ns("1"), ns("n/a"), 2).Valid)
}

func TestMetricsDoesNotMutateInput(t *testing.T) {
	in := &models.UnifiedTable{Records: []*models.UnifiedRecord{record("1000", "20", "50", "4")}}
	out := NewMetricsCalculator(newTestLogger()).Apply(in)

	assert.Nil(t, in.Records[0].Derived)
	assert.NotSame(t, in.Records[0], out.Records[0])
	assert.True(t, out.HasDerived())
}
