package services

import (
	"database/sql"

	"github.com/shopspring/decimal"

	"ads-unifier/models"
	"ads-unifier/utils"
)

// ratioSpec describes one derived column as numerator / denominator,
// rounded half-to-even to places decimals.
type ratioSpec struct {
	column      string
	numerator   string
	denominator string
	places      int32
}

// derivedRatios is ordered like models.DerivedColumns.
var derivedRatios = []ratioSpec{
	{models.ColCalcCTR, models.ColClicks, models.ColImpressions, 6},
	{models.ColCalcCPC, models.ColCost, models.ColClicks, 2},
	{models.ColCalcCPA, models.ColCost, models.ColConversions, 2},
	{models.ColCalcConversionRate, models.ColConversions, models.ColClicks, 6},
}

// MetricsCalculator adds the derived ratio columns.
type MetricsCalculator struct {
	logger *utils.Logger
}

// NewMetricsCalculator creates a MetricsCalculator with the given logger.
func NewMetricsCalculator(logger *utils.Logger) *MetricsCalculator {
	return &MetricsCalculator{logger: logger}
}

// Apply returns a new table whose records carry the derived columns. A zero,
// absent or non-numeric operand yields an absent value for that column only.
func (m *MetricsCalculator) Apply(t *models.UnifiedTable) *models.UnifiedTable {
	out := &models.UnifiedTable{Records: make([]*models.UnifiedRecord, 0, t.Len())}
	undefined := 0

	for _, r := range t.Records {
		rec := r.Clone()
		rec.Derived = make([]decimal.NullDecimal, len(derivedRatios))
		for i, spec := range derivedRatios {
			rec.Derived[i] = Ratio(r.Get(spec.numerator), r.Get(spec.denominator), spec.places)
			if !rec.Derived[i].Valid {
				undefined++
			}
		}
		out.Records = append(out.Records, rec)
	}

	if undefined > 0 {
		m.logger.Debug("[metrics] %d derived values left empty (zero or missing operand)", undefined)
	}
	m.logger.Info("[metrics] Computed %d derived columns for %d rows", len(derivedRatios), out.Len())
	return out
}

// Ratio divides two unified fields and rounds the exact quotient half-to-even.
func Ratio(num, den sql.NullString, places int32) decimal.NullDecimal {
	n, ok := parseNumber(num)
	if !ok {
		return decimal.NullDecimal{}
	}
	d, ok := parseNumber(den)
	if !ok || d.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: divRoundBank(n, d, places), Valid: true}
}

// divRoundBank computes n/d rounded half-to-even at places without an
// intermediate rounding step. QuoRem truncates toward zero and leaves a
// remainder r with |r| < |d|*10^-places.
func divRoundBank(n, d decimal.Decimal, places int32) decimal.Decimal {
	q, r := n.QuoRem(d, places)
	if r.IsZero() {
		return q
	}

	ulp := decimal.New(1, -places)
	half := r.Abs().Mul(decimal.NewFromInt(2)).Cmp(d.Abs().Mul(ulp))
	odd := q.Abs().Shift(places).BigInt().Bit(0) == 1
	if half < 0 || (half == 0 && !odd) {
		return q
	}
	if n.Sign()*d.Sign() < 0 {
		return q.Sub(ulp)
	}
	return q.Add(ulp)
}

func parseNumber(v sql.NullString) (decimal.Decimal, bool) {
	if !v.Valid {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(v.String)
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}
