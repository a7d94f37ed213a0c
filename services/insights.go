package services

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"ads-unifier/models"
	"ads-unifier/utils"
)

type InsightService struct {
	logger *utils.Logger
}

func NewInsightService(logger *utils.Logger) *InsightService {
	return &InsightService{logger: logger}
}

func (s *InsightService) Generate(t *models.UnifiedTable, outputPath string) *models.Summary {
	report := &models.Summary{
		TotalRows:        t.Len(),
		Columns:          models.Columns(),
		TotalCost:        decimal.Zero,
		TotalImpressions: decimal.Zero,
		TotalClicks:      decimal.Zero,
		TotalConversions: decimal.Zero,
		OutputPath:       outputPath,
	}
	if t.Len() == 0 {
		return report
	}

	byPlatform := make(map[models.Platform]int)
	campaigns := utils.NewStringSet()

	for _, r := range t.Records {
		byPlatform[r.Platform()]++

		report.TotalCost = addField(report.TotalCost, r, models.ColCost)
		report.TotalImpressions = addField(report.TotalImpressions, r, models.ColImpressions)
		report.TotalClicks = addField(report.TotalClicks, r, models.ColClicks)
		report.TotalConversions = addField(report.TotalConversions, r, models.ColConversions)

		if id := r.Get(models.ColCampaignID); id.Valid {
			campaigns.Add(id.String)
		}

		if d := r.Get(models.ColDate); d.Valid {
			if report.MinDate == "" || d.String < report.MinDate {
				report.MinDate = d.String
			}
			if d.String > report.MaxDate {
				report.MaxDate = d.String
			}
		}
	}

	for p, n := range byPlatform {
		report.RowsByPlatform = append(report.RowsByPlatform, models.PlatformCount{Platform: p, Rows: n})
	}
	sort.Slice(report.RowsByPlatform, func(i, j int) bool {
		return report.RowsByPlatform[i].Platform < report.RowsByPlatform[j].Platform
	})
	report.DistinctCampaigns = campaigns.Size()

	return report
}

// addField sums present numeric values; absent and non-numeric cells are skipped.
func addField(total decimal.Decimal, r *models.UnifiedRecord, col string) decimal.Decimal {
	v, ok := parseNumber(r.Get(col))
	if !ok {
		return total
	}
	return total.Add(v)
}

func (s *InsightService) Print(w io.Writer, r *models.Summary) {
	p := message.NewPrinter(language.English)
	sep := strings.Repeat("═", 54)
	thin := strings.Repeat("─", 54)

	fmt.Fprintf(w, "\n%s\n", sep)
	fmt.Fprintf(w, "  UNIFIED ADS PERFORMANCE\n")
	fmt.Fprintf(w, "%s\n\n", sep)

	p.Fprintf(w, "Rows: %d\n", r.TotalRows)
	fmt.Fprintf(w, "Columns: [%s]\n", strings.Join(r.Columns, ", "))

	fmt.Fprintf(w, "\nRows by platform:\n")
	fmt.Fprintf(w, "  %s\n", thin)
	if len(r.RowsByPlatform) == 0 {
		fmt.Fprintf(w, "  No rows\n")
	}
	for _, pc := range r.RowsByPlatform {
		p.Fprintf(w, "  %-10s %d\n", pc.Platform, pc.Rows)
	}

	p.Fprintf(w, "\nTotal cost: $%.2f\n", r.TotalCost.InexactFloat64())
	fmt.Fprintf(w, "Total impressions: %s\n", formatCount(p, r.TotalImpressions))
	fmt.Fprintf(w, "Total clicks: %s\n", formatCount(p, r.TotalClicks))
	fmt.Fprintf(w, "Total conversions: %s\n", formatCount(p, r.TotalConversions))
	p.Fprintf(w, "Distinct campaigns: %d\n", r.DistinctCampaigns)
	if r.MinDate != "" {
		fmt.Fprintf(w, "Date range: %s to %s\n", r.MinDate, r.MaxDate)
	} else {
		fmt.Fprintf(w, "Date range: n/a\n")
	}

	if r.OutputPath != "" {
		fmt.Fprintf(w, "\nSaved to: %s\n", r.OutputPath)
	}
	fmt.Fprintf(w, "\n%s\n\n", sep)
}

// formatCount prints whole totals with digit grouping and fractional ones
// with two decimals.
func formatCount(p *message.Printer, d decimal.Decimal) string {
	if d.IsInteger() {
		return p.Sprintf("%d", d.IntPart())
	}
	return p.Sprintf("%.2f", d.InexactFloat64())
}
