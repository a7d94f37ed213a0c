package services

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"ads-unifier/models"
	"ads-unifier/utils"
)

func newTestLogger() *utils.Logger {
	return utils.NewLoggerWithOptions(utils.LoggerOptions{Output: io.Discard})
}

var (
	facebookHeader = []string{"date", "campaign_id", "campaign_name", "ad_set_id", "ad_set_name",
		"impressions", "clicks", "spend", "conversions", "video_views", "engagement_rate", "reach", "frequency"}
	googleHeader = []string{"date", "campaign_id", "campaign_name", "ad_group_id", "ad_group_name",
		"impressions", "clicks", "cost", "conversions", "conversion_value", "ctr", "avg_cpc",
		"quality_score", "search_impression_share"}
	tiktokHeader = []string{"date", "campaign_id", "campaign_name", "adgroup_id", "adgroup_name",
		"impressions", "clicks", "cost", "conversions", "video_views", "video_watch_25", "video_watch_50",
		"video_watch_75", "video_watch_100", "likes", "shares", "comments"}
)

func facebookRow(date, campaignID string) []string {
	return []string{date, campaignID, "FB Prospecting", "as-1", "Lookalike 1%",
		"1000", "20", "50.00", "4", "500", "0.05", "800", "1.25"}
}

func googleRow(date, campaignID string) []string {
	return []string{date, campaignID, "Search Brand", "ag-1", "Exact Match",
		"2000", "40", "80.00", "0", "0", "0.02", "2.00", "7", "0.65"}
}

func tiktokRow(date, campaignID string) []string {
	return []string{date, campaignID, "Spark Ads", "tg-1", "Gen Z",
		"5000", "0", "30.00", "0", "4000", "3000", "2000", "1000", "500", "120", "15", "8"}
}

func rawTable(path string, header []string, rows ...[]string) *models.RawTable {
	return &models.RawTable{Path: path, Headers: header, Rows: rows}
}

// writeExport writes a platform export CSV into dir.
func writeExport(t *testing.T, dir, name string, header []string, rows ...[]string) {
	t.Helper()
	lines := []string{strings.Join(header, ",")}
	for _, r := range rows {
		lines = append(lines, strings.Join(r, ","))
	}
	content := strings.Join(lines, "\n") + "\n"
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

// exclusiveColumns returns the platform-only columns of each platform.
func exclusiveColumns() map[models.Platform][]string {
	common := map[string]bool{
		models.ColDate: true, models.ColPlatform: true, models.ColCampaignID: true,
		models.ColCampaignName: true, models.ColAdGroupID: true, models.ColAdGroupName: true,
		models.ColImpressions: true, models.ColClicks: true, models.ColCost: true,
		models.ColConversions: true,
	}
	out := make(map[models.Platform][]string)
	for _, pm := range Mappings {
		for col := range pm.Fields {
			if !common[col] {
				out[pm.Platform] = append(out[pm.Platform], col)
			}
		}
	}
	return out
}
