package models

import (
	"database/sql"

	"github.com/shopspring/decimal"
)

// Platform is the advertising platform a row was exported from.
type Platform string

const (
	PlatformFacebook Platform = "Facebook"
	PlatformGoogle   Platform = "Google"
	PlatformTikTok   Platform = "TikTok"
)

// Unified base columns, in output order.
const (
	ColDate         = "date"
	ColPlatform     = "platform"
	ColCampaignID   = "campaign_id"
	ColCampaignName = "campaign_name"
	ColAdGroupID    = "ad_group_id"
	ColAdGroupName  = "ad_group_name"
	ColImpressions  = "impressions"
	ColClicks       = "clicks"
	ColCost         = "cost"
	ColConversions  = "conversions"

	ColFBVideoViews     = "fb_video_views"
	ColFBEngagementRate = "fb_engagement_rate"
	ColFBReach          = "fb_reach"
	ColFBFrequency      = "fb_frequency"

	ColGoogleConversionValue       = "google_conversion_value"
	ColGoogleCTR                   = "google_ctr"
	ColGoogleAvgCPC                = "google_avg_cpc"
	ColGoogleQualityScore          = "google_quality_score"
	ColGoogleSearchImpressionShare = "google_search_impression_share"

	ColTTVideoViews    = "tt_video_views"
	ColTTVideoWatch25  = "tt_video_watch_25"
	ColTTVideoWatch50  = "tt_video_watch_50"
	ColTTVideoWatch75  = "tt_video_watch_75"
	ColTTVideoWatch100 = "tt_video_watch_100"
	ColTTLikes         = "tt_likes"
	ColTTShares        = "tt_shares"
	ColTTComments      = "tt_comments"
)

// Derived columns, appended after the base columns.
const (
	ColCalcCTR            = "calc_ctr"
	ColCalcCPC            = "calc_cpc"
	ColCalcCPA            = "calc_cpa"
	ColCalcConversionRate = "calc_conversion_rate"
)

// BaseColumns is the unified schema every platform is projected into.
var BaseColumns = []string{
	ColDate, ColPlatform, ColCampaignID, ColCampaignName, ColAdGroupID, ColAdGroupName,
	ColImpressions, ColClicks, ColCost, ColConversions,
	ColFBVideoViews, ColFBEngagementRate, ColFBReach, ColFBFrequency,
	ColGoogleConversionValue, ColGoogleCTR, ColGoogleAvgCPC, ColGoogleQualityScore, ColGoogleSearchImpressionShare,
	ColTTVideoViews, ColTTVideoWatch25, ColTTVideoWatch50, ColTTVideoWatch75, ColTTVideoWatch100,
	ColTTLikes, ColTTShares, ColTTComments,
}

// DerivedColumns are computed after the platform tables are combined.
var DerivedColumns = []string{ColCalcCTR, ColCalcCPC, ColCalcCPA, ColCalcConversionRate}

// Columns returns the full output header: base columns then derived columns.
func Columns() []string {
	cols := make([]string, 0, len(BaseColumns)+len(DerivedColumns))
	cols = append(cols, BaseColumns...)
	return append(cols, DerivedColumns...)
}

var baseIndex = func() map[string]int {
	idx := make(map[string]int, len(BaseColumns))
	for i, c := range BaseColumns {
		idx[c] = i
	}
	return idx
}()

// BaseIndex returns the position of a base column, or -1 if the name is unknown.
func BaseIndex(col string) int {
	if i, ok := baseIndex[col]; ok {
		return i
	}
	return -1
}

// RawTable holds a platform export exactly as read from disk.
type RawTable struct {
	Path    string
	Headers []string
	Rows    [][]string
}

// Column returns the index of the named header, or -1.
func (t *RawTable) Column(name string) int {
	for i, h := range t.Headers {
		if h == name {
			return i
		}
	}
	return -1
}

// UnifiedRecord is one row of the unified table. Invalid entries are absent
// values and are distinct from zero.
type UnifiedRecord struct {
	Base    []sql.NullString
	Derived []decimal.NullDecimal
}

// Get returns the base field with the given column name.
func (r *UnifiedRecord) Get(col string) sql.NullString {
	i := BaseIndex(col)
	if i < 0 || i >= len(r.Base) {
		return sql.NullString{}
	}
	return r.Base[i]
}

// Platform returns the row's platform literal.
func (r *UnifiedRecord) Platform() Platform {
	return Platform(r.Get(ColPlatform).String)
}

// Clone copies the record so later stages never mutate an earlier table.
func (r *UnifiedRecord) Clone() *UnifiedRecord {
	c := &UnifiedRecord{Base: make([]sql.NullString, len(r.Base))}
	copy(c.Base, r.Base)
	if r.Derived != nil {
		c.Derived = make([]decimal.NullDecimal, len(r.Derived))
		copy(c.Derived, r.Derived)
	}
	return c
}

// UnifiedTable is an ordered list of unified records.
type UnifiedTable struct {
	Records []*UnifiedRecord
}

// Len returns the row count.
func (t *UnifiedTable) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Records)
}

// HasDerived reports whether the derived metrics have been computed.
func (t *UnifiedTable) HasDerived() bool {
	return t.Len() > 0 && t.Records[0].Derived != nil
}

// PlatformCount is a row count for one platform.
type PlatformCount struct {
	Platform Platform
	Rows     int
}

// Summary holds the totals printed after a run.
type Summary struct {
	TotalRows         int
	Columns           []string
	RowsByPlatform    []PlatformCount
	TotalCost         decimal.Decimal
	TotalImpressions  decimal.Decimal
	TotalClicks       decimal.Decimal
	TotalConversions  decimal.Decimal
	DistinctCampaigns int
	MinDate           string
	MaxDate           string
	OutputPath        string
}
