package services

import "ads-unifier/models"

// PlatformMapping declares how one platform export projects onto the unified
// schema. Fields maps unified column → source column; unified columns not
// listed are absent for every row of that platform. The platform column is
// always the constant Platform literal.
type PlatformMapping struct {
	Platform models.Platform
	File     string
	Fields   map[string]string
}

// Mappings lists the platforms in processing order. The order fixes the
// tie-break order of the combined table.
var Mappings = []PlatformMapping{
	FacebookMapping,
	GoogleMapping,
	TikTokMapping,
}

var FacebookMapping = PlatformMapping{
	Platform: models.PlatformFacebook,
	File:     "01_facebook_ads.csv",
	Fields: withCommon(map[string]string{
		models.ColAdGroupID:        "ad_set_id",
		models.ColAdGroupName:      "ad_set_name",
		models.ColCost:             "spend",
		models.ColFBVideoViews:     "video_views",
		models.ColFBEngagementRate: "engagement_rate",
		models.ColFBReach:          "reach",
		models.ColFBFrequency:      "frequency",
	}),
}

var GoogleMapping = PlatformMapping{
	Platform: models.PlatformGoogle,
	File:     "02_google_ads.csv",
	Fields: withCommon(map[string]string{
		models.ColAdGroupID:                   "ad_group_id",
		models.ColAdGroupName:                 "ad_group_name",
		models.ColCost:                        "cost",
		models.ColGoogleConversionValue:       "conversion_value",
		models.ColGoogleCTR:                   "ctr",
		models.ColGoogleAvgCPC:                "avg_cpc",
		models.ColGoogleQualityScore:          "quality_score",
		models.ColGoogleSearchImpressionShare: "search_impression_share",
	}),
}

var TikTokMapping = PlatformMapping{
	Platform: models.PlatformTikTok,
	File:     "03_tiktok_ads.csv",
	Fields: withCommon(map[string]string{
		models.ColAdGroupID:       "adgroup_id",
		models.ColAdGroupName:     "adgroup_name",
		models.ColCost:            "cost",
		models.ColTTVideoViews:    "video_views",
		models.ColTTVideoWatch25:  "video_watch_25",
		models.ColTTVideoWatch50:  "video_watch_50",
		models.ColTTVideoWatch75:  "video_watch_75",
		models.ColTTVideoWatch100: "video_watch_100",
		models.ColTTLikes:         "likes",
		models.ColTTShares:        "shares",
		models.ColTTComments:      "comments",
	}),
}

// withCommon adds the columns every platform exports under the unified name.
func withCommon(fields map[string]string) map[string]string {
	for _, col := range []string{
		models.ColDate,
		models.ColCampaignID,
		models.ColCampaignName,
		models.ColImpressions,
		models.ColClicks,
		models.ColConversions,
	} {
		if _, ok := fields[col]; !ok {
			fields[col] = col
		}
	}
	return fields
}
