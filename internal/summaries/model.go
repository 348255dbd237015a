package summaries

import "time"

// DailySummary is one campaign-day rollup. Stats are computed
// deterministically; the narrative fields come from the model and may be
// a stats-only sentinel when generation degrades.
type DailySummary struct {
	CampaignID     string    `json:"campaignId"`
	Day            time.Time `json:"day"`
	NPSAverage     float64   `json:"npsAverage"`
	PromoterPct    float64   `json:"promoterPct"`
	DetractorPct   float64   `json:"detractorPct"`
	ResponseCount  int       `json:"responseCount"`
	Summary        string    `json:"summary"`
	PositiveThemes []string  `json:"positiveThemes"`
	NegativeThemes []string  `json:"negativeThemes"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// MonthlySummary is one campaign-month rollup. Month uses the "2006-01"
// format. Trend carries the per-day NPS movement inside the month.
type MonthlySummary struct {
	CampaignID     string       `json:"campaignId"`
	Month          string       `json:"month"`
	NPSAverage     float64      `json:"npsAverage"`
	PromoterPct    float64      `json:"promoterPct"`
	DetractorPct   float64      `json:"detractorPct"`
	ResponseCount  int          `json:"responseCount"`
	Trend          []TrendPoint `json:"npsTrend"`
	Summary        string       `json:"summary"`
	PositiveThemes []string     `json:"positiveThemes"`
	NegativeThemes []string     `json:"negativeThemes"`
	UpdatedAt      time.Time    `json:"updatedAt"`
}

// TrendPoint is the NPS average for one day inside a month window.
type TrendPoint struct {
	Date          string  `json:"date"`
	NPSAverage    float64 `json:"npsAverage"`
	ResponseCount int     `json:"responseCount"`
}
