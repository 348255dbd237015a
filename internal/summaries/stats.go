package summaries

import (
	"sort"
	"time"

	"feedback-backend/internal/feedback"
)

// Stats is the deterministic portion of a period summary, computed locally
// without any provider involvement.
type Stats struct {
	NPSAverage    float64
	PromoterPct   float64
	DetractorPct  float64
	ResponseCount int
	Trend         []TrendPoint
}

// ComputeStats derives NPS statistics for records inside [start, end).
// Records outside the window or without a score are excluded from the
// score-derived figures; ResponseCount still counts every in-window record.
// Promoters score 9 or 10, detractors 6 or below.
func ComputeStats(records []feedback.Record, start, end time.Time) Stats {
	var stats Stats
	var scoreSum, promoters, detractors, scored int
	byDay := make(map[string]*TrendPoint)

	for _, rec := range records {
		if rec.CreatedAt.Before(start) || !rec.CreatedAt.Before(end) {
			continue
		}
		stats.ResponseCount++
		if rec.NPSScore == nil {
			continue
		}
		score := *rec.NPSScore
		scored++
		scoreSum += score
		switch {
		case score >= 9:
			promoters++
		case score <= 6:
			detractors++
		}

		day := rec.CreatedAt.UTC().Format("2006-01-02")
		point, ok := byDay[day]
		if !ok {
			point = &TrendPoint{Date: day}
			byDay[day] = point
		}
		// NPSAverage accumulates the raw sum here; divided below.
		point.NPSAverage += float64(score)
		point.ResponseCount++
	}

	if scored > 0 {
		stats.NPSAverage = float64(scoreSum) / float64(scored)
		stats.PromoterPct = float64(promoters) / float64(scored) * 100
		stats.DetractorPct = float64(detractors) / float64(scored) * 100
	}

	stats.Trend = make([]TrendPoint, 0, len(byDay))
	for _, point := range byDay {
		point.NPSAverage /= float64(point.ResponseCount)
		stats.Trend = append(stats.Trend, *point)
	}
	sort.Slice(stats.Trend, func(i, j int) bool {
		return stats.Trend[i].Date < stats.Trend[j].Date
	})
	return stats
}
