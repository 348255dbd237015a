package llm

import (
	_ "embed"
	"strconv"
	"strings"
)

var (
	//go:embed prompts/topics.txt
	topicsPrompt string
	//go:embed prompts/clusters.txt
	clustersPrompt string
	//go:embed prompts/themes.txt
	themesPrompt string
	//go:embed prompts/daily_summary.txt
	dailySummaryPrompt string
	//go:embed prompts/monthly_summary.txt
	monthlySummaryPrompt string
)

// PromptContext carries the domain framing injected into every template.
type PromptContext struct {
	CompanyName  string
	CampaignName string
	Language     string
	Total        int
}

// TopicsPrompt renders the topic/feature-mention extraction instruction.
func TopicsPrompt(pc PromptContext) string {
	return render(topicsPrompt, pc)
}

// ClustersPrompt renders the feedback-clustering instruction.
func ClustersPrompt(pc PromptContext) string {
	return render(clustersPrompt, pc)
}

// ThemesPrompt renders the theme/category breakdown instruction.
func ThemesPrompt(pc PromptContext) string {
	return render(themesPrompt, pc)
}

// DailySummaryPrompt renders the daily narrative-summary instruction.
func DailySummaryPrompt(pc PromptContext) string {
	return render(dailySummaryPrompt, pc)
}

// MonthlySummaryPrompt renders the monthly narrative-summary instruction.
func MonthlySummaryPrompt(pc PromptContext) string {
	return render(monthlySummaryPrompt, pc)
}

func render(tmpl string, pc PromptContext) string {
	lang := strings.TrimSpace(pc.Language)
	if lang == "" {
		lang = "en"
	}
	return strings.NewReplacer(
		"{{company}}", pc.CompanyName,
		"{{campaign}}", pc.CampaignName,
		"{{language}}", lang,
		"{{total}}", strconv.Itoa(pc.Total),
	).Replace(tmpl)
}
