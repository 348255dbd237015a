package campaigns

import (
	"strings"
	"time"
)

// Question is a configured campaign question, used to label responses
// in narrative contexts.
type Question struct {
	ID   string `json:"id"`
	Text string `json:"text"`
}

// Campaign is one feedback-collection effort belonging to a company.
type Campaign struct {
	ID          string
	CompanyName string
	Name        string
	Language    string
	Questions   []Question
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// LanguageOrDefault returns the campaign language, defaulting to "en".
func (c Campaign) LanguageOrDefault() string {
	if lang := strings.TrimSpace(c.Language); lang != "" {
		return lang
	}
	return "en"
}
