package service

import "strings"

// QueryCategory is a named class of pilot question. Each category carries its
// own retrieval tuning rather than sniffing keywords inline at query time.
type QueryCategory string

const (
	CategoryDutyTime           QueryCategory = "duty_time"
	CategoryRest               QueryCategory = "rest"
	CategoryOperatingStandards QueryCategory = "operating_standards"
	CategoryGeneral            QueryCategory = "general"
)

// RetrievalProfile is the declared (threshold, cap) configuration for a category.
// Threshold gates which chunks qualify at search time; EffectiveThreshold is
// the minimum max-similarity required before the generator is consulted.
type RetrievalProfile struct {
	Threshold          float64
	Limit              int
	EffectiveThreshold float64
}

// categoryKeywords maps each category to the query terms that select it.
// First match wins in the order listed by categoryOrder.
var categoryKeywords = map[QueryCategory][]string{
	CategoryDutyTime: {
		"duty time", "duty period", "fdp", "flight duty", "duty limit",
		"max duty", "roster", "rostering", "split duty", "standby",
	},
	CategoryRest: {
		"rest period", "minimum rest", "rest after", "rest requirement",
		"days off", "recovery", "disruption",
	},
	CategoryOperatingStandards: {
		"stabilised approach", "stabilized approach", "sop", "operating standard",
		"callout", "briefing", "go-around", "minima", "crosswind",
	},
}

var categoryOrder = []QueryCategory{
	CategoryDutyTime,
	CategoryRest,
	CategoryOperatingStandards,
}

// categoryProfiles maps each category to its retrieval tuning. Duty and rest
// questions use a relaxed threshold because rule wording rarely matches the
// phrasing pilots use for them.
var categoryProfiles = map[QueryCategory]RetrievalProfile{
	CategoryDutyTime:           {Threshold: 0.40, Limit: 12, EffectiveThreshold: 0.50},
	CategoryRest:               {Threshold: 0.40, Limit: 12, EffectiveThreshold: 0.50},
	CategoryOperatingStandards: {Threshold: 0.50, Limit: 10, EffectiveThreshold: 0.55},
	CategoryGeneral:            {Threshold: 0.55, Limit: 10, EffectiveThreshold: 0.60},
}

// QueryClassifier assigns queries to categories via the keyword table
type QueryClassifier struct {
	keywords map[QueryCategory][]string
	profiles map[QueryCategory]RetrievalProfile
}

// NewQueryClassifier creates a classifier with the default category tables
func NewQueryClassifier() *QueryClassifier {
	return &QueryClassifier{
		keywords: categoryKeywords,
		profiles: categoryProfiles,
	}
}

// Classify returns the category for a query, CategoryGeneral if none matches
func (c *QueryClassifier) Classify(query string) QueryCategory {
	q := strings.ToLower(query)
	for _, category := range categoryOrder {
		for _, keyword := range c.keywords[category] {
			if strings.Contains(q, keyword) {
				return category
			}
		}
	}
	return CategoryGeneral
}

// Profile returns the retrieval tuning for a category
func (c *QueryClassifier) Profile(category QueryCategory) RetrievalProfile {
	if profile, ok := c.profiles[category]; ok {
		return profile
	}
	return c.profiles[CategoryGeneral]
}
