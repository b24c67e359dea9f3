package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassify(t *testing.T) {
	classifier := NewQueryClassifier()

	tests := []struct {
		name  string
		query string
		want  QueryCategory
	}{
		{"duty period", "What is my maximum duty period with two sectors?", CategoryDutyTime},
		{"fdp abbreviation", "Can my FDP be extended in-flight?", CategoryDutyTime},
		{"roster", "How late can the company change my roster?", CategoryDutyTime},
		{"uppercase query", "WHAT COUNTS AS SPLIT DUTY?", CategoryDutyTime},
		{"minimum rest", "What is the minimum rest after a long haul sector?", CategoryRest},
		{"days off", "How many days off am I owed per month?", CategoryRest},
		{"stabilised approach", "When must I be on a stabilised approach?", CategoryOperatingStandards},
		{"us spelling", "Stabilized approach criteria at 1000 ft?", CategoryOperatingStandards},
		{"go-around", "Is a go-around mandatory if unstable at minima?", CategoryOperatingStandards},
		{"no keyword", "Can the company change my hotel?", CategoryGeneral},
		{"empty", "", CategoryGeneral},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, classifier.Classify(tt.query))
		})
	}
}

func TestClassifyOrderIsDeterministic(t *testing.T) {
	classifier := NewQueryClassifier()

	// A query matching both duty and rest keywords resolves to duty every time
	query := "What is the minimum rest after a 13 hour duty period?"
	first := classifier.Classify(query)
	assert.Equal(t, CategoryDutyTime, first)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, classifier.Classify(query))
	}
}

func TestProfile(t *testing.T) {
	classifier := NewQueryClassifier()

	duty := classifier.Profile(CategoryDutyTime)
	assert.Equal(t, 0.40, duty.Threshold)
	assert.Equal(t, 12, duty.Limit)
	assert.Equal(t, 0.50, duty.EffectiveThreshold)

	rest := classifier.Profile(CategoryRest)
	assert.Equal(t, duty, rest)

	ops := classifier.Profile(CategoryOperatingStandards)
	assert.Equal(t, 0.50, ops.Threshold)
	assert.Equal(t, 10, ops.Limit)
	assert.Equal(t, 0.55, ops.EffectiveThreshold)

	general := classifier.Profile(CategoryGeneral)
	assert.Equal(t, 0.55, general.Threshold)
	assert.Equal(t, 10, general.Limit)
	assert.Equal(t, 0.60, general.EffectiveThreshold)

	// Unknown categories fall back to the general tuning
	assert.Equal(t, general, classifier.Profile(QueryCategory("made_up")))

	// Every profile gates generation at or above its search threshold
	for _, cat := range []QueryCategory{CategoryDutyTime, CategoryRest, CategoryOperatingStandards, CategoryGeneral} {
		p := classifier.Profile(cat)
		assert.GreaterOrEqual(t, p.EffectiveThreshold, p.Threshold)
	}
}
