package service

import (
	"fmt"
	"strings"
	"testing"

	"flightrules-backend/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestBuildPromptLabelsAreStableAndPositional(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "Rest must be at least 12 hours.", SourceDocument: "ftl-scheme.pdf", PageRef: strPtr("4")},
		{Content: "Duty may be extended by 1 hour twice in 7 days.", SourceDocument: "ftl-scheme.pdf", PageRef: strPtr("9")},
		{Content: "A stabilised approach is required by 1000 ft.", SourceDocument: "ops-standards.pdf", SectionLabel: strPtr("7.2 Approach gates")},
	}

	prompt := BuildPrompt("What is the minimum rest?", nil, chunks)

	for i := range chunks {
		assert.Contains(t, prompt, fmt.Sprintf("[%d] (source: ", i+1))
	}
	assert.NotContains(t, prompt, "[4] (source: ")

	// Labelling depends only on order: rebuilding yields the identical prompt
	again := BuildPrompt("What is the minimum rest?", nil, chunks)
	assert.Equal(t, prompt, again)

	// Swapping chunk contents does not change the label sequence
	swapped := []models.Chunk{chunks[2], chunks[0], chunks[1]}
	swappedPrompt := BuildPrompt("What is the minimum rest?", nil, swapped)
	for i := 1; i <= 3; i++ {
		assert.Contains(t, swappedPrompt, fmt.Sprintf("[%d] (source: ", i))
	}
}

func TestBuildPromptIncludesChunkMetadata(t *testing.T) {
	chunks := []models.Chunk{
		{
			Content:        "Standby at the airport counts in full as duty.",
			SourceDocument: "ftl-scheme.pdf",
			PageRef:        strPtr("14"),
			SectionLabel:   strPtr("6.1 Standby"),
		},
	}

	prompt := BuildPrompt("Does airport standby count as duty?", nil, chunks)

	assert.Contains(t, prompt, "source: ftl-scheme.pdf")
	assert.Contains(t, prompt, "page 14")
	assert.Contains(t, prompt, "section 6.1 Standby")
	assert.Contains(t, prompt, "Standby at the airport counts in full as duty.")
	assert.Contains(t, prompt, "QUESTION:\nDoes airport standby count as duty?")
}

func TestBuildPromptTruncatesLongChunks(t *testing.T) {
	longContent := strings.Repeat("x", maxChunkChars+500)
	chunks := []models.Chunk{
		{Content: longContent, SourceDocument: "ops-standards.pdf"},
	}

	prompt := BuildPrompt("anything", nil, chunks)

	assert.Contains(t, prompt, truncationMarker)
	assert.NotContains(t, prompt, longContent)
	assert.Contains(t, prompt, longContent[:maxChunkChars])
}

func TestBuildPromptShortChunksNotTruncated(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "Short rule text.", SourceDocument: "ftl-scheme.pdf"},
	}

	prompt := BuildPrompt("anything", nil, chunks)
	assert.NotContains(t, prompt, truncationMarker)
}

func TestBuildPromptIncludesHistory(t *testing.T) {
	history := []models.HistoryTurn{
		{Question: "What is   my max FDP?", Answer: "Your max FDP is 13 hours.\nSee [1]."},
	}
	chunks := []models.Chunk{
		{Content: "FDP may be extended by one hour.", SourceDocument: "ftl-scheme.pdf"},
	}

	prompt := BuildPrompt("Can that be extended?", history, chunks)

	assert.Contains(t, prompt, "BACKGROUND")
	// Prior turns are condensed to single lines
	assert.Contains(t, prompt, "Q: What is my max FDP?")
	assert.Contains(t, prompt, "A: Your max FDP is 13 hours. See [1].")

	noHistory := BuildPrompt("Can that be extended?", nil, chunks)
	assert.NotContains(t, noHistory, "BACKGROUND")
}

func TestBuildPromptCarriesGroundingRulesAndFormat(t *testing.T) {
	chunks := []models.Chunk{
		{Content: "Rule text.", SourceDocument: "ftl-scheme.pdf"},
	}

	prompt := BuildPrompt("a question", nil, chunks)

	require.Contains(t, prompt, "Answer ONLY from the numbered extracts above.")
	assert.Contains(t, prompt, "Never invent rule text")
	assert.Contains(t, prompt, SectionTLDR)
	assert.Contains(t, prompt, SectionRules)
	assert.Contains(t, prompt, SectionGaps)
	assert.Contains(t, prompt, SectionGuidance)
	assert.Contains(t, prompt, "Confidence tag: High")
}

func TestCondenseTextBoundsLongTurns(t *testing.T) {
	long := strings.Repeat("word ", 200)
	condensed := condenseText(long)
	assert.LessOrEqual(t, len(condensed), 400+len(truncationMarker))
	assert.Contains(t, condensed, truncationMarker)
}
