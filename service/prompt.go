package service

import (
	"fmt"
	"strings"

	"flightrules-backend/models"
)

// maxChunkChars caps how much of a chunk is quoted into the prompt
const maxChunkChars = 1200

// truncationMarker flags content cut at the character cap
const truncationMarker = " [...truncated]"

// groundingSystemInstruction frames every generation call. Kept separate from
// the per-query prompt so the generator receives it as a system instruction.
const groundingSystemInstruction = `You are an assistant for airline pilots answering questions about their duty/rostering rules and operating standards. You answer ONLY from the numbered document extracts provided. You never fabricate rule content. You are precise, conservative, and you clearly separate what the rules state from what they leave open.`

// Answer section headers. The formatter and the UI rely on these exact strings.
const (
	SectionTLDR     = "1) TL;DR:"
	SectionRules    = "2) What the rules say:"
	SectionGaps     = "3) What the rules don't say / grey area:"
	SectionGuidance = "4) Operational steer (not official advice):"
)

// BuildPrompt assembles the generation request for a similarity-qualified
// retrieval result. Chunks are labelled positionally [1]..[n] so the answer
// can cite them; the labelling depends only on order, never on content.
func BuildPrompt(query string, history []models.HistoryTurn, chunks []models.Chunk) string {
	var b strings.Builder

	if len(history) > 0 {
		b.WriteString("BACKGROUND (prior turns of this conversation, for context only; the new question may be a follow-up):\n")
		for _, turn := range history {
			b.WriteString(fmt.Sprintf("Q: %s\nA: %s\n", condenseText(turn.Question), condenseText(turn.Answer)))
		}
		b.WriteString("\n")
	}

	b.WriteString("DOCUMENT EXTRACTS:\n")
	for i, chunk := range chunks {
		b.WriteString(fmt.Sprintf("[%d] (source: %s", i+1, chunk.SourceDocument))
		if chunk.PageRef != nil && *chunk.PageRef != "" {
			b.WriteString(fmt.Sprintf(", page %s", *chunk.PageRef))
		}
		if chunk.SectionLabel != nil && *chunk.SectionLabel != "" {
			b.WriteString(fmt.Sprintf(", section %s", *chunk.SectionLabel))
		}
		b.WriteString(")\n")

		content := chunk.Content
		if len(content) > maxChunkChars {
			content = content[:maxChunkChars] + truncationMarker
		}
		b.WriteString(content)
		b.WriteString("\n\n")
	}

	b.WriteString(fmt.Sprintf(`QUESTION:
%s

RULES FOR YOUR ANSWER:
- Answer ONLY from the numbered extracts above. Do not use outside knowledge of aviation regulation.
- When you assert a rule, cite the extract label and page, e.g. "[2], p. 14".
- If an extract concerns a different duty type or scenario than the question (e.g. augmented crew vs. two-pilot, scheduled vs. disrupted), say so explicitly rather than applying it silently.
- Prefer extracts whose wording matches the key terms of the question.
- If the question touches topics the extracts do not cover, state that the provided documents do not address them.
- Never invent rule text, numeric limits, or section references.

OUTPUT FORMAT (exactly these four sections, in this order):
%s
- <one sentence>

%s
- <bullet citing extracts> (3-6 bullets)

%s
- <bullet> (2-4 bullets)

%s
- <bullet> (2-4 bullets)

After the four sections, end your reply with a single line of the form:
Confidence tag: High
using High, Medium, or Low to state how confident you are that the extracts fully answer the question. This line is machine-read and must be the last line.`,
		query, SectionTLDR, SectionRules, SectionGaps, SectionGuidance))

	return b.String()
}

// condenseText flattens a prior turn to a single bounded line
func condenseText(text string) string {
	text = strings.Join(strings.Fields(text), " ")
	const maxTurnChars = 400
	if len(text) > maxTurnChars {
		text = text[:maxTurnChars] + truncationMarker
	}
	return text
}
