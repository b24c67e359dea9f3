package service

import "flightrules-backend/models"

// Canned answers for the two insufficient-evidence cases. Both conform to the
// four-section format so the caller renders them like any other answer, and
// both are issued without a generator call.

const noCoverageAnswer = `1) TL;DR:
- The reference documents contain no material matching this question, so no rule-based answer can be given.

2) What the rules say:
- No relevant passages were found in the duty/rostering rules or the operating-standards guide for this question.
- Nothing in the indexed documents could be matched to the key terms of the question.
- No numeric limits, procedures, or definitions applicable to this question were retrieved.

3) What the rules don't say / grey area:
- The absence of a match may mean the topic is outside these documents, or that it is phrased very differently in them.
- This system only searches the loaded corpus; other manuals, NOTAMs, or company notices are not covered.

4) Operational steer (not official advice):
- Rephrase the question using the terminology of the manuals (e.g. "flight duty period" rather than "shift").
- For anything operationally significant, contact crew control or your fleet office rather than relying on this gap.`

const weakCoverageAnswer = `1) TL;DR:
- Some passages were retrieved but none matched this question closely enough to support a grounded answer.

2) What the rules say:
- The closest passages found are below the confidence threshold for citing them as an answer.
- No retrieved passage addresses the specific scenario in the question with sufficient similarity.
- Quoting weakly matching rule text risks applying a rule from a different context, so it is withheld.

3) What the rules don't say / grey area:
- The question may sit between sections of the documents, or use phrasing the documents do not.
- A more specific question (aircraft type, duty type, scheduled vs. disrupted) may retrieve stronger matches.

4) Operational steer (not official advice):
- Narrow the question or restate it with manual terminology and ask again.
- For a decision that affects today's operation, verify with crew control or a duty manager instead of inferring from weak matches.`

// noCoverageResult is the response when retrieval returns zero chunks
func noCoverageResult() *models.AskResult {
	return &models.AskResult{
		Answer:        noCoverageAnswer,
		Chunks:        []models.ChunkRef{},
		ConfidenceTag: models.ConfidenceLow,
	}
}

// weakCoverageResult is the response when max similarity is below the
// effective threshold. The weak matches are still reported as sources so the
// caller can show what was considered.
func weakCoverageResult(chunks []models.Chunk) *models.AskResult {
	refs := make([]models.ChunkRef, 0, len(chunks))
	for _, chunk := range chunks {
		refs = append(refs, chunk.Ref())
	}
	return &models.AskResult{
		Answer:        weakCoverageAnswer,
		Chunks:        refs,
		ConfidenceTag: models.ConfidenceLow,
	}
}
