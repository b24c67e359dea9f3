package models

// ConfidenceTag is the generator's self-reported certainty classification,
// distinct from retrieval similarity.
type ConfidenceTag string

const (
	ConfidenceHigh    ConfidenceTag = "high"
	ConfidenceMedium  ConfidenceTag = "medium"
	ConfidenceLow     ConfidenceTag = "low"
	ConfidenceUnknown ConfidenceTag = "unknown"
)

// HistoryTurn is one prior question/answer pair resent by the caller
type HistoryTurn struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// AskRequest is the body of POST /api/ask
type AskRequest struct {
	Query   string        `json:"query"`
	History []HistoryTurn `json:"history,omitempty"`
}

// AskResult is the structured answer returned to the caller.
// Answer holds the four-section text with the confidence line stripped.
type AskResult struct {
	Answer        string        `json:"answer"`
	Chunks        []ChunkRef    `json:"chunks"`
	ConfidenceTag ConfidenceTag `json:"confidenceTag"`
}
