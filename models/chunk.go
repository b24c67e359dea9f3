package models

import (
	"time"

	"github.com/google/uuid"
)

// Chunk represents a bounded span of regulatory document text from the corpus
type Chunk struct {
	ID             uuid.UUID `json:"id"`
	Content        string    `json:"content"`
	SourceDocument string    `json:"source_document"`
	PageRef        *string   `json:"page_ref,omitempty"`
	SectionLabel   *string   `json:"section_label,omitempty"`
	ChunkIndex     int       `json:"chunk_index"`
	Embedding      []float64 `json:"-"`
	CreatedAt      time.Time `json:"created_at"`
	Similarity     float64   `json:"similarity,omitempty"` // Populated at query time only, never stored
}

// ChunkRef is the citation view of a chunk returned to the caller
type ChunkRef struct {
	Source     string   `json:"source"`
	Page       *string  `json:"page,omitempty"`
	Section    *string  `json:"section,omitempty"`
	Similarity *float64 `json:"similarity,omitempty"`
}

// Ref converts a chunk into its citation view
func (c Chunk) Ref() ChunkRef {
	ref := ChunkRef{
		Source:  c.SourceDocument,
		Page:    c.PageRef,
		Section: c.SectionLabel,
	}
	if c.Similarity > 0 {
		sim := c.Similarity
		ref.Similarity = &sim
	}
	return ref
}
