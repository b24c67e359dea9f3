package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flightrules-backend/models"
)

// Embedder converts text into a fixed-length vector
type Embedder interface {
	EmbedQuery(ctx context.Context, query string) ([]float64, error)
}

// ChunkSearcher performs nearest-neighbour lookups against the chunk store
type ChunkSearcher interface {
	SearchNearest(ctx context.Context, embedding []float64, threshold float64, limit int) ([]models.Chunk, error)
}

// Generator produces the structured natural-language answer
type Generator interface {
	Generate(ctx context.Context, systemInstruction, prompt string) (string, error)
}

var (
	ErrMissingQuery     = errors.New("missing query")
	ErrEmbeddingFailed  = errors.New("failed to generate query embedding")
	ErrRetrievalFailed  = errors.New("failed to search regulatory chunks")
	ErrGenerationFailed = errors.New("failed to generate answer")
	ErrGeneratorQuota   = errors.New("answer generator quota exceeded")
)

// maxHistoryTurns bounds the conversational context resent by the caller
const maxHistoryTurns = 3

// AskService runs the retrieval-and-grounding pipeline for one query
type AskService struct {
	embedder   Embedder
	searcher   ChunkSearcher
	generator  Generator
	classifier *QueryClassifier
}

// AskServiceOption is a functional option for AskService
type AskServiceOption func(*AskService)

// AskWithEmbedder sets the embedding provider
func AskWithEmbedder(e Embedder) AskServiceOption {
	return func(s *AskService) {
		s.embedder = e
	}
}

// AskWithChunkSearcher sets the chunk store
func AskWithChunkSearcher(cs ChunkSearcher) AskServiceOption {
	return func(s *AskService) {
		s.searcher = cs
	}
}

// AskWithGenerator sets the answer generator
func AskWithGenerator(g Generator) AskServiceOption {
	return func(s *AskService) {
		s.generator = g
	}
}

// AskWithClassifier overrides the default query classifier
func AskWithClassifier(c *QueryClassifier) AskServiceOption {
	return func(s *AskService) {
		s.classifier = c
	}
}

// NewAskService creates a new ask service
func NewAskService(opts ...AskServiceOption) *AskService {
	s := &AskService{
		classifier: NewQueryClassifier(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Ask answers a single query against the regulatory corpus.
//
// The generator is never invoked when retrieval evidence is insufficient:
// zero chunks or a max similarity below the category's effective threshold
// short-circuit to a canned low-confidence answer.
func (s *AskService) Ask(ctx context.Context, req models.AskRequest) (*models.AskResult, error) {
	if s.embedder == nil {
		return nil, errors.New("embedder not set")
	}
	if s.searcher == nil {
		return nil, errors.New("chunk searcher not set")
	}
	if s.generator == nil {
		return nil, errors.New("generator not set")
	}

	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, ErrMissingQuery
	}

	history := trimHistory(req.History)

	category := s.classifier.Classify(query)
	profile := s.classifier.Profile(category)

	embedding, err := s.embedder.EmbedQuery(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrEmbeddingFailed, err)
	}

	chunks, err := s.searcher.SearchNearest(ctx, embedding, profile.Threshold, profile.Limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRetrievalFailed, err)
	}

	if len(chunks) == 0 {
		return noCoverageResult(), nil
	}

	maxSim := 0.0
	for _, chunk := range chunks {
		if chunk.Similarity > maxSim {
			maxSim = chunk.Similarity
		}
	}
	if maxSim < profile.EffectiveThreshold {
		return weakCoverageResult(chunks), nil
	}

	prompt := BuildPrompt(query, history, chunks)

	raw, err := s.generator.Generate(ctx, groundingSystemInstruction, prompt)
	if err != nil {
		if errors.Is(err, ErrGeneratorQuota) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrGenerationFailed, err)
	}

	answer, tag := ExtractConfidenceTag(raw)

	refs := make([]models.ChunkRef, 0, len(chunks))
	for _, chunk := range chunks {
		refs = append(refs, chunk.Ref())
	}

	return &models.AskResult{
		Answer:        answer,
		Chunks:        refs,
		ConfidenceTag: tag,
	}, nil
}

// trimHistory keeps the most recent turns, dropping the oldest first
func trimHistory(history []models.HistoryTurn) []models.HistoryTurn {
	if len(history) <= maxHistoryTurns {
		return history
	}
	return history[len(history)-maxHistoryTurns:]
}
