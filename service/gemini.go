package service

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/googleapi"
)

const (
	embeddingAPI     = "https://generativelanguage.googleapis.com/v1beta/models/gemini-embedding-001:embedContent"
	batchAPI         = "https://generativelanguage.googleapis.com/v1beta/models/gemini-embedding-001:batchEmbedContents"
	embeddingModel   = "models/gemini-embedding-001"
	generationModel  = "gemini-3-pro-preview"
	embeddingDims    = 768
	maxRetries       = 3
	initialBackoff   = time.Second
	embeddingTimeout = 30 * time.Second
	batchTimeout     = 300 * time.Second
)

// EmbeddingRequest represents an embedding API request
type EmbeddingRequest struct {
	Model                string       `json:"model"`
	Content              ContentInput `json:"content"`
	TaskType             string       `json:"task_type,omitempty"`
	OutputDimensionality int          `json:"output_dimensionality,omitempty"`
}

// ContentInput represents content for embedding
type ContentInput struct {
	Parts []PartInput `json:"parts"`
}

// PartInput represents a part of content
type PartInput struct {
	Text string `json:"text"`
}

// EmbeddingResponse represents an embedding API response
type EmbeddingResponse struct {
	Embedding EmbeddingData `json:"embedding"`
}

// EmbeddingData contains the embedding values
type EmbeddingData struct {
	Values []float64 `json:"values"`
}

// BatchEmbeddingItem is the structure returned by the batch API (no nested "embedding" key)
type BatchEmbeddingItem struct {
	Values []float64 `json:"values"`
}

// BatchEmbeddingRequest represents a batch embedding API request
type BatchEmbeddingRequest struct {
	Requests []EmbeddingRequest `json:"requests"`
}

// BatchEmbeddingResponse represents a batch embedding API response
type BatchEmbeddingResponse struct {
	Embeddings []BatchEmbeddingItem `json:"embeddings"`
}

// GeminiEmbedder calls the Gemini embedding API over HTTP. Query embeddings
// use the RETRIEVAL_QUERY task type; document embeddings use
// RETRIEVAL_DOCUMENT and the batch endpoint. All vectors are L2-normalised,
// required for dimensions below 3072.
type GeminiEmbedder struct {
	apiKey string
}

// NewGeminiEmbedder creates an embedder using the given API key
func NewGeminiEmbedder(apiKey string) *GeminiEmbedder {
	return &GeminiEmbedder{apiKey: apiKey}
}

// EmbedQuery generates a normalised embedding for a retrieval query.
// The call is idempotent, so transient failures are retried with backoff.
func (e *GeminiEmbedder) EmbedQuery(ctx context.Context, query string) ([]float64, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	reqBody := EmbeddingRequest{
		Model: embeddingModel,
		Content: ContentInput{
			Parts: []PartInput{{Text: query}},
		},
		TaskType:             "RETRIEVAL_QUERY",
		OutputDimensionality: embeddingDims,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	backoff := initialBackoff
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(backoff)
			backoff *= 2
		}

		req, err := http.NewRequestWithContext(ctx, "POST", embeddingAPI, bytes.NewBuffer(jsonData))
		if err != nil {
			return nil, fmt.Errorf("failed to create request: %w", err)
		}

		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("x-goog-api-key", e.apiKey)

		client := &http.Client{Timeout: embeddingTimeout}
		resp, err := client.Do(req)
		if err != nil {
			if attempt == maxRetries-1 {
				return nil, fmt.Errorf("failed to send request after %d attempts: %w", maxRetries, err)
			}
			continue
		}

		if resp.StatusCode == http.StatusOK {
			var apiResp EmbeddingResponse
			if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
				resp.Body.Close()
				if attempt == maxRetries-1 {
					return nil, fmt.Errorf("failed to decode response: %w", err)
				}
				continue
			}
			resp.Body.Close()

			embedding := apiResp.Embedding.Values
			normalizeEmbedding(embedding)
			return embedding, nil
		}

		resp.Body.Close()

		// Don't retry on 400 or 401 errors
		if resp.StatusCode == http.StatusBadRequest || resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("embedding API error: %d", resp.StatusCode)
		}

		if attempt == maxRetries-1 {
			return nil, fmt.Errorf("embedding API error after %d attempts: %d", maxRetries, resp.StatusCode)
		}
	}

	return nil, ErrEmbeddingFailed
}

// EmbedDocuments generates normalised embeddings for a batch of document
// texts via the batch endpoint. Inputs and outputs are positionally aligned.
func (e *GeminiEmbedder) EmbedDocuments(ctx context.Context, texts []string) ([][]float64, error) {
	if e.apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	requests := make([]EmbeddingRequest, len(texts))
	for i, text := range texts {
		requests[i] = EmbeddingRequest{
			Model: embeddingModel,
			Content: ContentInput{
				Parts: []PartInput{{Text: text}},
			},
			TaskType:             "RETRIEVAL_DOCUMENT",
			OutputDimensionality: embeddingDims,
		}
	}

	jsonData, err := json.Marshal(BatchEmbeddingRequest{Requests: requests})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal batch request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", batchAPI, bytes.NewBuffer(jsonData))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", e.apiKey)

	client := &http.Client{Timeout: batchTimeout}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("batch embedding API error: %d", resp.StatusCode)
	}

	var apiResp BatchEmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	if len(apiResp.Embeddings) != len(texts) {
		return nil, fmt.Errorf("mismatch: got %d embeddings for %d texts", len(apiResp.Embeddings), len(texts))
	}

	embeddings := make([][]float64, len(texts))
	for i := range apiResp.Embeddings {
		if len(apiResp.Embeddings[i].Values) == 0 {
			return nil, fmt.Errorf("text %d has empty embedding", i)
		}
		embeddings[i] = apiResp.Embeddings[i].Values
		normalizeEmbedding(embeddings[i])
	}

	return embeddings, nil
}

// normalizeEmbedding scales a vector to unit L2 norm in place
func normalizeEmbedding(embedding []float64) {
	var sumSq float64
	for _, v := range embedding {
		sumSq += v * v
	}
	if sumSq == 0 {
		return
	}

	norm := math.Sqrt(sumSq)
	for i := range embedding {
		embedding[i] /= norm
	}
}

// GeminiGenerator produces answers via the Gemini SDK. Sampling is pinned to
// temperature 0 so a given prompt reproduces the same answer.
type GeminiGenerator struct {
	client *genai.Client
}

// NewGeminiGenerator creates a generator backed by the given client
func NewGeminiGenerator(client *genai.Client) *GeminiGenerator {
	return &GeminiGenerator{client: client}
}

// Generate invokes the model once with the given system instruction and
// prompt. Quota and rate-limit responses surface as ErrGeneratorQuota so the
// caller can show a remediation message distinct from generic failures.
func (g *GeminiGenerator) Generate(ctx context.Context, systemInstruction, prompt string) (string, error) {
	if g.client == nil {
		return "", errors.New("gemini client not set")
	}

	model := g.client.GenerativeModel(generationModel)
	model.SetTemperature(0)
	model.SystemInstruction = &genai.Content{
		Parts: []genai.Part{genai.Text(systemInstruction)},
	}

	resp, err := model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		var apiErr *googleapi.Error
		if errors.As(err, &apiErr) && (apiErr.Code == http.StatusTooManyRequests || apiErr.Code == http.StatusPaymentRequired) {
			return "", fmt.Errorf("%w: %v", ErrGeneratorQuota, err)
		}
		return "", fmt.Errorf("generation API call failed: %w", err)
	}

	var b strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				b.WriteString(string(text))
			}
		}
	}

	result := b.String()
	if result == "" {
		return "", fmt.Errorf("generation API returned empty content")
	}

	return result, nil
}
