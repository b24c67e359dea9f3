package repository

import (
	"context"
	"fmt"
	"strings"

	"flightrules-backend/models"

	"github.com/jackc/pgx/v5/pgxpool"
)

// EmbeddingDimensions is the fixed dimensionality of stored vectors
const EmbeddingDimensions = 768

// RegChunkRepository handles database operations for regulatory chunks
type RegChunkRepository struct {
	db *pgxpool.Pool
}

// NewRegChunkRepository creates a new regulatory chunk repository
func NewRegChunkRepository(db *pgxpool.Pool) *RegChunkRepository {
	return &RegChunkRepository{db: db}
}

// formatVector formats an embedding vector as a string for pgx
func formatVector(embedding []float64) string {
	if len(embedding) == 0 {
		return "[]"
	}
	var parts []string
	for _, v := range embedding {
		parts = append(parts, fmt.Sprintf("%.6f", v))
	}
	return "[" + strings.Join(parts, ",") + "]"
}

// SearchNearest performs a cosine-similarity search for chunks above a
// similarity threshold, ordered by similarity descending.
// embedding: query embedding vector (768 dimensions)
// threshold: minimum cosine similarity for a chunk to qualify
// limit: maximum number of chunks to return
func (r *RegChunkRepository) SearchNearest(
	ctx context.Context,
	embedding []float64,
	threshold float64,
	limit int,
) ([]models.Chunk, error) {
	if len(embedding) != EmbeddingDimensions {
		return nil, fmt.Errorf("embedding must be %d dimensions, got %d", EmbeddingDimensions, len(embedding))
	}

	vectorStr := formatVector(embedding)

	query := `
		SELECT
			id,
			content,
			source_document,
			page_ref,
			section_label,
			chunk_index,
			created_at,
			1 - (embedding <=> $1::vector) AS similarity
		FROM reg_chunks
		WHERE
			embedding IS NOT NULL
			AND 1 - (embedding <=> $1::vector) >= $2
		ORDER BY
			embedding <=> $1::vector
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, vectorStr, threshold, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query reg chunks: %w", err)
	}
	defer rows.Close()

	var chunks []models.Chunk
	for rows.Next() {
		var chunk models.Chunk
		err := rows.Scan(
			&chunk.ID,
			&chunk.Content,
			&chunk.SourceDocument,
			&chunk.PageRef,
			&chunk.SectionLabel,
			&chunk.ChunkIndex,
			&chunk.CreatedAt,
			&chunk.Similarity,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reg chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reg chunks: %w", err)
	}

	return chunks, nil
}

// InsertChunks inserts a batch of chunks in a single transaction
func (r *RegChunkRepository) InsertChunks(ctx context.Context, chunks []models.Chunk) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO reg_chunks (
			id, content, source_document, page_ref, section_label, chunk_index, embedding
		) VALUES ($1, $2, $3, $4, $5, $6, $7::vector)`

	for _, chunk := range chunks {
		var vectorValue interface{}
		if len(chunk.Embedding) > 0 {
			vectorValue = formatVector(chunk.Embedding)
		}

		_, err = tx.Exec(ctx, query,
			chunk.ID, chunk.Content, chunk.SourceDocument,
			chunk.PageRef, chunk.SectionLabel, chunk.ChunkIndex, vectorValue,
		)
		if err != nil {
			return fmt.Errorf("failed to insert chunk %d of %s: %w", chunk.ChunkIndex, chunk.SourceDocument, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// CountBySourceDocument returns the number of stored chunks for a document.
// Used by the corpus loader to skip documents already ingested.
func (r *RegChunkRepository) CountBySourceDocument(ctx context.Context, sourceDocument string) (int, error) {
	var count int
	err := r.db.QueryRow(ctx,
		"SELECT COUNT(*) FROM reg_chunks WHERE source_document = $1",
		sourceDocument,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count chunks for %s: %w", sourceDocument, err)
	}
	return count, nil
}

// ListMissingEmbeddings returns chunks whose embedding has not been computed yet
func (r *RegChunkRepository) ListMissingEmbeddings(ctx context.Context, limit int) ([]models.Chunk, error) {
	query := `
		SELECT id, content, source_document, page_ref, section_label, chunk_index, created_at
		FROM reg_chunks
		WHERE embedding IS NULL
		ORDER BY source_document, chunk_index
		LIMIT $1`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list chunks missing embeddings: %w", err)
	}
	defer rows.Close()

	var chunks []models.Chunk
	for rows.Next() {
		var chunk models.Chunk
		err := rows.Scan(
			&chunk.ID,
			&chunk.Content,
			&chunk.SourceDocument,
			&chunk.PageRef,
			&chunk.SectionLabel,
			&chunk.ChunkIndex,
			&chunk.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan reg chunk: %w", err)
		}
		chunks = append(chunks, chunk)
	}

	return chunks, rows.Err()
}

// UpdateEmbedding backfills the embedding for a single chunk
func (r *RegChunkRepository) UpdateEmbedding(ctx context.Context, chunk models.Chunk) error {
	if len(chunk.Embedding) != EmbeddingDimensions {
		return fmt.Errorf("embedding must be %d dimensions, got %d", EmbeddingDimensions, len(chunk.Embedding))
	}

	_, err := r.db.Exec(ctx,
		"UPDATE reg_chunks SET embedding = $1::vector WHERE id = $2",
		formatVector(chunk.Embedding), chunk.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update embedding for chunk %s: %w", chunk.ID, err)
	}
	return nil
}
