package handlers

import (
	"errors"
	"log"
	"net/http"

	"flightrules-backend/models"
	"flightrules-backend/service"

	"github.com/gin-gonic/gin"
)

// AskHandler handles HTTP requests for the question-answering pipeline
type AskHandler struct {
	askService *service.AskService
}

// NewAskHandler creates a new ask handler
func NewAskHandler(askService *service.AskService) *AskHandler {
	return &AskHandler{askService: askService}
}

// Ask handles POST /api/ask
func (h *AskHandler) Ask(c *gin.Context) {
	var req models.AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})
		return
	}

	result, err := h.askService.Ask(c.Request.Context(), req)
	if err != nil {
		h.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// writeError maps pipeline errors to the response envelope. Internal detail
// goes to the log, never to the caller.
func (h *AskHandler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrMissingQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Missing query"})

	case errors.Is(err, service.ErrGeneratorQuota):
		log.Printf("Generator quota error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{
			"error": "The answer service is temporarily unavailable due to provider quota or rate limits. Please check the API billing/quota settings or try again shortly.",
		})

	case errors.Is(err, service.ErrEmbeddingFailed):
		log.Printf("Embedding error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to process the question. Please try again."})

	case errors.Is(err, service.ErrRetrievalFailed):
		log.Printf("Retrieval error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search the reference documents. Please try again."})

	case errors.Is(err, service.ErrGenerationFailed):
		log.Printf("Generation error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate an answer. Please try again."})

	default:
		log.Printf("Unexpected error: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
