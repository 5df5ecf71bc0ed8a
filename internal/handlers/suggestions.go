package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/services"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

type SuggestionHandler struct {
	log               *logger.Logger
	suggestionService services.SuggestionService
}

func NewSuggestionHandler(log *logger.Logger, suggestionService services.SuggestionService) *SuggestionHandler {
	return &SuggestionHandler{
		log:               log.With("handler", "SuggestionHandler"),
		suggestionService: suggestionService,
	}
}

type generateSuggestionsRequest struct {
	Text  string `json:"text" binding:"required"`
	Count *int   `json:"count" binding:"omitempty,gt=0,lte=10"`
}

func (h *SuggestionHandler) Generate(c *gin.Context) {
	var req generateSuggestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err, "Invalid JSON payload")
		return
	}

	count := 0
	if req.Count != nil {
		count = *req.Count
	}

	items, err := h.suggestionService.Generate(c.Request.Context(), types.GenerateSuggestionsCommand{
		Text:  req.Text,
		Count: count,
	})
	if err != nil {
		RespondServiceError(c, h.log, err, "Failed to generate suggestions")
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": items})
}
