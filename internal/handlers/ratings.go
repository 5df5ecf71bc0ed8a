package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tenxdevs/hymns-backend/internal/middleware"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/services"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

type RatingHandler struct {
	log           *logger.Logger
	ratingService services.RatingService
	authService   services.AuthService
}

func NewRatingHandler(log *logger.Logger, ratingService services.RatingService, authService services.AuthService) *RatingHandler {
	return &RatingHandler{
		log:           log.With("handler", "RatingHandler"),
		ratingService: ratingService,
		authService:   authService,
	}
}

// hymnNumber accepts either a JSON string or a bare number on the wire;
// the service layer insists the value parses as an integer.
type hymnNumber string

func (n *hymnNumber) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*n = hymnNumber(strings.TrimSpace(s))
		return nil
	}
	*n = hymnNumber(raw)
	return nil
}

type submitRatingRequest struct {
	ProposedHymnNumbers []hymnNumber `json:"proposed_hymn_numbers" binding:"required,min=1"`
	Rating              string       `json:"rating" binding:"required,oneof=up down"`
	ClientFingerprint   string       `json:"client_fingerprint" binding:"required"`
}

func (h *RatingHandler) Submit(c *gin.Context) {
	var req submitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondBindingError(c, err, "Invalid JSON payload")
		return
	}
	fingerprint := strings.TrimSpace(req.ClientFingerprint)
	if fingerprint == "" {
		RespondFieldErrors(c, map[string]string{"client_fingerprint": "Client fingerprint is required"})
		return
	}

	// A bearer token is optional here, but when one is presented it must be
	// valid; a bad token fails the request instead of degrading to anonymous.
	var userID *uuid.UUID
	if token := middleware.ExtractBearerToken(c); token != "" {
		uid, err := h.authService.UserIDFromToken(c.Request.Context(), token)
		if err != nil {
			RespondError(c, http.StatusUnauthorized, "Invalid authentication token")
			return
		}
		userID = &uid
	}

	numbers := make([]string, 0, len(req.ProposedHymnNumbers))
	for _, n := range req.ProposedHymnNumbers {
		numbers = append(numbers, string(n))
	}

	message, err := h.ratingService.Submit(c.Request.Context(), types.SubmitRatingCommand{
		Rating:              req.Rating,
		ProposedHymnNumbers: numbers,
		ClientFingerprint:   fingerprint,
	}, userID)
	if err != nil {
		RespondServiceError(c, h.log, err, "Failed to submit rating")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": message})
}
