package services

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/apierr"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/repos"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

type RatingService interface {
	Submit(ctx context.Context, cmd types.SubmitRatingCommand, userID *uuid.UUID) (string, error)
}

type ratingService struct {
	db         *gorm.DB
	log        *logger.Logger
	ratingRepo repos.RatingRepo
}

func NewRatingService(db *gorm.DB, baseLog *logger.Logger, ratingRepo repos.RatingRepo) RatingService {
	serviceLog := baseLog.With("service", "RatingService")
	return &ratingService{
		db:         db,
		log:        serviceLog,
		ratingRepo: ratingRepo,
	}
}

// Submit records one insert-only feedback row. userID may be nil for
// anonymous submissions; the client fingerprint still attributes them.
func (rs *ratingService) Submit(ctx context.Context, cmd types.SubmitRatingCommand, userID *uuid.UUID) (string, error) {
	if cmd.Rating != types.RatingUp && cmd.Rating != types.RatingDown {
		return "", apierr.Invalid("invalid_rating_value", errors.New("Invalid rating value"))
	}

	numbers, err := parseHymnNumbers(cmd.ProposedHymnNumbers)
	if err != nil {
		return "", err
	}

	rating := &types.Rating{
		ID:                  uuid.New(),
		Rating:              cmd.Rating,
		ProposedHymnNumbers: numbers,
		ClientFingerprint:   cmd.ClientFingerprint,
		UserID:              userID,
		CreatedAt:           time.Now(),
	}

	if _, err := rs.ratingRepo.Create(ctx, nil, rating); err != nil {
		rs.log.Error("Submit rating failed", "error", err, "fingerprint", cmd.ClientFingerprint)
		return "", apierr.Upstream("submit_rating_failed", errors.New("Unable to submit rating"))
	}

	return "Rating submitted successfully.", nil
}

func parseHymnNumbers(raw []string) (pq.Int64Array, error) {
	if len(raw) == 0 {
		return nil, apierr.Invalid("hymn_numbers_required", errors.New("At least one hymn number must be provided"))
	}
	parsed := make(pq.Int64Array, 0, len(raw))
	for _, value := range raw {
		n, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return nil, apierr.Invalid("hymn_numbers_not_integers", errors.New("Hymn numbers must be integers"))
		}
		parsed = append(parsed, n)
	}
	return parsed, nil
}
