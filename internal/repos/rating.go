package repos

import (
	"context"

	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

type RatingRepo interface {
	Create(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error)
}

type ratingRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRatingRepo(db *gorm.DB, baseLog *logger.Logger) RatingRepo {
	repoLog := baseLog.With("repo", "RatingRepo")
	return &ratingRepo{db: db, log: repoLog}
}

func (rr *ratingRepo) Create(ctx context.Context, tx *gorm.DB, rating *types.Rating) (*types.Rating, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if err := transaction.WithContext(ctx).Create(rating).Error; err != nil {
		return nil, err
	}
	return rating, nil
}
