package repos

import (
	"context"

	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

type HymnRepo interface {
	MatchByEmbedding(ctx context.Context, tx *gorm.DB, embedding []float32, count int) ([]types.SuggestionDTO, error)
}

type hymnRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewHymnRepo(db *gorm.DB, baseLog *logger.Logger) HymnRepo {
	repoLog := baseLog.With("repo", "HymnRepo")
	return &hymnRepo{db: db, log: repoLog}
}

// MatchByEmbedding returns the count hymns nearest to the query embedding by
// cosine distance, nearest first.
func (hr *hymnRepo) MatchByEmbedding(ctx context.Context, tx *gorm.DB, embedding []float32, count int) ([]types.SuggestionDTO, error) {
	transaction := tx
	if transaction == nil {
		transaction = hr.db
	}

	var results []types.SuggestionDTO
	if err := transaction.WithContext(ctx).
		Model(&types.Hymn{}).
		Select("number", "name", "category").
		Clauses(clause.OrderBy{
			Expression: clause.Expr{SQL: "embedding <=> ?", Vars: []any{pgvector.NewVector(embedding)}},
		}).
		Limit(count).
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}
