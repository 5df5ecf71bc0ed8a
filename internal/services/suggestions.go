package services

import (
	"context"
	"errors"

	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/apierr"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/repos"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

const defaultSuggestionCount = 3

type SuggestionService interface {
	Generate(ctx context.Context, cmd types.GenerateSuggestionsCommand) ([]types.SuggestionDTO, error)
}

type suggestionService struct {
	db        *gorm.DB
	log       *logger.Logger
	hymnRepo  repos.HymnRepo
	embedding EmbeddingProvider
}

func NewSuggestionService(db *gorm.DB, baseLog *logger.Logger, hymnRepo repos.HymnRepo, embedding EmbeddingProvider) SuggestionService {
	serviceLog := baseLog.With("service", "SuggestionService")
	return &suggestionService{
		db:        db,
		log:       serviceLog,
		hymnRepo:  hymnRepo,
		embedding: embedding,
	}
}

// Generate embeds the request text and returns the nearest hymns, best match
// first. The count cap lives in the validation layer; only the default is
// applied here. No retry on search failure.
func (sg *suggestionService) Generate(ctx context.Context, cmd types.GenerateSuggestionsCommand) ([]types.SuggestionDTO, error) {
	count := cmd.Count
	if count <= 0 {
		count = defaultSuggestionCount
	}

	vector, err := sg.embedding.Embed(cmd.Text)
	if err != nil {
		sg.log.Error("Embedding failed", "error", err)
		return nil, apierr.Upstream("embedding_failed", errors.New("Failed to fetch hymn suggestions"))
	}

	matches, err := sg.hymnRepo.MatchByEmbedding(ctx, nil, vector, count)
	if err != nil {
		sg.log.Error("Hymn similarity search failed", "error", err)
		return nil, apierr.Upstream("match_hymns_failed", errors.New("Failed to fetch hymn suggestions"))
	}

	if matches == nil {
		matches = []types.SuggestionDTO{}
	}
	return matches, nil
}
