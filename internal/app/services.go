package app

import (
	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/services"
)

type Services struct {
	Auth       services.AuthService
	User       services.UserService
	Set        services.SetService
	Rating     services.RatingService
	Suggestion services.SuggestionService
	Embedding  services.EmbeddingProvider
}

func wireServices(db *gorm.DB, log *logger.Logger, cfg Config, reposet Repos) Services {
	log.Info("Wiring services...")
	embedding := services.NewMockEmbeddingProvider()
	return Services{
		Auth:       services.NewAuthService(db, log, reposet.User, reposet.UserToken, cfg.JWTSecretKey, cfg.AccessTokenTTL, cfg.RefreshTokenTTL),
		User:       services.NewUserService(db, log, reposet.User),
		Set:        services.NewSetService(db, log, reposet.Set),
		Rating:     services.NewRatingService(db, log, reposet.Rating),
		Suggestion: services.NewSuggestionService(db, log, reposet.Hymn, embedding),
		Embedding:  embedding,
	}
}
