package app

import (
	"github.com/tenxdevs/hymns-backend/internal/handlers"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
)

type Handlers struct {
	Auth       *handlers.AuthHandler
	User       *handlers.UserHandler
	Set        *handlers.SetHandler
	Rating     *handlers.RatingHandler
	Suggestion *handlers.SuggestionHandler
}

func wireHandlers(log *logger.Logger, serviceset Services) Handlers {
	log.Info("Wiring handlers...")
	return Handlers{
		Auth:       handlers.NewAuthHandler(serviceset.Auth),
		User:       handlers.NewUserHandler(serviceset.User),
		Set:        handlers.NewSetHandler(log, serviceset.Set),
		Rating:     handlers.NewRatingHandler(log, serviceset.Rating, serviceset.Auth),
		Suggestion: handlers.NewSuggestionHandler(log, serviceset.Suggestion),
	}
}
