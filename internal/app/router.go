package app

import (
	"github.com/gin-gonic/gin"

	"github.com/tenxdevs/hymns-backend/internal/server"
)

func wireRouter(cfg Config, handlerset Handlers, middlewareset Middleware) *gin.Engine {
	return server.NewRouter(server.RouterConfig{
		AuthHandler:       handlerset.Auth,
		AuthMiddleware:    middlewareset.Auth,
		UserHandler:       handlerset.User,
		SetHandler:        handlerset.Set,
		RatingHandler:     handlerset.Rating,
		SuggestionHandler: handlerset.Suggestion,
		AllowOrigins:      cfg.AllowOrigins,
	})
}
