package server

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/tenxdevs/hymns-backend/internal/handlers"
	"github.com/tenxdevs/hymns-backend/internal/middleware"
)

type RouterConfig struct {
	AuthHandler       *handlers.AuthHandler
	AuthMiddleware    *middleware.AuthMiddleware
	UserHandler       *handlers.UserHandler
	SetHandler        *handlers.SetHandler
	RatingHandler     *handlers.RatingHandler
	SuggestionHandler *handlers.SuggestionHandler
	AllowOrigins      []string
}

func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.Default()

	allowOrigins := cfg.AllowOrigins
	if len(allowOrigins) == 0 {
		allowOrigins = []string{"http://localhost:3000", "http://localhost:4321"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     allowOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", handlers.HealthCheck)

	api := router.Group("/api")
	{
		// Public: anonymous visitors can request suggestions and rate them;
		// the ratings handler resolves an optional bearer token itself.
		api.POST("/auth/register", cfg.AuthHandler.Register)
		api.POST("/auth/login", cfg.AuthHandler.Login)
		api.POST("/auth/refresh", cfg.AuthHandler.Refresh)
		api.POST("/suggestions", cfg.SuggestionHandler.Generate)
		api.POST("/ratings", cfg.RatingHandler.Submit)

		protected := api.Group("/")
		protected.Use(cfg.AuthMiddleware.RequireAuth())
		protected.POST("/auth/logout", cfg.AuthHandler.Logout)
		protected.GET("/user", cfg.UserHandler.GetMe)

		protected.GET("/sets", cfg.SetHandler.List)
		protected.POST("/sets", cfg.SetHandler.Create)
		protected.GET("/sets/:id", cfg.SetHandler.GetByID)
		protected.PUT("/sets/:id", cfg.SetHandler.Update)
		protected.DELETE("/sets/:id", cfg.SetHandler.Delete)
	}

	return router
}
