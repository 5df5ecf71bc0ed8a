package app

import (
	"strings"
	"time"

	"github.com/tenxdevs/hymns-backend/internal/platform/envutil"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
)

type Config struct {
	Port            string
	JWTSecretKey    string
	AccessTokenTTL  time.Duration
	RefreshTokenTTL time.Duration
	AllowOrigins    []string
}

func LoadConfig(log *logger.Logger) Config {
	jwtSecretKey := envutil.String("JWT_SECRET_KEY", "defaultsecret")
	if jwtSecretKey == "defaultsecret" {
		log.Warn("JWT_SECRET_KEY not set, using insecure default")
	}
	accessTokenTTLSeconds := envutil.Int("ACCESS_TOKEN_TTL", 3600)
	refreshTokenTTLSeconds := envutil.Int("REFRESH_TOKEN_TTL", 86400)

	var allowOrigins []string
	if raw := envutil.String("CORS_ALLOW_ORIGINS", ""); raw != "" {
		for _, origin := range strings.Split(raw, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				allowOrigins = append(allowOrigins, origin)
			}
		}
	}

	return Config{
		Port:            envutil.String("PORT", "8080"),
		JWTSecretKey:    jwtSecretKey,
		AccessTokenTTL:  time.Duration(accessTokenTTLSeconds) * time.Second,
		RefreshTokenTTL: time.Duration(refreshTokenTTLSeconds) * time.Second,
		AllowOrigins:    allowOrigins,
	}
}
