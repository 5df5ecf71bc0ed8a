package app

import (
	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/repos"
)

type Repos struct {
	User      repos.UserRepo
	UserToken repos.UserTokenRepo
	Set       repos.SetRepo
	Rating    repos.RatingRepo
	Hymn      repos.HymnRepo
}

func wireRepos(db *gorm.DB, log *logger.Logger) Repos {
	log.Info("Wiring repos...")
	return Repos{
		User:      repos.NewUserRepo(db, log),
		UserToken: repos.NewUserTokenRepo(db, log),
		Set:       repos.NewSetRepo(db, log),
		Rating:    repos.NewRatingRepo(db, log),
		Hymn:      repos.NewHymnRepo(db, log),
	}
}
