package repos

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

func testDB(t *testing.T, models ...any) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("unwrap sql.DB: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := db.AutoMigrate(models...); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func testRepoLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("init logger: %v", err)
	}
	return log
}

func TestRatingCreateRoundTrip(t *testing.T) {
	db := testDB(t, &types.Rating{})
	repo := NewRatingRepo(db, testRepoLogger(t))
	ctx := context.Background()
	userID := uuid.New()

	created, err := repo.Create(ctx, nil, &types.Rating{
		ID:                  uuid.New(),
		Rating:              types.RatingUp,
		ProposedHymnNumbers: pq.Int64Array{12, 7, 33},
		ClientFingerprint:   "fp-abc",
		UserID:              &userID,
		CreatedAt:           time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var stored types.Rating
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if len(stored.ProposedHymnNumbers) != 3 || stored.ProposedHymnNumbers[0] != 12 || stored.ProposedHymnNumbers[2] != 33 {
		t.Fatalf("numbers: %v", stored.ProposedHymnNumbers)
	}
	if stored.Rating != types.RatingUp || stored.ClientFingerprint != "fp-abc" {
		t.Fatalf("row: %+v", stored)
	}
	if stored.UserID == nil || *stored.UserID != userID {
		t.Fatalf("user id: %v", stored.UserID)
	}
}

func TestRatingCreateAnonymous(t *testing.T) {
	db := testDB(t, &types.Rating{})
	repo := NewRatingRepo(db, testRepoLogger(t))

	created, err := repo.Create(context.Background(), nil, &types.Rating{
		ID:                  uuid.New(),
		Rating:              types.RatingDown,
		ProposedHymnNumbers: pq.Int64Array{5},
		ClientFingerprint:   "fp-anon",
		CreatedAt:           time.Now(),
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	var stored types.Rating
	if err := db.First(&stored, "id = ?", created.ID).Error; err != nil {
		t.Fatalf("reload: %v", err)
	}
	if stored.UserID != nil {
		t.Fatalf("anonymous rating should have no user id: %v", stored.UserID)
	}
}
