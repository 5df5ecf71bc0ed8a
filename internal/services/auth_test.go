package services

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/tenxdevs/hymns-backend/internal/repos"
	"github.com/tenxdevs/hymns-backend/internal/requestdata"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

func newAuthService(t *testing.T) AuthService {
	return newAuthServiceWithTTL(t, time.Hour, 24*time.Hour)
}

func newAuthServiceWithTTL(t *testing.T, accessTTL, refreshTTL time.Duration) AuthService {
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

	if err := db.AutoMigrate(&types.User{}, &types.UserToken{}); err != nil {
		t.Fatalf("migrate: %v", err)
	}

	log := testLogger(t)
	return NewAuthService(
		db,
		log,
		repos.NewUserRepo(db, log),
		repos.NewUserTokenRepo(db, log),
		"test-secret",
		accessTTL,
		refreshTTL,
	)
}

func TestAuthRegisterAndLogin(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "  Organist@Example.COM ", "trustno1!")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if user.Email != "organist@example.com" {
		t.Fatalf("email not normalized: %q", user.Email)
	}
	if user.Password == "trustno1!" {
		t.Fatalf("password stored in plaintext")
	}

	pair, err := svc.Login(ctx, "organist@example.com", "trustno1!")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if pair.AccessToken == "" || pair.RefreshToken == "" {
		t.Fatalf("incomplete token pair: %+v", pair)
	}
	if pair.ExpiresIn != 3600 {
		t.Fatalf("expires_in: want=3600 got=%d", pair.ExpiresIn)
	}

	gotID, err := svc.UserIDFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("UserIDFromToken: %v", err)
	}
	if gotID != user.ID {
		t.Fatalf("token subject: want=%s got=%s", user.ID, gotID)
	}
}

func TestAuthRegisterValidation(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	cases := []struct {
		name     string
		email    string
		password string
		status   int
	}{
		{"empty_email", "", "longenough", http.StatusBadRequest},
		{"email_without_at", "not-an-email", "longenough", http.StatusBadRequest},
		{"short_password", "a@b.com", "short", http.StatusBadRequest},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Register(ctx, tc.email, tc.password)
			assertAPIStatus(t, err, tc.status)
		})
	}
}

func TestAuthRegisterDuplicateEmail(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "dup@example.com", "longenough"); err != nil {
		t.Fatalf("first register: %v", err)
	}
	_, err := svc.Register(ctx, "DUP@example.com", "longenough")
	apiErr := assertAPIStatus(t, err, http.StatusConflict)
	if apiErr.Error() != "An account with this email already exists" {
		t.Fatalf("message: %q", apiErr.Error())
	}
}

func TestAuthLoginBadCredentials(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "choir@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}

	// Unknown email and wrong password read identically to a caller.
	_, err := svc.Login(ctx, "nobody@example.com", "longenough")
	apiErr := assertAPIStatus(t, err, http.StatusUnauthorized)
	if apiErr.Error() != "Invalid email or password" {
		t.Fatalf("message: %q", apiErr.Error())
	}

	_, err = svc.Login(ctx, "choir@example.com", "wrongpass!")
	apiErr = assertAPIStatus(t, err, http.StatusUnauthorized)
	if apiErr.Error() != "Invalid email or password" {
		t.Fatalf("message: %q", apiErr.Error())
	}
}

func TestAuthLoginReplacesSession(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "cantor@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	first, err := svc.Login(ctx, "cantor@example.com", "longenough")
	if err != nil {
		t.Fatalf("first login: %v", err)
	}
	second, err := svc.Login(ctx, "cantor@example.com", "longenough")
	if err != nil {
		t.Fatalf("second login: %v", err)
	}

	// Refresh tokens are unique per session, so they show the replacement
	// even when two logins land in the same second.
	if _, err := svc.Refresh(ctx, first.RefreshToken); err == nil {
		t.Fatalf("first session should be revoked by second login")
	}
	if _, err := svc.UserIDFromToken(ctx, second.AccessToken); err != nil {
		t.Fatalf("second session should be valid: %v", err)
	}
}

func TestAuthRefreshRotates(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "deacon@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(ctx, "deacon@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	next, err := svc.Refresh(ctx, pair.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if next.RefreshToken == pair.RefreshToken {
		t.Fatalf("refresh token was not rotated")
	}

	// The old refresh token is single-use.
	_, err = svc.Refresh(ctx, pair.RefreshToken)
	assertAPIStatus(t, err, http.StatusUnauthorized)

	if _, err := svc.UserIDFromToken(ctx, next.AccessToken); err != nil {
		t.Fatalf("rotated access token should be valid: %v", err)
	}
}

func TestAuthRefreshRejectsUnknownAndEmpty(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Refresh(ctx, "")
	assertAPIStatus(t, err, http.StatusUnauthorized)

	_, err = svc.Refresh(ctx, uuid.New().String())
	apiErr := assertAPIStatus(t, err, http.StatusUnauthorized)
	if apiErr.Error() != "Invalid refresh token" {
		t.Fatalf("message: %q", apiErr.Error())
	}
}

func TestAuthRefreshExpired(t *testing.T) {
	svc := newAuthServiceWithTTL(t, time.Hour, -time.Minute)
	ctx := context.Background()

	if _, err := svc.Register(ctx, "late@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(ctx, "late@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	_, err = svc.Refresh(ctx, pair.RefreshToken)
	apiErr := assertAPIStatus(t, err, http.StatusUnauthorized)
	if apiErr.Error() != "Refresh token expired" {
		t.Fatalf("message: %q", apiErr.Error())
	}
}

func TestAuthInvalidTokens(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	for _, token := range []string{"", "garbage", "a.b.c"} {
		if _, err := svc.UserIDFromToken(ctx, token); err == nil {
			t.Fatalf("token %q should be rejected", token)
		}
	}

	// A token signed with a different secret fails even if well-formed.
	other := newAuthService(t)
	if _, err := other.Register(ctx, "x@example.com", "longenough"); err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := other.Login(ctx, "x@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	_, err = svc.UserIDFromToken(ctx, pair.AccessToken)
	apiErr := assertAPIStatus(t, err, http.StatusUnauthorized)
	if apiErr.Error() != "Invalid authentication token" {
		t.Fatalf("message: %q", apiErr.Error())
	}
}

func TestAuthLogoutRevokesSession(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "sacristan@example.com", "longenough")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(ctx, "sacristan@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authedCtx := requestdata.WithRequestData(ctx, &requestdata.RequestData{
		TokenString: pair.AccessToken,
		UserID:      user.ID,
	})
	if err := svc.Logout(authedCtx); err != nil {
		t.Fatalf("Logout: %v", err)
	}
	if _, err := svc.UserIDFromToken(ctx, pair.AccessToken); err == nil {
		t.Fatalf("access token should be revoked after logout")
	}

	err = svc.Logout(ctx)
	assertAPIStatus(t, err, http.StatusUnauthorized)
}

func TestAuthSetContextFromToken(t *testing.T) {
	svc := newAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, "lector@example.com", "longenough")
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	pair, err := svc.Login(ctx, "lector@example.com", "longenough")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	authedCtx, err := svc.SetContextFromToken(ctx, pair.AccessToken)
	if err != nil {
		t.Fatalf("SetContextFromToken: %v", err)
	}
	rd := requestdata.GetRequestData(authedCtx)
	if rd == nil || rd.UserID != user.ID || rd.TokenString != pair.AccessToken {
		t.Fatalf("request data not populated: %+v", rd)
	}
}
