package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/tenxdevs/hymns-backend/internal/platform/apierr"
	"github.com/tenxdevs/hymns-backend/internal/platform/logger"
	"github.com/tenxdevs/hymns-backend/internal/repos"
	"github.com/tenxdevs/hymns-backend/internal/requestdata"
	"github.com/tenxdevs/hymns-backend/internal/types"
)

const minPasswordLength = 8

type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int    `json:"expires_in"`
}

type AuthService interface {
	Register(ctx context.Context, email, password string) (*types.User, error)
	Login(ctx context.Context, email, password string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (*TokenPair, error)
	Logout(ctx context.Context) error
	SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error)
	UserIDFromToken(ctx context.Context, tokenString string) (uuid.UUID, error)
	AccessTTL() time.Duration
}

type authService struct {
	db            *gorm.DB
	log           *logger.Logger
	userRepo      repos.UserRepo
	userTokenRepo repos.UserTokenRepo
	jwtSecretKey  string
	accessTTL     time.Duration
	refreshTTL    time.Duration
}

func NewAuthService(
	db *gorm.DB,
	baseLog *logger.Logger,
	userRepo repos.UserRepo,
	userTokenRepo repos.UserTokenRepo,
	jwtSecretKey string,
	accessTTL time.Duration,
	refreshTTL time.Duration,
) AuthService {
	serviceLog := baseLog.With("service", "AuthService")
	return &authService{
		db:            db,
		log:           serviceLog,
		userRepo:      userRepo,
		userTokenRepo: userTokenRepo,
		jwtSecretKey:  jwtSecretKey,
		accessTTL:     accessTTL,
		refreshTTL:    refreshTTL,
	}
}

func (as *authService) Register(ctx context.Context, email, password string) (*types.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, apierr.Invalid("invalid_email", errors.New("A valid email address is required"))
	}
	if len(password) < minPasswordLength {
		return nil, apierr.Invalid("password_too_short", fmt.Errorf("Password must be at least %d characters", minPasswordLength))
	}

	exists, err := as.userRepo.EmailExists(ctx, nil, email)
	if err != nil {
		as.log.Error("Email existence check failed", "error", err, "email", email)
		return nil, apierr.Upstream("register_failed", errors.New("Unable to register user"))
	}
	if exists {
		return nil, apierr.Conflict("email_taken", errors.New("An account with this email already exists"))
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		as.log.Error("Password hashing failed", "error", err)
		return nil, apierr.Upstream("register_failed", errors.New("Unable to register user"))
	}

	now := time.Now()
	user := &types.User{
		ID:        uuid.New(),
		Email:     email,
		Password:  string(hashed),
		CreatedAt: now,
		UpdatedAt: now,
	}
	created, err := as.userRepo.Create(ctx, nil, user)
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apierr.Conflict("email_taken", errors.New("An account with this email already exists"))
		}
		as.log.Error("User create failed", "error", err, "email", email)
		return nil, apierr.Upstream("register_failed", errors.New("Unable to register user"))
	}
	return created, nil
}

func (as *authService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := as.userRepo.GetByEmail(ctx, nil, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apierr.Unauthorized("invalid_credentials", errors.New("Invalid email or password"))
		}
		as.log.Error("User lookup failed", "error", err, "email", email)
		return nil, apierr.Upstream("login_failed", errors.New("Unable to log in"))
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apierr.Unauthorized("invalid_credentials", errors.New("Invalid email or password"))
	}

	var pair *TokenPair
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// A fresh login replaces any previous session for the user.
		if err := as.userTokenRepo.DeleteByUserID(ctx, tx, user.ID); err != nil {
			return fmt.Errorf("delete previous tokens: %w", err)
		}
		issued, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = issued
		return nil
	})
	if txErr != nil {
		as.log.Error("Login failed", "error", txErr, "user_id", user.ID)
		return nil, apierr.Upstream("login_failed", errors.New("Unable to log in"))
	}
	return pair, nil
}

func (as *authService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	refreshToken = strings.TrimSpace(refreshToken)
	if refreshToken == "" {
		return nil, apierr.Unauthorized("invalid_refresh_token", errors.New("Refresh token is required"))
	}

	var pair *TokenPair
	txErr := as.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := as.userTokenRepo.GetByRefreshToken(ctx, tx, refreshToken)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apierr.Unauthorized("invalid_refresh_token", errors.New("Invalid refresh token"))
			}
			return fmt.Errorf("load refresh token: %w", err)
		}
		if existing.ExpiresAt.Before(time.Now()) {
			if err := as.userTokenRepo.DeleteByID(ctx, tx, existing.ID); err != nil {
				return fmt.Errorf("delete expired token: %w", err)
			}
			return apierr.Unauthorized("refresh_token_expired", errors.New("Refresh token expired"))
		}
		user, err := as.userRepo.GetByID(ctx, tx, existing.UserID)
		if err != nil {
			return fmt.Errorf("load user for refresh: %w", err)
		}
		if err := as.userTokenRepo.DeleteByID(ctx, tx, existing.ID); err != nil {
			return fmt.Errorf("rotate token: %w", err)
		}
		issued, err := as.issueTokens(ctx, tx, user)
		if err != nil {
			return err
		}
		pair = issued
		return nil
	})
	if txErr != nil {
		var apiErr *apierr.Error
		if errors.As(txErr, &apiErr) {
			return nil, apiErr
		}
		as.log.Error("Refresh failed", "error", txErr)
		return nil, apierr.Upstream("refresh_failed", errors.New("Unable to refresh session"))
	}
	return pair, nil
}

func (as *authService) Logout(ctx context.Context) error {
	rd := requestdata.GetRequestData(ctx)
	if rd == nil || rd.UserID == uuid.Nil {
		return apierr.Unauthorized("missing_session", errors.New("No active session"))
	}
	if err := as.userTokenRepo.DeleteByUserID(ctx, nil, rd.UserID); err != nil {
		as.log.Error("Logout failed", "error", err, "user_id", rd.UserID)
		return apierr.Upstream("logout_failed", errors.New("Unable to log out"))
	}
	return nil
}

func (as *authService) SetContextFromToken(ctx context.Context, tokenString string) (context.Context, error) {
	userID, err := as.UserIDFromToken(ctx, tokenString)
	if err != nil {
		return ctx, err
	}
	rd := &requestdata.RequestData{
		TokenString: tokenString,
		UserID:      userID,
	}
	return requestdata.WithRequestData(ctx, rd), nil
}

// UserIDFromToken validates the JWT signature and expiry, then confirms the
// token row still exists so revoked sessions fail even with a valid
// signature. Invalid tokens always fail the request, never fall back to
// anonymous.
func (as *authService) UserIDFromToken(ctx context.Context, tokenString string) (uuid.UUID, error) {
	invalid := apierr.Unauthorized("invalid_token", errors.New("Invalid authentication token"))

	parsed, err := jwt.Parse(tokenString, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(as.jwtSecretKey), nil
	})
	if err != nil || !parsed.Valid {
		return uuid.Nil, invalid
	}
	claims, ok := parsed.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, invalid
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return uuid.Nil, invalid
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, invalid
	}

	if _, err := as.userTokenRepo.GetByAccessToken(ctx, nil, tokenString); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return uuid.Nil, invalid
		}
		as.log.Error("Token lookup failed", "error", err)
		return uuid.Nil, apierr.Upstream("token_lookup_failed", errors.New("Unable to verify session"))
	}
	return userID, nil
}

func (as *authService) AccessTTL() time.Duration {
	return as.accessTTL
}

func (as *authService) issueTokens(ctx context.Context, tx *gorm.DB, user *types.User) (*TokenPair, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub": user.ID.String(),
		"iat": now.Unix(),
		"exp": now.Add(as.accessTTL).Unix(),
	}
	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(as.jwtSecretKey))
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.New().String()
	userToken := &types.UserToken{
		ID:           uuid.New(),
		UserID:       user.ID,
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    now.Add(as.refreshTTL),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if _, err := as.userTokenRepo.Create(ctx, tx, userToken); err != nil {
		return nil, fmt.Errorf("persist user token: %w", err)
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresIn:    int(as.accessTTL.Seconds()),
	}, nil
}
