// Package services contains server-side business logic: account handling,
// the atomic invoice procedures, and blob storage with signed URLs.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/varalakshmi119/RetailAssistant-sub001/internal/common"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/dbx"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/auth"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/config"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/models"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/repositories/refreshtokens"
	"github.com/varalakshmi119/RetailAssistant-sub001/internal/server/repositories/users"
)

// Session is what a successful login or refresh returns.
type Session struct {
	UserID       string `json:"user_id"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// UserService handles registration, login, refresh-token rotation, and
// logout.
type UserService struct {
	db                           *sql.DB
	jwtSecret                    []byte
	accessTokenValidityDuration  time.Duration
	refreshTokenValidityDuration time.Duration
}

// NewUserService constructs a UserService from server config.
func NewUserService(db *sql.DB, cfg *config.Config) *UserService {
	return &UserService{
		db:                           db,
		jwtSecret:                    []byte(cfg.SecretKey),
		accessTokenValidityDuration:  cfg.AccessTokenValidityDuration,
		refreshTokenValidityDuration: cfg.RefreshTokenValidityDuration,
	}
}

// Register creates a user account. Duplicate emails surface as
// common.ErrRejected from the repository.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("email and password are required: %w", common.ErrValidation)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}
	if err := users.NewPostgresRepository(s.db).Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies credentials and mints a session. An unknown email and a
// wrong password are indistinguishable to the caller.
func (s *UserService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := users.NewPostgresRepository(s.db).GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, common.ErrUnauthorized
	}
	return s.generateSession(ctx, user.ID, s.db)
}

// Refresh validates a refresh token and rotates it transactionally.
// Revoked or expired tokens yield common.ErrUnauthorized.
func (s *UserService) Refresh(ctx context.Context, refreshToken string) (*Session, error) {
	token, err := refreshtokens.NewPostgresRepository(s.db).Get(ctx, refreshToken)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, common.ErrInternal
	}
	if token.Revoked || token.ExpiresAt.Before(time.Now()) {
		return nil, common.ErrUnauthorized
	}

	var session *Session
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		if err := refreshtokens.NewPostgresRepository(tx).Revoke(ctx, refreshToken); err != nil {
			return err
		}
		var genErr error
		session, genErr = s.generateSession(ctx, token.UserID, tx)
		return genErr
	})
	if err != nil {
		return nil, err
	}
	return session, nil
}

// Logout revokes every refresh token the user holds. Access tokens stay
// valid until they expire.
func (s *UserService) Logout(ctx context.Context, userID string) error {
	return refreshtokens.NewPostgresRepository(s.db).RevokeAllForUser(ctx, userID)
}

func (s *UserService) generateSession(ctx context.Context, userID string, db dbx.DBTX) (*Session, error) {
	access, err := auth.GenerateToken(userID, s.jwtSecret, s.accessTokenValidityDuration)
	if err != nil {
		return nil, common.ErrInternal
	}

	refresh := &models.RefreshToken{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: time.Now().Add(s.refreshTokenValidityDuration),
	}
	if err := refreshtokens.NewPostgresRepository(db).Create(ctx, refresh); err != nil {
		return nil, common.ErrInternal
	}

	return &Session{UserID: userID, AccessToken: access, RefreshToken: refresh.ID}, nil
}
