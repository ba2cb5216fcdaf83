package service

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/logger"
	"github.com/dtroode/storefront/internal/model"
)

// TokenService issues session token pairs and rotates or revokes the refresh
// half through the RefreshTokenStore.
type TokenService struct {
	manager    model.TokenManager
	store      model.RefreshTokenStore
	refreshTTL time.Duration
	logger     *logger.Logger
	now        func() time.Time
}

// NewTokenService creates a token service. refreshTTL must match the lifetime
// the manager signs refresh tokens with; it bounds the stored record.
func NewTokenService(manager model.TokenManager, store model.RefreshTokenStore, refreshTTL time.Duration, logger *logger.Logger) *TokenService {
	return &TokenService{
		manager:    manager,
		store:      store,
		refreshTTL: refreshTTL,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *TokenService) Issue(ctx context.Context, userID uuid.UUID) (model.TokenPair, error) {
	return s.issue(ctx, userID, nil)
}

// Refresh validates the presented refresh token, revokes it and issues a new
// pair linked to it.
func (s *TokenService) Refresh(ctx context.Context, presentedRefresh string) (uuid.UUID, model.TokenPair, error) {
	userID, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return uuid.Nil, model.TokenPair{}, err
	}

	rt, err := s.store.GetByJTI(ctx, jti)
	if err != nil {
		return uuid.Nil, model.TokenPair{}, err
	}

	if err := validateRecord(rt, hashRefresh(presentedRefresh), s.now()); err != nil {
		s.logger.Info("Token service: refresh rejected",
			"user_id", userID,
			"jti", jti,
			"reason", err.Error())
		return uuid.Nil, model.TokenPair{}, err
	}

	if err := s.store.RevokeByJTI(ctx, jti); err != nil {
		return uuid.Nil, model.TokenPair{}, fmt.Errorf("revoke old refresh: %w", err)
	}

	rotatedFrom := rt.JTI
	pair, err := s.issue(ctx, userID, &rotatedFrom)
	if err != nil {
		return uuid.Nil, model.TokenPair{}, err
	}

	return userID, pair, nil
}

func (s *TokenService) RevokeByToken(ctx context.Context, presentedRefresh string) error {
	_, jti, err := s.manager.ParseRefreshToken(presentedRefresh)
	if err != nil {
		return err
	}
	return s.store.RevokeByJTI(ctx, jti)
}

func (s *TokenService) RevokeAllForUser(ctx context.Context, userID uuid.UUID) error {
	return s.store.RevokeAllByUser(ctx, userID)
}

func (s *TokenService) GetUserID(ctx context.Context, token string) (uuid.UUID, error) {
	return s.manager.ParseAccessToken(token)
}

func (s *TokenService) issue(ctx context.Context, userID uuid.UUID, rotatedFrom *string) (model.TokenPair, error) {
	access, expiresAt, err := s.manager.GenerateAccessToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue access: %w", err)
	}

	refresh, jti, err := s.manager.GenerateRefreshToken(userID)
	if err != nil {
		return model.TokenPair{}, fmt.Errorf("issue refresh: %w", err)
	}

	now := s.now()
	rt := model.RefreshToken{
		ID:             uuid.New(),
		JTI:            jti,
		UserID:         userID,
		TokenHash:      hashRefresh(refresh),
		IssuedAt:       now,
		ExpiresAt:      now.Add(s.refreshTTL),
		RotatedFromJTI: rotatedFrom,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.store.Create(ctx, rt); err != nil {
		return model.TokenPair{}, fmt.Errorf("persist refresh: %w", err)
	}

	return model.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresAt:    expiresAt,
	}, nil
}

func hashRefresh(token string) []byte {
	h := sha256.Sum256([]byte(token))
	return h[:]
}

func validateRecord(rt model.RefreshToken, presentedHash []byte, now time.Time) error {
	if rt.RevokedAt != nil {
		return model.ErrTokenRevoked
	}
	if now.After(rt.ExpiresAt) {
		return model.ErrTokenExpired
	}
	if subtle.ConstantTimeCompare(rt.TokenHash, presentedHash) != 1 {
		return model.ErrTokenMismatch
	}
	return nil
}
