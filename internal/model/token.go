package model

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrTokenRevoked  = errors.New("refresh token revoked")
	ErrTokenExpired  = errors.New("refresh token expired")
	ErrTokenMismatch = errors.New("refresh token mismatch")
)

// TokenManager generates and validates session access/refresh tokens.
type TokenManager interface {
	GenerateAccessToken(userID uuid.UUID) (token string, expiresAt time.Time, err error)
	GenerateRefreshToken(userID uuid.UUID) (token string, jti string, err error)
	ParseAccessToken(token string) (uuid.UUID, error)
	ParseRefreshToken(token string) (userID uuid.UUID, jti string, err error)
}

// RefreshTokenStore persists issued refresh tokens for rotation and revocation.
type RefreshTokenStore interface {
	Create(ctx context.Context, token RefreshToken) error
	GetByJTI(ctx context.Context, jti string) (RefreshToken, error)
	RevokeByJTI(ctx context.Context, jti string) error
	RevokeAllByUser(ctx context.Context, userID uuid.UUID) error
}

// RefreshToken is the stored form of an issued refresh token. Only a hash of
// the token itself is kept.
type RefreshToken struct {
	ID             uuid.UUID
	JTI            string
	UserID         uuid.UUID
	TokenHash      []byte
	IssuedAt       time.Time
	ExpiresAt      time.Time
	RevokedAt      *time.Time
	RotatedFromJTI *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TokenPair is what a successful sign-in or refresh hands back.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
	ExpiresAt    time.Time
}
