package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/dtroode/storefront/internal/model"
)

var _ model.TokenManager = (*JWT)(nil)

const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 30 * 24 * time.Hour

	issuer      = "storefront"
	typeAccess  = "access"
	typeRefresh = "refresh"
)

// Claims are the session token claims.
type Claims struct {
	jwt.RegisteredClaims
	UserID    uuid.UUID `json:"user_id"`
	TokenType string    `json:"typ"`
}

// JWT signs session tokens with HMAC-SHA256.
type JWT struct {
	secretKey  []byte
	accessTTL  time.Duration
	refreshTTL time.Duration
	now        func() time.Time
}

type Option func(*JWT)

func WithAccessTTL(ttl time.Duration) Option {
	return func(j *JWT) {
		if ttl > 0 {
			j.accessTTL = ttl
		}
	}
}

func WithRefreshTTL(ttl time.Duration) Option {
	return func(j *JWT) {
		if ttl > 0 {
			j.refreshTTL = ttl
		}
	}
}

func NewJWT(secretKey string, opts ...Option) *JWT {
	j := &JWT{
		secretKey:  []byte(secretKey),
		accessTTL:  DefaultAccessTTL,
		refreshTTL: DefaultRefreshTTL,
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(j)
	}
	return j
}

// GenerateAccessToken creates a short-lived access token and reports when it expires.
func (j *JWT) GenerateAccessToken(userID uuid.UUID) (string, time.Time, error) {
	now := j.now()
	expiresAt := now.Add(j.accessTTL)

	signed, err := j.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID:    userID,
		TokenType: typeAccess,
	})
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign access token: %w", err)
	}

	return signed, expiresAt, nil
}

// GenerateRefreshToken creates a long-lived refresh token and returns its JTI.
func (j *JWT) GenerateRefreshToken(userID uuid.UUID) (string, string, error) {
	now := j.now()
	jti := uuid.NewString()

	signed, err := j.sign(Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        jti,
			Issuer:    issuer,
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.refreshTTL)),
		},
		UserID:    userID,
		TokenType: typeRefresh,
	})
	if err != nil {
		return "", "", fmt.Errorf("failed to sign refresh token: %w", err)
	}

	return signed, jti, nil
}

func (j *JWT) ParseAccessToken(tokenString string) (uuid.UUID, error) {
	claims, err := j.parse(tokenString, typeAccess)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to parse access token: %w", err)
	}
	return claims.UserID, nil
}

func (j *JWT) ParseRefreshToken(tokenString string) (uuid.UUID, string, error) {
	claims, err := j.parse(tokenString, typeRefresh)
	if err != nil {
		return uuid.Nil, "", fmt.Errorf("failed to parse refresh token: %w", err)
	}
	return claims.UserID, claims.ID, nil
}

func (j *JWT) sign(claims Claims) (string, error) {
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(j.secretKey)
}

func (j *JWT) parse(tokenString, tokenType string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("wrong signing method %v", t.Header["alg"])
		}
		return j.secretKey, nil
	},
		jwt.WithIssuer(issuer),
		jwt.WithTimeFunc(j.now),
	)
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, errors.New("token is invalid")
	}
	if claims.TokenType != tokenType {
		return nil, fmt.Errorf("token type mismatch: %s", claims.TokenType)
	}
	return claims, nil
}
