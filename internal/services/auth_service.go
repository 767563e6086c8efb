package services

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"techmart/internal/caching"
	"techmart/internal/models"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// AuthService issues and validates JWT access tokens plus opaque refresh
// tokens. Refresh-token state lives in the cache with its own TTL.
type AuthService interface {
	GenerateTokens(ctx context.Context, userID uuid.UUID) (*models.TokenResponse, error)
	RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error)
	ValidateToken(tokenString string) (*TokenClaims, error)
	RevokeRefreshToken(ctx context.Context, refreshToken string) error
}

type authService struct {
	cacheSvc   caching.CacheService
	jwtSecret  []byte
	tokenTTL   time.Duration
	refreshTTL time.Duration
}

// TokenClaims represents JWT claims
type TokenClaims struct {
	UserID string `json:"user_id"`
	jwt.RegisteredClaims
}

func NewAuthService(cacheSvc caching.CacheService, jwtSecret string, tokenTTL, refreshTTL time.Duration) AuthService {
	return &authService{
		cacheSvc:   cacheSvc,
		jwtSecret:  []byte(jwtSecret),
		tokenTTL:   tokenTTL,
		refreshTTL: refreshTTL,
	}
}

func refreshTokenKey(tokenHash string) string {
	return "techmart:refresh_token:" + tokenHash
}

func (s *authService) GenerateTokens(ctx context.Context, userID uuid.UUID) (*models.TokenResponse, error) {
	now := time.Now()

	claims := TokenClaims{
		UserID: userID.String(),
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "techmart-auth",
			Subject:   userID.String(),
			Audience:  jwt.ClaimStrings{"techmart-api"},
			ExpiresAt: jwt.NewNumericDate(now.Add(s.tokenTTL)),
			IssuedAt:  jwt.NewNumericDate(now),
			ID:        uuid.NewString(),
		},
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.jwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign JWT: %w", err)
	}

	refreshToken, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	key := refreshTokenKey(hashToken(refreshToken))
	if err := s.cacheSvc.SetString(ctx, key, userID.String(), s.refreshTTL); err != nil {
		return nil, fmt.Errorf("failed to store refresh token: %w", err)
	}

	return &models.TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int(s.tokenTTL.Seconds()),
	}, nil
}

func (s *authService) RefreshToken(ctx context.Context, refreshToken string) (*models.TokenResponse, error) {
	key := refreshTokenKey(hashToken(refreshToken))
	stored, err := s.cacheSvc.GetString(ctx, key)
	if err != nil {
		return nil, err
	}
	if stored == "" {
		return nil, fmt.Errorf("refresh token expired or revoked")
	}

	userID, err := uuid.Parse(stored)
	if err != nil {
		return nil, fmt.Errorf("corrupt refresh token record: %w", err)
	}

	// Rotate: the presented token is single use.
	if err := s.cacheSvc.Delete(ctx, key); err != nil {
		return nil, err
	}
	return s.GenerateTokens(ctx, userID)
}

func (s *authService) ValidateToken(tokenString string) (*TokenClaims, error) {
	claims := &TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("token not valid")
	}
	return claims, nil
}

func (s *authService) RevokeRefreshToken(ctx context.Context, refreshToken string) error {
	return s.cacheSvc.Delete(ctx, refreshTokenKey(hashToken(refreshToken)))
}

func generateSecureToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
