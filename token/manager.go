// Package token creates and validates the short-lived access tokens and
// long-lived refresh tokens carried in HttpOnly cookies. Tokens are HS256
// JWTs; refresh tokens are individually revocable through a denylist.
package token

import (
	"context"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/stockd/stockd/internal/config"
	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/token/denylist"
)

// NowTimeFunc returns the current time. It can be overridden in tests.
var NowTimeFunc = time.Now

type TokenType string

const (
	TypeAccess  TokenType = "access"
	TypeRefresh TokenType = "refresh"
)

// Claims is the parsed, validated content of one of our tokens.
type Claims struct {
	UserID    string
	TokenID   string
	Type      TokenType
	ExpiresAt time.Time
}

// Manager handles token creation, validation, and refresh-token revocation.
type Manager struct {
	config   config.AuthConfig
	denylist denylist.Store
}

func NewManager(cfg config.AuthConfig, dl denylist.Store) *Manager {
	return &Manager{
		config:   cfg,
		denylist: dl,
	}
}

// CreateAccessToken issues a short-lived access token for the given user.
func (m *Manager) CreateAccessToken(userID string) (string, error) {
	return m.sign(userID, TypeAccess, m.config.GetAccessTokenExpiry())
}

// CreateRefreshToken issues a long-lived refresh token for the given user.
func (m *Manager) CreateRefreshToken(userID string) (string, error) {
	return m.sign(userID, TypeRefresh, m.config.GetRefreshTokenExpiry())
}

func (m *Manager) sign(userID string, tokenType TokenType, expiry time.Duration) (string, error) {
	now := NowTimeFunc()
	claims := jwtlib.MapClaims{
		"sub":        userID,
		"iat":        now.Unix(),
		"exp":        now.Add(expiry).Unix(),
		"jti":        uuid.New().String(),
		"token_type": string(tokenType),
	}

	t := jwtlib.NewWithClaims(jwtlib.SigningMethodHS256, claims)
	signed, err := t.SignedString(m.config.GetTokenSecret())
	if err != nil {
		return "", apperrors.Wrapf(err, "failed to sign %s token", tokenType)
	}
	return signed, nil
}

// ParseAccessToken validates an access token and returns its claims.
func (m *Manager) ParseAccessToken(tokenStr string) (*Claims, error) {
	return m.parse(tokenStr, TypeAccess)
}

// ParseRefreshToken validates a refresh token, including a denylist check,
// and returns its claims.
func (m *Manager) ParseRefreshToken(ctx context.Context, tokenStr string) (*Claims, error) {
	claims, err := m.parse(tokenStr, TypeRefresh)
	if err != nil {
		return nil, err
	}

	revoked, err := m.denylist.IsRevoked(ctx, claims.TokenID)
	if err != nil {
		return nil, apperrors.Wrapf(err, "denylist check failed")
	}
	if revoked {
		return nil, apperrors.ErrTokenRevoked
	}
	return claims, nil
}

// RevokeRefreshToken denylists a refresh token for the remainder of its
// lifetime. Invalid or already-expired tokens are ignored; logout treats
// them as already gone.
func (m *Manager) RevokeRefreshToken(ctx context.Context, tokenStr string) error {
	claims, err := m.parse(tokenStr, TypeRefresh)
	if err != nil {
		return nil
	}
	return m.denylist.Revoke(ctx, claims.TokenID, time.Until(claims.ExpiresAt))
}

func (m *Manager) parse(tokenStr string, expected TokenType) (*Claims, error) {
	parsed, err := jwtlib.Parse(tokenStr, func(t *jwtlib.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwtlib.SigningMethodHMAC); !ok {
			return nil, apperrors.ErrInvalidToken
		}
		return m.config.GetTokenSecret(), nil
	}, jwtlib.WithTimeFunc(func() time.Time { return NowTimeFunc() }))
	if err != nil {
		if apperrors.Is(err, jwtlib.ErrTokenExpired) {
			return nil, apperrors.ErrTokenExpired
		}
		return nil, apperrors.ErrInvalidToken
	}

	mapClaims, ok := parsed.Claims.(jwtlib.MapClaims)
	if !ok || !parsed.Valid {
		return nil, apperrors.ErrInvalidToken
	}

	tokenType, _ := mapClaims["token_type"].(string)
	if tokenType != string(expected) {
		return nil, apperrors.ErrInvalidToken
	}

	sub, _ := mapClaims["sub"].(string)
	jti, _ := mapClaims["jti"].(string)
	if sub == "" || jti == "" {
		return nil, apperrors.ErrInvalidToken
	}

	exp, err := mapClaims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, apperrors.ErrInvalidToken
	}

	return &Claims{
		UserID:    sub,
		TokenID:   jti,
		Type:      TokenType(tokenType),
		ExpiresAt: exp.Time,
	}, nil
}
