package config

import (
	"strconv"
	"time"
)

type AuthConfig interface {
	GetTokenSecret() []byte
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetSecureCookies() bool
}

type Auth struct{}

var _ AuthConfig = Auth{}

// GetTokenSecret returns the HMAC signing secret for access and refresh
// tokens. The default is only suitable for local development.
func (Auth) GetTokenSecret() []byte {
	return []byte(GetEnv("TOKEN_SECRET", "dev-insecure-token-secret"))
}

func (Auth) GetAccessTokenExpiry() time.Duration {
	return durationEnv("ACCESS_TOKEN_EXPIRY_MINUTES", 5) * time.Minute
}

func (Auth) GetRefreshTokenExpiry() time.Duration {
	return durationEnv("REFRESH_TOKEN_EXPIRY_MINUTES", 7*24*60) * time.Minute
}

// GetSecureCookies controls the Secure flag on the token cookies.
// Defaults to false so local HTTP development works; set SECURE_COOKIES=true
// in production.
func (Auth) GetSecureCookies() bool {
	secure, err := strconv.ParseBool(GetEnv("SECURE_COOKIES", "false"))
	if err != nil {
		return false
	}
	return secure
}

func durationEnv(envVar string, defaultMinutes int) time.Duration {
	v, err := strconv.Atoi(GetEnv(envVar, strconv.Itoa(defaultMinutes)))
	if err != nil || v <= 0 {
		v = defaultMinutes
	}
	return time.Duration(v)
}
