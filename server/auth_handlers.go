package server

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	apperrors "github.com/stockd/stockd/internal/errors"
	"github.com/stockd/stockd/users"
)

type registerRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Address     string `json:"address"`
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// RegisterHandler creates a new user account.
// Endpoint: POST /api/auth/register/
func (s *Server) RegisterHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := s.validate.Struct(req); err != nil {
			respondDetail(w, http.StatusBadRequest, credentialValidationDetail(err))
			return
		}

		if err := users.ValidatePasswordStrength(req.Password); err != nil {
			respondDetail(w, http.StatusBadRequest, err.Error())
			return
		}

		exists, err := s.repos.Users.ExistsByEmail(r.Context(), req.Email)
		if err != nil {
			log.Error().Err(err).Msg("register: exists check failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}
		if exists {
			respondDetail(w, http.StatusBadRequest, "User with this email already exists")
			return
		}

		passwordHash, err := users.HashPassword(req.Password)
		if err != nil {
			log.Error().Err(err).Msg("register: password hashing failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		user := &users.User{
			ID:           uuid.New().String(),
			Email:        req.Email,
			PasswordHash: passwordHash,
			FirstName:    req.FirstName,
			LastName:     req.LastName,
			PhoneNumber:  req.PhoneNumber,
			Address:      req.Address,
			DateJoined:   time.Now(),
		}

		if err := s.repos.Users.Create(r.Context(), user); err != nil {
			if apperrors.Is(err, apperrors.ErrUserExists) {
				respondDetail(w, http.StatusBadRequest, "User with this email already exists")
				return
			}
			log.Error().Err(err).Msg("register: create failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		respondDetail(w, http.StatusCreated, "User created successfully")
	}
}

// LoginHandler verifies credentials and sets the token cookies.
// Endpoint: POST /api/auth/login/
//
// Tokens are never returned in the response body; they travel only in
// HttpOnly cookies so the browser client cannot read them.
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondDetail(w, http.StatusBadRequest, "Invalid request body")
			return
		}

		if err := s.validate.Struct(req); err != nil {
			respondDetail(w, http.StatusBadRequest, credentialValidationDetail(err))
			return
		}

		user, err := s.repos.Users.GetByEmail(r.Context(), req.Email)
		if err != nil || !users.CheckPasswordHash(req.Password, user.PasswordHash) {
			respondDetail(w, http.StatusUnauthorized, "Invalid credentials")
			return
		}

		access, err := s.tokens.CreateAccessToken(user.ID)
		if err != nil {
			log.Error().Err(err).Msg("login: access token creation failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		refresh, err := s.tokens.CreateRefreshToken(user.ID)
		if err != nil {
			log.Error().Err(err).Msg("login: refresh token creation failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		// Best-effort; a failed timestamp update must not fail the login
		if err := s.repos.Users.UpdateLastLogin(r.Context(), user.ID); err != nil {
			log.Warn().Err(err).Msg("login: last_login update failed")
		}

		s.setTokenCookie(w, r, accessTokenCookie, access, int(s.config.GetAccessTokenExpiry().Seconds()))
		s.setTokenCookie(w, r, refreshTokenCookie, refresh, int(s.config.GetRefreshTokenExpiry().Seconds()))

		respondDetail(w, http.StatusOK, "Login successful")
	}
}

// RefreshHandler exchanges a valid refresh cookie for a new access cookie.
// Endpoint: POST /api/auth/refresh/
func (s *Server) RefreshHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(refreshTokenCookie)
		if err != nil || cookie.Value == "" {
			respondDetail(w, http.StatusUnauthorized, "No refresh token provided")
			return
		}

		claims, err := s.tokens.ParseRefreshToken(r.Context(), cookie.Value)
		if err != nil {
			respondDetail(w, http.StatusUnauthorized, "Invalid refresh token")
			return
		}

		access, err := s.tokens.CreateAccessToken(claims.UserID)
		if err != nil {
			log.Error().Err(err).Msg("refresh: access token creation failed")
			respondDetail(w, http.StatusInternalServerError, "Internal server error")
			return
		}

		s.setTokenCookie(w, r, accessTokenCookie, access, int(s.config.GetAccessTokenExpiry().Seconds()))

		respondDetail(w, http.StatusOK, "Token refreshed")
	}
}

// LogoutHandler revokes the refresh token and deletes both cookies.
// Endpoint: POST /api/auth/logout/
//
// The cookies are HttpOnly, so only the server can delete them; the
// refresh token is denylisted to prevent reuse even if stolen.
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(refreshTokenCookie); err == nil && cookie.Value != "" {
			if err := s.tokens.RevokeRefreshToken(r.Context(), cookie.Value); err != nil {
				log.Warn().Err(err).Msg("logout: refresh token revocation failed")
			}
		}

		s.clearTokenCookie(w, r, accessTokenCookie)
		s.clearTokenCookie(w, r, refreshTokenCookie)

		respondDetail(w, http.StatusOK, "Logout successful")
	}
}

// MeHandler returns the authenticated user's profile.
// Endpoint: GET /api/auth/me/
func (s *Server) MeHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user, err := s.repos.Users.Get(r.Context(), userIDFromContext(r.Context()))
		if err != nil {
			// Token is valid but the account no longer exists
			respondDetail(w, http.StatusUnauthorized, "Invalid access token")
			return
		}

		respondJSON(w, http.StatusOK, user.Profile())
	}
}

// credentialValidationDetail maps validator errors on the credential
// payloads to the detail strings the dashboard expects.
func credentialValidationDetail(err error) string {
	var verrs validator.ValidationErrors
	if apperrors.As(err, &verrs) {
		for _, fe := range verrs {
			if fe.Tag() == "email" {
				return "Enter a valid email address"
			}
		}
	}
	return "Email and password are required"
}
