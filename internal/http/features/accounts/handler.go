// Package accounts handles registration, login, and account credentials.
package accounts

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/AmirejibiIlia/RateBridge/internal/http/features/common"
	"github.com/AmirejibiIlia/RateBridge/internal/http/middleware"
	"github.com/AmirejibiIlia/RateBridge/internal/httputil"
	"github.com/AmirejibiIlia/RateBridge/pkg/auth"
	"github.com/AmirejibiIlia/RateBridge/pkg/domain"
)

// Handler handles account endpoints.
type Handler struct {
	logger  *slog.Logger
	service *auth.Service
	tokens  *auth.TokenService
}

// NewHandler creates a new accounts handler.
func NewHandler(logger *slog.Logger, service *auth.Service, tokens *auth.TokenService) *Handler {
	return &Handler{
		logger:  logger,
		service: service,
		tokens:  tokens,
	}
}

// RegisterRequest represents a company registration request.
type RegisterRequest struct {
	CompanyName string `json:"company_name" validate:"required,min=1,max=200"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required"`
}

// LoginRequest represents a login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// ChangePasswordRequest represents a password change request.
type ChangePasswordRequest struct {
	NewPassword string `json:"new_password" validate:"required"`
}

// TokenResponse represents a bearer token response.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

// Register creates a company and its first user, then logs the user in.
// POST /api/auth/register
func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "company_name, email and password are required")
		return
	}

	user, err := h.service.Register(r.Context(), req.CompanyName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmailTaken):
			httputil.Error(w, http.StatusConflict, "email already registered")
		case errors.Is(err, domain.ErrWeakPassword):
			httputil.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		default:
			h.logger.Error("registration failed", "error", err)
			httputil.Error(w, http.StatusInternalServerError, "registration failed")
		}
		return
	}

	h.logger.Info("company registered", "user_id", user.ID, "company_id", user.CompanyID)
	h.writeToken(w, user, http.StatusCreated)
}

// Login verifies credentials and returns a bearer token.
// POST /api/auth/login
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "email and password are required")
		return
	}

	user, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			httputil.Error(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.logger.Error("login failed", "error", err)
		httputil.Error(w, http.StatusInternalServerError, "authentication failed")
		return
	}

	h.writeToken(w, user, http.StatusOK)
}

// Me returns the authenticated user.
// GET /api/auth/me
func (h *Handler) Me(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	httputil.JSON(w, http.StatusOK, common.FromUser(user))
}

// ChangePassword replaces the authenticated user's password.
// PATCH /api/auth/change-password
func (h *Handler) ChangePassword(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.GetPrincipal(r.Context())
	if !ok {
		httputil.Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req ChangePasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := httputil.Validate.Struct(req); err != nil {
		httputil.Error(w, http.StatusBadRequest, "new_password is required")
		return
	}

	if err := h.service.ChangePassword(r.Context(), user.ID, req.NewPassword); err != nil {
		switch {
		case errors.Is(err, domain.ErrWeakPassword):
			httputil.Error(w, http.StatusBadRequest, "password must be at least 8 characters")
		case errors.Is(err, domain.ErrUserNotFound):
			httputil.Error(w, http.StatusNotFound, "user not found")
		default:
			h.logger.Error("password change failed", "error", err, "user_id", user.ID)
			httputil.Error(w, http.StatusInternalServerError, "failed to change password")
		}
		return
	}

	h.logger.Info("password changed", "user_id", user.ID)
	httputil.JSON(w, http.StatusOK, map[string]string{"message": "password updated"})
}

func (h *Handler) writeToken(w http.ResponseWriter, user *domain.User, status int) {
	token, _, err := h.tokens.Issue(user)
	if err != nil {
		h.logger.Error("token issue failed", "error", err, "user_id", user.ID)
		httputil.Error(w, http.StatusInternalServerError, "failed to issue token")
		return
	}
	httputil.JSON(w, status, TokenResponse{
		AccessToken: token,
		TokenType:   "bearer",
		ExpiresIn:   int(h.tokens.TTL().Seconds()),
	})
}
