package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/hdesk/helpdesk-backend/internal/adapters/primary/validation"
	"github.com/hdesk/helpdesk-backend/internal/auth"
	"github.com/hdesk/helpdesk-backend/internal/core/domain"
	apperrors "github.com/hdesk/helpdesk-backend/internal/core/errors"
	"github.com/hdesk/helpdesk-backend/internal/core/ports"
)

// AuthHandler handles registration, login and token refresh.
// Token generation is an adapter concern; the core service only verifies
// credentials and creates users.
type AuthHandler struct {
	authService  ports.AuthService
	tokenManager *auth.TokenManager
	errorHandler *ErrorHandler
	logger       *slog.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(
	authService ports.AuthService,
	tokenManager *auth.TokenManager,
	errorHandler *ErrorHandler,
	logger *slog.Logger,
) *AuthHandler {
	return &AuthHandler{
		authService:  authService,
		tokenManager: tokenManager,
		errorHandler: errorHandler,
		logger:       logger.With("handler", "auth"),
	}
}

// RegisterRoutes sets up the routing for all auth endpoints.
func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/register", h.HandleRegister)
	r.Post("/login", h.HandleLogin)
	r.Post("/refresh", h.HandleRefresh)
}

// --- Request/Response DTOs ---

// RegisterRequest defines the expected JSON body for registration
type RegisterRequest struct {
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

// Validate validates the register request
func (r *RegisterRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("email", r.Email).
		Email("email", r.Email).
		MaxLength("email", r.Email, domain.MaxEmailLength)

	v.Required("fullName", r.FullName).
		MaxLength("fullName", r.FullName, domain.MaxFullNameLength)

	v.Required("password", r.Password)

	// Role is optional; registration defaults it to applicant
	v.OneOf("role", r.Role, []string{"applicant", "operator", "executor"})

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// LoginRequest defines the expected JSON body for login
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Validate validates the login request
func (r *LoginRequest) Validate() error {
	v := validation.NewValidator()

	v.Required("email", r.Email)
	v.Required("password", r.Password)

	if v.HasErrors() {
		return v.Errors()
	}
	return nil
}

// RefreshRequest defines the expected JSON body for token refresh
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// UserDTO defines the JSON response for users.
type UserDTO struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	FullName  string `json:"fullName"`
	Role      string `json:"role"`
	RoleLabel string `json:"roleLabel"`
	IsActive  bool   `json:"isActive"`
	CreatedAt string `json:"createdAt"`
}

func toUserDTO(user *domain.User) UserDTO {
	return UserDTO{
		ID:        user.ID.String(),
		Email:     user.Email,
		FullName:  user.FullName,
		Role:      string(user.Role),
		RoleLabel: user.Role.Label(),
		IsActive:  user.IsActive,
		CreatedAt: user.CreatedAt.Format(time.RFC3339),
	}
}

// TokenResponse carries a fresh token pair.
type TokenResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

// AuthResponse carries the authenticated user together with a token pair.
type AuthResponse struct {
	User         UserDTO `json:"user"`
	AccessToken  string  `json:"accessToken"`
	RefreshToken string  `json:"refreshToken"`
}

// --- Handlers ---

// HandleRegister handles POST /auth/register
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RegisterRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	params := domain.UserRegistrationParams{
		Email:    req.Email,
		FullName: req.FullName,
		Password: req.Password,
		Role:     domain.Role(req.Role),
	}

	user, err := h.authService.Register(r.Context(), params)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(user)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err))
		return
	}

	h.logger.Info("user registered",
		"user_id", user.ID,
		"role", user.Role,
	)

	WriteCreated(w, AuthResponse{
		User:         toUserDTO(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// HandleLogin handles POST /auth/login
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[LoginRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if err := req.Validate(); err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	accessToken, refreshToken, err := h.generateTokenPair(user)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err))
		return
	}

	h.logger.Info("user logged in", "user_id", user.ID)

	WriteJSON(w, http.StatusOK, AuthResponse{
		User:         toUserDTO(user),
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

// HandleRefresh handles POST /auth/refresh.
// A valid refresh token is exchanged for a new token pair without a
// database round trip.
func (h *AuthHandler) HandleRefresh(w http.ResponseWriter, r *http.Request) {
	req, err := validation.DecodeAndValidate[RefreshRequest](r)
	if err != nil {
		h.errorHandler.Handle(w, r, err)
		return
	}

	if req.RefreshToken == "" {
		v := validation.NewValidator()
		v.Custom("refreshToken", false, "This field is required")
		h.errorHandler.Handle(w, r, v.Errors())
		return
	}

	claims, err := h.tokenManager.ValidateRefreshToken(req.RefreshToken)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewUnauthorizedError("Invalid or expired refresh token"))
		return
	}

	accessToken, err := h.tokenManager.GenerateAccessToken(claims.UserID, claims.Role)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err))
		return
	}

	refreshToken, err := h.tokenManager.GenerateRefreshToken(claims.UserID, claims.Role)
	if err != nil {
		h.errorHandler.Handle(w, r, apperrors.NewInternalError(err))
		return
	}

	WriteJSON(w, http.StatusOK, TokenResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	})
}

func (h *AuthHandler) generateTokenPair(user *domain.User) (string, string, error) {
	accessToken, err := h.tokenManager.GenerateAccessToken(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}

	refreshToken, err := h.tokenManager.GenerateRefreshToken(user.ID, user.Role)
	if err != nil {
		return "", "", err
	}

	return accessToken, refreshToken, nil
}
