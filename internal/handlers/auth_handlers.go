package handlers

import (
	"net/http"
	"strings"

	"techmart/internal/common"
	"techmart/internal/models"
	"techmart/internal/repositories"
	"techmart/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
)

// AuthHandlers handles signup, login, token refresh and password recovery
type AuthHandlers struct {
	userRepo    repositories.UserRepository
	authService services.AuthService
	otpService  services.OTPService
}

// NewAuthHandlers creates a new auth handlers instance
func NewAuthHandlers(userRepo repositories.UserRepository, authService services.AuthService, otpService services.OTPService) *AuthHandlers {
	return &AuthHandlers{
		userRepo:    userRepo,
		authService: authService,
		otpService:  otpService,
	}
}

// SignupRequest represents the registration payload
type SignupRequest struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Password  string `json:"password"`
}

// Signup registers a new user and returns a token pair
func (h *AuthHandlers) Signup(c echo.Context) error {
	ctx := c.Request().Context()

	var req SignupRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if req.Email == "" || req.Password == "" {
		return common.RespondError(c, common.Validationf("email and password are required"))
	}
	if len(req.Password) < 8 {
		return common.RespondError(c, common.Validationf("password must be at least 8 characters"))
	}

	if existing, err := h.userRepo.GetByEmail(ctx, req.Email); err == nil && existing != nil {
		return common.RespondError(c, common.Conflictf("email %q is already registered", req.Email))
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}

	user := &models.User{
		ID:           uuid.New(),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		PasswordHash: string(hash),
		AuthProvider: "email",
	}
	if err := h.userRepo.Create(ctx, user); err != nil {
		return common.RespondError(c, err)
	}

	tokens, err := h.authService.GenerateTokens(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate tokens")
	}
	return common.Success(c, http.StatusCreated, "Account created successfully", map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

// LoginRequest represents the login payload
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login verifies credentials and returns a token pair
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(req.Email)))
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid email or password")
	}

	tokens, err := h.authService.GenerateTokens(ctx, user.ID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate tokens")
	}
	return common.Success(c, http.StatusOK, "Logged in successfully", map[string]interface{}{
		"user":   user,
		"tokens": tokens,
	})
}

// RefreshRequest carries the single-use refresh token
type RefreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh rotates a refresh token into a fresh token pair
func (h *AuthHandlers) Refresh(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	tokens, err := h.authService.RefreshToken(ctx, req.RefreshToken)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired refresh token")
	}
	return common.Success(c, http.StatusOK, "Token refreshed successfully", tokens)
}

// Logout revokes the presented refresh token
func (h *AuthHandlers) Logout(c echo.Context) error {
	ctx := c.Request().Context()

	var req RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	if err := h.authService.RevokeRefreshToken(ctx, req.RefreshToken); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to revoke token")
	}
	return common.Success(c, http.StatusOK, "Logged out successfully", nil)
}

// ForgotPasswordRequest carries the account email
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword issues a one-time code to the account email. The response
// is the same whether or not the account exists.
func (h *AuthHandlers) ForgotPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.userRepo.GetByEmail(ctx, email); err == nil {
		if _, err := h.otpService.Issue(ctx, email); err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to issue code")
		}
	}
	return common.Success(c, http.StatusOK, "If the account exists, a code has been sent", nil)
}

// ResetPasswordRequest carries the email, the one-time code and the new password
type ResetPasswordRequest struct {
	Email       string `json:"email"`
	OTP         string `json:"otp"`
	NewPassword string `json:"new_password"`
}

// ResetPassword consumes a valid one-time code and sets a new password
func (h *AuthHandlers) ResetPassword(c echo.Context) error {
	ctx := c.Request().Context()

	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return common.RespondError(c, common.Validationf("password must be at least 8 characters"))
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if err := h.otpService.Verify(ctx, email, req.OTP); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid or expired code")
	}

	user, err := h.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return common.RespondError(c, err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Password reset successfully", nil)
}

// ChangePasswordRequest carries the current and replacement passwords
type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// ChangePassword lets an authenticated user rotate their password
func (h *AuthHandlers) ChangePassword(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}
	if len(req.NewPassword) < 8 {
		return common.RespondError(c, common.Validationf("password must be at least 8 characters"))
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Current password is incorrect")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to hash password")
	}
	if err := h.userRepo.UpdatePassword(ctx, user.ID, string(hash)); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Password changed successfully", nil)
}

// GetProfile returns the authenticated user's profile
func (h *AuthHandlers) GetProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Profile retrieved successfully", user)
}

// UpdateProfileRequest represents the editable profile fields
type UpdateProfileRequest struct {
	FirstName *string `json:"first_name"`
	LastName  *string `json:"last_name"`
	Image     *string `json:"image"`
}

// UpdateProfile applies a partial update to the authenticated user's profile
func (h *AuthHandlers) UpdateProfile(c echo.Context) error {
	ctx := c.Request().Context()

	userID, ok := common.GetUserIDFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "Authentication required")
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userRepo.GetByID(ctx, userID)
	if err != nil {
		return common.RespondError(c, err)
	}
	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Image != nil {
		user.Image = req.Image
	}
	if err := h.userRepo.Update(ctx, user); err != nil {
		return common.RespondError(c, err)
	}
	return common.Success(c, http.StatusOK, "Profile updated successfully", user)
}
