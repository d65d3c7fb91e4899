// Package handler contains the HTTP handlers for the application.
package handler

import (
	"log/slog"
	"net/http"
	"net/url"
	"strconv"

	"usersvc/internal/delivery/http/response"
	"usersvc/internal/usecase"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

// UserHandler holds dependencies for user-related handlers.
type UserHandler struct {
	accounts usecase.AccountUsecase
	auth     usecase.AuthUsecase
	resets   usecase.PasswordResetUsecase
	logger   *slog.Logger
}

// NewUserHandler is the constructor for UserHandler, injected by Fx.
func NewUserHandler(
	accounts usecase.AccountUsecase,
	auth usecase.AuthUsecase,
	resets usecase.PasswordResetUsecase,
	logger *slog.Logger,
) *UserHandler {
	return &UserHandler{
		accounts: accounts,
		auth:     auth,
		resets:   resets,
		logger:   logger,
	}
}

type createUserRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
	Name     string `json:"name" validate:"required"`
	Phone    string `json:"phone" validate:"required"`
	Role     string `json:"role"`
}

type updateUserRequest struct {
	Email           string `json:"email" validate:"required,email"`
	Name            string `json:"name" validate:"required"`
	Phone           string `json:"phone" validate:"required"`
	Role            string `json:"role"`
	Password        string `json:"password"`
	CurrentPassword string `json:"currentPassword"`
}

type verifyCredentialsRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type forgotPasswordRequest struct {
	Email string `json:"email" validate:"required"`
}

type resetPasswordRequest struct {
	Email       string `json:"email" validate:"required"`
	Token       string `json:"token" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required,min=8"`
}

// CreateUser handles the user registration request.
func (h *UserHandler) CreateUser(c echo.Context) error {
	var req createUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid registration input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.accounts.Register(c.Request().Context(), &usecase.RegisterUserInput{
		Email:    req.Email,
		Password: req.Password,
		Name:     req.Name,
		Phone:    req.Phone,
		Role:     req.Role,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusCreated, view, "User registered successfully")
}

// UpdateUser handles the profile/password update request.
func (h *UserHandler) UpdateUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	var req updateUserRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid update input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.accounts.UpdateUser(c.Request().Context(), id, &usecase.UpdateUserInput{
		Email:           req.Email,
		Name:            req.Name,
		Phone:           req.Phone,
		Role:            req.Role,
		Password:        req.Password,
		CurrentPassword: req.CurrentPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "User updated successfully")
}

// GetUser handles the lookup-by-id request.
func (h *UserHandler) GetUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	view, err := h.accounts.GetUser(c.Request().Context(), id)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// GetUserByEmail handles the lookup-by-email request. The email path segment
// may arrive percent-encoded.
func (h *UserHandler) GetUserByEmail(c echo.Context) error {
	email := c.Param("email")
	if decoded, err := url.PathUnescape(email); err == nil {
		email = decoded
	}

	view, err := h.accounts.GetUserByEmail(c.Request().Context(), email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "")
}

// ListUsers handles the list request.
func (h *UserHandler) ListUsers(c echo.Context) error {
	views, err := h.accounts.ListUsers(c.Request().Context())
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, views, "")
}

// DeleteUser handles account deletion.
func (h *UserHandler) DeleteUser(c echo.Context) error {
	id, err := parseUserID(c)
	if err != nil {
		return err
	}

	if err := h.accounts.DeleteUser(c.Request().Context(), id); err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "User deleted successfully"}, "")
}

// VerifyCredentials handles the login check.
func (h *UserHandler) VerifyCredentials(c echo.Context) error {
	var req verifyCredentialsRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid login input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	view, err := h.auth.VerifyCredentials(c.Request().Context(), &usecase.VerifyCredentialsInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, view, "Login successful")
}

// ForgotPassword issues a reset token. The token is returned to the caller;
// delivering it out-of-band is the caller's concern.
func (h *UserHandler) ForgotPassword(c echo.Context) error {
	var req forgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid forgot-password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	token, err := h.resets.GenerateResetToken(c.Request().Context(), req.Email)
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{
		"message": "Reset token generated successfully",
		"token":   token,
	}, "")
}

// ResetPassword consumes a reset token.
func (h *UserHandler) ResetPassword(c echo.Context) error {
	var req resetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return response.BindingError(c, "INVALID_INPUT", "Invalid reset-password input")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	err := h.resets.ResetPassword(c.Request().Context(), &usecase.ResetPasswordInput{
		Email:       req.Email,
		Token:       req.Token,
		NewPassword: req.NewPassword,
	})
	if err != nil {
		return errors.WithStack(err)
	}

	return response.Success(c, http.StatusOK, map[string]string{"message": "Password reset successfully"}, "")
}

func parseUserID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid user id")
	}

	return id, nil
}
