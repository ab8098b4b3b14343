package accounts

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/clinicmate/clinicmate/internal/platform/auth"
)

type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// RegisterPublicRoutes attaches the unauthenticated account endpoints.
func (h *Handler) RegisterPublicRoutes(api *echo.Group) {
	api.POST("/auth/sign_up", h.SignUp)
	api.POST("/auth/log_in", h.LogIn)
	api.POST("/auth/reset_password", h.ResetPassword)
}

// RegisterRoutes attaches the endpoints that require authentication.
func (h *Handler) RegisterRoutes(api *echo.Group) {
	api.POST("/auth/log_out", h.LogOut)
	api.GET("/profile_data", h.ProfileData)
	api.PATCH("/update_profile", h.UpdateProfile)
	api.PATCH("/update_address", h.UpdateAddress)
}

func (h *Handler) SignUp(c echo.Context) error {
	var req SignUpRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, token, err := h.svc.SignUp(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusCreated, map[string]interface{}{
		"message": "Sign-up successful",
		"token":   token,
		"user":    u,
	})
}

func (h *Handler) LogIn(c echo.Context) error {
	var req LogInRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	u, token, err := h.svc.LogIn(c.Request().Context(), req)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"message": "Login successful",
		"token":   token,
		"user":    u,
	})
}

// LogOut acknowledges the request. Tokens are stateless; discarding the
// token is the client's responsibility.
func (h *Handler) LogOut(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"message": "Logout successful"})
}

func (h *Handler) ResetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.ResetPassword(c.Request().Context(), req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Password reset successful"})
}

func (h *Handler) ProfileData(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	p, err := h.svc.Profile(c.Request().Context(), userID)
	if err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, p)
}

func (h *Handler) UpdateProfile(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.UpdateProfile(c.Request().Context(), userID, req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Profile updated successfully"})
}

func (h *Handler) UpdateAddress(c echo.Context) error {
	userID, err := requestUserID(c)
	if err != nil {
		return err
	}

	var req UpdateAddressRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}

	if err := h.svc.UpdateAddress(c.Request().Context(), userID, req); err != nil {
		return httpError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Address updated successfully"})
}

func requestUserID(c echo.Context) (uuid.UUID, error) {
	uid := auth.UserIDFromContext(c.Request().Context())
	if uid == "" {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "authentication required")
	}
	userID, err := uuid.Parse(uid)
	if err != nil {
		return uuid.Nil, echo.NewHTTPError(http.StatusUnauthorized, "invalid user identity")
	}
	return userID, nil
}

func httpError(err error) error {
	switch {
	case errors.Is(err, ErrEmailTaken):
		return echo.NewHTTPError(http.StatusConflict, "Email is already registered")
	case errors.Is(err, ErrInvalidCredentials):
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid email or password")
	case errors.Is(err, ErrUserNotFound):
		return echo.NewHTTPError(http.StatusNotFound, "User not found")
	case errors.Is(err, ErrWeakPassword):
		return echo.NewHTTPError(http.StatusBadRequest, "Password must be at least 8 characters")
	case errors.Is(err, ErrInvalidEmail):
		return echo.NewHTTPError(http.StatusBadRequest, "A valid email address is required")
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, "internal server error")
	}
}
