package http

import (
	"errors"
	"net/http"

	"peerlend-api/internal/adapter/middleware"
	"peerlend-api/internal/usecase/auth"
	"peerlend-api/pkg/validate"

	"github.com/labstack/echo/v4"
)

const (
	msgRegistered  = "User registered successfully."
	msgLoggedIn    = "Logged in successfully."
	msgLoggedOut   = "Logged out successfully."
	msgBadLogin    = "Invalid email or password."
)

type AuthHandler struct{ uc *auth.Usecase }

func NewAuthHandler(uc *auth.Usecase) *AuthHandler { return &AuthHandler{uc: uc} }

func (h *AuthHandler) Register(c echo.Context) error {
	var in auth.RegisterInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, msgInvalidBody, nil)
	}
	dto, err := h.uc.Register(c.Request().Context(), in)
	if err != nil {
		return h.authError(c, err)
	}
	return success(c, http.StatusCreated, msgRegistered, dto)
}

func (h *AuthHandler) Login(c echo.Context) error {
	var in auth.LoginInput
	if err := c.Bind(&in); err != nil {
		return fail(c, http.StatusBadRequest, msgInvalidBody, nil)
	}
	dto, err := h.uc.Login(c.Request().Context(), in)
	if err != nil {
		return h.authError(c, err)
	}
	return success(c, http.StatusOK, msgLoggedIn, dto)
}

// Logout runs behind the auth middleware, so the token is known-valid here.
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.uc.Logout(c.Request().Context(), middleware.CallerToken(c)); err != nil {
		return fail(c, http.StatusInternalServerError, msgInternal, nil)
	}
	return success(c, http.StatusOK, msgLoggedOut, nil)
}

func (h *AuthHandler) authError(c echo.Context, err error) error {
	var ve *validate.Error
	switch {
	case errors.As(err, &ve):
		return fail(c, http.StatusUnprocessableEntity, msgValidationFailed, ve.Fields)
	case errors.Is(err, auth.ErrInvalidCredentials):
		return fail(c, http.StatusUnauthorized, msgBadLogin, nil)
	default:
		return fail(c, http.StatusInternalServerError, msgInternal, nil)
	}
}
