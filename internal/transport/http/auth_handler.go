package http

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/veeplay/veeplay-api/internal/media"
	"github.com/veeplay/veeplay-api/internal/service"
	"github.com/veeplay/veeplay-api/internal/util"
)

type AuthHandler struct {
	auth  *service.AuthService
	watch *service.WatchService

	imageMaxBytes int64
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService, watch *service.WatchService, imageMaxBytes int64) {
	handler := &AuthHandler{auth: auth, watch: watch, imageMaxBytes: imageMaxBytes}

	e.POST("/register", handler.register)
	e.POST("/login", handler.login)
	e.POST("/forgot-password", handler.forgotPassword)
	e.POST("/reset-password/:token", handler.resetPassword)

	protected := e.Group("", RequireAuth(auth))
	protected.GET("/account", handler.account)
	protected.PUT("/account/:email", handler.updateAccount)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Username) == "" || strings.TrimSpace(req.Email) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("username, email and password are required"))
	}

	_, err := h.auth.Register(c.Request().Context(), req.Username, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserExists):
			return c.JSON(http.StatusConflict, util.Error("email already exists"))
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusBadRequest, util.Error("invalid registration data"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not create user"))
		}
	}

	return c.JSON(http.StatusCreated, util.Envelope{"message": "User created successfully"})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			return c.JSON(http.StatusUnauthorized, util.Error("invalid credentials"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not log in"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"token":      result.Token,
		"expires_at": result.ExpiresAt.UTC().Format(time.RFC3339),
		"username":   result.User.Username,
		"email":      result.User.Email,
	})
}

func (h *AuthHandler) account(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	ctx := c.Request().Context()

	imageURL, err := h.auth.ProfileImageURL(ctx, user)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load account"))
	}

	history, err := h.watch.History(ctx, user.ID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, util.Error("unable to load watch history"))
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"id":            user.ID,
		"username":      user.Username,
		"email":         user.Email,
		"img_file":      imageURL,
		"watch_history": history,
	})
}

func (h *AuthHandler) updateAccount(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	update := service.ProfileUpdate{}
	if v := c.FormValue("username"); v != "" {
		update.Username = &v
	}
	if v := c.FormValue("email"); v != "" {
		update.Email = &v
	}
	if file, err := c.FormFile("img_file"); err == nil && file != nil {
		if h.imageMaxBytes > 0 && file.Size > h.imageMaxBytes {
			return c.JSON(http.StatusBadRequest, util.Error("profile image too large"))
		}
		src, err := file.Open()
		if err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("unable to read profile image"))
		}
		defer src.Close()
		update.Image = &media.Upload{
			Reader:      src,
			Size:        file.Size,
			FileName:    file.Filename,
			ContentType: file.Header.Get(echo.HeaderContentType),
		}
	}

	updated, err := h.auth.UpdateProfile(c.Request().Context(), user, c.Param("email"), update)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		case errors.Is(err, service.ErrForbidden):
			return c.JSON(http.StatusForbidden, util.Error("not allowed to edit this account"))
		case errors.Is(err, service.ErrUserExists):
			return c.JSON(http.StatusConflict, util.Error("email already in use"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not update account"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{
		"message": "User updated successfully",
		"user": util.Envelope{
			"id":       updated.ID,
			"username": updated.Username,
			"email":    updated.Email,
		},
	})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if strings.TrimSpace(req.Email) == "" {
		return c.JSON(http.StatusBadRequest, util.Error("email is required"))
	}

	if err := h.auth.ForgotPassword(c.Request().Context(), req.Email); err != nil {
		switch {
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("email not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not send reset link"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{"message": "Reset link sent to email"})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}
	if req.Password == "" {
		return c.JSON(http.StatusBadRequest, util.Error("password is required"))
	}

	err := h.auth.ResetPassword(c.Request().Context(), c.Param("token"), req.Password)
	if err != nil {
		switch {
		// Replayed and invalid tokens are indistinguishable on the wire so a
		// caller cannot probe whether a stolen token was ever valid.
		case errors.Is(err, service.ErrResetTokenInvalid),
			errors.Is(err, service.ErrResetTokenUsed),
			errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error("user not found"))
		default:
			return c.JSON(http.StatusInternalServerError, util.Error("could not reset password"))
		}
	}

	return c.JSON(http.StatusOK, util.Envelope{"message": "Password updated successfully"})
}
