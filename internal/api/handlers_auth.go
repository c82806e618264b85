package api

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kalender/internal/models"
	"github.com/terraincognita07/kalender/internal/services"
)

var errInvalidSession = errors.New("session no longer valid")

type setupRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Password string `json:"password"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

type tokenResponse struct {
	Token              string    `json:"token"`
	ExpiresAt          time.Time `json:"expires_at"`
	MustChangePassword bool      `json:"must_change_password"`
}

func (handler *Handler) SetupStatus(c *fiber.Ctx) error {
	required, err := handler.auth.RequiresInitialSetup(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to load setup status")
	}
	return c.JSON(fiber.Map{"setup_required": required})
}

func (handler *Handler) Setup(c *fiber.Ctx) error {
	var request setupRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	owner, err := handler.auth.SetupOwner(c.UserContext(), request.Password, request.ConfirmPassword)
	switch {
	case errors.Is(err, services.ErrOwnerAlreadyExists):
		return apiError(c, fiber.StatusConflict, "owner already exists")
	case errors.Is(err, services.ErrPasswordMismatch):
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case err != nil:
		handler.logger.WithError(err).Error("owner setup failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to create owner")
	}

	return handler.respondToken(c, fiber.StatusCreated, owner)
}

func (handler *Handler) Login(c *fiber.Ctx) error {
	limiterKey := requestLimiterKey(c)
	now := handler.now()
	if handler.loginLimiter.blocked(limiterKey, now) {
		return apiError(c, fiber.StatusTooManyRequests, "too many login attempts")
	}

	var request loginRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	owner, err := handler.auth.Authenticate(c.UserContext(), request.Password)
	switch {
	case errors.Is(err, services.ErrOwnerNotFound):
		return apiError(c, fiber.StatusConflict, "setup required")
	case errors.Is(err, services.ErrInvalidCredentials):
		handler.loginLimiter.addFailure(limiterKey, now)
		return apiError(c, fiber.StatusUnauthorized, "invalid credentials")
	case err != nil:
		handler.logger.WithError(err).Error("login failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to log in")
	}

	handler.loginLimiter.reset(limiterKey)
	return handler.respondToken(c, fiber.StatusOK, owner)
}

func (handler *Handler) ChangePassword(c *fiber.Ctx) error {
	var request changePasswordRequest
	if err := c.BodyParser(&request); err != nil {
		return apiError(c, fiber.StatusBadRequest, "invalid input")
	}

	err := handler.auth.ChangePassword(c.UserContext(), request.CurrentPassword, request.NewPassword, request.ConfirmPassword)
	switch {
	case errors.Is(err, services.ErrPasswordChangeIncomplete):
		return apiError(c, fiber.StatusBadRequest, "all password fields are required")
	case errors.Is(err, services.ErrPasswordMismatch):
		return apiError(c, fiber.StatusBadRequest, "password mismatch")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apiError(c, fiber.StatusUnauthorized, "invalid current password")
	case errors.Is(err, services.ErrNewPasswordMustDiffer):
		return apiError(c, fiber.StatusBadRequest, "new password must differ")
	case errors.Is(err, services.ErrWeakPassword):
		return apiError(c, fiber.StatusBadRequest, "weak password")
	case err != nil:
		handler.logger.WithError(err).Error("password change failed")
		return apiError(c, fiber.StatusInternalServerError, "failed to change password")
	}

	owner, err := handler.auth.Owner(c.UserContext())
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to change password")
	}
	return handler.respondToken(c, fiber.StatusOK, owner)
}

func (handler *Handler) respondToken(c *fiber.Ctx, status int, owner models.Owner) error {
	token, expiresAt, err := handler.buildToken(owner, authTokenTTL)
	if err != nil {
		return apiError(c, fiber.StatusInternalServerError, "failed to create session")
	}
	return c.Status(status).JSON(tokenResponse{
		Token:              token,
		ExpiresAt:          expiresAt.UTC(),
		MustChangePassword: owner.MustChangePassword,
	})
}
