package api

import (
	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/kalender/internal/models"
)

const changePasswordPath = "/api/auth/change-password"

func (handler *Handler) AuthRequired(c *fiber.Ctx) error {
	owner, err := handler.authenticateRequest(c)
	if err != nil {
		return apiError(c, fiber.StatusUnauthorized, "unauthorized")
	}

	c.Locals(contextOwnerKey, owner)
	if owner.MustChangePassword && c.Path() != changePasswordPath {
		return apiError(c, fiber.StatusForbidden, "password change required")
	}
	return c.Next()
}

func (handler *Handler) authenticateRequest(c *fiber.Ctx) (models.Owner, error) {
	raw, err := bearerToken(c)
	if err != nil {
		return models.Owner{}, err
	}
	claims, err := handler.parseToken(raw)
	if err != nil {
		return models.Owner{}, err
	}

	owner, err := handler.auth.Owner(c.UserContext())
	if err != nil {
		return models.Owner{}, err
	}
	if owner.ID != claims.OwnerID || passwordFingerprint(owner.PasswordHash) != claims.Fingerprint {
		return models.Owner{}, errInvalidSession
	}
	return owner, nil
}
