package api

import (
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/terraincognita07/kalender/internal/models"
)

var errMissingBearerToken = errors.New("missing bearer token")

// ownerClaims carry a fingerprint of the password hash so that changing the
// password revokes earlier tokens.
type ownerClaims struct {
	OwnerID     uint   `json:"oid"`
	Fingerprint string `json:"pfp"`
	jwt.RegisteredClaims
}

func (handler *Handler) buildToken(owner models.Owner, ttl time.Duration) (string, time.Time, error) {
	if ttl <= 0 {
		ttl = authTokenTTL
	}
	now := handler.now()
	expiresAt := now.Add(ttl)

	claims := ownerClaims{
		OwnerID:     owner.ID,
		Fingerprint: passwordFingerprint(owner.PasswordHash),
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatUint(uint64(owner.ID), 10),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(handler.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

func (handler *Handler) parseToken(raw string) (*ownerClaims, error) {
	claims := &ownerClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return handler.secretKey, nil
	}, jwt.WithTimeFunc(handler.now), jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}

func bearerToken(c *fiber.Ctx) (string, error) {
	header := strings.TrimSpace(c.Get(fiber.HeaderAuthorization))
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", errMissingBearerToken
	}
	return strings.TrimSpace(token), nil
}

func passwordFingerprint(passwordHash string) string {
	sum := sha256.Sum256([]byte(passwordHash))
	return hex.EncodeToString(sum[:8])
}
