package handlers

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var validate = validator.New()

// identity is the decoded JWT of the current request. Handlers read it through
// currentIdentity instead of poking at fiber locals directly.
type identity struct {
	UserID uuid.UUID
	Role   string
}

func currentIdentity(c *fiber.Ctx) (identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return identity{}, fiber.NewError(fiber.StatusUnauthorized, "missing token")
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return identity{}, fiber.NewError(fiber.StatusUnauthorized, "malformed claims")
	}

	rawID, _ := claims["user_id"].(string)
	userID, err := uuid.Parse(rawID)
	if err != nil {
		return identity{}, fiber.NewError(fiber.StatusUnauthorized, "malformed user id")
	}

	role, _ := claims["role"].(string)
	return identity{UserID: userID, Role: role}, nil
}
