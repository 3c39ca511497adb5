package middleware

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/anjiri1684/tutoring_api/models"
	"github.com/gofiber/fiber/v2"
	jwtware "github.com/gofiber/jwt/v3"
	"github.com/golang-jwt/jwt/v4"
)

func Protected(secret []byte) fiber.Handler {
	return jwtware.New(jwtware.Config{
		SigningKey:   secret,
		ErrorHandler: jwtError,
	})
}

func jwtError(c *fiber.Ctx, err error) error {
	if strings.EqualFold(err.Error(), "Missing or malformed JWT") {
		return c.Status(fiber.StatusBadRequest).
			JSON(fiber.Map{"status": "error", "message": "Missing or malformed JWT", "data": nil})
	}
	return c.Status(fiber.StatusUnauthorized).
		JSON(fiber.Map{"status": "error", "message": "Invalid or expired JWT", "data": nil})
}

func claims(c *fiber.Ctx) jwt.MapClaims {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok {
		return nil
	}
	mc, _ := token.Claims.(jwt.MapClaims)
	return mc
}

// UserID is the user_id claim of the authenticated caller.
func UserID(c *fiber.Ctx) string {
	id, _ := claims(c)["user_id"].(string)
	return id
}

func Role(c *fiber.Ctx) models.Role {
	role, _ := claims(c)["role"].(string)
	return models.Role(role)
}

// RoleRequired lets the request through only for the given roles.
func RoleRequired(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if !slices.Contains(roles, Role(c)) {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": fmt.Sprintf("Forbidden: %v access required", roles),
			})
		}
		return c.Next()
	}
}

func AdminRequired() fiber.Handler {
	return RoleRequired(models.RoleAdmin)
}

func TutorRequired() fiber.Handler {
	return RoleRequired(models.RoleTutor)
}

// ParseToken validates a bearer token outside the HTTP middleware chain,
// e.g. the first frame of a websocket.
func ParseToken(secret []byte, tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return secret, nil
	})
	if err != nil {
		return nil, err
	}
	if mc, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return mc, nil
	}
	return nil, errors.New("invalid token")
}
