package middleware

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"gorm.io/gorm"

	"github.com/sanatech/marketing-api/internal/repository"
	"github.com/sanatech/marketing-api/internal/utils"
)

const unauthorizedMessage = "Not authorized to access this route"

// AdminProtected returns a middleware that validates JWT bearer tokens and
// resolves them to an active admin account. The admin ID and role are stored
// on the request for downstream handlers.
func AdminProtected(secret string, admins repository.AdminRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authorization := c.Get("Authorization")
		if authorization == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, unauthorizedMessage)
		}

		const bearer = "Bearer "
		if !strings.HasPrefix(strings.ToLower(authorization), strings.ToLower(bearer)) {
			return utils.SendError(c, fiber.StatusUnauthorized, unauthorizedMessage)
		}

		tokenString := strings.TrimSpace(authorization[len(bearer):])
		if tokenString == "" {
			return utils.SendError(c, fiber.StatusUnauthorized, unauthorizedMessage)
		}

		token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return utils.SendError(c, fiber.StatusUnauthorized, unauthorizedMessage)
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, unauthorizedMessage)
		}

		adminID, ok := adminIDFromClaims(claims)
		if !ok {
			return utils.SendError(c, fiber.StatusUnauthorized, unauthorizedMessage)
		}

		admin, err := admins.GetByID(c.Context(), adminID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return utils.SendError(c, fiber.StatusUnauthorized, "Admin not found")
			}
			return utils.SendError(c, fiber.StatusInternalServerError, "failed to resolve credentials")
		}
		if !admin.IsActive {
			return utils.SendError(c, fiber.StatusUnauthorized, "Account is deactivated")
		}

		c.Locals("admin_id", admin.ID)
		c.Locals("admin_role", admin.Role)

		return c.Next()
	}
}

func adminIDFromClaims(claims jwt.MapClaims) (uint, bool) {
	for _, key := range []string{"sub", "id"} {
		value, ok := claims[key]
		if !ok {
			continue
		}
		switch v := value.(type) {
		case float64:
			if v >= 0 {
				return uint(v), true
			}
		case string:
			if parsed, err := strconv.ParseUint(v, 10, 64); err == nil {
				return uint(parsed), true
			}
		}
	}
	return 0, false
}
