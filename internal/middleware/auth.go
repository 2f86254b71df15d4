package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/trudransh/kpa-formsdb/internal/services"
	"github.com/trudransh/kpa-formsdb/internal/types"
)

// LocalsUserKey is the fiber context key holding the resolved caller.
const LocalsUserKey = "user"

// RequireUser validates the bearer token on the request and stores the
// resolved user in the context. Handlers behind this middleware never run
// for unauthenticated requests.
func RequireUser(auth *services.AuthService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return types.NewCustomError(fiber.StatusUnauthorized, "Not authenticated", "auth.token.missing")
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" {
			return types.NewCustomError(fiber.StatusUnauthorized, "Not authenticated", "auth.token.malformed")
		}

		user, err := auth.Resolve(token)
		if err != nil {
			return types.NewCustomError(fiber.StatusUnauthorized, "Could not validate credentials", "auth.token.invalid")
		}

		c.Locals(LocalsUserKey, user)

		return c.Next()
	}
}
