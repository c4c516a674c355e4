package auth

import (
	"strings"

	"parms/internal/config"
	"parms/internal/database"
	"parms/internal/models"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
)

const (
	CtxUserIDKey   = "user_id"
	CtxUserRoleKey = "user_role"

	TokenCookie = "parms_token"
)

func tokenFromRequest(c *fiber.Ctx) string {
	if h := c.Get(fiber.HeaderAuthorization); h != "" {
		parts := strings.SplitN(h, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
			return strings.TrimSpace(parts[1])
		}
		return ""
	}
	return c.Cookies(TokenCookie)
}

// JWTMiddleware resolves the current user from a bearer header or the
// token cookie. Browsers without a valid token are sent to the login page.
func JWTMiddleware(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		tokenStr := tokenFromRequest(c)
		if tokenStr == "" {
			return unauthorized(c, "Authentication required")
		}

		claims, err := ParseToken(cfg.JWTSecret, tokenStr)
		if err != nil {
			return unauthorized(c, "Invalid or expired token")
		}

		var user models.User
		if err := database.DB.WithContext(c.UserContext()).First(&user, claims.UserID).Error; err != nil {
			return unauthorized(c, "Account no longer exists")
		}

		c.Locals(CtxUserIDKey, user.ID)
		c.Locals(CtxUserRoleKey, user.Role)
		web.SetCurrentUser(c, &user)

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx, msg string) error {
	if web.WantsJSON(c) {
		return fiber.NewError(fiber.StatusUnauthorized, msg)
	}
	web.ExpireCookie(c, TokenCookie)
	return c.Redirect("/login", fiber.StatusSeeOther)
}

func RequireRole(allowedRoles ...models.UserRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := c.Locals(CtxUserRoleKey).(models.UserRole)
		if !ok {
			return fiber.NewError(fiber.StatusForbidden, "Role information is missing")
		}

		for _, r := range allowedRoles {
			if r == role {
				return c.Next()
			}
		}
		return fiber.NewError(fiber.StatusForbidden, "You are not allowed to perform this action")
	}
}
