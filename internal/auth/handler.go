package auth

import (
	"strings"
	"time"

	"parms/internal/config"
	"parms/internal/database"
	"parms/internal/models"
	"parms/internal/validation"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
)

type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

type RegisterAdminRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Email    string `json:"email" validate:"required,email,max=150"`
	Password string `json:"password" validate:"required,min=8"`
}

type UserResponse struct {
	ID     uint            `json:"id"`
	Name   string          `json:"name"`
	Email  string          `json:"email"`
	Role   models.UserRole `json:"role"`
	Avatar string          `json:"avatar"`
}

func ToUserResponse(u *models.User) UserResponse {
	return UserResponse{ID: u.ID, Name: u.Name, Email: u.Email, Role: u.Role, Avatar: u.Avatar}
}

type LoginPage struct {
	web.Page
	Email  string
	Errors validation.Errors
}

// GET /login
func LoginPageHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.Render("auth/login", LoginPage{Page: web.NewPage(c, "Sign in", "")}, "layouts/public")
	}
}

// POST /login
func LoginHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body LoginRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))

		errs := validation.Struct(&body)
		var user models.User
		if !errs.Any() {
			err := database.DB.WithContext(c.UserContext()).Where("email = ?", body.Email).First(&user).Error
			if err != nil || !CheckPassword(user.PasswordHash, body.Password) {
				errs.Add("email", "These credentials do not match our records.")
			}
		}
		if errs.Any() {
			if web.WantsJSON(c) {
				return web.ValidationFailed(c, errs)
			}
			page := LoginPage{Page: web.NewPage(c, "Sign in", ""), Email: body.Email, Errors: errs}
			return c.Status(fiber.StatusUnprocessableEntity).Render("auth/login", page, "layouts/public")
		}

		token, err := GenerateToken(cfg.JWTSecret, &user)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not issue token")
		}

		if web.WantsJSON(c) {
			return c.JSON(fiber.Map{"token": token, "user": ToUserResponse(&user)})
		}

		c.Cookie(&fiber.Cookie{
			Name:     TokenCookie,
			Value:    token,
			Path:     "/",
			Expires:  time.Now().Add(TokenTTL),
			HTTPOnly: true,
			Secure:   cfg.CookieSecure,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	}
}

// POST /logout
func LogoutHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		web.ExpireCookie(c, TokenCookie)
		return c.Redirect("/login", fiber.StatusSeeOther)
	}
}

// POST /api/auth/register-admin, only while no admin account exists.
func RegisterAdminHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var body RegisterAdminRequest
		if err := c.BodyParser(&body); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		body.Email = strings.TrimSpace(strings.ToLower(body.Email))
		body.Name = strings.TrimSpace(body.Name)

		if errs := validation.Struct(&body); errs.Any() {
			return web.ValidationFailed(c, errs)
		}

		var count int64
		if err := database.DB.Model(&models.User{}).Where("role = ?", models.RoleAdmin).Count(&count).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not check existing accounts")
		}
		if count > 0 {
			return fiber.NewError(fiber.StatusForbidden, "An admin account already exists")
		}

		hash, err := HashPassword(body.Password)
		if err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not hash password")
		}

		user := models.User{
			Name:         body.Name,
			Email:        body.Email,
			PasswordHash: hash,
			Role:         models.RoleAdmin,
		}
		if err := database.DB.Create(&user).Error; err != nil {
			return fiber.NewError(fiber.StatusInternalServerError, "Could not create user")
		}

		return c.Status(fiber.StatusCreated).JSON(ToUserResponse(&user))
	}
}

// GET /api/auth/me
func MeHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		u := web.CurrentUser(c)
		if u == nil {
			return fiber.NewError(fiber.StatusUnauthorized, "Authentication required")
		}
		return c.JSON(fiber.Map{"user": ToUserResponse(u)})
	}
}
