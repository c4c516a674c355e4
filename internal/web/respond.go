package web

import (
	"strings"

	"parms/internal/models"
	"parms/internal/validation"

	"github.com/gofiber/fiber/v2"
)

const CtxUserKey = "auth_user"

// WantsJSON reports whether the caller is an API client rather than a browser.
func WantsJSON(c *fiber.Ctx) bool {
	if strings.Contains(c.Get(fiber.HeaderAccept), fiber.MIMEApplicationJSON) {
		return true
	}
	return c.Is("json")
}

func SetCurrentUser(c *fiber.Ctx, u *models.User) { c.Locals(CtxUserKey, u) }

func CurrentUser(c *fiber.Ctx) *models.User {
	u, _ := c.Locals(CtxUserKey).(*models.User)
	return u
}

// Page carries what the main layout needs on every screen.
type Page struct {
	Title  string
	Nav    string
	Auth   *models.User
	Notice *Notice
}

func NewPage(c *fiber.Ctx, title, nav string) Page {
	return Page{
		Title:  title,
		Nav:    nav,
		Auth:   CurrentUser(c),
		Notice: PopFlash(c),
	}
}

// Redirect stores n for the next page and answers with 303.
func Redirect(c *fiber.Ctx, path string, n *Notice) error {
	SetFlash(c, n)
	return c.Redirect(path, fiber.StatusSeeOther)
}

func ValidationFailed(c *fiber.Ctx, errs validation.Errors) error {
	return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
		"message": "The given data was invalid.",
		"errors":  errs,
	})
}
