package web

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
)

type NoticeKind string

const (
	NoticeSuccess NoticeKind = "success"
	NoticeError   NoticeKind = "error"
	NoticeInfo    NoticeKind = "info"
)

// Notice is a transient toast shown once on the next rendered page.
type Notice struct {
	Kind    NoticeKind `json:"kind"`
	Message string     `json:"message"`
}

type Action string

const (
	ActionCreate Action = "create"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

func (a Action) past() string {
	if strings.HasSuffix(string(a), "e") {
		return string(a) + "d"
	}
	return string(a) + "ed"
}

// SuccessMessage returns e.g. "Location deleted successfully!".
func SuccessMessage(entity string, a Action) string {
	return fmt.Sprintf("%s %s successfully!", capitalize(entity), a.past())
}

// FailureMessage returns e.g. "Failed to update location. Please try again.".
func FailureMessage(entity string, a Action) string {
	return fmt.Sprintf("Failed to %s %s. Please try again.", a, entity)
}

func Success(entity string, a Action) *Notice {
	return &Notice{Kind: NoticeSuccess, Message: SuccessMessage(entity, a)}
}

func Failure(entity string, a Action) *Notice {
	return &Notice{Kind: NoticeError, Message: FailureMessage(entity, a)}
}

func Info(msg string) *Notice { return &Notice{Kind: NoticeInfo, Message: msg} }

func Error(msg string) *Notice { return &Notice{Kind: NoticeError, Message: msg} }

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

const FlashCookie = "parms_notice"

func SetFlash(c *fiber.Ctx, n *Notice) {
	if n == nil {
		return
	}
	b, err := json.Marshal(n)
	if err != nil {
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     FlashCookie,
		Value:    base64.RawURLEncoding.EncodeToString(b),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and expires the cookie.
func PopFlash(c *fiber.Ctx) *Notice {
	raw := c.Cookies(FlashCookie)
	if raw == "" {
		return nil
	}
	ExpireCookie(c, FlashCookie)

	b, err := base64.RawURLEncoding.DecodeString(raw)
	if err != nil {
		return nil
	}
	var n Notice
	if err := json.Unmarshal(b, &n); err != nil || n.Message == "" {
		return nil
	}
	return &n
}

func ExpireCookie(c *fiber.Ctx, name string) {
	c.Cookie(&fiber.Cookie{
		Name:     name,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
