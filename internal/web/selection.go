package web

import (
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// SelectionCookie holds the property ids picked for bulk sticker printing,
// in the order they were picked, joined with dots.
const SelectionCookie = "parms_sticker_selection"

// MaxSelection keeps the cookie well under the 4KB browsers accept.
const MaxSelection = 400

func ReadSelection(c *fiber.Ctx) []uint {
	return ParseSelection(c.Cookies(SelectionCookie))
}

func ParseSelection(raw string) []uint {
	var ids []uint
	seen := map[uint]bool{}
	for _, part := range strings.Split(raw, ".") {
		n, err := strconv.ParseUint(strings.TrimSpace(part), 10, 64)
		if err != nil || n == 0 || seen[uint(n)] {
			continue
		}
		if len(ids) == MaxSelection {
			break
		}
		seen[uint(n)] = true
		ids = append(ids, uint(n))
	}
	return ids
}

func FormatSelection(ids []uint) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatUint(uint64(id), 10)
	}
	return strings.Join(parts, ".")
}

// ToggleSelection appends id, or removes it when already selected. It
// reports false when id cannot be added because the selection is full.
func ToggleSelection(ids []uint, id uint) ([]uint, bool) {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...), true
		}
	}
	if len(ids) >= MaxSelection {
		return ids, false
	}
	return append(ids, id), true
}

func WriteSelection(c *fiber.Ctx, ids []uint) {
	if len(ids) == 0 {
		ExpireCookie(c, SelectionCookie)
		return
	}
	c.Cookie(&fiber.Cookie{
		Name:     SelectionCookie,
		Value:    FormatSelection(ids),
		Path:     "/",
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
}
