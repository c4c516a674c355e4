package dashboard

import (
	"log"

	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
)

type Page struct {
	web.Page
	Analytics *Analytics
	Series    []TimePoint
	Range     Range
	Ranges    []Range
	Staff     bool
}

// Percent is the bar width of n against total.
func (p Page) Percent(n, total int64) int64 {
	if total <= 0 {
		return 0
	}
	return n * 100 / total
}

// SeriesPeak is the highest daily count in the visible window.
func (p Page) SeriesPeak() int64 {
	var peak int64
	for _, pt := range p.Series {
		peak = max(peak, pt.Count)
	}
	return peak
}

func scopeFor(c *fiber.Ctx) Scope {
	s := Scope{ActivityDate: c.Query("activity_date")}
	if u := web.CurrentUser(c); u != nil && !u.IsAdmin() {
		id := u.ID
		s.UserID = &id
	}
	return s
}

// GET /dashboard?activity_date=&range=
func Handler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		s := scopeFor(c)
		a, err := Compute(c.UserContext(), s)
		if err != nil {
			// analytics failures degrade to an empty dashboard
			log.Printf("dashboard: %v", err)
			a = Normalize(nil)
		}
		r := ParseRange(c.Query("range"))

		page := Page{
			Page:      web.NewPage(c, "Dashboard", "dashboard"),
			Analytics: a,
			Series:    Window(a.PropertiesOverTime, r),
			Range:     r,
			Ranges:    Ranges,
			Staff:     s.UserID != nil,
		}
		view := "dashboard/index"
		if page.Staff {
			view = "dashboard/staff"
		}
		return c.Render(view, page, "layouts/main")
	}
}

// GET /api/dashboard/analytics?activity_date=
func AnalyticsHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		a, err := Compute(c.UserContext(), scopeFor(c))
		if err != nil {
			log.Printf("dashboard: %v", err)
			a = Normalize(nil)
		}
		return c.JSON(a)
	}
}
