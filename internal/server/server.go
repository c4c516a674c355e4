// Package server assembles the fiber application: views, middleware and
// every route.
package server

import (
	"errors"
	"log"
	"strings"

	"parms/internal/audit"
	"parms/internal/auth"
	"parms/internal/catalog"
	"parms/internal/config"
	"parms/internal/dashboard"
	"parms/internal/models"
	"parms/internal/property"
	"parms/internal/public"
	"parms/internal/sticker"
	"parms/internal/users"
	"parms/internal/views"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
)

type ErrorPage struct {
	web.Page
	Code    int
	Message string
}

func errorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError
	msg := "Unexpected server error"

	var fe *fiber.Error
	if errors.As(err, &fe) {
		code, msg = fe.Code, fe.Message
	} else {
		log.Println("Unexpected error:", err)
	}

	if web.WantsJSON(c) {
		return c.Status(code).JSON(fiber.Map{"error": msg})
	}

	page := ErrorPage{Page: web.NewPage(c, msg, ""), Code: code, Message: msg}
	layout := "layouts/public"
	if page.Auth != nil {
		layout = "layouts/main"
	}
	if rerr := c.Status(code).Render("errors/error", page, layout); rerr != nil {
		log.Println("error page render failed:", rerr)
		return c.Status(code).SendString(msg)
	}
	return nil
}

func New(cfg *config.Config, qr *sticker.QRGenerator) *fiber.App {
	app := fiber.New(fiber.Config{
		Views:        views.New(),
		ErrorHandler: errorHandler,
	})

	app.Use(recover.New())
	app.Use(logger.New())

	origins := strings.Split(cfg.CORSOrigins, ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(origins, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	Routes(app, cfg, qr)
	return app
}

func Routes(app *fiber.App, cfg *config.Config, qr *sticker.QRGenerator) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Public
	app.Get("/login", auth.LoginPageHandler())
	app.Post("/login", auth.LoginHandler(cfg))
	app.Post("/logout", auth.LogoutHandler())
	app.Get("/p/:public_id", public.PropertyHandler(cfg))

	api := app.Group("/api")
	api.Post("/auth/login", auth.LoginHandler(cfg))
	api.Post("/auth/register-admin", auth.RegisterAdminHandler())

	// Everything below requires a signed-in user
	protected := app.Group("", auth.JWTMiddleware(cfg))

	protected.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/dashboard", fiber.StatusSeeOther)
	})
	protected.Get("/api/auth/me", auth.MeHandler())

	// Dashboard
	protected.Get("/dashboard", dashboard.Handler())
	protected.Get("/api/dashboard/analytics", dashboard.AnalyticsHandler())

	// Locations & conditions
	catalogRoutes(protected, catalog.Locations)
	catalogRoutes(protected, catalog.Conditions)

	// Properties
	protected.Get("/properties", property.IndexHandler())
	protected.Get("/properties/export", property.ExportHandler())
	protected.Post("/properties", property.CreateHandler(cfg))
	protected.Get("/api/properties/:id", property.ShowHandler())
	protected.Post("/properties/:id", property.UpdateHandler())
	protected.Put("/properties/:id", property.UpdateHandler())
	protected.Post("/properties/:id/delete", property.DeleteHandler())
	protected.Delete("/properties/:id", property.DeleteHandler())

	// Stickers
	protected.Get("/properties/:id/sticker", sticker.PreviewHandler(cfg))
	protected.Get("/properties/:id/sticker/print", sticker.PrintHandler(cfg, sticker.HTMLPrinterFor))
	protected.Get("/properties/:id/qr.png", sticker.QRHandler(qr))
	protected.Post("/stickers/selection/clear", sticker.ClearSelectionHandler())
	protected.Post("/stickers/selection/:id", sticker.ToggleSelectionHandler())
	protected.Get("/stickers/print", sticker.BulkPrintHandler(cfg, sticker.HTMLPrinterFor))

	// Users (admin only)
	adminRoutes := protected.Group("/users", auth.RequireRole(models.RoleAdmin))
	adminRoutes.Get("", users.IndexHandler())
	adminRoutes.Post("", users.CreateHandler())
	adminRoutes.Post("/:id", users.UpdateHandler())
	adminRoutes.Put("/:id", users.UpdateHandler())

	protected.Get("/api/audit-logs", auth.RequireRole(models.RoleAdmin), audit.ListHandler())
}

func catalogRoutes(r fiber.Router, d catalog.Descriptor) {
	r.Get(d.Path, catalog.IndexHandler(d))
	r.Post(d.Path, catalog.CreateHandler(d))
	r.Post(d.Path+"/:id", catalog.UpdateHandler(d))
	r.Put(d.Path+"/:id", catalog.UpdateHandler(d))
	r.Post(d.Path+"/:id/delete", catalog.DeleteHandler(d))
	r.Delete(d.Path+"/:id", catalog.DeleteHandler(d))
}
