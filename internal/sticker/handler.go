package sticker

import (
	"errors"
	"fmt"
	"log"

	"parms/internal/config"
	"parms/internal/models"
	"parms/internal/property"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
)

var selectionFull = fmt.Sprintf("You can select up to %d properties for one print run.", web.MaxSelection)

const (
	printFailed     = "Failed to print stickers. Please try again."
	printOneFailed  = "Failed to print sticker. Please try again."
	nothingSelected = "Select at least one property to print."
)

// PrinterFor picks the printer that writes into the response of c.
type PrinterFor func(c *fiber.Ctx) Printer

func HTMLPrinterFor(c *fiber.Ctx) Printer { return HTMLPrinter{Target: c} }

func letterhead(cfg *config.Config) Letterhead {
	return Letterhead{Agency: cfg.AgencyName, Office: cfg.AgencyOffice}
}

func loadProperty(c *fiber.Ctx) (*models.Property, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	p, err := property.Find(c.UserContext(), uint(id))
	if errors.Is(err, property.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
	}
	if err != nil {
		log.Printf("sticker: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load property")
	}
	return p, nil
}

type PreviewPage struct {
	web.Page
	Property *models.Property
	Doc      Document
	Scales   []float64
}

// GET /properties/:id/sticker?scale=
func PreviewHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := loadProperty(c)
		if err != nil {
			return err
		}
		scale := 1.0
		if raw := c.Query("scale"); raw != "" {
			scale = ParseScale(raw)
		}
		page := PreviewPage{
			Page:     web.NewPage(c, "Sticker "+p.PropertyNumber, "properties"),
			Property: p,
			Doc:      SingleDocument(letterhead(cfg), FromProperty(p), Layout{Scale: scale}, false),
			Scales:   []float64{0.5, 0.75, 1},
		}
		return c.Render("stickers/preview", page, "layouts/main")
	}
}

// GET /properties/:id/sticker/print
func PrintHandler(cfg *config.Config, printerFor PrinterFor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := loadProperty(c)
		if err != nil {
			return err
		}
		doc := SingleDocument(letterhead(cfg), FromProperty(p), Layout{Scale: 1}, true)
		// used when the browser blocked the print popup
		doc.ReturnTo = fmt.Sprintf("/properties/%d/sticker", p.ID)
		if _, err := printerFor(c).Print(c.UserContext(), doc); err != nil {
			log.Printf("sticker: %v", err)
			c.Response().ResetBody()
			return web.Redirect(c, "/properties", web.Error(printOneFailed))
		}
		return nil
	}
}

// GET /properties/:id/qr.png
func QRHandler(qr *QRGenerator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := loadProperty(c)
		if err != nil {
			return err
		}
		png, err := qr.PNG(c.UserContext(), p.QRCodeURL)
		if err != nil {
			log.Printf("sticker: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not render QR code")
		}
		c.Set(fiber.HeaderContentType, "image/png")
		c.Set(fiber.HeaderCacheControl, "private, max-age=3600")
		return c.Send(png)
	}
}

func back(c *fiber.Ctx) string {
	if to := c.FormValue("return_to"); len(to) > 0 && to[0] == '/' && (len(to) == 1 || to[1] != '/') {
		return to
	}
	return "/properties"
}

// POST /stickers/selection/:id
func ToggleSelectionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := loadProperty(c)
		if err != nil {
			return err
		}
		ids, ok := web.ToggleSelection(web.ReadSelection(c), p.ID)
		if !ok {
			if web.WantsJSON(c) {
				return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{"message": selectionFull, "selected": ids})
			}
			return web.Redirect(c, back(c), web.Error(selectionFull))
		}
		web.WriteSelection(c, ids)
		if web.WantsJSON(c) {
			return c.JSON(fiber.Map{"selected": ids})
		}
		return c.Redirect(back(c), fiber.StatusSeeOther)
	}
}

// POST /stickers/selection/clear
func ClearSelectionHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		web.WriteSelection(c, nil)
		if web.WantsJSON(c) {
			return c.JSON(fiber.Map{"selected": []uint{}})
		}
		return c.Redirect(back(c), fiber.StatusSeeOther)
	}
}

// GET /stickers/print
func BulkPrintHandler(cfg *config.Config, printerFor PrinterFor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		props, err := property.FindMany(c.UserContext(), web.ReadSelection(c))
		if err != nil {
			log.Printf("sticker: %v", err)
			return web.Redirect(c, "/properties", web.Error(printFailed))
		}
		if len(props) == 0 {
			web.WriteSelection(c, nil)
			return web.Redirect(c, "/properties", web.Info(nothingSelected))
		}

		job := NewBulkPrint(printerFor(c), letterhead(cfg))
		job.ReturnTo = "/properties"
		job.Select(FromProperties(props))
		out, err := job.SetOpen(c.UserContext(), true)
		if err != nil {
			log.Printf("sticker: %v", err)
			c.Response().ResetBody()
			return web.Redirect(c, "/properties", web.Error(printFailed))
		}
		if out.Cleared {
			web.WriteSelection(c, nil)
		}
		return nil
	}
}
