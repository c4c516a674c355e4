package public

import (
	"errors"
	"log"

	"parms/internal/config"
	"parms/internal/models"
	"parms/internal/property"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
)

type PropertyPage struct {
	web.Page
	Property *models.Property
	Agency   string
	Office   string
}

// GET /p/:public_id
func PropertyHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := property.FindByPublicID(c.UserContext(), c.Params("public_id"))
		if errors.Is(err, property.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Property not found")
		}
		if err != nil {
			log.Printf("public: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load property")
		}
		if web.WantsJSON(c) {
			return c.JSON(Snapshot(p))
		}
		return c.Render("public/property", PropertyPage{
			Page:     web.Page{Title: p.ItemName},
			Property: p,
			Agency:   cfg.AgencyName,
			Office:   cfg.AgencyOffice,
		}, "layouts/public")
	}
}

// Snapshot is the subset of a property shown to anonymous visitors.
func Snapshot(p *models.Property) fiber.Map {
	m := fiber.Map{
		"property_number": p.PropertyNumber,
		"item_name":       p.ItemName,
		"serial_no":       p.SerialNo,
		"model_no":        p.ModelNo,
		"unit_of_measure": p.UnitOfMeasure,
		"quantity":        p.Quantity,
		"fund":            p.Fund,
		"location":        p.LocationName(),
		"condition":       p.ConditionName(),
		"accountable":     p.AccountableName(),
		"description":     p.Description,
		"color":           p.Color,
	}
	if p.AcquisitionDate != nil {
		m["acquisition_date"] = p.AcquisitionDate.Format("2006-01-02")
	}
	return m
}
