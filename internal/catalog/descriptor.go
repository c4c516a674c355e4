// Package catalog serves the single-field lookup tables (locations and
// conditions): index page with search, create dialog and row editors.
package catalog

import (
	"strings"

	"parms/internal/models"
	"parms/internal/validation"

	"github.com/gofiber/fiber/v2"
)

type Descriptor struct {
	Singular   string // "location"
	Plural     string // "locations"
	Title      string // "Location"
	Field      string // form, json and column name of the display field
	FieldLabel string
	Path       string
	New        func() models.Labeled
	// Bind parses and validates the request body into the display value.
	Bind func(c *fiber.Ctx) (string, validation.Errors, error)
}

type LocationForm struct {
	Name string `json:"name" form:"name" validate:"required,max=150"`
}

type ConditionForm struct {
	Condition string `json:"condition" form:"condition" validate:"required,max=150"`
}

var Locations = Descriptor{
	Singular:   "location",
	Plural:     "locations",
	Title:      "Location",
	Field:      "name",
	FieldLabel: "Location name",
	Path:       "/locations",
	New:        func() models.Labeled { return &models.Location{} },
	Bind: func(c *fiber.Ctx) (string, validation.Errors, error) {
		var f LocationForm
		if err := c.BodyParser(&f); err != nil {
			return "", nil, err
		}
		f.Name = strings.TrimSpace(f.Name)
		return f.Name, validation.Struct(&f), nil
	},
}

var Conditions = Descriptor{
	Singular:   "condition",
	Plural:     "conditions",
	Title:      "Condition",
	Field:      "condition",
	FieldLabel: "Condition",
	Path:       "/conditions",
	New:        func() models.Labeled { return &models.Condition{} },
	Bind: func(c *fiber.Ctx) (string, validation.Errors, error) {
		var f ConditionForm
		if err := c.BodyParser(&f); err != nil {
			return "", nil, err
		}
		f.Condition = strings.TrimSpace(f.Condition)
		return f.Condition, validation.Struct(&f), nil
	},
}
