package catalog

import (
	"errors"
	"fmt"
	"log"

	"parms/internal/audit"
	"parms/internal/models"
	"parms/internal/validation"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
)

type FormState struct {
	Open   bool
	Value  string
	Errors validation.Errors
}

type EditState struct {
	Row    Row
	Value  string
	Errors validation.Errors
}

type IndexPage struct {
	web.Page
	Entity   Descriptor
	Rows     []Row
	Total    int
	Query    string
	Create   FormState
	Edit     *EditState
	Deleting *Row
}

func (p IndexPage) Filtering() bool { return p.Query != "" }

func findRow(rows []Row, id int) *Row {
	for i := range rows {
		if int(rows[i].ID) == id {
			return &rows[i]
		}
	}
	return nil
}

func renderIndex(c *fiber.Ctx, d Descriptor, status int, adjust func(*IndexPage)) error {
	rows, err := List(c.UserContext(), d)
	if err != nil {
		log.Printf("catalog: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Could not load %s", d.Plural))
	}

	q := c.Query("q")
	page := IndexPage{
		Page:   web.NewPage(c, d.Title+"s", d.Plural),
		Entity: d,
		Rows:   Filter(rows, q),
		Total:  len(rows),
		Query:  q,
	}
	page.Create.Open = c.Query("create") == "1"
	if id := c.QueryInt("edit"); id > 0 {
		if r := findRow(rows, id); r != nil {
			page.Edit = &EditState{Row: *r, Value: r.Label}
		}
	}
	if id := c.QueryInt("delete"); id > 0 {
		page.Deleting = findRow(rows, id)
	}
	if adjust != nil {
		adjust(&page)
	}
	return c.Status(status).Render("catalog/index", page, "layouts/main")
}

func rowID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

func succeeded(c *fiber.Ctx, d Descriptor, a web.Action, status int, rec models.Labeled) error {
	if web.WantsJSON(c) {
		body := fiber.Map{"message": web.SuccessMessage(d.Singular, a)}
		if rec != nil {
			body["data"] = toRow(rec)
		}
		return c.Status(status).JSON(body)
	}
	return web.Redirect(c, d.Path, web.Success(d.Singular, a))
}

// failed keeps the dialog state so the user can retry.
func failed(c *fiber.Ctx, d Descriptor, a web.Action, restore func(*IndexPage)) error {
	if web.WantsJSON(c) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": web.FailureMessage(d.Singular, a)})
	}
	return renderIndex(c, d, fiber.StatusInternalServerError, func(p *IndexPage) {
		restore(p)
		p.Notice = web.Failure(d.Singular, a)
	})
}

func invalid(c *fiber.Ctx, d Descriptor, errs validation.Errors, restore func(*IndexPage)) error {
	if web.WantsJSON(c) {
		return web.ValidationFailed(c, errs)
	}
	return renderIndex(c, d, fiber.StatusUnprocessableEntity, restore)
}

func logChange(c *fiber.Ctx, d Descriptor, rec models.Labeled, action models.AuditAction, before, after any) {
	err := audit.WriteLog(c.UserContext(), audit.LogOptions{
		User:        web.CurrentUser(c),
		EntityType:  d.Singular,
		EntityID:    rec.GetID(),
		Action:      action,
		Description: fmt.Sprintf("%s %s: %s", d.Title, action, rec.Label()),
		Before:      before,
		After:       after,
	})
	if err != nil {
		log.Printf("audit log not written: %v", err)
	}
}

// GET /locations, /conditions
func IndexHandler(d Descriptor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if web.WantsJSON(c) {
			rows, err := List(c.UserContext(), d)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Could not load %s", d.Plural))
			}
			return c.JSON(Filter(rows, c.Query("q")))
		}
		return renderIndex(c, d, fiber.StatusOK, nil)
	}
}

// POST /locations, /conditions
func CreateHandler(d Descriptor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		value, errs, err := d.Bind(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		restore := func(p *IndexPage) {
			p.Create = FormState{Open: true, Value: value, Errors: errs}
		}

		if !errs.Any() {
			taken, err := Taken(c.UserContext(), d, value, 0)
			if err != nil {
				log.Printf("catalog: %v", err)
				return failed(c, d, web.ActionCreate, restore)
			}
			if taken {
				errs.Add(d.Field, validation.Taken(d.Field))
			}
		}
		if errs.Any() {
			return invalid(c, d, errs, restore)
		}

		rec, err := Create(c.UserContext(), d, value)
		if err != nil {
			log.Printf("catalog: %v", err)
			return failed(c, d, web.ActionCreate, restore)
		}
		logChange(c, d, rec, models.AuditActionCreate, nil, toRow(rec))

		return succeeded(c, d, web.ActionCreate, fiber.StatusCreated, rec)
	}
}

// POST|PUT /locations/:id
func UpdateHandler(d Descriptor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := rowID(c)
		if err != nil {
			return err
		}
		rec, err := Find(c.UserContext(), d, id)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s not found", d.Title))
		}
		if err != nil {
			log.Printf("catalog: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Could not load %s", d.Singular))
		}
		before := toRow(rec)

		value, errs, err := d.Bind(c)
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		restore := func(p *IndexPage) {
			p.Edit = &EditState{Row: before, Value: value, Errors: errs}
		}

		if !errs.Any() {
			taken, err := Taken(c.UserContext(), d, value, id)
			if err != nil {
				log.Printf("catalog: %v", err)
				return failed(c, d, web.ActionUpdate, restore)
			}
			if taken {
				errs.Add(d.Field, validation.Taken(d.Field))
			}
		}
		if errs.Any() {
			return invalid(c, d, errs, restore)
		}

		if err := Update(c.UserContext(), d, rec, value); err != nil {
			log.Printf("catalog: %v", err)
			return failed(c, d, web.ActionUpdate, restore)
		}
		logChange(c, d, rec, models.AuditActionUpdate, before, toRow(rec))

		return succeeded(c, d, web.ActionUpdate, fiber.StatusOK, rec)
	}
}

// POST /locations/:id/delete, DELETE /locations/:id
func DeleteHandler(d Descriptor) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := rowID(c)
		if err != nil {
			return err
		}
		rec, err := Find(c.UserContext(), d, id)
		if errors.Is(err, ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, fmt.Sprintf("%s not found", d.Title))
		}
		if err != nil {
			log.Printf("catalog: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, fmt.Sprintf("Could not load %s", d.Singular))
		}
		before := toRow(rec)

		if err := Delete(c.UserContext(), d, rec); err != nil {
			// usually a property still references the row
			log.Printf("catalog: %v", err)
			if web.WantsJSON(c) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": web.FailureMessage(d.Singular, web.ActionDelete)})
			}
			return web.Redirect(c, d.Path, web.Failure(d.Singular, web.ActionDelete))
		}
		logChange(c, d, rec, models.AuditActionDelete, before, nil)

		return succeeded(c, d, web.ActionDelete, fiber.StatusOK, nil)
	}
}
