package property

import (
	"errors"
	"fmt"
	"log"

	"parms/internal/audit"
	"parms/internal/config"
	"parms/internal/database"
	"parms/internal/models"
	"parms/internal/validation"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
)

type Options struct {
	Locations  []models.Location
	Users      []models.User
	Conditions []models.Condition
	Funds      []string
}

type FormState struct {
	Open   bool
	Form   Form
	Errors validation.Errors
}

type EditState struct {
	Row    models.Property
	Form   Form
	Errors validation.Errors
}

type IndexPage struct {
	web.Page
	Rows     []models.Property
	Total    int
	Query    string
	Options  Options
	Create   FormState
	Edit     *EditState
	Deleting *models.Property
	Selected map[uint]bool
}

func (p IndexPage) Filtering() bool { return p.Query != "" }

func (p IndexPage) SelectedCount() int { return len(p.Selected) }

func loadOptions(c *fiber.Ctx) (Options, error) {
	db := database.DB.WithContext(c.UserContext())
	opts := Options{Funds: models.Funds}
	if err := db.Order("name").Find(&opts.Locations).Error; err != nil {
		return opts, fmt.Errorf("load locations: %w", err)
	}
	if err := db.Order("name").Find(&opts.Users).Error; err != nil {
		return opts, fmt.Errorf("load users: %w", err)
	}
	if err := db.Order("condition").Find(&opts.Conditions).Error; err != nil {
		return opts, fmt.Errorf("load conditions: %w", err)
	}
	return opts, nil
}

func findRow(rows []models.Property, id int) *models.Property {
	for i := range rows {
		if int(rows[i].ID) == id {
			return &rows[i]
		}
	}
	return nil
}

func renderIndex(c *fiber.Ctx, status int, adjust func(*IndexPage)) error {
	rows, err := List(c.UserContext())
	if err != nil {
		log.Printf("property: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Could not load properties")
	}
	opts, err := loadOptions(c)
	if err != nil {
		log.Printf("property: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Could not load form options")
	}

	q := c.Query("q")
	page := IndexPage{
		Page:     web.NewPage(c, "Properties", "properties"),
		Rows:     Filter(rows, q),
		Total:    len(rows),
		Query:    q,
		Options:  opts,
		Selected: map[uint]bool{},
	}
	for _, id := range web.ReadSelection(c) {
		page.Selected[id] = true
	}
	page.Create = FormState{Open: c.Query("create") == "1", Form: Form{Quantity: 1}}
	if id := c.QueryInt("edit"); id > 0 {
		if r := findRow(rows, id); r != nil {
			page.Edit = &EditState{Row: *r, Form: FormFrom(r)}
		}
	}
	if id := c.QueryInt("delete"); id > 0 {
		page.Deleting = findRow(rows, id)
	}
	if adjust != nil {
		adjust(&page)
	}
	return c.Status(status).Render("properties/index", page, "layouts/main")
}

func propertyID(c *fiber.Ctx) (uint, error) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, fiber.NewError(fiber.StatusBadRequest, "Invalid id")
	}
	return uint(id), nil
}

// load resolves :id or answers 404.
func load(c *fiber.Ctx) (*models.Property, error) {
	id, err := propertyID(c)
	if err != nil {
		return nil, err
	}
	p, err := Find(c.UserContext(), id)
	if errors.Is(err, ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Property not found")
	}
	if err != nil {
		log.Printf("property: %v", err)
		return nil, fiber.NewError(fiber.StatusInternalServerError, "Could not load property")
	}
	return p, nil
}

func bind(c *fiber.Ctx) (Form, error) {
	var f Form
	if err := c.BodyParser(&f); err != nil {
		return f, fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}
	return f, nil
}

func failed(c *fiber.Ctx, a web.Action, restore func(*IndexPage)) error {
	if web.WantsJSON(c) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": web.FailureMessage("property", a)})
	}
	return renderIndex(c, fiber.StatusInternalServerError, func(p *IndexPage) {
		restore(p)
		p.Notice = web.Failure("property", a)
	})
}

func invalid(c *fiber.Ctx, errs validation.Errors, restore func(*IndexPage)) error {
	if web.WantsJSON(c) {
		return web.ValidationFailed(c, errs)
	}
	return renderIndex(c, fiber.StatusUnprocessableEntity, restore)
}

func succeeded(c *fiber.Ctx, a web.Action, status int, p *models.Property) error {
	if web.WantsJSON(c) {
		body := fiber.Map{"message": web.SuccessMessage("property", a)}
		if p != nil {
			body["data"] = p
		}
		return c.Status(status).JSON(body)
	}
	return web.Redirect(c, "/properties", web.Success("property", a))
}

func logChange(c *fiber.Ctx, p *models.Property, action models.AuditAction, before, after any) {
	err := audit.WriteLog(c.UserContext(), audit.LogOptions{
		User:        web.CurrentUser(c),
		EntityType:  "property",
		EntityID:    p.ID,
		Action:      action,
		Description: fmt.Sprintf("Property %s: %s (%s)", action, p.ItemName, p.PropertyNumber),
		Before:      before,
		After:       after,
	})
	if err != nil {
		log.Printf("audit log not written: %v", err)
	}
}

// GET /properties
func IndexHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if web.WantsJSON(c) {
			rows, err := List(c.UserContext())
			if err != nil {
				log.Printf("property: %v", err)
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load properties")
			}
			return c.JSON(Filter(rows, c.Query("q")))
		}
		return renderIndex(c, fiber.StatusOK, nil)
	}
}

// GET /api/properties/:id
func ShowHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := load(c)
		if err != nil {
			return err
		}
		return c.JSON(p)
	}
}

// POST /properties
func CreateHandler(cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		form, err := bind(c)
		if err != nil {
			return err
		}
		errs := form.Validate()
		restore := func(p *IndexPage) {
			p.Create = FormState{Open: true, Form: form, Errors: errs}
		}

		if err := CheckReferences(c.UserContext(), &form, 0, errs); err != nil {
			log.Printf("property: %v", err)
			return failed(c, web.ActionCreate, restore)
		}
		if errs.Any() {
			return invalid(c, errs, restore)
		}

		var p models.Property
		form.Apply(&p)
		if err := Create(c.UserContext(), &p, cfg.PublicBaseURL); err != nil {
			log.Printf("property: %v", err)
			return failed(c, web.ActionCreate, restore)
		}
		logChange(c, &p, models.AuditActionCreate, nil, snapshot(&p))

		return succeeded(c, web.ActionCreate, fiber.StatusCreated, &p)
	}
}

// POST|PUT /properties/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := load(c)
		if err != nil {
			return err
		}
		original := *p
		before := snapshot(p)

		form, err := bind(c)
		if err != nil {
			return err
		}
		errs := form.Validate()
		restore := func(page *IndexPage) {
			page.Edit = &EditState{Row: original, Form: form, Errors: errs}
		}

		if err := CheckReferences(c.UserContext(), &form, p.ID, errs); err != nil {
			log.Printf("property: %v", err)
			return failed(c, web.ActionUpdate, restore)
		}
		if errs.Any() {
			return invalid(c, errs, restore)
		}

		form.Apply(p)
		if p.PropertyNumber == "" {
			p.PropertyNumber = original.PropertyNumber
		}
		if err := Update(c.UserContext(), p); err != nil {
			log.Printf("property: %v", err)
			return failed(c, web.ActionUpdate, restore)
		}
		logChange(c, p, models.AuditActionUpdate, before, snapshot(p))

		updated, err := Find(c.UserContext(), p.ID)
		if err != nil {
			updated = p
		}
		return succeeded(c, web.ActionUpdate, fiber.StatusOK, updated)
	}
}

// POST /properties/:id/delete, DELETE /properties/:id
func DeleteHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		p, err := load(c)
		if err != nil {
			return err
		}
		before := snapshot(p)

		if err := Delete(c.UserContext(), p); err != nil {
			log.Printf("property: %v", err)
			if web.WantsJSON(c) {
				return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": web.FailureMessage("property", web.ActionDelete)})
			}
			return web.Redirect(c, "/properties", web.Failure("property", web.ActionDelete))
		}
		logChange(c, p, models.AuditActionDelete, before, nil)

		// a deleted property cannot stay in the print selection
		if sel := web.ReadSelection(c); len(sel) > 0 {
			for i, id := range sel {
				if id == p.ID {
					web.WriteSelection(c, append(sel[:i:i], sel[i+1:]...))
					break
				}
			}
		}
		return succeeded(c, web.ActionDelete, fiber.StatusOK, nil)
	}
}
