package users

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"parms/internal/audit"
	"parms/internal/auth"
	"parms/internal/database"
	"parms/internal/models"
	"parms/internal/validation"
	"parms/internal/web"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type Form struct {
	Name     string          `json:"name" form:"name" validate:"required,max=100"`
	Email    string          `json:"email" form:"email" validate:"required,email,max=150"`
	Role     models.UserRole `json:"role" form:"role" validate:"required,oneof=admin staff"`
	Password string          `json:"password" form:"password" validate:"omitempty,min=8,max=72"`
	Avatar   string          `json:"avatar" form:"avatar" validate:"omitempty,url,max=500"`
}

func (f *Form) normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
	f.Avatar = strings.TrimSpace(f.Avatar)
}

type FormState struct {
	Open   bool
	Form   Form
	Errors validation.Errors
}

type EditState struct {
	Row    models.User
	Form   Form
	Errors validation.Errors
}

type IndexPage struct {
	web.Page
	Rows   []models.User
	Total  int
	Query  string
	Roles  []models.UserRole
	Create FormState
	Edit   *EditState
}

func (p IndexPage) Filtering() bool { return p.Query != "" }

// Filter keeps users whose name contains q, ignoring case.
func Filter(rows []models.User, q string) []models.User {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	out := make([]models.User, 0, len(rows))
	for _, u := range rows {
		if strings.Contains(strings.ToLower(u.Name), q) {
			out = append(out, u)
		}
	}
	return out
}

func list(c *fiber.Ctx) ([]models.User, error) {
	var rows []models.User
	if err := database.DB.WithContext(c.UserContext()).Order("name").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return rows, nil
}

func renderIndex(c *fiber.Ctx, status int, adjust func(*IndexPage)) error {
	rows, err := list(c)
	if err != nil {
		log.Printf("users: %v", err)
		return fiber.NewError(fiber.StatusInternalServerError, "Could not load users")
	}
	q := c.Query("q")
	page := IndexPage{
		Page:   web.NewPage(c, "Users", "users"),
		Rows:   Filter(rows, q),
		Total:  len(rows),
		Query:  q,
		Roles:  []models.UserRole{models.RoleAdmin, models.RoleStaff},
		Create: FormState{Open: c.Query("create") == "1", Form: Form{Role: models.RoleStaff}},
	}
	if id := c.QueryInt("edit"); id > 0 {
		for i := range rows {
			if int(rows[i].ID) == id {
				u := rows[i]
				page.Edit = &EditState{Row: u, Form: Form{Name: u.Name, Email: u.Email, Role: u.Role, Avatar: u.Avatar}}
			}
		}
	}
	if adjust != nil {
		adjust(&page)
	}
	return c.Status(status).Render("users/index", page, "layouts/main")
}

func emailTaken(c *fiber.Ctx, email string, exceptID uint) (bool, error) {
	var n int64
	err := database.DB.WithContext(c.UserContext()).Model(&models.User{}).
		Where("LOWER(email) = ? AND id <> ?", email, exceptID).Count(&n).Error
	return n > 0, err
}

func check(c *fiber.Ctx, f *Form, exceptID uint, requirePassword bool) (validation.Errors, error) {
	f.normalize()
	errs := validation.Struct(f)
	if requirePassword && f.Password == "" {
		errs.Add("password", validation.Required("password"))
	}
	if !errs.Has("email") {
		taken, err := emailTaken(c, f.Email, exceptID)
		if err != nil {
			return errs, err
		}
		if taken {
			errs.Add("email", validation.Taken("email"))
		}
	}
	return errs, nil
}

func respond(c *fiber.Ctx, a web.Action, status int, u *models.User) error {
	if web.WantsJSON(c) {
		return c.Status(status).JSON(fiber.Map{
			"message": web.SuccessMessage("user", a),
			"data":    auth.ToUserResponse(u),
		})
	}
	return web.Redirect(c, "/users", web.Success("user", a))
}

func failed(c *fiber.Ctx, a web.Action, restore func(*IndexPage)) error {
	if web.WantsJSON(c) {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"message": web.FailureMessage("user", a)})
	}
	return renderIndex(c, fiber.StatusInternalServerError, func(p *IndexPage) {
		restore(p)
		p.Notice = web.Failure("user", a)
	})
}

func invalid(c *fiber.Ctx, errs validation.Errors, restore func(*IndexPage)) error {
	if web.WantsJSON(c) {
		return web.ValidationFailed(c, errs)
	}
	return renderIndex(c, fiber.StatusUnprocessableEntity, restore)
}

func logChange(c *fiber.Ctx, u *models.User, action models.AuditAction, before, after any) {
	err := audit.WriteLog(c.UserContext(), audit.LogOptions{
		User:        web.CurrentUser(c),
		EntityType:  "user",
		EntityID:    u.ID,
		Action:      action,
		Description: fmt.Sprintf("User %s: %s <%s>", action, u.Name, u.Email),
		Before:      before,
		After:       after,
	})
	if err != nil {
		log.Printf("audit log not written: %v", err)
	}
}

// GET /users
func IndexHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if web.WantsJSON(c) {
			rows, err := list(c)
			if err != nil {
				return fiber.NewError(fiber.StatusInternalServerError, "Could not load users")
			}
			rows = Filter(rows, c.Query("q"))
			out := make([]auth.UserResponse, 0, len(rows))
			for i := range rows {
				out = append(out, auth.ToUserResponse(&rows[i]))
			}
			return c.JSON(out)
		}
		return renderIndex(c, fiber.StatusOK, nil)
	}
}

// POST /users
func CreateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		var form Form
		if err := c.BodyParser(&form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		errs, err := check(c, &form, 0, true)
		restore := func(p *IndexPage) {
			kept := form
			kept.Password = ""
			p.Create = FormState{Open: true, Form: kept, Errors: errs}
		}
		if err != nil {
			log.Printf("users: %v", err)
			return failed(c, web.ActionCreate, restore)
		}
		if errs.Any() {
			return invalid(c, errs, restore)
		}

		hash, err := auth.HashPassword(form.Password)
		if err != nil {
			log.Printf("users: hash password: %v", err)
			return failed(c, web.ActionCreate, restore)
		}
		u := models.User{Name: form.Name, Email: form.Email, Role: form.Role, Avatar: form.Avatar, PasswordHash: hash}
		if err := database.DB.WithContext(c.UserContext()).Create(&u).Error; err != nil {
			log.Printf("users: create: %v", err)
			return failed(c, web.ActionCreate, restore)
		}
		logChange(c, &u, models.AuditActionCreate, nil, auth.ToUserResponse(&u))

		return respond(c, web.ActionCreate, fiber.StatusCreated, &u)
	}
}

// POST|PUT /users/:id
func UpdateHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id <= 0 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid id")
		}
		var u models.User
		if err := database.DB.WithContext(c.UserContext()).First(&u, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fiber.NewError(fiber.StatusNotFound, "User not found")
			}
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load user")
		}
		original := u
		before := auth.ToUserResponse(&u)

		var form Form
		if err := c.BodyParser(&form); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
		}
		errs, err := check(c, &form, u.ID, false)
		restore := func(p *IndexPage) {
			kept := form
			kept.Password = ""
			p.Edit = &EditState{Row: original, Form: kept, Errors: errs}
		}
		if err != nil {
			log.Printf("users: %v", err)
			return failed(c, web.ActionUpdate, restore)
		}
		// an admin cannot take away their own access
		if me := web.CurrentUser(c); me != nil && me.ID == u.ID && form.Role != models.RoleAdmin {
			errs.Add("role", "You cannot remove your own admin role.")
		}
		if errs.Any() {
			return invalid(c, errs, restore)
		}

		u.Name, u.Email, u.Role, u.Avatar = form.Name, form.Email, form.Role, form.Avatar
		if form.Password != "" {
			hash, err := auth.HashPassword(form.Password)
			if err != nil {
				log.Printf("users: hash password: %v", err)
				return failed(c, web.ActionUpdate, restore)
			}
			u.PasswordHash = hash
		}
		if err := database.DB.WithContext(c.UserContext()).Save(&u).Error; err != nil {
			log.Printf("users: update %d: %v", u.ID, err)
			return failed(c, web.ActionUpdate, restore)
		}
		logChange(c, &u, models.AuditActionUpdate, before, auth.ToUserResponse(&u))

		return respond(c, web.ActionUpdate, fiber.StatusOK, &u)
	}
}
