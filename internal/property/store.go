package property

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"parms/internal/database"
	"parms/internal/models"
	"parms/internal/validation"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrNotFound = errors.New("property not found")

func withRelations(db *gorm.DB) *gorm.DB {
	return db.Preload("Location").Preload("Condition").Preload("User")
}

func List(ctx context.Context) ([]models.Property, error) {
	var props []models.Property
	if err := withRelations(database.DB.WithContext(ctx)).Order("created_at DESC").Order("id DESC").Find(&props).Error; err != nil {
		return nil, fmt.Errorf("list properties: %w", err)
	}
	return props, nil
}

func Find(ctx context.Context, id uint) (*models.Property, error) {
	var p models.Property
	if err := withRelations(database.DB.WithContext(ctx)).First(&p, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find property %d: %w", id, err)
	}
	return &p, nil
}

func FindByPublicID(ctx context.Context, publicID string) (*models.Property, error) {
	var p models.Property
	if err := withRelations(database.DB.WithContext(ctx)).Where("public_id = ?", publicID).First(&p).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find property %s: %w", publicID, err)
	}
	return &p, nil
}

// FindMany loads ids keeping their order; unknown ids are skipped.
func FindMany(ctx context.Context, ids []uint) ([]models.Property, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	var props []models.Property
	if err := withRelations(database.DB.WithContext(ctx)).Where("id IN ?", ids).Find(&props).Error; err != nil {
		return nil, fmt.Errorf("load properties: %w", err)
	}
	byID := make(map[uint]models.Property, len(props))
	for _, p := range props {
		byID[p.ID] = p
	}
	out := make([]models.Property, 0, len(ids))
	for _, id := range ids {
		if p, ok := byID[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

// CheckReferences adds field errors for ids that do not resolve and for a
// property number used by another record.
func CheckReferences(ctx context.Context, f *Form, exceptID uint, errs validation.Errors) error {
	db := database.DB.WithContext(ctx)
	refs := []struct {
		field string
		id    uint
		model any
	}{
		{"location_id", f.LocationID, &models.Location{}},
		{"user_id", f.UserID, &models.User{}},
		{"condition_id", f.ConditionID, &models.Condition{}},
	}
	for _, r := range refs {
		if r.id == 0 || errs.Has(r.field) {
			continue
		}
		var n int64
		if err := db.Model(r.model).Where("id = ?", r.id).Count(&n).Error; err != nil {
			return fmt.Errorf("check %s: %w", r.field, err)
		}
		if n == 0 {
			errs.Add(r.field, validation.Invalid(strings.TrimSuffix(r.field, "_id")))
		}
	}

	if f.PropertyNumber != "" && !errs.Has("property_number") {
		var n int64
		if err := db.Model(&models.Property{}).Where("property_number = ? AND id <> ?", f.PropertyNumber, exceptID).Count(&n).Error; err != nil {
			return fmt.Errorf("check property number: %w", err)
		}
		if n > 0 {
			errs.Add("property_number", validation.Taken("property_number"))
		}
	}
	return nil
}

func NewPublicID() string { return uuid.NewString() }

func LookupURL(baseURL, publicID string) string {
	return strings.TrimRight(baseURL, "/") + "/p/" + publicID
}

// GeneratedNumber is used when the form leaves the property number blank.
func GeneratedNumber(p *models.Property) string {
	return fmt.Sprintf("PARMS-%d-%05d", p.CreatedAt.Year(), p.ID)
}

func Create(ctx context.Context, p *models.Property, baseURL string) error {
	p.PublicID = NewPublicID()
	p.QRCodeURL = LookupURL(baseURL, p.PublicID)

	return database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(p).Error; err != nil {
			return fmt.Errorf("create property: %w", err)
		}
		if p.PropertyNumber != "" {
			return nil
		}
		p.PropertyNumber = GeneratedNumber(p)
		if err := tx.Model(p).Update("property_number", p.PropertyNumber).Error; err != nil {
			return fmt.Errorf("assign property number: %w", err)
		}
		return nil
	})
}

func Update(ctx context.Context, p *models.Property) error {
	if err := database.DB.WithContext(ctx).Omit(clause.Associations).Save(p).Error; err != nil {
		return fmt.Errorf("update property %d: %w", p.ID, err)
	}
	return nil
}

func Delete(ctx context.Context, p *models.Property) error {
	if err := database.DB.WithContext(ctx).Delete(&models.Property{}, p.ID).Error; err != nil {
		return fmt.Errorf("delete property %d: %w", p.ID, err)
	}
	return nil
}

// Filter keeps properties whose item name contains q, ignoring case.
func Filter(props []models.Property, q string) []models.Property {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return props
	}
	out := make([]models.Property, 0, len(props))
	for _, p := range props {
		if strings.Contains(strings.ToLower(p.ItemName), q) {
			out = append(out, p)
		}
	}
	return out
}

func snapshot(p *models.Property) map[string]any {
	return map[string]any{
		"id":               p.ID,
		"property_number":  p.PropertyNumber,
		"item_name":        p.ItemName,
		"serial_no":        p.SerialNo,
		"model_no":         p.ModelNo,
		"acquisition_cost": p.AcquisitionCost.StringFixed(2),
		"quantity":         p.Quantity,
		"fund":             p.Fund,
		"location_id":      p.LocationID,
		"user_id":          p.UserID,
		"condition_id":     p.ConditionID,
	}
}
