package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"parms/internal/database"
	"parms/internal/models"

	"gorm.io/gorm"
)

var ErrNotFound = errors.New("record not found")

type Row struct {
	ID        uint      `json:"id"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func List(ctx context.Context, d Descriptor) ([]Row, error) {
	var rows []Row
	err := database.DB.WithContext(ctx).
		Model(d.New()).
		Select("id, " + d.Field + " AS label, created_at, updated_at").
		Order(d.Field + " ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", d.Plural, err)
	}
	return rows, nil
}

func Find(ctx context.Context, d Descriptor, id uint) (models.Labeled, error) {
	rec := d.New()
	if err := database.DB.WithContext(ctx).First(rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find %s %d: %w", d.Singular, id, err)
	}
	return rec, nil
}

// Taken reports whether another row already uses label, ignoring case.
func Taken(ctx context.Context, d Descriptor, label string, exceptID uint) (bool, error) {
	var n int64
	err := database.DB.WithContext(ctx).
		Model(d.New()).
		Where("LOWER("+d.Field+") = ?", strings.ToLower(label)).
		Where("id <> ?", exceptID).
		Count(&n).Error
	if err != nil {
		return false, fmt.Errorf("check %s uniqueness: %w", d.Singular, err)
	}
	return n > 0, nil
}

func Create(ctx context.Context, d Descriptor, label string) (models.Labeled, error) {
	rec := d.New()
	rec.SetLabel(label)
	if err := database.DB.WithContext(ctx).Create(rec).Error; err != nil {
		return nil, fmt.Errorf("create %s: %w", d.Singular, err)
	}
	return rec, nil
}

func Update(ctx context.Context, d Descriptor, rec models.Labeled, label string) error {
	rec.SetLabel(label)
	if err := database.DB.WithContext(ctx).Save(rec).Error; err != nil {
		return fmt.Errorf("update %s %d: %w", d.Singular, rec.GetID(), err)
	}
	return nil
}

func Delete(ctx context.Context, d Descriptor, rec models.Labeled) error {
	if err := database.DB.WithContext(ctx).Delete(rec).Error; err != nil {
		return fmt.Errorf("delete %s %d: %w", d.Singular, rec.GetID(), err)
	}
	return nil
}

// Filter keeps rows whose label contains q, ignoring case.
func Filter(rows []Row, q string) []Row {
	q = strings.ToLower(strings.TrimSpace(q))
	if q == "" {
		return rows
	}
	out := make([]Row, 0, len(rows))
	for _, r := range rows {
		if strings.Contains(strings.ToLower(r.Label), q) {
			out = append(out, r)
		}
	}
	return out
}

func toRow(rec models.Labeled) Row {
	r := Row{ID: rec.GetID(), Label: rec.Label()}
	switch v := rec.(type) {
	case *models.Location:
		r.CreatedAt, r.UpdatedAt = v.CreatedAt, v.UpdatedAt
	case *models.Condition:
		r.CreatedAt, r.UpdatedAt = v.CreatedAt, v.UpdatedAt
	}
	return r
}
