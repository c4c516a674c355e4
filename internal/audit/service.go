package audit

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"parms/internal/database"
	"parms/internal/models"
)

type LogOptions struct {
	User        *models.User
	EntityType  string
	EntityID    uint
	Action      models.AuditAction
	Description string
	Before      any
	After       any
}

func WriteLog(ctx context.Context, opts LogOptions) error {
	entry := models.AuditLog{
		EntityType:  opts.EntityType,
		EntityID:    opts.EntityID,
		Action:      opts.Action,
		Description: opts.Description,
		BeforeData:  encode(opts.Before),
		AfterData:   encode(opts.After),
	}
	if opts.User != nil {
		id := opts.User.ID
		entry.UserID = &id
		entry.UserName = opts.User.Name
	}

	if err := database.DB.WithContext(ctx).Create(&entry).Error; err != nil {
		return fmt.Errorf("write audit log: %w", err)
	}
	return nil
}

func encode(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Scope narrows Recent to one actor and/or one calendar day.
type Scope struct {
	UserID *uint
	Day    *time.Time
	Limit  int
}

// Recent returns the newest entries first.
func Recent(ctx context.Context, s Scope) ([]models.AuditLog, error) {
	if s.Limit <= 0 {
		s.Limit = 10
	}

	q := database.DB.WithContext(ctx).Model(&models.AuditLog{})
	if s.UserID != nil {
		q = q.Where("user_id = ?", *s.UserID)
	}
	if s.Day != nil {
		start := time.Date(s.Day.Year(), s.Day.Month(), s.Day.Day(), 0, 0, 0, 0, s.Day.Location())
		q = q.Where("created_at >= ? AND created_at < ?", start, start.AddDate(0, 0, 1))
	}

	var logs []models.AuditLog
	if err := q.Order("created_at DESC").Order("id DESC").Limit(s.Limit).Find(&logs).Error; err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	return logs, nil
}
