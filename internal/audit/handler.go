package audit

import (
	"log"

	"parms/internal/database"
	"parms/internal/models"

	"github.com/gofiber/fiber/v2"
)

type LogResponse struct {
	ID          uint               `json:"id"`
	CreatedAt   string             `json:"created_at"`
	UserID      *uint              `json:"user_id"`
	UserName    string             `json:"user_name"`
	EntityType  string             `json:"entity_type"`
	EntityID    uint               `json:"entity_id"`
	Action      models.AuditAction `json:"action"`
	Description string             `json:"description"`
}

func ToLogResponse(l *models.AuditLog) LogResponse {
	return LogResponse{
		ID:          l.ID,
		CreatedAt:   l.CreatedAt.Format("2006-01-02 15:04:05"),
		UserID:      l.UserID,
		UserName:    l.UserName,
		EntityType:  l.EntityType,
		EntityID:    l.EntityID,
		Action:      l.Action,
		Description: l.Description,
	}
}

// GET /api/audit-logs?entity_type=property&entity_id=1&user_id=2
func ListHandler() fiber.Handler {
	return func(c *fiber.Ctx) error {
		q := database.DB.WithContext(c.UserContext()).Model(&models.AuditLog{})

		if uid := c.QueryInt("user_id"); uid > 0 {
			q = q.Where("user_id = ?", uid)
		}
		if et := c.Query("entity_type"); et != "" {
			q = q.Where("entity_type = ?", et)
		}
		if eid := c.QueryInt("entity_id"); eid > 0 {
			q = q.Where("entity_id = ?", eid)
		}
		limit := c.QueryInt("limit", 100)
		if limit <= 0 || limit > 500 {
			limit = 100
		}

		var logs []models.AuditLog
		if err := q.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&logs).Error; err != nil {
			log.Printf("audit: list: %v", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Could not load audit logs")
		}

		resp := make([]LogResponse, 0, len(logs))
		for i := range logs {
			resp = append(resp, ToLogResponse(&logs[i]))
		}
		return c.JSON(resp)
	}
}
