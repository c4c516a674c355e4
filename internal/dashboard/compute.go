package dashboard

import (
	"context"
	"fmt"
	"sort"
	"time"

	"parms/internal/audit"
	"parms/internal/database"
	"parms/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const dateLayout = "2006-01-02"

// Scope limits the snapshot to one accountable user when UserID is set.
type Scope struct {
	UserID       *uint
	ActivityDate string
}

func (s Scope) properties(ctx context.Context) *gorm.DB {
	q := database.DB.WithContext(ctx).Model(&models.Property{})
	if s.UserID != nil {
		q = q.Where("properties.user_id = ?", *s.UserID)
	}
	return q
}

func Compute(ctx context.Context, s Scope) (*Analytics, error) {
	a := &Analytics{}

	if err := s.properties(ctx).Count(&a.TotalProperties).Error; err != nil {
		return nil, fmt.Errorf("count properties: %w", err)
	}

	var total decimal.NullDecimal
	if err := s.properties(ctx).Select("SUM(acquisition_cost * quantity)").Row().Scan(&total); err != nil {
		return nil, fmt.Errorf("sum property value: %w", err)
	}
	a.TotalValue = decimal.Zero
	if total.Valid {
		a.TotalValue = total.Decimal
	}

	if s.UserID != nil {
		if err := s.properties(ctx).Distinct("location_id").Count(&a.TotalLocations).Error; err != nil {
			return nil, fmt.Errorf("count locations: %w", err)
		}
	} else if err := database.DB.WithContext(ctx).Model(&models.Location{}).Count(&a.TotalLocations).Error; err != nil {
		return nil, fmt.Errorf("count locations: %w", err)
	}
	if err := database.DB.WithContext(ctx).Model(&models.User{}).Count(&a.TotalUsers).Error; err != nil {
		return nil, fmt.Errorf("count users: %w", err)
	}

	if err := s.properties(ctx).
		Select("conditions.condition AS condition, COUNT(properties.id) AS count").
		Joins("JOIN conditions ON conditions.id = properties.condition_id").
		Group("conditions.condition").
		Order("count DESC").Order("conditions.condition").
		Scan(&a.PropertiesByCondition).Error; err != nil {
		return nil, fmt.Errorf("group by condition: %w", err)
	}

	if err := s.properties(ctx).
		Select("locations.name AS location, COUNT(properties.id) AS count").
		Joins("JOIN locations ON locations.id = properties.location_id").
		Group("locations.name").
		Order("count DESC").Order("locations.name").
		Scan(&a.PropertiesByLocation).Error; err != nil {
		return nil, fmt.Errorf("group by location: %w", err)
	}

	var created []time.Time
	if err := s.properties(ctx).Order("properties.created_at").Pluck("properties.created_at", &created).Error; err != nil {
		return nil, fmt.Errorf("load acquisition series: %w", err)
	}
	a.PropertiesOverTime = Cumulate(created)

	funds, err := fundDistribution(ctx, s)
	if err != nil {
		return nil, err
	}
	a.FundDistribution = funds

	if err := recentActivities(ctx, s, a); err != nil {
		return nil, err
	}
	return Normalize(a), nil
}

func fundDistribution(ctx context.Context, s Scope) ([]FundShare, error) {
	var rows []struct {
		Fund       string
		Count      int64
		TotalValue decimal.NullDecimal
	}
	if err := s.properties(ctx).
		Select("fund, COUNT(id) AS count, SUM(acquisition_cost * quantity) AS total_value").
		Group("fund").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("group by fund: %w", err)
	}

	out := make([]FundShare, 0, len(rows))
	for _, r := range rows {
		share := FundShare{Fund: r.Fund, Count: r.Count, TotalValue: decimal.Zero}
		if share.Fund == "" {
			share.Fund = "Unspecified"
		}
		if r.TotalValue.Valid {
			share.TotalValue = r.TotalValue.Decimal
		}
		out = append(out, share)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out, nil
}

// recentActivities lists the audit entries of the chosen day. A missing or
// unparsable date means the day of the latest entry in scope.
func recentActivities(ctx context.Context, s Scope, a *Analytics) error {
	day, err := time.ParseInLocation(dateLayout, s.ActivityDate, time.Local)
	if err != nil {
		latest, err := audit.Recent(ctx, audit.Scope{UserID: s.UserID, Limit: 1})
		if err != nil {
			return err
		}
		if len(latest) == 0 {
			return nil
		}
		t := latest[0].CreatedAt.In(time.Local)
		day = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local)
	}
	a.ActivityDate = day.Format(dateLayout)

	logs, err := audit.Recent(ctx, audit.Scope{UserID: s.UserID, Day: &day, Limit: 20})
	if err != nil {
		return err
	}
	for _, l := range logs {
		a.RecentActivities = append(a.RecentActivities, Activity{
			ID:          l.ID,
			UserName:    l.UserName,
			EntityType:  l.EntityType,
			EntityID:    l.EntityID,
			Action:      string(l.Action),
			Description: l.Description,
			CreatedAt:   l.CreatedAt,
		})
	}
	return nil
}
