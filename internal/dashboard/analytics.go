package dashboard

import (
	"time"

	"github.com/shopspring/decimal"
)

type ConditionCount struct {
	Condition string `json:"condition"`
	Count     int64  `json:"count"`
}

type LocationCount struct {
	Location string `json:"location"`
	Count    int64  `json:"count"`
}

// TimePoint is one day of the acquisition series. Cumulative is computed
// once on the full series.
type TimePoint struct {
	Date       string `json:"date"`
	Count      int64  `json:"count"`
	Cumulative int64  `json:"cumulative"`
}

type Activity struct {
	ID          uint      `json:"id"`
	UserName    string    `json:"user_name"`
	EntityType  string    `json:"entity_type"`
	EntityID    uint      `json:"entity_id"`
	Action      string    `json:"action"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type FundShare struct {
	Fund       string          `json:"fund"`
	Count      int64           `json:"count"`
	TotalValue decimal.Decimal `json:"total_value"`
}

type Analytics struct {
	TotalProperties       int64            `json:"total_properties"`
	TotalValue            decimal.Decimal  `json:"total_value"`
	TotalLocations        int64            `json:"total_locations"`
	TotalUsers            int64            `json:"total_users"`
	PropertiesByCondition []ConditionCount `json:"properties_by_condition"`
	PropertiesByLocation  []LocationCount  `json:"properties_by_location"`
	PropertiesOverTime    []TimePoint      `json:"properties_over_time"`
	RecentActivities      []Activity       `json:"recent_activities"`
	FundDistribution      []FundShare      `json:"fund_distribution"`
	ActivityDate          string           `json:"activity_date"`
}

// Normalize fills every absent field with its empty value. A nil snapshot
// yields an empty one.
func Normalize(a *Analytics) *Analytics {
	if a == nil {
		a = &Analytics{}
	}
	if a.PropertiesByCondition == nil {
		a.PropertiesByCondition = []ConditionCount{}
	}
	if a.PropertiesByLocation == nil {
		a.PropertiesByLocation = []LocationCount{}
	}
	if a.PropertiesOverTime == nil {
		a.PropertiesOverTime = []TimePoint{}
	}
	if a.RecentActivities == nil {
		a.RecentActivities = []Activity{}
	}
	if a.FundDistribution == nil {
		a.FundDistribution = []FundShare{}
	}
	return a
}

type Range string

const (
	Range7d  Range = "7d"
	Range30d Range = "30d"
	RangeAll Range = "all"
)

var Ranges = []Range{Range7d, Range30d, RangeAll}

// ParseRange defaults to 30d when unset; unknown values mean all.
func ParseRange(s string) Range {
	switch Range(s) {
	case "":
		return Range30d
	case Range7d, Range30d:
		return Range(s)
	}
	return RangeAll
}

func (r Range) size() int {
	switch r {
	case Range7d:
		return 7
	case Range30d:
		return 30
	}
	return 0
}

// Window returns the trailing entries of series for r without touching
// their values.
func Window(series []TimePoint, r Range) []TimePoint {
	n := r.size()
	if n == 0 || len(series) <= n {
		return series
	}
	return series[len(series)-n:]
}

// Cumulate builds the daily series from creation times sorted ascending.
func Cumulate(created []time.Time) []TimePoint {
	series := []TimePoint{}
	var total int64
	for _, t := range created {
		day := t.Format(dateLayout)
		total++
		if n := len(series); n > 0 && series[n-1].Date == day {
			series[n-1].Count++
			series[n-1].Cumulative = total
			continue
		}
		series = append(series, TimePoint{Date: day, Count: 1, Cumulative: total})
	}
	return series
}
