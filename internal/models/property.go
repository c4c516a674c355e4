package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Funds offered in the property form.
var Funds = []string{
	"General Fund",
	"Special Education Fund",
	"Trust Fund",
	"Development Fund",
	"Disaster Risk Reduction Fund",
}

func IsFund(s string) bool {
	for _, f := range Funds {
		if f == s {
			return true
		}
	}
	return false
}

type Property struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	PublicID        string          `gorm:"size:36;uniqueIndex;not null" json:"public_id"`
	PropertyNumber  string          `gorm:"size:100;index" json:"property_number"`
	ItemName        string          `gorm:"size:255;not null" json:"item_name"`
	SerialNo        string          `gorm:"size:150" json:"serial_no"`
	ModelNo         string          `gorm:"size:150" json:"model_no"`
	AcquisitionDate *time.Time      `json:"acquisition_date"`
	AcquisitionCost decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0" json:"acquisition_cost"`
	UnitOfMeasure   string          `gorm:"size:50" json:"unit_of_measure"`
	Quantity        int             `gorm:"not null;default:1" json:"quantity"`
	Fund            string          `gorm:"size:100;index" json:"fund"`
	LocationID      uint            `gorm:"index;not null" json:"location_id"`
	Location        *Location       `gorm:"foreignKey:LocationID;constraint:OnDelete:RESTRICT" json:"location,omitempty"`
	UserID          uint            `gorm:"index;not null" json:"user_id"`
	User            *User           `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	ConditionID     uint            `gorm:"index;not null" json:"condition_id"`
	Condition       *Condition      `gorm:"foreignKey:ConditionID;constraint:OnDelete:RESTRICT" json:"condition,omitempty"`
	Description     string          `gorm:"size:1000" json:"description"`
	Remarks         string          `gorm:"size:1000" json:"remarks"`
	Color           string          `gorm:"size:50" json:"color"`
	QRCodeURL       string          `gorm:"size:500" json:"qr_code_url"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func (p *Property) LocationName() string {
	if p.Location == nil {
		return ""
	}
	return p.Location.Name
}

func (p *Property) ConditionName() string {
	if p.Condition == nil {
		return ""
	}
	return p.Condition.Condition
}

func (p *Property) AccountableName() string {
	if p.User == nil {
		return ""
	}
	return p.User.Name
}
