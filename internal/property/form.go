package property

import (
	"strings"
	"time"

	"parms/internal/models"
	"parms/internal/validation"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

const dateLayout = "2006-01-02"

func init() {
	validation.Register("fund", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == "" || models.IsFund(s)
	})
}

// Form is the create/edit payload. Cost and date stay strings so a bad
// value becomes a field error instead of a parse failure of the whole body.
type Form struct {
	PropertyNumber  string `json:"property_number" form:"property_number" validate:"max=100"`
	ItemName        string `json:"item_name" form:"item_name" validate:"required,max=255"`
	SerialNo        string `json:"serial_no" form:"serial_no" validate:"max=150"`
	ModelNo         string `json:"model_no" form:"model_no" validate:"max=150"`
	AcquisitionDate string `json:"acquisition_date" form:"acquisition_date" validate:"omitempty,datetime=2006-01-02"`
	AcquisitionCost string `json:"acquisition_cost" form:"acquisition_cost" validate:"omitempty,numeric"`
	UnitOfMeasure   string `json:"unit_of_measure" form:"unit_of_measure" validate:"max=50"`
	Quantity        int    `json:"quantity" form:"quantity" validate:"min=0"`
	Fund            string `json:"fund" form:"fund" validate:"omitempty,fund"`
	LocationID      uint   `json:"location_id" form:"location_id" validate:"required"`
	UserID          uint   `json:"user_id" form:"user_id" validate:"required"`
	ConditionID     uint   `json:"condition_id" form:"condition_id" validate:"required"`
	Description     string `json:"description" form:"description" validate:"max=1000"`
	Remarks         string `json:"remarks" form:"remarks" validate:"max=1000"`
	Color           string `json:"color" form:"color" validate:"max=50"`
}

func (f *Form) trim() {
	for _, s := range []*string{
		&f.PropertyNumber, &f.ItemName, &f.SerialNo, &f.ModelNo, &f.AcquisitionDate,
		&f.AcquisitionCost, &f.UnitOfMeasure, &f.Fund, &f.Description, &f.Remarks, &f.Color,
	} {
		*s = strings.TrimSpace(*s)
	}
}

// Validate runs the field rules that need no database access.
func (f *Form) Validate() validation.Errors {
	f.trim()
	errs := validation.Struct(f)
	if f.AcquisitionCost != "" && !errs.Has("acquisition_cost") {
		if cost, err := decimal.NewFromString(f.AcquisitionCost); err != nil {
			errs.Add("acquisition_cost", "The acquisition cost must be a number.")
		} else if cost.IsNegative() {
			errs.Add("acquisition_cost", "The acquisition cost must be at least 0.")
		}
	}
	return errs
}

// Apply copies a validated form onto p.
func (f *Form) Apply(p *models.Property) {
	p.PropertyNumber = f.PropertyNumber
	p.ItemName = f.ItemName
	p.SerialNo = f.SerialNo
	p.ModelNo = f.ModelNo
	p.AcquisitionDate = nil
	if t, err := time.Parse(dateLayout, f.AcquisitionDate); err == nil {
		p.AcquisitionDate = &t
	}
	p.AcquisitionCost = decimal.Zero
	if cost, err := decimal.NewFromString(f.AcquisitionCost); err == nil {
		p.AcquisitionCost = cost.Round(2)
	}
	p.UnitOfMeasure = f.UnitOfMeasure
	p.Quantity = f.Quantity
	if p.Quantity == 0 {
		p.Quantity = 1
	}
	p.Fund = f.Fund
	p.LocationID = f.LocationID
	p.UserID = f.UserID
	p.ConditionID = f.ConditionID
	p.Description = f.Description
	p.Remarks = f.Remarks
	p.Color = f.Color
}

func FormFrom(p *models.Property) Form {
	f := Form{
		PropertyNumber:  p.PropertyNumber,
		ItemName:        p.ItemName,
		SerialNo:        p.SerialNo,
		ModelNo:         p.ModelNo,
		AcquisitionCost: p.AcquisitionCost.StringFixed(2),
		UnitOfMeasure:   p.UnitOfMeasure,
		Quantity:        p.Quantity,
		Fund:            p.Fund,
		LocationID:      p.LocationID,
		UserID:          p.UserID,
		ConditionID:     p.ConditionID,
		Description:     p.Description,
		Remarks:         p.Remarks,
		Color:           p.Color,
	}
	if p.AcquisitionDate != nil {
		f.AcquisitionDate = p.AcquisitionDate.Format(dateLayout)
	}
	return f
}
