package models

import "time"

// Labeled is a lookup row with a single display field.
type Labeled interface {
	GetID() uint
	Label() string
	SetLabel(string)
}

type Location struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:150;not null;uniqueIndex:idx_locations_name_ci,expression:LOWER(name)" json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (l *Location) GetID() uint       { return l.ID }
func (l *Location) Label() string     { return l.Name }
func (l *Location) SetLabel(s string) { l.Name = s }

type Condition struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Condition string    `gorm:"size:150;not null;uniqueIndex:idx_conditions_condition_ci,expression:LOWER(condition)" json:"condition"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *Condition) GetID() uint       { return c.ID }
func (c *Condition) Label() string     { return c.Condition }
func (c *Condition) SetLabel(s string) { c.Condition = s }
