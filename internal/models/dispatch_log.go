package models

import "time"

type TemplateType string

const (
	TemplateMarketing TemplateType = "Marketing"
	TemplateUtility   TemplateType = "Utility"
)

// DispatchLog is one campaign dispatch ("disparo") sent through a chip.
// Rows are never updated or deleted.
type DispatchLog struct {
	ID           uint         `gorm:"primaryKey" json:"id"`
	ChipID       uint         `gorm:"not null;index" json:"chip_id"`
	Chip         *Chip        `gorm:"foreignKey:ChipID" json:"-"`
	Date         string       `gorm:"size:10;not null;index" json:"date"` // YYYY-MM-DD
	Action       string       `gorm:"size:255;not null" json:"action"`
	LeadsCount   int          `gorm:"not null" json:"leads_count"`
	TemplateType TemplateType `gorm:"size:20;not null" json:"template_type"`
	Cost         float64      `gorm:"not null" json:"cost"`
	Observations *string      `gorm:"type:text" json:"observations,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

func (DispatchLog) TableName() string {
	return "logs"
}
