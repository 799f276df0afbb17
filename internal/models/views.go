package models

import "time"

// Read models returned by the list endpoints. They carry the joined names the
// dashboard shows next to each row.

type ChipView struct {
	ID         uint      `json:"id"`
	TenantID   uint      `gorm:"column:client_id" json:"tenant_id"`
	TenantName string    `json:"tenant_name"`
	Name       string    `json:"name"`
	Number     string    `json:"number"`
	Platform   string    `json:"platform"`
	Status     Status    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

type LogView struct {
	ID           uint         `json:"id"`
	ChipID       uint         `json:"chip_id"`
	ChipName     string       `json:"chip_name"`
	ChipNumber   string       `json:"chip_number"`
	TenantID     uint         `json:"tenant_id"`
	TenantName   string       `json:"tenant_name"`
	Date         string       `json:"date"`
	Action       string       `json:"action"`
	LeadsCount   int          `json:"leads_count"`
	TemplateType TemplateType `json:"template_type"`
	Cost         float64      `json:"cost"`
	Observations *string      `json:"observations,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
}

type UserView struct {
	ID         uint      `json:"id"`
	Name       string    `json:"name"`
	Email      string    `json:"email"`
	Role       UserRole  `json:"role"`
	Status     Status    `json:"status"`
	TenantID   *uint     `gorm:"column:client_id" json:"tenant_id"`
	TenantName *string   `json:"tenant_name"`
	CreatedAt  time.Time `json:"created_at"`
}

type ChipCost struct {
	Name string  `json:"name"`
	Cost float64 `json:"cost"`
}

type TemplateCost struct {
	TemplateType TemplateType `json:"template_type"`
	Cost         float64      `json:"cost"`
}

type Stats struct {
	TotalLeads     int64          `json:"total_leads"`
	TotalCost      float64        `json:"total_cost"`
	TotalDisparos  int64          `json:"total_disparos"`
	CostByChip     []ChipCost     `json:"costByChip"`
	CostByTemplate []TemplateCost `json:"costByTemplate"`
}
