package models

import "time"

const DefaultChipPlatform = "Unnichat"

// Chip is a WhatsApp number owned by one tenant.
type Chip struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	TenantID  uint      `gorm:"column:client_id;not null;index" json:"tenant_id"`
	Tenant    *Tenant   `gorm:"foreignKey:TenantID" json:"-"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Number    string    `gorm:"size:30;not null;index" json:"number"`
	Platform  string    `gorm:"size:50;not null;default:Unnichat" json:"platform"`
	Status    Status    `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}
