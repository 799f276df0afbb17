package models

import "time"

// Tenant is a client company. The UI calls it "client", the table is clients.
type Tenant struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	Status    Status    `gorm:"size:20;not null;default:active" json:"status"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (Tenant) TableName() string {
	return "clients"
}
