package models

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey"`
	TenantID     *uint     `gorm:"column:client_id;index"`
	Tenant       *Tenant   `gorm:"foreignKey:TenantID"`
	Name         string    `gorm:"size:100;not null"`
	Email        string    `gorm:"size:100;uniqueIndex;not null"`
	PasswordHash string    `gorm:"column:password;size:255;not null"`
	Role         UserRole  `gorm:"size:20;not null"`
	Status       Status    `gorm:"size:20;not null;default:active"`
	CreatedAt    time.Time `gorm:"index"`
	UpdatedAt    time.Time
}

func (u *User) Identity() Identity {
	return Identity{
		UserID:   u.ID,
		Email:    u.Email,
		Role:     u.Role,
		TenantID: u.TenantID,
	}
}
