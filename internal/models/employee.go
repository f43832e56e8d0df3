package models

import "time"

// Employee holds the spendable points granted by the owning company.
type Employee struct {
	ID              string    `gorm:"primaryKey;size:64" json:"id"`
	CompanyID       string    `gorm:"not null;index;size:64" json:"company_id"`
	FirstName       string    `gorm:"not null" json:"first_name"`
	LastName        string    `json:"last_name"`
	Email           string    `gorm:"index" json:"email"`
	Department      string    `json:"department"`
	AvailablePoints int64     `gorm:"not null;default:0" json:"available_points"`
	UsedPoints      int64     `gorm:"not null;default:0" json:"used_points"`
	TotalPoints     int64     `gorm:"not null;default:0" json:"total_points"`
	Active          bool      `gorm:"not null" json:"active"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}
