package models

import "time"

// Partner provides services and redeems vouchers.
type Partner struct {
	ID        string    `gorm:"primaryKey;size:64" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Category  string    `gorm:"index" json:"category"`
	Email     string    `json:"email"`
	Active    bool      `gorm:"not null" json:"active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
