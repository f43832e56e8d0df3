package models

import "time"

// Company funds its employees' points out of purchased credits.
type Company struct {
	ID               string    `gorm:"primaryKey;size:64" json:"id"`
	Name             string    `gorm:"not null" json:"name"`
	TotalCredits     int64     `gorm:"not null;default:0" json:"total_credits"`
	UsedCredits      int64     `gorm:"not null;default:0" json:"used_credits"`
	AvailableCredits int64     `gorm:"not null;default:0" json:"available_credits"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// Rebalance recomputes AvailableCredits from TotalCredits and UsedCredits.
func (c *Company) Rebalance() {
	c.AvailableCredits = c.TotalCredits - c.UsedCredits
}
